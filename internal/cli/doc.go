// Package cli defines the Cobra command tree for the statekit CLI. Each
// file in this package registers one top-level command (get, set, list,
// etc.) with the root command. Command implementations delegate to
// internal packages for store logic and only handle flag parsing, I/O
// formatting, and user interaction.
package cli
