// Package home builds the per-process run context for the store: the global
// home-state directory, the operating mode, and the lock policy. All
// environment lookups happen here, once, so the core packages receive an
// explicit Context instead of reading ambient process state.
package home
