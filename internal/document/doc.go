// Package document implements the file-backed structured state store.
//
// A File binds an ordered key/value document to one resolved path. Reads
// capture a base snapshot; local mutations touch only the in-memory
// contents; Write re-reads the on-disk state under an advisory lock and
// reconciles the local delta onto it, so concurrent processes editing
// disjoint keys both survive. Persistence is atomic (temp file + rename)
// with owner-only permissions.
//
// Every disk-touching operation has a blocking form and a deferred form
// with identical semantics; the deferred form returns a Promise that can
// be awaited later.
package document
