// Package progress persists per-item claim state shared by every galley
// instance working the same batch.
//
// State lives in a single flat JSON file mapping slug to record. All access
// goes through an advisory file lock on that file: shared for reads,
// exclusive for the whole read-decide-write critical section of a mutation.
// Every mutation rewrites the full table, which keeps the file a flat
// mapping other tooling can inspect or reset by hand. The table is bounded
// by catalog size and contention is low, so whole-file rewrites are cheap.
//
// Mutual exclusion between instances holds as long as the filesystem honours
// advisory locks; that is an operational assumption, not something this
// package verifies.
package progress
