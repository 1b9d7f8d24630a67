// Package history persists a journal of organize runs in SQLite.
//
// Each run records its source, target, scheme, and aggregate counts; every
// per-file move (or skip, or failure) is journaled against it. The CLI reads
// the journal for `fileman history`, and retention pruning runs when the
// store opens. The schema carries a version guard so an incompatible
// database fails fast instead of corrupting silently.
package history
