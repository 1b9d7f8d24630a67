// Package organize implements the core relocation pipeline: derive a
// destination for every file from its last-modification time, then move it
// into the target tree.
//
// Planning is pure (same timestamp, same destination, always); execution
// handles conflict policies, collision-safe rename allocation, cross-device
// fallbacks, and per-file failure accounting. A run holds a file lock inside
// the target so concurrent invocations cannot race on directory creation,
// and journals every move to the history store when one is configured.
package organize
