// Package scan discovers the files an organize run will operate on.
//
// Collection takes a one-time snapshot of each regular file (path, size,
// modification time) in deterministic lexical order, with knobs for
// recursion depth, hidden files, and directory symlinks. Counting mirrors
// the collection rules but never touches file contents.
package scan
