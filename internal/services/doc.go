// Package services defines shared utilities consumed by the organize pipeline
// and the CLI commands.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and component names for
//     logging and history correlation.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification (not found, permission, move failure) consistent across
//     packages.
//
// Use these helpers when wiring new operations so error handling and
// observability stay uniform.
package services
