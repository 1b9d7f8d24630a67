// Package main hosts the fileman CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into organize
// runs, directory counts, history queries, and configuration scaffolding. It
// centralizes configuration resolution, history journal access, and structured
// logging setup so subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
