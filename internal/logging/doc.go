// Package logging centralizes slog construction for fileman.
//
// It builds console or JSON handlers from configuration, tees output to the
// configured log file, exposes attr alias helpers so call sites stay terse,
// and derives standardized fields (run ID, component) from context values.
package logging
