// Package logging provides structured logging utilities for prkeeper.
//
// This package centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog package:
// shared attribute key constants, attribute constructors for the domain
// (pull request and issue numbers, actors, event types), and a stderr text
// handler suited to GitHub Actions run logs.
package logging
