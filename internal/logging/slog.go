package logging

import (
	"log/slog"
	"os"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation = "operation"
	KeyBot       = "bot"
	KeyRepo      = "repo"
	KeyPull      = "pull_number"
	KeyIssue     = "issue_number"
	KeyActor     = "actor"
	KeyEvent     = "event"
	KeyStatus    = "status"
	KeyError     = "error"
)

// Status values for consistent logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// NewLogger returns a text-format slog.Logger writing to stderr, the format
// GitHub Actions renders best in run logs.
func NewLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// WithBot returns a logger with the bot attribute set.
func WithBot(logger *slog.Logger, bot string) *slog.Logger {
	return logger.With(slog.String(KeyBot, bot))
}

// WithRepo returns a logger with the repo attribute set.
func WithRepo(logger *slog.Logger, repo string) *slog.Logger {
	return logger.With(slog.String(KeyRepo, repo))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Pull returns a slog attribute for a pull request number.
func Pull(number int) slog.Attr {
	return slog.Int(KeyPull, number)
}

// Issue returns a slog attribute for an issue number.
func Issue(number int) slog.Attr {
	return slog.Int(KeyIssue, number)
}

// Actor returns a slog attribute for the user a bot acts on behalf of.
func Actor(login string) slog.Attr {
	return slog.String(KeyActor, login)
}

// Event returns a slog attribute for the triggering event type.
func Event(name string) slog.Attr {
	return slog.String(KeyEvent, name)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted from output.
// This allows safely passing Err(maybeNilErr) without adding empty attributes.
func Err(err error) slog.Attr {
	if err == nil {
		// Return an empty Group that slog will omit from output
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}
