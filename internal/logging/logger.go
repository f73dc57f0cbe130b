// Package logging provides centralized logger creation for the jetpack application.
package logging

import (
	"log/slog"
)

// NewDiscardLogger returns a logger that drops every record. It is the
// fallback when no logger is injected.
func NewDiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
