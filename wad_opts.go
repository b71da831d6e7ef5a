package wad

import "log/slog"

// Option configures an Archive during New.
type Option func(*Archive)

// WithLogger sets the logger used for parse-progress messages.
// The default discards all output.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Archive) {
		if logger != nil {
			a.logger = logger
		}
	}
}
