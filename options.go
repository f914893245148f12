package qoda

import (
	"io"
	"log/slog"
	"os"
)

// options holds the internal configuration for opening a Project.
type options struct {
	logger *slog.Logger
	out    io.Writer
	// maxCountDiff is nil unless WithMaxCountDiff was given; an explicit
	// 0 is a valid tolerance and must not fall back to the config.
	maxCountDiff *int
}

// Option defines a functional option for configuring a Project.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		logger: slog.Default(),
		out:    os.Stdout,
	}
}

// WithLogger sets the logger for the project's services.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithOutput redirects the human-readable diagnostics (default stdout).
func WithOutput(out io.Writer) Option {
	return func(o *options) {
		o.out = out
	}
}

// WithMaxCountDiff overrides the configured i/u count tolerance.
// Zero is a valid tolerance: every count difference gets reported.
func WithMaxCountDiff(n int) Option {
	return func(o *options) {
		o.maxCountDiff = &n
	}
}
