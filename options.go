package ral

import (
	"log/slog"

	"github.com/gogpu/ral/backend"
)

// Option configures Open.
//
// Example:
//
//	// Backend from the settings file, default logging
//	dev, err := ral.Open(settings)
//
//	// Explicit backend and logger (dependency injection)
//	dev, err := ral.Open(settings,
//		ral.WithBackend(backend.NewVulkan()),
//		ral.WithLogger(logger))
type Option func(*openOptions)

// openOptions holds optional configuration for Open.
type openOptions struct {
	logger  *slog.Logger
	backend backend.Backend
	adapter string
	native  bool
}

// defaultOpenOptions returns the default options.
func defaultOpenOptions() openOptions {
	return openOptions{native: true}
}

// WithLogger sets the device logger. Without it, the device logs through
// Logger filtered at the settings log level.
func WithLogger(l *slog.Logger) Option {
	return func(o *openOptions) {
		o.logger = l
	}
}

// WithBackend uses b instead of resolving the backend named by the settings.
func WithBackend(b backend.Backend) Option {
	return func(o *openOptions) {
		o.backend = b
	}
}

// WithAdapter selects the adapter by name instead of by type rank.
func WithAdapter(name string) Option {
	return func(o *openOptions) {
		o.adapter = name
	}
}

// WithoutNativeDevice validates the adapter without opening a hal device.
// Fences then use the backend's own realization and queues run host work
// only.
func WithoutNativeDevice() Option {
	return func(o *openOptions) {
		o.native = false
	}
}
