package config

import "context"

// Retrieval defines read access to the current configuration.
type Retrieval interface {
	// Get returns the current configuration.
	Get() *Config

	// Path returns the current configuration file path.
	Path() string
}

// Management defines lifecycle operations over the configuration.
type Management interface {
	// Reload reloads the configuration from the specified path.
	Reload(ctx context.Context, path string) error

	// Watch returns a channel that receives config updates.
	// The channel is closed when the context is canceled.
	Watch(ctx context.Context) <-chan *Config
}

// Validation validates a configuration value in isolation.
type Validation interface {
	Validate(cfg *Config) error
}

// Port composes retrieval, lifecycle management, and validation.
type Port interface {
	Retrieval
	Management
	Validation
}

var _ Port = (*Service)(nil)
