package config

import (
	"context"
	"sync"
	"time"

	derrors "github.com/deskautomate/engine/internal/errors"
)

// pollInterval is how often Watch reloads the config file.
const pollInterval = 2 * time.Second

// Service owns the loaded configuration and supports hot reload.
// It implements Port.
type Service struct {
	mu   sync.RWMutex
	cfg  *Config
	path string
}

// NewService loads the configuration at path (or the default path if empty)
// and returns a ready-to-use Service.
func NewService(path string) (*Service, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	resolvedPath := path
	if resolvedPath == "" {
		resolvedPath, _ = DefaultPath()
	}

	SetGlobal(cfg)

	return &Service{cfg: cfg, path: resolvedPath}, nil
}

// Get returns the current configuration snapshot.
func (s *Service) Get() *Config {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cfg
}

// Path returns the configuration file path this service was loaded from.
func (s *Service) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.path
}

// Reload re-reads the configuration from path and swaps it in atomically.
// On failure the previously loaded configuration remains in effect.
func (s *Service) Reload(_ context.Context, path string) error {
	cfg, err := Load(path)
	if err != nil {
		return derrors.Wrap(err, derrors.CodeInvalidConfig, "failed to reload config")
	}

	s.mu.Lock()
	s.cfg = cfg
	s.path = path
	s.mu.Unlock()

	SetGlobal(cfg)

	return nil
}

// Validate validates the given configuration without installing it.
func (s *Service) Validate(cfg *Config) error {
	return Validate(cfg)
}

// Watch reloads the config file every pollInterval and emits the reloaded
// configuration on the returned channel. It does not compare modification
// times: every successful reload is emitted, whether or not the file
// changed. The channel is closed when ctx is canceled.
func (s *Service) Watch(ctx context.Context) <-chan *Config {
	updates := make(chan *Config)

	go func() {
		defer close(updates)

		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				path := s.Path()

				reloadErr := s.Reload(ctx, path)
				if reloadErr != nil {
					continue
				}

				select {
				case updates <- s.Get():
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return updates
}
