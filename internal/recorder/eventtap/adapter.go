// Package eventtap intercepts raw keyboard events during a recording session
// so a configured stop chord can be consumed before it reaches the
// focused application, instead of merely being observed like an ordinary
// hotkey registration.
package eventtap

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Source delivers raw key-down events to a Tap. Implementations wrap a
// platform's low-level keyboard tap (CGEventTap on macOS, a low-level
// keyboard hook on Windows, an XRecord extension on Linux).
type Source interface {
	// Listen blocks, calling onKey for every observed key, until ctx is
	// cancelled. The Source only calls onKey while the tap is enabled.
	Listen(ctx context.Context, onKey func(key string)) error
}

// NullSource never produces events; it blocks until ctx is cancelled. It is
// the default Source on platforms without a native low-level keyboard tap.
type NullSource struct{}

// Listen blocks until ctx is cancelled.
func (NullSource) Listen(ctx context.Context, _ func(key string)) error {
	<-ctx.Done()

	return ctx.Err()
}

// Tap wraps a Source with enable/disable gating and a configurable set of
// hotkeys of interest, so the recorder can arm and disarm capture around a
// session without tearing down the underlying listener.
type Tap struct {
	source  Source
	logger  *zap.Logger
	mu      sync.Mutex
	enabled bool
	hotkeys map[string]bool
	handler func(key string)
}

// NewTap builds a Tap over source. Pass eventtap.NullSource{} where no native
// low-level keyboard tap is available.
func NewTap(source Source, logger *zap.Logger) *Tap {
	if logger == nil {
		logger = zap.NewNop()
	}

	if source == nil {
		source = NullSource{}
	}

	return &Tap{
		source:  source,
		logger:  logger,
		hotkeys: make(map[string]bool),
	}
}

// Run starts listening on the configured Source until ctx is cancelled.
func (t *Tap) Run(ctx context.Context) error {
	return t.source.Listen(ctx, t.handle)
}

func (t *Tap) handle(key string) {
	t.mu.Lock()
	enabled := t.enabled
	armed := t.hotkeys[key]
	handler := t.handler
	t.mu.Unlock()

	if !enabled || !armed || handler == nil {
		return
	}

	handler(key)
}

// Adapter exposes a context-aware enable/disable API over a Tap, mirroring
// the shape the recorder core expects from its capture dependencies.
type Adapter struct {
	tap    *Tap
	logger *zap.Logger
}

// NewAdapter creates a new event tap adapter.
func NewAdapter(tap *Tap, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Adapter{tap: tap, logger: logger}
}

// Enable enables the event tap.
func (a *Adapter) Enable(_ context.Context) error {
	a.tap.mu.Lock()
	defer a.tap.mu.Unlock()

	a.tap.enabled = true

	return nil
}

// Disable disables the event tap.
func (a *Adapter) Disable(_ context.Context) error {
	a.tap.mu.Lock()
	defer a.tap.mu.Unlock()

	a.tap.enabled = false

	return nil
}

// IsEnabled returns true if event capture is active.
func (a *Adapter) IsEnabled() bool {
	a.tap.mu.Lock()
	defer a.tap.mu.Unlock()

	return a.tap.enabled
}

// SetHandler sets the function to call when an armed key is observed.
func (a *Adapter) SetHandler(handler func(key string)) {
	a.tap.mu.Lock()
	defer a.tap.mu.Unlock()

	a.tap.handler = handler
}

// SetHotkeys configures which keys the event tap should intercept.
func (a *Adapter) SetHotkeys(hotkeys []string) {
	a.tap.mu.Lock()
	defer a.tap.mu.Unlock()

	armed := make(map[string]bool, len(hotkeys))
	for _, key := range hotkeys {
		if key != "" {
			armed[key] = true
		}
	}

	a.tap.hotkeys = armed
}

// Destroy disables the event tap and clears its handler.
func (a *Adapter) Destroy() {
	a.tap.mu.Lock()
	defer a.tap.mu.Unlock()

	a.tap.enabled = false
	a.tap.handler = nil
}
