package hotkeys

import (
	"context"
	"sync"

	derrors "github.com/deskautomate/engine/internal/errors"
	"go.uber.org/zap"
)

// HotkeyID represents a unique identifier for a registered hotkey.
type HotkeyID int

// Callback defines the function signature for hotkey event handlers.
type Callback func()

// Source delivers global key-chord events to a Manager. Implementations wrap
// a platform's global-hotkey API; the pure-Go NullSource is used wherever no
// such binding is available.
type Source interface {
	// Listen blocks, calling dispatch for every recognized key chord, until
	// ctx is cancelled or an unrecoverable error occurs.
	Listen(ctx context.Context, dispatch func(keyString string)) error
}

// NullSource never produces events; it simply blocks until ctx is cancelled.
// It is the default Source on platforms without a native global-hotkey hook.
type NullSource struct{}

// Listen blocks until ctx is cancelled.
func (NullSource) Listen(ctx context.Context, _ func(keyString string)) error {
	<-ctx.Done()

	return ctx.Err()
}

// Manager handles registration, unregistration, and dispatch of global hotkeys.
// It matches key chords delivered by a Source against registered callbacks.
type Manager struct {
	source    Source
	callbacks map[HotkeyID]Callback
	byKey     map[string]HotkeyID
	mu        sync.RWMutex
	logger    *zap.Logger
	nextID    HotkeyID
}

// NewManager creates a hotkey manager driven by source. Pass hotkeys.NullSource{}
// where no native global-hotkey binding is available.
func NewManager(source Source, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}

	if source == nil {
		source = NullSource{}
	}

	return &Manager{
		source:    source,
		callbacks: make(map[HotkeyID]Callback),
		byKey:     make(map[string]HotkeyID),
		logger:    logger,
		nextID:    1,
	}
}

// Run starts listening on the configured Source until ctx is cancelled.
func (m *Manager) Run(ctx context.Context) error {
	return m.source.Listen(ctx, m.dispatch)
}

// Register adds a new global hotkey that triggers callback when keyString is observed.
// keyString follows a "Cmd+Shift+X" style modifier+key format.
func (m *Manager) Register(keyString string, callback Callback) (HotkeyID, error) {
	if keyString == "" {
		return 0, derrors.New(derrors.CodeInvalidArgument, "hotkey string must not be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byKey[keyString]; exists {
		return 0, derrors.Newf(derrors.CodeInvalidArgument, "hotkey %q already registered", keyString)
	}

	id := m.nextID
	m.nextID++

	m.callbacks[id] = callback
	m.byKey[keyString] = id

	m.logger.Info("registered hotkey", zap.String("key", keyString), zap.Int("id", int(id)))

	return id, nil
}

// Unregister removes a previously registered hotkey by its ID.
func (m *Manager) Unregister(hotkeyID HotkeyID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.callbacks, hotkeyID)

	for key, id := range m.byKey {
		if id == hotkeyID {
			delete(m.byKey, key)

			break
		}
	}

	m.logger.Info("unregistered hotkey", zap.Int("id", int(hotkeyID)))
}

// UnregisterAll removes all currently registered hotkeys.
func (m *Manager) UnregisterAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = make(map[HotkeyID]Callback)
	m.byKey = make(map[string]HotkeyID)

	m.logger.Info("unregistered all hotkeys")
}

// dispatch matches an observed key chord against registered hotkeys and
// invokes the corresponding callback, if any.
func (m *Manager) dispatch(keyString string) {
	m.mu.RLock()
	id, ok := m.byKey[keyString]

	var callback Callback
	if ok {
		callback = m.callbacks[id]
	}
	m.mu.RUnlock()

	if callback != nil {
		m.logger.Debug("hotkey triggered", zap.String("key", keyString))
		callback()
	}
}
