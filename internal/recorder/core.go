package recorder

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/deskautomate/engine/internal/accessibility"
	"github.com/deskautomate/engine/internal/element"
	"github.com/deskautomate/engine/internal/recorder/eventtap"
	"github.com/deskautomate/engine/internal/recorder/hotkeys"
)

// elementLookupTimeout bounds how long Session will wait to resolve the UI
// element under a raw input's point or focus before giving up and emitting
// the event without one.
const elementLookupTimeout = 50 * time.Millisecond

// inactivityPollInterval is how often Session checks whether the
// in-progress text field has gone quiet for TextInputCompletionTimeoutMs.
const inactivityPollInterval = 200 * time.Millisecond

// focusPollInterval is how often Session polls the accessibility port for
// the currently focused element, to detect completion criterion (a) of
// §4.9 ("focus leaves the element") when no OS focus-change hook is wired
// into the InputSource.
const focusPollInterval = 150 * time.Millisecond

// Session is one recording session (§4.8): it drives an InputSource, feeds
// every raw input through an Aggregator with best-effort UI element
// context, and broadcasts the resulting raw and semantic events to any
// number of subscribers.
type Session struct {
	ID string

	cfg    Config
	source InputSource
	port   accessibility.Port
	logger *zap.Logger

	tap     *eventtap.Tap
	hotkeys *hotkeys.Manager

	broadcast *Broadcaster
	agg       *Aggregator

	mu           sync.Mutex
	lastActivity time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// NewSession builds a Session. port may be nil, in which case events are
// emitted without resolved UI elements. stopSource/hotkeySource may be nil,
// in which case eventtap.NullSource{}/hotkeys.NullSource{} are used.
func NewSession(
	cfg Config,
	source InputSource,
	stopSource eventtap.Source,
	hotkeySource hotkeys.Source,
	port accessibility.Port,
	logger *zap.Logger,
) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}

	if source == nil {
		source = NullInputSource{}
	}

	return &Session{
		ID:        uuid.NewString(),
		cfg:       cfg,
		source:    source,
		port:      port,
		logger:    logger,
		tap:       eventtap.NewTap(stopSource, logger),
		hotkeys:   hotkeys.NewManager(hotkeySource, logger),
		broadcast: NewBroadcaster(cfg.BroadcastBacklog),
		agg:       NewAggregator(cfg),
	}
}

// Subscribe registers a new consumer of this session's event stream. See
// Broadcaster.Subscribe.
func (s *Session) Subscribe() (<-chan Event, func()) {
	return s.broadcast.Subscribe()
}

// Start begins capturing input until the context is cancelled, the
// configured stop chord fires, or Stop is called. It returns once capture
// has begun; call Wait to block until the session actually ends.
func (s *Session) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	if err := s.wireHotkeys(); err != nil {
		cancel()

		return err
	}

	adapter := eventtap.NewAdapter(s.tap, s.logger)

	if s.cfg.StopChord != "" {
		adapter.SetHotkeys([]string{s.cfg.StopChord})
		adapter.SetHandler(func(string) { s.Stop() })

		if err := adapter.Enable(runCtx); err != nil {
			cancel()

			return err
		}
	}

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		if err := s.tap.Run(runCtx); err != nil && runCtx.Err() == nil {
			s.logger.Warn("event tap stopped", zap.Error(err))
		}
	}()

	wg.Add(1)

	go func() {
		defer wg.Done()

		if err := s.hotkeys.Run(runCtx); err != nil && runCtx.Err() == nil {
			s.logger.Warn("hotkey manager stopped", zap.Error(err))
		}
	}()

	wg.Add(1)

	go func() {
		defer wg.Done()
		s.watchInactivity(runCtx)
	}()

	wg.Add(1)

	go func() {
		defer wg.Done()
		s.watchFocus(runCtx)
	}()

	wg.Add(1)

	go func() {
		defer wg.Done()

		if err := s.source.Listen(runCtx, s.handleRaw); err != nil && runCtx.Err() == nil {
			s.logger.Warn("input source stopped", zap.Error(err))
		}
	}()

	go func() {
		wg.Wait()
		close(s.done)
	}()

	return nil
}

// wireHotkeys registers every chord in the session's HotkeyTable with the
// hotkey manager, routing a match into the aggregator as a KindHotkey
// event.
func (s *Session) wireHotkeys() error {
	if !s.cfg.RecordHotkeys {
		return nil
	}

	for chord, action := range s.cfg.HotkeyTable {
		chord, action := chord, action

		if _, err := s.hotkeys.Register(chord, func() {
			evt := s.agg.FeedHotkey(chord, action, now())
			s.broadcast.Publish(evt)
		}); err != nil {
			return err
		}
	}

	return nil
}

// handleRaw is the InputSource callback: it resolves best-effort UI
// element context, feeds the aggregator, and publishes every resulting
// event.
func (s *Session) handleRaw(raw RawInput) {
	if !s.enabledFor(raw.Kind) {
		return
	}

	s.mu.Lock()
	s.lastActivity = raw.Time
	s.mu.Unlock()

	var elem *element.Element

	if s.cfg.CaptureUIElements && s.port != nil {
		elem = s.resolveElement(raw)
	}

	for _, evt := range s.agg.Feed(raw, elem) {
		s.broadcast.Publish(evt)
	}
}

func (s *Session) enabledFor(kind EventKind) bool {
	switch kind {
	case KindMouseMove, KindMouseDown, KindMouseUp, KindMouseClick, KindScroll:
		return s.cfg.RecordMouse
	case KindKeyDown, KindKeyUp:
		return s.cfg.RecordKeyboard
	case KindClipboardChange:
		return s.cfg.RecordClipboard
	default:
		return true
	}
}

// resolveElement finds the UI element under raw's point (mouse events) or
// currently focused (keyboard events), bounded by elementLookupTimeout.
func (s *Session) resolveElement(raw RawInput) *element.Element {
	ctx, cancel := context.WithTimeout(context.Background(), elementLookupTimeout)
	defer cancel()

	switch raw.Kind {
	case KindKeyDown, KindKeyUp:
		elem, err := s.port.FocusedElement(ctx)
		if err != nil {
			return nil
		}

		return elem
	default:
		elements, err := s.port.ClickableElements(ctx, accessibility.DefaultElementFilter())
		if err != nil {
			return nil
		}

		for _, elem := range elements {
			if elem.Contains(raw.Point) {
				return elem
			}
		}

		return nil
	}
}

// watchInactivity polls for a text field gone quiet past
// TextInputCompletionTimeoutMs and flushes it as completed.
func (s *Session) watchInactivity(ctx context.Context) {
	if s.cfg.TextInputCompletionTimeoutMs <= 0 {
		return
	}

	timeout := time.Duration(s.cfg.TextInputCompletionTimeoutMs) * time.Millisecond
	ticker := time.NewTicker(inactivityPollInterval)

	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			idle := !s.lastActivity.IsZero() && now().Sub(s.lastActivity) >= timeout
			s.mu.Unlock()

			if idle {
				for _, evt := range s.agg.FlushOnInactivity(now()) {
					s.broadcast.Publish(evt)
				}
			}
		}
	}
}

// watchFocus polls the accessibility port for the currently focused element
// and, when it changes, flushes any in-progress text input as completed
// (completion criterion (a), §4.9) before publishing a KindFocusChange
// event for the new focus target. It is a no-op when no port was supplied
// or text-input completion tracking is disabled.
func (s *Session) watchFocus(ctx context.Context) {
	if s.port == nil || !s.cfg.RecordTextInputCompletion {
		return
	}

	ticker := time.NewTicker(focusPollInterval)
	defer ticker.Stop()

	var lastID element.ID

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			lookupCtx, cancel := context.WithTimeout(ctx, elementLookupTimeout)
			elem, err := s.port.FocusedElement(lookupCtx)
			cancel()

			if err != nil || elem == nil || elem.ID() == lastID {
				continue
			}

			hadPrior := lastID != ""
			lastID = elem.ID()

			if !hadPrior {
				continue
			}

			at := now()

			for _, evt := range s.agg.FlushOnFocusLeave(at) {
				s.broadcast.Publish(evt)
			}

			s.broadcast.Publish(Event{Kind: KindFocusChange, Timestamp: at, Element: elem})
		}
	}
}

// Stop ends the session: it cancels capture and closes the broadcast once
// every capture goroutine has exited.
func (s *Session) Stop() {
	if s.cancel == nil {
		return
	}

	s.cancel()
	<-s.done
	s.broadcast.Close()
}

// Wait blocks until the session's capture goroutines have all exited,
// whether due to Stop, context cancellation, or the configured stop chord.
func (s *Session) Wait() {
	if s.done == nil {
		return
	}

	<-s.done
}
