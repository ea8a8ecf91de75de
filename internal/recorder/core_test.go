package recorder_test

import (
	"context"
	"testing"
	"time"

	"github.com/deskautomate/engine/internal/config"
	"github.com/deskautomate/engine/internal/recorder"
)

func defaultRecorderConfig() config.RecorderConfig {
	return config.RecorderConfig{
		MouseMoveThrottleMs:          16,
		MinDragDistance:              8,
		TextInputCompletionTimeoutMs: 0,
		BroadcastBacklog:             16,
	}
}

// scriptedSource replays a fixed sequence of RawInput, one at a time, then
// blocks until ctx is cancelled.
type scriptedSource struct {
	events []recorder.RawInput
}

func (s *scriptedSource) Listen(ctx context.Context, onEvent func(recorder.RawInput)) error {
	for _, evt := range s.events {
		onEvent(evt)
	}

	<-ctx.Done()

	return ctx.Err()
}

func TestSessionBroadcastsScriptedEvents(t *testing.T) {
	source := &scriptedSource{events: []recorder.RawInput{
		{Kind: recorder.KindMouseMove, Time: time.Now()},
		{Kind: recorder.KindMouseDown, Time: time.Now()},
	}}

	cfg := recorder.DefaultConfig(defaultRecorderConfig())
	session := recorder.NewSession(cfg, source, nil, nil, nil, nil)

	ch, unsub := session.Subscribe()
	defer unsub()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := session.Start(ctx); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	seen := make(map[recorder.EventKind]bool)

	for i := 0; i < 2; i++ {
		select {
		case evt := <-ch:
			seen[evt.Kind] = true
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}

	if !seen[recorder.KindMouseMove] || !seen[recorder.KindMouseDown] {
		t.Errorf("seen = %v, want mouse_move and mouse_down", seen)
	}

	session.Stop()
}

func TestSessionIDsAreUnique(t *testing.T) {
	cfg := recorder.DefaultConfig(defaultRecorderConfig())

	a := recorder.NewSession(cfg, nil, nil, nil, nil, nil)
	b := recorder.NewSession(cfg, nil, nil, nil, nil, nil)

	if a.ID == "" {
		t.Error("ID is empty")
	}

	if a.ID == b.ID {
		t.Error("expected distinct session IDs")
	}
}
