package recorder

import (
	"context"
	"image"
	"time"
)

// RawInput is a single low-level input notification delivered by an
// InputSource: a mouse move/button/scroll, a key down/up, or a clipboard
// change.
type RawInput struct {
	Kind   EventKind
	Point  image.Point
	Button string
	Key    string
	Text   string
	Time   time.Time
}

// InputSource delivers the full raw mouse/keyboard/clipboard stream during
// a recording session. Implementations wrap a platform's low-level input
// hooks (CGEventTap on macOS, a low-level mouse/keyboard hook on Windows, an
// XRecord extension on Linux).
type InputSource interface {
	// Listen blocks, calling onEvent for every observed input, until ctx is
	// cancelled.
	Listen(ctx context.Context, onEvent func(RawInput)) error
}

// NullInputSource never produces events; it blocks until ctx is cancelled.
// It is the default InputSource on platforms without a native low-level
// input hook.
type NullInputSource struct{}

// Listen blocks until ctx is cancelled.
func (NullInputSource) Listen(ctx context.Context, _ func(RawInput)) error {
	<-ctx.Done()

	return ctx.Err()
}
