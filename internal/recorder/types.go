package recorder

import (
	"image"
	"time"

	"github.com/deskautomate/engine/internal/config"
	"github.com/deskautomate/engine/internal/element"
)

// EventKind classifies a recorded event, raw or semantic.
type EventKind string

// Raw event kinds, emitted directly from an InputSource, or (KindFocusChange)
// from the Session's own accessibility-port focus poll.
const (
	KindMouseMove       EventKind = "mouse_move"
	KindMouseDown       EventKind = "mouse_down"
	KindMouseUp         EventKind = "mouse_up"
	KindMouseClick      EventKind = "mouse_click"
	KindScroll          EventKind = "scroll"
	KindKeyDown         EventKind = "key_down"
	KindKeyUp           EventKind = "key_up"
	KindClipboardChange EventKind = "clipboard_change"
	KindFocusChange     EventKind = "focus_change"
)

// Semantic event kinds, derived by the Aggregator (C9).
const (
	KindTextInputCompleted EventKind = "text_input_completed"
	KindApplicationSwitch  EventKind = "application_switch"
	KindDragDrop           EventKind = "drag_drop"
	KindHotkey             EventKind = "hotkey"
)

// KindLagged marks a broadcast gap notice, not a recorded input event.
const KindLagged EventKind = "lagged"

// Application switch attribution methods.
const (
	MethodAltTab      = "AltTab"
	MethodTaskbarClick = "TaskbarClick"
	MethodWindowClick = "WindowClick"
	MethodOther       = "Other"
)

// Text-input input methods.
const (
	InputMethodTyping             = "typing"
	InputMethodSuggestionSelection = "suggestion_selection"
)

// TextInputCompletion is the payload of a KindTextInputCompleted event.
type TextInputCompletion struct {
	TextValue        string
	FieldName        string
	FieldType        string
	InputMethod      string
	TypingDurationMS int64
	KeystrokeCount   int
}

// ApplicationSwitch is the payload of a KindApplicationSwitch event.
type ApplicationSwitch struct {
	From        string
	To          string
	Method      string
	DwellTimeMS int64
	HasFrom     bool
	HasDwell    bool
}

// DragDrop is the payload of a KindDragDrop event.
type DragDrop struct {
	From        image.Point
	To          image.Point
	FromElement *element.Element
	ToElement   *element.Element
}

// Hotkey is the payload of a KindHotkey event.
type Hotkey struct {
	Chord  string
	Action string
}

// Event is a single item on the recorder's broadcast: either a raw input
// event or a semantic event derived by the aggregator.
type Event struct {
	Kind      EventKind
	Timestamp time.Time
	Element   *element.Element

	Point     image.Point
	Button    string
	Key       string
	Modifiers []string
	Text      string

	TextInputCompleted *TextInputCompletion
	ApplicationSwitch  *ApplicationSwitch
	DragDrop           *DragDrop
	Hotkey             *Hotkey
	Dropped            int
}

// Config is a single recording session's configuration (§4.8): the
// enumerated enable flags plus the tuning knobs carried over from the
// engine-wide RecorderConfig.
type Config struct {
	RecordMouse                bool
	RecordKeyboard             bool
	RecordClipboard            bool
	RecordHotkeys              bool
	RecordTextInputCompletion  bool
	RecordApplicationSwitches  bool
	RecordBrowserTabNavigation bool
	RecordTextSelection        bool
	RecordDragDrop             bool
	CaptureUIElements          bool

	MouseMoveThrottleMs          int
	MinDragDistance              int
	TextInputCompletionTimeoutMs int

	EnableMultithreading bool
	FilterMouseNoise     bool
	PerformanceMode      bool

	BroadcastBacklog int

	// HotkeyTable maps chord strings (e.g. "Ctrl+Shift+K") to the action
	// name emitted on a KindHotkey event.
	HotkeyTable map[string]string

	// StopChord, when non-empty, is consumed (not merely observed) via the
	// eventtap source and stops the session when pressed.
	StopChord string
}

// DefaultConfig builds a session Config from the engine's global recorder
// defaults, with every enumerated flag enabled.
func DefaultConfig(cfg config.RecorderConfig) Config {
	return Config{
		RecordMouse:                true,
		RecordKeyboard:             true,
		RecordClipboard:            true,
		RecordHotkeys:              true,
		RecordTextInputCompletion:  true,
		RecordApplicationSwitches:  true,
		RecordBrowserTabNavigation: true,
		RecordTextSelection:        true,
		RecordDragDrop:             true,
		CaptureUIElements:          true,

		MouseMoveThrottleMs:          cfg.MouseMoveThrottleMs,
		MinDragDistance:              cfg.MinDragDistance,
		TextInputCompletionTimeoutMs: cfg.TextInputCompletionTimeoutMs,

		EnableMultithreading: cfg.EnableMultithreading,
		FilterMouseNoise:     cfg.FilterMouseNoise,
		PerformanceMode:      cfg.PerformanceMode,

		BroadcastBacklog: cfg.BroadcastBacklog,
	}
}
