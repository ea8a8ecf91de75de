package recorder

import (
	"image"
	"time"

	"github.com/deskautomate/engine/internal/element"
)

// Typing-key and navigation-key classification used by the text-input
// completion tracker. These are logical key names as delivered by an
// InputSource, not raw scan codes.
var navigationKeys = map[string]bool{
	"ArrowUp": true, "ArrowDown": true, "ArrowLeft": true, "ArrowRight": true,
}

const suggestionSelectionWindow = 5 * time.Second

// textInputState tracks one in-progress text field's typing session,
// keyed by the focused element's identity.
type textInputState struct {
	elem           *element.Element
	fieldName      string
	fieldType      string
	keystrokes     int
	startedAt      time.Time
	lastArrowNavAt time.Time
	sawArrowNav    bool
}

// appSwitchState tracks the most recent application-switch correlating
// signals: an Alt+Tab hotkey or taskbar click observed shortly before the
// window/focus actually changed.
type appSwitchState struct {
	current       string
	enteredAt     time.Time
	lastAltTabAt  time.Time
	lastTaskbarAt time.Time
}

// dragState tracks an in-progress mouse-down, waiting to see if movement
// exceeds minDragDistance before a matching mouse-up is treated as a drop.
type dragState struct {
	active      bool
	from        image.Point
	fromElement *element.Element
	dragging    bool
}

// Aggregator derives semantic events (§4.9) from the raw input stream: it
// is fed one RawInput plus its best-effort resolved UI element at a time,
// in order, and emits zero or more derived Events per input.
type Aggregator struct {
	cfg Config

	textInput *textInputState
	appSwitch appSwitchState
	drag      dragState
}

// NewAggregator builds an Aggregator for a recording session configured by
// cfg.
func NewAggregator(cfg Config) *Aggregator {
	return &Aggregator{cfg: cfg}
}

// Feed processes one raw input, with its resolved element (nil if none was
// found or CaptureUIElements is disabled), and returns any semantic events
// it derives in addition to the raw event itself.
func (a *Aggregator) Feed(raw RawInput, elem *element.Element) []Event {
	base := Event{
		Kind:      raw.Kind,
		Timestamp: raw.Time,
		Element:   elem,
		Point:     raw.Point,
		Button:    raw.Button,
		Key:       raw.Key,
		Text:      raw.Text,
	}

	events := []Event{base}

	switch raw.Kind {
	case KindKeyDown:
		events = append(events, a.feedKeyDown(raw, elem)...)
	case KindMouseDown:
		events = append(events, a.feedMouseDown(raw, elem)...)
	case KindMouseUp:
		events = append(events, a.feedMouseUp(raw, elem)...)
	case KindMouseMove:
		a.feedMouseMove(raw)
	}

	if a.cfg.RecordApplicationSwitches && elem != nil {
		if evt, ok := a.trackApplicationSwitch(raw, elem); ok {
			events = append(events, evt)
		}
	}

	return events
}

// FeedHotkey reports a named chord match (observed via a hotkey manager,
// not the raw key stream) and returns its derived event.
func (a *Aggregator) FeedHotkey(chord, action string, at time.Time) Event {
	if chord == "Alt+Tab" {
		a.appSwitch.lastAltTabAt = at
	}

	return Event{
		Kind:      KindHotkey,
		Timestamp: at,
		Hotkey:    &Hotkey{Chord: chord, Action: action},
	}
}

// FeedTaskbarClick records that a taskbar element was just clicked, for
// application-switch attribution.
func (a *Aggregator) FeedTaskbarClick(at time.Time) {
	a.appSwitch.lastTaskbarAt = at
}

func (a *Aggregator) feedKeyDown(raw RawInput, elem *element.Element) []Event {
	if !a.cfg.RecordTextInputCompletion {
		return nil
	}

	if elem == nil || !elem.IsEditable() {
		return a.flushTextInput(raw.Time, InputMethodTyping)
	}

	state := a.textInput
	if state == nil || state.elem.ID() != elem.ID() {
		flushed := a.flushTextInput(raw.Time, InputMethodTyping)
		state = &textInputState{elem: elem, fieldName: elem.Name(), fieldType: string(elem.Role()), startedAt: raw.Time}
		a.textInput = state

		return append(flushed, a.feedKeyDown(raw, elem)...)
	}

	switch {
	case navigationKeys[raw.Key]:
		state.sawArrowNav = true
		state.lastArrowNavAt = raw.Time

		return nil
	case raw.Key == "Enter" || raw.Key == "Tab":
		method := InputMethodTyping
		if state.sawArrowNav && raw.Time.Sub(state.lastArrowNavAt) <= suggestionSelectionWindow {
			method = InputMethodSuggestionSelection
		}

		if state.keystrokes == 0 && method == InputMethodTyping {
			return nil
		}

		return a.flushTextInput(raw.Time, method)
	default:
		state.keystrokes++
		state.sawArrowNav = false

		return nil
	}
}

// flushTextInput completes and clears the in-progress text field, if any,
// returning its KindTextInputCompleted event. TextValue is read from the
// element itself at flush time rather than accumulated from keystrokes,
// since a keystroke-by-keystroke sum diverges from the field's real
// contents the moment autocomplete, IME composition, or a paste is involved.
func (a *Aggregator) flushTextInput(at time.Time, method string) []Event {
	state := a.textInput
	if state == nil || state.keystrokes == 0 {
		a.textInput = nil

		return nil
	}

	a.textInput = nil

	return []Event{{
		Kind:      KindTextInputCompleted,
		Timestamp: at,
		Element:   state.elem,
		TextInputCompleted: &TextInputCompletion{
			TextValue:        state.elem.Value(),
			FieldName:        state.fieldName,
			FieldType:        state.fieldType,
			InputMethod:      method,
			TypingDurationMS: at.Sub(state.startedAt).Milliseconds(),
			KeystrokeCount:   state.keystrokes,
		},
	}}
}

// FlushOnFocusLeave completes any in-progress text field because focus
// moved away from it, and FlushOnInactivity completes one because no
// keystroke arrived within the configured timeout. Both are driven by the
// session, which owns the focus-leave and inactivity-timer observations.
func (a *Aggregator) FlushOnFocusLeave(at time.Time) []Event {
	return a.flushTextInput(at, InputMethodTyping)
}

func (a *Aggregator) FlushOnInactivity(at time.Time) []Event {
	return a.flushTextInput(at, InputMethodTyping)
}

func (a *Aggregator) feedMouseDown(raw RawInput, elem *element.Element) []Event {
	if !a.cfg.RecordDragDrop {
		return nil
	}

	a.drag = dragState{active: true, from: raw.Point, fromElement: elem}

	return nil
}

func (a *Aggregator) feedMouseMove(raw RawInput) {
	if !a.drag.active || a.drag.dragging {
		return
	}

	if distance(a.drag.from, raw.Point) >= a.cfg.MinDragDistance {
		a.drag.dragging = true
	}
}

func (a *Aggregator) feedMouseUp(raw RawInput, elem *element.Element) []Event {
	if !a.cfg.RecordDragDrop || !a.drag.active {
		return nil
	}

	drag := a.drag
	a.drag = dragState{}

	if !drag.dragging {
		return nil
	}

	return []Event{{
		Kind:      KindDragDrop,
		Timestamp: raw.Time,
		DragDrop: &DragDrop{
			From:        drag.from,
			To:          raw.Point,
			FromElement: drag.fromElement,
			ToElement:   elem,
		},
	}}
}

// trackApplicationSwitch attributes a change of the focused application's
// process to one of AltTab, TaskbarClick, WindowClick or Other, based on
// which correlating signal (if any) preceded it within its time window.
func (a *Aggregator) trackApplicationSwitch(raw RawInput, elem *element.Element) (Event, bool) {
	appName := elem.ApplicationName()
	if appName == "" || appName == a.appSwitch.current {
		return Event{}, false
	}

	prev := a.appSwitch
	hadPrev := prev.current != ""

	method := MethodOther
	switch {
	case !prev.lastAltTabAt.IsZero() && raw.Time.Sub(prev.lastAltTabAt) <= 2*time.Second:
		method = MethodAltTab
	case !prev.lastTaskbarAt.IsZero() && raw.Time.Sub(prev.lastTaskbarAt) <= time.Second:
		method = MethodTaskbarClick
	case raw.Kind == KindMouseClick || raw.Kind == KindMouseDown:
		method = MethodWindowClick
	}

	evt := Event{
		Kind:      KindApplicationSwitch,
		Timestamp: raw.Time,
		Element:   elem,
		ApplicationSwitch: &ApplicationSwitch{
			From:    prev.current,
			To:      appName,
			Method:  method,
			HasFrom: hadPrev,
		},
	}

	if hadPrev && !prev.enteredAt.IsZero() {
		evt.ApplicationSwitch.DwellTimeMS = raw.Time.Sub(prev.enteredAt).Milliseconds()
		evt.ApplicationSwitch.HasDwell = true
	}

	a.appSwitch.current = appName
	a.appSwitch.enteredAt = raw.Time

	return evt, true
}

func distance(a, b image.Point) int {
	dx := a.X - b.X
	dy := a.Y - b.Y

	if dx < 0 {
		dx = -dx
	}

	if dy < 0 {
		dy = -dy
	}

	if dx > dy {
		return dx
	}

	return dy
}
