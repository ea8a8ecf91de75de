package recorder_test

import (
	"image"
	"testing"
	"time"

	"github.com/deskautomate/engine/internal/element"
	"github.com/deskautomate/engine/internal/recorder"
)

func textField(t *testing.T, id, value string) *element.Element {
	t.Helper()

	elem, err := element.NewElement(
		element.ID(id),
		image.Rect(0, 0, 100, 20),
		element.RoleEdit,
		element.WithEditable(true),
		element.WithName("search"),
		element.WithValue(value),
	)
	if err != nil {
		t.Fatalf("NewElement() error: %v", err)
	}

	return elem
}

func baseConfig() recorder.Config {
	return recorder.Config{
		RecordTextInputCompletion: true,
		RecordApplicationSwitches: true,
		RecordDragDrop:            true,
		MinDragDistance:           8,
	}
}

func TestAggregatorCompletesTextInputOnEnter(t *testing.T) {
	agg := recorder.NewAggregator(baseConfig())
	field := textField(t, "search-box", "hi")
	start := time.Now()

	agg.Feed(recorder.RawInput{Kind: recorder.KindKeyDown, Key: "h", Text: "h", Time: start}, field)
	agg.Feed(recorder.RawInput{Kind: recorder.KindKeyDown, Key: "i", Text: "i", Time: start.Add(50 * time.Millisecond)}, field)
	events := agg.Feed(recorder.RawInput{Kind: recorder.KindKeyDown, Key: "Enter", Time: start.Add(100 * time.Millisecond)}, field)

	var completion *recorder.TextInputCompletion

	for _, evt := range events {
		if evt.Kind == recorder.KindTextInputCompleted {
			completion = evt.TextInputCompleted
		}
	}

	if completion == nil {
		t.Fatal("expected a KindTextInputCompleted event")
	}

	if completion.TextValue != "hi" {
		t.Errorf("TextValue = %q, want %q", completion.TextValue, "hi")
	}

	if completion.KeystrokeCount != 2 {
		t.Errorf("KeystrokeCount = %d, want 2", completion.KeystrokeCount)
	}

	if completion.InputMethod != recorder.InputMethodTyping {
		t.Errorf("InputMethod = %q, want %q", completion.InputMethod, recorder.InputMethodTyping)
	}
}

func TestAggregatorDetectsSuggestionSelection(t *testing.T) {
	agg := recorder.NewAggregator(baseConfig())
	field := textField(t, "search-box", "histogram")
	start := time.Now()

	agg.Feed(recorder.RawInput{Kind: recorder.KindKeyDown, Key: "h", Text: "h", Time: start}, field)
	agg.Feed(recorder.RawInput{Kind: recorder.KindKeyDown, Key: "ArrowDown", Time: start.Add(50 * time.Millisecond)}, field)
	events := agg.Feed(recorder.RawInput{Kind: recorder.KindKeyDown, Key: "Enter", Time: start.Add(100 * time.Millisecond)}, field)

	var completion *recorder.TextInputCompletion

	for _, evt := range events {
		if evt.Kind == recorder.KindTextInputCompleted {
			completion = evt.TextInputCompleted
		}
	}

	if completion == nil {
		t.Fatal("expected a KindTextInputCompleted event")
	}

	if completion.InputMethod != recorder.InputMethodSuggestionSelection {
		t.Errorf("InputMethod = %q, want %q", completion.InputMethod, recorder.InputMethodSuggestionSelection)
	}
}

func TestAggregatorDetectsDragDrop(t *testing.T) {
	agg := recorder.NewAggregator(baseConfig())
	start := time.Now()

	agg.Feed(recorder.RawInput{Kind: recorder.KindMouseDown, Point: image.Pt(0, 0), Time: start}, nil)
	agg.Feed(recorder.RawInput{Kind: recorder.KindMouseMove, Point: image.Pt(50, 0), Time: start.Add(10 * time.Millisecond)}, nil)
	events := agg.Feed(recorder.RawInput{Kind: recorder.KindMouseUp, Point: image.Pt(50, 0), Time: start.Add(20 * time.Millisecond)}, nil)

	var drag *recorder.DragDrop

	for _, evt := range events {
		if evt.Kind == recorder.KindDragDrop {
			drag = evt.DragDrop
		}
	}

	if drag == nil {
		t.Fatal("expected a KindDragDrop event")
	}

	if drag.To != image.Pt(50, 0) {
		t.Errorf("To = %v, want %v", drag.To, image.Pt(50, 0))
	}
}

func TestAggregatorIgnoresSubThresholdMovement(t *testing.T) {
	agg := recorder.NewAggregator(baseConfig())
	start := time.Now()

	agg.Feed(recorder.RawInput{Kind: recorder.KindMouseDown, Point: image.Pt(0, 0), Time: start}, nil)
	agg.Feed(recorder.RawInput{Kind: recorder.KindMouseMove, Point: image.Pt(2, 0), Time: start.Add(10 * time.Millisecond)}, nil)
	events := agg.Feed(recorder.RawInput{Kind: recorder.KindMouseUp, Point: image.Pt(2, 0), Time: start.Add(20 * time.Millisecond)}, nil)

	for _, evt := range events {
		if evt.Kind == recorder.KindDragDrop {
			t.Error("expected no KindDragDrop for sub-threshold movement")
		}
	}
}

func TestAggregatorAttributesAltTabSwitch(t *testing.T) {
	agg := recorder.NewAggregator(baseConfig())
	start := time.Now()

	first, err := element.NewElement(element.ID("app-a"), image.Rect(0, 0, 10, 10), element.RoleWindow, element.WithApplicationName("Editor"))
	if err != nil {
		t.Fatalf("NewElement() error: %v", err)
	}

	second, err := element.NewElement(element.ID("app-b"), image.Rect(0, 0, 10, 10), element.RoleWindow, element.WithApplicationName("Terminal"))
	if err != nil {
		t.Fatalf("NewElement() error: %v", err)
	}

	agg.Feed(recorder.RawInput{Kind: recorder.KindMouseMove, Time: start}, first)
	agg.FeedHotkey("Alt+Tab", "switch_application", start.Add(100*time.Millisecond))

	events := agg.Feed(recorder.RawInput{Kind: recorder.KindMouseMove, Time: start.Add(200 * time.Millisecond)}, second)

	var sw *recorder.ApplicationSwitch

	for _, evt := range events {
		if evt.Kind == recorder.KindApplicationSwitch {
			sw = evt.ApplicationSwitch
		}
	}

	if sw == nil {
		t.Fatal("expected a KindApplicationSwitch event")
	}

	if sw.Method != recorder.MethodAltTab {
		t.Errorf("Method = %q, want %q", sw.Method, recorder.MethodAltTab)
	}

	if sw.From != "Editor" || sw.To != "Terminal" {
		t.Errorf("From/To = %q/%q, want Editor/Terminal", sw.From, sw.To)
	}
}
