package locator_test

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/deskautomate/engine/internal/accessibility"
	"github.com/deskautomate/engine/internal/config"
	"github.com/deskautomate/engine/internal/element"
	"github.com/deskautomate/engine/internal/locator"
	"github.com/deskautomate/engine/internal/selector"
)

// fakeDiscovery is a minimal in-memory accessibility.ElementDiscovery backed
// by a fixed flat list of elements, for exercising the resolver's evaluation
// algorithm without a live accessibility tree.
type fakeDiscovery struct {
	elements []*element.Element
}

func (f *fakeDiscovery) Root(context.Context) (*element.Element, error) { return nil, nil }

func (f *fakeDiscovery) FocusedElement(context.Context) (*element.Element, error) { return nil, nil }

func (f *fakeDiscovery) ClickableElements(context.Context, accessibility.ElementFilter) ([]*element.Element, error) {
	return f.elements, nil
}

func (f *fakeDiscovery) GetWindowTree(context.Context, int, string, accessibility.WindowTreeConfig) (*element.Element, error) {
	return nil, nil
}

func (f *fakeDiscovery) FindElement(
	_ context.Context,
	_ *element.Element,
	pred func(*element.Element) bool,
	_ time.Duration,
) (*element.Element, error) {
	for _, e := range f.elements {
		if pred(e) {
			return e, nil
		}
	}

	return nil, nil
}

func (f *fakeDiscovery) FindElements(
	_ context.Context,
	_ *element.Element,
	pred func(*element.Element) bool,
	_ time.Duration,
	_ int,
) ([]*element.Element, error) {
	var out []*element.Element

	for _, e := range f.elements {
		if pred(e) {
			out = append(out, e)
		}
	}

	return out, nil
}

func mustElement(t *testing.T, id string, role element.Role, name string, bounds image.Rectangle) *element.Element {
	t.Helper()

	e, err := element.NewElement(element.ID(id), bounds, role, element.WithName(name), element.WithVisible(true))
	if err != nil {
		t.Fatalf("NewElement(%s): %v", id, err)
	}

	return e
}

func newResolver(t *testing.T, elems []*element.Element) *locator.Resolver {
	t.Helper()

	discovery := &fakeDiscovery{elements: elems}
	cfg := config.LocatorConfig{DefaultTimeout: 200 * time.Millisecond, PollInterval: 5 * time.Millisecond, DefaultMaxDepth: 20}

	return locator.NewResolver(discovery, cfg, 100, nil)
}

func TestLocatorFirstMatchesByRole(t *testing.T) {
	btn := mustElement(t, "btn1", element.RoleButton, "OK", image.Rect(0, 0, 50, 20))
	lbl := mustElement(t, "lbl1", element.RoleText, "Name", image.Rect(0, 40, 50, 60))

	resolver := newResolver(t, []*element.Element{btn, lbl})
	loc := locator.New(resolver, selector.Parse("role:button"), nil, nil)

	got, err := loc.First(context.Background(), 100*time.Millisecond)
	if err != nil {
		t.Fatalf("First() error: %v", err)
	}

	if got.ID() != btn.ID() {
		t.Errorf("First() = %s, want %s", got.ID(), btn.ID())
	}
}

func TestLocatorFirstTimesOutWhenNoMatch(t *testing.T) {
	resolver := newResolver(t, nil)
	loc := locator.New(resolver, selector.Parse("role:button"), nil, nil)

	_, err := loc.First(context.Background(), 20*time.Millisecond)
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
}

func TestLocatorFallbackSelectorWins(t *testing.T) {
	lbl := mustElement(t, "lbl1", element.RoleText, "Name", image.Rect(0, 0, 50, 20))

	resolver := newResolver(t, []*element.Element{lbl})
	loc := locator.New(resolver, selector.Parse("role:button"), []*selector.Selector{selector.Parse("role:text")}, nil)

	got, err := loc.First(context.Background(), 50*time.Millisecond)
	if err != nil {
		t.Fatalf("First() error: %v", err)
	}

	if got.ID() != lbl.ID() {
		t.Errorf("First() = %s, want fallback match %s", got.ID(), lbl.ID())
	}
}

func TestLocatorAndIntersectsByID(t *testing.T) {
	btn := mustElement(t, "btn1", element.RoleButton, "OK", image.Rect(0, 0, 50, 20))
	resolver := newResolver(t, []*element.Element{btn})
	loc := locator.New(resolver, selector.Parse("role:button && name:'OK'"), nil, nil)

	got, err := loc.First(context.Background(), 50*time.Millisecond)
	if err != nil {
		t.Fatalf("First() error: %v", err)
	}

	if got.ID() != btn.ID() {
		t.Errorf("First() = %s, want %s", got.ID(), btn.ID())
	}
}

func TestLocatorNthSelectsByIndex(t *testing.T) {
	a := mustElement(t, "a", element.RoleListItem, "A", image.Rect(0, 0, 10, 10))
	b := mustElement(t, "b", element.RoleListItem, "B", image.Rect(0, 20, 10, 30))
	c := mustElement(t, "c", element.RoleListItem, "C", image.Rect(0, 40, 10, 50))

	resolver := newResolver(t, []*element.Element{a, b, c})
	loc := locator.New(resolver, selector.Parse("role:listitem && nth:-1"), nil, nil)

	got, err := loc.First(context.Background(), 50*time.Millisecond)
	if err != nil {
		t.Fatalf("First() error: %v", err)
	}

	if got.ID() != c.ID() {
		t.Errorf("First() = %s, want last element %s", got.ID(), c.ID())
	}
}

func TestLocatorValidateNeverFails(t *testing.T) {
	resolver := newResolver(t, nil)
	loc := locator.New(resolver, selector.Parse("role:button"), nil, nil)

	result := loc.Validate(context.Background(), 20*time.Millisecond)
	if result.Exists {
		t.Error("Validate().Exists = true, want false")
	}

	if result.Err != nil {
		t.Errorf("Validate().Err = %v, want nil for a plain not-found", result.Err)
	}
}
