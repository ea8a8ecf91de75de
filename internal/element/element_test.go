package element_test

import (
	"image"
	"testing"

	"github.com/deskautomate/engine/internal/element"
	derrors "github.com/deskautomate/engine/internal/errors"
)

func TestNewElement(t *testing.T) {
	tests := []struct {
		name    string
		id      element.ID
		bounds  image.Rectangle
		role    element.Role
		opts    []element.Option
		wantErr bool
	}{
		{
			name:   "valid element",
			id:     "test-1",
			bounds: image.Rect(10, 10, 100, 50),
			role:   element.RoleButton,
			opts:   []element.Option{element.WithClickable(true)},
		},
		{
			name:    "empty id",
			id:      "",
			bounds:  image.Rect(10, 10, 100, 50),
			role:    element.RoleButton,
			wantErr: true,
		},
		{
			name:    "empty bounds",
			id:      "test-2",
			bounds:  image.Rectangle{},
			role:    element.RoleButton,
			wantErr: true,
		},
		{
			name:   "with label and description",
			id:     "test-3",
			bounds: image.Rect(0, 0, 50, 30),
			role:   element.RoleHyperlink,
			opts: []element.Option{
				element.WithLabel("Click me"),
				element.WithDescription("A clickable link"),
				element.WithClickable(true),
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			el, err := element.NewElement(tc.id, tc.bounds, tc.role, tc.opts...)

			if tc.wantErr {
				if err == nil {
					t.Fatalf("NewElement() expected error, got nil")
				}

				return
			}
			if err != nil {
				t.Fatalf("NewElement() unexpected error: %v", err)
			}
			if el.ID() != tc.id {
				t.Errorf("ID() = %v, want %v", el.ID(), tc.id)
			}
			if el.Bounds() != tc.bounds {
				t.Errorf("Bounds() = %v, want %v", el.Bounds(), tc.bounds)
			}
			if el.Role() != tc.role {
				t.Errorf("Role() = %v, want %v", el.Role(), tc.role)
			}
		})
	}
}

func TestElementCenter(t *testing.T) {
	el, err := element.NewElement("test", image.Rect(10, 20, 110, 70), element.RoleButton)
	if err != nil {
		t.Fatalf("NewElement() error: %v", err)
	}

	want := image.Point{X: 60, Y: 45}
	if got := el.Center(); got != want {
		t.Errorf("Center() = %v, want %v", got, want)
	}
}

func TestElementContains(t *testing.T) {
	el, err := element.NewElement("test", image.Rect(10, 10, 100, 50), element.RoleButton)
	if err != nil {
		t.Fatalf("NewElement() error: %v", err)
	}

	tests := []struct {
		name  string
		point image.Point
		want  bool
	}{
		{"inside", image.Point{X: 50, Y: 30}, true},
		{"on edge", image.Point{X: 10, Y: 10}, true},
		{"outside left", image.Point{X: 5, Y: 30}, false},
		{"outside right", image.Point{X: 105, Y: 30}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := el.Contains(tc.point); got != tc.want {
				t.Errorf("Contains(%v) = %v, want %v", tc.point, got, tc.want)
			}
		})
	}
}

func TestElementSpatialRelations(t *testing.T) {
	top, _ := element.NewElement("top", image.Rect(0, 0, 50, 50), element.RoleButton)
	bottom, _ := element.NewElement("bottom", image.Rect(0, 100, 50, 150), element.RoleButton)

	if !top.IsAbove(bottom) {
		t.Error("expected top to be above bottom")
	}
	if !bottom.IsBelow(top) {
		t.Error("expected bottom to be below top")
	}
	if top.IsLeftOf(bottom) || top.IsRightOf(bottom) {
		t.Error("expected top and bottom to share horizontal center")
	}
	if !top.IsNear(bottom, 200) {
		t.Error("expected top to be near bottom within 200px")
	}
	if top.IsNear(bottom, 10) {
		t.Error("expected top not to be near bottom within 10px")
	}
}

func TestElementStaleNavigation(t *testing.T) {
	el, err := element.NewElement("test", image.Rect(0, 0, 10, 10), element.RoleButton)
	if err != nil {
		t.Fatalf("NewElement() error: %v", err)
	}

	if el.IsStale() {
		t.Fatal("new element should not be stale")
	}

	el.MarkStale()
	if !el.IsStale() {
		t.Fatal("expected element to be stale after MarkStale")
	}

	if _, err := el.Parent(t.Context()); !derrors.IsCode(err, derrors.CodeElementStale) {
		t.Errorf("Parent() on stale element: got %v, want ELEMENT_STALE", err)
	}
}
