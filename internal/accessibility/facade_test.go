package accessibility_test

import (
	"image"
	"testing"
	"time"

	"github.com/deskautomate/engine/internal/accessibility"
	"github.com/deskautomate/engine/internal/config"
	"github.com/deskautomate/engine/internal/element"
)

func testConfig() config.AccessibilityConfig {
	return config.AccessibilityConfig{
		DefaultPropertyMode: config.PropertyModeSmart,
		YieldEveryNElements: 50,
		BatchSize:           4,
		TimeoutPerOperation: 2 * time.Second,
		HealthCheckTimeout:  time.Second,
		NearDistancePx:      100,
	}
}

func button(id, name string, bounds image.Rectangle) *accessibility.MockNode {
	return &accessibility.MockNode{
		NodeID:        id,
		NodeRole:      "AXButton",
		NodeName:      name,
		NodeBounds:    bounds,
		NodeEnabled:   true,
		NodeVisible:   true,
		NodeClickable: true,
	}
}

func TestFacadeRoot(t *testing.T) {
	root := button("root", "Desktop", image.Rect(0, 0, 1920, 1080))
	platform := &accessibility.MockPlatform{RootNode: root}

	facade := accessibility.NewFacade(platform, testConfig(), nil, nil)
	defer facade.Close()

	elem, err := facade.Root(t.Context())
	if err != nil {
		t.Fatalf("Root() error: %v", err)
	}

	if elem.ID() != "root" {
		t.Errorf("ID() = %v, want root", elem.ID())
	}
}

func TestFacadeClickableElementsFiltersByFilter(t *testing.T) {
	child1 := button("b1", "Save", image.Rect(0, 0, 100, 20))
	child2 := &accessibility.MockNode{
		NodeID: "b2", NodeRole: "AXStaticText", NodeName: "Label",
		NodeBounds: image.Rect(0, 30, 100, 50), NodeVisible: true,
	}

	root := &accessibility.MockNode{
		NodeID: "root", NodeRole: "AXWindow", NodeVisible: true,
		NodeBounds:   image.Rect(0, 0, 200, 200),
		NodeChildren: []accessibility.NativeNode{child1, child2},
	}

	platform := &accessibility.MockPlatform{RootNode: root}
	facade := accessibility.NewFacade(platform, testConfig(), nil, nil)
	defer facade.Close()

	elems, err := facade.ClickableElements(t.Context(), accessibility.DefaultElementFilter())
	if err != nil {
		t.Fatalf("ClickableElements() error: %v", err)
	}

	if len(elems) != 1 || elems[0].ID() != "b1" {
		t.Fatalf("ClickableElements() = %v, want exactly [b1]", elems)
	}
}

func TestFacadeFindElement(t *testing.T) {
	target := button("save-btn", "Save", image.Rect(10, 10, 50, 30))
	root := &accessibility.MockNode{
		NodeID: "root", NodeRole: "AXWindow", NodeVisible: true,
		NodeBounds:   image.Rect(0, 0, 200, 200),
		NodeChildren: []accessibility.NativeNode{target},
	}

	platform := &accessibility.MockPlatform{RootNode: root}
	facade := accessibility.NewFacade(platform, testConfig(), nil, nil)
	defer facade.Close()

	found, err := facade.FindElement(t.Context(), nil, func(e *element.Element) bool {
		return e.Name() == "Save"
	}, time.Second)
	if err != nil {
		t.Fatalf("FindElement() error: %v", err)
	}

	if found.ID() != "save-btn" {
		t.Errorf("FindElement() = %v, want save-btn", found.ID())
	}
}

func TestFacadeFindElementNotFound(t *testing.T) {
	root := &accessibility.MockNode{NodeID: "root", NodeRole: "AXWindow", NodeVisible: true}
	platform := &accessibility.MockPlatform{RootNode: root}
	facade := accessibility.NewFacade(platform, testConfig(), nil, nil)
	defer facade.Close()

	_, err := facade.FindElement(t.Context(), nil, func(*element.Element) bool {
		return false
	}, 100*time.Millisecond)
	if err == nil {
		t.Fatal("FindElement() expected error, got nil")
	}
}

func TestFacadeChildrenAfterRoot(t *testing.T) {
	child := button("child", "OK", image.Rect(0, 0, 40, 20))
	root := &accessibility.MockNode{
		NodeID: "root", NodeRole: "AXWindow", NodeVisible: true,
		NodeChildren: []accessibility.NativeNode{child},
	}

	platform := &accessibility.MockPlatform{RootNode: root}
	facade := accessibility.NewFacade(platform, testConfig(), nil, nil)
	defer facade.Close()

	rootElem, err := facade.Root(t.Context())
	if err != nil {
		t.Fatalf("Root() error: %v", err)
	}

	children, err := rootElem.Children(t.Context())
	if err != nil {
		t.Fatalf("Children() error: %v", err)
	}

	if len(children) != 1 || children[0].ID() != "child" {
		t.Fatalf("Children() = %v, want exactly [child]", children)
	}
}

func TestFacadeHealth(t *testing.T) {
	root := &accessibility.MockNode{NodeID: "root", NodeRole: "AXWindow"}
	platform := &accessibility.MockPlatform{RootNode: root}
	facade := accessibility.NewFacade(platform, testConfig(), nil, nil)
	defer facade.Close()

	status, err := facade.Health(t.Context())
	if err != nil {
		t.Fatalf("Health() error: %v", err)
	}

	if status.Status != accessibility.HealthHealthy {
		t.Errorf("Status = %v, want %v", status.Status, accessibility.HealthHealthy)
	}

	if !status.CanEnumerateElements {
		t.Error("expected CanEnumerateElements to be true")
	}
}

func TestFacadeIsAppExcluded(t *testing.T) {
	platform := &accessibility.MockPlatform{}
	facade := accessibility.NewFacade(platform, testConfig(), []string{"com.apple.finder"}, nil)
	defer facade.Close()

	if !facade.IsAppExcluded(t.Context(), "com.apple.Finder") {
		t.Error("expected bundle ID to be excluded case-insensitively")
	}

	if facade.IsAppExcluded(t.Context(), "com.apple.safari") {
		t.Error("expected unrelated bundle ID to not be excluded")
	}
}
