package accessibility

import (
	"context"
	"image"

	"github.com/deskautomate/engine/internal/action"
)

var (
	_ NativeNode = (*MockNode)(nil)
	_ NativeApp  = (*MockApp)(nil)
	_ Platform   = (*MockPlatform)(nil)
)

// MockNode is a reference NativeNode backed by plain fields, used with
// MockPlatform in tests.
type MockNode struct {
	NodeID          string
	NodeRole        string
	NodeName        string
	NodeLabel       string
	NodeValue       string
	NodeDescription string
	NodeClassName   string
	NodeURL         string
	NodeBounds      image.Rectangle
	NodePID         int

	NodeEnabled    bool
	NodeFocused    bool
	NodeFocusable  bool
	NodeSelected   bool
	NodeVisible    bool
	NodeScrollable bool
	NodeEditable   bool
	NodeClickable  bool

	NodeProperties map[string]any
	NodeChildren   []NativeNode
	ChildrenErr    error
}

// ID returns the node's identifier.
func (n *MockNode) ID() string { return n.NodeID }

// Role returns the node's accessibility role.
func (n *MockNode) Role() string { return n.NodeRole }

// Name returns the node's accessible name.
func (n *MockNode) Name() string { return n.NodeName }

// Label returns the node's label text.
func (n *MockNode) Label() string { return n.NodeLabel }

// Value returns the node's current value.
func (n *MockNode) Value() string { return n.NodeValue }

// Description returns the node's accessible description.
func (n *MockNode) Description() string { return n.NodeDescription }

// ClassName returns the node's native class name.
func (n *MockNode) ClassName() string { return n.NodeClassName }

// URL returns the node's URL, if any.
func (n *MockNode) URL() string { return n.NodeURL }

// Bounds returns the node's screen bounds.
func (n *MockNode) Bounds() image.Rectangle { return n.NodeBounds }

// ProcessID returns the owning process ID.
func (n *MockNode) ProcessID() int { return n.NodePID }

// Enabled reports whether the node accepts input.
func (n *MockNode) Enabled() bool { return n.NodeEnabled }

// Focused reports whether the node currently has focus.
func (n *MockNode) Focused() bool { return n.NodeFocused }

// Focusable reports whether the node can receive focus.
func (n *MockNode) Focusable() bool { return n.NodeFocusable }

// Selected reports whether the node is selected.
func (n *MockNode) Selected() bool { return n.NodeSelected }

// Visible reports whether the node is on screen.
func (n *MockNode) Visible() bool { return n.NodeVisible }

// Scrollable reports whether the node supports scrolling.
func (n *MockNode) Scrollable() bool { return n.NodeScrollable }

// Editable reports whether the node accepts text input.
func (n *MockNode) Editable() bool { return n.NodeEditable }

// Clickable reports whether the node supports click actions.
func (n *MockNode) Clickable() bool { return n.NodeClickable }

// Properties returns platform-specific attributes.
func (n *MockNode) Properties() map[string]any { return n.NodeProperties }

// Children returns the configured child nodes or error.
func (n *MockNode) Children(_ context.Context) ([]NativeNode, error) {
	return n.NodeChildren, n.ChildrenErr
}

// MockApp is a reference NativeApp.
type MockApp struct {
	*MockNode
	AppBundleID    string
	AppWindowTitle string
	AppFrontmost   bool
}

// BundleID returns the application's bundle or process identifier.
func (a *MockApp) BundleID() string { return a.AppBundleID }

// WindowTitle returns the title of the application's focused window.
func (a *MockApp) WindowTitle() string { return a.AppWindowTitle }

// IsFrontmost reports whether the application is currently frontmost.
func (a *MockApp) IsFrontmost() bool { return a.AppFrontmost }

// MockPlatform is a configurable, pure-Go Platform used in tests. It is not
// the engine's default backend; that is NullPlatform.
type MockPlatform struct {
	RootNode    NativeNode
	RootErr     error
	FocusedNode NativeNode
	FocusedErr  error
	FrontWindow NativeNode
	FrontErr    error

	Apps           []NativeApp
	AppsErr        error
	AppByNameFn    func(name string) (NativeApp, error)
	AppByPIDFn     func(pid int) (NativeApp, error)
	FocusedAppNode NativeApp
	FocusedAppErr  error

	ActionErr         error
	ScrollErr         error
	CursorPos         image.Point
	TypeTextErr       error
	PressKeyErr       error
	SetFocusErr       error
	OpenAppErr        error
	ActivateAppErr    error
	OpenURLErr        error
	OpenFileErr       error
	RunCommandResult  CommandResult
	RunCommandErr     error
	Bounds            image.Rectangle
	MonitorsList      []Monitor
	PermissionsErr    error

	LastAction      action.Type
	LastActionPoint image.Point
	LastKeys        string
}

// Root returns the configured root node or error.
func (m *MockPlatform) Root(_ context.Context) (NativeNode, error) { return m.RootNode, m.RootErr }

// FocusedElement returns the configured focused node or error.
func (m *MockPlatform) FocusedElement(_ context.Context) (NativeNode, error) {
	return m.FocusedNode, m.FocusedErr
}

// FrontmostWindow returns the configured frontmost window or error.
func (m *MockPlatform) FrontmostWindow(_ context.Context) (NativeNode, error) {
	return m.FrontWindow, m.FrontErr
}

// Applications returns the configured application list or error.
func (m *MockPlatform) Applications(_ context.Context) ([]NativeApp, error) {
	return m.Apps, m.AppsErr
}

// ApplicationByName resolves an application by display name.
func (m *MockPlatform) ApplicationByName(_ context.Context, name string) (NativeApp, error) {
	if m.AppByNameFn != nil {
		return m.AppByNameFn(name)
	}

	return m.FocusedAppNode, m.FocusedAppErr
}

// ApplicationByPID resolves an application by process ID.
func (m *MockPlatform) ApplicationByPID(_ context.Context, pid int) (NativeApp, error) {
	if m.AppByPIDFn != nil {
		return m.AppByPIDFn(pid)
	}

	return m.FocusedAppNode, m.FocusedAppErr
}

// FocusedApplication returns the configured frontmost application or error.
func (m *MockPlatform) FocusedApplication(_ context.Context) (NativeApp, error) {
	return m.FocusedAppNode, m.FocusedAppErr
}

// PerformAction records the action and returns the configured error.
func (m *MockPlatform) PerformAction(_ context.Context, _ NativeNode, actionType action.Type) error {
	m.LastAction = actionType

	return m.ActionErr
}

// PerformActionAtPoint records the action/point and returns the configured error.
func (m *MockPlatform) PerformActionAtPoint(
	_ context.Context,
	actionType action.Type,
	point image.Point,
) error {
	m.LastAction = actionType
	m.LastActionPoint = point

	return m.ActionErr
}

// Scroll returns the configured scroll error.
func (m *MockPlatform) Scroll(_ context.Context, _, _ int) error { return m.ScrollErr }

// MoveCursor updates the recorded cursor position.
func (m *MockPlatform) MoveCursor(_ context.Context, point image.Point) error {
	m.CursorPos = point

	return nil
}

// CursorPosition returns the recorded cursor position.
func (m *MockPlatform) CursorPosition(_ context.Context) (image.Point, error) {
	return m.CursorPos, nil
}

// TypeText returns the configured type-text error.
func (m *MockPlatform) TypeText(_ context.Context, _ NativeNode, _ string, _ bool) error {
	return m.TypeTextErr
}

// PressKey records the key expression and returns the configured error.
func (m *MockPlatform) PressKey(_ context.Context, keys string, _ bool) error {
	m.LastKeys = keys

	return m.PressKeyErr
}

// SetFocus returns the configured focus error.
func (m *MockPlatform) SetFocus(_ context.Context, _ NativeNode) error { return m.SetFocusErr }

// OpenApplication returns the configured error.
func (m *MockPlatform) OpenApplication(_ context.Context, _ string) error { return m.OpenAppErr }

// ActivateApplication returns the configured error.
func (m *MockPlatform) ActivateApplication(_ context.Context, _ string) error {
	return m.ActivateAppErr
}

// OpenURL returns the configured error.
func (m *MockPlatform) OpenURL(_ context.Context, _, _ string) error { return m.OpenURLErr }

// OpenFile returns the configured error.
func (m *MockPlatform) OpenFile(_ context.Context, _ string) error { return m.OpenFileErr }

// RunCommand returns the configured result and error.
func (m *MockPlatform) RunCommand(_ context.Context, _, _ string) (CommandResult, error) {
	return m.RunCommandResult, m.RunCommandErr
}

// ScreenBounds returns the configured screen bounds.
func (m *MockPlatform) ScreenBounds(_ context.Context) (image.Rectangle, error) {
	return m.Bounds, nil
}

// Monitors returns the configured monitor list.
func (m *MockPlatform) Monitors(_ context.Context) ([]Monitor, error) {
	return m.MonitorsList, nil
}

// CheckPermissions returns the configured permissions error.
func (m *MockPlatform) CheckPermissions(_ context.Context) error { return m.PermissionsErr }
