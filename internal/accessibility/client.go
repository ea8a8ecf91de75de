package accessibility

import (
	"context"
	"image"

	"github.com/deskautomate/engine/internal/action"
)

// NativeNode is a single node in the platform's live accessibility tree.
// Implementations wrap the underlying OS accessibility API (AX on macOS,
// UIAutomation on Windows, AT-SPI on Linux); the facade never reaches past
// this interface into platform-specific types.
type NativeNode interface {
	ID() string
	Role() string
	Name() string
	Label() string
	Value() string
	Description() string
	ClassName() string
	URL() string
	Bounds() image.Rectangle
	ProcessID() int

	Enabled() bool
	Focused() bool
	Focusable() bool
	Selected() bool
	Visible() bool
	Scrollable() bool
	Editable() bool
	Clickable() bool

	// Properties returns platform-specific attributes not covered above.
	Properties() map[string]any

	// Children enumerates the node's immediate children. Implementations may
	// perform a live accessibility-API call; callers should treat it as blocking I/O.
	Children(ctx context.Context) ([]NativeNode, error)
}

// NativeApp is a NativeNode that additionally identifies the application
// process it belongs to.
type NativeApp interface {
	NativeNode
	BundleID() string
	WindowTitle() string
	IsFrontmost() bool
}

// Platform is the low-level accessibility backend a Facade wraps. One
// implementation exists per target OS (plus a pure-Go reference backend
// used in tests and as a development fallback).
//
//nolint:interfacebloat // facade boundary for an entire OS accessibility surface
type Platform interface {
	Root(ctx context.Context) (NativeNode, error)
	FocusedElement(ctx context.Context) (NativeNode, error)
	FrontmostWindow(ctx context.Context) (NativeNode, error)

	Applications(ctx context.Context) ([]NativeApp, error)
	ApplicationByName(ctx context.Context, name string) (NativeApp, error)
	ApplicationByPID(ctx context.Context, pid int) (NativeApp, error)
	FocusedApplication(ctx context.Context) (NativeApp, error)

	PerformAction(ctx context.Context, node NativeNode, actionType action.Type) error
	PerformActionAtPoint(ctx context.Context, actionType action.Type, point image.Point) error
	Scroll(ctx context.Context, deltaX, deltaY int) error
	MoveCursor(ctx context.Context, point image.Point) error
	CursorPosition(ctx context.Context) (image.Point, error)
	TypeText(ctx context.Context, node NativeNode, text string, clearBefore bool) error
	PressKey(ctx context.Context, keys string, global bool) error
	SetFocus(ctx context.Context, node NativeNode) error

	OpenApplication(ctx context.Context, name string) error
	ActivateApplication(ctx context.Context, name string) error
	OpenURL(ctx context.Context, url, browser string) error
	OpenFile(ctx context.Context, path string) error
	RunCommand(ctx context.Context, winCmd, unixCmd string) (CommandResult, error)

	ScreenBounds(ctx context.Context) (image.Rectangle, error)
	Monitors(ctx context.Context) ([]Monitor, error)

	CheckPermissions(ctx context.Context) error
}
