package accessibility

import (
	"context"
	"image"

	"github.com/deskautomate/engine/internal/action"
	derrors "github.com/deskautomate/engine/internal/errors"
)

// NullPlatform is a pure-Go Platform that reports an empty, permission-denied
// desktop. It is the default backend wherever no native accessibility bridge
// is compiled in for the current OS, matching the Source/no-op pattern used
// throughout the package (eventtap.NullSource, hotkeys.NullSource,
// recorder.NullInputSource).
type NullPlatform struct{}

var _ Platform = NullPlatform{}

func (NullPlatform) Root(context.Context) (NativeNode, error) {
	return nil, derrors.New(derrors.CodePlatformError, "no accessibility backend compiled in")
}

func (NullPlatform) FocusedElement(context.Context) (NativeNode, error) {
	return nil, derrors.New(derrors.CodePlatformError, "no accessibility backend compiled in")
}

func (NullPlatform) FrontmostWindow(context.Context) (NativeNode, error) {
	return nil, derrors.New(derrors.CodePlatformError, "no accessibility backend compiled in")
}

func (NullPlatform) Applications(context.Context) ([]NativeApp, error) { return nil, nil }

func (NullPlatform) ApplicationByName(_ context.Context, name string) (NativeApp, error) {
	return nil, derrors.Newf(derrors.CodeElementNotFound, "application %q not found", name)
}

func (NullPlatform) ApplicationByPID(_ context.Context, pid int) (NativeApp, error) {
	return nil, derrors.Newf(derrors.CodeElementNotFound, "application with pid %d not found", pid)
}

func (NullPlatform) FocusedApplication(context.Context) (NativeApp, error) {
	return nil, derrors.New(derrors.CodeElementNotFound, "no focused application")
}

func (NullPlatform) PerformAction(context.Context, NativeNode, action.Type) error {
	return derrors.New(derrors.CodePlatformError, "no accessibility backend compiled in")
}

func (NullPlatform) PerformActionAtPoint(context.Context, action.Type, image.Point) error {
	return derrors.New(derrors.CodePlatformError, "no accessibility backend compiled in")
}

func (NullPlatform) Scroll(context.Context, int, int) error {
	return derrors.New(derrors.CodePlatformError, "no accessibility backend compiled in")
}

func (NullPlatform) MoveCursor(context.Context, image.Point) error {
	return derrors.New(derrors.CodePlatformError, "no accessibility backend compiled in")
}

func (NullPlatform) CursorPosition(context.Context) (image.Point, error) {
	return image.Point{}, derrors.New(derrors.CodePlatformError, "no accessibility backend compiled in")
}

func (NullPlatform) TypeText(context.Context, NativeNode, string, bool) error {
	return derrors.New(derrors.CodePlatformError, "no accessibility backend compiled in")
}

func (NullPlatform) PressKey(context.Context, string, bool) error {
	return derrors.New(derrors.CodePlatformError, "no accessibility backend compiled in")
}

func (NullPlatform) SetFocus(context.Context, NativeNode) error {
	return derrors.New(derrors.CodePlatformError, "no accessibility backend compiled in")
}

func (NullPlatform) OpenApplication(context.Context, string) error {
	return derrors.New(derrors.CodePlatformError, "no accessibility backend compiled in")
}

func (NullPlatform) ActivateApplication(context.Context, string) error {
	return derrors.New(derrors.CodePlatformError, "no accessibility backend compiled in")
}

func (NullPlatform) OpenURL(context.Context, string, string) error {
	return derrors.New(derrors.CodePlatformError, "no accessibility backend compiled in")
}

func (NullPlatform) OpenFile(context.Context, string) error {
	return derrors.New(derrors.CodePlatformError, "no accessibility backend compiled in")
}

func (NullPlatform) RunCommand(context.Context, string, string) (CommandResult, error) {
	return CommandResult{}, derrors.New(derrors.CodePlatformError, "no accessibility backend compiled in")
}

func (NullPlatform) ScreenBounds(context.Context) (image.Rectangle, error) {
	return image.Rectangle{}, derrors.New(derrors.CodePlatformError, "no accessibility backend compiled in")
}

func (NullPlatform) Monitors(context.Context) ([]Monitor, error) { return nil, nil }

func (NullPlatform) CheckPermissions(context.Context) error {
	return derrors.New(derrors.CodeAccessibilityDenied, "no accessibility backend compiled in")
}
