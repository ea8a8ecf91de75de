package accessibility

import (
	"context"
	"image"
	"time"

	"github.com/deskautomate/engine/internal/action"
	"github.com/deskautomate/engine/internal/config"
	"github.com/deskautomate/engine/internal/element"
)

// HealthStatus reports the result of a platform health probe.
type HealthStatus struct {
	Status               string            `json:"status"`
	APIAvailable         bool              `json:"api_available"`
	DesktopAccessible    bool              `json:"desktop_accessible"`
	CanEnumerateElements bool              `json:"can_enumerate_elements"`
	DurationMS           int64             `json:"duration_ms"`
	Diagnostics          map[string]string `json:"diagnostics,omitempty"`
}

// Health status values.
const (
	HealthHealthy   = "healthy"
	HealthDegraded  = "degraded"
	HealthUnhealthy = "unhealthy"
)

// Monitor describes a physical display.
type Monitor struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Bounds    image.Rectangle `json:"bounds"`
	IsPrimary bool            `json:"is_primary"`
}

// CommandResult is the outcome of an external process run via RunCommand.
type CommandResult struct {
	ExitStatus int    `json:"exit_status"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
}

// WindowTreeConfig controls a single get_window_tree call (spec §4.1).
type WindowTreeConfig struct {
	PropertyMode        config.PropertyMode
	TimeoutPerOperation time.Duration
	YieldEveryNElements int
	BatchSize           int
	MaxDepth            int
}

// DefaultWindowTreeConfig builds a WindowTreeConfig from the global accessibility config.
func DefaultWindowTreeConfig(cfg config.AccessibilityConfig, maxDepth int) WindowTreeConfig {
	return WindowTreeConfig{
		PropertyMode:        cfg.DefaultPropertyMode,
		TimeoutPerOperation: cfg.TimeoutPerOperation,
		YieldEveryNElements: cfg.YieldEveryNElements,
		BatchSize:           cfg.BatchSize,
		MaxDepth:            maxDepth,
	}
}

// ElementDiscovery finds elements in the live accessibility tree.
type ElementDiscovery interface {
	// Root returns the desktop root node.
	Root(ctx context.Context) (*element.Element, error)

	// FocusedElement returns the element with keyboard focus.
	FocusedElement(ctx context.Context) (*element.Element, error)

	// ClickableElements retrieves all clickable UI elements matching the filter.
	ClickableElements(ctx context.Context, filter ElementFilter) ([]*element.Element, error)

	// FindElement returns the first descendant of root matching pred, without a retry jacket.
	FindElement(
		ctx context.Context,
		root *element.Element,
		pred func(*element.Element) bool,
		timeout time.Duration,
	) (*element.Element, error)

	// FindElements returns every descendant of root matching pred up to depth levels deep.
	FindElements(
		ctx context.Context,
		root *element.Element,
		pred func(*element.Element) bool,
		timeout time.Duration,
		depth int,
	) ([]*element.Element, error)

	// GetWindowTree builds a full tree snapshot rooted at the window owned by pid.
	GetWindowTree(ctx context.Context, pid int, title string, cfg WindowTreeConfig) (*element.Element, error)
}

// ActionExecution executes actions against the accessibility tree.
type ActionExecution interface {
	// PerformAction executes an action on the specified element.
	PerformAction(ctx context.Context, elem *element.Element, actionType action.Type) error

	// PerformActionAtPoint executes an action at the specified screen point.
	PerformActionAtPoint(ctx context.Context, actionType action.Type, point image.Point) error

	// Scroll performs a scroll action at the current cursor position.
	Scroll(ctx context.Context, deltaX, deltaY int) error

	// TypeText types text into the specified element, or at the current focus if elem is nil.
	TypeText(ctx context.Context, elem *element.Element, text string, clearBefore bool) error

	// PressKey sends a key expression (e.g. "{Ctrl}c") to the focused element or globally.
	PressKey(ctx context.Context, keys string, global bool) error

	// SetFocus moves keyboard focus to the specified element.
	SetFocus(ctx context.Context, elem *element.Element) error
}

// ApplicationManagement starts, activates and inspects applications.
type ApplicationManagement interface {
	// Applications lists all running applications.
	Applications(ctx context.Context) ([]*element.Element, error)

	// ApplicationByName returns the application element with the given display name.
	ApplicationByName(ctx context.Context, name string) (*element.Element, error)

	// ApplicationByPID returns the application element owned by pid, waiting up to timeout.
	ApplicationByPID(ctx context.Context, pid int, timeout time.Duration) (*element.Element, error)

	// OpenApplication launches an application by name.
	OpenApplication(ctx context.Context, name string) error

	// ActivateApplication brings an already-running application to the foreground.
	ActivateApplication(ctx context.Context, name string) error

	// OpenURL opens url in browser (or the default browser if empty).
	OpenURL(ctx context.Context, url, browser string) error

	// OpenFile opens path with its associated default application.
	OpenFile(ctx context.Context, path string) error

	// RunCommand runs winCmd on Windows or unixCmd on macOS/Linux, returning captured output.
	RunCommand(ctx context.Context, winCmd, unixCmd string) (CommandResult, error)

	// FocusedAppBundleID returns the bundle/process identifier of the focused application.
	FocusedAppBundleID(ctx context.Context) (string, error)

	// IsAppExcluded checks if the given bundle ID is in the exclusion list.
	IsAppExcluded(ctx context.Context, bundleID string) bool
}

// ScreenManagement exposes monitor and cursor operations.
type ScreenManagement interface {
	// ScreenBounds returns the bounds of the active screen.
	ScreenBounds(ctx context.Context) (image.Rectangle, error)

	// ListMonitors returns every attached monitor.
	ListMonitors(ctx context.Context) ([]Monitor, error)

	// PrimaryMonitor returns the monitor marked as primary.
	PrimaryMonitor(ctx context.Context) (Monitor, error)

	// ActiveMonitor returns the monitor currently under the cursor.
	ActiveMonitor(ctx context.Context) (Monitor, error)

	// MoveCursorToPoint moves the mouse cursor to the specified point.
	MoveCursorToPoint(ctx context.Context, point image.Point) error

	// CursorPosition returns the current cursor position.
	CursorPosition(ctx context.Context) (image.Point, error)
}

// PermissionManagement checks platform accessibility permissions.
type PermissionManagement interface {
	// CheckPermissions verifies that accessibility permissions are granted.
	CheckPermissions(ctx context.Context) error
}

// HealthCheck is implemented by components that can report their health status.
type HealthCheck interface {
	Health(ctx context.Context) (HealthStatus, error)
}

// Port is the C1 platform accessibility facade contract. A single
// implementation backs the locator resolver (C3) and the tool dispatcher (C7).
type Port interface {
	HealthCheck
	ElementDiscovery
	ActionExecution
	ApplicationManagement
	ScreenManagement
	PermissionManagement
}

// ElementFilter defines criteria for filtering UI elements.
type ElementFilter struct {
	Roles                     []element.Role
	ExcludeRoles              []element.Role
	IncludeOffscreen          bool
	MinSize                   image.Point
	IncludeMenubar            bool
	AdditionalMenubarTargets  []string
	IncludeDock               bool
	IncludeNotificationCenter bool
}

// DefaultElementFilter returns a filter with sensible defaults.
func DefaultElementFilter() ElementFilter {
	return ElementFilter{
		IncludeOffscreen: false,
		MinSize:          image.Point{X: 1, Y: 1},
	}
}
