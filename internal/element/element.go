// Package element defines the platform-independent UIElement value type
// shared by the accessibility facade, selector resolver and workflow
// executor.
package element

import (
	"context"
	"image"
	"math"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"

	derrors "github.com/deskautomate/engine/internal/errors"
)

// ID uniquely identifies an element within a single accessibility snapshot.
// IDs are not guaranteed stable across snapshots; callers that need to
// re-acquire an element after a refresh should re-resolve it by selector.
type ID string

// Role classifies the accessibility role of an element, normalized across
// platform-native role strings (e.g. AXButton, IAccessible ROLE_SYSTEM_PUSHBUTTON).
type Role string

// Canonical roles recognized by the selector language and locator resolver.
// The vocabulary is closed and platform-independent: every native role a
// Platform backend reports is normalized onto one of these by mapRole,
// falling back to RoleCustom when nothing fits.
const (
	RoleWindow      Role = "window"
	RolePane        Role = "pane"
	RoleButton      Role = "button"
	RoleCheckbox    Role = "checkbox"
	RoleMenu        Role = "menu"
	RoleMenuItem    Role = "menuitem"
	RoleText        Role = "text"
	RoleTree        Role = "tree"
	RoleTreeItem    Role = "treeitem"
	RoleList        Role = "list"
	RoleListItem    Role = "listitem"
	RoleComboBox    Role = "combobox"
	RoleTab         Role = "tab"
	RoleTabItem     Role = "tabitem"
	RoleToolbar     Role = "toolbar"
	RoleCalendar    Role = "calendar"
	RoleEdit        Role = "edit"
	RoleHyperlink   Role = "hyperlink"
	RoleProgressBar Role = "progressbar"
	RoleRadioButton Role = "radiobutton"
	RoleScrollbar   Role = "scrollbar"
	RoleSlider      Role = "slider"
	RoleSpinner     Role = "spinner"
	RoleStatusBar   Role = "statusbar"
	RoleTooltip     Role = "tooltip"
	RoleCustom      Role = "custom"
	RoleGroup       Role = "group"
	RoleDocument    Role = "document"
	RoleSplitButton Role = "splitbutton"
	RoleHeader      Role = "header"
	RoleHeaderItem  Role = "headeritem"
	RoleTable       Role = "table"
	RoleTitleBar    Role = "titlebar"
	RoleSeparator   Role = "separator"
	RoleImage       Role = "image"
	RoleDataItem    Role = "dataitem"
	RoleDataGrid    Role = "datagrid"
)

// Provider resolves live navigation for an element after it has been
// produced by the accessibility facade. It lets Parent/Children/Siblings
// stay lazy instead of eagerly materializing the whole subtree.
type Provider interface {
	Parent(ctx context.Context, id ID) (*Element, error)
	Children(ctx context.Context, id ID) ([]*Element, error)
	Siblings(ctx context.Context, id ID) ([]*Element, error)
}

// Element is an immutable snapshot of a single node in a platform
// accessibility tree.
type Element struct {
	id              ID
	role            Role
	name            string
	label           string
	value           string
	description     string
	className       string
	url             string
	bounds          image.Rectangle
	processID       int
	applicationName string
	windowTitle     string

	clickable  bool
	focusable  bool
	enabled    bool
	focused    bool
	selected   bool
	visible    bool
	scrollable bool
	editable   bool

	properties map[string]any

	provider Provider
	stale    atomic.Bool
}

// Option configures optional Element fields at construction time.
type Option func(*Element)

// WithName sets the element's accessible name.
func WithName(name string) Option { return func(e *Element) { e.name = name } }

// WithLabel sets the element's label (e.g. an associated <label> or AXTitleUIElement text).
func WithLabel(label string) Option { return func(e *Element) { e.label = label } }

// WithValue sets the element's current value (text field contents, slider position, etc.).
func WithValue(value string) Option { return func(e *Element) { e.value = value } }

// WithDescription sets the element's accessibility description.
func WithDescription(description string) Option {
	return func(e *Element) { e.description = description }
}

// WithClassName sets the element's native class/type name.
func WithClassName(className string) Option { return func(e *Element) { e.className = className } }

// WithURL sets the element's URL, for link and web-content elements.
func WithURL(url string) Option { return func(e *Element) { e.url = url } }

// WithProcessID sets the owning process id.
func WithProcessID(pid int) Option { return func(e *Element) { e.processID = pid } }

// WithApplicationName sets the owning application's display name.
func WithApplicationName(name string) Option {
	return func(e *Element) { e.applicationName = name }
}

// WithWindowTitle sets the title of the window containing this element.
func WithWindowTitle(title string) Option { return func(e *Element) { e.windowTitle = title } }

// WithClickable marks the element as clickable.
func WithClickable(v bool) Option { return func(e *Element) { e.clickable = v } }

// WithFocusable marks the element as focusable.
func WithFocusable(v bool) Option { return func(e *Element) { e.focusable = v } }

// WithEnabled marks the element as enabled.
func WithEnabled(v bool) Option { return func(e *Element) { e.enabled = v } }

// WithFocused marks the element as currently focused.
func WithFocused(v bool) Option { return func(e *Element) { e.focused = v } }

// WithSelected marks the element as currently selected.
func WithSelected(v bool) Option { return func(e *Element) { e.selected = v } }

// WithVisible marks the element as visible.
func WithVisible(v bool) Option { return func(e *Element) { e.visible = v } }

// WithScrollable marks the element as scrollable.
func WithScrollable(v bool) Option { return func(e *Element) { e.scrollable = v } }

// WithEditable marks the element as editable.
func WithEditable(v bool) Option { return func(e *Element) { e.editable = v } }

// WithProperty attaches a platform-specific property not covered by the
// core fields, keyed by its native attribute name.
func WithProperty(key string, value any) Option {
	return func(e *Element) {
		if e.properties == nil {
			e.properties = make(map[string]any)
		}
		e.properties[key] = value
	}
}

// WithProperties merges a batch of platform-specific properties.
func WithProperties(props map[string]any) Option {
	return func(e *Element) {
		if len(props) == 0 {
			return
		}
		if e.properties == nil {
			e.properties = make(map[string]any, len(props))
		}
		for k, v := range props {
			e.properties[k] = v
		}
	}
}

// WithProvider attaches the navigation provider used for Parent/Children/Siblings.
func WithProvider(p Provider) Option { return func(e *Element) { e.provider = p } }

// NewElement constructs an Element snapshot. id and bounds are required;
// a zero-value bounds rectangle is rejected since every resolvable element
// occupies screen space.
func NewElement(id ID, bounds image.Rectangle, role Role, opts ...Option) (*Element, error) {
	if id == "" {
		return nil, derrors.New(derrors.CodeInvalidArgument, "element id must not be empty")
	}
	if bounds.Empty() {
		return nil, derrors.New(derrors.CodeInvalidArgument, "element bounds must not be empty")
	}

	e := &Element{
		id:     id,
		bounds: bounds,
		role:   role,
	}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// ComputeID derives a stable ID from a role, owning process and a path
// string describing the element's position in the tree (e.g. a sequence of
// child indices). Two elements with the same role/pid/path in the same
// snapshot collide by design: callers that need snapshot-unique ids should
// fold in a monotonic counter via path.
func ComputeID(role Role, pid int, path string) ID {
	h := xxhash.New()
	_, _ = h.WriteString(string(role))
	_, _ = h.WriteString(":")
	_, _ = h.WriteString(path)
	_, _ = h.Write([]byte{byte(pid), byte(pid >> 8), byte(pid >> 16), byte(pid >> 24)})

	return ID(formatHash(h.Sum64()))
}

func formatHash(h uint64) string {
	const hexDigits = "0123456789abcdef"
	buf := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		buf[i] = hexDigits[h&0xf]
		h >>= 4
	}

	return string(buf)
}

// ID returns the element's snapshot-scoped identifier.
func (e *Element) ID() ID { return e.id }

// Role returns the normalized accessibility role.
func (e *Element) Role() Role { return e.role }

// Name returns the accessible name.
func (e *Element) Name() string { return e.name }

// Label returns the associated label text.
func (e *Element) Label() string { return e.label }

// Value returns the current value.
func (e *Element) Value() string { return e.value }

// Description returns the accessibility description.
func (e *Element) Description() string { return e.description }

// ClassName returns the native class/type name.
func (e *Element) ClassName() string { return e.className }

// URL returns the element's URL, if any.
func (e *Element) URL() string { return e.url }

// Bounds returns the element's screen-space bounding rectangle.
func (e *Element) Bounds() image.Rectangle { return e.bounds }

// ProcessID returns the owning process id.
func (e *Element) ProcessID() int { return e.processID }

// ApplicationName returns the owning application's display name.
func (e *Element) ApplicationName() string { return e.applicationName }

// WindowTitle returns the title of the window containing this element.
func (e *Element) WindowTitle() string { return e.windowTitle }

// IsClickable reports whether the element accepts click actions.
func (e *Element) IsClickable() bool { return e.clickable }

// IsFocusable reports whether the element can receive keyboard focus.
func (e *Element) IsFocusable() bool { return e.focusable }

// IsEnabled reports whether the element is enabled.
func (e *Element) IsEnabled() bool { return e.enabled }

// IsFocused reports whether the element currently has keyboard focus.
func (e *Element) IsFocused() bool { return e.focused }

// IsSelected reports whether the element is currently selected.
func (e *Element) IsSelected() bool { return e.selected }

// IsVisible reports whether the element was visible at capture time.
// Use the two-argument IsVisibleWithin for an on-screen intersection test.
func (e *Element) IsVisible() bool { return e.visible }

// IsScrollable reports whether the element supports scrolling.
func (e *Element) IsScrollable() bool { return e.scrollable }

// IsEditable reports whether the element accepts text input.
func (e *Element) IsEditable() bool { return e.editable }

// Property returns a platform-specific property value by key.
func (e *Element) Property(key string) (any, bool) {
	v, ok := e.properties[key]

	return v, ok
}

// Properties returns a copy of the element's platform-specific properties.
func (e *Element) Properties() map[string]any {
	out := make(map[string]any, len(e.properties))
	for k, v := range e.properties {
		out[k] = v
	}

	return out
}

// Center returns the midpoint of the element's bounds.
func (e *Element) Center() image.Point {
	return image.Point{
		X: (e.bounds.Min.X + e.bounds.Max.X) / 2,
		Y: (e.bounds.Min.Y + e.bounds.Max.Y) / 2,
	}
}

// Contains reports whether a screen point falls within the element's bounds.
func (e *Element) Contains(p image.Point) bool {
	return p.In(e.bounds)
}

// Overlaps reports whether this element's bounds intersect another's.
func (e *Element) Overlaps(other *Element) bool {
	if other == nil {
		return false
	}

	return e.bounds.Overlaps(other.bounds)
}

// IsVisibleWithin reports whether the element's bounds intersect screenBounds.
func (e *Element) IsVisibleWithin(screenBounds image.Rectangle) bool {
	return e.bounds.Overlaps(screenBounds)
}

// DistanceTo returns the Euclidean distance in pixels between this
// element's center and another's, used by the locator's spatial filters.
func (e *Element) DistanceTo(other *Element) float64 {
	if other == nil {
		return math.Inf(1)
	}

	a, b := e.Center(), other.Center()
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)

	return math.Sqrt(dx*dx + dy*dy)
}

// IsAbove reports whether this element's center lies above other's.
func (e *Element) IsAbove(other *Element) bool {
	return other != nil && e.Center().Y < other.Center().Y
}

// IsBelow reports whether this element's center lies below other's.
func (e *Element) IsBelow(other *Element) bool {
	return other != nil && e.Center().Y > other.Center().Y
}

// IsLeftOf reports whether this element's center lies to the left of other's.
func (e *Element) IsLeftOf(other *Element) bool {
	return other != nil && e.Center().X < other.Center().X
}

// IsRightOf reports whether this element's center lies to the right of other's.
func (e *Element) IsRightOf(other *Element) bool {
	return other != nil && e.Center().X > other.Center().X
}

// IsNear reports whether other is within thresholdPx of this element's center.
func (e *Element) IsNear(other *Element, thresholdPx float64) bool {
	return other != nil && e.DistanceTo(other) <= thresholdPx
}

// MarkStale flags the element as no longer backed by a live native handle.
// Subsequent Parent/Children/Siblings calls fail with CodeElementStale.
func (e *Element) MarkStale() { e.stale.Store(true) }

// IsStale reports whether the element has been marked stale.
func (e *Element) IsStale() bool { return e.stale.Load() }

// Parent resolves the element's parent via its navigation provider.
func (e *Element) Parent(ctx context.Context) (*Element, error) {
	if e.IsStale() {
		return nil, derrors.Newf(derrors.CodeElementStale, "element %s is stale", e.id)
	}
	if e.provider == nil {
		return nil, derrors.New(derrors.CodeUnsupportedOperation, "element has no navigation provider")
	}

	return e.provider.Parent(ctx, e.id)
}

// Children resolves the element's children via its navigation provider.
func (e *Element) Children(ctx context.Context) ([]*Element, error) {
	if e.IsStale() {
		return nil, derrors.Newf(derrors.CodeElementStale, "element %s is stale", e.id)
	}
	if e.provider == nil {
		return nil, derrors.New(derrors.CodeUnsupportedOperation, "element has no navigation provider")
	}

	return e.provider.Children(ctx, e.id)
}

// Siblings resolves the element's siblings via its navigation provider.
func (e *Element) Siblings(ctx context.Context) ([]*Element, error) {
	if e.IsStale() {
		return nil, derrors.Newf(derrors.CodeElementStale, "element %s is stale", e.id)
	}
	if e.provider == nil {
		return nil, derrors.New(derrors.CodeUnsupportedOperation, "element has no navigation provider")
	}

	return e.provider.Siblings(ctx, e.id)
}
