package accessibility

import (
	"context"
	"errors"
	"image"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/deskautomate/engine/internal/action"
	"github.com/deskautomate/engine/internal/config"
	"github.com/deskautomate/engine/internal/element"
	derrors "github.com/deskautomate/engine/internal/errors"
)

// errStopWalk signals that a tree walk should stop early without being treated as a failure.
var errStopWalk = errors.New("accessibility: walk stopped")

// defaultHealthTimeout bounds a Health call when the config doesn't set one.
const defaultHealthTimeout = 5 * time.Second

// defaultMaxDepth bounds a traversal when no explicit depth is requested.
const defaultMaxDepth = 64

// Facade implements Port on top of a Platform backend. It owns the element
// cache, normalizes native roles into the domain Role vocabulary, and tracks
// enough of the live tree to satisfy Element.Parent/Children/Siblings
// navigation after the initial snapshot is taken.
type Facade struct {
	platform Platform
	cache    *InfoCache
	cfg      config.AccessibilityConfig
	logger   *zap.Logger

	mu         sync.RWMutex
	liveNodes  map[string]NativeNode
	parentOf   map[string]string
	excludeSet map[string]bool
}

// NewFacade builds a Facade around a Platform backend.
func NewFacade(platform Platform, cfg config.AccessibilityConfig, excludedApps []string, logger *zap.Logger) *Facade {
	if logger == nil {
		logger = zap.NewNop()
	}

	exclude := make(map[string]bool, len(excludedApps))
	for _, name := range excludedApps {
		exclude[strings.ToLower(name)] = true
	}

	return &Facade{
		platform:   platform,
		cache:      NewInfoCache(logger),
		cfg:        cfg,
		logger:     logger,
		liveNodes:  make(map[string]NativeNode),
		parentOf:   make(map[string]string),
		excludeSet: exclude,
	}
}

// Close stops the background cache cleanup goroutine.
func (f *Facade) Close() {
	f.cache.Stop()
}

var _ Port = (*Facade)(nil)
var _ element.Provider = (*Facade)(nil)

// --- element.Provider ---

// Parent resolves the parent of id using the parent link recorded during the
// traversal that originally discovered id.
func (f *Facade) Parent(ctx context.Context, id element.ID) (*element.Element, error) {
	f.mu.RLock()
	parentID, ok := f.parentOf[string(id)]
	f.mu.RUnlock()

	if !ok {
		return nil, derrors.Newf(derrors.CodeUnsupportedOperation, "no known parent for element %s", id)
	}

	f.mu.RLock()
	node, ok := f.liveNodes[parentID]
	f.mu.RUnlock()

	if !ok {
		return nil, derrors.Newf(derrors.CodeElementStale, "parent of %s is no longer live", id)
	}

	return f.convert(ctx, node, f.parentOf[parentID], config.PropertyModeFast)
}

// Children resolves the live children of id, re-fetching from the platform.
func (f *Facade) Children(ctx context.Context, id element.ID) ([]*element.Element, error) {
	f.mu.RLock()
	node, ok := f.liveNodes[string(id)]
	f.mu.RUnlock()

	if !ok {
		return nil, derrors.Newf(derrors.CodeElementStale, "element %s is no longer live", id)
	}

	children, err := node.Children(ctx)
	if err != nil {
		return nil, derrors.Wrapf(err, derrors.CodePlatformError, "listing children of %s", id)
	}

	result := make([]*element.Element, 0, len(children))

	for _, child := range children {
		elem, err := f.convert(ctx, child, string(id), config.PropertyModeFast)
		if err != nil {
			continue
		}

		result = append(result, elem)
	}

	return result, nil
}

// Siblings resolves the elements that share id's parent, excluding id itself.
func (f *Facade) Siblings(ctx context.Context, id element.ID) ([]*element.Element, error) {
	f.mu.RLock()
	parentID, ok := f.parentOf[string(id)]
	f.mu.RUnlock()

	if !ok {
		return nil, derrors.Newf(derrors.CodeUnsupportedOperation, "no known parent for element %s", id)
	}

	siblings, err := f.Children(ctx, element.ID(parentID))
	if err != nil {
		return nil, err
	}

	result := make([]*element.Element, 0, len(siblings))

	for _, sib := range siblings {
		if sib.ID() != id {
			result = append(result, sib)
		}
	}

	return result, nil
}

// --- HealthCheck ---

// Health probes the platform accessibility API under a hard timeout.
func (f *Facade) Health(ctx context.Context) (HealthStatus, error) {
	timeout := f.cfg.HealthCheckTimeout
	if timeout <= 0 {
		timeout = defaultHealthTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	diagnostics := make(map[string]string)
	status := HealthHealthy

	permErr := f.platform.CheckPermissions(ctx)
	apiAvailable := permErr == nil

	if permErr != nil {
		diagnostics["permissions"] = permErr.Error()
		status = HealthUnhealthy
	}

	desktopAccessible := false
	canEnumerate := false

	if apiAvailable {
		root, err := f.platform.Root(ctx)
		if err != nil {
			diagnostics["root"] = err.Error()
			status = HealthDegraded
		} else {
			desktopAccessible = true

			children, err := root.Children(ctx)
			if err != nil {
				diagnostics["enumerate"] = err.Error()
				status = HealthDegraded
			} else {
				canEnumerate = true
				diagnostics["root_children"] = strconv.Itoa(len(children))
			}
		}
	}

	return HealthStatus{
		Status:               status,
		APIAvailable:         apiAvailable,
		DesktopAccessible:    desktopAccessible,
		CanEnumerateElements: canEnumerate,
		DurationMS:           time.Since(start).Milliseconds(),
		Diagnostics:          diagnostics,
	}, nil
}

// --- ElementDiscovery ---

// Root returns the desktop root element.
func (f *Facade) Root(ctx context.Context) (*element.Element, error) {
	node, err := f.platform.Root(ctx)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CodePlatformError, "fetching desktop root")
	}

	return f.convert(ctx, node, "", config.PropertyModeFast)
}

// FocusedElement returns the element with keyboard focus.
func (f *Facade) FocusedElement(ctx context.Context) (*element.Element, error) {
	node, err := f.platform.FocusedElement(ctx)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CodePlatformError, "fetching focused element")
	}

	return f.convert(ctx, node, "", config.PropertyModeComplete)
}

// ClickableElements walks the tree from the desktop root and returns every
// element that matches filter.
func (f *Facade) ClickableElements(ctx context.Context, filter ElementFilter) ([]*element.Element, error) {
	root, err := f.platform.Root(ctx)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CodePlatformError, "fetching desktop root")
	}

	var matches []*element.Element

	walkErr := f.walk(ctx, root, "", defaultMaxDepth, config.PropertyModeSmart, func(elem *element.Element) bool {
		if elem.IsClickable() && matchesFilter(elem, filter) {
			matches = append(matches, elem)
		}

		return true
	})
	if walkErr != nil {
		return nil, derrors.Wrap(walkErr, derrors.CodePlatformError, "walking accessibility tree")
	}

	return matches, nil
}

func matchesFilter(elem *element.Element, filter ElementFilter) bool {
	if len(filter.Roles) > 0 && !roleIn(elem.Role(), filter.Roles) {
		return false
	}

	if roleIn(elem.Role(), filter.ExcludeRoles) {
		return false
	}

	if !filter.IncludeOffscreen && !elem.IsVisible() {
		return false
	}

	bounds := elem.Bounds()
	if filter.MinSize.X > 0 && bounds.Dx() < filter.MinSize.X {
		return false
	}

	if filter.MinSize.Y > 0 && bounds.Dy() < filter.MinSize.Y {
		return false
	}

	return true
}

func roleIn(role element.Role, roles []element.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}

	return false
}

// FindElement returns the first descendant of root (or the desktop root when
// root is nil) matching pred, bounded by timeout.
func (f *Facade) FindElement(
	ctx context.Context,
	root *element.Element,
	pred func(*element.Element) bool,
	timeout time.Duration,
) (*element.Element, error) {
	startNode, parentID, err := f.resolveStartNode(ctx, root)
	if err != nil {
		return nil, err
	}

	if timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var found *element.Element

	walkErr := f.walk(ctx, startNode, parentID, defaultMaxDepth, config.PropertyModeComplete, func(elem *element.Element) bool {
		if pred(elem) {
			found = elem

			return false
		}

		return true
	})

	if walkErr != nil && !errors.Is(walkErr, context.DeadlineExceeded) {
		return nil, derrors.Wrap(walkErr, derrors.CodePlatformError, "searching accessibility tree")
	}

	if found == nil {
		if errors.Is(walkErr, context.DeadlineExceeded) {
			return nil, derrors.New(derrors.CodeTimeoutExpired, "element not found before timeout")
		}

		return nil, derrors.New(derrors.CodeElementNotFound, "no element matched the predicate")
	}

	return found, nil
}

// FindElements returns every descendant of root (or the desktop root) matching
// pred, no deeper than depth levels.
func (f *Facade) FindElements(
	ctx context.Context,
	root *element.Element,
	pred func(*element.Element) bool,
	timeout time.Duration,
	depth int,
) ([]*element.Element, error) {
	startNode, parentID, err := f.resolveStartNode(ctx, root)
	if err != nil {
		return nil, err
	}

	if timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if depth <= 0 {
		depth = defaultMaxDepth
	}

	var matches []*element.Element

	walkErr := f.walk(ctx, startNode, parentID, depth, config.PropertyModeComplete, func(elem *element.Element) bool {
		if pred(elem) {
			matches = append(matches, elem)
		}

		return true
	})

	if walkErr != nil && !errors.Is(walkErr, context.DeadlineExceeded) {
		return nil, derrors.Wrap(walkErr, derrors.CodePlatformError, "searching accessibility tree")
	}

	return matches, nil
}

func (f *Facade) resolveStartNode(ctx context.Context, root *element.Element) (NativeNode, string, error) {
	if root == nil {
		node, err := f.platform.Root(ctx)
		if err != nil {
			return nil, "", derrors.Wrap(err, derrors.CodePlatformError, "fetching desktop root")
		}

		return node, "", nil
	}

	if root.IsStale() {
		return nil, "", derrors.Newf(derrors.CodeElementStale, "element %s is stale", root.ID())
	}

	f.mu.RLock()
	node, ok := f.liveNodes[string(root.ID())]
	parentID := f.parentOf[string(root.ID())]
	f.mu.RUnlock()

	if !ok {
		return nil, "", derrors.Newf(derrors.CodeElementStale, "element %s is no longer live", root.ID())
	}

	return node, parentID, nil
}

// GetWindowTree warms the cache for the window owned by pid (optionally
// matched by title) down to cfg.MaxDepth, honoring the configured yield
// budget, batch size and per-operation timeout, then returns the window's
// root element. Callers navigate deeper via Element.Children, which is
// served from the same live-node registry this walk populates.
func (f *Facade) GetWindowTree(
	ctx context.Context,
	pid int,
	title string,
	cfg WindowTreeConfig,
) (*element.Element, error) {
	app, err := f.platform.ApplicationByPID(ctx, pid)
	if err != nil {
		return nil, derrors.Wrapf(err, derrors.CodePlatformError, "resolving application for pid %d", pid)
	}

	if title != "" && app.WindowTitle() != "" && !strings.EqualFold(app.WindowTitle(), title) {
		f.logger.Debug("window title mismatch",
			zap.String("wanted", title),
			zap.String("got", app.WindowTitle()))
	}

	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}

	opCtx := ctx
	if cfg.TimeoutPerOperation > 0 {
		var cancel context.CancelFunc

		opCtx, cancel = context.WithTimeout(ctx, cfg.TimeoutPerOperation)
		defer cancel()
	}

	walkErr := f.walkWithBudget(
		opCtx, app, "", maxDepth, cfg.PropertyMode,
		cfg.YieldEveryNElements, cfg.BatchSize, cfg.TimeoutPerOperation,
		func(*element.Element) bool { return true },
	)
	if walkErr != nil && !errors.Is(walkErr, context.DeadlineExceeded) {
		return nil, derrors.Wrap(walkErr, derrors.CodePlatformError, "building window tree")
	}

	return f.convert(ctx, app, "", cfg.PropertyMode)
}

// walk is walkWithBudget with the facade's configured yield/batch/timeout values.
func (f *Facade) walk(
	ctx context.Context,
	root NativeNode,
	rootParentID string,
	maxDepth int,
	mode config.PropertyMode,
	visit func(*element.Element) bool,
) error {
	return f.walkWithBudget(
		ctx, root, rootParentID, maxDepth, mode,
		f.cfg.YieldEveryNElements, f.cfg.BatchSize, f.cfg.TimeoutPerOperation,
		visit,
	)
}

// walkWithBudget performs a depth-first traversal of the native tree rooted
// at root, converting each node to an Element and calling visit. When a
// node has more than one child and batchSize is above 1, its children are
// walked concurrently, at most batchSize at a time; otherwise they are
// walked sequentially. Every yieldEvery visited elements the
// goroutine yields the processor so a long walk doesn't starve other work.
func (f *Facade) walkWithBudget(
	ctx context.Context,
	root NativeNode,
	rootParentID string,
	maxDepth int,
	mode config.PropertyMode,
	yieldEvery int,
	batchSize int,
	perOpTimeout time.Duration,
	visit func(*element.Element) bool,
) error {
	var visited atomic.Int64

	var walkNode func(node NativeNode, parentID string, depth int) error

	walkNode = func(node NativeNode, parentID string, depth int) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		elem, err := f.convert(ctx, node, parentID, mode)
		if err != nil {
			return nil //nolint:nilerr // a single unreadable node shouldn't abort the walk
		}

		if !visit(elem) {
			return errStopWalk
		}

		count := visited.Add(1)
		if yieldEvery > 0 && count%int64(yieldEvery) == 0 {
			runtime.Gosched()
		}

		if maxDepth >= 0 && depth >= maxDepth {
			return nil
		}

		childCtx := ctx

		if perOpTimeout > 0 {
			var cancel context.CancelFunc

			childCtx, cancel = context.WithTimeout(ctx, perOpTimeout)
			defer cancel()
		}

		children, err := node.Children(childCtx)
		if err != nil {
			return nil //nolint:nilerr // failing to expand one node shouldn't abort the walk
		}

		if batchSize <= 1 || len(children) <= 1 {
			for _, child := range children {
				if err := walkNode(child, node.ID(), depth+1); err != nil {
					return err
				}
			}

			return nil
		}

		return walkChildrenConcurrently(children, batchSize, func(child NativeNode) error {
			return walkNode(child, node.ID(), depth+1)
		})
	}

	err := walkNode(root, rootParentID, 0)
	if errors.Is(err, errStopWalk) {
		return nil
	}

	return err
}

func walkChildrenConcurrently(children []NativeNode, batchSize int, fn func(NativeNode) error) error {
	sem := make(chan struct{}, batchSize)

	var wg sync.WaitGroup

	var mu sync.Mutex

	var firstErr error

	for _, child := range children {
		sem <- struct{}{}

		wg.Add(1)

		go func(c NativeNode) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := fn(c); err != nil {
				mu.Lock()

				if firstErr == nil {
					firstErr = err
				}

				mu.Unlock()
			}
		}(child)
	}

	wg.Wait()

	return firstErr
}

// convert snapshots a NativeNode into an Element, records it in the live-node
// registry so later Parent/Children/Siblings calls can resolve it, and warms
// the info cache.
func (f *Facade) convert(
	_ context.Context,
	node NativeNode,
	parentID string,
	mode config.PropertyMode,
) (*element.Element, error) {
	id := node.ID()

	f.mu.Lock()
	f.liveNodes[id] = node

	if parentID != "" {
		f.parentOf[id] = parentID
	}
	f.mu.Unlock()

	if cached := f.cache.Get(id); cached != nil {
		return cached, nil
	}

	opts := []element.Option{
		element.WithName(node.Name()),
		element.WithLabel(node.Label()),
		element.WithValue(node.Value()),
		element.WithProcessID(node.ProcessID()),
		element.WithClickable(node.Clickable()),
		element.WithFocusable(node.Focusable()),
		element.WithEnabled(node.Enabled()),
		element.WithFocused(node.Focused()),
		element.WithSelected(node.Selected()),
		element.WithVisible(node.Visible()),
		element.WithScrollable(node.Scrollable()),
		element.WithEditable(node.Editable()),
	}

	if mode != config.PropertyModeFast {
		opts = append(opts,
			element.WithDescription(node.Description()),
			element.WithClassName(node.ClassName()),
			element.WithURL(node.URL()),
		)

		if props := node.Properties(); len(props) > 0 {
			opts = append(opts, element.WithProperties(props))
		}
	}

	if app, ok := node.(NativeApp); ok {
		opts = append(opts,
			element.WithApplicationName(app.BundleID()),
			element.WithWindowTitle(app.WindowTitle()),
		)
	}

	opts = append(opts, element.WithProvider(f))

	elem, err := element.NewElement(element.ID(id), node.Bounds(), mapRole(node.Role()), opts...)
	if err != nil {
		return nil, err
	}

	f.cache.Set(elem)

	return elem, nil
}

// --- ActionExecution ---

// PerformAction executes actionType on elem.
func (f *Facade) PerformAction(ctx context.Context, elem *element.Element, actionType action.Type) error {
	if elem == nil {
		return derrors.New(derrors.CodeInvalidArgument, "element is nil")
	}

	if elem.IsStale() {
		return derrors.Newf(derrors.CodeElementStale, "element %s is stale", elem.ID())
	}

	f.mu.RLock()
	node, ok := f.liveNodes[string(elem.ID())]
	f.mu.RUnlock()

	if !ok {
		return derrors.Newf(derrors.CodeElementStale, "element %s is no longer live", elem.ID())
	}

	if err := f.platform.PerformAction(ctx, node, actionType); err != nil {
		return derrors.Wrapf(err, derrors.CodePlatformError, "performing %s", actionType)
	}

	return nil
}

// PerformActionAtPoint executes actionType at the given screen point.
func (f *Facade) PerformActionAtPoint(ctx context.Context, actionType action.Type, point image.Point) error {
	if err := f.platform.PerformActionAtPoint(ctx, actionType, point); err != nil {
		return derrors.Wrapf(err, derrors.CodePlatformError, "performing %s at %v", actionType, point)
	}

	return nil
}

// Scroll performs a scroll action at the current cursor position.
func (f *Facade) Scroll(ctx context.Context, deltaX, deltaY int) error {
	if err := f.platform.Scroll(ctx, deltaX, deltaY); err != nil {
		return derrors.Wrap(err, derrors.CodePlatformError, "scrolling")
	}

	return nil
}

// TypeText types text into elem, or at the current focus if elem is nil.
func (f *Facade) TypeText(ctx context.Context, elem *element.Element, text string, clearBefore bool) error {
	var node NativeNode

	if elem != nil {
		if elem.IsStale() {
			return derrors.Newf(derrors.CodeElementStale, "element %s is stale", elem.ID())
		}

		f.mu.RLock()
		liveNode, ok := f.liveNodes[string(elem.ID())]
		f.mu.RUnlock()

		if !ok {
			return derrors.Newf(derrors.CodeElementStale, "element %s is no longer live", elem.ID())
		}

		node = liveNode
	}

	if err := f.platform.TypeText(ctx, node, text, clearBefore); err != nil {
		return derrors.Wrap(err, derrors.CodePlatformError, "typing text")
	}

	return nil
}

// PressKey sends a key expression to the focused element or globally.
func (f *Facade) PressKey(ctx context.Context, keys string, global bool) error {
	if err := f.platform.PressKey(ctx, keys, global); err != nil {
		return derrors.Wrapf(err, derrors.CodePlatformError, "pressing keys %q", keys)
	}

	return nil
}

// SetFocus moves keyboard focus to elem.
func (f *Facade) SetFocus(ctx context.Context, elem *element.Element) error {
	if elem == nil {
		return derrors.New(derrors.CodeInvalidArgument, "element is nil")
	}

	f.mu.RLock()
	node, ok := f.liveNodes[string(elem.ID())]
	f.mu.RUnlock()

	if !ok {
		return derrors.Newf(derrors.CodeElementStale, "element %s is no longer live", elem.ID())
	}

	if err := f.platform.SetFocus(ctx, node); err != nil {
		return derrors.Wrap(err, derrors.CodePlatformError, "setting focus")
	}

	return nil
}

// --- ApplicationManagement ---

// Applications lists all running applications.
func (f *Facade) Applications(ctx context.Context) ([]*element.Element, error) {
	apps, err := f.platform.Applications(ctx)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CodePlatformError, "listing applications")
	}

	result := make([]*element.Element, 0, len(apps))

	for _, app := range apps {
		if f.IsAppExcluded(ctx, app.BundleID()) {
			continue
		}

		elem, err := f.convert(ctx, app, "", config.PropertyModeFast)
		if err != nil {
			continue
		}

		result = append(result, elem)
	}

	return result, nil
}

// ApplicationByName returns the application element with the given display name.
func (f *Facade) ApplicationByName(ctx context.Context, name string) (*element.Element, error) {
	app, err := f.platform.ApplicationByName(ctx, name)
	if err != nil {
		return nil, derrors.Wrapf(err, derrors.CodePlatformError, "resolving application %q", name)
	}

	return f.convert(ctx, app, "", config.PropertyModeComplete)
}

// ApplicationByPID returns the application element owned by pid, waiting up to timeout.
func (f *Facade) ApplicationByPID(ctx context.Context, pid int, timeout time.Duration) (*element.Element, error) {
	if timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	app, err := f.platform.ApplicationByPID(ctx, pid)
	if err != nil {
		return nil, derrors.Wrapf(err, derrors.CodePlatformError, "resolving application for pid %d", pid)
	}

	return f.convert(ctx, app, "", config.PropertyModeComplete)
}

// OpenApplication launches an application by name.
func (f *Facade) OpenApplication(ctx context.Context, name string) error {
	if err := f.platform.OpenApplication(ctx, name); err != nil {
		return derrors.Wrapf(err, derrors.CodePlatformError, "opening application %q", name)
	}

	return nil
}

// ActivateApplication brings an already-running application to the foreground.
func (f *Facade) ActivateApplication(ctx context.Context, name string) error {
	if err := f.platform.ActivateApplication(ctx, name); err != nil {
		return derrors.Wrapf(err, derrors.CodePlatformError, "activating application %q", name)
	}

	return nil
}

// OpenURL opens url in browser (or the default browser if empty).
func (f *Facade) OpenURL(ctx context.Context, url, browser string) error {
	if err := f.platform.OpenURL(ctx, url, browser); err != nil {
		return derrors.Wrapf(err, derrors.CodePlatformError, "opening url %q", url)
	}

	return nil
}

// OpenFile opens path with its associated default application.
func (f *Facade) OpenFile(ctx context.Context, path string) error {
	if err := f.platform.OpenFile(ctx, path); err != nil {
		return derrors.Wrapf(err, derrors.CodePlatformError, "opening file %q", path)
	}

	return nil
}

// RunCommand runs winCmd on Windows or unixCmd on macOS/Linux.
func (f *Facade) RunCommand(ctx context.Context, winCmd, unixCmd string) (CommandResult, error) {
	result, err := f.platform.RunCommand(ctx, winCmd, unixCmd)
	if err != nil {
		return result, derrors.Wrap(err, derrors.CodePlatformError, "running command")
	}

	return result, nil
}

// FocusedAppBundleID returns the bundle/process identifier of the focused application.
func (f *Facade) FocusedAppBundleID(ctx context.Context) (string, error) {
	app, err := f.platform.FocusedApplication(ctx)
	if err != nil {
		return "", derrors.Wrap(err, derrors.CodePlatformError, "resolving focused application")
	}

	return app.BundleID(), nil
}

// IsAppExcluded checks if the given bundle ID is in the exclusion list.
func (f *Facade) IsAppExcluded(_ context.Context, bundleID string) bool {
	if bundleID == "" {
		return false
	}

	return f.excludeSet[strings.ToLower(bundleID)]
}

// --- ScreenManagement ---

// ScreenBounds returns the bounds of the active screen.
func (f *Facade) ScreenBounds(ctx context.Context) (image.Rectangle, error) {
	bounds, err := f.platform.ScreenBounds(ctx)
	if err != nil {
		return image.Rectangle{}, derrors.Wrap(err, derrors.CodePlatformError, "fetching screen bounds")
	}

	return bounds, nil
}

// ListMonitors returns every attached monitor.
func (f *Facade) ListMonitors(ctx context.Context) ([]Monitor, error) {
	monitors, err := f.platform.Monitors(ctx)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CodePlatformError, "listing monitors")
	}

	return monitors, nil
}

// PrimaryMonitor returns the monitor marked as primary.
func (f *Facade) PrimaryMonitor(ctx context.Context) (Monitor, error) {
	monitors, err := f.ListMonitors(ctx)
	if err != nil {
		return Monitor{}, err
	}

	for _, m := range monitors {
		if m.IsPrimary {
			return m, nil
		}
	}

	if len(monitors) > 0 {
		return monitors[0], nil
	}

	return Monitor{}, derrors.New(derrors.CodePlatformError, "no monitors reported")
}

// ActiveMonitor returns the monitor currently under the cursor.
func (f *Facade) ActiveMonitor(ctx context.Context) (Monitor, error) {
	cursor, err := f.CursorPosition(ctx)
	if err != nil {
		return Monitor{}, err
	}

	monitors, err := f.ListMonitors(ctx)
	if err != nil {
		return Monitor{}, err
	}

	for _, m := range monitors {
		if cursor.In(m.Bounds) {
			return m, nil
		}
	}

	return f.PrimaryMonitor(ctx)
}

// MoveCursorToPoint moves the mouse cursor to the specified point.
func (f *Facade) MoveCursorToPoint(ctx context.Context, point image.Point) error {
	if err := f.platform.MoveCursor(ctx, point); err != nil {
		return derrors.Wrap(err, derrors.CodePlatformError, "moving cursor")
	}

	return nil
}

// CursorPosition returns the current cursor position.
func (f *Facade) CursorPosition(ctx context.Context) (image.Point, error) {
	point, err := f.platform.CursorPosition(ctx)
	if err != nil {
		return image.Point{}, derrors.Wrap(err, derrors.CodePlatformError, "reading cursor position")
	}

	return point, nil
}

// --- PermissionManagement ---

// CheckPermissions verifies that accessibility permissions are granted.
func (f *Facade) CheckPermissions(ctx context.Context) error {
	if err := f.platform.CheckPermissions(ctx); err != nil {
		return derrors.Wrap(err, derrors.CodeAccessibilityDenied, "accessibility permissions not granted")
	}

	return nil
}

// roleAliases maps native AX/UIA/AT-SPI role strings onto the closed Role
// vocabulary (spec §6.4). Several native roles have no distinct counterpart
// in that vocabulary and are folded onto the nearest fit: table rows and
// cells onto dataitem, tab containers onto pane, dialogs/applications
// onto window, since the vocabulary has no dialog/application/row/cell/
// tabgroup members of its own.
var roleAliases = map[string]element.Role{
	"AXButton":             element.RoleButton,
	"AXLink":               element.RoleHyperlink,
	"AXTextField":          element.RoleEdit,
	"AXTextArea":           element.RoleEdit,
	"AXCheckBox":           element.RoleCheckbox,
	"AXRadioButton":        element.RoleRadioButton,
	"AXMenuItem":           element.RoleMenuItem,
	"AXMenu":               element.RoleMenu,
	"AXMenuBar":            element.RoleMenu,
	"AXList":               element.RoleList,
	"AXRow":                element.RoleDataItem,
	"AXCell":               element.RoleDataItem,
	"AXTable":              element.RoleTable,
	"AXOutline":            element.RoleTree,
	"AXOutlineRow":         element.RoleTreeItem,
	"AXImage":              element.RoleImage,
	"AXStaticText":         element.RoleText,
	"AXGroup":              element.RoleGroup,
	"AXToolbar":            element.RoleToolbar,
	"AXTabGroup":           element.RolePane,
	"AXTabPanel":           element.RolePane,
	"AXSlider":             element.RoleSlider,
	"AXPopUpButton":        element.RoleComboBox,
	"AXComboBox":           element.RoleComboBox,
	"AXWindow":             element.RoleWindow,
	"AXSheet":              element.RoleWindow,
	"AXApplication":        element.RoleWindow,
	"AXScrollArea":         element.RoleScrollbar,
	"AXHeading":            element.RoleHeader,
	"AXDisclosureTriangle": element.RoleButton,
	"AXProgressIndicator":  element.RoleProgressBar,
	"AXBusyIndicator":      element.RoleSpinner,
	"AXDocument":           element.RoleDocument,
	"AXSplitButton":        element.RoleSplitButton,
	"AXSeparator":          element.RoleSeparator,
	"AXUnknown":            element.RoleCustom,
}

// mapRole normalizes a native role string into the closed Role vocabulary,
// falling back to RoleCustom for anything roleAliases and the suffix match
// below don't recognize (spec §6.4: "unknown native roles map to custom").
func mapRole(native string) element.Role {
	if role, ok := roleAliases[native]; ok {
		return role
	}

	lower := strings.ToLower(strings.TrimPrefix(native, "AX"))
	for _, role := range []element.Role{
		element.RoleWindow, element.RolePane, element.RoleButton, element.RoleCheckbox,
		element.RoleMenu, element.RoleMenuItem, element.RoleText, element.RoleTree,
		element.RoleTreeItem, element.RoleList, element.RoleListItem, element.RoleComboBox,
		element.RoleTab, element.RoleTabItem, element.RoleToolbar, element.RoleCalendar,
		element.RoleEdit, element.RoleHyperlink, element.RoleProgressBar, element.RoleRadioButton,
		element.RoleScrollbar, element.RoleSlider, element.RoleSpinner, element.RoleStatusBar,
		element.RoleTooltip, element.RoleGroup, element.RoleDocument, element.RoleSplitButton,
		element.RoleHeader, element.RoleHeaderItem, element.RoleTable, element.RoleTitleBar,
		element.RoleSeparator, element.RoleImage, element.RoleDataItem, element.RoleDataGrid,
	} {
		if string(role) == lower {
			return role
		}
	}

	return element.RoleCustom
}
