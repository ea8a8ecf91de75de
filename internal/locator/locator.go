package locator

import (
	"context"
	"time"

	"github.com/deskautomate/engine/internal/element"
	derrors "github.com/deskautomate/engine/internal/errors"
	"github.com/deskautomate/engine/internal/selector"
)

// Condition names a wait_for predicate evaluated against a resolved element.
type Condition string

// Supported wait_for conditions.
const (
	ConditionExists  Condition = "exists"
	ConditionVisible Condition = "visible"
	ConditionEnabled Condition = "enabled"
	ConditionFocused Condition = "focused"
)

// Validation is the result of Locator.Validate: it never fails, distinguishing
// "not found" from "platform error" by leaving the respective field unset.
type Validation struct {
	Exists  bool
	Element *element.Element
	Err     error
}

// Locator binds a primary selector, an ordered list of fallback selectors,
// and an optional scope root to a Resolver, exposing the bounded-retry
// first/all/wait_for/validate contract.
type Locator struct {
	resolver  *Resolver
	primary   *selector.Selector
	fallbacks []*selector.Selector
	root      *element.Element
	depth     int
}

// New builds a Locator for primary, trying each of fallbacks in order if
// primary's retry jacket is exhausted without a match. root scopes the
// search to root's descendants; nil scopes to the desktop root.
func New(resolver *Resolver, primary *selector.Selector, fallbacks []*selector.Selector, root *element.Element) *Locator {
	return &Locator{resolver: resolver, primary: primary, fallbacks: fallbacks, root: root, depth: resolver.cfg.DefaultMaxDepth}
}

// WithDepth overrides the max traversal depth used by All.
func (l *Locator) WithDepth(depth int) *Locator {
	clone := *l
	clone.depth = depth

	return &clone
}

// First returns the first match among primary then fallback selectors,
// each retried with a bounded backoff loop until timeout.
func (l *Locator) First(ctx context.Context, timeout time.Duration) (*element.Element, error) {
	if timeout <= 0 {
		timeout = l.resolver.cfg.DefaultTimeout
	}

	deadline := time.Now().Add(timeout)

	elem, err := l.retryFirst(ctx, l.primary, deadline)
	if err == nil {
		return elem, nil
	}

	primaryErr := err

	for _, fb := range l.fallbacks {
		elem, fbErr := l.retryFirst(ctx, fb, deadline)
		if fbErr == nil {
			return elem, nil
		}
	}

	return nil, primaryErr
}

func (l *Locator) retryFirst(ctx context.Context, sel *selector.Selector, deadline time.Time) (*element.Element, error) {
	if sel == nil || sel.IsInvalid() {
		return nil, derrors.New(derrors.CodeInvalidSelector, "selector is invalid or empty")
	}

	pollInterval := l.resolver.cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = 30 * time.Millisecond
	}

	for {
		select {
		case <-ctx.Done():
			return nil, derrors.Wrap(ctx.Err(), derrors.CodeCancelled, "locator cancelled")
		default:
		}

		matches, err := l.resolver.eval(ctx, sel, l.root, l.depth)
		if err != nil {
			if fatalPlatformError(err) {
				return nil, derrors.Wrap(err, derrors.CodePlatformError, "evaluating selector")
			}
		} else if len(matches) > 0 {
			return matches[0], nil
		}

		if time.Now().After(deadline) {
			return nil, derrors.New(derrors.CodeTimeoutExpired, "no element matched before timeout")
		}

		remaining := time.Until(deadline)
		if remaining < pollInterval {
			pollInterval = remaining
		}

		if pollInterval <= 0 {
			return nil, derrors.New(derrors.CodeTimeoutExpired, "no element matched before timeout")
		}

		timer := time.NewTimer(pollInterval)

		select {
		case <-ctx.Done():
			timer.Stop()

			return nil, derrors.Wrap(ctx.Err(), derrors.CodeCancelled, "locator cancelled")
		case <-timer.C:
		}
	}
}

// All returns every match for the primary selector, up to depth levels deep
// (falling back to the locator's configured depth when depth <= 0).
func (l *Locator) All(ctx context.Context, timeout time.Duration, depth int) ([]*element.Element, error) {
	if l.primary == nil || l.primary.IsInvalid() {
		return nil, derrors.New(derrors.CodeInvalidSelector, "selector is invalid or empty")
	}

	if depth <= 0 {
		depth = l.depth
	}

	if timeout <= 0 {
		timeout = l.resolver.cfg.DefaultTimeout
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return l.resolver.eval(runCtx, l.primary, l.root, depth)
}

// WaitFor blocks until cond holds for some match of the primary selector,
// or timeout elapses.
func (l *Locator) WaitFor(ctx context.Context, cond Condition, timeout time.Duration) (*element.Element, error) {
	if timeout <= 0 {
		timeout = l.resolver.cfg.DefaultTimeout
	}

	deadline := time.Now().Add(timeout)

	pollInterval := l.resolver.cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = 30 * time.Millisecond
	}

	for {
		select {
		case <-ctx.Done():
			return nil, derrors.Wrap(ctx.Err(), derrors.CodeCancelled, "locator cancelled")
		default:
		}

		matches, err := l.resolver.eval(ctx, l.primary, l.root, l.depth)
		if err != nil && fatalPlatformError(err) {
			return nil, derrors.Wrap(err, derrors.CodePlatformError, "evaluating selector")
		}

		if cond == ConditionFocused {
			if e := l.resolveFocusedMatch(ctx, matches); e != nil {
				return e, nil
			}
		} else {
			for _, e := range matches {
				if conditionHolds(cond, e) {
					return e, nil
				}
			}
		}

		if time.Now().After(deadline) {
			return nil, derrors.New(derrors.CodeTimeoutExpired, "condition not satisfied before timeout")
		}

		timer := time.NewTimer(pollInterval)

		select {
		case <-ctx.Done():
			timer.Stop()

			return nil, derrors.Wrap(ctx.Err(), derrors.CodeCancelled, "locator cancelled")
		case <-timer.C:
		}
	}
}

func conditionHolds(cond Condition, e *element.Element) bool {
	switch cond {
	case ConditionExists:
		return true
	case ConditionVisible:
		return e.IsVisible()
	case ConditionEnabled:
		return e.IsEnabled()
	case ConditionFocused:
		return e.IsFocused()
	default:
		return false
	}
}

// resolveFocusedMatch picks the one match to report as "focused" when a
// selector's matches span more than one window or application, each
// independently reporting IsFocused() true (stale per-window focus flags
// racing a live focus change, or platform quirks that surface more than one
// "has focus" node at once). The tiebreaker is deterministic: ask the
// accessibility port for the single element it currently considers focused
// and prefer the match with that id; if no match is that element (or the
// port call fails), fall back to the first focused match in the order eval
// returned (DFS order, or ascending distance from the anchor after a
// spatial clause), which is also deterministic.
func (l *Locator) resolveFocusedMatch(ctx context.Context, matches []*element.Element) *element.Element {
	var focused []*element.Element

	for _, e := range matches {
		if e.IsFocused() {
			focused = append(focused, e)
		}
	}

	if len(focused) == 0 {
		return nil
	}

	if len(focused) == 1 {
		return focused[0]
	}

	live, err := l.resolver.port.FocusedElement(ctx)
	if err == nil {
		for _, e := range focused {
			if e.ID() == live.ID() {
				return e
			}
		}
	}

	return focused[0]
}

// Validate reports whether the primary selector currently has a match. It
// never returns an error for "not found"; Err is only set for a genuine
// platform failure, distinguishing the two outcomes for callers.
func (l *Locator) Validate(ctx context.Context, timeout time.Duration) Validation {
	if timeout <= 0 {
		timeout = l.resolver.cfg.DefaultTimeout
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	elem, err := l.retryFirst(runCtx, l.primary, time.Now().Add(timeout))
	if err == nil {
		return Validation{Exists: true, Element: elem}
	}

	if derrors.IsCode(err, derrors.CodeTimeoutExpired) || derrors.IsCode(err, derrors.CodeElementNotFound) {
		return Validation{Exists: false}
	}

	return Validation{Exists: false, Err: err}
}
