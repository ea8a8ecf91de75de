// Package locator resolves a parsed selector AST against the live
// accessibility tree, with a bounded retry jacket and an ordered fallback
// list for brittle selectors.
package locator

import (
	"context"
	"errors"
	"image"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/deskautomate/engine/internal/accessibility"
	"github.com/deskautomate/engine/internal/config"
	"github.com/deskautomate/engine/internal/element"
	derrors "github.com/deskautomate/engine/internal/errors"
	"github.com/deskautomate/engine/internal/selector"
)

const defaultFindTimeout = 500 * time.Millisecond

// Resolver evaluates selector ASTs against an accessibility.ElementDiscovery
// backend (the facade satisfies this as part of the larger accessibility.Port).
type Resolver struct {
	port   accessibility.ElementDiscovery
	cfg    config.LocatorConfig
	nearPx float64
	logger *zap.Logger
}

// NewResolver builds a Resolver over port, using cfg for retry timing and
// nearDistancePx as the default threshold for the Near spatial clause.
func NewResolver(port accessibility.ElementDiscovery, cfg config.LocatorConfig, nearDistancePx int, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}

	if nearDistancePx <= 0 {
		nearDistancePx = 100
	}

	return &Resolver{port: port, cfg: cfg, nearPx: float64(nearDistancePx), logger: logger}
}

// universe returns every descendant of root (the desktop root when root is
// nil) up to depth levels, unfiltered.
func (r *Resolver) universe(ctx context.Context, root *element.Element, depth int) ([]*element.Element, error) {
	if depth <= 0 {
		depth = r.cfg.DefaultMaxDepth
	}

	matches, err := r.port.FindElements(ctx, root, func(*element.Element) bool { return true }, defaultFindTimeout, depth)
	if err != nil {
		return nil, err
	}

	return matches, nil
}

// eval evaluates sel against root's descendants, to at most depth levels.
func (r *Resolver) eval(ctx context.Context, sel *selector.Selector, root *element.Element, depth int) ([]*element.Element, error) {
	if sel == nil || sel.IsInvalid() {
		return nil, nil
	}

	switch sel.Kind {
	case selector.KindAnd:
		return r.evalAnd(ctx, sel, root, depth)
	case selector.KindOr:
		return r.evalOr(ctx, sel, root, depth)
	case selector.KindNot:
		return r.evalNot(ctx, sel, root, depth)
	case selector.KindChain:
		return r.evalChain(ctx, sel, root, depth)
	case selector.KindNth, selector.KindHas, selector.KindRightOf, selector.KindLeftOf,
		selector.KindAbove, selector.KindBelow, selector.KindNear:
		universe, err := r.universe(ctx, root, depth)
		if err != nil {
			return nil, err
		}

		return r.applyModifier(ctx, sel, universe, root, depth)
	default:
		universe, err := r.universe(ctx, root, depth)
		if err != nil {
			return nil, err
		}

		return filterByLeaf(sel, universe), nil
	}
}

func isModifierKind(k selector.Kind) bool {
	switch k {
	case selector.KindNth, selector.KindHas, selector.KindRightOf, selector.KindLeftOf,
		selector.KindAbove, selector.KindBelow, selector.KindNear:
		return true
	default:
		return false
	}
}

// evalAnd intersects the results of the non-modifier clauses by id, then
// applies any spatial/Has/Nth clauses as successive filters over the
// intersected candidate set.
func (r *Resolver) evalAnd(ctx context.Context, sel *selector.Selector, root *element.Element, depth int) ([]*element.Element, error) {
	var candidates []*element.Element

	haveBase := false

	var modifiers []*selector.Selector

	for _, part := range sel.Parts {
		if isModifierKind(part.Kind) {
			modifiers = append(modifiers, part)

			continue
		}

		partResults, err := r.eval(ctx, part, root, depth)
		if err != nil {
			return nil, err
		}

		if !haveBase {
			candidates = partResults
			haveBase = true

			continue
		}

		candidates = intersectByID(candidates, partResults)
	}

	if !haveBase {
		universe, err := r.universe(ctx, root, depth)
		if err != nil {
			return nil, err
		}

		candidates = universe
	}

	for _, mod := range modifiers {
		var err error

		candidates, err = r.applyModifier(ctx, mod, candidates, root, depth)
		if err != nil {
			return nil, err
		}
	}

	return candidates, nil
}

func (r *Resolver) evalOr(ctx context.Context, sel *selector.Selector, root *element.Element, depth int) ([]*element.Element, error) {
	var union []*element.Element

	seen := make(map[element.ID]bool)

	for _, part := range sel.Parts {
		partResults, err := r.eval(ctx, part, root, depth)
		if err != nil {
			return nil, err
		}

		for _, e := range partResults {
			if seen[e.ID()] {
				continue
			}

			seen[e.ID()] = true
			union = append(union, e)
		}
	}

	return union, nil
}

func (r *Resolver) evalNot(ctx context.Context, sel *selector.Selector, root *element.Element, depth int) ([]*element.Element, error) {
	universe, err := r.universe(ctx, root, depth)
	if err != nil {
		return nil, err
	}

	excluded, err := r.eval(ctx, sel.Inner, root, depth)
	if err != nil {
		return nil, err
	}

	excludeSet := make(map[element.ID]bool, len(excluded))
	for _, e := range excluded {
		excludeSet[e.ID()] = true
	}

	out := make([]*element.Element, 0, len(universe))

	for _, e := range universe {
		if !excludeSet[e.ID()] {
			out = append(out, e)
		}
	}

	return out, nil
}

// evalChain resolves each part against the union of the previous part's
// matches, narrowing the search scope one chain segment at a time.
func (r *Resolver) evalChain(ctx context.Context, sel *selector.Selector, root *element.Element, depth int) ([]*element.Element, error) {
	current := []*element.Element{root}

	for i, part := range sel.Parts {
		if i > 0 && isModifierKind(part.Kind) {
			// A modifier clause (e.g. nth:) chained after a prior segment
			// narrows the accumulated result list directly rather than
			// treating each element as a fresh scope root.
			var err error

			current, err = r.applyModifier(ctx, part, current, root, depth)
			if err != nil {
				return nil, err
			}

			continue
		}

		var next []*element.Element

		seen := make(map[element.ID]bool)

		for _, scopeRoot := range current {
			results, err := r.eval(ctx, part, scopeRoot, depth)
			if err != nil {
				return nil, err
			}

			for _, e := range results {
				if seen[e.ID()] {
					continue
				}

				seen[e.ID()] = true
				next = append(next, e)
			}
		}

		current = next
	}

	return current, nil
}

// applyModifier narrows candidates using a spatial, Has, or Nth clause.
func (r *Resolver) applyModifier(
	ctx context.Context,
	sel *selector.Selector,
	candidates []*element.Element,
	root *element.Element,
	depth int,
) ([]*element.Element, error) {
	switch sel.Kind {
	case selector.KindNth:
		idx := sel.N
		if idx < 0 {
			idx = len(candidates) + idx
		}

		if idx < 0 || idx >= len(candidates) {
			return nil, nil
		}

		return []*element.Element{candidates[idx]}, nil

	case selector.KindHas:
		out := make([]*element.Element, 0, len(candidates))

		for _, c := range candidates {
			inner, err := r.eval(ctx, sel.Inner, c, depth)
			if err != nil {
				return nil, err
			}

			if len(inner) > 0 {
				out = append(out, c)
			}
		}

		return out, nil

	case selector.KindRightOf, selector.KindLeftOf, selector.KindAbove, selector.KindBelow, selector.KindNear:
		anchors, err := r.eval(ctx, sel.Inner, root, depth)
		if err != nil {
			return nil, err
		}

		if len(anchors) == 0 {
			return nil, nil
		}

		anchor := anchors[0]

		return filterSpatial(sel.Kind, anchor, candidates, r.nearPx), nil

	default:
		return candidates, nil
	}
}

func filterSpatial(kind selector.Kind, anchor *element.Element, candidates []*element.Element, nearPx float64) []*element.Element {
	type scored struct {
		elem *element.Element
		dist float64
	}

	var matches []scored

	ab := anchor.Bounds()

	for _, c := range candidates {
		if c.ID() == anchor.ID() {
			continue
		}

		cb := c.Bounds()

		ok := false

		switch kind {
		case selector.KindRightOf:
			ok = cb.Min.X >= ab.Max.X && verticalOverlap(ab, cb) >= 1
		case selector.KindLeftOf:
			ok = cb.Max.X <= ab.Min.X && verticalOverlap(ab, cb) >= 1
		case selector.KindAbove:
			ok = cb.Max.Y <= ab.Min.Y && horizontalOverlap(ab, cb) >= 1
		case selector.KindBelow:
			ok = cb.Min.Y >= ab.Max.Y && horizontalOverlap(ab, cb) >= 1
		case selector.KindNear:
			ok = anchor.DistanceTo(c) <= nearPx
		}

		if ok {
			matches = append(matches, scored{elem: c, dist: anchor.DistanceTo(c)})
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].dist < matches[j].dist })

	out := make([]*element.Element, len(matches))
	for i, m := range matches {
		out[i] = m.elem
	}

	return out
}

// verticalOverlap returns the height in pixels that a and b share on the Y axis.
func verticalOverlap(a, b image.Rectangle) int {
	top := maxInt(a.Min.Y, b.Min.Y)
	bottom := minInt(a.Max.Y, b.Max.Y)

	if bottom <= top {
		return 0
	}

	return bottom - top
}

// horizontalOverlap returns the width in pixels that a and b share on the X axis.
func horizontalOverlap(a, b image.Rectangle) int {
	left := maxInt(a.Min.X, b.Min.X)
	right := minInt(a.Max.X, b.Max.X)

	if right <= left {
		return 0
	}

	return right - left
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}

func intersectByID(a, b []*element.Element) []*element.Element {
	bSet := make(map[element.ID]bool, len(b))
	for _, e := range b {
		bSet[e.ID()] = true
	}

	out := make([]*element.Element, 0, len(a))

	for _, e := range a {
		if bSet[e.ID()] {
			out = append(out, e)
		}
	}

	return out
}

// fatalPlatformError reports whether err should stop the retry jacket
// immediately instead of being retried as a soft not-found miss.
func fatalPlatformError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) {
		return true
	}

	return derrors.IsCode(err, derrors.CodePlatformError) || derrors.IsCode(err, derrors.CodeUnsupportedOperation)
}
