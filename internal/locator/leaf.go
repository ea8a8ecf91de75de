package locator

import (
	"strings"

	"github.com/deskautomate/engine/internal/element"
	"github.com/deskautomate/engine/internal/selector"
)

// filterByLeaf filters a candidate set by a single non-combinator selector clause.
func filterByLeaf(sel *selector.Selector, candidates []*element.Element) []*element.Element {
	out := make([]*element.Element, 0, len(candidates))

	for _, e := range candidates {
		if matchLeaf(sel, e) {
			out = append(out, e)
		}
	}

	return out
}

func matchLeaf(sel *selector.Selector, e *element.Element) bool {
	switch sel.Kind {
	case selector.KindRole:
		if string(e.Role()) != strings.ToLower(sel.Role) {
			return false
		}

		return sel.Name == "" || e.Name() == sel.Name
	case selector.KindID:
		return string(e.ID()) == sel.Text
	case selector.KindNativeID:
		v, ok := e.Property("native_id")

		return ok && v == sel.Text
	case selector.KindName:
		return e.Name() == sel.Text
	case selector.KindText:
		return strings.Contains(e.Value(), sel.Text) || strings.Contains(e.Name(), sel.Text)
	case selector.KindClassName:
		return e.ClassName() == sel.Text
	case selector.KindLocalizedRole:
		v, ok := e.Property("localized_role")

		return ok && v == sel.Text
	case selector.KindVisible:
		return e.IsVisible() == sel.Bool
	case selector.KindPath:
		return e.Name() == sel.Text || string(e.ID()) == sel.Text
	case selector.KindAttributes:
		for k, v := range sel.Attributes {
			got, ok := e.Property(k)
			if !ok {
				return false
			}

			if got != v {
				if s, isStr := got.(string); !isStr || s != v {
					return false
				}
			}
		}

		return true
	case selector.KindFilter:
		// Predicate-backed filters are resolved by the expr package; the
		// locator itself has no predicate registry and treats an
		// unresolved Filter clause as non-matching.
		return false
	case selector.KindInvalid:
		return false
	default:
		return false
	}
}
