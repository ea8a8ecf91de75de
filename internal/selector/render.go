package selector

import (
	"fmt"
	"strconv"
	"strings"
)

// Render renders a Selector AST back into selector-language syntax. It is
// the inverse of Parse, used by the parse round-trip property: parsing the
// rendered text of a parsed selector must reproduce an AST that is
// structurally equal modulo associative-combinator flattening.
func Render(s *Selector) string {
	if s == nil {
		return ""
	}

	switch s.Kind {
	case KindRole:
		if s.Name != "" {
			return fmt.Sprintf("role:%s|name:%s", s.Role, quote(s.Name))
		}

		return "role:" + s.Role
	case KindID:
		return "id:" + quote(s.Text)
	case KindNativeID:
		return "nativeid:" + quote(s.Text)
	case KindName:
		return "name:" + quote(s.Text)
	case KindText:
		return "text:" + quote(s.Text)
	case KindClassName:
		return "classname:" + quote(s.Text)
	case KindLocalizedRole:
		return "localizedrole:" + quote(s.Text)
	case KindVisible:
		return "visible:" + strconv.FormatBool(s.Bool)
	case KindPath:
		return s.Text
	case KindAttributes:
		return renderAttributes(s.Attributes)
	case KindNth:
		return "nth:" + strconv.Itoa(s.N)
	case KindHas:
		return "has:" + Render(s.Inner)
	case KindRightOf:
		return "rightof:" + Render(s.Inner)
	case KindLeftOf:
		return "leftof:" + Render(s.Inner)
	case KindAbove:
		return "above:" + Render(s.Inner)
	case KindBelow:
		return "below:" + Render(s.Inner)
	case KindNear:
		return "near:" + Render(s.Inner)
	case KindNot:
		return "!" + Render(s.Inner)
	case KindAnd:
		return renderCombinator(s.Parts, " && ")
	case KindOr:
		return renderCombinator(s.Parts, " || ")
	case KindChain:
		return renderCombinator(s.Parts, " >> ")
	case KindFilter:
		return "filter:" + s.PredicateID
	case KindInvalid:
		return "invalid(" + s.Reason + ")"
	default:
		return ""
	}
}

func renderCombinator(parts []*Selector, sep string) string {
	rendered := make([]string, len(parts))
	for i, p := range parts {
		rendered[i] = maybeParen(p)
	}

	return strings.Join(rendered, sep)
}

// maybeParen wraps a sub-selector in parentheses when it is itself a
// combinator, so that re-parsing the rendered text preserves grouping.
func maybeParen(s *Selector) string {
	switch s.Kind {
	case KindAnd, KindOr, KindChain:
		return "(" + Render(s) + ")"
	default:
		return Render(s)
	}
}

func renderAttributes(attrs map[string]string) string {
	parts := make([]string, 0, len(attrs))
	for k, v := range attrs {
		parts = append(parts, k+"="+v)
	}

	return strings.Join(parts, " ")
}

func quote(s string) string {
	if !strings.ContainsAny(s, " '\"") {
		return s
	}

	return "'" + strings.ReplaceAll(s, "'", "\\'") + "'"
}
