// Package selector parses and renders the selector language used to locate
// elements in the accessibility tree (role/name clauses, spatial relations,
// boolean combinators and descendant chains).
package selector

import "fmt"

// Kind discriminates the node variants of a Selector AST.
type Kind int

// Selector node kinds.
const (
	KindRole Kind = iota
	KindID
	KindNativeID
	KindName
	KindText
	KindClassName
	KindVisible
	KindLocalizedRole
	KindPath
	KindAttributes
	KindNth
	KindHas
	KindRightOf
	KindLeftOf
	KindAbove
	KindBelow
	KindNear
	KindAnd
	KindOr
	KindNot
	KindChain
	KindFilter
	KindInvalid
)

// Selector is an immutable node in a parsed selector AST.
type Selector struct {
	Kind Kind

	// KindRole
	Role string
	Name string // also used by KindName

	// KindID / KindNativeID / KindText / KindClassName / KindPath / KindLocalizedRole
	Text string

	// KindVisible
	Bool bool

	// KindAttributes
	Attributes map[string]string

	// KindNth
	N int

	// Unary wrapper: KindHas, KindRightOf, KindLeftOf, KindAbove, KindBelow, KindNear, KindNot
	Inner *Selector

	// N-ary: KindAnd, KindOr, KindChain
	Parts []*Selector

	// KindFilter
	PredicateID string

	// KindInvalid
	Reason string
}

// role builds a Role{role,name?} node.
func role(r, name string) *Selector { return &Selector{Kind: KindRole, Role: r, Name: name} }

func id(text string) *Selector        { return &Selector{Kind: KindID, Text: text} }
func nativeID(text string) *Selector  { return &Selector{Kind: KindNativeID, Text: text} }
func name(text string) *Selector      { return &Selector{Kind: KindName, Text: text} }
func text(text string) *Selector      { return &Selector{Kind: KindText, Text: text} }
func className(text string) *Selector { return &Selector{Kind: KindClassName, Text: text} }
func visible(b bool) *Selector        { return &Selector{Kind: KindVisible, Bool: b} }
func path(text string) *Selector      { return &Selector{Kind: KindPath, Text: text} }

func attributes(m map[string]string) *Selector {
	return &Selector{Kind: KindAttributes, Attributes: m}
}

func nth(n int) *Selector { return &Selector{Kind: KindNth, N: n} }

func unary(kind Kind, inner *Selector) *Selector {
	return &Selector{Kind: kind, Inner: inner}
}

func invalid(reason string) *Selector {
	return &Selector{Kind: KindInvalid, Reason: reason}
}

// flattenAnd builds an And node, flattening nested And nodes of the same kind.
func flattenAnd(parts []*Selector) *Selector {
	return flattenCombinator(KindAnd, parts)
}

// flattenOr builds an Or node, flattening nested Or nodes of the same kind.
func flattenOr(parts []*Selector) *Selector {
	return flattenCombinator(KindOr, parts)
}

func flattenCombinator(kind Kind, parts []*Selector) *Selector {
	if len(parts) == 1 {
		return parts[0]
	}

	flat := make([]*Selector, 0, len(parts))
	for _, p := range parts {
		if p.Kind == kind {
			flat = append(flat, p.Parts...)

			continue
		}

		flat = append(flat, p)
	}

	return &Selector{Kind: kind, Parts: flat}
}

func chain(parts []*Selector) *Selector {
	if len(parts) == 1 {
		return parts[0]
	}

	return &Selector{Kind: KindChain, Parts: parts}
}

// String renders the selector back into selector-language syntax.
func (s *Selector) String() string {
	if s == nil {
		return ""
	}

	return Render(s)
}

// IsInvalid reports whether the node is an Invalid leaf.
func (s *Selector) IsInvalid() bool { return s != nil && s.Kind == KindInvalid }

func (k Kind) String() string {
	switch k {
	case KindRole:
		return "Role"
	case KindID:
		return "Id"
	case KindNativeID:
		return "NativeId"
	case KindName:
		return "Name"
	case KindText:
		return "Text"
	case KindClassName:
		return "ClassName"
	case KindVisible:
		return "Visible"
	case KindLocalizedRole:
		return "LocalizedRole"
	case KindPath:
		return "Path"
	case KindAttributes:
		return "Attributes"
	case KindNth:
		return "Nth"
	case KindHas:
		return "Has"
	case KindRightOf:
		return "RightOf"
	case KindLeftOf:
		return "LeftOf"
	case KindAbove:
		return "Above"
	case KindBelow:
		return "Below"
	case KindNear:
		return "Near"
	case KindAnd:
		return "And"
	case KindOr:
		return "Or"
	case KindNot:
		return "Not"
	case KindChain:
		return "Chain"
	case KindFilter:
		return "Filter"
	case KindInvalid:
		return "Invalid"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}
