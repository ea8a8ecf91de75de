package selector

import "strings"

// Parse parses a selector-language string into a Selector AST. Malformed
// clause shapes never fail the parse; they become an Invalid(reason) leaf
// which the resolver treats as an empty match.
func Parse(src string) *Selector {
	p := &parser{lex: newLexer(src)}
	p.advance()

	sel := p.parseChain()

	if p.cur.kind != tokEOF {
		return invalid("trailing input after selector: " + p.cur.text)
	}

	return sel
}

type parser struct {
	lex *lexer
	cur token
}

func (p *parser) advance() { p.cur = p.lex.next() }

func (p *parser) parseChain() *Selector {
	parts := []*Selector{p.parseOr()}

	for p.cur.kind == tokChain {
		p.advance()
		parts = append(parts, p.parseOr())
	}

	return chain(parts)
}

func (p *parser) parseOr() *Selector {
	parts := []*Selector{p.parseAnd()}

	for p.cur.kind == tokOr || p.cur.kind == tokComma {
		p.advance()
		parts = append(parts, p.parseAnd())
	}

	return flattenOr(parts)
}

func (p *parser) parseAnd() *Selector {
	parts := []*Selector{p.parseNot()}

	for p.cur.kind == tokAnd {
		p.advance()
		parts = append(parts, p.parseNot())
	}

	return flattenAnd(parts)
}

func (p *parser) parseNot() *Selector {
	if p.cur.kind == tokNot {
		p.advance()

		return unary(KindNot, p.parseNot())
	}

	return p.parseAtom()
}

func (p *parser) parseAtom() *Selector {
	switch p.cur.kind {
	case tokLParen:
		p.advance()
		inner := p.parseChain()

		if p.cur.kind != tokRParen {
			return invalid("missing closing parenthesis")
		}

		p.advance()

		return inner
	case tokHash:
		p.advance()

		return p.parseHashID()
	default:
		return p.parseClause()
	}
}

func (p *parser) parseHashID() *Selector {
	switch p.cur.kind {
	case tokIdent, tokString:
		v := p.cur.text
		p.advance()

		return id(v)
	default:
		return invalid("expected identifier after #")
	}
}

// keyword prefixes recognized before ":" in a clause.
const (
	kwRole          = "role"
	kwName          = "name"
	kwID            = "id"
	kwNativeID      = "nativeid"
	kwText          = "text"
	kwClassName     = "classname"
	kwVisible       = "visible"
	kwRightOf       = "rightof"
	kwLeftOf        = "leftof"
	kwAbove         = "above"
	kwBelow         = "below"
	kwNear          = "near"
	kwHas           = "has"
	kwNth           = "nth"
	kwLocalizedRole = "localizedrole"
)

func (p *parser) parseClause() *Selector {
	if p.cur.kind != tokIdent {
		return invalid("unexpected token")
	}

	head := strings.ToLower(p.cur.text)

	// "nth=" INT shorthand (no colon).
	if head == kwNth {
		save, savePos := *p, p.lex.pos
		p.advance()

		if p.cur.kind == tokEquals {
			p.advance()

			if p.cur.kind == tokInt {
				n := p.cur.num
				p.advance()

				return nth(n)
			}

			return invalid("expected integer after nth=")
		}

		*p = save
		p.lex.pos = savePos
	}

	// Not a recognized keyword followed by ':' -> treat as a bare path/attribute.
	if !p.isKeywordClause(head) {
		return p.parsePathOrAttributes()
	}

	p.advance() // consume keyword ident

	if p.cur.kind != tokColon {
		return invalid("expected ':' after " + head)
	}

	p.advance() // consume ':'

	switch head {
	case kwRole:
		return p.parseRoleClause()
	case kwName:
		return p.parseStringClause(name)
	case kwID:
		return p.parseStringClause(id)
	case kwNativeID:
		return p.parseStringClause(nativeID)
	case kwText:
		return p.parseStringClause(text)
	case kwClassName:
		return p.parseStringClause(className)
	case kwLocalizedRole:
		return p.parseStringClause(func(v string) *Selector {
			return &Selector{Kind: KindLocalizedRole, Text: v}
		})
	case kwVisible:
		return p.parseVisible()
	case kwRightOf:
		return unary(KindRightOf, p.parseOr())
	case kwLeftOf:
		return unary(KindLeftOf, p.parseOr())
	case kwAbove:
		return unary(KindAbove, p.parseOr())
	case kwBelow:
		return unary(KindBelow, p.parseOr())
	case kwNear:
		return unary(KindNear, p.parseOr())
	case kwHas:
		return unary(KindHas, p.parseOr())
	case kwNth:
		return p.parseNthColon()
	default:
		return invalid("unrecognized clause: " + head)
	}
}

func (p *parser) isKeywordClause(head string) bool {
	switch head {
	case kwRole, kwName, kwID, kwNativeID, kwText, kwClassName, kwVisible,
		kwRightOf, kwLeftOf, kwAbove, kwBelow, kwNear, kwHas, kwNth, kwLocalizedRole:
		return true
	default:
		return false
	}
}

func (p *parser) parseStringClause(build func(string) *Selector) *Selector {
	switch p.cur.kind {
	case tokString, tokIdent:
		v := p.cur.text
		p.advance()

		return build(v)
	default:
		return invalid("expected string value")
	}
}

// parseRoleClause handles `role:IDENT` with an optional legacy
// `role:IDENT|name:STR` (or bare `role:IDENT|STR`) pipe shorthand.
func (p *parser) parseRoleClause() *Selector {
	if p.cur.kind != tokIdent && p.cur.kind != tokString {
		return invalid("expected role identifier")
	}

	r := p.cur.text
	p.advance()

	if p.cur.kind != tokPipe {
		return role(r, "")
	}

	p.advance() // consume '|'

	if p.cur.kind == tokIdent && strings.EqualFold(p.cur.text, kwName) {
		p.advance()

		if p.cur.kind == tokColon {
			p.advance()
		}
	}

	if p.cur.kind != tokString && p.cur.kind != tokIdent {
		return invalid("expected name after role pipe")
	}

	n := p.cur.text
	p.advance()

	return role(r, n)
}

func (p *parser) parseVisible() *Selector {
	if p.cur.kind != tokIdent {
		return invalid("expected true/false after visible:")
	}

	switch strings.ToLower(p.cur.text) {
	case "true":
		p.advance()

		return visible(true)
	case "false":
		p.advance()

		return visible(false)
	default:
		return invalid("expected true/false after visible:")
	}
}

func (p *parser) parseNthColon() *Selector {
	if p.cur.kind != tokInt {
		return invalid("expected integer after nth:")
	}

	n := p.cur.num
	p.advance()

	return nth(n)
}

// parsePathOrAttributes handles bare identifiers: either a single dotted
// path token, or one or more space-separated `key=value` attribute pairs.
func (p *parser) parsePathOrAttributes() *Selector {
	first := p.cur.text
	p.advance()

	if p.cur.kind == tokEquals {
		p.advance()

		val := p.consumeAttrValue()
		attrs := map[string]string{first: val}

		for p.cur.kind == tokIdent {
			save := *p
			key := p.cur.text
			p.advance()

			if p.cur.kind != tokEquals {
				*p = save

				break
			}

			p.advance()
			attrs[key] = p.consumeAttrValue()
		}

		return attributes(attrs)
	}

	return path(first)
}

func (p *parser) consumeAttrValue() string {
	switch p.cur.kind {
	case tokString, tokIdent:
		v := p.cur.text
		p.advance()

		return v
	case tokInt:
		v := p.cur.text
		p.advance()

		return v
	default:
		return ""
	}
}
