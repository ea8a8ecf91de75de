package expr

import "strings"

// EvalPredicate evaluates a predicate-language expression against ctx.
// Evaluation never fails: an unknown identifier, unknown function, or
// malformed expression evaluates to false and appends a warning, instead
// of returning an error.
func EvalPredicate(src string, ctx *Context) (bool, []string) {
	p := &predParser{lex: newPredLexer(src)}
	p.advance()

	val, ok := p.parseExpr(ctx)
	if !ok || p.cur.kind != predEOF {
		return false, append(p.warnings, "malformed predicate expression: "+src)
	}

	return isTruthy(val), p.warnings
}

type predParser struct {
	lex      *predLexer
	cur      predToken
	warnings []string
}

func (p *predParser) advance() { p.cur = p.lex.next() }

func (p *predParser) warn(msg string) {
	p.warnings = append(p.warnings, msg)
}

// parseExpr parses a left-to-right chain of && / || terms at uniform
// precedence, per the predicate language's explicit left-associative,
// non-precedence-distinguishing composition rule.
func (p *predParser) parseExpr(ctx *Context) (any, bool) {
	left, ok := p.parseUnary(ctx)
	if !ok {
		return nil, false
	}

	result := isTruthy(left)

	for p.cur.kind == predAnd || p.cur.kind == predOr {
		op := p.cur.kind
		p.advance()

		right, ok := p.parseUnary(ctx)
		if !ok {
			return nil, false
		}

		rt := isTruthy(right)
		if op == predAnd {
			result = result && rt
		} else {
			result = result || rt
		}
	}

	return result, true
}

func (p *predParser) parseUnary(ctx *Context) (any, bool) {
	if p.cur.kind == predNot {
		p.advance()

		val, ok := p.parseUnary(ctx)
		if !ok {
			return nil, false
		}

		return !isTruthy(val), true
	}

	return p.parseEquality(ctx)
}

func (p *predParser) parseEquality(ctx *Context) (any, bool) {
	left, ok := p.parsePrimary(ctx)
	if !ok {
		return nil, false
	}

	if p.cur.kind != predEq && p.cur.kind != predNeq {
		return left, true
	}

	op := p.cur.kind
	p.advance()

	right, ok := p.parsePrimary(ctx)
	if !ok {
		return nil, false
	}

	eq := coerceEqual(left, right)
	if op == predNeq {
		return !eq, true
	}

	return eq, true
}

func (p *predParser) parsePrimary(ctx *Context) (any, bool) {
	switch p.cur.kind {
	case predTrue:
		p.advance()

		return true, true
	case predFalse:
		p.advance()

		return false, true
	case predString:
		v := p.cur.text
		p.advance()

		return v, true
	case predLParen:
		p.advance()

		val, ok := p.parseExpr(ctx)
		if !ok {
			return nil, false
		}

		if p.cur.kind != predRParen {
			p.warn("expected closing parenthesis")

			return nil, false
		}

		p.advance()

		return val, true
	case predIdent:
		return p.parseIdentOrCall(ctx)
	default:
		p.warn("unexpected token in predicate")

		return nil, false
	}
}

func (p *predParser) parseIdentOrCall(ctx *Context) (any, bool) {
	name := p.cur.text
	p.advance()

	if p.cur.kind == predLParen {
		return p.parseCall(name, ctx)
	}

	val, ok := ctx.Get(name)
	if !ok {
		p.warn("unknown identifier: " + name)

		return nil, false
	}

	return val, true
}

func (p *predParser) parseCall(name string, ctx *Context) (any, bool) {
	p.advance() // consume '('

	var args []any

	for p.cur.kind != predRParen {
		arg, ok := p.parseCallArg(ctx)
		if !ok {
			return nil, false
		}

		args = append(args, arg)

		if p.cur.kind == predComma {
			p.advance()

			continue
		}

		break
	}

	if p.cur.kind != predRParen {
		p.warn("expected closing parenthesis in call to " + name)

		return nil, false
	}

	p.advance()

	return p.callFunction(name, args)
}

func (p *predParser) parseCallArg(ctx *Context) (any, bool) {
	switch p.cur.kind {
	case predString:
		v := p.cur.text
		p.advance()

		return v, true
	case predTrue:
		p.advance()

		return true, true
	case predFalse:
		p.advance()

		return false, true
	case predIdent:
		name := p.cur.text
		p.advance()
		val, ok := ctx.Get(name)

		if !ok {
			p.warn("unknown identifier: " + name)

			return nil, false
		}

		return val, true
	default:
		p.warn("unexpected call argument")

		return nil, false
	}
}

func (p *predParser) callFunction(name string, args []any) (any, bool) {
	switch strings.ToLower(name) {
	case "always":
		return true, true
	case "contains":
		if len(args) != 2 {
			p.warn("contains() requires 2 arguments")

			return nil, false
		}

		return containsValue(args[0], args[1]), true
	case "startswith":
		if len(args) != 2 {
			p.warn("startsWith() requires 2 arguments")

			return nil, false
		}

		return strings.HasPrefix(stringify(args[0]), stringify(args[1])), true
	case "endswith":
		if len(args) != 2 {
			p.warn("endsWith() requires 2 arguments")

			return nil, false
		}

		return strings.HasSuffix(stringify(args[0]), stringify(args[1])), true
	default:
		p.warn("unknown function: " + name)

		return nil, false
	}
}

func containsValue(coll, needle any) bool {
	switch c := coll.(type) {
	case []any:
		needleStr := stringify(needle)
		for _, v := range c {
			if stringify(v) == needleStr {
				return true
			}
		}

		return false
	case string:
		return strings.Contains(c, stringify(needle))
	default:
		return false
	}
}
