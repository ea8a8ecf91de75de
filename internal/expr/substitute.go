package expr

import "strings"

// Substitute walks a JSON-like value (string, bool, float64, nil,
// map[string]any, []any) replacing {{path}} and ${{ expr }} tokens found in
// string leaves. A string that is exactly one {{path}} token preserves the
// referenced value's original type; any other shape is spliced as a string.
// Substitution never fails; unresolved references are left as warnings.
func Substitute(v any, ctx *Context) (any, []string) {
	switch t := v.(type) {
	case string:
		return substituteString(t, ctx)
	case map[string]any:
		out := make(map[string]any, len(t))

		var warnings []string

		for k, val := range t {
			newVal, w := Substitute(val, ctx)
			out[k] = newVal
			warnings = append(warnings, w...)
		}

		return out, warnings
	case []any:
		out := make([]any, len(t))

		var warnings []string

		for i, val := range t {
			newVal, w := Substitute(val, ctx)
			out[i] = newVal
			warnings = append(warnings, w...)
		}

		return out, warnings
	default:
		return v, nil
	}
}

func substituteString(s string, ctx *Context) (any, []string) {
	if path, ok := wholeToken(s, "{{", "}}"); ok {
		val, found := ctx.Get(path)
		if !found {
			return s, []string{"unresolved substitution path: " + path}
		}

		return val, nil
	}

	if exprSrc, ok := wholeToken(s, "${{", "}}"); ok {
		result, warnings := EvalPredicate(exprSrc, ctx)

		return result, warnings
	}

	return spliceTokens(s, ctx)
}

// wholeToken reports whether s is exactly one open/close-delimited token
// spanning the entire string, returning the trimmed inner content.
func wholeToken(s, open, closeTok string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, open) || !strings.HasSuffix(trimmed, closeTok) {
		return "", false
	}

	inner := trimmed[len(open) : len(trimmed)-len(closeTok)]
	if strings.Contains(inner, open) {
		return "", false
	}

	return strings.TrimSpace(inner), true
}

// spliceTokens replaces every {{path}} and ${{ expr }} occurrence inside s
// with its stringified value, leaving the surrounding text intact.
func spliceTokens(s string, ctx *Context) (string, []string) {
	var (
		b        strings.Builder
		warnings []string
	)

	i := 0

	for i < len(s) {
		if strings.HasPrefix(s[i:], "${{") {
			end := strings.Index(s[i+3:], "}}")
			if end < 0 {
				b.WriteString(s[i:])

				break
			}

			exprSrc := s[i+3 : i+3+end]
			result, w := EvalPredicate(exprSrc, ctx)
			warnings = append(warnings, w...)
			b.WriteString(stringify(result))
			i += 3 + end + 2

			continue
		}

		if strings.HasPrefix(s[i:], "{{") {
			end := strings.Index(s[i+2:], "}}")
			if end < 0 {
				b.WriteString(s[i:])

				break
			}

			path := strings.TrimSpace(s[i+2 : i+2+end])

			val, ok := ctx.Get(path)
			if !ok {
				warnings = append(warnings, "unresolved substitution path: "+path)
				b.WriteString("")
			} else {
				b.WriteString(stringify(val))
			}

			i += 2 + end + 2

			continue
		}

		b.WriteByte(s[i])
		i++
	}

	return b.String(), warnings
}
