package expr

import "strings"

// Context is the dereferencing scope for {{path}} substitution and
// predicate variable references: a nested map of variables, env, and
// per-step results addressed by dotted path.
type Context struct {
	data map[string]any
}

// NewContext wraps a nested map[string]any (and map[string]any/[]any/scalar
// leaves) as a substitution context.
func NewContext(data map[string]any) *Context {
	if data == nil {
		data = map[string]any{}
	}

	return &Context{data: data}
}

// Get dereferences a dot-separated path against the context, returning the
// raw value (preserving its JSON type) and whether it resolved.
func (c *Context) Get(path string) (any, bool) {
	if c == nil || path == "" {
		return nil, false
	}

	segments := strings.Split(path, ".")

	var cur any = c.data

	for _, seg := range segments {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}

		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}

	return cur, true
}
