package tools

import (
	"time"

	derrors "github.com/deskautomate/engine/internal/errors"
)

func argString(args map[string]any, key string) (string, bool) {
	v, ok := args[key]
	if !ok {
		return "", false
	}

	s, ok := v.(string)

	return s, ok
}

func requireString(args map[string]any, key string) (string, error) {
	s, ok := argString(args, key)
	if !ok || s == "" {
		return "", derrors.Newf(derrors.CodeInvalidArgument, "missing required argument %q", key)
	}

	return s, nil
}

func argBool(args map[string]any, key string, def bool) bool {
	v, ok := args[key]
	if !ok {
		return def
	}

	b, ok := v.(bool)
	if !ok {
		return def
	}

	return b
}

func argInt(args map[string]any, key string, def int) int {
	v, ok := args[key]
	if !ok {
		return def
	}

	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return def
	}
}

func argStringSlice(args map[string]any, key string) []string {
	v, ok := args[key]
	if !ok {
		return nil
	}

	raw, ok := v.([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(raw))

	for _, item := range raw {
		if s, isStr := item.(string); isStr {
			out = append(out, s)
		}
	}

	return out
}

// argTimeout resolves a step's timeout from either a "timeout_ms" int or a
// "timeout" Go duration string (as accepted by time.ParseDuration, e.g.
// "500ms" or "2s"), falling back to def.
func argTimeout(args map[string]any, def time.Duration) time.Duration {
	if ms, ok := args["timeout_ms"]; ok {
		switch n := ms.(type) {
		case int:
			return time.Duration(n) * time.Millisecond
		case float64:
			return time.Duration(n) * time.Millisecond
		}
	}

	if s, ok := argString(args, "timeout"); ok && s != "" {
		d, err := time.ParseDuration(s)
		if err == nil {
			return d
		}
	}

	return def
}
