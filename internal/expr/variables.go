package expr

import (
	"strconv"
	"strings"

	derrors "github.com/deskautomate/engine/internal/errors"
)

// CoerceType converts value to match a workflow variable schema's declared
// type ("string", "number", "bool"/"boolean"). Strings pass through
// unchanged for type "string"; other types attempt a best-effort parse from
// a string representation.
func CoerceType(value any, typ string) (any, error) {
	switch strings.ToLower(typ) {
	case "", "string":
		return stringify(value), nil
	case "number", "int", "float":
		if f, ok := toFloat(value); ok {
			return f, nil
		}

		return nil, derrors.Newf(derrors.CodeInvalidArgument, "cannot coerce %v to number", value)
	case "bool", "boolean":
		if b, ok := toBool(value); ok {
			return b, nil
		}

		if bv, ok := value.(bool); ok {
			return bv, nil
		}

		return nil, derrors.Newf(derrors.CodeInvalidArgument, "cannot coerce %v to bool", value)
	default:
		return value, nil
	}
}

// ParseNumberString is a convenience wrapper exposed for callers that need
// to validate a numeric string ahead of CoerceType (e.g. CLI input flags).
func ParseNumberString(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, derrors.Wrapf(err, derrors.CodeInvalidArgument, "invalid number %q", s)
	}

	return f, nil
}
