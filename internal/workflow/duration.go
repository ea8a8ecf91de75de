package workflow

import (
	"strconv"
	"strings"
	"time"

	derrors "github.com/deskautomate/engine/internal/errors"
)

// ParseDuration parses a step `delay` expression (§6.6): bare digits are
// milliseconds; suffixes "ms", "s", "m"/"min", "h" scale accordingly.
// Fractional values and mixed case are accepted.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, nil
	}

	unit := time.Millisecond
	numPart := s

	switch {
	case strings.HasSuffix(s, "ms"):
		numPart = strings.TrimSuffix(s, "ms")
	case strings.HasSuffix(s, "min"):
		numPart = strings.TrimSuffix(s, "min")
		unit = time.Minute
	case strings.HasSuffix(s, "h"):
		numPart = strings.TrimSuffix(s, "h")
		unit = time.Hour
	case strings.HasSuffix(s, "m"):
		numPart = strings.TrimSuffix(s, "m")
		unit = time.Minute
	case strings.HasSuffix(s, "s"):
		numPart = strings.TrimSuffix(s, "s")
		unit = time.Second
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(numPart), 64)
	if err != nil {
		return 0, derrors.Wrapf(err, derrors.CodeInvalidArgument, "invalid duration expression %q", s)
	}

	return time.Duration(f * float64(unit)), nil
}
