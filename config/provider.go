package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ── Value formats ─────────────────────────────────────────────────────────────

// Conventional format tags understood by the providers in this package.
// The container passes the tag through uninterpreted; only the provider
// gives it meaning. An empty tag returns the stored value as-is.
const (
	FormatString   = "string"
	FormatInt      = "int"
	FormatBool     = "bool"
	FormatFloat    = "float"
	FormatDuration = "duration"
)

// UnknownFormatError means a provider received a format tag it does not
// implement.
type UnknownFormatError struct {
	Format string
}

func (e UnknownFormatError) Error() string {
	return fmt.Sprintf("config: unknown value format %q", e.Format)
}

// ── Coercion ──────────────────────────────────────────────────────────────────

// coerce converts a raw stored value into the representation named by the
// format tag.
func coerce(v any, format string) (any, error) {
	switch format {
	case "":
		return v, nil
	case FormatString:
		return toString(v), nil
	case FormatInt:
		switch x := v.(type) {
		case int:
			return x, nil
		case int64:
			return int(x), nil
		case float64:
			return int(x), nil
		default:
			return strconv.Atoi(strings.TrimSpace(toString(v)))
		}
	case FormatBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
		return strconv.ParseBool(strings.TrimSpace(toString(v)))
	case FormatFloat:
		switch x := v.(type) {
		case float64:
			return x, nil
		case float32:
			return float64(x), nil
		case int:
			return float64(x), nil
		default:
			return strconv.ParseFloat(strings.TrimSpace(toString(v)), 64)
		}
	case FormatDuration:
		if d, ok := v.(time.Duration); ok {
			return d, nil
		}
		return time.ParseDuration(strings.TrimSpace(toString(v)))
	default:
		return nil, UnknownFormatError{Format: format}
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
