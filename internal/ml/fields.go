package ml

import (
	"strconv"
	"strings"
)

// Fields is the raw field bag handed to the encoder and the explanation
// rules. It tolerates absent or malformed values by design: callers read
// through Num/Str which degrade to a default instead of failing.
type Fields map[string]any

// Num returns the field as a float64, or def when absent or unparseable.
func (f Fields) Num(key string, def float64) float64 {
	v, ok := f[key]
	if !ok || v == nil {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return parsed
		}
		return def
	default:
		return def
	}
}

// Str returns the field as a trimmed string, or def when absent or empty.
func (f Fields) Str(key string, def string) string {
	v, ok := f[key]
	if !ok || v == nil {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}
