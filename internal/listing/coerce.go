package listing

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"leadpulse/internal/harvest"
)

// Null-safe coercion for raw provider rows. Listing sources disagree on field
// types (JSON numbers, quoted numbers, nulls, absent keys), so every accessor
// nulls through on a mismatch instead of returning an error.

// Float reads a numeric field, or nil when absent or not coercible.
func Float(row harvest.Row, key string) *float64 {
	v, ok := row[key]
	if !ok {
		return nil
	}
	f, ok := asFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Int reads an integer field, or nil when absent or not coercible.
// Fractional values truncate toward zero.
func Int(row harvest.Row, key string) *int {
	f := Float(row, key)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

// NonNegativeInt is Int restricted to values >= 0; negatives null through.
func NonNegativeInt(row harvest.Row, key string) *int {
	n := Int(row, key)
	if n == nil || *n < 0 {
		return nil
	}
	return n
}

// String reads a text field, or nil when absent, null or empty.
func String(row harvest.Row, key string) *string {
	v, ok := row[key]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Strings reads a string-set field. Absent, null or malformed values resolve
// to an empty slice, never nil, so tag sets are always safe to range over.
func Strings(row harvest.Row, key string) []string {
	v, ok := row[key]
	if !ok || v == nil {
		return []string{}
	}
	switch vv := v.(type) {
	case []string:
		out := make([]string, 0, len(vv))
		for _, s := range vv {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			if s, ok := e.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	default:
		return []string{}
	}
}

// asFloat converts the JSON-decoded value types a provider row can carry.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
