package predictor

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Result is an opaque JSON object returned by a prediction service.
type Result map[string]any

// ErrorMessage reports whether the result carries an "error" key and its
// text.  The key's presence is what marks a rejection; a null value yields
// ("", true).
func (r Result) ErrorMessage() (string, bool) {
	v, ok := r["error"]
	if !ok {
		return "", false
	}
	if v == nil {
		return "", true
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

// String returns r[key] as a string, or def when missing or not a string.
func (r Result) String(key, def string) string {
	if s, ok := r[key].(string); ok && s != "" {
		return s
	}
	return def
}

// StringPtr returns r[key] as a string pointer, nil when missing.
func (r Result) StringPtr(key string) *string {
	switch v := r[key].(type) {
	case string:
		return &v
	case nil:
		return nil
	default:
		s := fmt.Sprint(v)
		return &s
	}
}

// Float returns r[key] as a float64.  Numeric strings are accepted.
func (r Result) Float(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	return 0, false
}

// FloatPtr is Float returning nil when the key is absent or not numeric.
func (r Result) FloatPtr(key string) *float64 {
	if f, ok := r.Float(key); ok {
		return &f
	}
	return nil
}

// IntPtr is FloatPtr truncated to an int.
func (r Result) IntPtr(key string) *int {
	if f, ok := r.Float(key); ok {
		n := int(f)
		return &n
	}
	return nil
}

// Object returns r[key] as a nested Result, or an empty Result.
func (r Result) Object(key string) Result {
	if m, ok := r[key].(map[string]any); ok {
		return Result(m)
	}
	return Result{}
}
