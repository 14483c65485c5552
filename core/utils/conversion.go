package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ToFloat converts numbers, numeric strings and byte slices to float64.
// The second result is false when the value is not numeric.
func ToFloat(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case int16:
		return float64(v), true
	case int8:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint8:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	case []byte:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// ToInt converts various types to int, truncating floats. Non-numeric values yield 0.
func ToInt(val any) int {
	f, _ := ToFloat(val)
	return int(f)
}

// ToIntSlice converts every numeric element, skipping the others.
func ToIntSlice(vals []any) []int {
	out := make([]int, 0, len(vals))
	for _, v := range vals {
		if f, ok := ToFloat(v); ok {
			out = append(out, int(f))
		}
	}
	return out
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToBool converts various types to bool.
// It handles bool, numbers (non-zero is true), and strings ("1", "true").
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case string:
		return v == "1" || strings.EqualFold(v, "true")
	case []byte:
		s := string(v)
		return s == "1" || strings.EqualFold(s, "true")
	default:
		f, ok := ToFloat(v)
		return ok && f != 0
	}
}
