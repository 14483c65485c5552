package source

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// RawRecord is one record as the external API returns it.
type RawRecord struct {
	// ID is the numeric identifier in the source.
	ID int
	// Fields holds the decoded JSON object.
	Fields map[string]any
}

// UnmarshalJSON decodes the object and extracts its id.
func (r *RawRecord) UnmarshalJSON(data []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	r.Fields = fields
	if id, ok := AsNumber(fields["id"]); ok {
		r.ID = int(id)
	}
	return nil
}

// MarshalJSON encodes the original object.
func (r RawRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Fields)
}

// Value resolves a dot path. Numeric segments index arrays: "grades.0.level".
func (r RawRecord) Value(path string) (any, bool) {
	var cur any = r.Fields
	for _, seg := range strings.Split(path, ".") {
		next, ok := step(cur, seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// Values resolves a path where "*" expands every array element or map value.
func (r RawRecord) Values(path string) []any {
	return expand(r.Fields, strings.Split(path, "."))
}

// Number resolves a path and converts it to a number.
func (r RawRecord) Number(path string) (float64, bool) {
	v, ok := r.Value(path)
	if !ok {
		return 0, false
	}
	return AsNumber(v)
}

// Localized resolves a text field, see LocalizedValue.
func (r RawRecord) Localized(path, lang string, fallbacks ...string) (string, string, bool) {
	v, ok := r.Value(path)
	if !ok {
		return "", "", false
	}
	return LocalizedValue(v, lang, fallbacks...)
}

// LocalizedValue reduces a text value to one language. Plain strings are
// returned as-is; language maps are read in order lang, fallbacks, then the
// first key alphabetically. It returns the language actually used ("" for
// plain strings).
func LocalizedValue(v any, lang string, fallbacks ...string) (string, string, bool) {
	switch t := v.(type) {
	case nil:
		return "", "", false
	case string:
		return t, "", true
	case map[string]any:
		for _, l := range append([]string{lang}, fallbacks...) {
			if s, ok := t[l].(string); ok && s != "" {
				return s, l, true
			}
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			if s, ok := t[k].(string); ok && s != "" {
				keys = append(keys, k)
			}
		}
		if len(keys) == 0 {
			return "", "", false
		}
		sort.Strings(keys)
		return t[keys[0]].(string), keys[0], true
	default:
		return fmt.Sprintf("%v", t), "", true
	}
}

// AsNumber converts JSON scalars to float64. Numeric strings are accepted.
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func step(cur any, seg string) (any, bool) {
	switch node := cur.(type) {
	case map[string]any:
		v, ok := node[seg]
		return v, ok
	case []any:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= len(node) {
			return nil, false
		}
		return node[i], true
	default:
		return nil, false
	}
}

func expand(cur any, segs []string) []any {
	if len(segs) == 0 {
		if cur == nil {
			return nil
		}
		return []any{cur}
	}
	if segs[0] != "*" {
		next, ok := step(cur, segs[0])
		if !ok {
			return nil
		}
		return expand(next, segs[1:])
	}

	var out []any
	switch node := cur.(type) {
	case []any:
		for _, el := range node {
			out = append(out, expand(el, segs[1:])...)
		}
	case map[string]any:
		keys := make([]string, 0, len(node))
		for k := range node {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, expand(node[k], segs[1:])...)
		}
	}
	return out
}
