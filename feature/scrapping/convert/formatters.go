package convert

import (
	"fmt"
	"unicode/utf8"

	"scrapper/core/source"
	"scrapper/core/utils"
	"scrapper/feature/scrapping/models"
)

// Localized reduces a localized text map to one language.
type Localized struct{}

func (Localized) Format(raw any, in *Input) (any, bool, error) {
	text, ok := localize(raw, in)
	return text, ok, nil
}

// Truncate localizes text and cuts it to Max runes.
type Truncate struct {
	Max int
}

func (f Truncate) Format(raw any, in *Input) (any, bool, error) {
	text, ok := localize(raw, in)
	if !ok {
		return nil, false, nil
	}
	if f.Max > 0 && utf8.RuneCountInString(text) > f.Max {
		runes := []rune(text)
		text = string(runes[:f.Max])
	}
	return text, true, nil
}

// Bool converts 0/1, "true"/"false" and booleans.
type Bool struct{}

func (Bool) Format(raw any, _ *Input) (any, bool, error) {
	return utils.ToBool(raw), true, nil
}

// Count returns the number of elements of an array.
type Count struct{}

func (Count) Format(raw any, _ *Input) (any, bool, error) {
	switch v := raw.(type) {
	case []any:
		return len(v), true, nil
	case map[string]any:
		return len(v), true, nil
	default:
		return nil, false, fmt.Errorf("count: expected an array, got %T", raw)
	}
}

// localize reduces a localized map to one language and records a warning when
// the preferred language was missing.
func localize(raw any, in *Input) (string, bool) {
	text, used, ok := source.LocalizedValue(raw, in.Lang, in.Fallback)
	if ok && used != "" && used != in.Lang {
		in.Warn(in.field, models.WarningLanguageFallback, fmt.Sprintf("%s missing, used %s", in.Lang, used))
	}
	return text, ok
}
