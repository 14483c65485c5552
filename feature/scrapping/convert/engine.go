package convert

import (
	"fmt"
	"math"
	"sort"

	"scrapper/core/retry"
	"scrapper/core/source"
	"scrapper/core/utils"
	"scrapper/feature/scrapping/limits"
	"scrapper/feature/scrapping/models"
)

// Option customizes an Engine.
type Option func(*Engine)

// WithRuleset replaces the ruleset of its kind.
func WithRuleset(rs Ruleset) Option {
	return func(e *Engine) {
		e.rulesets[rs.Kind] = rs
	}
}

// WithGlobal replaces the rules applied to every kind.
func WithGlobal(rules ...Rule) Option {
	return func(e *Engine) {
		e.global = rules
	}
}

// Engine converts raw records into target records. It holds no mutable
// state and may be shared between goroutines.
type Engine struct {
	limits   limits.Source
	lang     string
	fallback string
	global   []Rule
	rulesets map[models.EntityKind]Ruleset
}

// NewEngine creates an engine with the default rulesets.
func NewEngine(src limits.Source, lang, fallback string, opts ...Option) *Engine {
	if src == nil {
		src = limits.Defaults()
	}
	e := &Engine{
		limits:   src,
		lang:     lang,
		fallback: fallback,
		global:   GlobalPassThrough,
		rulesets: DefaultRulesets(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ruleset returns the rules of a kind with the global rules merged in.
func (e *Engine) Ruleset(kind models.EntityKind) (Ruleset, bool) {
	rs, ok := e.rulesets[kind]
	if !ok {
		return Ruleset{}, false
	}
	rs.Fields = e.merge(rs.Fields)
	return rs, true
}

// merge prepends the global rules not redefined by the kind.
func (e *Engine) merge(fields []Rule) []Rule {
	own := make(map[string]bool, len(fields))
	for _, r := range fields {
		own[r.Field] = true
	}
	out := make([]Rule, 0, len(e.global)+len(fields))
	for _, r := range e.global {
		if !own[r.Field] {
			out = append(out, r)
		}
	}
	return append(out, fields...)
}

// Convert maps raw to the target model of category. kind is the requested
// kind; category is the classification result and equals kind for non
// polymorphic kinds. Warnings are returned even when conversion fails.
func (e *Engine) Convert(raw source.RawRecord, kind, category models.EntityKind) (*models.ConvertedRecord, []models.Warning, error) {
	if category == "" {
		category = kind
	}
	rs, ok := e.Ruleset(category)
	if !ok {
		return nil, nil, &Error{
			Condition: retry.ConditionInvalidFormat,
			Kind:      category,
			Err:       fmt.Errorf("no ruleset for kind %q", category),
		}
	}

	in := &Input{
		Raw:      raw,
		Kind:     category,
		Lang:     e.lang,
		Fallback: e.fallback,
		Fields:   make(map[string]any, len(rs.Fields)),
	}

	for _, rule := range rs.Fields {
		in.field = rule.Field
		v, present, err := e.apply(rule, in)
		if err != nil {
			return nil, in.warnings, &Error{
				Condition: retry.ConditionInvalidFormat,
				Kind:      category,
				Field:     rule.Field,
				Err:       err,
			}
		}
		if !present && rule.Default != nil {
			if v, present = rule.Default.Value(in); present {
				in.Warn(rule.Field, models.WarningDefaulted, fmt.Sprintf("%s absent, defaulted to %v", rule.Path, v))
			}
		}
		if !present {
			if rule.Required {
				return nil, in.warnings, &Error{
					Condition: retry.ConditionMissingRequired,
					Kind:      category,
					Field:     rule.Field,
					Err:       fmt.Errorf("%s is absent and has no default", rule.Path),
				}
			}
			continue
		}
		in.Fields[rule.Field] = e.clamp(rule.Field, v, in)
	}

	rec := &models.ConvertedRecord{
		Kind:       kind,
		Category:   category,
		ExternalID: raw.ID,
		Fields:     in.Fields,
		Relations:  relations(raw, category, rs.Relations),
	}
	if category.Polymorphic() {
		if typeID, ok := raw.Number("typeId"); ok {
			rec.SourceTypeID = int(typeID)
		}
	}
	return rec, in.warnings, nil
}

func (e *Engine) apply(rule Rule, in *Input) (any, bool, error) {
	raw, ok := in.Raw.Value(rule.Path)
	if !ok || raw == nil {
		return nil, false, nil
	}

	switch rule.Kind {
	case PassThrough:
		if m, isMap := raw.(map[string]any); isMap {
			text, ok := localize(m, in)
			return text, ok, nil
		}
		return raw, true, nil
	case FormulaRule:
		x, ok := source.AsNumber(raw)
		if !ok {
			return nil, false, fmt.Errorf("%s is not numeric: %v", rule.Path, raw)
		}
		out, err := rule.Formula.Eval(x, in)
		if err != nil {
			return nil, false, err
		}
		return out, true, nil
	case FormatterRule:
		return rule.Formatter.Format(raw, in)
	default:
		return nil, false, fmt.Errorf("unknown rule kind %s", rule.Kind)
	}
}

// clamp forces numeric values into their range and stores integral values
// as int.
func (e *Engine) clamp(field string, v any, in *Input) any {
	n, ok := numeric(v)
	if !ok {
		return v
	}
	if min, max, found := e.limits.LimitsFor(field, in.Kind); found {
		if clamped, changed := limits.Clamp(n, min, max); changed {
			in.Warn(field, models.WarningClamped, fmt.Sprintf("%v clamped to [%v, %v]", n, min, max))
			n = clamped
		}
	}
	if n == math.Trunc(n) && math.Abs(n) < math.MaxInt32 {
		return int(n)
	}
	return n
}

// numeric accepts numbers only. Numeric strings stay text.
func numeric(v any) (float64, bool) {
	switch v.(type) {
	case string, bool, nil:
		return 0, false
	}
	return utils.ToFloat(v)
}

func relations(raw source.RawRecord, kind models.EntityKind, rules []RelationRule) []models.RelationRef {
	var out []models.RelationRef
	for _, rule := range rules {
		seen := make(map[int]bool)
		var ids []int
		for _, id := range utils.ToIntSlice(raw.Values(rule.Path)) {
			if id <= 0 || seen[id] {
				continue
			}
			if rule.Kind == kind && id == raw.ID {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
		if len(ids) == 0 {
			continue
		}
		sort.Ints(ids)
		out = append(out, models.RelationRef{Kind: rule.Kind, ExternalIDs: ids})
	}
	return out
}
