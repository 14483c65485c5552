package convert

import (
	"scrapper/core/source"
	"scrapper/feature/scrapping/models"
)

// RuleKind is the kind of transformation of a Rule.
type RuleKind int

const (
	PassThrough RuleKind = iota
	FormulaRule
	FormatterRule
)

func (k RuleKind) String() string {
	switch k {
	case PassThrough:
		return "pass_through"
	case FormulaRule:
		return "formula"
	case FormatterRule:
		return "formatter"
	default:
		return "unknown"
	}
}

// Rule produces one target field.
type Rule struct {
	// Field is the target column.
	Field string
	// Path is the raw dot path read by the rule.
	Path string
	// Kind selects which of Formula or Formatter applies.
	Kind RuleKind
	// Formula is set for FormulaRule.
	Formula Formula
	// Formatter is set for FormatterRule.
	Formatter Formatter
	// Required fails conversion when the field is absent and has no Default.
	Required bool
	// Default fills an absent field.
	Default Default
}

// Formula computes a number from the raw input x.
type Formula interface {
	Eval(x float64, in *Input) (float64, error)
}

// Formatter transforms a raw value. It returns false when the value is absent.
type Formatter interface {
	Format(raw any, in *Input) (any, bool, error)
}

// Default supplies a value for an absent field.
type Default interface {
	Value(in *Input) (any, bool)
}

// RelationRule collects related external ids.
type RelationRule struct {
	// Kind is the kind the related ids are imported as.
	Kind models.EntityKind
	// Path may contain "*" to expand arrays: "drops.*.objectId".
	Path string
}

// Ruleset groups the rules of one kind.
type Ruleset struct {
	Kind      models.EntityKind
	Fields    []Rule
	Relations []RelationRule
}

// Input is the state of one conversion.
type Input struct {
	Raw      source.RawRecord
	Kind     models.EntityKind
	Lang     string
	Fallback string
	// Fields holds the fields converted so far.
	Fields   map[string]any
	field    string
	warnings []models.Warning
}

// Warn records a non fatal correction.
func (in *Input) Warn(field string, code models.WarningCode, message string) {
	in.warnings = append(in.warnings, models.Warning{Field: field, Code: code, Message: message})
}

// Number returns an already converted numeric field.
func (in *Input) Number(field string) (float64, bool) {
	v, ok := in.Fields[field]
	if !ok {
		return 0, false
	}
	return source.AsNumber(v)
}

// Constructors keep rule tables short.

func Pass(field, path string) Rule {
	return Rule{Field: field, Path: path, Kind: PassThrough}
}

func Compute(field, path string, f Formula) Rule {
	return Rule{Field: field, Path: path, Kind: FormulaRule, Formula: f}
}

func Format(field, path string, f Formatter) Rule {
	return Rule{Field: field, Path: path, Kind: FormatterRule, Formatter: f}
}

// Require marks the rule required.
func (r Rule) Require() Rule {
	r.Required = true
	return r
}

// Or sets the default of the rule.
func (r Rule) Or(d Default) Rule {
	r.Default = d
	return r
}
