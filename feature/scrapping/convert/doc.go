// Package convert maps raw source records to the target data model.
//
// # Rules
//
// Every target field is produced by one Rule of one of three kinds:
//
//   - pass-through: the raw value is copied. Localized text maps are reduced to
//     the preferred language, or the fallback language with a warning.
//   - formula: a typed numeric function of the raw value and of fields that
//     were already converted (Divide, Life, Attribute, Initiative).
//   - formatter: a typed transformation of the raw value (Truncate, Bool, Count).
//
// Rules of a Ruleset run in order, so a formula may read an earlier result
// (life reads level). Global pass-through fields apply to every kind unless a
// ruleset redefines the same field.
//
// # Corrections
//
// After evaluation every numeric field is clamped to the range the limit
// source gives for (field, kind), with a clamped warning. A missing field with
// a Default is filled in with a defaulted warning. A missing required field
// without a default is an Error (missing_required_field); a non numeric
// formula input is an Error (invalid_format).
//
// # Determinism
//
// Conversion reads nothing but its inputs: no clock, randomness or I/O.
package convert
