// Package limits provides the characteristic ranges used to clamp converted
// values. A range is looked up by (characteristic, kind) first and by
// (characteristic, "*") second.
package limits

import (
	"context"
	"fmt"
	"os"

	"scrapper/feature/scrapping/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// AnyKind matches every kind without a specific range.
const AnyKind models.EntityKind = "*"

// Source answers the range of a characteristic for a kind.
type Source interface {
	LimitsFor(characteristic string, kind models.EntityKind) (min, max float64, ok bool)
}

// Range is an inclusive [Min, Max] interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type key struct {
	characteristic string
	kind           models.EntityKind
}

// Table is an in-memory Source. It is not safe to mutate once shared.
type Table struct {
	ranges map[key]Range
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{ranges: make(map[key]Range)}
}

// Set stores a range and returns the table for chaining.
func (t *Table) Set(characteristic string, kind models.EntityKind, min, max float64) *Table {
	t.ranges[key{characteristic, kind}] = Range{Min: min, Max: max}
	return t
}

func (t *Table) LimitsFor(characteristic string, kind models.EntityKind) (float64, float64, bool) {
	if r, ok := t.ranges[key{characteristic, kind}]; ok {
		return r.Min, r.Max, true
	}
	if r, ok := t.ranges[key{characteristic, AnyKind}]; ok {
		return r.Min, r.Max, true
	}
	return 0, 0, false
}

// Len returns the number of ranges.
func (t *Table) Len() int {
	return len(t.ranges)
}

// Clamp forces v into [min, max] and reports whether it changed.
func Clamp(v, min, max float64) (float64, bool) {
	switch {
	case v < min:
		return min, true
	case v > max:
		return max, true
	default:
		return v, false
	}
}

// Defaults returns the built-in ranges.
func Defaults() *Table {
	t := NewTable().
		Set("level", AnyKind, 1, 50).
		Set("rarity", AnyKind, 0, 4).
		Set("price", AnyKind, 0, 1000000).
		Set("weight", AnyKind, 0, 1000).
		Set("life", models.KindMonster, 1, 1000).
		Set("life", models.KindNPC, 1, 500).
		Set("initiative", models.KindMonster, 0, 20).
		Set("initiative", models.KindNPC, -20, 20).
		Set("action_points", models.KindMonster, 1, 12).
		Set("movement_points", models.KindMonster, 0, 8).
		Set("item_count", models.KindPanoply, 0, 20).
		Set("complexity", models.KindClass, 0, 5)

	for _, attr := range []string{"strength", "intelligence", "chance", "agility", "wisdom"} {
		t.Set(attr, models.KindMonster, 1, 30)
		t.Set(attr, models.KindNPC, 1, 20)
	}
	return t
}

// LoadFile reads ranges from YAML, keyed by kind then characteristic:
//
//	monster:
//	  life: {min: 1, max: 1000}
//	"*":
//	  level: {min: 1, max: 20}
//
// Entries override the built-in defaults.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read limits file: %w", err)
	}

	var doc map[string]map[string]Range
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse limits file: %w", err)
	}

	t := Defaults()
	for kindName, chars := range doc {
		kind := models.EntityKind(kindName)
		if kind != AnyKind && !kind.Valid() {
			return nil, fmt.Errorf("limits file: unknown kind %q", kindName)
		}
		for char, r := range chars {
			if r.Min > r.Max {
				return nil, fmt.Errorf("limits file: %s.%s has min > max", kindName, char)
			}
			t.Set(char, kind, r.Min, r.Max)
		}
	}
	return t, nil
}

// LoadDB reads ranges from the characteristic_limits table on top of the defaults.
func LoadDB(ctx context.Context, db *gorm.DB) (*Table, error) {
	var rows []models.CharacteristicLimit
	if err := db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load characteristic limits: %w", err)
	}

	t := Defaults()
	for _, row := range rows {
		t.Set(row.Characteristic, row.Kind, row.Min, row.Max)
	}
	return t, nil
}
