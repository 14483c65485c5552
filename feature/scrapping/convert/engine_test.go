package convert

import (
	"encoding/json"
	"strings"
	"testing"

	"scrapper/core/retry"
	"scrapper/core/source"
	"scrapper/feature/scrapping/limits"
	"scrapper/feature/scrapping/models"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawRecord(t *testing.T, body string) source.RawRecord {
	t.Helper()
	var r source.RawRecord
	require.NoError(t, json.Unmarshal([]byte(body), &r))
	return r
}

func newEngine() *Engine {
	return NewEngine(limits.Defaults(), "fr", "en")
}

func warningCodes(ws []models.Warning) map[string]models.WarningCode {
	out := make(map[string]models.WarningCode, len(ws))
	for _, w := range ws {
		out[w.Field] = w.Code
	}
	return out
}

const monsterJSON = `{
	"id": 31,
	"name": {"fr": "Bouftou", "en": "Gobball"},
	"race": 6,
	"isBoss": false,
	"grades": [{
		"level": 237,
		"lifePoints": 4000,
		"strength": 450,
		"intelligence": 0,
		"chance": -20,
		"agility": 50,
		"wisdom": 200,
		"actionPoints": 7,
		"movementPoints": 4,
		"initiative": 500
	}],
	"spells": [12, 7, 12, 0],
	"drops": [{"objectId": 385}, {"objectId": 384}, {"objectId": 385}]
}`

func TestConvert_MonsterFormulas(t *testing.T) {
	rec, warnings, err := newEngine().Convert(rawRecord(t, monsterJSON), models.KindMonster, "")
	require.NoError(t, err)

	assert.Equal(t, models.KindMonster, rec.Category)
	assert.Equal(t, 31, rec.ExternalID)
	assert.Equal(t, "Bouftou", rec.Fields["name"])
	assert.Equal(t, 23, rec.Fields["level"])
	assert.Equal(t, 135, rec.Fields["life"])
	// round(10 + 2*sqrt(450/50)) = 16
	assert.Equal(t, 16, rec.Fields["strength"])
	assert.Equal(t, 10, rec.Fields["intelligence"])
	assert.Equal(t, 10, rec.Fields["chance"], "negative raw values are floored inside the root")
	// round(10 + 2*sqrt(1)) = 12
	assert.Equal(t, 12, rec.Fields["agility"])
	assert.Equal(t, 14, rec.Fields["wisdom"])
	assert.Equal(t, 7, rec.Fields["action_points"])
	assert.Equal(t, 4, rec.Fields["movement_points"])
	assert.Equal(t, 10, rec.Fields["initiative"])
	assert.Equal(t, 6, rec.Fields["race_id"])
	assert.Equal(t, false, rec.Fields["is_boss"])
	assert.Zero(t, rec.SourceTypeID)
	assert.Empty(t, warnings)

	require.Len(t, rec.Relations, 2)
	assert.Equal(t, models.RelationRef{Kind: models.KindSpell, ExternalIDs: []int{7, 12}}, rec.Relations[0])
	assert.Equal(t, models.RelationRef{Kind: models.KindResource, ExternalIDs: []int{384, 385}}, rec.Relations[1])
}

func TestConvert_Deterministic(t *testing.T) {
	e := newEngine()
	raw := rawRecord(t, monsterJSON)

	first, w1, err := e.Convert(raw, models.KindMonster, "")
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		next, w2, err := e.Convert(raw, models.KindMonster, "")
		require.NoError(t, err)
		assert.Equal(t, first, next)
		assert.Equal(t, w1, w2)
	}
}

func TestConvert_ClampsIntoRange(t *testing.T) {
	e := newEngine()
	table := limits.Defaults()

	for _, rawLevel := range []float64{-500, 0, 5, 237, 999, 100000} {
		for _, rawLife := range []float64{-1, 0, 4000, 1e9} {
			raw := source.RawRecord{ID: 1, Fields: map[string]any{
				"id":   1.0,
				"name": "x",
				"grades": []any{map[string]any{
					"level":      rawLevel,
					"lifePoints": rawLife,
					"strength":   rawLife,
					"initiative": rawLife,
				}},
			}}
			rec, _, err := e.Convert(raw, models.KindMonster, "")
			require.NoError(t, err)

			for field, v := range rec.Fields {
				n, ok := numeric(v)
				if !ok {
					continue
				}
				min, max, found := table.LimitsFor(field, models.KindMonster)
				if !found {
					continue
				}
				assert.GreaterOrEqual(t, n, min, "%s for level=%v life=%v", field, rawLevel, rawLife)
				assert.LessOrEqual(t, n, max, "%s for level=%v life=%v", field, rawLevel, rawLife)
			}
		}
	}
}

func TestConvert_ClampWarning(t *testing.T) {
	raw := rawRecord(t, `{"id": 2, "name": "Dragon", "grades": [{"level": 2000, "lifePoints": 900000}]}`)

	rec, warnings, err := newEngine().Convert(raw, models.KindMonster, "")
	require.NoError(t, err)

	assert.Equal(t, 50, rec.Fields["level"])
	assert.Equal(t, 1000, rec.Fields["life"])
	codes := warningCodes(warnings)
	assert.Equal(t, models.WarningClamped, codes["level"])
	assert.Equal(t, models.WarningClamped, codes["life"])
	assert.Equal(t, models.WarningDefaulted, codes["strength"])
}

func TestConvert_Initiative(t *testing.T) {
	e := newEngine()

	tests := []struct {
		name string
		kind models.EntityKind
		body string
		want int
	}{
		{"monster floors at zero", models.KindMonster, `{"id": 1, "name": "m", "grades": [{"level": 10, "lifePoints": 10, "initiative": -300}]}`, 0},
		{"monster caps at factor", models.KindMonster, `{"id": 1, "name": "m", "grades": [{"level": 10, "lifePoints": 10, "initiative": 5000}]}`, 20},
		{"npc keeps negative", models.KindNPC, `{"id": 1, "name": "n", "initiative": 0}`, -10},
		{"npc at offset", models.KindNPC, `{"id": 1, "name": "n", "initiative": 500}`, 0},
		{"npc caps at factor", models.KindNPC, `{"id": 1, "name": "n", "initiative": 9000}`, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _, err := e.Convert(rawRecord(t, tt.body), tt.kind, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.Fields["initiative"])
		})
	}
}

func TestConvert_RarityFromLevel(t *testing.T) {
	e := newEngine()

	tests := []struct {
		rawLevel int
		want     int
	}{
		{10, 0},
		{29, 0},
		{30, 1},
		{69, 1},
		{70, 2},
		{100, 3},
		{169, 3},
		{170, 4},
		{200, 4},
	}
	for _, tt := range tests {
		body := `{"id": 5, "name": "Sword", "typeId": 6, "level": ` + itoa(tt.rawLevel) + `}`
		rec, warnings, err := e.Convert(rawRecord(t, body), models.KindItem, models.KindItem)
		require.NoError(t, err)
		assert.Equal(t, tt.want, rec.Fields["rarity"], "raw level %d", tt.rawLevel)
		assert.Equal(t, models.WarningDefaulted, warningCodes(warnings)["rarity"])
	}

	rec, _, err := e.Convert(rawRecord(t, `{"id": 5, "name": "Sword", "typeId": 6, "level": 200, "rarity": 1}`), models.KindItem, "")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Fields["rarity"], "explicit rarity wins over the inferred tier")
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func TestRarityTier(t *testing.T) {
	assert.Equal(t, 0, RarityTier(2.9))
	assert.Equal(t, 1, RarityTier(3))
	assert.Equal(t, 2, RarityTier(7))
	assert.Equal(t, 3, RarityTier(10))
	assert.Equal(t, 4, RarityTier(17))
}

func TestConvert_MissingRequired(t *testing.T) {
	_, _, err := newEngine().Convert(rawRecord(t, `{"id": 5, "name": "Sword", "level": 100}`), models.KindItem, models.KindResource)
	require.Error(t, err)

	var convErr *Error
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, retry.ConditionMissingRequired, convErr.Condition)
	assert.Equal(t, "type_id", convErr.Field)
	assert.Equal(t, models.KindResource, convErr.Kind)
	assert.Equal(t, retry.ActionUseDefault, retry.DefaultFallbacks().ActionFor(convErr.Condition))
}

func TestConvert_InvalidFormat(t *testing.T) {
	_, _, err := newEngine().Convert(rawRecord(t, `{"id": 5, "name": "m", "grades": [{"level": "high", "lifePoints": 10}]}`), models.KindMonster, "")

	var convErr *Error
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, retry.ConditionInvalidFormat, convErr.Condition)
	assert.Equal(t, "level", convErr.Field)
}

func TestConvert_PolymorphicCategory(t *testing.T) {
	body := `{"id": 385, "name": {"en": "Wheat"}, "typeId": 15, "level": 10, "usable": 1, "ingredientIds": [1, 2]}`

	rec, warnings, err := newEngine().Convert(rawRecord(t, body), models.KindItem, models.KindResource)
	require.NoError(t, err)

	assert.Equal(t, models.KindItem, rec.Kind)
	assert.Equal(t, models.KindResource, rec.Category)
	assert.Equal(t, "resources", rec.Table())
	assert.Equal(t, 15, rec.SourceTypeID)
	assert.Equal(t, "Wheat", rec.Fields["name"])
	assert.NotContains(t, rec.Fields, "usable", "resources have no usable column")
	assert.Empty(t, rec.Relations, "resources carry no recipe relations")
	assert.Equal(t, models.WarningLanguageFallback, warningCodes(warnings)["name"])
}

func TestConvert_ClassOverridesGlobalName(t *testing.T) {
	body := `{"id": 8, "name": "ignored", "shortName": {"fr": "Iop"}, "description": {"fr": "` + strings.Repeat("é", 2100) + `"}, "breedSpellsId": [3, 1, 2]}`

	rec, _, err := newEngine().Convert(rawRecord(t, body), models.KindClass, "")
	require.NoError(t, err)

	assert.Equal(t, "Iop", rec.Fields["name"])
	assert.Len(t, []rune(rec.Fields["description"].(string)), maxDescription)
	assert.Equal(t, 1, rec.Fields["complexity"])
	require.Len(t, rec.Relations, 1)
	assert.Equal(t, []int{1, 2, 3}, rec.Relations[0].ExternalIDs)
}

func TestConvert_Panoply(t *testing.T) {
	body := `{"id": 1, "name": "Set", "isCosmetic": true, "items": [{"id": 10}, {"id": 11}, {"id": 1}]}`

	rec, _, err := newEngine().Convert(rawRecord(t, body), models.KindPanoply, "")
	require.NoError(t, err)

	assert.Equal(t, 3, rec.Fields["item_count"])
	assert.Equal(t, true, rec.Fields["is_cosmetic"])
	assert.Equal(t, []int{1, 10, 11}, rec.Relations[0].ExternalIDs, "items are another kind, so id 1 is kept")
}

func TestConvert_UnknownKind(t *testing.T) {
	_, _, err := newEngine().Convert(source.RawRecord{ID: 1}, models.EntityKind("vehicle"), "")
	assert.Error(t, err)
}

func TestConvert_CustomRuleset(t *testing.T) {
	e := NewEngine(limits.NewTable(), "fr", "en", WithRuleset(Ruleset{
		Kind:   models.KindSpell,
		Fields: []Rule{Compute("level", "level", Divide{Divisor: 2})},
	}))

	rec, _, err := e.Convert(rawRecord(t, `{"id": 1, "name": "Fire", "level": 9}`), models.KindSpell, "")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Fire", "level": 4}, rec.Fields)
}
