package source

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const monsterJSON = `{
	"id": 31,
	"name": {"fr": "Bouftou", "en": "Gobball"},
	"grades": [
		{"grade": 1, "level": 10, "lifePoints": 40},
		{"grade": 2, "level": 20, "lifePoints": 60}
	],
	"drops": [{"objectId": 385}, {"objectId": 1770}],
	"spells": [1, 2],
	"typeId": "notanumber"
}`

func decode(t *testing.T) RawRecord {
	var r RawRecord
	require.NoError(t, json.Unmarshal([]byte(monsterJSON), &r))
	return r
}

func TestRawRecord_Value(t *testing.T) {
	r := decode(t)
	assert.Equal(t, 31, r.ID)

	v, ok := r.Value("grades.1.level")
	assert.True(t, ok)
	assert.Equal(t, float64(20), v)

	_, ok = r.Value("grades.5.level")
	assert.False(t, ok)

	_, ok = r.Value("missing.path")
	assert.False(t, ok)
}

func TestRawRecord_Values(t *testing.T) {
	r := decode(t)
	assert.Equal(t, []any{float64(385), float64(1770)}, r.Values("drops.*.objectId"))
	assert.Equal(t, []any{float64(1), float64(2)}, r.Values("spells.*"))
	assert.Empty(t, r.Values("nothing.*"))
}

func TestRawRecord_Number(t *testing.T) {
	r := decode(t)

	n, ok := r.Number("grades.0.lifePoints")
	assert.True(t, ok)
	assert.Equal(t, 40.0, n)

	_, ok = r.Number("typeId")
	assert.False(t, ok)
}

func TestRawRecord_Localized(t *testing.T) {
	r := decode(t)

	text, lang, ok := r.Localized("name", "fr", "en")
	assert.True(t, ok)
	assert.Equal(t, "Bouftou", text)
	assert.Equal(t, "fr", lang)

	text, lang, ok = r.Localized("name", "de", "en")
	assert.True(t, ok)
	assert.Equal(t, "Gobball", text)
	assert.Equal(t, "en", lang)

	text, lang, ok = r.Localized("name", "de")
	assert.True(t, ok)
	assert.Equal(t, "Gobball", text, "first language alphabetically")
	assert.Equal(t, "en", lang)
}

func TestPage_NextSkip(t *testing.T) {
	p := &Page{Total: 120, Limit: 50, Skip: 0, Data: make([]RawRecord, 50)}
	assert.Equal(t, 50, p.nextSkip())
	assert.False(t, p.done())

	p = &Page{Total: 120, Limit: 0, Skip: 100, Data: make([]RawRecord, 20)}
	assert.Equal(t, 120, p.nextSkip())
	assert.True(t, p.done())

	p = &Page{Total: 120, Limit: 50, Skip: 50}
	assert.True(t, p.done(), "empty page ends the walk")
}

func TestQuery_Encode(t *testing.T) {
	q := Query{"typeId": "15", "level": "3"}
	assert.Equal(t, "level=3&typeId=15", q.Encode())
	assert.Equal(t, "", Query(nil).Encode())
}
