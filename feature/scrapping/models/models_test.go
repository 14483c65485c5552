package models

import (
	"testing"

	"scrapper/core/retry"

	"github.com/stretchr/testify/assert"
)

func TestParseKind(t *testing.T) {
	k, err := ParseKind("monster")
	assert.NoError(t, err)
	assert.Equal(t, KindMonster, k)

	_, err = ParseKind("dragon")
	assert.Error(t, err)
}

func TestKind_Mappings(t *testing.T) {
	tests := []struct {
		kind        EntityKind
		resource    string
		table       string
		polymorphic bool
	}{
		{KindClass, "breeds", "classes", false},
		{KindMonster, "monsters", "monsters", false},
		{KindNPC, "npcs", "npcs", false},
		{KindItem, "items", "items", true},
		{KindResource, "items", "resources", true},
		{KindConsumable, "items", "consumables", true},
		{KindSpell, "spells", "spells", false},
		{KindPanoply, "item-sets", "panoplies", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.resource, tt.kind.ResourceType())
			assert.Equal(t, tt.table, tt.kind.Table())
			assert.Equal(t, tt.polymorphic, tt.kind.Polymorphic())

			back, ok := KindForTable(tt.table)
			assert.True(t, ok)
			assert.Equal(t, tt.kind, back)
		})
	}
}

func TestEntityModelsMatchTables(t *testing.T) {
	for kind, m := range EntityModels() {
		tabler, ok := m.(interface{ TableName() string })
		if assert.True(t, ok, kind) {
			assert.Equal(t, kind.Table(), tabler.TableName())
		}
	}
	assert.Len(t, AllModels(), len(AllKinds)+3)
}

func TestConvertedRecord_Table(t *testing.T) {
	rec := ConvertedRecord{Kind: KindItem, Category: KindResource}
	assert.Equal(t, "resources", rec.Table())

	rec = ConvertedRecord{Kind: KindSpell}
	assert.Equal(t, "spells", rec.Table())
}

func TestSummarizeAndStatus(t *testing.T) {
	results := []ImportResult{
		{Success: true},
		{Success: false, Error: &ErrorInfo{Class: retry.ClassCollection}},
	}
	s := Summarize(results)
	assert.Equal(t, Summary{Total: 2, Success: 1, Errors: 1}, s)
	assert.Equal(t, JobPartial, StatusFor(s))
	assert.Equal(t, JobSucceeded, StatusFor(Summary{Total: 1, Success: 1}))
	assert.Equal(t, JobFailed, StatusFor(Summary{Total: 1, Errors: 1}))
	assert.True(t, JobPartial.Terminal())
	assert.False(t, JobConverting.Terminal())
}

func TestJobStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from, to JobStatus
		want     bool
	}{
		{JobPending, JobCollecting, true},
		{JobCollecting, JobClassifying, true},
		{JobClassifying, JobConverting, true},
		{JobConverting, JobIntegrating, true},
		{JobIntegrating, JobSucceeded, true},
		{JobCollecting, JobFailed, true},
		{JobConverting, JobSucceeded, true},
		{JobCollecting, JobIntegrating, false},
		{JobClassifying, JobCollecting, false},
		{JobIntegrating, JobConverting, false},
		{JobSucceeded, JobFailed, false},
		{JobFailed, JobCollecting, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}
