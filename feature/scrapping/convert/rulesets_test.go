package convert_test

import (
	"encoding/json"
	"testing"

	"scrapper/core/source"
	"scrapper/feature/scrapping/convert"
	"scrapper/feature/scrapping/limits"
	"scrapper/feature/scrapping/models"

	"github.com/stretchr/testify/suite"
)

type RulesetTestSuite struct {
	suite.Suite
	engine *convert.Engine
}

func (s *RulesetTestSuite) SetupTest() {
	s.engine = convert.NewEngine(limits.Defaults(), "fr", "en")
}

func (s *RulesetTestSuite) raw(body string) source.RawRecord {
	var r source.RawRecord
	s.Require().NoError(json.Unmarshal([]byte(body), &r))
	return r
}

func (s *RulesetTestSuite) defaulted(ws []models.Warning) []string {
	var out []string
	for _, w := range ws {
		if w.Code == models.WarningDefaulted {
			out = append(out, w.Field)
		}
	}
	return out
}

func (s *RulesetTestSuite) TestEveryKindHasARuleset() {
	for _, kind := range models.AllKinds {
		s.Run(string(kind), func() {
			rs, ok := s.engine.Ruleset(kind)
			s.Require().True(ok)

			var fields []string
			for _, r := range rs.Fields {
				fields = append(fields, r.Field)
			}
			s.Contains(fields, "name")
		})
	}
}

func (s *RulesetTestSuite) TestNPC() {
	s.Run("absent characteristics use defaults", func() {
		rec, warnings, err := s.engine.Convert(s.raw(`{"id": 5, "name": {"fr": "Otomaï"}}`), models.KindNPC, "")
		s.Require().NoError(err)

		s.Equal("Otomaï", rec.Fields["name"])
		s.Equal(1, rec.Fields["level"])
		s.Equal(10, rec.Fields["life"])
		s.Equal(8, rec.Fields["strength"])
		s.Equal(8, rec.Fields["intelligence"])
		s.Equal(8, rec.Fields["agility"])
		s.Equal(0, rec.Fields["initiative"])
		s.ElementsMatch([]string{"level", "life", "strength", "intelligence", "agility", "initiative"}, s.defaulted(warnings))
	})

	s.Run("initiative keeps its sign", func() {
		rec, _, err := s.engine.Convert(s.raw(`{"id": 5, "name": "Otomaï", "level": 100, "initiative": 0}`), models.KindNPC, "")
		s.Require().NoError(err)

		s.Equal(10, rec.Fields["level"])
		s.Equal(-10, rec.Fields["initiative"])
	})
}

func (s *RulesetTestSuite) TestSpell() {
	rec, warnings, err := s.engine.Convert(s.raw(`{"id": 201, "name": {"fr": "Pression"}, "typeId": 3}`), models.KindSpell, "")
	s.Require().NoError(err)

	s.Equal(3, rec.Fields["type_id"])
	s.Equal(0, rec.Fields["icon_id"])
	s.NotContains(rec.Fields, "description")
	s.Equal([]string{"icon_id"}, s.defaulted(warnings))
	s.Empty(rec.Relations)
}

func (s *RulesetTestSuite) TestConsumable() {
	rec, _, err := s.engine.Convert(s.raw(`{"id": 9, "name": "Pain", "level": 35, "typeId": 12, "usable": 1}`), models.KindItem, models.KindConsumable)
	s.Require().NoError(err)

	s.Equal(models.KindItem, rec.Kind)
	s.Equal("consumables", rec.Table())
	s.Equal(12, rec.SourceTypeID)
	s.Equal(3, rec.Fields["level"])
	s.Equal(1, rec.Fields["rarity"])
	s.Equal(true, rec.Fields["usable"])
	s.Equal(0, rec.Fields["price"])
}

func (s *RulesetTestSuite) TestItemIngredients() {
	rec, _, err := s.engine.Convert(s.raw(`{
		"id": 44, "name": "Épée", "level": 200, "typeId": 6,
		"ingredientIds": [385, 384, 385, 44]
	}`), models.KindItem, "")
	s.Require().NoError(err)

	s.Equal(4, rec.Fields["rarity"])
	s.Require().Len(rec.Relations, 1)
	// 44 is an item: only resource ids equal to the owner would be dropped.
	s.Equal(models.RelationRef{Kind: models.KindResource, ExternalIDs: []int{44, 384, 385}}, rec.Relations[0])
}

func (s *RulesetTestSuite) TestClass() {
	rec, warnings, err := s.engine.Convert(s.raw(`{
		"id": 1,
		"shortName": {"fr": "Féca"},
		"longName": {"fr": "Les Féca"},
		"breedSpellsId": [3, 1, 2]
	}`), models.KindClass, "")
	s.Require().NoError(err)

	s.Equal("Féca", rec.Fields["name"])
	s.Equal("Les Féca", rec.Fields["short_name"])
	s.Equal(1, rec.Fields["complexity"])
	s.Equal([]string{"complexity"}, s.defaulted(warnings))
	s.Equal([]models.RelationRef{{Kind: models.KindSpell, ExternalIDs: []int{1, 2, 3}}}, rec.Relations)
}

func TestRulesetTestSuite(t *testing.T) {
	suite.Run(t, new(RulesetTestSuite))
}
