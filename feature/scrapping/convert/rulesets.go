package convert

import "scrapper/feature/scrapping/models"

const maxDescription = 2000

// GlobalPassThrough applies to every kind unless a ruleset redefines the field.
var GlobalPassThrough = []Rule{
	Pass("name", "name").Require(),
}

var (
	monsterAttribute = Attribute{Base: 10, Coeff: 2, Offset: 0, Denom: 50}
	npcAttribute     = Attribute{Base: 8, Coeff: 1.5, Offset: 0, Denom: 40}

	monsterInitiative = Initiative{Offset: 0, Span: 1000, Factor: 20}
	npcInitiative     = Initiative{Offset: 500, Span: 1000, Factor: 20, AllowNegative: true}

	levelFormula = Divide{Divisor: 10}
	lifeFormula  = Life{Divisor: 200, LevelField: "level", PerLevel: 5}
	itemRarity   = RarityFromLevel{LevelField: "level"}
)

// DefaultRulesets returns the built-in rules of every kind.
func DefaultRulesets() map[models.EntityKind]Ruleset {
	return map[models.EntityKind]Ruleset{
		models.KindClass: {
			Kind: models.KindClass,
			Fields: []Rule{
				Pass("name", "shortName").Require(),
				Format("description", "description", Truncate{Max: maxDescription}),
				Format("short_name", "longName", Localized{}),
				Pass("complexity", "complexity").Or(Constant{1}),
			},
			Relations: []RelationRule{
				{Kind: models.KindSpell, Path: "breedSpellsId.*"},
			},
		},
		models.KindMonster: {
			Kind: models.KindMonster,
			Fields: []Rule{
				Compute("level", "grades.0.level", levelFormula).Require(),
				Compute("life", "grades.0.lifePoints", lifeFormula).Require(),
				Compute("strength", "grades.0.strength", monsterAttribute).Or(Constant{10}),
				Compute("intelligence", "grades.0.intelligence", monsterAttribute).Or(Constant{10}),
				Compute("chance", "grades.0.chance", monsterAttribute).Or(Constant{10}),
				Compute("agility", "grades.0.agility", monsterAttribute).Or(Constant{10}),
				Compute("wisdom", "grades.0.wisdom", monsterAttribute).Or(Constant{10}),
				Pass("action_points", "grades.0.actionPoints").Or(Constant{6}),
				Pass("movement_points", "grades.0.movementPoints").Or(Constant{3}),
				Compute("initiative", "grades.0.initiative", monsterInitiative).Or(Constant{0}),
				Pass("race_id", "race"),
				Format("is_boss", "isBoss", Bool{}),
			},
			Relations: []RelationRule{
				{Kind: models.KindSpell, Path: "spells.*"},
				{Kind: models.KindResource, Path: "drops.*.objectId"},
			},
		},
		models.KindNPC: {
			Kind: models.KindNPC,
			Fields: []Rule{
				Compute("level", "level", levelFormula).Or(Constant{1}),
				Compute("life", "lifePoints", lifeFormula).Or(Constant{10}),
				Compute("strength", "strength", npcAttribute).Or(Constant{8}),
				Compute("intelligence", "intelligence", npcAttribute).Or(Constant{8}),
				Compute("agility", "agility", npcAttribute).Or(Constant{8}),
				Compute("initiative", "initiative", npcInitiative).Or(Constant{0}),
			},
		},
		models.KindItem: {
			Kind: models.KindItem,
			Fields: append(itemFields(),
				Format("usable", "usable", Bool{}),
			),
			Relations: []RelationRule{
				{Kind: models.KindResource, Path: "ingredientIds.*"},
			},
		},
		models.KindResource: {
			Kind:   models.KindResource,
			Fields: itemFields(),
		},
		models.KindConsumable: {
			Kind: models.KindConsumable,
			Fields: append(itemFields(),
				Format("usable", "usable", Bool{}),
			),
		},
		models.KindSpell: {
			Kind: models.KindSpell,
			Fields: []Rule{
				Format("description", "description", Truncate{Max: maxDescription}),
				Pass("type_id", "typeId").Or(Constant{0}),
				Pass("icon_id", "iconId").Or(Constant{0}),
			},
		},
		models.KindPanoply: {
			Kind: models.KindPanoply,
			Fields: []Rule{
				Format("item_count", "items", Count{}).Or(Constant{0}),
				Format("is_cosmetic", "isCosmetic", Bool{}),
			},
			Relations: []RelationRule{
				{Kind: models.KindItem, Path: "items.*.id"},
			},
		},
	}
}

// itemFields are shared by the three kinds of the items endpoint.
func itemFields() []Rule {
	return []Rule{
		Format("description", "description", Truncate{Max: maxDescription}),
		Compute("level", "level", levelFormula).Require(),
		Pass("type_id", "typeId").Require(),
		Pass("price", "price").Or(Constant{0}),
		Pass("rarity", "rarity").Or(itemRarity),
		Pass("weight", "realWeight").Or(Constant{0}),
	}
}
