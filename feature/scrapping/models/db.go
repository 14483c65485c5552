package models

import "time"

// Entity holds the columns shared by every target table.
type Entity struct {
	ID         uint      `gorm:"column:id;primaryKey"`
	ExternalID int       `gorm:"column:external_id;index"`
	Name       string    `gorm:"column:name;type:varchar(255)"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

// Class represents the 'classes' table.
type Class struct {
	Entity
	Description string `gorm:"column:description;type:text"`
	ShortName   string `gorm:"column:short_name;type:varchar(255)"`
	Complexity  int    `gorm:"column:complexity"`
}

func (Class) TableName() string { return "classes" }

// Monster represents the 'monsters' table.
type Monster struct {
	Entity
	Level          int  `gorm:"column:level"`
	Life           int  `gorm:"column:life"`
	Strength       int  `gorm:"column:strength"`
	Intelligence   int  `gorm:"column:intelligence"`
	Chance         int  `gorm:"column:chance"`
	Agility        int  `gorm:"column:agility"`
	Wisdom         int  `gorm:"column:wisdom"`
	ActionPoints   int  `gorm:"column:action_points"`
	MovementPoints int  `gorm:"column:movement_points"`
	Initiative     int  `gorm:"column:initiative"`
	RaceID         int  `gorm:"column:race_id"`
	IsBoss         bool `gorm:"column:is_boss"`
}

func (Monster) TableName() string { return "monsters" }

// NPC represents the 'npcs' table.
type NPC struct {
	Entity
	Level        int `gorm:"column:level"`
	Life         int `gorm:"column:life"`
	Strength     int `gorm:"column:strength"`
	Intelligence int `gorm:"column:intelligence"`
	Agility      int `gorm:"column:agility"`
	Initiative   int `gorm:"column:initiative"`
}

func (NPC) TableName() string { return "npcs" }

// Item represents the 'items' table.
type Item struct {
	Entity
	Description string `gorm:"column:description;type:text"`
	Level       int    `gorm:"column:level"`
	TypeID      int    `gorm:"column:type_id"`
	Price       int    `gorm:"column:price"`
	Rarity      int    `gorm:"column:rarity"`
	Weight      int    `gorm:"column:weight"`
	Usable      bool   `gorm:"column:usable"`
}

func (Item) TableName() string { return "items" }

// Resource represents the 'resources' table.
type Resource struct {
	Entity
	Description string `gorm:"column:description;type:text"`
	Level       int    `gorm:"column:level"`
	TypeID      int    `gorm:"column:type_id"`
	Price       int    `gorm:"column:price"`
	Rarity      int    `gorm:"column:rarity"`
	Weight      int    `gorm:"column:weight"`
}

func (Resource) TableName() string { return "resources" }

// Consumable represents the 'consumables' table.
type Consumable struct {
	Entity
	Description string `gorm:"column:description;type:text"`
	Level       int    `gorm:"column:level"`
	TypeID      int    `gorm:"column:type_id"`
	Price       int    `gorm:"column:price"`
	Rarity      int    `gorm:"column:rarity"`
	Weight      int    `gorm:"column:weight"`
	Usable      bool   `gorm:"column:usable"`
}

func (Consumable) TableName() string { return "consumables" }

// Spell represents the 'spells' table.
type Spell struct {
	Entity
	Description string `gorm:"column:description;type:text"`
	TypeID      int    `gorm:"column:type_id"`
	IconID      int    `gorm:"column:icon_id"`
}

func (Spell) TableName() string { return "spells" }

// Panoply represents the 'panoplies' table.
type Panoply struct {
	Entity
	ItemCount  int  `gorm:"column:item_count"`
	IsCosmetic bool `gorm:"column:is_cosmetic"`
}

func (Panoply) TableName() string { return "panoplies" }

// EntityRelation links two rows of any entity tables.
type EntityRelation struct {
	ID           uint      `gorm:"column:id;primaryKey"`
	OwnerTable   string    `gorm:"column:owner_table;type:varchar(64);uniqueIndex:idx_relation"`
	OwnerID      uint      `gorm:"column:owner_id;uniqueIndex:idx_relation"`
	RelatedTable string    `gorm:"column:related_table;type:varchar(64);uniqueIndex:idx_relation"`
	RelatedID    uint      `gorm:"column:related_id;uniqueIndex:idx_relation"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (EntityRelation) TableName() string { return "entity_relations" }

// Registry decisions.
const (
	DecisionAllowed = "allowed"
	DecisionBlocked = "blocked"
	DecisionPending = "pending"
)

// SourceType represents the 'source_type_registry' table: one row per source
// item type id with the kind it maps to and how often it was seen.
type SourceType struct {
	ID           uint       `gorm:"column:id;primaryKey"`
	SourceTypeID int        `gorm:"column:source_type_id;uniqueIndex"`
	Kind         EntityKind `gorm:"column:kind;type:varchar(32)"`
	Decision     string     `gorm:"column:decision;type:varchar(16);default:pending"`
	SeenCount    int        `gorm:"column:seen_count"`
	LastSeen     time.Time  `gorm:"column:last_seen"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (SourceType) TableName() string { return "source_type_registry" }

// CharacteristicLimit represents the 'characteristic_limits' table.
type CharacteristicLimit struct {
	ID             uint       `gorm:"column:id;primaryKey"`
	Characteristic string     `gorm:"column:characteristic;type:varchar(64);uniqueIndex:idx_limit"`
	Kind           EntityKind `gorm:"column:kind;type:varchar(32);uniqueIndex:idx_limit"`
	Min            float64    `gorm:"column:min"`
	Max            float64    `gorm:"column:max"`
}

func (CharacteristicLimit) TableName() string { return "characteristic_limits" }

// EntityModels returns one value per entity table, keyed by kind.
func EntityModels() map[EntityKind]any {
	return map[EntityKind]any{
		KindClass:      &Class{},
		KindMonster:    &Monster{},
		KindNPC:        &NPC{},
		KindItem:       &Item{},
		KindResource:   &Resource{},
		KindConsumable: &Consumable{},
		KindSpell:      &Spell{},
		KindPanoply:    &Panoply{},
	}
}

// AllModels returns every model the pipeline migrates.
func AllModels() []any {
	out := make([]any, 0, len(AllKinds)+3)
	models := EntityModels()
	for _, k := range AllKinds {
		out = append(out, models[k])
	}
	return append(out, &EntityRelation{}, &SourceType{}, &CharacteristicLimit{})
}
