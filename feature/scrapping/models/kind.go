package models

import "fmt"

// EntityKind identifies the target entity type a record becomes.
type EntityKind string

const (
	KindClass      EntityKind = "class"
	KindMonster    EntityKind = "monster"
	KindNPC        EntityKind = "npc"
	KindItem       EntityKind = "item"
	KindResource   EntityKind = "resource"
	KindConsumable EntityKind = "consumable"
	KindSpell      EntityKind = "spell"
	KindPanoply    EntityKind = "panoply"
)

// AllKinds lists every kind in a stable order.
var AllKinds = []EntityKind{
	KindClass, KindMonster, KindNPC, KindItem, KindResource, KindConsumable, KindSpell, KindPanoply,
}

// ParseKind validates a kind name.
func ParseKind(s string) (EntityKind, error) {
	k := EntityKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown entity kind: %q", s)
	}
	return k, nil
}

// Valid reports whether k belongs to the closed set.
func (k EntityKind) Valid() bool {
	switch k {
	case KindClass, KindMonster, KindNPC, KindItem, KindResource, KindConsumable, KindSpell, KindPanoply:
		return true
	default:
		return false
	}
}

// ResourceType is the collection endpoint of the kind in the external API.
func (k EntityKind) ResourceType() string {
	switch k {
	case KindClass:
		return "breeds"
	case KindMonster:
		return "monsters"
	case KindNPC:
		return "npcs"
	case KindItem, KindResource, KindConsumable:
		return "items"
	case KindSpell:
		return "spells"
	case KindPanoply:
		return "item-sets"
	default:
		return ""
	}
}

// Polymorphic reports whether the kind shares its endpoint with other kinds,
// so that the classifier decides the final category of each record.
func (k EntityKind) Polymorphic() bool {
	switch k {
	case KindItem, KindResource, KindConsumable:
		return true
	default:
		return false
	}
}

// Table is the target table of the kind.
func (k EntityKind) Table() string {
	switch k {
	case KindClass:
		return "classes"
	case KindMonster:
		return "monsters"
	case KindNPC:
		return "npcs"
	case KindItem:
		return "items"
	case KindResource:
		return "resources"
	case KindConsumable:
		return "consumables"
	case KindSpell:
		return "spells"
	case KindPanoply:
		return "panoplies"
	default:
		return ""
	}
}

// KindForTable is the inverse of Table.
func KindForTable(table string) (EntityKind, bool) {
	for _, k := range AllKinds {
		if k.Table() == table {
			return k, true
		}
	}
	return "", false
}
