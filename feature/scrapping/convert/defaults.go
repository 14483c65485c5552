package convert

// Constant is a fixed default.
type Constant struct {
	V any
}

func (d Constant) Value(*Input) (any, bool) {
	return d.V, true
}

// RarityFromLevel infers a rarity tier from the converted level:
// level >= 17 is tier 4, >= 10 tier 3, >= 7 tier 2, >= 3 tier 1, else 0.
type RarityFromLevel struct {
	LevelField string
}

func (d RarityFromLevel) Value(in *Input) (any, bool) {
	level, ok := in.Number(d.LevelField)
	if !ok {
		return nil, false
	}
	return RarityTier(level), true
}

// RarityTier maps a level to its rarity tier.
func RarityTier(level float64) int {
	switch {
	case level >= 17:
		return 4
	case level >= 10:
		return 3
	case level >= 7:
		return 2
	case level >= 3:
		return 1
	default:
		return 0
	}
}
