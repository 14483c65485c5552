package convert

import (
	"fmt"
	"math"
)

// Divide computes floor(x / Divisor).
type Divide struct {
	Divisor float64
}

func (f Divide) Eval(x float64, _ *Input) (float64, error) {
	if f.Divisor == 0 {
		return 0, fmt.Errorf("divide: zero divisor")
	}
	return math.Floor(x / f.Divisor), nil
}

// Life computes floor(x / Divisor) + level * PerLevel, where level is the
// already converted LevelField.
type Life struct {
	Divisor    float64
	LevelField string
	PerLevel   float64
}

func (f Life) Eval(x float64, in *Input) (float64, error) {
	if f.Divisor == 0 {
		return 0, fmt.Errorf("life: zero divisor")
	}
	level, ok := in.Number(f.LevelField)
	if !ok {
		return 0, fmt.Errorf("life: %s must be converted first", f.LevelField)
	}
	return math.Floor(x/f.Divisor) + level*f.PerLevel, nil
}

// Attribute computes round(Base + Coeff * sqrt(max(0, (x - Offset) / Denom))).
type Attribute struct {
	Base   float64
	Coeff  float64
	Offset float64
	Denom  float64
}

func (f Attribute) Eval(x float64, _ *Input) (float64, error) {
	if f.Denom == 0 {
		return 0, fmt.Errorf("attribute: zero denominator")
	}
	scaled := math.Max(0, (x-f.Offset)/f.Denom)
	return math.Round(f.Base + f.Coeff*math.Sqrt(scaled)), nil
}

// Initiative computes the ratio (x - Offset) / Span, capped at 1, and scales
// it by Factor. The ratio is floored at 0 unless AllowNegative is set: monsters
// floor, NPCs keep negative initiative.
type Initiative struct {
	Offset        float64
	Span          float64
	Factor        float64
	AllowNegative bool
}

func (f Initiative) Eval(x float64, _ *Input) (float64, error) {
	if f.Span == 0 {
		return 0, fmt.Errorf("initiative: zero span")
	}
	ratio := math.Min(1, (x-f.Offset)/f.Span)
	if !f.AllowNegative {
		ratio = math.Max(0, ratio)
	}
	return math.Round(ratio * f.Factor), nil
}
