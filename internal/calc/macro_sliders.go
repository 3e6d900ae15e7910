package calc

import (
	"fmt"
	"math"
)

type Macro string

const (
	MacroProtein Macro = "protein"
	MacroCarbs   Macro = "carbs"
	MacroFat     Macro = "fat"
)

type SliderBounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

var macroSliderBounds = map[Macro]SliderBounds{
	MacroProtein: {Min: 10, Max: 50},
	MacroCarbs:   {Min: 5, Max: 65},
	MacroFat:     {Min: 15, Max: 70},
}

func MacroSliderBounds() map[Macro]SliderBounds {
	bounds := make(map[Macro]SliderBounds, len(macroSliderBounds))
	for k, v := range macroSliderBounds {
		bounds[k] = v
	}
	return bounds
}

func (r MacroRatio) get(m Macro) int {
	switch m {
	case MacroProtein:
		return r.Protein
	case MacroCarbs:
		return r.Carbs
	default:
		return r.Fat
	}
}

func (r *MacroRatio) set(m Macro, v int) {
	switch m {
	case MacroProtein:
		r.Protein = v
	case MacroCarbs:
		r.Carbs = v
	default:
		r.Fat = v
	}
}

// others returns the two macros that absorb a slider move, in a fixed order.
func others(m Macro) (Macro, Macro, error) {
	switch m {
	case MacroProtein:
		return MacroCarbs, MacroFat, nil
	case MacroCarbs:
		return MacroProtein, MacroFat, nil
	case MacroFat:
		return MacroProtein, MacroCarbs, nil
	default:
		return "", "", newValidationError("macro", "unknown macro %q", m)
	}
}

// ValidateMacroRatio checks that a custom ratio sums to 100 and each part
// is within its slider bounds.
func ValidateMacroRatio(r MacroRatio) error {
	if r.Sum() != 100 {
		return newValidationError("custom", "protein, carbs and fat must add up to 100%%, got %d%%", r.Sum())
	}
	for _, m := range []Macro{MacroProtein, MacroCarbs, MacroFat} {
		b := macroSliderBounds[m]
		if v := r.get(m); v < b.Min || v > b.Max {
			return newValidationError(string(m), "must be between %d%% and %d%%", b.Min, b.Max)
		}
	}
	return nil
}

// RebalanceMacros moves one slider to value and rescales the other two
// proportionally so that the total stays exactly 100. Rounding goes to the
// first of the other two, the second takes whatever is left, so there is no
// drift across repeated moves.
func RebalanceMacros(current MacroRatio, moved Macro, value int) (MacroRatio, error) {
	a, b, err := others(moved)
	if err != nil {
		return MacroRatio{}, err
	}
	boundsMoved := macroSliderBounds[moved]
	boundsA := macroSliderBounds[a]
	boundsB := macroSliderBounds[b]

	// the moved slider can't take so much (or so little) that the others
	// would have to leave their bounds
	lo := max(boundsMoved.Min, 100-boundsA.Max-boundsB.Max)
	hi := min(boundsMoved.Max, 100-boundsA.Min-boundsB.Min)
	if lo > hi {
		return MacroRatio{}, fmt.Errorf("slider bounds for %s are not satisfiable", moved)
	}
	value = clampInt(value, lo, hi)

	remainder := 100 - value
	prevA, prevB := current.get(a), current.get(b)

	var newA int
	if prevA+prevB <= 0 {
		newA = remainder / 2
	} else {
		newA = int(math.Round(float64(remainder) * float64(prevA) / float64(prevA+prevB)))
	}
	newA = clampInt(
		newA,
		max(boundsA.Min, remainder-boundsB.Max),
		min(boundsA.Max, remainder-boundsB.Min),
	)

	var res MacroRatio
	res.set(moved, value)
	res.set(a, newA)
	res.set(b, remainder-newA)

	return res, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
