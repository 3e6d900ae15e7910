package calc

import (
	"fmt"
	"strings"
)

type Diet string

const (
	DietOmnivore   Diet = "omnivore"
	DietVegetarian Diet = "vegetarian"
	DietVegan      Diet = "vegan"
)

func ParseDiet(s string) (Diet, error) {
	d := Diet(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := proteinSources[d]; !ok {
		return "", fmt.Errorf("unknown diet: %s", s)
	}
	return d, nil
}

func (d *Diet) UnmarshalText(text []byte) error {
	if parsed, err := ParseDiet(string(text)); err == nil {
		*d = parsed
		return nil
	}
	*d = Diet(text)
	return nil
}

var proteinSources = map[Diet][]string{
	DietOmnivore:   {"Chicken breast", "Lean beef", "Salmon", "Eggs", "Greek yogurt", "Tuna"},
	DietVegetarian: {"Eggs", "Greek yogurt", "Cottage cheese", "Lentils", "Tofu", "Tempeh"},
	DietVegan:      {"Tofu", "Tempeh", "Lentils", "Chickpeas", "Seitan", "Edamame"},
}

var carbSources = map[Diet][]string{
	DietOmnivore:   {"Oats", "Brown rice", "Sweet potatoes", "Quinoa", "Fruit", "Whole grain bread"},
	DietVegetarian: {"Oats", "Brown rice", "Sweet potatoes", "Quinoa", "Fruit", "Beans"},
	DietVegan:      {"Oats", "Brown rice", "Sweet potatoes", "Quinoa", "Fruit", "Beans"},
}

var lowCarbSources = map[Diet][]string{
	DietOmnivore:   {"Leafy greens", "Broccoli", "Cauliflower", "Zucchini", "Berries"},
	DietVegetarian: {"Leafy greens", "Broccoli", "Cauliflower", "Zucchini", "Berries"},
	DietVegan:      {"Leafy greens", "Broccoli", "Cauliflower", "Zucchini", "Berries"},
}

var fatSources = map[Diet][]string{
	DietOmnivore:   {"Avocado", "Olive oil", "Nuts", "Fatty fish", "Eggs", "Cheese"},
	DietVegetarian: {"Avocado", "Olive oil", "Nuts", "Seeds", "Eggs", "Cheese"},
	DietVegan:      {"Avocado", "Olive oil", "Nuts", "Seeds", "Coconut", "Nut butter"},
}

// FoodSources returns suggested foods per macro for a preset and diet.
// Low carb presets get low carb vegetables instead of starches.
func FoodSources(preset MacroPreset, diet Diet) (map[Macro][]string, error) {
	protein, ok := proteinSources[diet]
	if !ok {
		return nil, newValidationError("diet", "unknown diet %q", diet)
	}

	carbs := carbSources[diet]
	if preset == PresetKeto || preset == PresetLowCarb {
		carbs = lowCarbSources[diet]
	}

	return map[Macro][]string{
		MacroProtein: copyStrings(protein),
		MacroCarbs:   copyStrings(carbs),
		MacroFat:     copyStrings(fatSources[diet]),
	}, nil
}
