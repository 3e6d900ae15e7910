package calc

import (
	"fmt"
	"math"
	"strings"
)

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

func ParseActivityLevel(s string) (ActivityLevel, error) {
	a := ActivityLevel(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := tdeeActivityMultipliers[a]; !ok {
		return "", fmt.Errorf("unknown activity level: %s", s)
	}
	return a, nil
}

func (a *ActivityLevel) UnmarshalText(text []byte) error {
	if parsed, err := ParseActivityLevel(string(text)); err == nil {
		*a = parsed
		return nil
	}
	*a = ActivityLevel(text)
	return nil
}

var tdeeActivityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

type Goal string

const (
	GoalLoseFast Goal = "lose_fast"
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
	GoalGainFast Goal = "gain_fast"
)

var goalCalorieDeltas = map[Goal]float64{
	GoalLoseFast: -500,
	GoalLose:     -250,
	GoalMaintain: 0,
	GoalGain:     250,
	GoalGainFast: 500,
}

type MacroPreset string

const (
	PresetBalanced    MacroPreset = "balanced"
	PresetLowCarb     MacroPreset = "low_carb"
	PresetHighProtein MacroPreset = "high_protein"
	PresetKeto        MacroPreset = "keto"
	PresetLowFat      MacroPreset = "low_fat"
	PresetEndurance   MacroPreset = "endurance"
	PresetCustom      MacroPreset = "custom"
)

// MacroRatio holds whole percentages of total calories.
type MacroRatio struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

func (r MacroRatio) Sum() int {
	return r.Protein + r.Carbs + r.Fat
}

var macroPresets = map[MacroPreset]MacroRatio{
	PresetBalanced:    {Protein: 30, Carbs: 40, Fat: 30},
	PresetLowCarb:     {Protein: 40, Carbs: 20, Fat: 40},
	PresetHighProtein: {Protein: 40, Carbs: 30, Fat: 30},
	PresetKeto:        {Protein: 30, Carbs: 5, Fat: 65},
	PresetLowFat:      {Protein: 30, Carbs: 50, Fat: 20},
	PresetEndurance:   {Protein: 20, Carbs: 60, Fat: 20},
}

// MacroPresets returns a copy of the preset table.
func MacroPresets() map[MacroPreset]MacroRatio {
	presets := make(map[MacroPreset]MacroRatio, len(macroPresets))
	for k, v := range macroPresets {
		presets[k] = v
	}
	return presets
}

const (
	kcalPerGramProtein = 4.0
	kcalPerGramCarbs   = 4.0
	kcalPerGramFat     = 9.0
	minCaloriesFemale  = 1200.0
	minCaloriesMale    = 1500.0
)

type Meal string

const (
	MealBreakfast Meal = "breakfast"
	MealLunch     Meal = "lunch"
	MealDinner    Meal = "dinner"
	MealSnacks    Meal = "snacks"
)

var mealOrder = []Meal{MealBreakfast, MealLunch, MealDinner, MealSnacks}

type mealShares struct {
	calories float64
	protein  float64
	carbs    float64
	fat      float64
}

var mealDistribution = map[Meal]mealShares{
	MealBreakfast: {calories: 25, protein: 25, carbs: 30, fat: 20},
	MealLunch:     {calories: 30, protein: 30, carbs: 30, fat: 30},
	MealDinner:    {calories: 30, protein: 30, carbs: 25, fat: 35},
	MealSnacks:    {calories: 15, protein: 15, carbs: 15, fat: 15},
}

type MacroInput struct {
	Weight   Measurement   `json:"weight"`
	Height   Measurement   `json:"height"`
	Age      int           `json:"age"`
	Gender   Gender        `json:"gender"`
	Activity ActivityLevel `json:"activity"`
	Goal     Goal          `json:"goal"`
	Preset   MacroPreset   `json:"preset"`
	// Custom is only read when Preset is custom.
	Custom MacroRatio `json:"custom"`
	Diet   Diet       `json:"diet"`
}

type MacroAmounts struct {
	ProteinGrams    float64 `json:"proteinGrams"`
	CarbsGrams      float64 `json:"carbsGrams"`
	FatGrams        float64 `json:"fatGrams"`
	ProteinCalories float64 `json:"proteinCalories"`
	CarbsCalories   float64 `json:"carbsCalories"`
	FatCalories     float64 `json:"fatCalories"`
}

type MealPlan struct {
	Meal         Meal    `json:"meal"`
	Calories     float64 `json:"calories"`
	ProteinGrams float64 `json:"proteinGrams"`
	CarbsGrams   float64 `json:"carbsGrams"`
	FatGrams     float64 `json:"fatGrams"`
}

type MacroResult struct {
	BMR             float64            `json:"bmr"`
	TDEE            float64            `json:"tdee"`
	TargetCalories  float64            `json:"targetCalories"`
	Preset          MacroPreset        `json:"preset"`
	Ratio           MacroRatio         `json:"ratio"`
	Macros          MacroAmounts       `json:"macros"`
	Meals           []MealPlan         `json:"meals"`
	FoodSources     map[Macro][]string `json:"foodSources"`
	Recommendations []string           `json:"recommendations"`
}

// BMR computes the Mifflin-St Jeor basal metabolic rate in kcal/day.
func BMR(weightKg, heightCm float64, age int, gender Gender) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == GenderMale {
		return bmr + 5
	}
	return bmr - 161
}

func EstimateMacros(in MacroInput) (*MacroResult, error) {
	if err := in.Gender.validate(); err != nil {
		return nil, err
	}
	if err := validateAge(in.Age, 15, 100); err != nil {
		return nil, err
	}
	weightKg, err := in.Weight.ToKg("weight")
	if err != nil {
		return nil, err
	}
	if err := validateRange("weight", weightKg, 20, 400); err != nil {
		return nil, err
	}
	heightCm, err := in.Height.ToCm("height")
	if err != nil {
		return nil, err
	}
	if err := validateRange("height", heightCm, 100, 250); err != nil {
		return nil, err
	}

	activity := in.Activity
	if activity == "" {
		activity = ActivitySedentary
	}
	multiplier, ok := tdeeActivityMultipliers[activity]
	if !ok {
		return nil, newValidationError("activity", "unknown activity level %q", in.Activity)
	}

	goal := in.Goal
	if goal == "" {
		goal = GoalMaintain
	}
	delta, ok := goalCalorieDeltas[goal]
	if !ok {
		return nil, newValidationError("goal", "unknown goal %q", in.Goal)
	}

	preset := in.Preset
	if preset == "" {
		preset = PresetBalanced
	}
	ratio, err := resolveMacroRatio(preset, in.Custom)
	if err != nil {
		return nil, err
	}

	diet := in.Diet
	if diet == "" {
		diet = DietOmnivore
	}
	foodSources, err := FoodSources(preset, diet)
	if err != nil {
		return nil, err
	}

	bmr := BMR(weightKg, heightCm, in.Age, in.Gender)
	tdee := bmr * multiplier
	target := tdee + delta
	if target <= 0 {
		return nil, newValidationError(
			"goal",
			"a %.0f kcal daily target is not possible, choose a milder goal", target,
		)
	}

	proteinKcal := target * float64(ratio.Protein) / percentDivisor
	carbsKcal := target * float64(ratio.Carbs) / percentDivisor
	fatKcal := target * float64(ratio.Fat) / percentDivisor
	proteinG := proteinKcal / kcalPerGramProtein
	carbsG := carbsKcal / kcalPerGramCarbs
	fatG := fatKcal / kcalPerGramFat

	res := &MacroResult{
		BMR:            math.Round(bmr),
		TDEE:           math.Round(tdee),
		TargetCalories: math.Round(target),
		Preset:         preset,
		Ratio:          ratio,
		Macros: MacroAmounts{
			ProteinGrams:    math.Round(proteinG),
			CarbsGrams:      math.Round(carbsG),
			FatGrams:        math.Round(fatG),
			ProteinCalories: math.Round(proteinKcal),
			CarbsCalories:   math.Round(carbsKcal),
			FatCalories:     math.Round(fatKcal),
		},
		FoodSources: foodSources,
	}

	for _, meal := range mealOrder {
		shares := mealDistribution[meal]
		res.Meals = append(res.Meals, MealPlan{
			Meal:         meal,
			Calories:     math.Round(target * shares.calories / percentDivisor),
			ProteinGrams: math.Round(proteinG * shares.protein / percentDivisor),
			CarbsGrams:   math.Round(carbsG * shares.carbs / percentDivisor),
			FatGrams:     math.Round(fatG * shares.fat / percentDivisor),
		})
	}

	res.Recommendations = macroRecommendations(goal, in.Gender, target)

	return res, nil
}

func resolveMacroRatio(preset MacroPreset, custom MacroRatio) (MacroRatio, error) {
	if preset == PresetCustom {
		if err := ValidateMacroRatio(custom); err != nil {
			return MacroRatio{}, err
		}
		return custom, nil
	}
	ratio, ok := macroPresets[preset]
	if !ok {
		return MacroRatio{}, newValidationError("preset", "unknown macro preset %q", preset)
	}
	return ratio, nil
}

func macroRecommendations(goal Goal, gender Gender, target float64) []string {
	var recs []string
	switch goal {
	case GoalLoseFast, GoalLose:
		recs = append(recs, "Keep protein high while in a deficit to preserve lean mass.")
	case GoalGain, GoalGainFast:
		recs = append(recs, "Pair the surplus with resistance training so the gain is mostly muscle.")
	default:
		recs = append(recs, "Eat at maintenance and adjust after two weeks based on the scale trend.")
	}

	floor := minCaloriesMale
	if gender == GenderFemale {
		floor = minCaloriesFemale
	}
	if target < floor {
		recs = append(recs, fmt.Sprintf(
			"Target of %.0f kcal is below the %.0f kcal minimum usually advised without medical supervision.",
			target, floor,
		))
	}

	return recs
}

func (r *MacroResult) Summary() CalculationResult {
	return CalculationResult{
		Calculator:   "macros",
		PrimaryValue: r.TargetCalories,
		Unit:         "kcal/day",
		Category:     string(r.Preset),
		Breakdown: map[string]float64{
			"bmr":          r.BMR,
			"tdee":         r.TDEE,
			"proteinGrams": r.Macros.ProteinGrams,
			"carbsGrams":   r.Macros.CarbsGrams,
			"fatGrams":     r.Macros.FatGrams,
		},
		Recommendations: copyStrings(r.Recommendations),
	}
}
