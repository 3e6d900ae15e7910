package calc

import (
	"fmt"
	"strings"
)

type Frequency string

const (
	FrequencyDaily        Frequency = "daily"
	FrequencyFivePerWeek  Frequency = "five_per_week"
	FrequencyThreePerWeek Frequency = "three_per_week"
)

var sessionsPerWeek = map[Frequency]float64{
	FrequencyDaily:        7,
	FrequencyFivePerWeek:  5,
	FrequencyThreePerWeek: 3,
}

type foodEquivalent struct {
	name string
	kcal float64
}

var foodEquivalents = []foodEquivalent{
	{name: "apple", kcal: 95},
	{name: "banana", kcal: 105},
	{name: "can_of_soda", kcal: 140},
	{name: "chocolate_bar", kcal: 235},
	{name: "slice_of_pizza", kcal: 285},
}

type CalorieBurnInput struct {
	Weight Measurement `json:"weight"`
	// Activity is a MET table key; MET overrides it when set.
	Activity  string      `json:"activity"`
	MET       float64     `json:"met"`
	Duration  Measurement `json:"duration"`
	Frequency Frequency   `json:"frequency"`
}

type WeightLossProjection struct {
	Frequency      Frequency `json:"frequency"`
	WeeklyLbs      float64   `json:"weeklyLbs"`
	MonthlyLbs     float64   `json:"monthlyLbs"`
	YearlyLbs      float64   `json:"yearlyLbs"`
	WeeklyCalories float64   `json:"weeklyCalories"`
}

type CalorieBurnResult struct {
	Activity        string               `json:"activity"`
	MET             float64              `json:"met"`
	Intensity       Intensity            `json:"intensity"`
	Calories        float64              `json:"calories"`
	Per15Minutes    float64              `json:"per15Minutes"`
	Per30Minutes    float64              `json:"per30Minutes"`
	PerHour         float64              `json:"perHour"`
	FoodEquivalents map[string]float64   `json:"foodEquivalents"`
	Projection      WeightLossProjection `json:"projection"`
	HealthBenefits  []string             `json:"healthBenefits"`
}

// EstimateCaloriesBurned computes MET × kg × hours.
func EstimateCaloriesBurned(in CalorieBurnInput) (*CalorieBurnResult, error) {
	weightKg, err := in.Weight.ToKg("weight")
	if err != nil {
		return nil, err
	}
	if err := validateRange("weight", weightKg, 20, 400); err != nil {
		return nil, err
	}
	hours, err := in.Duration.ToHours("duration")
	if err != nil {
		return nil, err
	}
	if err := validateRange("duration", HoursToMinutes(hours), 1, 24*minutesPerHour); err != nil {
		return nil, err
	}

	activityName := strings.TrimSpace(in.Activity)
	met := in.MET
	if met != 0 {
		if err := validateRange("met", met, 1, 25); err != nil {
			return nil, err
		}
		if activityName == "" {
			activityName = "custom"
		}
	} else {
		activity, ok := LookupActivity(activityName)
		if !ok {
			return nil, newValidationError("activity", "unknown activity %q", in.Activity)
		}
		met = activity.MET
		activityName = activity.Name
	}

	frequency := in.Frequency
	if frequency == "" {
		frequency = FrequencyThreePerWeek
	}
	sessions, ok := sessionsPerWeek[frequency]
	if !ok {
		return nil, newValidationError("frequency", "unknown frequency %q", in.Frequency)
	}

	perHour := met * weightKg
	calories := perHour * hours
	intensity := IntensityForMET(met)

	weeklyCalories := calories * sessions
	weeklyLbs := weeklyCalories / kcalPerPoundFat

	res := &CalorieBurnResult{
		Activity:        activityName,
		MET:             met,
		Intensity:       intensity,
		Calories:        round1(calories),
		Per15Minutes:    round1(perHour / 4),
		Per30Minutes:    round1(perHour / 2),
		PerHour:         round1(perHour),
		FoodEquivalents: make(map[string]float64, len(foodEquivalents)),
		Projection: WeightLossProjection{
			Frequency:      frequency,
			WeeklyCalories: round1(weeklyCalories),
			WeeklyLbs:      round(weeklyLbs, 2),
			MonthlyLbs:     round(weeklyLbs*weeksPerYear/monthsPerYear, 2),
			YearlyLbs:      round(weeklyLbs*weeksPerYear, 2),
		},
		HealthBenefits: HealthBenefits(intensity, HoursToMinutes(hours)),
	}

	for _, food := range foodEquivalents {
		res.FoodEquivalents[food.name] = round1(calories / food.kcal)
	}

	return res, nil
}

// HealthBenefits picks canned benefit texts for an intensity and session length.
func HealthBenefits(intensity Intensity, minutes float64) []string {
	var benefits []string
	switch intensity {
	case IntensityLight:
		benefits = append(benefits,
			"Improves circulation and joint mobility.",
			"Helps with stress relief and recovery.",
		)
	case IntensityModerate:
		benefits = append(benefits,
			"Strengthens the heart and improves endurance.",
			"Helps regulate blood sugar and blood pressure.",
		)
	case IntensityVigorous:
		benefits = append(benefits,
			"Significantly improves cardiovascular fitness (VO2 max).",
			"Burns a high number of calories in a short time.",
		)
	}

	switch {
	case minutes >= 60:
		benefits = append(benefits, "Sessions of an hour or more build substantial aerobic endurance.")
	case minutes >= 30:
		benefits = append(benefits, "30 minutes or more counts toward the weekly 150 minute activity guideline.")
	default:
		benefits = append(benefits, fmt.Sprintf(
			"Short sessions still count; try extending to 30 minutes (currently %.0f).", minutes,
		))
	}

	return benefits
}

func (r *CalorieBurnResult) Summary() CalculationResult {
	breakdown := map[string]float64{
		"met":          r.MET,
		"per15Minutes": r.Per15Minutes,
		"per30Minutes": r.Per30Minutes,
		"perHour":      r.PerHour,
		"weeklyLbs":    r.Projection.WeeklyLbs,
		"monthlyLbs":   r.Projection.MonthlyLbs,
		"yearlyLbs":    r.Projection.YearlyLbs,
	}
	return CalculationResult{
		Calculator:      "calories-burned",
		PrimaryValue:    r.Calories,
		Unit:            "kcal",
		Category:        string(r.Intensity),
		Breakdown:       breakdown,
		Recommendations: copyStrings(r.HealthBenefits),
	}
}
