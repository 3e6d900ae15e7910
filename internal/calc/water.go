package calc

import (
	"fmt"
	"math"
	"strings"
)

type Climate string

const (
	ClimateCold      Climate = "cold"
	ClimateTemperate Climate = "temperate"
	ClimateWarm      Climate = "warm"
	ClimateHot       Climate = "hot"
	ClimateVeryHot   Climate = "very_hot"
)

func ParseClimate(s string) (Climate, error) {
	c := Climate(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := waterClimateMultipliers[c]; !ok {
		return "", fmt.Errorf("unknown climate: %s", s)
	}
	return c, nil
}

func (c *Climate) UnmarshalText(text []byte) error {
	if parsed, err := ParseClimate(string(text)); err == nil {
		*c = parsed
		return nil
	}
	*c = Climate(text)
	return nil
}

var waterActivityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.0,
	ActivityLight:      1.1,
	ActivityModerate:   1.2,
	ActivityActive:     1.3,
	ActivityVeryActive: 1.4,
}

var waterClimateMultipliers = map[Climate]float64{
	ClimateCold:      0.9,
	ClimateTemperate: 1.0,
	ClimateWarm:      1.1,
	ClimateHot:       1.2,
	ClimateVeryHot:   1.3,
}

var waterGenderFactors = map[Gender]float64{
	GenderMale:   1.0,
	GenderFemale: 0.95,
}

const (
	waterBaseMlPerKg     = 35.0
	waterYouthMlPerKg    = 40.0
	waterSeniorMlPerKg   = 30.0
	waterYouthMaxAge     = 18
	waterSeniorMinAge    = 65
	pregnancyBonusMl     = 300.0
	breastfeedingBonusMl = 700.0
)

type timingShare struct {
	moment string
	pct    float64
}

var waterTiming = []timingShare{
	{moment: "waking", pct: 15},
	{moment: "preMeal", pct: 25},
	{moment: "exercise", pct: 30},
	{moment: "throughoutDay", pct: 25},
	{moment: "preBed", pct: 5},
}

type WaterInput struct {
	Weight        Measurement   `json:"weight"`
	Activity      ActivityLevel `json:"activity"`
	Climate       Climate       `json:"climate"`
	Age           int           `json:"age"`
	Gender        Gender        `json:"gender"`
	Pregnant      bool          `json:"pregnant"`
	Breastfeeding bool          `json:"breastfeeding"`
}

type WaterResult struct {
	BaseMlPerKg     float64            `json:"baseMlPerKg"`
	TotalMl         float64            `json:"totalMl"`
	Liters          float64            `json:"liters"`
	Ounces          float64            `json:"ounces"`
	Cups            float64            `json:"cups"`
	HourlyMl        float64            `json:"hourlyMl"`
	Timing          map[string]float64 `json:"timing"`
	Recommendations []string           `json:"recommendations"`
}

func EstimateWaterIntake(in WaterInput) (*WaterResult, error) {
	if err := in.Gender.validate(); err != nil {
		return nil, err
	}
	if err := validateAge(in.Age, 1, 120); err != nil {
		return nil, err
	}
	weightKg, err := in.Weight.ToKg("weight")
	if err != nil {
		return nil, err
	}
	if err := validateRange("weight", weightKg, 10, 400); err != nil {
		return nil, err
	}
	if in.Gender == GenderMale && (in.Pregnant || in.Breastfeeding) {
		return nil, newValidationError("gender", "pregnancy and breastfeeding only apply to female profiles")
	}

	activity := in.Activity
	if activity == "" {
		activity = ActivitySedentary
	}
	activityMultiplier, ok := waterActivityMultipliers[activity]
	if !ok {
		return nil, newValidationError("activity", "unknown activity level %q", in.Activity)
	}
	climate := in.Climate
	if climate == "" {
		climate = ClimateTemperate
	}
	climateMultiplier, ok := waterClimateMultipliers[climate]
	if !ok {
		return nil, newValidationError("climate", "unknown climate %q", in.Climate)
	}

	rate := WaterBaseRate(in.Age)
	totalMl := weightKg * rate * waterGenderFactors[in.Gender] * activityMultiplier * climateMultiplier
	// flat bonuses, independent of every multiplier
	if in.Pregnant {
		totalMl += pregnancyBonusMl
	}
	if in.Breastfeeding {
		totalMl += breastfeedingBonusMl
	}

	res := &WaterResult{
		BaseMlPerKg: rate,
		TotalMl:     math.Round(totalMl),
		Liters:      round(totalMl/mlPerLiter, 2),
		Ounces:      round1(totalMl / mlPerFluidOunce),
		Cups:        round1(totalMl / mlPerCup),
		HourlyMl:    math.Round(totalMl / wakingHoursADay),
		Timing:      make(map[string]float64, len(waterTiming)),
	}
	for _, t := range waterTiming {
		res.Timing[t.moment] = math.Round(totalMl * t.pct / percentDivisor)
	}

	res.Recommendations = append(res.Recommendations,
		fmt.Sprintf("Drink about %.0f ml per waking hour rather than large amounts at once.", res.HourlyMl),
	)
	if climate == ClimateHot || climate == ClimateVeryHot {
		res.Recommendations = append(res.Recommendations, "In hot weather add electrolytes during long outdoor activity.")
	}
	if in.Pregnant || in.Breastfeeding {
		res.Recommendations = append(res.Recommendations, "Pregnancy and breastfeeding raise fluid needs; follow your midwife or doctor's guidance.")
	}

	return res, nil
}

// WaterBaseRate is the ml per kg rate for an age.
func WaterBaseRate(age int) float64 {
	switch {
	case age <= waterYouthMaxAge:
		return waterYouthMlPerKg
	case age >= waterSeniorMinAge:
		return waterSeniorMlPerKg
	default:
		return waterBaseMlPerKg
	}
}

func (r *WaterResult) Summary() CalculationResult {
	breakdown := map[string]float64{
		"liters":   r.Liters,
		"ounces":   r.Ounces,
		"cups":     r.Cups,
		"hourlyMl": r.HourlyMl,
	}
	for k, v := range r.Timing {
		breakdown["timing."+k] = v
	}
	return CalculationResult{
		Calculator:      "water-intake",
		PrimaryValue:    r.TotalMl,
		Unit:            "ml/day",
		Breakdown:       breakdown,
		Recommendations: copyStrings(r.Recommendations),
	}
}
