package calc

import "math"

const (
	BodyFatEssential = "Essential Fat"
	BodyFatAthletes  = "Athletes"
	BodyFatFitness   = "Fitness"
	BodyFatAverage   = "Average"
	BodyFatObese     = "Obese"
)

type BodyFatInput struct {
	Profile
	Height Measurement `json:"height"`
	Neck   Measurement `json:"neck"`
	Waist  Measurement `json:"waist"`
	// Hip is only used (and required) for female subjects.
	Hip Measurement `json:"hip"`
	// Weight is optional, fat/lean mass is left at zero without it.
	Weight Measurement `json:"weight"`
}

type Profile struct {
	Age    int    `json:"age"`
	Gender Gender `json:"gender"`
}

type BodyFatResult struct {
	Percentage      float64  `json:"percentage"`
	Category        string   `json:"category"`
	RiskTier        string   `json:"riskTier"`
	FatMassKg       float64  `json:"fatMassKg"`
	LeanMassKg      float64  `json:"leanMassKg"`
	Recommendations []string `json:"recommendations"`
}

// bodyFatBand holds inclusive upper bounds (percent) for each category,
// anything above average is obese.
type bodyFatBand struct {
	minAge    int
	essential float64
	athletes  float64
	fitness   float64
	average   float64
}

// ordered by minAge descending, first band with age >= minAge wins
var bodyFatBands = map[Gender][]bodyFatBand{
	GenderMale: {
		{minAge: 50, essential: 5, athletes: 16, fitness: 21, average: 28},
		{minAge: 30, essential: 5, athletes: 14, fitness: 19, average: 26},
		{minAge: 0, essential: 5, athletes: 13, fitness: 18, average: 25},
	},
	GenderFemale: {
		{minAge: 50, essential: 13, athletes: 23, fitness: 28, average: 35},
		{minAge: 30, essential: 13, athletes: 21, fitness: 26, average: 33},
		{minAge: 0, essential: 13, athletes: 20, fitness: 25, average: 32},
	},
}

var bodyFatRiskTiers = map[string]string{
	BodyFatEssential: "Elevated",
	BodyFatAthletes:  "Low",
	BodyFatFitness:   "Low",
	BodyFatAverage:   "Moderate",
	BodyFatObese:     "High",
}

var bodyFatRecommendations = map[string][]string{
	BodyFatEssential: {
		"Your body fat is at the essential minimum, which can affect hormones and immunity.",
		"Consider increasing calorie intake with nutrient dense foods.",
		"Talk to a healthcare provider if you are not training for a specific event.",
	},
	BodyFatAthletes: {
		"Your body fat is in the athletic range.",
		"Keep up adequate protein intake to support recovery.",
	},
	BodyFatFitness: {
		"Your body fat is in a fit, healthy range.",
		"Maintain a mix of strength and cardio training.",
	},
	BodyFatAverage: {
		"Your body fat is in the average range.",
		"Regular exercise and a modest calorie deficit can move you toward the fitness range.",
	},
	BodyFatObese: {
		"Your body fat is above the healthy range, which raises cardiovascular and metabolic risk.",
		"Aim for a sustainable calorie deficit of 250-500 kcal per day.",
		"Consider talking to a healthcare provider about a weight management plan.",
	},
}

// EstimateBodyFat applies the US Navy circumference method.
func EstimateBodyFat(in BodyFatInput) (*BodyFatResult, error) {
	if err := in.Gender.validate(); err != nil {
		return nil, err
	}
	if err := validateAge(in.Age, 18, 120); err != nil {
		return nil, err
	}

	height, err := in.Height.ToInches("height")
	if err != nil {
		return nil, err
	}
	neck, err := in.Neck.ToInches("neck")
	if err != nil {
		return nil, err
	}
	waist, err := in.Waist.ToInches("waist")
	if err != nil {
		return nil, err
	}

	var pct float64
	switch in.Gender {
	case GenderMale:
		if waist <= neck {
			return nil, newValidationError("waist", "must be larger than neck circumference")
		}
		pct = 86.010*math.Log10(waist-neck) - 70.041*math.Log10(height) + 36.76
	case GenderFemale:
		hip, err := in.Hip.ToInches("hip")
		if err != nil {
			return nil, err
		}
		if waist+hip <= neck {
			return nil, newValidationError("waist", "waist plus hip must be larger than neck circumference")
		}
		pct = 163.205*math.Log10(waist+hip-neck) - 97.684*math.Log10(height) - 78.387
	}

	if pct <= 0 || pct >= 100 {
		return nil, newValidationError("", "measurements do not produce a plausible body fat percentage")
	}

	category := BodyFatCategory(in.Gender, in.Age, pct)
	res := &BodyFatResult{
		Percentage:      round1(pct),
		Category:        category,
		RiskTier:        bodyFatRiskTiers[category],
		Recommendations: copyStrings(bodyFatRecommendations[category]),
	}

	if in.Weight.Value != 0 {
		weightKg, err := in.Weight.ToKg("weight")
		if err != nil {
			return nil, err
		}
		fatMass := weightKg * pct / percentDivisor
		res.FatMassKg = round1(fatMass)
		res.LeanMassKg = round1(weightKg - fatMass)
	}

	return res, nil
}

// BodyFatCategory returns the first category whose upper bound is not exceeded.
func BodyFatCategory(gender Gender, age int, pct float64) string {
	bands, ok := bodyFatBands[gender]
	if !ok {
		return ""
	}

	band := bands[len(bands)-1]
	for _, b := range bands {
		if age >= b.minAge {
			band = b
			break
		}
	}

	switch {
	case pct <= band.essential:
		return BodyFatEssential
	case pct <= band.athletes:
		return BodyFatAthletes
	case pct <= band.fitness:
		return BodyFatFitness
	case pct <= band.average:
		return BodyFatAverage
	default:
		return BodyFatObese
	}
}

func (r *BodyFatResult) Summary() CalculationResult {
	return CalculationResult{
		Calculator:   "body-fat",
		PrimaryValue: r.Percentage,
		Unit:         "%",
		Category:     r.Category,
		RiskTier:     r.RiskTier,
		Breakdown: map[string]float64{
			"fatMassKg":  r.FatMassKg,
			"leanMassKg": r.LeanMassKg,
		},
		Recommendations: copyStrings(r.Recommendations),
	}
}
