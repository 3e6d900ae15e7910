package calc

import (
	"fmt"
	"math"
	"strings"
)

type IdealWeightFormula string

const (
	FormulaDevine   IdealWeightFormula = "devine"
	FormulaRobinson IdealWeightFormula = "robinson"
	FormulaMiller   IdealWeightFormula = "miller"
	FormulaHamwi    IdealWeightFormula = "hamwi"
	FormulaBroca    IdealWeightFormula = "broca"
	FormulaBMI      IdealWeightFormula = "bmi"
)

// IdealWeightFormulas in the order they are usually presented.
var IdealWeightFormulas = []IdealWeightFormula{
	FormulaDevine,
	FormulaRobinson,
	FormulaMiller,
	FormulaHamwi,
	FormulaBroca,
	FormulaBMI,
}

func ParseIdealWeightFormula(s string) (IdealWeightFormula, error) {
	f := IdealWeightFormula(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range IdealWeightFormulas {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown ideal weight formula: %s", s)
}

// UnmarshalText accepts formula names in any case. Unknown names are kept
// and rejected by EstimateIdealWeight.
func (f *IdealWeightFormula) UnmarshalText(text []byte) error {
	if parsed, err := ParseIdealWeightFormula(string(text)); err == nil {
		*f = parsed
		return nil
	}
	*f = IdealWeightFormula(text)
	return nil
}

const (
	WeightAtIdeal             = "At Ideal Weight"
	WeightSlightlyAbove       = "Slightly Above"
	WeightModeratelyAbove     = "Moderately Above"
	WeightSignificantlyAbove  = "Significantly Above"
	WeightSlightlyBelow       = "Slightly Below"
	WeightSignificantlyBelow  = "Significantly Below"
	healthyBMILow             = 18.5
	healthyBMIHigh            = 24.9
	targetBMI                 = 22.0
	idealWeightBaseInches     = 60.0
	idealWeightToleranceKg    = 2.0
	idealWeightSlightMarginKg = 5.0
	idealWeightModerateMargin = 10.0
)

// linear formula coefficients, kg = intercept + slope * inches over 5 ft
type linearCoefficients struct {
	intercept float64
	slope     float64
}

var linearIdealWeightFormulas = map[IdealWeightFormula]map[Gender]linearCoefficients{
	FormulaDevine: {
		GenderMale:   {intercept: 50, slope: 2.3},
		GenderFemale: {intercept: 45.5, slope: 2.3},
	},
	FormulaRobinson: {
		GenderMale:   {intercept: 52, slope: 1.9},
		GenderFemale: {intercept: 49, slope: 1.7},
	},
	FormulaMiller: {
		GenderMale:   {intercept: 56.2, slope: 1.41},
		GenderFemale: {intercept: 53.1, slope: 1.36},
	},
	FormulaHamwi: {
		GenderMale:   {intercept: 48, slope: 2.7},
		GenderFemale: {intercept: 45.5, slope: 2.2},
	},
}

var brocaFactors = map[Gender]float64{
	GenderMale:   0.9,
	GenderFemale: 0.85,
}

var idealWeightRecommendations = map[string][]string{
	WeightAtIdeal: {
		"You are within 2 kg of your ideal weight.",
		"Focus on maintaining your current habits.",
	},
	WeightSlightlyAbove: {
		"You are slightly above your ideal weight.",
		"Small changes such as daily walks and fewer sugary drinks are usually enough.",
	},
	WeightModeratelyAbove: {
		"You are moderately above your ideal weight.",
		"A calorie deficit of around 250-500 kcal per day and regular exercise is recommended.",
	},
	WeightSignificantlyAbove: {
		"You are significantly above your ideal weight.",
		"Consider a structured plan with a healthcare provider or dietitian.",
	},
	WeightSlightlyBelow: {
		"You are slightly below your ideal weight.",
		"Adding a balanced snack or two per day can help close the gap.",
	},
	WeightSignificantlyBelow: {
		"You are significantly below your ideal weight.",
		"Consider talking to a healthcare provider to rule out underlying issues.",
	},
}

type IdealWeightInput struct {
	Height  Measurement        `json:"height"`
	Gender  Gender             `json:"gender"`
	Formula IdealWeightFormula `json:"formula"`
	// CurrentWeight is optional, the comparison is skipped when zero.
	CurrentWeight Measurement `json:"currentWeight"`
}

type WeightRange struct {
	MinKg float64 `json:"minKg"`
	MaxKg float64 `json:"maxKg"`
}

type WeightComparison struct {
	CurrentKg       float64  `json:"currentKg"`
	DifferenceKg    float64  `json:"differenceKg"`
	Band            string   `json:"band"`
	Recommendations []string `json:"recommendations"`
}

type IdealWeightResult struct {
	Formula      IdealWeightFormula `json:"formula"`
	IdealKg      float64            `json:"idealKg"`
	IdealLbs     float64            `json:"idealLbs"`
	HealthyRange WeightRange        `json:"healthyRange"`
	Comparison   *WeightComparison  `json:"comparison,omitempty"`
}

func EstimateIdealWeight(in IdealWeightInput) (*IdealWeightResult, error) {
	if err := in.Gender.validate(); err != nil {
		return nil, err
	}
	heightCm, err := in.Height.ToCm("height")
	if err != nil {
		return nil, err
	}
	if err := validateRange("height", heightCm, 100, 250); err != nil {
		return nil, err
	}

	formula := in.Formula
	if formula == "" {
		formula = FormulaDevine
	}
	idealKg, err := idealWeightKg(formula, in.Gender, heightCm)
	if err != nil {
		return nil, err
	}

	res := &IdealWeightResult{
		Formula:      formula,
		IdealKg:      round1(idealKg),
		IdealLbs:     round1(KgToLbs(idealKg)),
		HealthyRange: HealthyWeightRange(heightCm),
	}

	if in.CurrentWeight.Value != 0 {
		currentKg, err := in.CurrentWeight.ToKg("currentWeight")
		if err != nil {
			return nil, err
		}
		if err := validateRange("currentWeight", currentKg, 20, 400); err != nil {
			return nil, err
		}
		diff := currentKg - idealKg
		band := WeightDifferenceBand(diff)
		res.Comparison = &WeightComparison{
			CurrentKg:       round1(currentKg),
			DifferenceKg:    round1(diff),
			Band:            band,
			Recommendations: copyStrings(idealWeightRecommendations[band]),
		}
	}

	return res, nil
}

// AllIdealWeights evaluates every formula for the same height, keyed by formula.
func AllIdealWeights(height Measurement, gender Gender) (map[IdealWeightFormula]float64, error) {
	weights := make(map[IdealWeightFormula]float64, len(IdealWeightFormulas))
	for _, f := range IdealWeightFormulas {
		res, err := EstimateIdealWeight(IdealWeightInput{
			Height:  height,
			Gender:  gender,
			Formula: f,
		})
		if err != nil {
			return nil, err
		}
		weights[f] = res.IdealKg
	}
	return weights, nil
}

func idealWeightKg(formula IdealWeightFormula, gender Gender, heightCm float64) (float64, error) {
	switch formula {
	case FormulaDevine, FormulaRobinson, FormulaMiller, FormulaHamwi:
		c := linearIdealWeightFormulas[formula][gender]
		inchesOver := math.Max(0, CmToInches(heightCm)-idealWeightBaseInches)
		return c.intercept + c.slope*inchesOver, nil
	case FormulaBroca:
		return (heightCm - 100) * brocaFactors[gender], nil
	case FormulaBMI:
		m := heightCm / 100
		return targetBMI * m * m, nil
	default:
		return 0, newValidationError("formula", "unknown formula %q", formula)
	}
}

// HealthyWeightRange is the weight band matching BMI 18.5-24.9 for the given height.
func HealthyWeightRange(heightCm float64) WeightRange {
	m := heightCm / 100
	return WeightRange{
		MinKg: round1(healthyBMILow * m * m),
		MaxKg: round1(healthyBMIHigh * m * m),
	}
}

// WeightDifferenceBand buckets current minus ideal weight (kg).
func WeightDifferenceBand(diffKg float64) string {
	switch {
	case math.Abs(diffKg) <= idealWeightToleranceKg:
		return WeightAtIdeal
	case diffKg > idealWeightModerateMargin:
		return WeightSignificantlyAbove
	case diffKg > idealWeightSlightMarginKg:
		return WeightModeratelyAbove
	case diffKg > 0:
		return WeightSlightlyAbove
	case diffKg >= -idealWeightSlightMarginKg:
		return WeightSlightlyBelow
	default:
		return WeightSignificantlyBelow
	}
}

func (r *IdealWeightResult) Summary() CalculationResult {
	s := CalculationResult{
		Calculator:   "ideal-weight",
		PrimaryValue: r.IdealKg,
		Unit:         "kg",
		Category:     string(r.Formula),
		Breakdown: map[string]float64{
			"idealLbs":     r.IdealLbs,
			"healthyMinKg": r.HealthyRange.MinKg,
			"healthyMaxKg": r.HealthyRange.MaxKg,
		},
	}
	if r.Comparison != nil {
		s.Category = r.Comparison.Band
		s.Breakdown["currentKg"] = r.Comparison.CurrentKg
		s.Breakdown["differenceKg"] = r.Comparison.DifferenceKg
		s.Recommendations = copyStrings(r.Comparison.Recommendations)
	}
	return s
}
