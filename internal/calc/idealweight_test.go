package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateIdealWeight_Formulas(t *testing.T) {
	height := Measurement{Value: 70, Unit: UnitInches}
	expected := map[IdealWeightFormula]float64{
		FormulaDevine:   73.0,
		FormulaRobinson: 71.0,
		FormulaMiller:   70.3,
		FormulaHamwi:    75.0,
		FormulaBroca:    70.0,
		FormulaBMI:      69.5,
	}

	for formula, expectedKg := range expected {
		t.Run(string(formula), func(t *testing.T) {
			res, err := EstimateIdealWeight(IdealWeightInput{
				Height:  height,
				Gender:  GenderMale,
				Formula: formula,
			})
			require.NoError(t, err)
			assert.Equal(t, formula, res.Formula)
			assert.InDelta(t, expectedKg, res.IdealKg, 0.001)
			assert.InDelta(t, KgToLbs(expectedKg), res.IdealLbs, 0.2)
			assert.Equal(t, WeightRange{MinKg: 58.5, MaxKg: 78.7}, res.HealthyRange)
			assert.Nil(t, res.Comparison)
		})
	}
}

func TestEstimateIdealWeight_FeetAndInches(t *testing.T) {
	res, err := EstimateIdealWeight(IdealWeightInput{
		Height:  Measurement{Value: 5, Unit: UnitFtIn, Inches: 10},
		Gender:  GenderMale,
		Formula: FormulaDevine,
	})
	require.NoError(t, err)
	assert.InDelta(t, 73.0, res.IdealKg, 0.001)
	assert.Equal(t, WeightRange{MinKg: 58.5, MaxKg: 78.7}, res.HealthyRange)

	_, err = EstimateIdealWeight(IdealWeightInput{
		Height: Measurement{Value: 5, Unit: UnitFtIn, Inches: -1},
		Gender: GenderMale,
	})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "height", vErr.Field)
}

func TestEstimateIdealWeight_DefaultsToDevine(t *testing.T) {
	res, err := EstimateIdealWeight(IdealWeightInput{
		Height: Measurement{Value: 165, Unit: UnitCm},
		Gender: GenderFemale,
	})
	require.NoError(t, err)
	assert.Equal(t, FormulaDevine, res.Formula)
	assert.InDelta(t, 56.9, res.IdealKg, 0.001)
	assert.Equal(t, WeightRange{MinKg: 50.4, MaxKg: 67.8}, res.HealthyRange)
}

func TestEstimateIdealWeight_ShortHeightDoesNotGoBelowBase(t *testing.T) {
	// below five feet the linear formulas stay at their intercept
	res, err := EstimateIdealWeight(IdealWeightInput{
		Height:  Measurement{Value: 140, Unit: UnitCm},
		Gender:  GenderMale,
		Formula: FormulaDevine,
	})
	require.NoError(t, err)
	assert.InDelta(t, 50.0, res.IdealKg, 0.001)
}

func TestEstimateIdealWeight_Comparison(t *testing.T) {
	for caseName, tc := range map[string]struct {
		currentKg    float64
		expectedBand string
	}{
		"at-ideal":            {currentKg: 74.5, expectedBand: WeightAtIdeal},
		"slightly-above":      {currentKg: 77, expectedBand: WeightSlightlyAbove},
		"moderately-above":    {currentKg: 81, expectedBand: WeightModeratelyAbove},
		"significantly-above": {currentKg: 90, expectedBand: WeightSignificantlyAbove},
		"slightly-below":      {currentKg: 69, expectedBand: WeightSlightlyBelow},
		"significantly-below": {currentKg: 60, expectedBand: WeightSignificantlyBelow},
	} {
		t.Run(caseName, func(t *testing.T) {
			res, err := EstimateIdealWeight(IdealWeightInput{
				Height:        Measurement{Value: 70, Unit: UnitInches},
				Gender:        GenderMale,
				Formula:       FormulaDevine,
				CurrentWeight: Measurement{Value: tc.currentKg, Unit: UnitKg},
			})
			require.NoError(t, err)
			require.NotNil(t, res.Comparison)
			assert.Equal(t, tc.expectedBand, res.Comparison.Band)
			assert.InDelta(t, tc.currentKg-73.0, res.Comparison.DifferenceKg, 0.051)
			assert.NotEmpty(t, res.Comparison.Recommendations)

			summary := res.Summary()
			assert.Equal(t, "ideal-weight", summary.Calculator)
			assert.Equal(t, tc.expectedBand, summary.Category)
		})
	}
}

func TestEstimateIdealWeight_Invalid(t *testing.T) {
	for caseName, tc := range map[string]struct {
		in            IdealWeightInput
		expectedField string
	}{
		"no-gender": {
			in:            IdealWeightInput{Height: Measurement{Value: 170}},
			expectedField: "gender",
		},
		"too-short": {
			in:            IdealWeightInput{Height: Measurement{Value: 99}, Gender: GenderMale},
			expectedField: "height",
		},
		"too-tall": {
			in:            IdealWeightInput{Height: Measurement{Value: 251}, Gender: GenderMale},
			expectedField: "height",
		},
		"unknown-formula": {
			in:            IdealWeightInput{Height: Measurement{Value: 170}, Gender: GenderMale, Formula: "lorentz"},
			expectedField: "formula",
		},
		"current-weight-out-of-range": {
			in: IdealWeightInput{
				Height:        Measurement{Value: 170},
				Gender:        GenderMale,
				CurrentWeight: Measurement{Value: 500, Unit: UnitKg},
			},
			expectedField: "currentWeight",
		},
	} {
		t.Run(caseName, func(t *testing.T) {
			res, err := EstimateIdealWeight(tc.in)
			assert.Nil(t, res)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.expectedField, vErr.Field)
		})
	}
}

func TestAllIdealWeights(t *testing.T) {
	weights, err := AllIdealWeights(Measurement{Value: 70, Unit: UnitInches}, GenderMale)
	require.NoError(t, err)
	require.Len(t, weights, len(IdealWeightFormulas))
	assert.InDelta(t, 73.0, weights[FormulaDevine], 0.001)
	assert.InDelta(t, 75.0, weights[FormulaHamwi], 0.001)

	_, err = AllIdealWeights(Measurement{Value: 70, Unit: UnitInches}, "")
	assert.True(t, IsValidationError(err))
}

func TestWeightDifferenceBand(t *testing.T) {
	assert.Equal(t, WeightAtIdeal, WeightDifferenceBand(0))
	assert.Equal(t, WeightAtIdeal, WeightDifferenceBand(2))
	assert.Equal(t, WeightAtIdeal, WeightDifferenceBand(-2))
	assert.Equal(t, WeightSlightlyAbove, WeightDifferenceBand(2.1))
	assert.Equal(t, WeightSlightlyAbove, WeightDifferenceBand(5))
	assert.Equal(t, WeightModeratelyAbove, WeightDifferenceBand(5.1))
	assert.Equal(t, WeightModeratelyAbove, WeightDifferenceBand(10))
	assert.Equal(t, WeightSignificantlyAbove, WeightDifferenceBand(10.1))
	assert.Equal(t, WeightSlightlyBelow, WeightDifferenceBand(-2.1))
	assert.Equal(t, WeightSlightlyBelow, WeightDifferenceBand(-5))
	assert.Equal(t, WeightSignificantlyBelow, WeightDifferenceBand(-5.1))
}

func TestParseIdealWeightFormula(t *testing.T) {
	f, err := ParseIdealWeightFormula(" Hamwi ")
	require.NoError(t, err)
	assert.Equal(t, FormulaHamwi, f)

	_, err = ParseIdealWeightFormula("unknown")
	assert.Error(t, err)
}
