package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateBodyFat(t *testing.T) {
	for caseName, tc := range map[string]struct {
		in               BodyFatInput
		expectedPct      float64
		expectedCategory string
		expectedRisk     string
	}{
		"male-inches": {
			in: BodyFatInput{
				Profile: Profile{Age: 25, Gender: GenderMale},
				Height:  Measurement{Value: 70, Unit: UnitInches},
				Neck:    Measurement{Value: 15, Unit: UnitInches},
				Waist:   Measurement{Value: 34, Unit: UnitInches},
			},
			expectedPct:      17.5,
			expectedCategory: BodyFatFitness,
			expectedRisk:     "Low",
		},
		"male-cm-same-body": {
			in: BodyFatInput{
				Profile: Profile{Age: 25, Gender: GenderMale},
				Height:  Measurement{Value: 177.8, Unit: UnitCm},
				Neck:    Measurement{Value: 38.1, Unit: UnitCm},
				Waist:   Measurement{Value: 86.36, Unit: UnitCm},
			},
			expectedPct:      17.5,
			expectedCategory: BodyFatFitness,
			expectedRisk:     "Low",
		},
		"male-feet-and-inches-height": {
			in: BodyFatInput{
				Profile: Profile{Age: 25, Gender: GenderMale},
				Height:  Measurement{Value: 5, Unit: UnitFtIn, Inches: 10},
				Neck:    Measurement{Value: 15, Unit: UnitInches},
				Waist:   Measurement{Value: 34, Unit: UnitInches},
			},
			expectedPct:      17.5,
			expectedCategory: BodyFatFitness,
			expectedRisk:     "Low",
		},
		"male-older-band": {
			in: BodyFatInput{
				Profile: Profile{Age: 55, Gender: GenderMale},
				Height:  Measurement{Value: 70, Unit: UnitInches},
				Neck:    Measurement{Value: 14, Unit: UnitInches},
				Waist:   Measurement{Value: 30, Unit: UnitInches},
			},
			expectedPct:      11.1,
			expectedCategory: BodyFatAthletes,
			expectedRisk:     "Low",
		},
		"male-obese": {
			in: BodyFatInput{
				Profile: Profile{Age: 35, Gender: GenderMale},
				Height:  Measurement{Value: 70, Unit: UnitInches},
				Neck:    Measurement{Value: 16, Unit: UnitInches},
				Waist:   Measurement{Value: 44, Unit: UnitInches},
			},
			expectedPct:      32.0,
			expectedCategory: BodyFatObese,
			expectedRisk:     "High",
		},
		"female": {
			in: BodyFatInput{
				Profile: Profile{Age: 25, Gender: GenderFemale},
				Height:  Measurement{Value: 65, Unit: UnitInches},
				Neck:    Measurement{Value: 13, Unit: UnitInches},
				Waist:   Measurement{Value: 30, Unit: UnitInches},
				Hip:     Measurement{Value: 38, Unit: UnitInches},
			},
			expectedPct:      28.6,
			expectedCategory: BodyFatAverage,
			expectedRisk:     "Moderate",
		},
	} {
		t.Run(caseName, func(t *testing.T) {
			res, err := EstimateBodyFat(tc.in)
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.InDelta(t, tc.expectedPct, res.Percentage, 0.001)
			assert.Equal(t, tc.expectedCategory, res.Category)
			assert.Equal(t, tc.expectedRisk, res.RiskTier)
			assert.NotEmpty(t, res.Recommendations)
			assert.Zero(t, res.FatMassKg)
			assert.Zero(t, res.LeanMassKg)
		})
	}
}

func TestEstimateBodyFat_MassSplit(t *testing.T) {
	res, err := EstimateBodyFat(BodyFatInput{
		Profile: Profile{Age: 25, Gender: GenderMale},
		Height:  Measurement{Value: 70, Unit: UnitInches},
		Neck:    Measurement{Value: 15, Unit: UnitInches},
		Waist:   Measurement{Value: 34, Unit: UnitInches},
		Weight:  Measurement{Value: 80, Unit: UnitKg},
	})
	require.NoError(t, err)
	assert.InDelta(t, 14.0, res.FatMassKg, 0.001)
	assert.InDelta(t, 66.0, res.LeanMassKg, 0.001)

	summary := res.Summary()
	assert.Equal(t, "body-fat", summary.Calculator)
	assert.Equal(t, res.Percentage, summary.PrimaryValue)
	assert.Equal(t, "%", summary.Unit)
	assert.Equal(t, BodyFatFitness, summary.Category)
	assert.Equal(t, res.FatMassKg, summary.Breakdown["fatMassKg"])
	assert.Equal(t, res.Recommendations, summary.Recommendations)
}

func TestEstimateBodyFat_Invalid(t *testing.T) {
	valid := func() BodyFatInput {
		return BodyFatInput{
			Profile: Profile{Age: 25, Gender: GenderMale},
			Height:  Measurement{Value: 70, Unit: UnitInches},
			Neck:    Measurement{Value: 15, Unit: UnitInches},
			Waist:   Measurement{Value: 34, Unit: UnitInches},
		}
	}

	for caseName, tc := range map[string]struct {
		mutate        func(in *BodyFatInput)
		expectedField string
	}{
		"too-young":       {mutate: func(in *BodyFatInput) { in.Age = 17 }, expectedField: "age"},
		"too-old":         {mutate: func(in *BodyFatInput) { in.Age = 121 }, expectedField: "age"},
		"missing-gender":  {mutate: func(in *BodyFatInput) { in.Gender = "" }, expectedField: "gender"},
		"unknown-gender":  {mutate: func(in *BodyFatInput) { in.Gender = "other" }, expectedField: "gender"},
		"zero-height":     {mutate: func(in *BodyFatInput) { in.Height.Value = 0 }, expectedField: "height"},
		"negative-neck":   {mutate: func(in *BodyFatInput) { in.Neck.Value = -15 }, expectedField: "neck"},
		"mass-unit":       {mutate: func(in *BodyFatInput) { in.Waist.Unit = UnitKg }, expectedField: "waist"},
		"waist-eq-neck":   {mutate: func(in *BodyFatInput) { in.Waist.Value = 15 }, expectedField: "waist"},
		"waist-below":     {mutate: func(in *BodyFatInput) { in.Waist.Value = 12 }, expectedField: "waist"},
		"implausible-pct": {mutate: func(in *BodyFatInput) { in.Waist.Value = 16 }, expectedField: ""},
		"female-no-hip": {
			mutate:        func(in *BodyFatInput) { in.Gender = GenderFemale },
			expectedField: "hip",
		},
	} {
		t.Run(caseName, func(t *testing.T) {
			in := valid()
			tc.mutate(&in)
			res, err := EstimateBodyFat(in)
			require.Error(t, err)
			assert.Nil(t, res)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.expectedField, vErr.Field)
		})
	}
}

func TestBodyFatCategory(t *testing.T) {
	// upper bounds are inclusive
	assert.Equal(t, BodyFatEssential, BodyFatCategory(GenderMale, 25, 5))
	assert.Equal(t, BodyFatAthletes, BodyFatCategory(GenderMale, 25, 5.1))
	assert.Equal(t, BodyFatAthletes, BodyFatCategory(GenderMale, 25, 13))
	assert.Equal(t, BodyFatFitness, BodyFatCategory(GenderMale, 25, 18))
	assert.Equal(t, BodyFatAverage, BodyFatCategory(GenderMale, 25, 25))
	assert.Equal(t, BodyFatObese, BodyFatCategory(GenderMale, 25, 25.1))

	assert.Equal(t, BodyFatAthletes, BodyFatCategory(GenderMale, 30, 14))
	assert.Equal(t, BodyFatFitness, BodyFatCategory(GenderMale, 29, 14))
	assert.Equal(t, BodyFatAverage, BodyFatCategory(GenderMale, 50, 28))

	assert.Equal(t, BodyFatEssential, BodyFatCategory(GenderFemale, 40, 12))
	assert.Equal(t, BodyFatFitness, BodyFatCategory(GenderFemale, 40, 26))
	assert.Equal(t, BodyFatFitness, BodyFatCategory(GenderFemale, 60, 28))
	assert.Equal(t, BodyFatObese, BodyFatCategory(GenderFemale, 60, 35.5))

	assert.Empty(t, BodyFatCategory("other", 40, 20))
}
