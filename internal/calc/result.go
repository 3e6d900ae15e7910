package calc

import (
	"math"
	"strings"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) validate() error {
	switch g {
	case GenderMale, GenderFemale:
		return nil
	case "":
		return newValidationError("gender", "is required")
	default:
		return newValidationError("gender", "must be male or female")
	}
}

// ParseGender is lenient with case and surrounding spaces.
func ParseGender(s string) Gender {
	return Gender(strings.ToLower(strings.TrimSpace(s)))
}

func (g *Gender) UnmarshalText(text []byte) error {
	*g = ParseGender(string(text))
	return nil
}

// CalculationResult is the calculator agnostic view of any estimate,
// meant for exporters (reports, PDFs, share links) that don't care which
// calculator produced it.
type CalculationResult struct {
	Calculator      string             `json:"calculator"`
	PrimaryValue    float64            `json:"primaryValue"`
	Unit            string             `json:"unit"`
	Category        string             `json:"category"`
	RiskTier        string             `json:"riskTier"`
	Breakdown       map[string]float64 `json:"breakdown"`
	Recommendations []string           `json:"recommendations"`
}

type Summarizer interface {
	Summary() CalculationResult
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

func round1(v float64) float64 {
	return round(v, defaultPrecision)
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
