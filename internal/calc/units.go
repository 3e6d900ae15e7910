package calc

import (
	"fmt"
	"strings"
)

type Unit string

const (
	UnitCm      Unit = "cm"
	UnitInches  Unit = "in"
	UnitFtIn    Unit = "ft_in"
	UnitKg      Unit = "kg"
	UnitLbs     Unit = "lbs"
	UnitMgDl    Unit = "mg_dl"
	UnitUmolL   Unit = "umol_l"
	UnitMinutes Unit = "minutes"
	UnitHours   Unit = "hours"
)

const (
	cmPerInch        = 2.54
	lbsPerKg         = 2.20462
	umolLPerMgDl     = 88.4
	minutesPerHour   = 60.0
	inchesPerFoot    = 12.0
	mlPerFluidOunce  = 29.5735
	mlPerCup         = 236.588
	mlPerLiter       = 1000.0
	kcalPerPoundFat  = 3500.0
	wakingHoursADay  = 16.0
	weeksPerYear     = 52.0
	monthsPerYear    = 12.0
	percentDivisor   = 100.0
	defaultPrecision = 1
)

// ParseUnit accepts the canonical unit names plus a few common spellings.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cm":
		return UnitCm, nil
	case "in", "inch", "inches":
		return UnitInches, nil
	case "ft_in", "ft+in", "ft/in":
		return UnitFtIn, nil
	case "kg":
		return UnitKg, nil
	case "lb", "lbs":
		return UnitLbs, nil
	case "mg_dl", "mg/dl":
		return UnitMgDl, nil
	case "umol_l", "umol/l", "µmol/l":
		return UnitUmolL, nil
	case "min", "minutes":
		return UnitMinutes, nil
	case "h", "hours":
		return UnitHours, nil
	default:
		return "", fmt.Errorf("unknown unit: %s", s)
	}
}

// UnmarshalText normalizes unit spellings. Unknown units are kept as sent
// and rejected by the estimator, with the offending field named.
func (u *Unit) UnmarshalText(text []byte) error {
	if parsed, err := ParseUnit(string(text)); err == nil {
		*u = parsed
		return nil
	}
	*u = Unit(text)
	return nil
}

func CmToInches(cm float64) float64 {
	return cm / cmPerInch
}

func InchesToCm(in float64) float64 {
	return in * cmPerInch
}

func FeetInchesToInches(feet, inches float64) float64 {
	return feet*inchesPerFoot + inches
}

func KgToLbs(kg float64) float64 {
	return kg * lbsPerKg
}

func LbsToKg(lbs float64) float64 {
	return lbs / lbsPerKg
}

func MinutesToHours(minutes float64) float64 {
	return minutes / minutesPerHour
}

func HoursToMinutes(hours float64) float64 {
	return hours * minutesPerHour
}

func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// ClimateForTemperature maps an average outdoor temperature to a climate level
// usable as water intake input.
func ClimateForTemperature(celsius float64) Climate {
	switch {
	case celsius < 10:
		return ClimateCold
	case celsius < 20:
		return ClimateTemperate
	case celsius < 27:
		return ClimateWarm
	case celsius < 32:
		return ClimateHot
	default:
		return ClimateVeryHot
	}
}

// Measurement is a value with its unit, as entered by the user.
// With the ft_in unit, Value holds the feet and Inches the remaining inches.
type Measurement struct {
	Value  float64 `json:"value"`
	Unit   Unit    `json:"unit"`
	Inches float64 `json:"inches,omitempty"`
}

func (m Measurement) validate(field string) error {
	if m.Unit != UnitFtIn {
		if m.Inches != 0 {
			return newValidationError(field, "inches only apply to the %s unit", UnitFtIn)
		}
		return validatePositive(field, m.Value)
	}

	if m.Value < 0 || m.Inches < 0 {
		return newValidationError(field, "feet and inches can't be negative")
	}
	return validatePositive(field, FeetInchesToInches(m.Value, m.Inches))
}

// ToInches converts a length measurement to inches.
func (m Measurement) ToInches(field string) (float64, error) {
	if err := m.validate(field); err != nil {
		return 0, err
	}
	switch m.Unit {
	case UnitInches:
		return m.Value, nil
	case UnitFtIn:
		return FeetInchesToInches(m.Value, m.Inches), nil
	case UnitCm, "":
		return CmToInches(m.Value), nil
	default:
		return 0, newValidationError(field, "unit %q is not a length unit", m.Unit)
	}
}

// ToCm converts a length measurement to centimeters.
func (m Measurement) ToCm(field string) (float64, error) {
	inches, err := m.ToInches(field)
	if err != nil {
		return 0, err
	}
	if m.Unit == UnitCm || m.Unit == "" {
		return m.Value, nil
	}
	return InchesToCm(inches), nil
}

// ToKg converts a mass measurement to kilograms.
func (m Measurement) ToKg(field string) (float64, error) {
	if err := m.validate(field); err != nil {
		return 0, err
	}
	switch m.Unit {
	case UnitKg, "":
		return m.Value, nil
	case UnitLbs:
		return LbsToKg(m.Value), nil
	default:
		return 0, newValidationError(field, "unit %q is not a mass unit", m.Unit)
	}
}

// ToHours converts a duration measurement to hours.
func (m Measurement) ToHours(field string) (float64, error) {
	if err := m.validate(field); err != nil {
		return 0, err
	}
	switch m.Unit {
	case UnitHours:
		return m.Value, nil
	case UnitMinutes, "":
		return MinutesToHours(m.Value), nil
	default:
		return 0, newValidationError(field, "unit %q is not a duration unit", m.Unit)
	}
}

// CreatinineToMgDl converts serum creatinine to mg/dL.
func CreatinineToMgDl(value float64, unit Unit) (float64, error) {
	if err := validatePositive("creatinine", value); err != nil {
		return 0, err
	}
	switch unit {
	case UnitMgDl, "":
		return value, nil
	case UnitUmolL:
		return value / umolLPerMgDl, nil
	default:
		return 0, newValidationError("creatinine", "unit %q is not a creatinine unit", unit)
	}
}
