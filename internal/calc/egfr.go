package calc

import "math"

type CKDStage string

const (
	StageG1  CKDStage = "G1"
	StageG2  CKDStage = "G2"
	StageG3a CKDStage = "G3a"
	StageG3b CKDStage = "G3b"
	StageG4  CKDStage = "G4"
	StageG5  CKDStage = "G5"
)

type ckdStageInfo struct {
	stage          CKDStage
	minGFR         float64
	description    string
	riskTier       string
	monitoring     string
	recommendation string
}

// ordered from the highest threshold down
var ckdStages = []ckdStageInfo{
	{
		stage:          StageG1,
		minGFR:         90,
		description:    "Normal or high kidney function",
		riskTier:       "Low",
		monitoring:     "Annually",
		recommendation: "Kidney function is normal. Keep blood pressure and blood sugar under control and stay hydrated.",
	},
	{
		stage:          StageG2,
		minGFR:         60,
		description:    "Mildly decreased kidney function",
		riskTier:       "Low to Moderate",
		monitoring:     "Annually",
		recommendation: "Mild decrease in function. Review medications with your doctor and limit NSAID use.",
	},
	{
		stage:          StageG3a,
		minGFR:         45,
		description:    "Mildly to moderately decreased kidney function",
		riskTier:       "Moderate",
		monitoring:     "Every 6 months",
		recommendation: "Discuss the result with your doctor; a kidney friendly diet and blood pressure control are advised.",
	},
	{
		stage:          StageG3b,
		minGFR:         30,
		description:    "Moderately to severely decreased kidney function",
		riskTier:       "High",
		monitoring:     "Every 3-6 months",
		recommendation: "Referral to a nephrologist is recommended, along with a review of all medications.",
	},
	{
		stage:          StageG4,
		minGFR:         15,
		description:    "Severely decreased kidney function",
		riskTier:       "Very High",
		monitoring:     "Every 3 months",
		recommendation: "Specialist care is needed; start planning for possible kidney replacement therapy.",
	},
	{
		stage:          StageG5,
		minGFR:         0,
		description:    "Kidney failure",
		riskTier:       "Kidney Failure",
		monitoring:     "Monthly",
		recommendation: "Kidney failure range. Dialysis or transplant evaluation with a nephrologist is required.",
	},
}

const (
	egfrFemaleKappa     = 0.7
	egfrMaleKappa       = 0.9
	egfrFemaleAlpha     = -0.241
	egfrMaleAlpha       = -0.302
	egfrAboveKappaAlpha = -1.200
	egfrAgeBase         = 0.9938
	egfrConstant        = 142.0
)

type EGFRInput struct {
	Creatinine float64 `json:"creatinine"`
	Unit       Unit    `json:"unit"`
	Age        int     `json:"age"`
	Gender     Gender  `json:"gender"`
}

type EGFRResult struct {
	GFR                float64  `json:"gfr"`
	CreatinineMgDl     float64  `json:"creatinineMgDl"`
	Stage              CKDStage `json:"stage"`
	Description        string   `json:"description"`
	RiskTier           string   `json:"riskTier"`
	Monitoring         string   `json:"monitoring"`
	Recommendation     string   `json:"recommendation"`
	CardiovascularRisk string   `json:"cardiovascularRisk"`
}

// EstimateEGFR applies the race free CKD-EPI 2021 creatinine equation.
func EstimateEGFR(in EGFRInput) (*EGFRResult, error) {
	if err := in.Gender.validate(); err != nil {
		return nil, err
	}
	if err := validateAge(in.Age, 18, 120); err != nil {
		return nil, err
	}
	scr, err := CreatinineToMgDl(in.Creatinine, in.Unit)
	if err != nil {
		return nil, err
	}
	if err := validateRange("creatinine", scr, 0.1, 20); err != nil {
		return nil, err
	}

	gfr := round1(ckdEpi2021(scr, in.Age, in.Gender))
	stage := ckdStageFor(gfr)

	return &EGFRResult{
		GFR:                gfr,
		CreatinineMgDl:     round(scr, 2),
		Stage:              stage.stage,
		Description:        stage.description,
		RiskTier:           stage.riskTier,
		Monitoring:         stage.monitoring,
		Recommendation:     stage.recommendation,
		CardiovascularRisk: CardiovascularRisk(gfr),
	}, nil
}

func ckdEpi2021(scrMgDl float64, age int, gender Gender) float64 {
	kappa, alpha := egfrMaleKappa, egfrMaleAlpha
	if gender == GenderFemale {
		kappa, alpha = egfrFemaleKappa, egfrFemaleAlpha
	}
	// at the threshold the lower branch applies
	if scrMgDl > kappa {
		alpha = egfrAboveKappaAlpha
	}
	ratio := scrMgDl / kappa
	return egfrConstant * math.Pow(ratio, alpha) * math.Pow(egfrAgeBase, float64(age))
}

func ckdStageFor(gfr float64) ckdStageInfo {
	for _, s := range ckdStages {
		if gfr >= s.minGFR {
			return s
		}
	}
	return ckdStages[len(ckdStages)-1]
}

// CKDStageFor returns the stage for an already computed GFR value.
func CKDStageFor(gfr float64) CKDStage {
	return ckdStageFor(gfr).stage
}

func CardiovascularRisk(gfr float64) string {
	switch {
	case gfr < 15:
		return "Extremely High"
	case gfr < 30:
		return "Very High"
	case gfr < 45:
		return "High"
	case gfr < 60:
		return "Increased"
	default:
		return "Average"
	}
}

func (r *EGFRResult) Summary() CalculationResult {
	return CalculationResult{
		Calculator:   "egfr",
		PrimaryValue: r.GFR,
		Unit:         "mL/min/1.73m²",
		Category:     string(r.Stage),
		RiskTier:     r.RiskTier,
		Breakdown: map[string]float64{
			"creatinineMgDl": r.CreatinineMgDl,
		},
		Recommendations: []string{
			r.Recommendation,
			"Recommended monitoring: " + r.Monitoring + ".",
			"Cardiovascular risk: " + r.CardiovascularRisk + ".",
		},
	}
}
