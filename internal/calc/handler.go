package calc

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/healthcalc/internal/telemetry/metrics"
	"github.com/2beens/healthcalc/internal/telemetry/tracing"
	"github.com/2beens/healthcalc/pkg"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	outcomeOK      = "ok"
	outcomeInvalid = "invalid"
	outcomeError   = "error"

	// request bodies are tiny, anything bigger is garbage
	maxRequestBodyBytes = 64 << 10
)

type CalcResponse struct {
	Result  any                `json:"result"`
	Summary *CalculationResult `json:"summary,omitempty"`
}

type RebalanceRequest struct {
	Current MacroRatio `json:"current"`
	Moved   Macro      `json:"moved"`
	Value   int        `json:"value"`
}

type Handler struct {
	metricsManager *metrics.Manager
}

func NewHandler(metricsManager *metrics.Manager) *Handler {
	return &Handler{
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/bodyfat", estimateHandler(handler, "body-fat", EstimateBodyFat)).Methods("POST", "OPTIONS").Name("calc-bodyfat")
	router.HandleFunc("/idealweight", estimateHandler(handler, "ideal-weight", EstimateIdealWeight)).Methods("POST", "OPTIONS").Name("calc-idealweight")
	router.HandleFunc("/idealweight/all", handler.handleAllIdealWeights).Methods("GET").Name("calc-idealweight-all")
	router.HandleFunc("/egfr", estimateHandler(handler, "egfr", EstimateEGFR)).Methods("POST", "OPTIONS").Name("calc-egfr")
	router.HandleFunc("/macros", estimateHandler(handler, "macros", EstimateMacros)).Methods("POST", "OPTIONS").Name("calc-macros")
	router.HandleFunc("/macros/rebalance", handler.handleRebalance).Methods("POST", "OPTIONS").Name("calc-macros-rebalance")
	router.HandleFunc("/macros/presets", handler.handlePresets).Methods("GET").Name("calc-macros-presets")
	router.HandleFunc("/calories-burned", estimateHandler(handler, "calories-burned", EstimateCaloriesBurned)).Methods("POST", "OPTIONS").Name("calc-calories-burned")
	router.HandleFunc("/activities", handler.handleActivities).Methods("GET").Name("calc-activities")
	router.HandleFunc("/water", estimateHandler(handler, "water-intake", EstimateWaterIntake)).Methods("POST", "OPTIONS").Name("calc-water")
}

// estimateHandler decodes the JSON body into In, runs the estimator and
// writes both the typed result and its summary.
func estimateHandler[In any, Out Summarizer](
	handler *Handler,
	calculator string,
	estimate func(In) (Out, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracing.GlobalTracer.Start(r.Context(), "calc."+calculator)
		span.SetAttributes(attribute.String("calculator", calculator))
		var err error
		defer func() {
			tracing.EndSpanWithErrCheck(span, err)
		}()

		var in In
		if err = decodeBody(w, r, &in); err != nil {
			log.Debugf("calc %s, unmarshal json body: %s", calculator, err)
			handler.countCalculation(calculator, outcomeInvalid)
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		res, err := estimate(in)
		if err != nil {
			handler.writeEstimateError(w, calculator, err)
			return
		}

		summary := res.Summary()
		handler.countCalculation(calculator, outcomeOK)
		pkg.WriteJSON(w, CalcResponse{Result: res, Summary: &summary}, http.StatusOK)
	}
}

func (handler *Handler) handleRebalance(w http.ResponseWriter, r *http.Request) {
	const calculator = "macro-rebalance"

	var req RebalanceRequest
	if err := decodeBody(w, r, &req); err != nil {
		log.Debugf("calc %s, unmarshal json body: %s", calculator, err)
		handler.countCalculation(calculator, outcomeInvalid)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ratio, err := RebalanceMacros(req.Current, req.Moved, req.Value)
	if err != nil {
		handler.writeEstimateError(w, calculator, err)
		return
	}

	handler.countCalculation(calculator, outcomeOK)
	pkg.WriteJSON(w, CalcResponse{Result: ratio}, http.StatusOK)
}

func (handler *Handler) handleAllIdealWeights(w http.ResponseWriter, r *http.Request) {
	const calculator = "ideal-weight-all"

	heightStr := r.URL.Query().Get("height_cm")
	heightCm, err := strconv.ParseFloat(heightStr, 64)
	if err != nil {
		handler.countCalculation(calculator, outcomeInvalid)
		http.Error(w, "parse error, parameter <height_cm>", http.StatusBadRequest)
		return
	}

	gender := ParseGender(r.URL.Query().Get("gender"))
	weights, err := AllIdealWeights(Measurement{Value: heightCm, Unit: UnitCm}, gender)
	if err != nil {
		handler.writeEstimateError(w, calculator, err)
		return
	}

	handler.countCalculation(calculator, outcomeOK)
	pkg.WriteJSON(w, CalcResponse{
		Result: map[string]any{
			"idealKg":      weights,
			"healthyRange": HealthyWeightRange(heightCm),
		},
	}, http.StatusOK)
}

func (handler *Handler) handlePresets(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, map[string]any{
		"presets": MacroPresets(),
		"bounds":  MacroSliderBounds(),
	}, http.StatusOK)
}

func (handler *Handler) handleActivities(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, Activities(), http.StatusOK)
}

func (handler *Handler) writeEstimateError(w http.ResponseWriter, calculator string, err error) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		log.Debugf("calc %s, invalid input: %s", calculator, vErr)
		handler.countCalculation(calculator, outcomeInvalid)
		pkg.WriteResponse(w, pkg.ContentType.Text, vErr.Error(), http.StatusBadRequest)
		return
	}

	log.Errorf("calc %s failed: %s", calculator, err)
	handler.countCalculation(calculator, outcomeError)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func (handler *Handler) countCalculation(calculator, outcome string) {
	if handler.metricsManager == nil {
		return
	}
	handler.metricsManager.CounterCalculations.WithLabelValues(calculator, outcome).Inc()
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}
