package calc

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/2beens/healthcalc/internal/telemetry/metrics"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*mux.Router, *metrics.Manager) {
	t.Helper()
	metricsManager := metrics.NewTestManager()
	r := mux.NewRouter()
	handler := NewHandler(metricsManager)
	require.NotNil(t, handler)
	handler.SetupRoutes(r.PathPrefix("/calc").Subrouter())
	return r, metricsManager
}

func TestHandler_Routes(t *testing.T) {
	r, _ := newTestRouter(t)

	for caseName, route := range map[string]struct {
		name   string
		path   string
		method string
	}{
		"bodyfat":           {name: "calc-bodyfat", path: "/calc/bodyfat", method: "POST"},
		"bodyfat-options":   {name: "calc-bodyfat", path: "/calc/bodyfat", method: "OPTIONS"},
		"idealweight":       {name: "calc-idealweight", path: "/calc/idealweight", method: "POST"},
		"idealweight-all":   {name: "calc-idealweight-all", path: "/calc/idealweight/all", method: "GET"},
		"egfr":              {name: "calc-egfr", path: "/calc/egfr", method: "POST"},
		"macros":            {name: "calc-macros", path: "/calc/macros", method: "POST"},
		"macros-rebalance":  {name: "calc-macros-rebalance", path: "/calc/macros/rebalance", method: "POST"},
		"macros-presets":    {name: "calc-macros-presets", path: "/calc/macros/presets", method: "GET"},
		"calories-burned":   {name: "calc-calories-burned", path: "/calc/calories-burned", method: "POST"},
		"activities":        {name: "calc-activities", path: "/calc/activities", method: "GET"},
		"water":             {name: "calc-water", path: "/calc/water", method: "POST"},
		"water-options":     {name: "calc-water", path: "/calc/water", method: "OPTIONS"},
		"egfr-also-options": {name: "calc-egfr", path: "/calc/egfr", method: "OPTIONS"},
	} {
		t.Run(caseName, func(t *testing.T) {
			req, err := http.NewRequest(route.method, route.path, nil)
			require.NoError(t, err)

			routeMatch := &mux.RouteMatch{}
			muxRoute := r.Get(route.name)
			require.NotNil(t, muxRoute)
			assert.True(t, muxRoute.Match(req, routeMatch), caseName)
		})
	}
}

func TestHandler_Estimates(t *testing.T) {
	for caseName, tc := range map[string]struct {
		path               string
		body               string
		expectedCalculator string
		expectedPrimary    float64
	}{
		"bodyfat": {
			path:               "/calc/bodyfat",
			body:               `{"age":25,"gender":"male","height":{"value":70,"unit":"in"},"neck":{"value":15,"unit":"in"},"waist":{"value":34,"unit":"in"}}`,
			expectedCalculator: "body-fat",
			expectedPrimary:    17.5,
		},
		"idealweight": {
			path:               "/calc/idealweight",
			body:               `{"height":{"value":70,"unit":"in"},"gender":"male","formula":"hamwi"}`,
			expectedCalculator: "ideal-weight",
			expectedPrimary:    75,
		},
		"idealweight-feet-and-inches": {
			path:               "/calc/idealweight",
			body:               `{"height":{"value":5,"unit":"ft_in","inches":10},"gender":" Male ","formula":" Hamwi "}`,
			expectedCalculator: "ideal-weight",
			expectedPrimary:    75,
		},
		"bodyfat-feet-and-inches": {
			path:               "/calc/bodyfat",
			body:               `{"age":25,"gender":"male","height":{"value":5,"unit":"ft+in","inches":10},"neck":{"value":15,"unit":"IN"},"waist":{"value":34,"unit":"inches"}}`,
			expectedCalculator: "body-fat",
			expectedPrimary:    17.5,
		},
		"egfr-unit-spelling": {
			path:               "/calc/egfr",
			body:               `{"creatinine":176.8,"unit":"µmol/L","age":60,"gender":"male"}`,
			expectedCalculator: "egfr",
			expectedPrimary:    37.5,
		},
		"macros-capitalized": {
			path:               "/calc/macros",
			body:               `{"weight":{"value":80},"height":{"value":180},"age":30,"gender":"Male","activity":"Moderate","goal":"lose_fast"}`,
			expectedCalculator: "macros",
			expectedPrimary:    2259,
		},
		"egfr": {
			path:               "/calc/egfr",
			body:               `{"creatinine":176.8,"unit":"umol_l","age":60,"gender":"male"}`,
			expectedCalculator: "egfr",
			expectedPrimary:    37.5,
		},
		"macros": {
			path:               "/calc/macros",
			body:               `{"weight":{"value":80},"height":{"value":180},"age":30,"gender":"male","activity":"moderate","goal":"lose_fast"}`,
			expectedCalculator: "macros",
			expectedPrimary:    2259,
		},
		"calories-burned": {
			path:               "/calc/calories-burned",
			body:               `{"weight":{"value":70,"unit":"kg"},"met":8,"duration":{"value":30,"unit":"minutes"}}`,
			expectedCalculator: "calories-burned",
			expectedPrimary:    280,
		},
		"water": {
			path:               "/calc/water",
			body:               `{"weight":{"value":70},"activity":"moderate","age":30,"gender":"male"}`,
			expectedCalculator: "water-intake",
			expectedPrimary:    2940,
		},
	} {
		t.Run(caseName, func(t *testing.T) {
			r, metricsManager := newTestRouter(t)

			req, err := http.NewRequest(http.MethodPost, tc.path, strings.NewReader(tc.body))
			require.NoError(t, err)
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var resp struct {
				Result  json.RawMessage   `json:"result"`
				Summary CalculationResult `json:"summary"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Result)
			assert.Equal(t, tc.expectedCalculator, resp.Summary.Calculator)
			assert.InDelta(t, tc.expectedPrimary, resp.Summary.PrimaryValue, 0.001)

			assert.Equal(t, 1.0, testutil.ToFloat64(
				metricsManager.CounterCalculations.WithLabelValues(tc.expectedCalculator, outcomeOK),
			))
		})
	}
}

func TestHandler_Estimates_BadRequests(t *testing.T) {
	for caseName, tc := range map[string]struct {
		path            string
		body            string
		expectedMessage string
	}{
		"bodyfat-underage": {
			path:            "/calc/bodyfat",
			body:            `{"age":12,"gender":"male","height":{"value":170},"neck":{"value":38},"waist":{"value":86}}`,
			expectedMessage: "age: must be between 18 and 120",
		},
		"egfr-no-gender": {
			path:            "/calc/egfr",
			body:            `{"creatinine":1.0,"age":60}`,
			expectedMessage: "gender: is required",
		},
		"water-pregnant-male": {
			path:            "/calc/water",
			body:            `{"weight":{"value":70},"age":30,"gender":"male","pregnant":true}`,
			expectedMessage: "gender: pregnancy and breastfeeding only apply to female profiles",
		},
		"unknown-activity": {
			path:            "/calc/macros",
			body:            `{"weight":{"value":80},"height":{"value":180},"age":30,"gender":"male","activity":"couch"}`,
			expectedMessage: `activity: unknown activity level "couch"`,
		},
		"macros-impossible-target": {
			path:            "/calc/macros",
			body:            `{"weight":{"value":20},"height":{"value":100},"age":100,"gender":"female","goal":"lose_fast"}`,
			expectedMessage: "goal: a -303 kcal daily target is not possible, choose a milder goal",
		},
		"malformed-json": {
			path:            "/calc/macros",
			body:            `{"weight":`,
			expectedMessage: "invalid request body",
		},
		"unknown-field": {
			path:            "/calc/egfr",
			body:            `{"creatinine":1.0,"age":60,"gender":"male","race":"x"}`,
			expectedMessage: "invalid request body",
		},
	} {
		t.Run(caseName, func(t *testing.T) {
			r, _ := newTestRouter(t)

			req, err := http.NewRequest(http.MethodPost, tc.path, strings.NewReader(tc.body))
			require.NoError(t, err)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tc.expectedMessage, strings.TrimSpace(rr.Body.String()))
		})
	}
}

func TestHandler_Rebalance(t *testing.T) {
	r, metricsManager := newTestRouter(t)

	body := `{"current":{"protein":30,"carbs":40,"fat":30},"moved":"protein","value":40}`
	req, err := http.NewRequest(http.MethodPost, "/calc/macros/rebalance", strings.NewReader(body))
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{"result":{"protein":40,"carbs":34,"fat":26}}`, rr.Body.String())

	body = `{"current":{"protein":30,"carbs":40,"fat":30},"moved":"fiber","value":40}`
	req, err = http.NewRequest(http.MethodPost, "/calc/macros/rebalance", strings.NewReader(body))
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "unknown macro")

	assert.Equal(t, 1.0, testutil.ToFloat64(
		metricsManager.CounterCalculations.WithLabelValues("macro-rebalance", outcomeOK),
	))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		metricsManager.CounterCalculations.WithLabelValues("macro-rebalance", outcomeInvalid),
	))
}

func TestHandler_AllIdealWeights(t *testing.T) {
	r, _ := newTestRouter(t)

	req, err := http.NewRequest(http.MethodGet, "/calc/idealweight/all?height_cm=177.8&gender=Male", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		Result struct {
			IdealKg      map[IdealWeightFormula]float64 `json:"idealKg"`
			HealthyRange WeightRange                    `json:"healthyRange"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Result.IdealKg, len(IdealWeightFormulas))
	assert.InDelta(t, 73.0, resp.Result.IdealKg[FormulaDevine], 0.001)
	assert.Equal(t, WeightRange{MinKg: 58.5, MaxKg: 78.7}, resp.Result.HealthyRange)

	for _, query := range []string{"height_cm=abc&gender=male", "height_cm=177.8&gender=none", "height_cm=20&gender=male"} {
		req, err := http.NewRequest(http.MethodGet, "/calc/idealweight/all?"+query, nil)
		require.NoError(t, err)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code, query)
	}
}

func TestHandler_Tables(t *testing.T) {
	r, _ := newTestRouter(t)

	req, err := http.NewRequest(http.MethodGet, "/calc/activities", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	var activities []Activity
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &activities))
	assert.Equal(t, Activities(), activities)

	req, err = http.NewRequest(http.MethodGet, "/calc/macros/presets", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	var presets struct {
		Presets map[MacroPreset]MacroRatio `json:"presets"`
		Bounds  map[Macro]SliderBounds     `json:"bounds"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &presets))
	assert.Equal(t, MacroPresets(), presets.Presets)
	assert.Equal(t, SliderBounds{Min: 10, Max: 50}, presets.Bounds[MacroProtein])
}
