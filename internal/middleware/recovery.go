package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/2beens/healthcalc/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

// PanicRecovery turns a panicking calculator or article handler into a 500,
// counted per route template.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				// the client went away mid response, let net/http handle it
				if err, ok := recovered.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(recovered)
				}

				route := routeTemplate(req)
				log.WithFields(log.Fields{
					"method": req.Method,
					"route":  route,
					"path":   req.URL.Path,
					"panic":  recovered,
				}).Errorf("healthcalc: recovered handler panic\n%s", debug.Stack())

				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.WithLabelValues(route).Inc()
				}
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, req)
		})
	}
}
