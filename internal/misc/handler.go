package misc

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/healthcalc/internal/telemetry/tracing"
	"github.com/2beens/healthcalc/pkg"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const readyCheckTimeout = 2 * time.Second

type Handler struct {
	versionInfo string
	// nil when rate limiting is off and redis is not used
	redisClient *redis.Client
}

func NewHandler(versionInfo string, redisClient *redis.Client) *Handler {
	return &Handler{
		versionInfo: versionInfo,
		redisClient: redisClient,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/ready", handler.handleReady).Methods("GET").Name("ready")
	mainRouter.HandleFunc("/myip", handler.handleGetMyIp).Methods("GET").Name("myip")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

// handleReady reports whether the service dependencies are reachable.
func (handler *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.ready")
	defer span.End()

	if handler.redisClient == nil {
		pkg.WriteTextResponseOK(w, "ready")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, readyCheckTimeout)
	defer cancel()

	if err := handler.redisClient.Ping(ctx).Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("ready check, redis ping: %s", err)
		http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
		return
	}

	pkg.WriteTextResponseOK(w, "ready")
}

func (handler *Handler) handleGetMyIp(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.getMyIp")
	defer span.End()

	ip, err := pkg.ReadUserIP(r)
	if err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("failed to get user IP address: %s", err))
		log.Debugf("failed to get user IP address: %s", err)
		http.Error(w, "failed to get IP", http.StatusBadRequest)
		return
	}

	span.SetAttributes(attribute.String("user.ip", ip))
	pkg.WriteTextResponseOK(w, ip)
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}
