package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/healthcalc/internal/articles"
	"github.com/2beens/healthcalc/internal/calc"
	"github.com/2beens/healthcalc/internal/config"
	"github.com/2beens/healthcalc/internal/middleware"
	"github.com/2beens/healthcalc/internal/misc"
	"github.com/2beens/healthcalc/internal/telemetry/metrics"
	"github.com/2beens/healthcalc/internal/telemetry/tracing"
)

const (
	articlesReloadInterval = 10 * time.Minute
	remoteArticlesTimeout  = 10 * time.Second
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config          *config.Config
	redisClient     *redis.Client
	rateLimiter     middleware.RequestRateLimiter
	articlesHandler *articles.Handler
	diskArticles    *articles.DiskRepo // nil with the remote source

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("healthcalc", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	s := &Server{
		config:         params.Config,
		versionInfo:    params.VersionInfo,
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
	}

	if params.Config.RateLimitEnabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})

		rdbStatus := rdb.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}

		s.redisClient = rdb
		s.rateLimiter = redis_rate.NewLimiter(rdb)
	} else {
		log.Warnln("calculator rate limiting disabled")
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "healthcalc", s.redisClient)
	if err != nil {
		return nil, err
	}
	s.otelShutdown = otelShutdown

	switch params.Config.ArticlesSource {
	case config.ArticlesSourceRemote:
		tracedHttpClient := &http.Client{
			Timeout:   remoteArticlesTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
		remoteRepo := articles.NewRemoteRepo(params.Config.ArticlesBaseURL, tracedHttpClient, metricsManager)
		s.articlesHandler = articles.NewHandler(remoteRepo)
		log.Debugf("serving articles from [%s]", params.Config.ArticlesBaseURL)
	default:
		diskRepo, err := articles.NewDiskRepo(params.Config.ArticlesDir, metricsManager)
		if err != nil {
			return nil, fmt.Errorf("new disk articles repo: %w", err)
		}
		s.diskArticles = diskRepo
		s.articlesHandler = articles.NewHandler(diskRepo)
		log.Debugf("serving articles from dir [%s]", params.Config.ArticlesDir)
	}

	return s, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("healthcalc-router"))

	miscHandler := misc.NewHandler(s.versionInfo, s.redisClient)
	miscHandler.SetupRoutes(r)

	calcRouter := r.PathPrefix("/calc").Subrouter()
	calcHandler := calc.NewHandler(s.metricsManager)
	calcHandler.SetupRoutes(calcRouter)
	if s.rateLimiter != nil {
		calcRouter.Use(middleware.RateLimit(s.rateLimiter, s.metricsManager, "calc", s.config.CalcRateLimitPerMin))
	}

	articlesRouter := r.PathPrefix("/articles").Subrouter()
	s.articlesHandler.SetupRoutes(articlesRouter)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins...))
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) metricsRouterSetup() *mux.Router {
	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	return metricsRouter
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      s.routerSetup(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: s.metricsRouterSetup(),
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	if s.diskArticles != nil {
		go s.reloadArticlesPeriodically(ctx, articlesReloadInterval)
	}

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// reloadArticlesPeriodically picks up articles added or edited on disk.
func (s *Server) reloadArticlesPeriodically(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debugln("articles reload stopped")
			return
		case <-ticker.C:
			if err := s.diskArticles.Reload(); err != nil {
				log.Errorf("reload articles: %s", err)
			}
		}
	}
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}
