package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/coocood/freecache"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/fitsuggest/internal/config"
	"github.com/2beens/fitsuggest/internal/db"
	"github.com/2beens/fitsuggest/internal/middleware"
	"github.com/2beens/fitsuggest/internal/misc"
	"github.com/2beens/fitsuggest/internal/suggest"
	"github.com/2beens/fitsuggest/internal/suggest/flows"
	"github.com/2beens/fitsuggest/internal/suggest/inference"
	suggestmcp "github.com/2beens/fitsuggest/internal/suggest/mcp"
	"github.com/2beens/fitsuggest/internal/telemetry/metrics"
	"github.com/2beens/fitsuggest/internal/telemetry/tracing"
	"github.com/2beens/fitsuggest/internal/workouts"
)

const defaultMetricsPort = 2112

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string
	apiKeyHash        string

	config          *config.Config
	dbPool          *pgxpool.Pool
	redisClient     *redis.Client
	redisAvailable  bool
	suggestService  *flows.Service
	workoutsService *workouts.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	GeminiAPIKey            string
	APIKeyHash              string
	VersionInfo             string
	RedisPassword           string
	PostgresPassword        string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBPassword:     params.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("fitsuggest", "main", promRegistry)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	redisAvailable := true
	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis, falling back to local rate limiting: %s", err)
		redisAvailable = false
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fitsuggest", rdb)
	if err != nil {
		dbPool.Close()
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	if params.GeminiAPIKey == "" {
		log.Warnln("gemini api key empty, suggestion requests will fail")
	}
	geminiClient := inference.NewGeminiClient(inference.GeminiClientParams{
		BaseURL:      params.Config.GeminiBaseURL,
		APIKey:       params.GeminiAPIKey,
		DefaultModel: params.Config.DefaultModel,
		Timeout:      params.Config.InferenceTimeout.Duration,
		HTTPClient:   tracedHttpClient,
	})

	suggestService, err := flows.NewService(
		suggest.NewInvoker(geminiClient, metricsManager),
		params.Config.FlowModels,
	)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("new suggest service: %w", err)
	}

	workoutsRepo := workouts.NewRepo(dbPool)
	if err := workoutsRepo.EnsureSchema(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("workouts schema: %w", err)
	}
	cacheSize := params.Config.WorkoutsCacheBytes
	if cacheSize == 0 {
		cacheSize = workouts.DefaultCacheSize
	}

	return &Server{
		config:          params.Config,
		dbPool:          dbPool,
		versionInfo:     params.VersionInfo,
		apiKeyHash:      params.APIKeyHash,
		redisClient:     rdb,
		redisAvailable:  redisAvailable,
		suggestService:  suggestService,
		workoutsService: workouts.NewService(workoutsRepo, freecache.NewCache(cacheSize), metricsManager),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) rateLimiter() middleware.RequestRateLimiter {
	if s.redisAvailable {
		return redis_rate.NewLimiter(s.redisClient)
	}
	return middleware.NewLocalRateLimiter()
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	miscHandler := misc.NewHandler(s.versionInfo, s.redisClient, s.dbPool)
	miscHandler.SetupRoutes(r)

	suggestHandler := flows.NewHandler(s.suggestService)
	suggestRouter := r.PathPrefix("/suggest").Subrouter()
	suggestRouter.HandleFunc("/diet-plan", suggestHandler.HandleDietPlan).Methods("POST", "OPTIONS").Name("suggest-diet-plan")
	suggestRouter.HandleFunc("/workout-modifications", suggestHandler.HandleWorkoutModifications).Methods("POST", "OPTIONS").Name("suggest-workout-modifications")
	suggestRouter.HandleFunc("/exercises", suggestHandler.HandleExercises).Methods("POST", "OPTIONS").Name("suggest-exercises")
	suggestRouter.HandleFunc("/schedule", suggestHandler.HandleSchedule).Methods("POST", "OPTIONS").Name("suggest-schedule")
	suggestRouter.HandleFunc("/nutrition", suggestHandler.HandleNutrition).Methods("POST", "OPTIONS").Name("suggest-nutrition")
	if s.config.SuggestRateLimit > 0 {
		suggestRouter.Use(middleware.RateLimit(s.rateLimiter(), "suggest", s.config.SuggestRateLimit, s.metricsManager))
	}

	workoutsHandler := workouts.NewHandler(s.workoutsService)
	r.HandleFunc("/workouts/sync", workoutsHandler.HandleSync).Methods("POST", "OPTIONS").Name("workouts-sync")
	r.HandleFunc("/workouts/{id}", workoutsHandler.HandleGet).Methods("GET", "OPTIONS").Name("workouts-get")

	mcpServer := suggestmcp.NewServer(s.suggestService)
	mcpHandler := mcpsdk.NewStreamableHTTPHandler(func(*http.Request) *mcpsdk.Server {
		return mcpServer
	}, nil)
	r.PathPrefix("/mcp").Handler(mcpHandler).Name("mcp")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.apiKeyHash)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: 2 * time.Minute, // inference calls can be slow
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsPort := s.config.MetricsPort
	if metricsPort == 0 {
		metricsPort = defaultMetricsPort
	}
	metricsAddr := net.JoinHostPort(host, strconv.Itoa(metricsPort))
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
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

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests first, in-flight ones still need redis and the db
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

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
