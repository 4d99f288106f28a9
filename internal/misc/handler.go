// Package misc serves the service's small operational endpoints.
package misc

import (
	"context"
	"net/http"
	"time"

	"github.com/2beens/fitsuggest/internal/telemetry/tracing"
	"github.com/2beens/fitsuggest/pkg"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const healthCheckTimeout = 3 * time.Second

type dbPinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	versionInfo string
	redisClient *redis.Client
	db          dbPinger
}

type HealthResponse struct {
	Status   string `json:"status"`
	Redis    string `json:"redis"`
	Postgres string `json:"postgres"`
}

func NewHandler(versionInfo string, redisClient *redis.Client, db dbPinger) *Handler {
	return &Handler{
		versionInfo: versionInfo,
		redisClient: redisClient,
		db:          db,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
	mainRouter.HandleFunc("/health", handler.handleHealth).Methods("GET").Name("health")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}

// handleHealth pings redis and postgres. Any failure gives 503.
func (handler *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.health")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ok", Redis: "ok", Postgres: "ok"}
	status := http.StatusOK

	if handler.redisClient == nil {
		resp.Redis = "disabled"
	} else if err := handler.redisClient.Ping(ctx).Err(); err != nil {
		log.Errorf("health: ping redis: %s", err)
		resp.Redis = err.Error()
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	if handler.db == nil {
		resp.Postgres = "disabled"
	} else if err := handler.db.Ping(ctx); err != nil {
		log.Errorf("health: ping postgres: %s", err)
		resp.Postgres = err.Error()
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	span.SetAttributes(attribute.String("health.status", resp.Status))
	if status != http.StatusOK {
		span.SetStatus(codes.Error, resp.Status)
	}
	pkg.WriteJSON(w, resp, status)
}
