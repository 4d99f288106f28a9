package workouts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/2beens/fitsuggest/internal/telemetry/tracing"
	"github.com/2beens/fitsuggest/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const maxSyncBodyBytes = 4 << 20

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

type workoutsService interface {
	Sync(ctx context.Context, logs []WorkoutLog) (*SyncResult, error)
	Get(ctx context.Context, id string) (*WorkoutLog, error)
}

type SyncRequest struct {
	WorkoutLogs []WorkoutLog `json:"workoutLogs"`
}

type SyncResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	*SyncResult
}

type Handler struct {
	service workoutsService
}

func NewHandler(service workoutsService) *Handler {
	return &Handler{
		service: service,
	}
}

// HandleSync accepts {"workoutLogs": [...]} or a bare array of logs.
func (h *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.sync")
	defer span.End()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSyncBodyBytes))
	if err != nil {
		pkg.WriteJSON(w, SyncResponse{Message: "Sync failed", Error: "failed to read request body"}, http.StatusBadRequest)
		return
	}

	var logs []WorkoutLog
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &logs)
	} else {
		var req SyncRequest
		err = json.Unmarshal(body, &req)
		logs = req.WorkoutLogs
	}
	if err != nil {
		log.Tracef("workouts sync, unmarshal body: %s", err)
		pkg.WriteJSON(w, SyncResponse{Message: "Sync failed", Error: "invalid json body"}, http.StatusBadRequest)
		return
	}

	result, err := h.service.Sync(ctx, logs)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrInvalidWorkoutLog) {
			status = http.StatusBadRequest
		} else {
			log.Errorf("workouts sync: %s", err)
		}
		pkg.WriteJSON(w, SyncResponse{Message: "Sync failed", Error: err.Error()}, status)
		return
	}

	pkg.WriteJSON(w, SyncResponse{Message: "Sync successful", SyncResult: result}, http.StatusOK)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "missing workout id", http.StatusBadRequest)
		return
	}

	workoutLog, err := h.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("get workout %s: %s", id, err)
		http.Error(w, "failed to get workout", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, workoutLog, http.StatusOK)
}
