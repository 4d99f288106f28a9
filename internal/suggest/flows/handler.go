package flows

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/2beens/fitsuggest/internal/suggest"
	"github.com/2beens/fitsuggest/internal/suggest/schema"
	"github.com/2beens/fitsuggest/internal/telemetry/tracing"
	"github.com/2beens/fitsuggest/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=flows_test

// images come in as base64 data uris, hence the generous limit
const maxRequestBodyBytes = 12 << 20

type suggestService interface {
	SuggestDietPlan(ctx context.Context, req DietPlanRequest) (*DietPlanResponse, error)
	SuggestWorkoutModifications(ctx context.Context, req WorkoutModificationsRequest) (*WorkoutModificationsResponse, error)
	SuggestExercises(ctx context.Context, req ExercisesRequest) (*ExercisesResponse, error)
	SuggestSchedule(ctx context.Context, req ScheduleRequest) (*ScheduleResponse, error)
	AnalyzeNutrition(ctx context.Context, req NutritionRequest) (*NutritionResponse, error)
}

type Handler struct {
	service suggestService
}

func NewHandler(service suggestService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleDietPlan(w http.ResponseWriter, r *http.Request) {
	serveFlow(w, r, DietPlanFlow, h.service.SuggestDietPlan)
}

func (h *Handler) HandleWorkoutModifications(w http.ResponseWriter, r *http.Request) {
	serveFlow(w, r, WorkoutModificationsFlow, h.service.SuggestWorkoutModifications)
}

func (h *Handler) HandleExercises(w http.ResponseWriter, r *http.Request) {
	serveFlow(w, r, ExercisesFlow, h.service.SuggestExercises)
}

func (h *Handler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	serveFlow(w, r, ScheduleFlow, h.service.SuggestSchedule)
}

func (h *Handler) HandleNutrition(w http.ResponseWriter, r *http.Request) {
	serveFlow(w, r, NutritionFlow, h.service.AnalyzeNutrition)
}

// StatusForError maps suggestion errors to HTTP status codes: bad input is the
// caller's fault, a failed or malformed inference is an upstream failure.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, suggest.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, suggest.ErrInferenceFailed), errors.Is(err, suggest.ErrInvalidResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// serveFlow validates the raw body against the flow input schema and decodes
// the typed request from the validated value, so a missing number is reported
// instead of becoming zero.
func serveFlow[Req, Resp any](
	w http.ResponseWriter,
	r *http.Request,
	flow *suggest.Flow,
	call func(context.Context, Req) (*Resp, error),
) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.suggest."+flow.Name)
	defer span.End()

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		log.Tracef("suggest %s, read body: %s", flow.Name, err)
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	raw, err := schema.Decode(body)
	if err != nil {
		log.Tracef("suggest %s, decode body: %s", flow.Name, err)
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	normalized, err := schema.Validate(flow.Input, raw)
	if err != nil {
		reqErr := &suggest.RequestError{Flow: flow.Name, Err: err}
		http.Error(w, reqErr.Error(), http.StatusBadRequest)
		return
	}

	req, err := decodeNormalized[Req](normalized)
	if err != nil {
		log.Tracef("suggest %s, unmarshal request: %s", flow.Name, err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := call(ctx, req)
	if err != nil {
		status := StatusForError(err)
		if status >= http.StatusInternalServerError {
			log.Errorf("suggest %s: %s", flow.Name, err)
		}
		http.Error(w, err.Error(), status)
		return
	}

	respBytes, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("suggest %s, marshal response: %s", flow.Name, err)
		http.Error(w, "failed to encode suggestion", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

func decodeNormalized[Req any](normalized map[string]any) (Req, error) {
	var req Req
	b, err := json.Marshal(normalized)
	if err != nil {
		return req, err
	}
	err = json.Unmarshal(b, &req)
	return req, err
}
