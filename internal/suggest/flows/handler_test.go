package flows_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/2beens/fitsuggest/internal/suggest"
	"github.com/2beens/fitsuggest/internal/suggest/flows"
	"github.com/2beens/fitsuggest/internal/suggest/inference"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newJSONRequest(t *testing.T, body string) *http.Request {
	t.Helper()
	req, err := http.NewRequest("POST", "/", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHandler_HandleDietPlan(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := NewMocksuggestService(ctrl)
	h := flows.NewHandler(mockService)

	expected := &flows.DietPlanResponse{
		DailySummary: flows.MacroSummary{Calories: 2000, Protein: 150, Carbohydrates: 200, Fat: 60},
		Explanation:  "balanced",
		MealPlan:     []flows.Meal{{Time: "Breakfast", FoodName: "Eggs", Calories: 300, Protein: 20, Carbohydrates: 2, Fat: 20}},
	}
	mockService.EXPECT().
		SuggestDietPlan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req flows.DietPlanRequest) (*flows.DietPlanResponse, error) {
			assert.Equal(t, flows.DietPlanRequest{
				Age: flows.Float(29), Height: flows.Float(165.5), Weight: flows.Float(61),
				Sex: flows.SexFemale, ActivityLevel: flows.ActivityLightlyActive, Goal: flows.GoalLoseWeight,
			}, req)
			return expected, nil
		})

	rr := httptest.NewRecorder()
	req := newJSONRequest(t, `{"age":29,"height":165.5,"weight":61,"sex":"female","activityLevel":"lightly_active","goal":"lose_weight"}`)
	http.HandlerFunc(h.HandleDietPlan).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var got flows.DietPlanResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, *expected, got)
}

func TestHandler_RejectsBeforeService(t *testing.T) {
	cases := []struct {
		name        string
		handler     func(h *flows.Handler) http.HandlerFunc
		contentType string
		body        string
		wantBody    string
	}{
		{
			name:        "missing_number",
			handler:     func(h *flows.Handler) http.HandlerFunc { return h.HandleDietPlan },
			contentType: "application/json",
			body:        `{"height":165.5,"weight":61,"sex":"female","activityLevel":"lightly_active","goal":"lose_weight"}`,
			wantBody:    `missing required field "age"`,
		},
		{
			name:        "bad_enum",
			handler:     func(h *flows.Handler) http.HandlerFunc { return h.HandleExercises },
			contentType: "application/json; charset=utf-8",
			body:        `{"category":"Neck"}`,
			wantBody:    `invalid value "Neck"`,
		},
		{
			name:        "nutrition_nothing_given",
			handler:     func(h *flows.Handler) http.HandlerFunc { return h.HandleNutrition },
			contentType: "application/json",
			body:        `{"imageDataUri":null}`,
			wantBody:    "at least one of [imageDataUri, foodName]",
		},
		{
			name:        "schedule_plans_null",
			handler:     func(h *flows.Handler) http.HandlerFunc { return h.HandleSchedule },
			contentType: "application/json",
			body:        `{"goal":"gain_muscle","daysPerWeek":3,"availablePlans":null}`,
			wantBody:    `field "availablePlans": expected list, got null`,
		},
		{
			name:        "wrong_content_type",
			handler:     func(h *flows.Handler) http.HandlerFunc { return h.HandleWorkoutModifications },
			contentType: "text/plain",
			body:        `{}`,
			wantBody:    "invalid content type",
		},
		{
			name:        "broken_json",
			handler:     func(h *flows.Handler) http.HandlerFunc { return h.HandleSchedule },
			contentType: "application/json",
			body:        `{"goal":`,
			wantBody:    "invalid json body",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			// no expectations: the service must not be called
			h := flows.NewHandler(NewMocksuggestService(ctrl))

			req := newJSONRequest(t, tc.body)
			req.Header.Set("Content-Type", tc.contentType)
			rr := httptest.NewRecorder()
			tc.handler(h).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.wantBody)
		})
	}
}

func TestHandler_ErrorStatus(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "invalid_request",
			err:        &suggest.RequestError{Flow: flows.FlowNutrition, Err: errors.New("bad")},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "inference_failed",
			err:        &suggest.InferenceError{Flow: flows.FlowNutrition, Err: &inference.APIError{StatusCode: 500}},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "invalid_response",
			err:        &suggest.ResponseError{Flow: flows.FlowNutrition, Err: errors.New("missing foodName")},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "unexpected",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := NewMocksuggestService(ctrl)
			h := flows.NewHandler(mockService)

			mockService.EXPECT().
				AnalyzeNutrition(gomock.Any(), flows.NutritionRequest{FoodName: "apple"}).
				Return(nil, tc.err)

			rr := httptest.NewRecorder()
			http.HandlerFunc(h.HandleNutrition).ServeHTTP(rr, newJSONRequest(t, `{"foodName":"apple"}`))

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.err.Error())
			assert.Equal(t, tc.wantStatus, flows.StatusForError(tc.err))
		})
	}
}

func TestHandler_HandleSchedule(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := NewMocksuggestService(ctrl)
	h := flows.NewHandler(mockService)

	p1 := "p1"
	mockService.EXPECT().
		SuggestSchedule(gomock.Any(), flows.ScheduleRequest{
			Goal:           flows.GoalGainMuscle,
			DaysPerWeek:    1,
			AvailablePlans: []flows.PlanRef{{ID: "p1", Name: "Push"}},
		}).
		Return(&flows.ScheduleResponse{
			Schedule:    []flows.ScheduleDay{{DayOfWeek: "Monday", PlanID: &p1}, {DayOfWeek: "Tuesday"}},
			Explanation: "one day",
		}, nil)

	rr := httptest.NewRecorder()
	req := newJSONRequest(t, `{"goal":"gain_muscle","daysPerWeek":1,"availablePlans":[{"id":"p1","name":"Push"}]}`)
	http.HandlerFunc(h.HandleSchedule).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t,
		`{"schedule":[{"dayOfWeek":"Monday","planId":"p1"},{"dayOfWeek":"Tuesday","planId":null}],"explanation":"one day"}`,
		rr.Body.String(),
	)
}

func TestHandler_HandleSchedule_IntegerWithFraction(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := NewMocksuggestService(ctrl)
	h := flows.NewHandler(mockService)

	mockService.EXPECT().
		SuggestSchedule(gomock.Any(), flows.ScheduleRequest{
			Goal:           flows.GoalLoseWeight,
			DaysPerWeek:    3,
			AvailablePlans: []flows.PlanRef{{ID: "p1", Name: "Full body"}},
		}).
		Return(&flows.ScheduleResponse{Schedule: []flows.ScheduleDay{}, Explanation: "ok"}, nil)

	rr := httptest.NewRecorder()
	req := newJSONRequest(t, `{"goal":"lose_weight","daysPerWeek":3.0,"availablePlans":[{"id":"p1","name":"Full body"}]}`)
	http.HandlerFunc(h.HandleSchedule).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"schedule":[],"explanation":"ok"}`, rr.Body.String())
}
