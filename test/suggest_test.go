//go:build integration_test || all_tests

package test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/fitsuggest/internal/suggest/flows"
)

func (s *IntegrationTestSuite) TestSuggestExercises() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.gemini.respondWith(`{"exercises": [{"name": "Squat", "description": "Hips back and down.", "equipment": "Barbell"}]}`)

	status, body := s.post(ctx, "/suggest/exercises", `{"category": "Legs"}`, false)
	s.Equal(http.StatusUnauthorized, status)

	status, body = s.post(ctx, "/suggest/exercises", `{"category": "Legs"}`, true)
	s.Require().Equal(http.StatusOK, status, string(body))

	var resp flows.ExercisesResponse
	s.Require().NoError(json.Unmarshal(body, &resp))
	s.Require().Len(resp.Exercises, 1)
	s.Equal("Squat", resp.Exercises[0].Name)
}

func (s *IntegrationTestSuite) TestSuggestNutrition_UsesFlowModel() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.gemini.respondWith(`{"foodName": "Apple", "calories": 95, "protein": 0.5, "carbohydrates": 25, "fat": 0.3, "fiber": 4.4}`)

	status, body := s.post(ctx, "/suggest/nutrition", `{"foodName": "Apple"}`, true)
	s.Require().Equal(http.StatusOK, status, string(body))

	s.gemini.mu.Lock()
	lastPath := s.gemini.requests[len(s.gemini.requests)-1]
	s.gemini.mu.Unlock()
	s.Contains(lastPath, "/models/test-vision-model:generateContent")
}

func (s *IntegrationTestSuite) TestSuggest_InvalidResponseIsBadGateway() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.gemini.respondWith(`{"exercises": "not a list"}`)

	status, body := s.post(ctx, "/suggest/exercises", `{"category": "Abs"}`, true)
	s.Equal(http.StatusBadGateway, status, string(body))
}

func (s *IntegrationTestSuite) TestHealth() {
	resp, err := s.httpClient.Get(serverEndpoint + "/health")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}
