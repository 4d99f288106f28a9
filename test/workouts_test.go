//go:build integration_test || all_tests

package test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/fitsuggest/internal/workouts"
)

const syncBody = `{"workoutLogs": [{
	"id": "integration-w1",
	"date": "2026-03-14T18:30:00Z",
	"name": "Leg day",
	"exercises": [{"id": "squat", "name": "Squat", "sets": [{"id": "s1", "reps": 5, "weight": 100}]}],
	"notes": "heavy"
}]}`

func (s *IntegrationTestSuite) TestWorkoutsSync() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	status, body := s.post(ctx, "/workouts/sync", syncBody, true)
	s.Require().Equal(http.StatusOK, status, string(body))

	var resp workouts.SyncResponse
	s.Require().NoError(json.Unmarshal(body, &resp))
	s.Equal("Sync successful", resp.Message)
	s.Equal(1, resp.Synced)

	status, body = s.get(ctx, "/workouts/integration-w1", true)
	s.Require().Equal(http.StatusOK, status, string(body))
	var stored workouts.WorkoutLog
	s.Require().NoError(json.Unmarshal(body, &stored))
	s.Equal("Leg day", stored.Name)
	s.Require().Len(stored.Exercises, 1)
	s.Equal(100.0, stored.Exercises[0].Sets[0].Weight)

	// unchanged log is skipped
	status, body = s.post(ctx, "/workouts/sync", syncBody, true)
	s.Require().Equal(http.StatusOK, status, string(body))
	s.Require().NoError(json.Unmarshal(body, &resp))
	s.Equal(0, resp.Synced)
	s.Equal(1, resp.Skipped)

	status, _ = s.get(ctx, "/workouts/never-synced", true)
	s.Equal(http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestWorkoutsRepo_UpsertSkipsSameFingerprint() {
	ctx := context.Background()
	repo := workouts.NewRepo(s.DB)

	var log workouts.WorkoutLog
	s.Require().NoError(json.Unmarshal([]byte(`{"id": "repo-w1", "date": "2026-03-15T08:00:00Z", "name": "Pull day", "exercises": []}`), &log))

	stored, err := repo.Upsert(ctx, log, "fp-1")
	s.Require().NoError(err)
	s.True(stored)

	stored, err = repo.Upsert(ctx, log, "fp-1")
	s.Require().NoError(err)
	s.False(stored)

	log.Name = "Pull day (edited)"
	stored, err = repo.Upsert(ctx, log, "fp-2")
	s.Require().NoError(err)
	s.True(stored)

	got, err := repo.Get(ctx, "repo-w1")
	s.Require().NoError(err)
	s.Equal("Pull day (edited)", got.Name)

	_, err = repo.Get(ctx, "missing")
	s.ErrorIs(err, workouts.ErrWorkoutNotFound)
}
