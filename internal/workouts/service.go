package workouts

import (
	"context"
	"fmt"

	"github.com/2beens/fitsuggest/internal/telemetry/metrics"
	"github.com/2beens/fitsuggest/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=workouts_test

const (
	megabyte              = 1024 * 1024
	DefaultCacheSize      = 16 * megabyte
	fingerprintExpireSecs = 24 * 60 * 60
)

type workoutsRepo interface {
	Upsert(ctx context.Context, log WorkoutLog, fingerprint string) (bool, error)
	Get(ctx context.Context, id string) (*WorkoutLog, error)
}

type SyncResult struct {
	Synced  int `json:"synced"`
	Skipped int `json:"skipped"`
}

// Service syncs workout logs. Logs whose fingerprint was seen recently are
// skipped without touching the database.
type Service struct {
	repo           workoutsRepo
	cache          *freecache.Cache
	metricsManager *metrics.Manager
}

func NewService(repo workoutsRepo, cache *freecache.Cache, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		cache:          cache,
		metricsManager: metricsManager,
	}
}

// Sync validates the whole batch first; an invalid log rejects the batch
// before anything is written.
func (s *Service) Sync(ctx context.Context, logs []WorkoutLog) (_ *SyncResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.sync")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("workouts.count", len(logs)))

	var validationErrs error
	fingerprints := make([]string, len(logs))
	for i, l := range logs {
		validationErrs = multierr.Append(validationErrs, l.Validate())
		fp, err := l.Fingerprint()
		if err != nil {
			return nil, err
		}
		fingerprints[i] = fp
	}
	if validationErrs != nil {
		return nil, validationErrs
	}

	result := &SyncResult{}
	for i, l := range logs {
		fp := fingerprints[i]
		if cached, err := s.cache.Get([]byte(l.ID)); err == nil && string(cached) == fp {
			log.Tracef("workouts: %s unchanged since last sync, skipping", l.ID)
			result.Skipped++
			continue
		}

		stored, err := s.repo.Upsert(ctx, l, fp)
		if err != nil {
			return result, fmt.Errorf("sync workout %s: %w", l.ID, err)
		}
		if stored {
			result.Synced++
		} else {
			result.Skipped++
		}

		if err := s.cache.Set([]byte(l.ID), []byte(fp), fingerprintExpireSecs); err != nil {
			log.Warnf("workouts: cache fingerprint of %s: %s", l.ID, err)
		}
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterWorkoutsSynced.WithLabelValues("stored").Add(float64(result.Synced))
		s.metricsManager.CounterWorkoutsSynced.WithLabelValues("skipped").Add(float64(result.Skipped))
	}
	return result, nil
}

// Get returns the stored log, or ErrWorkoutNotFound.
func (s *Service) Get(ctx context.Context, id string) (_ *WorkoutLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("workout.id", id))

	return s.repo.Get(ctx, id)
}
