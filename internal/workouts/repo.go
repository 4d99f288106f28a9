package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitsuggest/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrWorkoutNotFound = errors.New("workout log not found")

const createTableSQL = `
	CREATE TABLE IF NOT EXISTS workout_log (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		performed_at TIMESTAMPTZ NOT NULL,
		notes        TEXT NOT NULL DEFAULT '',
		exercises    JSONB NOT NULL,
		fingerprint  TEXT NOT NULL,
		synced_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create workout_log table: %w", err)
	}
	return nil
}

// Upsert stores the log, replacing a stored one with the same id. It returns
// false when the stored log already has the same fingerprint.
func (r *Repo) Upsert(ctx context.Context, log WorkoutLog, fingerprint string) (stored bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.upsert")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("workout.id", log.ID))

	exercisesJSON, err := json.Marshal(log.Exercises)
	if err != nil {
		return false, fmt.Errorf("marshal exercises: %w", err)
	}

	tag, err := r.db.Exec(ctx, `
		INSERT INTO workout_log (id, name, performed_at, notes, exercises, fingerprint, synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			performed_at = EXCLUDED.performed_at,
			notes = EXCLUDED.notes,
			exercises = EXCLUDED.exercises,
			fingerprint = EXCLUDED.fingerprint,
			synced_at = EXCLUDED.synced_at
		WHERE workout_log.fingerprint <> EXCLUDED.fingerprint
	`,
		log.ID,
		log.Name,
		log.Date,
		log.Notes,
		exercisesJSON,
		fingerprint,
		time.Now(),
	)
	if err != nil {
		return false, fmt.Errorf("upsert workout log %s: %w", log.ID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repo) Get(ctx context.Context, id string) (_ *WorkoutLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var (
		log           WorkoutLog
		exercisesJSON []byte
	)
	err = r.db.QueryRow(ctx, `
		SELECT id, name, performed_at, notes, exercises
		FROM workout_log
		WHERE id = $1
	`, id).Scan(&log.ID, &log.Name, &log.Date, &log.Notes, &exercisesJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, fmt.Errorf("get workout log %s: %w", id, err)
	}

	if err := json.Unmarshal(exercisesJSON, &log.Exercises); err != nil {
		return nil, fmt.Errorf("unmarshal exercises of %s: %w", id, err)
	}
	return &log, nil
}
