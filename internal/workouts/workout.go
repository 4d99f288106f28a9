// Package workouts stores workout logs synced from the app.
package workouts

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/multierr"
)

var ErrInvalidWorkoutLog = errors.New("invalid workout log")

type ExerciseSet struct {
	ID     string  `json:"id"`
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

type Exercise struct {
	ID   string        `json:"id"`
	Name string        `json:"name"`
	Sets []ExerciseSet `json:"sets"`
}

type WorkoutLog struct {
	ID        string     `json:"id"`
	Date      time.Time  `json:"date"`
	Name      string     `json:"name"`
	Exercises []Exercise `json:"exercises"`
	Notes     string     `json:"notes,omitempty"`
}

// Validate reports every problem with the log, each wrapping ErrInvalidWorkoutLog.
func (w WorkoutLog) Validate() error {
	var errs error
	invalid := func(format string, args ...any) {
		errs = multierr.Append(errs, fmt.Errorf("%w %q: %s", ErrInvalidWorkoutLog, w.ID, fmt.Sprintf(format, args...)))
	}

	if w.ID == "" {
		invalid("empty id")
	}
	if w.Name == "" {
		invalid("empty name")
	}
	if w.Date.IsZero() {
		invalid("missing date")
	}
	for i, e := range w.Exercises {
		if e.ID == "" {
			invalid("exercise %d: empty id", i)
		}
		for j, s := range e.Sets {
			if s.Reps < 0 || s.Weight < 0 {
				invalid("exercise %s set %d: negative reps or weight", e.ID, j)
			}
		}
	}
	return errs
}

// Fingerprint identifies the log content, so an unchanged log can be skipped.
func (w WorkoutLog) Fingerprint() (string, error) {
	data, err := json.Marshal(w)
	if err != nil {
		return "", fmt.Errorf("marshal workout log: %w", err)
	}
	return strconv.FormatUint(xxhash.Sum64(data), 16), nil
}
