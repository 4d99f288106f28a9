package flows

import (
	"context"
	"fmt"

	"github.com/2beens/fitsuggest/internal/suggest"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=flows_test

type invoker interface {
	Invoke(ctx context.Context, flow *suggest.Flow, req, out any) error
}

// All lists every flow, keyed by its name.
func All() map[string]*suggest.Flow {
	return map[string]*suggest.Flow{
		FlowDietPlan:             DietPlanFlow,
		FlowWorkoutModifications: WorkoutModificationsFlow,
		FlowExercises:            ExercisesFlow,
		FlowSchedule:             ScheduleFlow,
		FlowNutrition:            NutritionFlow,
	}
}

// Service exposes the suggestion flows as typed operations. Each call is a
// single independent invocation; the service holds no mutable state.
type Service struct {
	invoker invoker
	flows   map[string]*suggest.Flow
}

// NewService builds the service. models optionally maps flow names to the
// model that flow should use; unknown names are rejected.
func NewService(invoker invoker, models map[string]string) (*Service, error) {
	flows := All()
	for name, model := range models {
		f, ok := flows[name]
		if !ok {
			return nil, fmt.Errorf("model override for unknown flow %q", name)
		}
		if model != "" {
			flows[name] = f.WithModel(model)
		}
	}
	return &Service{
		invoker: invoker,
		flows:   flows,
	}, nil
}

// Flow returns the flow as configured in this service.
func (s *Service) Flow(name string) (*suggest.Flow, bool) {
	f, ok := s.flows[name]
	return f, ok
}

func (s *Service) SuggestDietPlan(ctx context.Context, req DietPlanRequest) (*DietPlanResponse, error) {
	var resp DietPlanResponse
	if err := s.invoker.Invoke(ctx, s.flows[FlowDietPlan], req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *Service) SuggestWorkoutModifications(ctx context.Context, req WorkoutModificationsRequest) (*WorkoutModificationsResponse, error) {
	var resp WorkoutModificationsResponse
	if err := s.invoker.Invoke(ctx, s.flows[FlowWorkoutModifications], req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *Service) SuggestExercises(ctx context.Context, req ExercisesRequest) (*ExercisesResponse, error) {
	var resp ExercisesResponse
	if err := s.invoker.Invoke(ctx, s.flows[FlowExercises], req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SuggestSchedule does not check that returned plan ids exist in the request;
// see UnknownPlanIDs.
func (s *Service) SuggestSchedule(ctx context.Context, req ScheduleRequest) (*ScheduleResponse, error) {
	var resp ScheduleResponse
	if err := s.invoker.Invoke(ctx, s.flows[FlowSchedule], req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *Service) AnalyzeNutrition(ctx context.Context, req NutritionRequest) (*NutritionResponse, error) {
	var resp NutritionResponse
	if err := s.invoker.Invoke(ctx, s.flows[FlowNutrition], req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
