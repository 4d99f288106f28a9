package mcp

import (
	"context"
	"encoding/json"

	"github.com/2beens/fitsuggest/internal/suggest/flows"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
)

// suggestService is the subset of flows.Service the tools call.
type suggestService interface {
	SuggestDietPlan(ctx context.Context, req flows.DietPlanRequest) (*flows.DietPlanResponse, error)
	SuggestWorkoutModifications(ctx context.Context, req flows.WorkoutModificationsRequest) (*flows.WorkoutModificationsResponse, error)
	SuggestExercises(ctx context.Context, req flows.ExercisesRequest) (*flows.ExercisesResponse, error)
	SuggestSchedule(ctx context.Context, req flows.ScheduleRequest) (*flows.ScheduleResponse, error)
	AnalyzeNutrition(ctx context.Context, req flows.NutritionRequest) (*flows.NutritionResponse, error)
}

// Handler turns tool calls into flow invocations and formats the MCP result.
type Handler struct {
	service suggestService
}

func NewHandler(service suggestService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SuggestDietPlanTool() func(context.Context, *mcp.CallToolRequest, flows.DietPlanRequest) (*mcp.CallToolResult, any, error) {
	return tool("diet plan", h.service.SuggestDietPlan)
}

func (h *Handler) SuggestWorkoutModificationsTool() func(context.Context, *mcp.CallToolRequest, flows.WorkoutModificationsRequest) (*mcp.CallToolResult, any, error) {
	return tool("workout modifications", h.service.SuggestWorkoutModifications)
}

func (h *Handler) SuggestExercisesTool() func(context.Context, *mcp.CallToolRequest, flows.ExercisesRequest) (*mcp.CallToolResult, any, error) {
	return tool("exercises", h.service.SuggestExercises)
}

func (h *Handler) SuggestScheduleTool() func(context.Context, *mcp.CallToolRequest, flows.ScheduleRequest) (*mcp.CallToolResult, any, error) {
	return tool("schedule", h.service.SuggestSchedule)
}

func (h *Handler) AnalyzeNutritionTool() func(context.Context, *mcp.CallToolRequest, flows.NutritionRequest) (*mcp.CallToolResult, any, error) {
	return tool("nutrition analysis", h.service.AnalyzeNutrition)
}

// tool adapts a flow call: suggestion errors become IsError results, never
// protocol errors, so the calling model sees what went wrong.
func tool[In, Out any](what string, call func(context.Context, In) (*Out, error)) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in In) (*mcp.CallToolResult, any, error) {
		out, err := call(ctx, in)
		if err != nil {
			log.Debugf("mcp: %s tool: %s", what, err)
			return errorResult("Error suggesting " + what + ": " + err.Error()), nil, nil
		}
		raw, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return errorResult("Error encoding response: " + err.Error()), nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
		}, nil, nil
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
