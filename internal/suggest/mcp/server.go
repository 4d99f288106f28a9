// Package mcp exposes the suggestion flows as MCP tools. The same server runs
// over stdio (cmd/suggest_mcp) and over streamable HTTP at /mcp on the main
// service.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	ServerName    = "fitsuggest"
	ServerVersion = "1.0.0"
)

// NewServer builds an MCP server with one tool per suggestion flow.
func NewServer(service suggestService) *mcp.Server {
	h := NewHandler(service)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "suggest_diet_plan",
		Description: "Suggests daily macros (calories, protein, carbohydrates, fat) and a one-day meal plan for a user profile: age, height (cm), weight (kg), sex, activity level, goal, optional dietary preference. Meal totals are estimates and may not add up to the daily summary.",
	}, h.SuggestDietPlanTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "suggest_workout_modifications",
		Description: "Suggests modifications to a workout plan given as a JSON string, for a user's age, height and sex. Returns the suggested plan as a JSON string plus an explanation.",
	}, h.SuggestWorkoutModificationsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "suggest_exercises",
		Description: "Suggests about five exercises (name, description, equipment) for a category: Chest, Back, Shoulders, Biceps, Triceps, Legs, Abs or Cardio.",
	}, h.SuggestExercisesTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "suggest_schedule",
		Description: "Suggests a Monday to Sunday workout schedule for a goal and number of workout days (1-7), assigning available plan ids to workout days and null to rest days. Returned plan ids are not checked against the available plans.",
	}, h.SuggestScheduleTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "analyze_nutrition",
		Description: "Estimates calories, protein, carbohydrates, fat and fiber of a food from a photo (base64 image data uri) and/or its name. At least one is required; the photo wins when both are given.",
	}, h.AnalyzeNutritionTool())

	return s
}
