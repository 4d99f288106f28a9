package flows

import (
	"github.com/2beens/fitsuggest/internal/suggest"
	"github.com/2beens/fitsuggest/internal/suggest/prompt"
	"github.com/2beens/fitsuggest/internal/suggest/schema"
)

const FlowWorkoutModifications = "workout_modifications"

// WorkoutModificationsRequest carries the current plan as an opaque JSON
// string; it is passed to the model as is and never parsed here. An empty plan
// counts as missing.
type WorkoutModificationsRequest struct {
	Age                *float64 `json:"age,omitempty" jsonschema:"age of the user in years"`
	Height             *float64 `json:"height,omitempty" jsonschema:"height of the user in centimeters"`
	Sex                Sex      `json:"sex,omitempty" jsonschema:"male or female"`
	CurrentWorkoutPlan string   `json:"currentWorkoutPlan,omitempty" jsonschema:"the current workout plan as a JSON string"`
}

type WorkoutModificationsResponse struct {
	SuggestedWorkoutPlan string `json:"suggestedWorkoutPlan"`
	Explanation          string `json:"explanation"`
}

var workoutModificationsInput = &schema.Schema{
	Name: "workoutModificationsRequest",
	Fields: []schema.Field{
		{Name: "age", Kind: schema.KindNumber, Description: "The age of the user in years."},
		{Name: "height", Kind: schema.KindNumber, Description: "The height of the user in centimeters."},
		sexField("The sex of the user."),
		{Name: "currentWorkoutPlan", Kind: schema.KindString, Description: "The current workout plan of the user as a JSON string."},
	},
}

var workoutModificationsOutput = &schema.Schema{
	Name: "workoutModificationsResponse",
	Fields: []schema.Field{
		{Name: "suggestedWorkoutPlan", Kind: schema.KindString, Description: "The modified workout plan as a JSON string."},
		{Name: "explanation", Kind: schema.KindString, Description: "Why the workout plan was modified this way."},
	},
}

var WorkoutModificationsFlow = &suggest.Flow{
	Name:   FlowWorkoutModifications,
	Input:  workoutModificationsInput,
	Output: workoutModificationsOutput,
	Prompt: prompt.Bind(workoutModificationsInput, prompt.New("workoutModifications",
		prompt.Text("You are a personal trainer who suggests modifications to workout plans based on user characteristics.\n"),
		prompt.Text("Given the following information about the user, suggest modifications to their workout plan and explain the reasoning for each one. "+
			"The user keeps full control over the final plan; the suggestions are informational only. "),
		prompt.Text(noFiller+"Return the suggested plan as a JSON string in the same shape as the current plan.\n\n"),
		prompt.Text("User Age: "), prompt.Field("age"), prompt.Text("\n"),
		prompt.Text("User Height (cm): "), prompt.Field("height"), prompt.Text("\n"),
		prompt.Text("User Sex: "), prompt.Field("sex"), prompt.Text("\n"),
		prompt.Text("Current Workout Plan: "), prompt.Field("currentWorkoutPlan"), prompt.Text("\n"),
	)),
}
