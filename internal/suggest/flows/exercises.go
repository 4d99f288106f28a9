package flows

import (
	"github.com/2beens/fitsuggest/internal/suggest"
	"github.com/2beens/fitsuggest/internal/suggest/prompt"
	"github.com/2beens/fitsuggest/internal/suggest/schema"
)

const (
	FlowExercises = "exercises"

	// exerciseCount is asked for in the prompt; the response is not rejected
	// when the model returns a different number.
	exerciseCount = 5
)

var ExerciseCategories = []string{
	"Chest",
	"Back",
	"Shoulders",
	"Biceps",
	"Triceps",
	"Legs",
	"Abs",
	"Cardio",
}

type ExercisesRequest struct {
	Category string `json:"category,omitempty" jsonschema:"one of Chest, Back, Shoulders, Biceps, Triceps, Legs, Abs, Cardio"`
}

type ExerciseSuggestion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Equipment   string `json:"equipment"`
}

type ExercisesResponse struct {
	Exercises []ExerciseSuggestion `json:"exercises"`
}

var exercisesInput = &schema.Schema{
	Name: "exercisesRequest",
	Fields: []schema.Field{
		{Name: "category", Kind: schema.KindEnum, Enum: ExerciseCategories, Description: "The muscle group or category to suggest exercises for."},
	},
}

var exercisesOutput = &schema.Schema{
	Name: "exercisesResponse",
	Fields: []schema.Field{
		{
			Name:        "exercises",
			Kind:        schema.KindList,
			Description: "A list of suggested exercises.",
			Items: &schema.Field{
				Kind: schema.KindRecord,
				Fields: []schema.Field{
					{Name: "name", Kind: schema.KindString, Description: "The name of the exercise."},
					{Name: "description", Kind: schema.KindString, Description: "How to perform the exercise and its benefits."},
					{Name: "equipment", Kind: schema.KindString, Description: "Equipment needed, e.g. Dumbbells, Barbell, None."},
				},
			},
		},
	},
}

var ExercisesFlow = &suggest.Flow{
	Name:   FlowExercises,
	Input:  exercisesInput,
	Output: exercisesOutput,
	Prompt: prompt.Bind(exercisesInput, prompt.New("exercises",
		prompt.Text("You are an expert personal trainer.\n"),
		prompt.Textf("Suggest a list of %d diverse exercises for a specific muscle group or category.\n", exerciseCount),
		prompt.Text("For each exercise, provide:\n1. A clear name.\n2. A brief but effective description of how to perform it.\n3. The equipment required.\n"),
		prompt.Text(noFiller+"\n\n"),
		prompt.Text("Category: "), prompt.Field("category"), prompt.Text("\n"),
	)),
}
