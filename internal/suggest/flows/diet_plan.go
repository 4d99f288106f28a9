package flows

import (
	"github.com/2beens/fitsuggest/internal/suggest"
	"github.com/2beens/fitsuggest/internal/suggest/prompt"
	"github.com/2beens/fitsuggest/internal/suggest/schema"
)

const FlowDietPlan = "diet_plan"

type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "sedentary"
	ActivityLightlyActive    ActivityLevel = "lightly_active"
	ActivityModeratelyActive ActivityLevel = "moderately_active"
	ActivityVeryActive       ActivityLevel = "very_active"
)

type DietaryPreference string

const (
	DietNoPreference DietaryPreference = "no_preference"
	DietVegetarian   DietaryPreference = "vegetarian"
	DietVegan        DietaryPreference = "vegan"
	DietKeto         DietaryPreference = "keto"
)

// DietPlanRequest leaves unset fields out of the request, so a zero value is
// rejected as missing instead of being sent as 0.
type DietPlanRequest struct {
	Age               *float64          `json:"age,omitempty" jsonschema:"age of the user in years"`
	Height            *float64          `json:"height,omitempty" jsonschema:"height of the user in centimeters"`
	Weight            *float64          `json:"weight,omitempty" jsonschema:"weight of the user in kilograms"`
	Sex               Sex               `json:"sex,omitempty" jsonschema:"male or female"`
	ActivityLevel     ActivityLevel     `json:"activityLevel,omitempty" jsonschema:"sedentary, lightly_active, moderately_active or very_active"`
	Goal              Goal              `json:"goal,omitempty" jsonschema:"lose_weight, maintain_weight or gain_muscle"`
	DietaryPreference DietaryPreference `json:"dietaryPreference,omitempty" jsonschema:"optional: no_preference, vegetarian, vegan or keto"`
}

type MacroSummary struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
}

type Meal struct {
	Time          string  `json:"time"`
	FoodName      string  `json:"foodName"`
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
}

type DietPlanResponse struct {
	DailySummary MacroSummary `json:"dailySummary"`
	Explanation  string       `json:"explanation"`
	MealPlan     []Meal       `json:"mealPlan"`
}

var dietPlanInput = &schema.Schema{
	Name: "dietPlanRequest",
	Fields: []schema.Field{
		{Name: "age", Kind: schema.KindNumber, Description: "The age of the user in years."},
		{Name: "height", Kind: schema.KindNumber, Description: "The height of the user in centimeters."},
		{Name: "weight", Kind: schema.KindNumber, Description: "The weight of the user in kilograms."},
		sexField("The sex of the user."),
		{
			Name:        "activityLevel",
			Kind:        schema.KindEnum,
			Description: "The activity level of the user.",
			Enum: []string{
				string(ActivitySedentary), string(ActivityLightlyActive),
				string(ActivityModeratelyActive), string(ActivityVeryActive),
			},
		},
		goalField(),
		{
			Name:        "dietaryPreference",
			Kind:        schema.KindEnum,
			Optional:    true,
			Description: "Dietary restriction the meal plan must respect.",
			Enum: []string{
				string(DietNoPreference), string(DietVegetarian),
				string(DietVegan), string(DietKeto),
			},
		},
	},
}

var dietPlanOutput = &schema.Schema{
	Name: "dietPlanResponse",
	Fields: []schema.Field{
		{
			Name: "dailySummary",
			Kind: schema.KindRecord,
			Fields: []schema.Field{
				{Name: "calories", Kind: schema.KindNumber, Description: "The suggested total daily calorie intake in kcal."},
				{Name: "protein", Kind: schema.KindNumber, Description: "The suggested total daily protein intake in grams."},
				{Name: "carbohydrates", Kind: schema.KindNumber, Description: "The suggested total daily carbohydrates intake in grams."},
				{Name: "fat", Kind: schema.KindNumber, Description: "The suggested total daily fat intake in grams."},
			},
		},
		{Name: "explanation", Kind: schema.KindString, Description: "Why this diet plan fits the user profile and goal."},
		{
			Name:        "mealPlan",
			Kind:        schema.KindList,
			Description: "A sample one-day meal plan: breakfast, lunch, dinner and snacks.",
			Items: &schema.Field{
				Kind: schema.KindRecord,
				Fields: []schema.Field{
					{Name: "time", Kind: schema.KindString, Description: "The meal, e.g. Breakfast, Lunch, Dinner, Snack."},
					{Name: "foodName", Kind: schema.KindString, Description: "The food suggested for the meal."},
					{Name: "calories", Kind: schema.KindNumber, Description: "Estimated calories for the meal."},
					{Name: "protein", Kind: schema.KindNumber, Description: "Estimated protein in grams."},
					{Name: "carbohydrates", Kind: schema.KindNumber, Description: "Estimated carbohydrates in grams."},
					{Name: "fat", Kind: schema.KindNumber, Description: "Estimated fat in grams."},
				},
			},
		},
	},
}

var DietPlanFlow = &suggest.Flow{
	Name:   FlowDietPlan,
	Input:  dietPlanInput,
	Output: dietPlanOutput,
	Prompt: prompt.Bind(dietPlanInput, prompt.New("dietPlan",
		prompt.Text("You are an expert nutritionist and personal trainer. Create a daily nutritional plan for the user's profile and fitness goal.\n"),
		prompt.Text("First, calculate the required daily macros (calories, protein, carbohydrates, fat) and briefly explain the recommendation.\n"),
		prompt.Text("Second, create a sample one-day meal plan with specific foods for breakfast, lunch, dinner and one or two snacks, "+
			"with estimated calories, protein, carbohydrates and fat for each meal.\n"),
		prompt.Text(noFiller+"Structure the entire response according to the output schema.\n\n"),
		prompt.Text("User Profile:\n"),
		prompt.Text("- Age: "), prompt.Field("age"), prompt.Text(" years\n"),
		prompt.Text("- Height: "), prompt.Field("height"), prompt.Text(" cm\n"),
		prompt.Text("- Weight: "), prompt.Field("weight"), prompt.Text(" kg\n"),
		prompt.Text("- Sex: "), prompt.Field("sex"), prompt.Text("\n"),
		prompt.Text("- Activity Level: "), prompt.Field("activityLevel"), prompt.Text("\n"),
		prompt.Text("- Goal: "), prompt.Field("goal"), prompt.Text("\n"),
		prompt.If("dietaryPreference",
			prompt.Text("- Dietary Preference: "), prompt.Field("dietaryPreference"), prompt.Text("\n"),
		),
	)),
}

// MealPlanTotals sums the meal plan. The result is not checked against the
// daily summary; callers that care can compare the two.
func MealPlanTotals(resp *DietPlanResponse) MacroSummary {
	var total MacroSummary
	for _, m := range resp.MealPlan {
		total.Calories += m.Calories
		total.Protein += m.Protein
		total.Carbohydrates += m.Carbohydrates
		total.Fat += m.Fat
	}
	return total
}
