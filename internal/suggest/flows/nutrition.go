package flows

import (
	"github.com/2beens/fitsuggest/internal/suggest"
	"github.com/2beens/fitsuggest/internal/suggest/prompt"
	"github.com/2beens/fitsuggest/internal/suggest/schema"
)

const FlowNutrition = "nutrition"

// NutritionRequest needs at least one of the image or the food name. An image
// that is not a base64 image data uri is ignored.
type NutritionRequest struct {
	ImageDataURI string `json:"imageDataUri,omitempty" jsonschema:"optional photo of the food as data:<image mimetype>;base64,<data>"`
	FoodName     string `json:"foodName,omitempty" jsonschema:"optional name of the food"`
}

type NutritionResponse struct {
	FoodName      string  `json:"foodName"`
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fat           float64 `json:"fat"`
	Fiber         float64 `json:"fiber"`
}

var nutritionInput = &schema.Schema{
	Name: "nutritionRequest",
	Fields: []schema.Field{
		{
			Name:        "imageDataUri",
			Kind:        schema.KindDataURI,
			Optional:    true,
			Description: "A photo of a food item as data:<mimetype>;base64,<encoded_data>.",
		},
		{Name: "foodName", Kind: schema.KindString, Optional: true, Description: "The name of the food item."},
	},
	Rules: []schema.Rule{
		schema.MinimumOneOf("imageOrFoodName", "imageDataUri", "foodName"),
	},
}

var nutritionOutput = &schema.Schema{
	Name: "nutritionResponse",
	Fields: []schema.Field{
		{Name: "foodName", Kind: schema.KindString, Description: "The name of the food identified."},
		{Name: "calories", Kind: schema.KindNumber, Description: "The estimated number of calories."},
		{Name: "protein", Kind: schema.KindNumber, Description: "The estimated protein in grams."},
		{Name: "carbohydrates", Kind: schema.KindNumber, Description: "The estimated carbohydrates in grams."},
		{Name: "fat", Kind: schema.KindNumber, Description: "The estimated fat in grams."},
		{Name: "fiber", Kind: schema.KindNumber, Description: "The estimated fiber in grams."},
	},
}

var NutritionFlow = &suggest.Flow{
	Name:   FlowNutrition,
	Input:  nutritionInput,
	Output: nutritionOutput,
	Prompt: prompt.Bind(nutritionInput, prompt.New("nutrition",
		prompt.Text("You are an expert nutritionist. Analyze the food item from the provided image and/or name and return its estimated nutritional information: "+
			"identify the food and estimate its calories, protein, carbohydrates, fat and fiber.\n"),
		prompt.Text("If both an image and a name are provided, the image is the primary source of information. If only a name is provided, use that.\n"),
		prompt.If("foodName", prompt.Text("Food Name: "), prompt.Field("foodName"), prompt.Text("\n")),
		prompt.If("imageDataUri", prompt.Text("Photo: "), prompt.Media("imageDataUri"), prompt.Text("\n")),
	)),
}
