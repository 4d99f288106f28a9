// Package flows declares the five suggestion flows (diet plan, workout
// modifications, exercise finder, weekly schedule, nutrition analysis) and
// exposes them through Service, an HTTP handler and the MCP server.
package flows

import (
	"github.com/2beens/fitsuggest/internal/suggest/schema"
)

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

type Goal string

const (
	GoalLoseWeight     Goal = "lose_weight"
	GoalMaintainWeight Goal = "maintain_weight"
	GoalGainMuscle     Goal = "gain_muscle"
)

var (
	sexValues  = []string{string(SexMale), string(SexFemale)}
	goalValues = []string{string(GoalLoseWeight), string(GoalMaintainWeight), string(GoalGainMuscle)}
)

func sexField(description string) schema.Field {
	return schema.Field{Name: "sex", Kind: schema.KindEnum, Enum: sexValues, Description: description}
}

func goalField() schema.Field {
	return schema.Field{Name: "goal", Kind: schema.KindEnum, Enum: goalValues, Description: "The fitness goal of the user."}
}

// Float returns a pointer to v, for the numeric request fields.
func Float(v float64) *float64 {
	return &v
}

const noFiller = "Do not include any preamble or conversational filler. "
