package flows

import (
	"github.com/2beens/fitsuggest/internal/suggest"
	"github.com/2beens/fitsuggest/internal/suggest/prompt"
	"github.com/2beens/fitsuggest/internal/suggest/schema"
)

const FlowSchedule = "schedule"

var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

type PlanRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ScheduleRequest struct {
	Goal           Goal      `json:"goal,omitempty" jsonschema:"lose_weight, maintain_weight or gain_muscle"`
	DaysPerWeek    int       `json:"daysPerWeek,omitempty" jsonschema:"workout days per week, 1 to 7"`
	AvailablePlans []PlanRef `json:"availablePlans" jsonschema:"workout plans to schedule, by id and name"`
}

type ScheduleDay struct {
	DayOfWeek string `json:"dayOfWeek"`
	// PlanID is nil on rest days.
	PlanID *string `json:"planId"`
}

type ScheduleResponse struct {
	Schedule    []ScheduleDay `json:"schedule"`
	Explanation string        `json:"explanation"`
}

var scheduleInput = &schema.Schema{
	Name: "scheduleRequest",
	Fields: []schema.Field{
		goalField(),
		{Name: "daysPerWeek", Kind: schema.KindInteger, Bounds: schema.Range(1, 7), Description: "How many days per week the user wants to work out."},
		{
			Name:        "availablePlans",
			Kind:        schema.KindList,
			Description: "The available workout plans with their ids and names.",
			Items: &schema.Field{
				Kind: schema.KindRecord,
				Fields: []schema.Field{
					{Name: "id", Kind: schema.KindString},
					{Name: "name", Kind: schema.KindString},
				},
			},
		},
	},
}

var scheduleOutput = &schema.Schema{
	Name: "scheduleResponse",
	Fields: []schema.Field{
		{
			Name:        "schedule",
			Kind:        schema.KindList,
			Description: "The suggested workout schedule for the week, Monday to Sunday.",
			Items: &schema.Field{
				Kind: schema.KindRecord,
				Fields: []schema.Field{
					{Name: "dayOfWeek", Kind: schema.KindEnum, Enum: Weekdays},
					{Name: "planId", Kind: schema.KindString, Nullable: true, Description: "The id of the plan for this day, or null for a rest day."},
				},
			},
		},
		{Name: "explanation", Kind: schema.KindString, Description: "A brief explanation of the suggested schedule."},
	},
}

var ScheduleFlow = &suggest.Flow{
	Name:   FlowSchedule,
	Input:  scheduleInput,
	Output: scheduleOutput,
	Prompt: prompt.Bind(scheduleInput, prompt.New("schedule",
		prompt.Text("You are a world-class personal trainer creating a weekly workout schedule based on the user's goal, "+
			"desired workout frequency and the workout plans they have available.\n"),
		prompt.Text("- Distribute the workout days evenly throughout the week.\n"),
		prompt.Text("- Leave adequate rest days for the goal and frequency. For high-intensity goals like 'gain_muscle' more rest may be needed "+
			"between sessions on the same muscle groups, though only whole plan ids can be assigned.\n"),
		prompt.Text("- Assign a planId from the available plans to each workout day and null to rest days. Cover all seven days.\n"),
		prompt.Text("- Briefly explain why the week is structured this way.\n\n"),
		prompt.Text("User Goal: "), prompt.Field("goal"), prompt.Text("\n"),
		prompt.Text("Days Per Week: "), prompt.Field("daysPerWeek"), prompt.Text("\n"),
		prompt.Text("Available Plans:\n"),
		prompt.Each("availablePlans",
			prompt.Text("- ID: "), prompt.Field("id"), prompt.Text(", Name: "), prompt.Field("name"), prompt.Text("\n"),
		),
	)),
}

// UnknownPlanIDs returns the plan ids used in the schedule that are not among
// the request's available plans, in schedule order. The flow itself does not
// reject such schedules.
func UnknownPlanIDs(req ScheduleRequest, resp *ScheduleResponse) []string {
	known := make(map[string]bool, len(req.AvailablePlans))
	for _, p := range req.AvailablePlans {
		known[p.ID] = true
	}

	var unknown []string
	for _, d := range resp.Schedule {
		if d.PlanID != nil && !known[*d.PlanID] {
			unknown = append(unknown, *d.PlanID)
		}
	}
	return unknown
}
