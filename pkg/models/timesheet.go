package models

import "time"

// ScheduleItem is one configured recurring work block. Each item produces one
// time entry per planned weekday, in the order items appear in the config.
type ScheduleItem struct {
	ProjectID            string   `yaml:"project_id" mapstructure:"project_id"`
	Name                 string   `yaml:"name" mapstructure:"name"`
	DailyMinutes         int      `yaml:"daily_minutes" mapstructure:"daily_minutes"`
	DescriptionTemplates []string `yaml:"description_templates,omitempty" mapstructure:"description_templates"`
	Billable             bool     `yaml:"billable" mapstructure:"billable"`
}

// TimeSlot is a planned, not-yet-committed time entry for a single day.
// Slots are immutable after planning.
type TimeSlot struct {
	Start       time.Time
	End         time.Time
	ProjectID   string
	ProjectName string
	Templates   []string
	Billable    bool
}

// Date returns the slot's calendar date in YYYY-MM-DD form.
func (s TimeSlot) Date() string {
	return s.Start.Format("2006-01-02")
}

// RecordedEntry is a time entry already known to Clockify, used for duplicate
// detection and description history mining. Start keeps the raw ISO timestamp
// string as returned by the API.
type RecordedEntry struct {
	ProjectID   string
	Start       string
	Description string
}

// User is the authenticated Clockify user.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Workspace is a Clockify workspace the user belongs to.
type Workspace struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Project is a Clockify project within the configured workspace.
type Project struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ClientName string `json:"clientName"`
	Archived   bool   `json:"archived"`
}

// SlotOutcome is the terminal state of one planned slot after a run.
type SlotOutcome string

const (
	OutcomeCreated   SlotOutcome = "created"
	OutcomeSkipped   SlotOutcome = "skipped"
	OutcomePreviewed SlotOutcome = "previewed"
	OutcomeFailed    SlotOutcome = "failed"
)

// SlotResult records what happened to a single slot, including the generated
// description for created and previewed slots.
type SlotResult struct {
	Slot        TimeSlot
	Outcome     SlotOutcome
	Description string
	Err         error
}

// RunSummary aggregates the per-slot results of one fill run.
type RunSummary struct {
	Created   int
	Skipped   int
	Previewed int
	Failed    int
	Results   []SlotResult
}
