package cli

import (
	"github.com/jsandoval/clockfill/internal/core"
	"github.com/jsandoval/clockfill/internal/integration"
)

// Service factories, set during app initialization in app.go. Tests replace
// them with fakes.
var (
	// NewClient constructs the Clockify API client for a loaded config.
	NewClient func(cfg integration.ClientConfig) integration.ClockifyClient

	// NewRunner constructs the schedule runner that drives a fill.
	NewRunner func(creator core.EntryCreator) core.ScheduleRunner
)
