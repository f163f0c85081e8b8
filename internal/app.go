// Package internal provides the App struct that wires the clockfill services
// together and initializes the CLI layer.
package internal

import (
	"github.com/jsandoval/clockfill/internal/cli"
	"github.com/jsandoval/clockfill/internal/core"
	"github.com/jsandoval/clockfill/internal/integration"
)

// App holds the service factories for clockfill. Construction is cheap; the
// API client itself is only built once a command has loaded its config.
type App struct {
	Planner core.SlotPlanner
}

// NewApp wires the clockfill services and installs them into the CLI layer.
func NewApp() *App {
	app := &App{Planner: core.NewSlotPlanner()}

	cli.NewClient = integration.NewClockifyClient
	cli.NewRunner = func(creator core.EntryCreator) core.ScheduleRunner {
		return core.NewScheduleRunner(app.Planner, creator, nil)
	}

	return app
}
