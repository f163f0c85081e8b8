package core

import (
	"math/rand"
	"time"

	"github.com/jsandoval/clockfill/pkg/models"
)

// HistoryLookbackDays is how far back the history-analysis fetch reaches
// when seeding description pools from past entries.
const HistoryLookbackDays = 60

// EntryCreator is the subset of the Clockify client the runner needs.
// Defining it here keeps core independent of the integration package.
type EntryCreator interface {
	CreateTimeEntry(start, end time.Time, projectID, description string, billable bool) (*models.RecordedEntry, error)
}

// RunOptions controls a single fill run.
type RunOptions struct {
	// DryRun generates descriptions but performs no create calls; slots come
	// back as previewed instead of created.
	DryRun bool

	// History holds recorded entries from the lookback window. When
	// non-empty, each project's description pool is seeded from its history
	// with the configured templates merged in.
	History []models.RecordedEntry

	// OnSlot, if set, is called with each slot result as it is decided, in
	// planning order. Used by the CLI to report progress.
	OnSlot func(models.SlotResult)
}

// ScheduleRunner walks the planned slots for a date range and decides, per
// slot, whether to skip, preview, or create an entry.
type ScheduleRunner interface {
	Run(start, end time.Time, schedule []models.ScheduleItem, dayStartHour int, index *ExistingEntryIndex, opts RunOptions) *models.RunSummary
}

// scheduleRunner implements ScheduleRunner on top of a SlotPlanner and an
// EntryCreator.
type scheduleRunner struct {
	planner SlotPlanner
	creator EntryCreator
	rng     *rand.Rand
}

// NewScheduleRunner creates a runner. rng may be nil for a time-seeded
// source; injecting a seeded generator makes dry-run and execute produce
// identical descriptions.
func NewScheduleRunner(planner SlotPlanner, creator EntryCreator, rng *rand.Rand) ScheduleRunner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &scheduleRunner{planner: planner, creator: creator, rng: rng}
}

// Run processes every planned slot in order. A slot whose project already has
// an entry on that date is skipped without generating a description. A failed
// create call is recorded and the run continues with the next slot; only the
// caller's configuration can abort a run, never the remote service.
func (r *scheduleRunner) Run(start, end time.Time, schedule []models.ScheduleItem, dayStartHour int, index *ExistingEntryIndex, opts RunOptions) *models.RunSummary {
	summary := &models.RunSummary{}

	// One pool per project, kept for the whole run so the recency buffer
	// spans all of that project's slots.
	pools := make(map[string]*DescriptionPool)

	for _, slot := range r.planner.Plan(start, end, schedule, dayStartHour) {
		result := models.SlotResult{Slot: slot}

		if index != nil && index.Contains(slot.ProjectID, slot.Date()) {
			result.Outcome = models.OutcomeSkipped
			summary.Skipped++
		} else {
			pool, ok := pools[slot.ProjectID]
			if !ok {
				pool = r.poolFor(slot, opts.History)
				pools[slot.ProjectID] = pool
			}
			result.Description = pool.Generate()

			switch {
			case opts.DryRun:
				result.Outcome = models.OutcomePreviewed
				summary.Previewed++
			default:
				_, err := r.creator.CreateTimeEntry(slot.Start, slot.End, slot.ProjectID, result.Description, slot.Billable)
				if err != nil {
					result.Outcome = models.OutcomeFailed
					result.Err = err
					summary.Failed++
				} else {
					result.Outcome = models.OutcomeCreated
					summary.Created++
				}
			}
		}

		summary.Results = append(summary.Results, result)
		if opts.OnSlot != nil {
			opts.OnSlot(result)
		}
	}

	return summary
}

// poolFor builds the description pool for a slot's project: history-seeded
// with the configured templates merged in when history analysis is on,
// otherwise built directly from the configured templates.
func (r *scheduleRunner) poolFor(slot models.TimeSlot, history []models.RecordedEntry) *DescriptionPool {
	if len(history) > 0 {
		pool := PoolFromHistory(history, slot.ProjectID, r.rng)
		pool.AddTemplates(slot.Templates)
		return pool
	}
	return NewDescriptionPool(slot.Templates, r.rng)
}
