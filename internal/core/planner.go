package core

import (
	"fmt"
	"time"

	"github.com/jsandoval/clockfill/pkg/models"
)

// defaultDailyMinutes is used when a schedule item does not specify a duration.
const defaultDailyMinutes = 60

// SlotPlanner expands a configured weekly schedule into concrete dated time
// slots for a date range.
type SlotPlanner interface {
	Plan(start, end time.Time, schedule []models.ScheduleItem, dayStartHour int) []models.TimeSlot
}

// slotPlanner implements SlotPlanner. It is stateless; Plan is a pure
// function of its arguments.
type slotPlanner struct{}

// NewSlotPlanner creates a new SlotPlanner.
func NewSlotPlanner() SlotPlanner {
	return &slotPlanner{}
}

// Plan produces one slot per (weekday, schedule item) pair within the
// inclusive date range. The first item of each day starts at dayStartHour:00
// and every following item starts where the previous one ended, so slots on
// the same day are contiguous and never overlap.
func (p *slotPlanner) Plan(start, end time.Time, schedule []models.ScheduleItem, dayStartHour int) []models.TimeSlot {
	var slots []models.TimeSlot

	for _, day := range Weekdays(start, end) {
		current := time.Date(day.Year(), day.Month(), day.Day(), dayStartHour, 0, 0, 0, day.Location())

		for _, item := range schedule {
			minutes := item.DailyMinutes
			if minutes <= 0 {
				minutes = defaultDailyMinutes
			}
			slotEnd := current.Add(time.Duration(minutes) * time.Minute)

			slots = append(slots, models.TimeSlot{
				Start:       current,
				End:         slotEnd,
				ProjectID:   item.ProjectID,
				ProjectName: item.Name,
				Templates:   item.DescriptionTemplates,
				Billable:    item.Billable,
			})

			current = slotEnd
		}
	}

	return slots
}

// Weekdays returns the Monday through Friday dates within [start, end] in
// calendar order, inclusive of both endpoints. Times of day on the inputs are
// ignored apart from ordering.
func Weekdays(start, end time.Time) []time.Time {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days = append(days, d)
		}
	}
	return days
}

// WeekRange returns the Monday and Friday of the week containing now, at
// midnight in now's location. It is the default fill range when no explicit
// dates are given.
func WeekRange(now time.Time) (time.Time, time.Time) {
	// time.Weekday counts Sunday as 0; shift so Monday is 0.
	offset := (int(now.Weekday()) + 6) % 7
	monday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 4)
}

// ResolveRange turns optional YYYY-MM-DD strings into a concrete date range.
// An empty start defaults to this week's Monday; an empty end defaults to
// four days after start (the matching Friday).
func ResolveRange(startStr, endStr string, now time.Time) (time.Time, time.Time, error) {
	start, end := WeekRange(now)

	if startStr != "" {
		parsed, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", startStr, err)
		}
		start = parsed
		end = start.AddDate(0, 0, 4)
	}
	if endStr != "" {
		parsed, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", endStr, err)
		}
		end = parsed
	}

	return start, end, nil
}

// DayBounds widens a date range to whole days for existing-entry queries:
// 00:00:00 on the first day through 23:59:59 on the last.
func DayBounds(start, end time.Time) (time.Time, time.Time) {
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	to := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, end.Location())
	return from, to
}
