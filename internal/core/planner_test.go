package core

import (
	"reflect"
	"testing"
	"time"

	"github.com/jsandoval/clockfill/pkg/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPlan_SingleDaySingleItem(t *testing.T) {
	// 2024-03-05 is a Tuesday.
	day := date(2024, time.March, 5)
	schedule := []models.ScheduleItem{
		{ProjectID: "P1", Name: "Internal", DailyMinutes: 60, DescriptionTemplates: []string{"standup, review"}, Billable: true},
	}

	slots := NewSlotPlanner().Plan(day, day, schedule, 9)

	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	slot := slots[0]
	if got, want := slot.Start, time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("Start = %v, want %v", got, want)
	}
	if got, want := slot.End, time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("End = %v, want %v", got, want)
	}
	if slot.ProjectID != "P1" {
		t.Errorf("ProjectID = %q, want P1", slot.ProjectID)
	}
	if slot.ProjectName != "Internal" {
		t.Errorf("ProjectName = %q, want Internal", slot.ProjectName)
	}
	if !reflect.DeepEqual(slot.Templates, []string{"standup, review"}) {
		t.Errorf("Templates = %v, want the configured templates", slot.Templates)
	}
	if !slot.Billable {
		t.Error("Billable = false, want true")
	}
}

func TestPlan_BackToBackSlots(t *testing.T) {
	day := date(2024, time.March, 5)
	schedule := []models.ScheduleItem{
		{ProjectID: "P1", DailyMinutes: 90},
		{ProjectID: "P2", DailyMinutes: 30},
	}

	slots := NewSlotPlanner().Plan(day, day, schedule, 9)

	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if !slots[1].Start.Equal(slots[0].End) {
		t.Errorf("second slot starts at %v, want %v (end of first)", slots[1].Start, slots[0].End)
	}
	if got, want := slots[1].End, time.Date(2024, time.March, 5, 11, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("second slot ends at %v, want %v", got, want)
	}
}

func TestPlan_SkipsWeekends(t *testing.T) {
	// 2024-03-01 is a Friday, 2024-03-04 the following Monday.
	start := date(2024, time.March, 1)
	end := date(2024, time.March, 4)
	schedule := []models.ScheduleItem{{ProjectID: "P1", DailyMinutes: 60}}

	slots := NewSlotPlanner().Plan(start, end, schedule, 9)

	if len(slots) != 2 {
		t.Fatalf("expected 2 slots (Friday and Monday), got %d", len(slots))
	}
	for _, slot := range slots {
		if wd := slot.Start.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Errorf("slot planned on %v", wd)
		}
	}
	if slots[0].Date() != "2024-03-01" || slots[1].Date() != "2024-03-04" {
		t.Errorf("slot dates = %s, %s; want 2024-03-01, 2024-03-04", slots[0].Date(), slots[1].Date())
	}
}

func TestPlan_WeekendOnlyRangeIsEmpty(t *testing.T) {
	// Saturday through Sunday.
	slots := NewSlotPlanner().Plan(date(2024, time.March, 2), date(2024, time.March, 3),
		[]models.ScheduleItem{{ProjectID: "P1", DailyMinutes: 60}}, 9)

	if len(slots) != 0 {
		t.Fatalf("expected no slots, got %d", len(slots))
	}
}

func TestPlan_DefaultsDurationToSixtyMinutes(t *testing.T) {
	day := date(2024, time.March, 5)
	slots := NewSlotPlanner().Plan(day, day, []models.ScheduleItem{{ProjectID: "P1"}}, 9)

	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if got := slots[0].End.Sub(slots[0].Start); got != time.Hour {
		t.Errorf("slot duration = %v, want 1h", got)
	}
}

func TestPlan_IsDeterministic(t *testing.T) {
	start := date(2024, time.March, 4)
	end := date(2024, time.March, 8)
	schedule := []models.ScheduleItem{
		{ProjectID: "P1", DailyMinutes: 60},
		{ProjectID: "P2", DailyMinutes: 120},
	}

	planner := NewSlotPlanner()
	first := planner.Plan(start, end, schedule, 8)
	second := planner.Plan(start, end, schedule, 8)

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated Plan calls with identical inputs differ")
	}
}

func TestWeekdays_InclusiveEndpoints(t *testing.T) {
	// Monday through Friday.
	days := Weekdays(date(2024, time.March, 4), date(2024, time.March, 8))
	if len(days) != 5 {
		t.Fatalf("expected 5 weekdays, got %d", len(days))
	}
	if !days[0].Equal(date(2024, time.March, 4)) || !days[4].Equal(date(2024, time.March, 8)) {
		t.Errorf("endpoints = %v, %v; want both range endpoints included", days[0], days[4])
	}
}

func TestWeekRange(t *testing.T) {
	tests := []struct {
		name       string
		now        time.Time
		wantMonday time.Time
	}{
		{"midweek", time.Date(2024, time.March, 6, 15, 30, 0, 0, time.UTC), date(2024, time.March, 4)},
		{"monday", time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), date(2024, time.March, 4)},
		{"sunday", time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC), date(2024, time.March, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			monday, friday := WeekRange(tt.now)
			if !monday.Equal(tt.wantMonday) {
				t.Errorf("monday = %v, want %v", monday, tt.wantMonday)
			}
			if !friday.Equal(tt.wantMonday.AddDate(0, 0, 4)) {
				t.Errorf("friday = %v, want %v", friday, tt.wantMonday.AddDate(0, 0, 4))
			}
		})
	}
}

func TestResolveRange(t *testing.T) {
	now := time.Date(2024, time.March, 6, 12, 0, 0, 0, time.UTC)

	t.Run("defaults to current week", func(t *testing.T) {
		start, end, err := ResolveRange("", "", now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if start.Format("2006-01-02") != "2024-03-04" || end.Format("2006-01-02") != "2024-03-08" {
			t.Errorf("range = %s..%s, want 2024-03-04..2024-03-08", start.Format("2006-01-02"), end.Format("2006-01-02"))
		}
	})

	t.Run("start only implies same-week friday", func(t *testing.T) {
		start, end, err := ResolveRange("2024-04-01", "", now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if start.Format("2006-01-02") != "2024-04-01" || end.Format("2006-01-02") != "2024-04-05" {
			t.Errorf("range = %s..%s, want 2024-04-01..2024-04-05", start.Format("2006-01-02"), end.Format("2006-01-02"))
		}
	})

	t.Run("explicit range", func(t *testing.T) {
		start, end, err := ResolveRange("2024-04-01", "2024-04-02", now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if start.Format("2006-01-02") != "2024-04-01" || end.Format("2006-01-02") != "2024-04-02" {
			t.Errorf("range = %s..%s, want 2024-04-01..2024-04-02", start.Format("2006-01-02"), end.Format("2006-01-02"))
		}
	})

	t.Run("invalid start", func(t *testing.T) {
		if _, _, err := ResolveRange("not-a-date", "", now); err == nil {
			t.Error("expected error for invalid start date")
		}
	})

	t.Run("invalid end", func(t *testing.T) {
		if _, _, err := ResolveRange("2024-04-01", "04/02/2024", now); err == nil {
			t.Error("expected error for invalid end date")
		}
	})
}

func TestDayBounds(t *testing.T) {
	from, to := DayBounds(
		time.Date(2024, time.March, 4, 10, 15, 0, 0, time.UTC),
		time.Date(2024, time.March, 8, 10, 15, 0, 0, time.UTC),
	)

	if want := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC); !from.Equal(want) {
		t.Errorf("from = %v, want %v", from, want)
	}
	if want := time.Date(2024, time.March, 8, 23, 59, 59, 0, time.UTC); !to.Equal(want) {
		t.Errorf("to = %v, want %v", to, want)
	}
}
