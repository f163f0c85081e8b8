package core

import "github.com/jsandoval/clockfill/pkg/models"

// ExistingEntryIndex is a duplicate-detection lookup over previously recorded
// entries, keyed by project ID and calendar date. It is built once per run
// from a single range query and never updated mid-run, so duplicate checks
// reflect the state before the run started.
type ExistingEntryIndex struct {
	dates map[string]map[string]struct{}
}

// BuildEntryIndex indexes the given entries by project ID and the date part
// (first 10 characters) of their start timestamp. Entries without a project
// ID or start timestamp carry no information and are excluded.
func BuildEntryIndex(entries []models.RecordedEntry) *ExistingEntryIndex {
	idx := &ExistingEntryIndex{dates: make(map[string]map[string]struct{})}

	for _, entry := range entries {
		if entry.ProjectID == "" || len(entry.Start) < 10 {
			continue
		}
		date := entry.Start[:10]
		if idx.dates[entry.ProjectID] == nil {
			idx.dates[entry.ProjectID] = make(map[string]struct{})
		}
		idx.dates[entry.ProjectID][date] = struct{}{}
	}

	return idx
}

// Contains reports whether the project already has an entry on the given
// YYYY-MM-DD date. Unknown projects behave as empty sets.
func (x *ExistingEntryIndex) Contains(projectID, date string) bool {
	_, ok := x.dates[projectID][date]
	return ok
}
