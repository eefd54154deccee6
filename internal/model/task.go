package model

import (
	"time"
)

// Task statuses as stored by the task store.
const (
	StatusToDo       = "To Do"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// Task mirrors the task store's sheet row. Dates are calendar days
// ("2006-01-02"), times are within-day clock values ("15:04"). The assignee
// is referenced by name; the store schema owns that relationship.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Details   string `json:"details,omitempty"`
	Assignee  string `json:"assignee"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

// IsNew reports whether the task has not been saved to the store yet.
// The store assigns ids on create.
func (t Task) IsNew() bool {
	return t.ID == ""
}

// StartsAt combines StartDate and StartTime in the given location.
func (t Task) StartsAt(loc *time.Location) (time.Time, error) {
	return combine(t.StartDate, t.StartTime, loc)
}

// EndsAt combines EndDate and EndTime in the given location. An empty
// EndTime falls back to midnight of EndDate, matching how the store
// interprets a bare date.
func (t Task) EndsAt(loc *time.Location) (time.Time, error) {
	return combine(t.EndDate, t.EndTime, loc)
}

func combine(date, clock string, loc *time.Location) (time.Time, error) {
	if clock == "" {
		return time.ParseInLocation("2006-01-02", date, loc)
	}
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
}
