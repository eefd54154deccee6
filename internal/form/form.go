package form

import (
	"errors"
	"fmt"
	"time"

	"teamtask/internal/model"
)

// Defaults for a new draft.
const (
	DefaultStartTime = "09:00"
	DefaultEndTime   = "17:00"

	// TimeInterval is the spacing of the time pickers, in minutes.
	TimeInterval = 30

	// AddNewAssignee is the selector sentinel that opens the assignee
	// management dialog instead of picking a value.
	AddNewAssignee = "add-new"
)

var (
	ErrTitleRequired    = errors.New("title is required")
	ErrAssigneeRequired = errors.New("assignee is required")
)

// Form holds the draft for creating or editing a task.
type Form struct {
	draft   model.Task
	editing bool

	// AssigneeDialogRequested is set when the user picked the add-new
	// sentinel; the caller opens the management dialog and clears it.
	AssigneeDialogRequested bool
}

// New opens the form for adding a task: both dates default to today, the
// time window to a 09:00–17:00 working day, the status to To Do.
func New(now time.Time) *Form {
	today := now.Format("2006-01-02")
	return &Form{
		draft: model.Task{
			StartDate: today,
			EndDate:   today,
			StartTime: DefaultStartTime,
			EndTime:   DefaultEndTime,
			Status:    model.StatusToDo,
		},
	}
}

// Edit opens the form with an existing task loaded verbatim.
func Edit(task model.Task) *Form {
	return &Form{draft: task, editing: true}
}

func (f *Form) Editing() bool {
	return f.editing
}

func (f *Form) SetTitle(title string) {
	f.draft.Title = title
}

func (f *Form) SetDetails(details string) {
	f.draft.Details = details
}

func (f *Form) SetStatus(status string) {
	f.draft.Status = status
}

// SetStartDate picks a new start date and resets the end date to match;
// a longer window needs an explicit end-date pick afterwards.
func (f *Form) SetStartDate(date string) {
	f.draft.StartDate = date
	f.draft.EndDate = date
}

func (f *Form) SetEndDate(date string) {
	f.draft.EndDate = date
}

// SetStartTime picks a new start time. On a same-day task an end time that
// no longer fits is cleared so the user has to re-pick it.
func (f *Form) SetStartTime(clock string) {
	f.draft.StartTime = clock
	if f.draft.StartDate == f.draft.EndDate && f.draft.EndTime != "" && f.draft.EndTime <= clock {
		f.draft.EndTime = ""
	}
}

func (f *Form) SetEndTime(clock string) {
	f.draft.EndTime = clock
}

// SetAssigneeName stores a raw assignee name, the way the store protocol
// carries it.
func (f *Form) SetAssigneeName(name string) {
	f.draft.Assignee = name
}

// SelectAssignee handles the assignee selector. The add-new sentinel opens
// the management dialog; otherwise the id is resolved against the loaded
// list and the current name is stored on the draft.
func (f *Form) SelectAssignee(id string, assignees []model.Assignee) error {
	if id == AddNewAssignee {
		f.AssigneeDialogRequested = true
		return nil
	}
	for _, a := range assignees {
		if a.ID == id {
			f.draft.Assignee = a.Name
			return nil
		}
	}
	return fmt.Errorf("unknown assignee id %q", id)
}

// Validate checks the required fields. Deeper cross-field checks are left
// to the time-option filtering.
func (f *Form) Validate() error {
	if f.draft.Title == "" {
		return ErrTitleRequired
	}
	if f.draft.Assignee == "" {
		return ErrAssigneeRequired
	}
	return nil
}

// Task returns the draft as a submittable payload.
func (f *Form) Task() model.Task {
	return f.draft
}

// TimeOptions lists the pickable clock values at the given interval,
// spanning the whole day.
func TimeOptions(interval int) []string {
	if interval <= 0 {
		interval = TimeInterval
	}
	var times []string
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute += interval {
			times = append(times, fmt.Sprintf("%02d:%02d", hour, minute))
		}
	}
	return times
}

// EndTimeOptions filters the pickable end times. On a same-day task every
// value at or before the start time is excluded, so a zero or negative
// window cannot be picked; a multi-day task is unconstrained.
func (f *Form) EndTimeOptions() []string {
	options := TimeOptions(TimeInterval)
	if f.draft.StartDate != f.draft.EndDate {
		return options
	}

	filtered := make([]string, 0, len(options))
	for _, t := range options {
		if t > f.draft.StartTime {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
