package form_test

import (
	"testing"
	"time"

	"teamtask/internal/form"
	"teamtask/internal/model"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func TestNew_Defaults(t *testing.T) {
	f := form.New(testNow)
	draft := f.Task()

	assert.Equal(t, "2024-06-01", draft.StartDate)
	assert.Equal(t, "2024-06-01", draft.EndDate)
	assert.Equal(t, "09:00", draft.StartTime)
	assert.Equal(t, "17:00", draft.EndTime)
	assert.Equal(t, model.StatusToDo, draft.Status)
	assert.False(t, f.Editing())
}

func TestEdit_LoadsTaskVerbatim(t *testing.T) {
	task := model.Task{
		ID:        "42",
		Title:     "Write report",
		Assignee:  "Ann",
		StartDate: "2024-06-01",
		EndDate:   "2024-06-03",
		StartTime: "09:00",
		EndTime:   "17:00",
		Status:    model.StatusInProgress,
	}

	f := form.Edit(task)

	assert.Equal(t, task, f.Task())
	assert.True(t, f.Editing())
}

func TestSetStartDate_ResetsEndDate(t *testing.T) {
	f := form.New(testNow)
	f.SetEndDate("2024-06-10")

	f.SetStartDate("2024-06-05")

	draft := f.Task()
	assert.Equal(t, "2024-06-05", draft.StartDate)
	assert.Equal(t, "2024-06-05", draft.EndDate)

	// A later end date can still be picked afterwards.
	f.SetEndDate("2024-06-07")
	assert.Equal(t, "2024-06-07", f.Task().EndDate)
}

func TestSetStartTime_ClearsConflictingEndTime(t *testing.T) {
	f := form.New(testNow) // same-day draft, end time 17:00

	f.SetStartTime("18:00")

	draft := f.Task()
	assert.Equal(t, "18:00", draft.StartTime)
	assert.Equal(t, "", draft.EndTime)
}

func TestSetStartTime_EqualEndTimeAlsoCleared(t *testing.T) {
	f := form.New(testNow)

	f.SetStartTime("17:00")

	assert.Equal(t, "", f.Task().EndTime)
}

func TestSetStartTime_CrossDayKeepsEndTime(t *testing.T) {
	f := form.New(testNow)
	f.SetEndDate("2024-06-02")

	f.SetStartTime("18:00")

	assert.Equal(t, "17:00", f.Task().EndTime)
}

func TestTimeOptions(t *testing.T) {
	options := form.TimeOptions(30)

	assert.Len(t, options, 48)
	assert.Equal(t, "00:00", options[0])
	assert.Equal(t, "09:30", options[19])
	assert.Equal(t, "23:30", options[47])
}

func TestEndTimeOptions_SameDayExcludesStartTimeAndEarlier(t *testing.T) {
	f := form.New(testNow)
	f.SetStartTime("09:00")

	options := f.EndTimeOptions()

	assert.NotContains(t, options, "08:30")
	assert.NotContains(t, options, "09:00")
	assert.Contains(t, options, "09:30")
	assert.Contains(t, options, "23:30")
	for _, o := range options {
		assert.Greater(t, o, "09:00")
	}
}

func TestEndTimeOptions_CrossDayUnconstrained(t *testing.T) {
	f := form.New(testNow)
	f.SetStartTime("09:00")
	f.SetEndDate("2024-06-02")

	options := f.EndTimeOptions()

	assert.Len(t, options, 48)
	assert.Contains(t, options, "00:00")
}

func TestSelectAssignee_ResolvesById(t *testing.T) {
	assignees := []model.Assignee{
		{ID: "1", Name: "ออดี้", Position: "Developer"},
		{ID: "2", Name: "จิรภัทร", Position: "Designer"},
	}
	f := form.New(testNow)

	err := f.SelectAssignee("2", assignees)

	assert.NoError(t, err)
	assert.Equal(t, "จิรภัทร", f.Task().Assignee)
	assert.False(t, f.AssigneeDialogRequested)
}

func TestSelectAssignee_AddNewOpensDialog(t *testing.T) {
	f := form.New(testNow)

	err := f.SelectAssignee(form.AddNewAssignee, nil)

	assert.NoError(t, err)
	assert.True(t, f.AssigneeDialogRequested)
	assert.Equal(t, "", f.Task().Assignee)
}

func TestSelectAssignee_UnknownId(t *testing.T) {
	f := form.New(testNow)

	err := f.SelectAssignee("999", []model.Assignee{{ID: "1", Name: "Ann"}})

	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	f := form.New(testNow)
	assert.ErrorIs(t, f.Validate(), form.ErrTitleRequired)

	f.SetTitle("Write report")
	assert.ErrorIs(t, f.Validate(), form.ErrAssigneeRequired)

	f.SetAssigneeName("Ann")
	assert.NoError(t, f.Validate())
}
