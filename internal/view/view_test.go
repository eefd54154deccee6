package view_test

import (
	"strings"
	"testing"
	"time"

	"teamtask/internal/model"
	"teamtask/internal/view"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestTaskStatusInfo_Completed(t *testing.T) {
	task := model.Task{Status: model.StatusCompleted, EndDate: "2024-05-01", EndTime: "17:00"}

	info := view.TaskStatusInfo(testNow, task)

	assert.Equal(t, view.StateDone, info.State)
}

func TestTaskStatusInfo_Overdue(t *testing.T) {
	task := model.Task{
		Status:    model.StatusInProgress,
		StartDate: "2024-05-30",
		StartTime: "09:00",
		EndDate:   "2024-05-31",
		EndTime:   "17:00",
	}

	info := view.TaskStatusInfo(testNow, task)

	assert.Equal(t, view.StateOverdue, info.State)
	assert.True(t, strings.HasPrefix(info.Text, "เกินกำหนดมาแล้ว"))
	// 19 hours past due at the test clock.
	assert.Contains(t, info.Text, "19 ชั่วโมง")
}

func TestTaskStatusInfo_Ongoing(t *testing.T) {
	task := model.Task{
		Status:    model.StatusToDo,
		StartDate: "2024-06-01",
		StartTime: "09:00",
		EndDate:   "2024-06-01",
		EndTime:   "17:00",
	}

	info := view.TaskStatusInfo(testNow, task)

	assert.Equal(t, view.StateOngoing, info.State)
	assert.Contains(t, info.Text, "5 ชั่วโมง")
}

func TestTaskStatusInfo_Upcoming(t *testing.T) {
	task := model.Task{
		Status:    model.StatusToDo,
		StartDate: "2024-06-02",
		StartTime: "09:00",
		EndDate:   "2024-06-02",
		EndTime:   "17:00",
	}

	info := view.TaskStatusInfo(testNow, task)

	assert.Equal(t, view.StateUpcoming, info.State)
	assert.True(t, strings.HasPrefix(info.Text, "จะเริ่มในอีก"))
}

func TestBuildDashboard_Counts(t *testing.T) {
	tasks := []model.Task{
		{Status: model.StatusToDo},
		{Status: model.StatusInProgress},
		{Status: model.StatusInProgress},
		{Status: model.StatusCompleted, EndDate: "2024-05-10"},
	}

	d := view.BuildDashboard(tasks)

	assert.Equal(t, 4, d.Total)
	assert.Equal(t, 2, d.InProgress)
	assert.Equal(t, 1, d.Completed)
}

func TestBuildDashboard_MonthlyHistogram(t *testing.T) {
	tasks := []model.Task{
		{Status: model.StatusCompleted, EndDate: "2024-09-15"},
		{Status: model.StatusCompleted, EndDate: "2024-08-01"},
		{Status: model.StatusCompleted, EndDate: "2024-08-20"},
		{Status: model.StatusInProgress, EndDate: "2024-08-25"},
		{Status: model.StatusCompleted, EndDate: "2024-10-02"},
	}

	d := view.BuildDashboard(tasks)

	assert.Equal(t, []view.MonthlyCount{
		{Name: "ส.ค.", Completed: 2},
		{Name: "ก.ย.", Completed: 1},
		{Name: "ต.ค.", Completed: 1},
	}, d.Monthly)
}

func TestBuildDashboard_Empty(t *testing.T) {
	d := view.BuildDashboard(nil)

	assert.Equal(t, 0, d.Total)
	assert.Empty(t, d.Monthly)
}

func TestFormatDateForInput(t *testing.T) {
	assert.Equal(t, "01/06/2567", view.FormatDateForInput("2024-06-01"))
	assert.Equal(t, "31/12/2568", view.FormatDateForInput("2025-12-31"))
	assert.Equal(t, "", view.FormatDateForInput("not-a-date"))
}
