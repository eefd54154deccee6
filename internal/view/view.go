package view

import (
	"fmt"
	"time"

	"teamtask/internal/model"
	"teamtask/internal/notify"
)

// Display states derived from a task's time window. They are recomputed on
// every render, never persisted.
const (
	StateDone     = "done"
	StateUpcoming = "upcoming"
	StateOngoing  = "ongoing"
	StateOverdue  = "overdue"
)

// StatusInfo is the per-task time annotation shown under each list row.
type StatusInfo struct {
	State string `json:"state"`
	Text  string `json:"text"`
}

// TaskStatusInfo classifies a task against the current time. A completed
// task is done regardless of its window; otherwise the window decides
// between upcoming, ongoing and overdue.
func TaskStatusInfo(now time.Time, task model.Task) StatusInfo {
	if task.Status == model.StatusCompleted {
		return StatusInfo{State: StateDone, Text: "เสร็จสิ้นแล้ว"}
	}

	end, err := task.EndsAt(now.Location())
	if err != nil {
		return StatusInfo{State: StateOngoing, Text: ""}
	}
	if now.After(end) {
		return StatusInfo{
			State: StateOverdue,
			Text:  fmt.Sprintf("เกินกำหนดมาแล้ว %s", notify.Elapsed(now, end)),
		}
	}

	start, err := task.StartsAt(now.Location())
	if err == nil && now.Before(start) {
		return StatusInfo{
			State: StateUpcoming,
			Text:  fmt.Sprintf("จะเริ่มในอีก %s", notify.TimeLeft(now, start)),
		}
	}

	return StatusInfo{
		State: StateOngoing,
		Text:  fmt.Sprintf("เหลือเวลาอีก %s", notify.TimeLeft(now, end)),
	}
}

// FormatDateForInput renders a stored date as dd/mm/yyyy in the Buddhist
// era, the way the date inputs display it.
func FormatDateForInput(date string) string {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%02d/%02d/%d", parsed.Day(), int(parsed.Month()), parsed.Year()+543)
}
