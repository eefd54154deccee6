package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"teamtask/internal/model"
)

// Sender delivers a composed message to a chat channel. Delivery is
// fire-and-forget from the caller's perspective.
type Sender interface {
	Send(ctx context.Context, message string) error
}

// NewTaskMessage announces a freshly assigned task.
func NewTaskMessage(task model.Task) string {
	return fmt.Sprintf(`✍️ งานใหม่ถูกมอบหมาย: "%s" (ผู้รับผิดชอบ: %s) กำหนดส่ง: %s`,
		task.Title, task.Assignee, task.EndDate)
}

// UpdatedMessage announces an edited task.
func UpdatedMessage(task model.Task) string {
	return fmt.Sprintf(`✅ งานถูกแก้ไขแล้ว: "%s" (ผู้รับผิดชอบ: %s)`, task.Title, task.Assignee)
}

// CompletedMessage announces a finished task.
func CompletedMessage(task model.Task) string {
	return fmt.Sprintf(`🎉 งานเสร็จสิ้นแล้ว: "%s"`, task.Title)
}

// ReminderMessage announces how much time is left before the task's end
// timestamp, or that it is already past due.
func ReminderMessage(now time.Time, task model.Task) string {
	end, err := task.EndsAt(now.Location())
	if err != nil {
		end = now
	}
	return fmt.Sprintf(`🔔 แจ้งเตือน: งาน "%s" (ผู้รับผิดชอบ: %s) เหลือเวลา: %s`,
		task.Title, task.Assignee, TimeLeft(now, end))
}

// TimeLeft renders the remaining duration as days, hours and minutes with
// zero-valued components omitted.
func TimeLeft(now, end time.Time) string {
	left := end.Sub(now)
	if left <= 0 {
		return "เกินกำหนดเวลา"
	}

	days := int(left.Hours()) / 24
	hours := int(left.Hours()) % 24
	minutes := int(left.Minutes()) % 60

	var b strings.Builder
	if days > 0 {
		fmt.Fprintf(&b, "%d วัน ", days)
	}
	if hours > 0 {
		fmt.Fprintf(&b, "%d ชั่วโมง ", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&b, "%d นาที", minutes)
	}

	result := strings.TrimSpace(b.String())
	if result == "" {
		return "เหลือไม่ถึง 1 นาที"
	}
	return result
}

// Elapsed renders how long ago the given timestamp passed, in the same
// day/hour/minute breakdown.
func Elapsed(now, past time.Time) string {
	gone := now.Sub(past)
	if gone < 0 {
		gone = 0
	}

	days := int(gone.Hours()) / 24
	hours := int(gone.Hours()) % 24
	minutes := int(gone.Minutes()) % 60

	var b strings.Builder
	if days > 0 {
		fmt.Fprintf(&b, "%d วัน ", days)
	}
	if hours > 0 {
		fmt.Fprintf(&b, "%d ชั่วโมง ", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&b, "%d นาที", minutes)
	}

	result := strings.TrimSpace(b.String())
	if result == "" {
		return "ไม่ถึง 1 นาที"
	}
	return result
}
