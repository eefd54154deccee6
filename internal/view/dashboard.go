package view

import (
	"sort"
	"time"

	"teamtask/internal/model"
)

// Thai month abbreviations, used as histogram bucket labels.
var thaiMonths = [...]string{
	"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.",
	"ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค.",
}

// Dashboard aggregates the current task collection. It is rebuilt in full
// on every request.
type Dashboard struct {
	Total      int            `json:"total"`
	InProgress int            `json:"inProgress"`
	Completed  int            `json:"completed"`
	Monthly    []MonthlyCount `json:"monthly"`
}

// MonthlyCount is one histogram bucket: completed tasks in the calendar
// month of their end date.
type MonthlyCount struct {
	Name      string `json:"name"`
	Completed int    `json:"completed"`
}

// BuildDashboard computes the counts and the monthly completed histogram.
// Buckets are ordered chronologically; months without completed tasks are
// omitted.
func BuildDashboard(tasks []model.Task) Dashboard {
	d := Dashboard{Total: len(tasks)}

	type bucket struct {
		year  int
		month time.Month
		count int
	}
	buckets := map[string]*bucket{}

	for _, t := range tasks {
		switch t.Status {
		case model.StatusInProgress:
			d.InProgress++
		case model.StatusCompleted:
			d.Completed++
			end, err := time.Parse("2006-01-02", t.EndDate)
			if err != nil {
				continue
			}
			key := end.Format("2006-01")
			if b, ok := buckets[key]; ok {
				b.count++
			} else {
				buckets[key] = &bucket{year: end.Year(), month: end.Month(), count: 1}
			}
		}
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].year != ordered[j].year {
			return ordered[i].year < ordered[j].year
		}
		return ordered[i].month < ordered[j].month
	})

	d.Monthly = make([]MonthlyCount, len(ordered))
	for i, b := range ordered {
		d.Monthly[i] = MonthlyCount{
			Name:      thaiMonths[b.month-1],
			Completed: b.count,
		}
	}
	return d
}
