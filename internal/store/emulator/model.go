package emulator

import (
	"github.com/google/uuid"

	"teamtask/internal/model"
)

// TaskRow is the persisted form of a task. Dates and times stay strings:
// the row layout follows the sheet the real store keeps, column for column.
type TaskRow struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"not null"`
	Details   string
	Assignee  string `gorm:"not null"`
	StartDate string
	EndDate   string
	StartTime string
	EndTime   string
	Status    string `gorm:"not null"`
}

type AssigneeRow struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"uniqueIndex;not null"`
	Position string
	Role     string
}

func (r TaskRow) toModel() model.Task {
	return model.Task{
		ID:        r.ID.String(),
		Title:     r.Title,
		Details:   r.Details,
		Assignee:  r.Assignee,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Status:    r.Status,
	}
}

func (r AssigneeRow) toModel() model.Assignee {
	return model.Assignee{
		ID:       r.ID.String(),
		Name:     r.Name,
		Position: r.Position,
		Role:     r.Role,
	}
}
