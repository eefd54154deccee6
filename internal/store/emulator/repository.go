package emulator

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"teamtask/internal/model"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrAssigneeNotFound = errors.New("assignee not found")
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// List retrieves every task in insertion order.
func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	var rows []TaskRow
	result := r.db.WithContext(ctx).Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	tasks := make([]model.Task, len(rows))
	for i, row := range rows {
		tasks[i] = row.toModel()
	}
	return tasks, nil
}

// Create assigns an id, defaults a blank status to "To Do" and stores the task.
func (r *TaskRepository) Create(ctx context.Context, task model.Task) (*model.Task, error) {
	row := TaskRow{
		ID:        uuid.New(),
		Title:     task.Title,
		Details:   task.Details,
		Assignee:  task.Assignee,
		StartDate: task.StartDate,
		EndDate:   task.EndDate,
		StartTime: task.StartTime,
		EndTime:   task.EndTime,
		Status:    task.Status,
	}
	if row.Status == "" {
		row.Status = model.StatusToDo
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}

	saved := row.toModel()
	return &saved, nil
}

// Update replaces the stored task with the given one, keyed by id.
func (r *TaskRepository) Update(ctx context.Context, task model.Task) (*model.Task, error) {
	id, err := uuid.Parse(task.ID)
	if err != nil {
		return nil, ErrTaskNotFound
	}

	row := TaskRow{
		ID:        id,
		Title:     task.Title,
		Details:   task.Details,
		Assignee:  task.Assignee,
		StartDate: task.StartDate,
		EndDate:   task.EndDate,
		StartTime: task.StartTime,
		EndTime:   task.EndTime,
		Status:    task.Status,
	}

	result := r.db.WithContext(ctx).Model(&TaskRow{}).Where("id = ?", id).Updates(map[string]interface{}{
		"title":      row.Title,
		"details":    row.Details,
		"assignee":   row.Assignee,
		"start_date": row.StartDate,
		"end_date":   row.EndDate,
		"start_time": row.StartTime,
		"end_time":   row.EndTime,
		"status":     row.Status,
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrTaskNotFound
	}

	saved := row.toModel()
	return &saved, nil
}

// Delete removes a task by its id.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return ErrTaskNotFound
	}

	result := r.db.WithContext(ctx).Delete(&TaskRow{}, "id = ?", parsed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

type AssigneeRepository struct {
	db *gorm.DB
}

func NewAssigneeRepository(db *gorm.DB) *AssigneeRepository {
	return &AssigneeRepository{db: db}
}

func (r *AssigneeRepository) List(ctx context.Context) ([]model.Assignee, error) {
	var rows []AssigneeRow
	result := r.db.WithContext(ctx).Order("name").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	assignees := make([]model.Assignee, len(rows))
	for i, row := range rows {
		assignees[i] = row.toModel()
	}
	return assignees, nil
}

func (r *AssigneeRepository) Create(ctx context.Context, assignee model.Assignee) (*model.Assignee, error) {
	row := AssigneeRow{
		ID:       uuid.New(),
		Name:     assignee.Name,
		Position: assignee.Position,
		Role:     assignee.Role,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}

	saved := row.toModel()
	return &saved, nil
}

func (r *AssigneeRepository) Update(ctx context.Context, assignee model.Assignee) (*model.Assignee, error) {
	id, err := uuid.Parse(assignee.ID)
	if err != nil {
		return nil, ErrAssigneeNotFound
	}

	result := r.db.WithContext(ctx).Model(&AssigneeRow{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":     assignee.Name,
		"position": assignee.Position,
		"role":     assignee.Role,
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrAssigneeNotFound
	}

	saved := assignee
	return &saved, nil
}

func (r *AssigneeRepository) Delete(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return ErrAssigneeNotFound
	}

	result := r.db.WithContext(ctx).Delete(&AssigneeRow{}, "id = ?", parsed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAssigneeNotFound
	}
	return nil
}
