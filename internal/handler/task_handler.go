package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"teamtask/internal/form"
	"teamtask/internal/model"
	"teamtask/internal/state"
	"teamtask/internal/view"
)

type TaskHandler struct {
	state *state.AppState
	now   func() time.Time
}

func NewTaskHandler(appState *state.AppState) *TaskHandler {
	return &TaskHandler{
		state: appState,
		now:   time.Now,
	}
}

// TaskRequest is the submitted form payload. Either the selector's
// assignee id or an assignee name must be present; dates and times fall
// back to the form defaults when omitted.
type TaskRequest struct {
	Title      string `json:"title" binding:"required"`
	Details    string `json:"details"`
	AssigneeID string `json:"assigneeId"`
	Assignee   string `json:"assignee"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Status     string `json:"status"`
}

// TaskResponse is a task plus its derived time annotation. The display
// dates are the stored dates rendered as dd/mm/yyyy in the Buddhist era,
// ready for the date inputs.
type TaskResponse struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Details          string          `json:"details,omitempty"`
	Assignee         string          `json:"assignee"`
	StartDate        string          `json:"startDate"`
	EndDate          string          `json:"endDate"`
	StartTime        string          `json:"startTime"`
	EndTime          string          `json:"endTime"`
	Status           string          `json:"status"`
	DisplayStartDate string          `json:"displayStartDate"`
	DisplayEndDate   string          `json:"displayEndDate"`
	StatusInfo       view.StatusInfo `json:"statusInfo"`
}

// List returns the task collection with status annotations computed at
// request time.
func (h *TaskHandler) List(c *gin.Context) {
	tasks := h.state.Tasks()
	now := h.now()

	response := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		response[i] = TaskResponse{
			ID:               t.ID,
			Title:            t.Title,
			Details:          t.Details,
			Assignee:         t.Assignee,
			StartDate:        t.StartDate,
			EndDate:          t.EndDate,
			StartTime:        t.StartTime,
			EndTime:          t.EndTime,
			Status:           t.Status,
			DisplayStartDate: view.FormatDateForInput(t.StartDate),
			DisplayEndDate:   view.FormatDateForInput(t.EndDate),
			StatusInfo:       view.TaskStatusInfo(now, t),
		}
	}

	c.JSON(http.StatusOK, response)
}

// Create submits a new task draft to the store.
func (h *TaskHandler) Create(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	f := form.New(h.now())
	draft, err := h.applyRequest(f, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.state.SaveTask(c.Request.Context(), draft)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to save task"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": saved, "message": h.state.Message()})
}

// Update edits an existing task. The current record is loaded into the
// form verbatim and the submitted fields are applied over it.
func (h *TaskHandler) Update(c *gin.Context) {
	current, ok := h.state.FindTask(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	f := form.Edit(current)
	draft, err := h.applyRequest(f, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.state.SaveTask(c.Request.Context(), draft)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to save task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": saved, "message": h.state.Message()})
}

// Complete marks a task completed. The confirm flag stands in for the
// user's explicit confirmation dialog.
func (h *TaskHandler) Complete(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Completing a task requires confirm=true"})
		return
	}

	task, ok := h.state.FindTask(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	saved, err := h.state.CompleteTask(c.Request.Context(), task)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to update task status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": saved, "message": h.state.Message()})
}

// Delete removes a task. The confirm flag stands in for the confirmation
// dialog.
func (h *TaskHandler) Delete(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Deleting a task requires confirm=true"})
		return
	}

	if _, ok := h.state.FindTask(c.Param("id")); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	if err := h.state.RemoveTask(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": h.state.Message()})
}

// Notify sends the reminder message for a task. This is the one delivery
// whose failure the user gets to see.
func (h *TaskHandler) Notify(c *gin.Context) {
	task, ok := h.state.FindTask(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	if err := h.state.Notify(c.Request.Context(), task); err != nil {
		if errors.Is(err, state.ErrNotifierDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Notifications are not configured"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": h.state.Message()})
}

// Reload refetches both collections from the store.
func (h *TaskHandler) Reload(c *gin.Context) {
	if err := h.state.Load(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load data from the task store"})
		return
	}
	c.JSON(http.StatusOK, h.state.Snapshot())
}

// applyRequest lays the submitted fields over the form draft and validates
// the result.
func (h *TaskHandler) applyRequest(f *form.Form, req TaskRequest) (model.Task, error) {
	f.SetTitle(req.Title)
	if req.Details != "" || f.Editing() {
		f.SetDetails(req.Details)
	}
	if req.StartDate != "" {
		f.SetStartDate(req.StartDate)
	}
	if req.EndDate != "" {
		f.SetEndDate(req.EndDate)
	}
	if req.StartTime != "" {
		f.SetStartTime(req.StartTime)
	}
	if req.EndTime != "" {
		f.SetEndTime(req.EndTime)
	}
	if req.Status != "" {
		f.SetStatus(req.Status)
	}

	if req.AssigneeID != "" {
		if err := f.SelectAssignee(req.AssigneeID, h.state.Assignees()); err != nil {
			return model.Task{}, err
		}
		if f.AssigneeDialogRequested {
			return model.Task{}, errors.New("assignee selection requires the management dialog, not a submission")
		}
	} else if req.Assignee != "" {
		f.SetAssigneeName(req.Assignee)
	}

	if err := f.Validate(); err != nil {
		return model.Task{}, err
	}
	return f.Task(), nil
}
