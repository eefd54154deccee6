package emulator

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"teamtask/internal/model"
)

// Handler serves the task store's wire protocol so the application can run
// without the real scripted endpoint. GET lists records, POST dispatches on
// the action field.
type Handler struct {
	taskRepo     *TaskRepository
	assigneeRepo *AssigneeRepository
}

func NewHandler(taskRepo *TaskRepository, assigneeRepo *AssigneeRepository) *Handler {
	return &Handler{
		taskRepo:     taskRepo,
		assigneeRepo: assigneeRepo,
	}
}

type actionRequest struct {
	Action   string          `json:"action" binding:"required"`
	Task     *model.Task     `json:"task"`
	Assignee *model.Assignee `json:"assignee"`
	ID       string          `json:"id"`
}

func (h *Handler) Register(r *gin.Engine) {
	r.GET("/", h.List)
	r.POST("/", h.Dispatch)
}

// List returns tasks, or assignees when type=assignees is given.
func (h *Handler) List(c *gin.Context) {
	if c.Query("type") == "assignees" {
		assignees, err := h.assigneeRepo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list assignees"})
			return
		}
		c.JSON(http.StatusOK, assignees)
		return
	}

	tasks, err := h.taskRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// Dispatch executes one write action. The body is bound as JSON regardless
// of content type because clients post as text/plain, like the scripted
// endpoint expects.
func (h *Handler) Dispatch(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	switch req.Action {
	case "create", "update":
		h.saveTask(c, req)
	case "delete":
		h.deleteTask(c, req)
	case "createAssignee", "updateAssignee":
		h.saveAssignee(c, req)
	case "deleteAssignee":
		h.deleteAssignee(c, req)
	case "sendNotification":
		// The scripted store forwards these to a mail digest. The emulator
		// only acknowledges.
		log.Printf("📣 sendNotification acknowledged (task id %s)", req.ID)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown action"})
	}
}

func (h *Handler) saveTask(c *gin.Context, req actionRequest) {
	if req.Task == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing task payload"})
		return
	}

	var (
		saved *model.Task
		err   error
	)
	if req.Action == "create" {
		saved, err = h.taskRepo.Create(c.Request.Context(), *req.Task)
	} else {
		saved, err = h.taskRepo.Update(c.Request.Context(), *req.Task)
	}

	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": saved})
}

func (h *Handler) deleteTask(c *gin.Context, req actionRequest) {
	if req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing task id"})
		return
	}

	if err := h.taskRepo.Delete(c.Request.Context(), req.ID); err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) saveAssignee(c *gin.Context, req actionRequest) {
	if req.Assignee == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing assignee payload"})
		return
	}
	if req.Assignee.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Assignee name is required"})
		return
	}

	var (
		saved *model.Assignee
		err   error
	)
	if req.Action == "createAssignee" {
		saved, err = h.assigneeRepo.Create(c.Request.Context(), *req.Assignee)
	} else {
		saved, err = h.assigneeRepo.Update(c.Request.Context(), *req.Assignee)
	}

	if err != nil {
		if errors.Is(err, ErrAssigneeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Assignee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save assignee"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assignee": saved})
}

func (h *Handler) deleteAssignee(c *gin.Context, req actionRequest) {
	if req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing assignee id"})
		return
	}

	if err := h.assigneeRepo.Delete(c.Request.Context(), req.ID); err != nil {
		if errors.Is(err, ErrAssigneeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Assignee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete assignee"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
