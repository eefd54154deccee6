package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamtask/internal/model"
	"teamtask/internal/state"
)

type AssigneeHandler struct {
	state *state.AppState
}

func NewAssigneeHandler(appState *state.AppState) *AssigneeHandler {
	return &AssigneeHandler{state: appState}
}

type AssigneeRequest struct {
	Name     string `json:"name" binding:"required"`
	Position string `json:"position"`
	Role     string `json:"role"`
}

func (h *AssigneeHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.state.Assignees())
}

func (h *AssigneeHandler) Create(c *gin.Context) {
	var req AssigneeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Assignee name is required"})
		return
	}

	saved, err := h.state.SaveAssignee(c.Request.Context(), model.Assignee{
		Name:     req.Name,
		Position: req.Position,
		Role:     req.Role,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to save new assignee"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"assignee": saved})
}

func (h *AssigneeHandler) Update(c *gin.Context) {
	var req AssigneeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Assignee name is required"})
		return
	}

	saved, err := h.state.SaveAssignee(c.Request.Context(), model.Assignee{
		ID:       c.Param("id"),
		Name:     req.Name,
		Position: req.Position,
		Role:     req.Role,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to update assignee"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assignee": saved})
}

func (h *AssigneeHandler) Delete(c *gin.Context) {
	if err := h.state.RemoveAssignee(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete assignee"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
