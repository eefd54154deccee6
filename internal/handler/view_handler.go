package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"teamtask/internal/form"
	"teamtask/internal/state"
	"teamtask/internal/view"
)

// ViewHandler serves the presentation-side pieces: the dashboard
// aggregation, the UI state snapshot and the form defaults the pickers
// are built from.
type ViewHandler struct {
	state *state.AppState
	now   func() time.Time
}

func NewViewHandler(appState *state.AppState) *ViewHandler {
	return &ViewHandler{
		state: appState,
		now:   time.Now,
	}
}

// Dashboard recomputes the aggregation from the current collection.
func (h *ViewHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, view.BuildDashboard(h.state.Tasks()))
}

// Snapshot returns phase, view mode and the flash message.
func (h *ViewHandler) Snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.state.Snapshot())
}

type viewRequest struct {
	View string `json:"view" binding:"required"`
}

// SetView toggles between the list and dashboard views.
func (h *ViewHandler) SetView(c *gin.Context) {
	var req viewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.state.SetView(req.View); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.state.Snapshot())
}

// NewForm returns the defaults for an add-task form plus the full set of
// time options. The display dates carry the Buddhist-era rendering of the
// draft defaults.
func (h *ViewHandler) NewForm(c *gin.Context) {
	f := form.New(h.now())
	draft := f.Task()
	c.JSON(http.StatusOK, gin.H{
		"draft":            draft,
		"displayStartDate": view.FormatDateForInput(draft.StartDate),
		"displayEndDate":   view.FormatDateForInput(draft.EndDate),
		"timeOptions":      form.TimeOptions(form.TimeInterval),
	})
}

// EndTimeOptions returns the pickable end times for the given draft
// window. On a same-day window everything at or before the start time is
// filtered out.
func (h *ViewHandler) EndTimeOptions(c *gin.Context) {
	f := form.New(h.now())
	if d := c.Query("startDate"); d != "" {
		f.SetStartDate(d)
	}
	if d := c.Query("endDate"); d != "" {
		f.SetEndDate(d)
	}
	if t := c.Query("startTime"); t != "" {
		f.SetStartTime(t)
	}

	c.JSON(http.StatusOK, gin.H{"timeOptions": f.EndTimeOptions()})
}
