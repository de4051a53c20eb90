package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/comitanigiacomo/life-cockpit/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/life-cockpit/internal/core/domain"
	"github.com/comitanigiacomo/life-cockpit/internal/core/services"
	"github.com/gin-gonic/gin"
)

// TrackerHandler exposes the focus, vitality and time allocation trackers.
type TrackerHandler struct {
	svc *services.TrackerService
}

func NewTrackerHandler(svc *services.TrackerService) *TrackerHandler {
	return &TrackerHandler{
		svc: svc,
	}
}

type logFocusRequest struct {
	TaskID          *string   `json:"task_id"`
	StartedAt       time.Time `json:"started_at" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required"`
	Label           string    `json:"label"`
}

type logVitalityRequest struct {
	LogDate    *time.Time `json:"log_date"`
	Energy     int        `json:"energy" binding:"required"`
	SleepHours float64    `json:"sleep_hours"`
	Mood       string     `json:"mood"`
	Note       string     `json:"note"`
}

type allocateTimeRequest struct {
	Category       string     `json:"category" binding:"required"`
	PlannedMinutes int        `json:"planned_minutes"`
	ActualMinutes  int        `json:"actual_minutes"`
	Week           *time.Time `json:"week"`
}

func (h *TrackerHandler) RegisterRoutes(router *gin.RouterGroup) {
	focus := router.Group("/focus")
	{
		focus.POST("", h.LogFocus)
		focus.GET("", h.ListFocus)
		focus.DELETE("/:id", h.DeleteFocus)
	}

	vitality := router.Group("/vitality")
	{
		vitality.POST("", h.LogVitality)
		vitality.GET("", h.ListVitality)
		vitality.GET("/today", h.TodayVitality)
	}

	allocations := router.Group("/allocations")
	{
		allocations.POST("", h.Allocate)
		allocations.GET("", h.ListAllocations)
	}
}

func (h *TrackerHandler) LogFocus(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req logFocusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.svc.LogFocus(c.Request.Context(), services.LogFocusInput{
		UserID:          userID,
		TaskID:          req.TaskID,
		StartedAt:       req.StartedAt,
		DurationMinutes: req.DurationMinutes,
		Label:           req.Label,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDuration) ||
			errors.Is(err, domain.ErrDurationTooLong) ||
			errors.Is(err, domain.ErrFocusFutureStart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, session)
}

// ListFocus returns sessions in the [from, to] window, defaulting to the
// last 7 days.
func (h *TrackerHandler) ListFocus(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	from, to, err := parseWindow(c, 7*24*time.Hour)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.svc.ListFocus(c.Request.Context(), userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *TrackerHandler) DeleteFocus(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	err := h.svc.DeleteFocus(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrFocusNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "focus session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TrackerHandler) LogVitality(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req logVitalityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.LogVitalityInput{
		UserID:     userID,
		Energy:     req.Energy,
		SleepHours: req.SleepHours,
		Mood:       req.Mood,
		Note:       req.Note,
	}
	if req.LogDate != nil {
		input.LogDate = *req.LogDate
	}

	entry, err := h.svc.LogVitality(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidEnergy) || errors.Is(err, domain.ErrInvalidSleepHours) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *TrackerHandler) ListVitality(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	from, to, err := parseWindow(c, 30*24*time.Hour)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.svc.ListVitality(c.Request.Context(), userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *TrackerHandler) TodayVitality(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	entry, err := h.svc.GetVitality(c.Request.Context(), userID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrVitalityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no vitality log for today"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *TrackerHandler) Allocate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req allocateTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.AllocateTimeInput{
		UserID:         userID,
		Category:       req.Category,
		PlannedMinutes: req.PlannedMinutes,
		ActualMinutes:  req.ActualMinutes,
	}
	if req.Week != nil {
		input.Week = *req.Week
	}

	allocation, err := h.svc.AllocateTime(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrAllocationCategoryEmpty) || errors.Is(err, domain.ErrNegativeMinutes) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, allocation)
}

// ListAllocations returns the buckets for the week containing ?week=,
// defaulting to the current week.
func (h *TrackerHandler) ListAllocations(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	week := time.Now().UTC()
	if raw := c.Query("week"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid week format, use RFC3339"})
			return
		}
		week = parsed
	}

	list, err := h.svc.ListAllocations(c.Request.Context(), userID, week)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// parseWindow reads optional ?from= and ?to= RFC3339 query params,
// falling back to [now-span, now].
func parseWindow(c *gin.Context, span time.Duration) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now.Add(-span)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return from, to, errors.New("invalid from format, use RFC3339")
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return from, to, errors.New("invalid to format, use RFC3339")
		}
		to = parsed
	}

	return from, to, nil
}
