package http

import (
	"errors"
	"net/http"

	"github.com/comitanigiacomo/life-cockpit/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/life-cockpit/internal/core/services"
	"github.com/gin-gonic/gin"
)

type CaptureHandler struct {
	svc *services.CaptureService
}

func NewCaptureHandler(svc *services.CaptureService) *CaptureHandler {
	return &CaptureHandler{
		svc: svc,
	}
}

type captureRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *CaptureHandler) RegisterRoutes(router *gin.RouterGroup) {
	capture := router.Group("/capture")
	{
		capture.POST("", h.Submit)
		capture.POST("/preview", h.Preview)
	}
}

// Submit classifies the raw text and persists it as the matching entity.
func (h *CaptureHandler) Submit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req captureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.Submit(c.Request.Context(), userID, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrCaptureEmpty) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, result)
}

// Preview classifies without persisting anything.
func (h *CaptureHandler) Preview(c *gin.Context) {
	var req captureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	classified := h.svc.Preview(req.Content)
	c.JSON(http.StatusOK, classified)
}
