package http

import (
	"net/http"

	"github.com/comitanigiacomo/life-cockpit/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/life-cockpit/internal/core/services"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	svc *services.StatsService
}

func NewDashboardHandler(svc *services.StatsService) *DashboardHandler {
	return &DashboardHandler{
		svc: svc,
	}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("/summary", h.Summary)
	}
}

// Summary serves the cached summary when fresh, recomputing on miss.
func (h *DashboardHandler) Summary(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	summary, err := h.svc.CachedSummary(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
