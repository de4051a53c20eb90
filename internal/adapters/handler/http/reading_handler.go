package http

import (
	"errors"
	"net/http"

	"github.com/comitanigiacomo/life-cockpit/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/life-cockpit/internal/core/domain"
	"github.com/comitanigiacomo/life-cockpit/internal/core/services"
	"github.com/gin-gonic/gin"
)

type ReadingHandler struct {
	svc *services.ReadingService
}

func NewReadingHandler(svc *services.ReadingService) *ReadingHandler {
	return &ReadingHandler{
		svc: svc,
	}
}

type createReadingRequest struct {
	Title  string `json:"title" binding:"required"`
	Author string `json:"author"`
	URL    string `json:"url"`
}

type updateReadingRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Status *string `json:"status"`
}

func (h *ReadingHandler) RegisterRoutes(router *gin.RouterGroup) {
	reading := router.Group("/reading")
	{
		reading.POST("", h.Create)
		reading.GET("", h.List)
		reading.GET("/:id", h.Get)
		reading.PUT("/:id", h.Update)
		reading.DELETE("/:id", h.Delete)
	}
}

func (h *ReadingHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.svc.Create(c.Request.Context(), services.CreateReadingInput{
		UserID: userID,
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
	})
	if err != nil {
		if errors.Is(err, domain.ErrReadingTitleEmpty) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *ReadingHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *ReadingHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	item, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrReadingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reading item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ReadingHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req updateReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.svc.Update(c.Request.Context(), services.UpdateReadingInput{
		ID:     c.Param("id"),
		UserID: userID,
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Status: req.Status,
	})
	if err != nil {
		if errors.Is(err, domain.ErrReadingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reading item not found"})
			return
		}
		if errors.Is(err, domain.ErrReadingTitleEmpty) || errors.Is(err, domain.ErrInvalidReadingStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ReadingHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrReadingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reading item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}
