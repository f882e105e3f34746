package http

import (
	"errors"
	"net/http"
	"time"

	"openlove/internal/usecase"
	"openlove/pkg/logger"
	"openlove/pkg/pagination"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventUseCase usecase.EventUseCase
	logger       *logger.Logger
}

func NewEventHandler(eventUseCase usecase.EventUseCase, logger *logger.Logger) *EventHandler {
	return &EventHandler{
		eventUseCase: eventUseCase,
		logger:       logger,
	}
}

type createEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
}

// CreateEvent godoc
// @Summary      Create an event
// @Description  Premium feature; the plan caps events per calendar month
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body createEventRequest true "Event definition"
// @Success      201  {object}  models.Event
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID := c.GetString("user_id")

	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventUseCase.CreateEvent(userID, req.Title, req.Description, req.Location, req.StartsAt)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPlanRequired):
			c.JSON(http.StatusForbidden, gin.H{"error": "plan_required"})
		case errors.Is(err, usecase.ErrEventLimit):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrEventInPast), errors.Is(err, usecase.ErrEventTitleEmpty):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to create event: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		}
		return
	}

	c.JSON(http.StatusCreated, event)
}

// ListEvents godoc
// @Summary      List upcoming events
// @Description  Soonest first; past events are excluded
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        page query int false "Page number (default 1)"
// @Param        limit query int false "Items per page (default 20, max 100)"
// @Success      200  {object}  map[string]interface{}
// @Router       /events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	params := pagination.Parse(c.Query("page"), c.Query("limit"))

	events, hasMore, err := h.eventUseCase.ListEvents(params)
	if err != nil {
		h.logger.Error("Failed to list events: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    events,
		"hasMore": hasMore,
		"page":    params.Page,
		"limit":   params.Limit,
	})
}

// CancelEvent godoc
// @Summary      Cancel an event
// @Description  Organizer only
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        event_id path string true "Event ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /events/{event_id} [delete]
func (h *EventHandler) CancelEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("event_id")

	if err := h.eventUseCase.CancelEvent(userID, eventID); err != nil {
		switch {
		case errors.Is(err, usecase.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrNotOrganizer):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to cancel event: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel event"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event cancelled"})
}
