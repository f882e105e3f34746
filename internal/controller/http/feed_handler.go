package http

import (
	"net/http"

	"openlove/internal/usecase"
	"openlove/pkg/logger"
	"openlove/pkg/pagination"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedUseCase usecase.FeedUseCase
	logger      *logger.Logger
}

func NewFeedHandler(feedUseCase usecase.FeedUseCase, logger *logger.Logger) *FeedHandler {
	return &FeedHandler{
		feedUseCase: feedUseCase,
		logger:      logger,
	}
}

// GetTimeline godoc
// @Summary      Get the timeline feed
// @Description  Personalized feed: followed authors for free users, the full public set for premium users
// @Tags         feed
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page number (default 1)"
// @Param        limit query int false "Items per page (default 20, max 100)"
// @Param        debug query bool false "Include assembly diagnostics (requires server debug mode)"
// @Success      200  {object}  entity.FeedResponse
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /feed/timeline [get]
func (h *FeedHandler) GetTimeline(c *gin.Context) {
	userID := c.GetString("user_id")
	params := pagination.Parse(c.Query("page"), c.Query("limit"))
	debug := c.Query("debug") == "1" || c.Query("debug") == "true"

	response, err := h.feedUseCase.GetTimeline(userID, params, debug)
	if err != nil {
		if err.Error() == "viewer not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.logger.Error("Failed to assemble timeline: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch timeline"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetFollowingFeed godoc
// @Summary      Get the following feed
// @Description  Posts from followed authors only, for every tier
// @Tags         feed
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page number (default 1)"
// @Param        limit query int false "Items per page (default 20, max 100)"
// @Param        debug query bool false "Include assembly diagnostics (requires server debug mode)"
// @Success      200  {object}  entity.FeedResponse
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /feed/following [get]
func (h *FeedHandler) GetFollowingFeed(c *gin.Context) {
	userID := c.GetString("user_id")
	params := pagination.Parse(c.Query("page"), c.Query("limit"))
	debug := c.Query("debug") == "1" || c.Query("debug") == "true"

	response, err := h.feedUseCase.GetFollowingFeed(userID, params, debug)
	if err != nil {
		if err.Error() == "viewer not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.logger.Error("Failed to assemble following feed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feed"})
		return
	}

	c.JSON(http.StatusOK, response)
}
