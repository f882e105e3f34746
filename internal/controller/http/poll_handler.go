package http

import (
	"errors"
	"net/http"
	"time"

	"openlove/internal/usecase"
	"openlove/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PollHandler struct {
	pollUseCase usecase.PollUseCase
	logger      *logger.Logger
}

func NewPollHandler(pollUseCase usecase.PollUseCase, logger *logger.Logger) *PollHandler {
	return &PollHandler{
		pollUseCase: pollUseCase,
		logger:      logger,
	}
}

type createPollRequest struct {
	Question  string     `json:"question" binding:"required"`
	Options   []string   `json:"options" binding:"required"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type voteRequest struct {
	OptionIndex int `json:"option_index"`
}

// CreatePoll godoc
// @Summary      Create a poll
// @Description  Premium feature; polls carry 2 to 4 options
// @Tags         polls
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body createPollRequest true "Poll definition"
// @Success      201  {object}  models.Poll
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /polls [post]
func (h *PollHandler) CreatePoll(c *gin.Context) {
	userID := c.GetString("user_id")

	var req createPollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	poll, err := h.pollUseCase.CreatePoll(userID, req.Question, req.Options, req.ExpiresAt)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPlanRequired):
			c.JSON(http.StatusForbidden, gin.H{"error": "plan_required"})
		case err.Error() == "user not found":
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, poll)
}

// GetPoll godoc
// @Summary      Get a poll
// @Description  Includes the authenticated viewer's vote, if any
// @Tags         polls
// @Accept       json
// @Produce      json
// @Param        poll_id path string true "Poll ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /polls/{poll_id} [get]
func (h *PollHandler) GetPoll(c *gin.Context) {
	pollID := c.Param("poll_id")
	userID := c.GetString("user_id")

	poll, votedIndex, err := h.pollUseCase.GetPoll(pollID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "poll not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"poll": poll, "voted_option": votedIndex})
}

// Vote godoc
// @Summary      Vote on a poll
// @Description  One vote per user; a revote moves the vote to the new option
// @Tags         polls
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        poll_id path string true "Poll ID"
// @Param        request body voteRequest true "Chosen option index"
// @Success      200  {object}  models.Poll
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /polls/{poll_id}/vote [post]
func (h *PollHandler) Vote(c *gin.Context) {
	pollID := c.Param("poll_id")
	userID := c.GetString("user_id")

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	poll, err := h.pollUseCase.Vote(userID, pollID, req.OptionIndex)
	if err != nil {
		switch err.Error() {
		case "poll not found":
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case "poll has expired", "invalid option":
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to cast vote: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cast vote"})
		}
		return
	}

	c.JSON(http.StatusOK, poll)
}
