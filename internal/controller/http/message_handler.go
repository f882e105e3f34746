package http

import (
	"errors"
	"net/http"

	"openlove/internal/usecase"
	"openlove/pkg/logger"
	"openlove/pkg/pagination"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageUseCase usecase.MessageUseCase
	logger         *logger.Logger
}

func NewMessageHandler(messageUseCase usecase.MessageUseCase, logger *logger.Logger) *MessageHandler {
	return &MessageHandler{
		messageUseCase: messageUseCase,
		logger:         logger,
	}
}

type sendMessageRequest struct {
	RecipientID string `json:"recipient_id" binding:"required"`
	Content     string `json:"content" binding:"required"`
}

// SendMessage godoc
// @Summary      Send a direct message
// @Description  Premium feature
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body sendMessageRequest true "Recipient and content"
// @Success      201  {object}  models.Message
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /messages [post]
func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID := c.GetString("user_id")

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messageUseCase.SendMessage(userID, req.RecipientID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPlanRequired):
			c.JSON(http.StatusForbidden, gin.H{"error": "plan_required"})
		case err.Error() == "recipient not found" || err.Error() == "user not found":
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case err.Error() == "cannot message yourself" || err.Error() == "message content is required":
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to send message: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		}
		return
	}

	c.JSON(http.StatusCreated, message)
}

// GetConversation godoc
// @Summary      Get a conversation
// @Description  Messages between the authenticated user and another user, newest first. Fetching marks received messages as read.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user_id path string true "Other user ID"
// @Param        page query int false "Page number (default 1)"
// @Param        limit query int false "Items per page (default 20, max 100)"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /messages/{user_id} [get]
func (h *MessageHandler) GetConversation(c *gin.Context) {
	userID := c.GetString("user_id")
	otherID := c.Param("user_id")
	params := pagination.Parse(c.Query("page"), c.Query("limit"))

	messages, err := h.messageUseCase.GetConversation(userID, otherID, params.Limit, params.Offset())
	if err != nil {
		h.logger.Error("Failed to load conversation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    messages,
		"hasMore": params.HasMore(len(messages)),
		"page":    params.Page,
		"limit":   params.Limit,
	})
}
