package http

import (
	"errors"
	"net/http"

	"openlove/internal/usecase"
	"openlove/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ShareHandler struct {
	shareUseCase usecase.ShareUseCase
	logger       *logger.Logger
}

func NewShareHandler(shareUseCase usecase.ShareUseCase, logger *logger.Logger) *ShareHandler {
	return &ShareHandler{
		shareUseCase: shareUseCase,
		logger:       logger,
	}
}

type shareRequest struct {
	ShareType    string   `json:"share_type" binding:"required"`
	Content      string   `json:"content"`
	RecipientIDs []string `json:"recipient_ids"`
}

// SharePost godoc
// @Summary      Share a post
// @Description  Repost to the own profile, forward via direct message, or get an external link. All variants count toward the original post's share counter.
// @Tags         shares
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        post_id path string true "Post ID"
// @Param        request body shareRequest true "Share type and payload"
// @Success      200  {object}  usecase.ShareResult
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{post_id}/share [post]
func (h *ShareHandler) SharePost(c *gin.Context) {
	postID := c.Param("post_id")
	userID := c.GetString("user_id")

	var req shareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.shareUseCase.SharePost(userID, postID, usecase.ShareType(req.ShareType), req.Content, req.RecipientIDs)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPlanRequired):
			c.JSON(http.StatusForbidden, gin.H{"error": "plan_required"})
		case err.Error() == "post not found":
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case err.Error() == "invalid share type" || err.Error() == "recipients are required":
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to share post: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to share post"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
