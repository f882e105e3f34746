package http

import (
	"net/http"

	"openlove/internal/usecase"
	"openlove/pkg/logger"
	"openlove/pkg/models"

	"github.com/gin-gonic/gin"
)

type InteractionHandler struct {
	interactionUseCase usecase.InteractionUseCase
	logger             *logger.Logger
}

func NewInteractionHandler(interactionUseCase usecase.InteractionUseCase, logger *logger.Logger) *InteractionHandler {
	return &InteractionHandler{
		interactionUseCase: interactionUseCase,
		logger:             logger,
	}
}

type likeRequest struct {
	Reaction string `json:"reaction"`
}

// ToggleLike godoc
// @Summary      Toggle a reaction on a post
// @Description  Repeating the same reaction removes it; a different reaction replaces the existing one
// @Tags         interactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        post_id path string true "Post ID"
// @Param        request body likeRequest false "Reaction type (default like)"
// @Success      200  {object}  usecase.LikeResult
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{post_id}/like [post]
func (h *InteractionHandler) ToggleLike(c *gin.Context) {
	postID := c.Param("post_id")
	userID := c.GetString("user_id")

	var req likeRequest
	_ = c.ShouldBindJSON(&req)
	reaction := models.Reaction(req.Reaction)
	if reaction == "" {
		reaction = models.ReactionLike
	}

	result, err := h.interactionUseCase.ToggleLike(userID, postID, reaction)
	if err != nil {
		switch err.Error() {
		case "post not found":
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case "invalid reaction":
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to toggle like: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle like"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// ToggleCommentLike godoc
// @Summary      Toggle a like on a comment
// @Tags         interactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        comment_id path string true "Comment ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /comments/{comment_id}/like [post]
func (h *InteractionHandler) ToggleCommentLike(c *gin.Context) {
	commentID := c.Param("comment_id")
	userID := c.GetString("user_id")

	isLiked, count, err := h.interactionUseCase.ToggleCommentLike(userID, commentID)
	if err != nil {
		if err.Error() == "comment not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to toggle comment like: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle like"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"isLiked": isLiked, "likesCount": count})
}

// GetLikeCount godoc
// @Summary      Get like count for a post
// @Description  Served from the Redis counter first, falling back to the store
// @Tags         interactions
// @Accept       json
// @Produce      json
// @Param        post_id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /posts/{post_id}/likes [get]
func (h *InteractionHandler) GetLikeCount(c *gin.Context) {
	postID := c.Param("post_id")

	count, err := h.interactionUseCase.GetLikeCount(postID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post_id": postID, "likes_count": count})
}

// TrackView godoc
// @Summary      Record a post view
// @Description  Counted once per viewer; repeat calls are no-ops
// @Tags         interactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        post_id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{post_id}/view [post]
func (h *InteractionHandler) TrackView(c *gin.Context) {
	postID := c.Param("post_id")
	userID := c.GetString("user_id")

	counted, err := h.interactionUseCase.IncrementView(userID, postID)
	if err != nil {
		if err.Error() == "post not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to track view: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to track view"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"counted": counted})
}

// GetViewCount godoc
// @Summary      Get view count for a post
// @Tags         interactions
// @Accept       json
// @Produce      json
// @Param        post_id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /posts/{post_id}/views [get]
func (h *InteractionHandler) GetViewCount(c *gin.Context) {
	postID := c.Param("post_id")

	count, err := h.interactionUseCase.GetViewCount(postID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post_id": postID, "views_count": count})
}
