package http

import (
	"errors"
	"net/http"

	"openlove/internal/usecase"
	"openlove/pkg/logger"
	"openlove/pkg/pagination"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentUseCase usecase.CommentUseCase
	logger         *logger.Logger
}

func NewCommentHandler(commentUseCase usecase.CommentUseCase, logger *logger.Logger) *CommentHandler {
	return &CommentHandler{
		commentUseCase: commentUseCase,
		logger:         logger,
	}
}

type createCommentRequest struct {
	Content  string  `json:"content" binding:"required"`
	ParentID *string `json:"parent_id"`
}

// CreateComment godoc
// @Summary      Comment on a post
// @Description  Requires a verified, active account. Replies reference a parent comment on the same post.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        post_id path string true "Post ID"
// @Param        request body createCommentRequest true "Comment body"
// @Success      201  {object}  models.Comment
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /posts/{post_id}/comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	postID := c.Param("post_id")
	userID := c.GetString("user_id")

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentUseCase.CreateComment(userID, postID, req.Content, req.ParentID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrVerificationRequired):
			c.JSON(http.StatusForbidden, gin.H{
				"error":                 "verification required",
				"verification_required": true,
			})
		case err.Error() == "post not found" || err.Error() == "user not found":
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case err.Error() == "parent comment not found":
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to create comment: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		}
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ListComments godoc
// @Summary      List comments on a post
// @Description  Oldest first
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        post_id path string true "Post ID"
// @Param        page query int false "Page number (default 1)"
// @Param        limit query int false "Items per page (default 20, max 100)"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /posts/{post_id}/comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	postID := c.Param("post_id")
	params := pagination.Parse(c.Query("page"), c.Query("limit"))

	comments, err := h.commentUseCase.ListComments(postID, params.Limit, params.Offset())
	if err != nil {
		if err.Error() == "post not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to list comments: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    comments,
		"hasMore": params.HasMore(len(comments)),
		"page":    params.Page,
		"limit":   params.Limit,
	})
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Only the comment author can delete it
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        comment_id path string true "Comment ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /comments/{comment_id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID := c.Param("comment_id")
	userID := c.GetString("user_id")

	if err := h.commentUseCase.DeleteComment(userID, commentID); err != nil {
		if errors.Is(err, usecase.ErrNotCommentOwner) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not comment owner"})
			return
		}
		if err.Error() == "comment not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to delete comment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
