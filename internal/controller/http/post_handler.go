package http

import (
	"errors"
	"mime/multipart"
	"net/http"

	"openlove/internal/usecase"
	"openlove/pkg/logger"
	"openlove/pkg/models"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Create a post with optional media files (multipart form)
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        content formData string false "Post text"
// @Param        visibility formData string false "public, friends or private (default public)"
// @Param        is_premium formData bool false "Restrict to premium viewers"
// @Param        media formData file false "Media files"
// @Success      201  {object}  models.Post
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	content := c.PostForm("content")
	visibility := models.PostVisibility(c.DefaultPostForm("visibility", string(models.VisibilityPublic)))
	isPremium := c.PostForm("is_premium") == "true"

	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files = form.File["media"]
	}

	post, err := h.postUseCase.CreatePost(userID, content, visibility, isPremium, files)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPlanRequired):
			c.JSON(http.StatusForbidden, gin.H{"error": "plan_required"})
		case err.Error() == "post needs content or media" || err.Error() == "invalid visibility":
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case err.Error() == "account is disabled":
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to create post: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		}
		return
	}

	c.JSON(http.StatusCreated, post)
}

// GetPost godoc
// @Summary      Get a post
// @Description  Fetch a single post, honoring visibility and premium gating
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        post_id path string true "Post ID"
// @Success      200  {object}  models.Post
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{post_id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	postID := c.Param("post_id")
	viewerID := c.GetString("user_id")

	post, err := h.postUseCase.GetPost(postID, viewerID)
	if err != nil {
		if errors.Is(err, usecase.ErrPlanRequired) {
			c.JSON(http.StatusForbidden, gin.H{"error": "plan_required"})
			return
		}
		if err.Error() == "post not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to get post: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Delete a post owned by the authenticated user
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        post_id path string true "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{post_id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID := c.Param("post_id")
	userID := c.GetString("user_id")

	if err := h.postUseCase.DeletePost(postID, userID); err != nil {
		if errors.Is(err, usecase.ErrNotPostOwner) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not post owner"})
			return
		}
		if err.Error() == "post not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to delete post: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
