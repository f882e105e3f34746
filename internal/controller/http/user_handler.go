package http

import (
	"errors"
	"net/http"

	"openlove/internal/usecase"
	"openlove/pkg/logger"
	"openlove/pkg/pagination"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      *logger.Logger
}

func NewUserHandler(userUseCase usecase.UserUseCase, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

type updateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatar_url"`
}

// GetProfile godoc
// @Summary      Get a user profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        username path string true "Username"
// @Success      200  {object}  usecase.Profile
// @Failure      404  {object}  map[string]string
// @Router       /users/{username} [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	viewerID := c.GetString("user_id")
	username := c.Param("username")

	profile, err := h.userUseCase.GetProfile(viewerID, username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile godoc
// @Summary      Update the own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body updateProfileRequest true "Fields to update"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /users/me [patch]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := make(map[string]interface{})
	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}

	if err := h.userUseCase.UpdateProfile(userID, updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// Follow godoc
// @Summary      Follow a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "Username to follow"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{username}/follow [post]
func (h *UserHandler) Follow(c *gin.Context) {
	followerID := c.GetString("user_id")
	username := c.Param("username")

	if err := h.userUseCase.Follow(followerID, username); err != nil {
		switch {
		case errors.Is(err, usecase.ErrSelfFollow):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case err.Error() == "user not found":
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to follow user: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Following"})
}

// Unfollow godoc
// @Summary      Unfollow a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "Username to unfollow"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{username}/follow [delete]
func (h *UserHandler) Unfollow(c *gin.Context) {
	followerID := c.GetString("user_id")
	username := c.Param("username")

	if err := h.userUseCase.Unfollow(followerID, username); err != nil {
		if err.Error() == "user not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to unfollow user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed"})
}

// UploadAvatar godoc
// @Summary      Upload a profile avatar
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar formData file true "Avatar image"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /users/me/avatar [post]
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID := c.GetString("user_id")

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}

	url, err := h.userUseCase.UploadAvatar(userID, fileHeader)
	if err != nil {
		h.logger.Error("Failed to upload avatar: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload avatar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}

// ListFollowers godoc
// @Summary      List a user's followers
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        username path string true "Username"
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /users/{username}/followers [get]
func (h *UserHandler) ListFollowers(c *gin.Context) {
	username := c.Param("username")
	params := pagination.Parse(c.Query("page"), c.Query("limit"))

	profiles, err := h.userUseCase.ListFollowers(username, params.Limit, params.Offset())
	if err != nil {
		if err.Error() == "user not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to list followers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list followers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    profiles,
		"hasMore": params.HasMore(len(profiles)),
		"page":    params.Page,
		"limit":   params.Limit,
	})
}

// ListFollowing godoc
// @Summary      List who a user follows
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        username path string true "Username"
// @Param        page query int false "Page number"
// @Param        limit query int false "Page size"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /users/{username}/following [get]
func (h *UserHandler) ListFollowing(c *gin.Context) {
	username := c.Param("username")
	params := pagination.Parse(c.Query("page"), c.Query("limit"))

	profiles, err := h.userUseCase.ListFollowing(username, params.Limit, params.Offset())
	if err != nil {
		if err.Error() == "user not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to list following: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list following"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    profiles,
		"hasMore": params.HasMore(len(profiles)),
		"page":    params.Page,
		"limit":   params.Limit,
	})
}
