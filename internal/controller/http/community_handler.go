package http

import (
	"errors"
	"net/http"

	"openlove/internal/usecase"
	"openlove/pkg/logger"
	"openlove/pkg/pagination"

	"github.com/gin-gonic/gin"
)

type CommunityHandler struct {
	communityUseCase usecase.CommunityUseCase
	logger           *logger.Logger
}

func NewCommunityHandler(communityUseCase usecase.CommunityUseCase, logger *logger.Logger) *CommunityHandler {
	return &CommunityHandler{
		communityUseCase: communityUseCase,
		logger:           logger,
	}
}

type createCommunityRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=80"`
	Description string `json:"description"`
	IsPrivate   bool   `json:"is_private"`
}

// CreateCommunity godoc
// @Summary      Create a community
// @Description  Premium feature; the plan caps how many communities a user can own
// @Tags         communities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body createCommunityRequest true "Community definition"
// @Success      201  {object}  models.Community
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /communities [post]
func (h *CommunityHandler) CreateCommunity(c *gin.Context) {
	userID := c.GetString("user_id")

	var req createCommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	community, err := h.communityUseCase.CreateCommunity(userID, req.Name, req.Description, req.IsPrivate)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPlanRequired):
			c.JSON(http.StatusForbidden, gin.H{"error": "plan_required"})
		case errors.Is(err, usecase.ErrCommunityLimit):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to create community: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create community"})
		}
		return
	}

	c.JSON(http.StatusCreated, community)
}

// GetCommunity godoc
// @Summary      Get a community
// @Tags         communities
// @Accept       json
// @Produce      json
// @Param        community_id path string true "Community ID"
// @Success      200  {object}  models.Community
// @Failure      404  {object}  map[string]string
// @Router       /communities/{community_id} [get]
func (h *CommunityHandler) GetCommunity(c *gin.Context) {
	community, err := h.communityUseCase.GetCommunity(c.Param("community_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "community not found"})
		return
	}

	c.JSON(http.StatusOK, community)
}

// ListCommunities godoc
// @Summary      List communities
// @Tags         communities
// @Accept       json
// @Produce      json
// @Param        page query int false "Page number (default 1)"
// @Param        limit query int false "Items per page (default 20, max 100)"
// @Success      200  {object}  map[string]interface{}
// @Router       /communities [get]
func (h *CommunityHandler) ListCommunities(c *gin.Context) {
	params := pagination.Parse(c.Query("page"), c.Query("limit"))

	communities, hasMore, err := h.communityUseCase.ListCommunities(params)
	if err != nil {
		h.logger.Error("Failed to list communities: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch communities"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    communities,
		"hasMore": hasMore,
		"page":    params.Page,
		"limit":   params.Limit,
	})
}

// JoinCommunity godoc
// @Summary      Join a community
// @Tags         communities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        community_id path string true "Community ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /communities/{community_id}/join [post]
func (h *CommunityHandler) JoinCommunity(c *gin.Context) {
	userID := c.GetString("user_id")
	communityID := c.Param("community_id")

	if err := h.communityUseCase.JoinCommunity(userID, communityID); err != nil {
		switch {
		case errors.Is(err, usecase.ErrCommunityNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrAlreadyMember):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to join community: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join community"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Joined community"})
}

// LeaveCommunity godoc
// @Summary      Leave a community
// @Tags         communities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        community_id path string true "Community ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /communities/{community_id}/leave [post]
func (h *CommunityHandler) LeaveCommunity(c *gin.Context) {
	userID := c.GetString("user_id")
	communityID := c.Param("community_id")

	if err := h.communityUseCase.LeaveCommunity(userID, communityID); err != nil {
		switch {
		case errors.Is(err, usecase.ErrCommunityNotFound), errors.Is(err, usecase.ErrNotMember):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrOwnerCannotLeave):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to leave community: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave community"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left community"})
}

type updateCommunityRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=3,max=80"`
	Description *string `json:"description"`
	IsPrivate   *bool   `json:"is_private"`
}

// UpdateCommunity godoc
// @Summary      Update a community
// @Description  Owner only; unset fields are left untouched
// @Tags         communities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        community_id path string true "Community ID"
// @Param        request body updateCommunityRequest true "Fields to update"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /communities/{community_id} [patch]
func (h *CommunityHandler) UpdateCommunity(c *gin.Context) {
	userID := c.GetString("user_id")
	communityID := c.Param("community_id")

	var req updateCommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IsPrivate != nil {
		updates["is_private"] = *req.IsPrivate
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	if err := h.communityUseCase.UpdateCommunity(userID, communityID, updates); err != nil {
		switch {
		case errors.Is(err, usecase.ErrCommunityNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrNotCommunityOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to update community: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update community"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Community updated"})
}

// DeleteCommunity godoc
// @Summary      Delete a community
// @Description  Owner only; removes the community and all memberships
// @Tags         communities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        community_id path string true "Community ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /communities/{community_id} [delete]
func (h *CommunityHandler) DeleteCommunity(c *gin.Context) {
	userID := c.GetString("user_id")
	communityID := c.Param("community_id")

	if err := h.communityUseCase.DeleteCommunity(userID, communityID); err != nil {
		switch {
		case errors.Is(err, usecase.ErrCommunityNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrNotCommunityOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to delete community: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete community"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Community deleted"})
}
