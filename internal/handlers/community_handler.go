package handlers

import (
	"net/http"

	"hera_backend/internal/services"
	"hera_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CommunityHandler struct {
	*BaseHandler
	communityService services.CommunityService
}

func NewCommunityHandler(base *BaseHandler, communityService services.CommunityService) *CommunityHandler {
	return &CommunityHandler{
		BaseHandler:      base,
		communityService: communityService,
	}
}

func (h *CommunityHandler) RegisterRoutes(r *gin.RouterGroup) {
	community := r.Group("/community")
	{
		community.POST("/action", h.RecordAction)
		community.GET("/activity", h.RecentActivity)
	}
}

func (h *CommunityHandler) RecordAction(c *gin.Context) {
	var req dto.CommunityActionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.communityService.RecordAction(c.Request.Context(), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

func (h *CommunityHandler) RecentActivity(c *gin.Context) {
	activity, err := h.communityService.RecentActivity(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, activity)
}
