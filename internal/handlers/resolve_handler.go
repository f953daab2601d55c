package handlers

import (
	"net/http"

	"hera_backend/internal/services"
	"hera_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ResolveHandler struct {
	*BaseHandler
	resolveService services.ResolveService
}

func NewResolveHandler(base *BaseHandler, resolveService services.ResolveService) *ResolveHandler {
	return &ResolveHandler{
		BaseHandler:    base,
		resolveService: resolveService,
	}
}

func (h *ResolveHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/resolve", h.Resolve)
}

// Resolve godoc
// @Summary Resolve company or merchant names to tickers
// @Description At most 20 inputs are processed.
// @Tags resolve
// @Accept json
// @Produce json
// @Param request body dto.ResolveRequest true "Names"
// @Success 200 {array} dto.ResolveResult
// @Failure 500 {object} apperrors.ErrorResponse "Resolution failed"
// @Router /resolve [post]
func (h *ResolveHandler) Resolve(c *gin.Context) {
	var req dto.ResolveRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	results, err := h.resolveService.Resolve(c.Request.Context(), req.Inputs)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}
