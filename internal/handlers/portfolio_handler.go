package handlers

import (
	"net/http"

	"hera_backend/internal/services"
	"hera_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PortfolioHandler struct {
	*BaseHandler
	portfolioService services.PortfolioService
}

func NewPortfolioHandler(base *BaseHandler, portfolioService services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		BaseHandler:      base,
		portfolioService: portfolioService,
	}
}

func (h *PortfolioHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/portfolio/scan", h.Scan)
}

// Scan godoc
// @Summary Classify a list of tickers
// @Tags portfolio
// @Accept json
// @Produce json
// @Param request body dto.ScanRequest true "Tickers"
// @Success 200 {object} algorithms.ScanResult
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /portfolio/scan [post]
func (h *PortfolioHandler) Scan(c *gin.Context) {
	var req dto.ScanRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.portfolioService.Scan(c.Request.Context(), req.Tickers)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
