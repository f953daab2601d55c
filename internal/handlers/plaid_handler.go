package handlers

import (
	"net/http"

	"hera_backend/internal/services"
	"hera_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PlaidHandler struct {
	*BaseHandler
	plaidService services.PlaidService
}

func NewPlaidHandler(base *BaseHandler, plaidService services.PlaidService) *PlaidHandler {
	return &PlaidHandler{
		BaseHandler:  base,
		plaidService: plaidService,
	}
}

func (h *PlaidHandler) RegisterRoutes(r *gin.RouterGroup) {
	plaid := r.Group("/plaid")
	{
		plaid.GET("/link-token", h.LinkToken)
		plaid.POST("/exchange-token", h.ExchangeToken)
	}
}

// LinkToken godoc
// @Summary Create a Plaid Link token
// @Description linkToken is null when Plaid is not configured.
// @Tags plaid
// @Produce json
// @Success 200 {object} dto.LinkTokenResponse
// @Router /plaid/link-token [get]
func (h *PlaidHandler) LinkToken(c *gin.Context) {
	resp, err := h.plaidService.LinkToken(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExchangeToken godoc
// @Summary Exchange a Plaid public token
// @Tags plaid
// @Accept json
// @Produce json
// @Param request body dto.ExchangeTokenRequest true "Public token"
// @Success 200 {object} dto.ExchangeTokenResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /plaid/exchange-token [post]
func (h *PlaidHandler) ExchangeToken(c *gin.Context) {
	var req dto.ExchangeTokenRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.plaidService.ExchangeToken(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
