package handlers

import (
	"net/http"

	"hera_backend/internal/auth"
	"hera_backend/internal/middleware"
	"hera_backend/internal/services"
	"hera_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	verificationService services.VerificationService
	reviewService       services.ReviewService
	tokens              *auth.TokenManager
}

func NewReviewHandler(
	base *BaseHandler,
	verificationService services.VerificationService,
	reviewService services.ReviewService,
	tokens *auth.TokenManager,
) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:         base,
		verificationService: verificationService,
		reviewService:       reviewService,
		tokens:              tokens,
	}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	reviews := r.Group("/reviews")
	{
		reviews.POST("/auth/request-verification", h.RequestVerification)
		reviews.POST("/auth/verify", h.Verify)
		reviews.POST("/auth/login-demo", h.LoginDemo)
		reviews.GET("/company/:ticker/aggregate", h.Aggregate)
		reviews.GET("/company-domains", h.CompanyDomains)
	}

	protected := reviews.Group("")
	protected.Use(middleware.AuthMiddleware(h.tokens))
	{
		protected.POST("/submit", h.Submit)
	}
}

// --- Verification ---

// RequestVerification godoc
// @Summary Email a one-time code to a work address
// @Tags reviews
// @Accept json
// @Produce json
// @Param request body dto.RequestVerificationRequest true "Work email"
// @Success 200 {object} dto.RequestVerificationResponse
// @Failure 404 {object} apperrors.ErrorResponse "Unknown email domain"
// @Failure 429 {object} apperrors.ErrorResponse "Too many codes"
// @Router /reviews/auth/request-verification [post]
func (h *ReviewHandler) RequestVerification(c *gin.Context) {
	var req dto.RequestVerificationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.verificationService.RequestVerification(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Verify godoc
// @Summary Exchange a code for a reviewer token
// @Tags reviews
// @Accept json
// @Produce json
// @Param request body dto.VerifyRequest true "Code"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /reviews/auth/verify [post]
func (h *ReviewHandler) Verify(c *gin.Context) {
	var req dto.VerifyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.verificationService.Verify(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LoginDemo godoc
// @Summary Issue a reviewer token without email verification
// @Tags reviews
// @Accept json
// @Produce json
// @Param request body dto.DemoLoginRequest true "Company"
// @Success 200 {object} dto.AuthResponse
// @Failure 403 {object} apperrors.ErrorResponse "Demo mode disabled"
// @Router /reviews/auth/login-demo [post]
func (h *ReviewHandler) LoginDemo(c *gin.Context) {
	var req dto.DemoLoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.verificationService.LoginDemo(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) CompanyDomains(c *gin.Context) {
	companies, err := h.verificationService.ListCompanyDomains(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

// --- Reviews ---

// Submit godoc
// @Summary Submit an anonymous review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitReviewRequest true "Review"
// @Success 200 {object} dto.SubmitReviewResponse
// @Failure 403 {object} apperrors.ErrorResponse "Not verified for this company"
// @Failure 429 {object} apperrors.ErrorResponse "Cooldown"
// @Router /reviews/submit [post]
func (h *ReviewHandler) Submit(c *gin.Context) {
	userID, verifiedFor, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.reviewService.Submit(c.Request.Context(), userID, verifiedFor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Aggregate godoc
// @Summary Recency-weighted review aggregate
// @Tags reviews
// @Produce json
// @Param ticker path string true "Ticker symbol"
// @Success 200 {object} dto.ReviewAggregateResponse
// @Router /reviews/company/{ticker}/aggregate [get]
func (h *ReviewHandler) Aggregate(c *gin.Context) {
	c.JSON(http.StatusOK, h.reviewService.Aggregate(c.Request.Context(), c.Param("ticker")))
}
