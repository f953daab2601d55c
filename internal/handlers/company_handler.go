package handlers

import (
	"net/http"

	"hera_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	*BaseHandler
	companyService services.CompanyService
}

func NewCompanyHandler(base *BaseHandler, companyService services.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		BaseHandler:    base,
		companyService: companyService,
	}
}

// RegisterRoutes mounts the full router under /companies.
func (h *CompanyHandler) RegisterRoutes(r *gin.RouterGroup) {
	companies := r.Group("/companies")
	{
		companies.GET("/:ticker", h.GetCompany)
		companies.GET("/:ticker/alternatives", h.GetAlternatives)
	}
	h.RegisterAnalyzeRoutes(companies)
}

// RegisterAnalyzeRoutes mounts the trigger and polling endpoints, which
// are also served directly under /api.
func (h *CompanyHandler) RegisterAnalyzeRoutes(r *gin.RouterGroup) {
	r.POST("/analyze/:ticker", h.TriggerAnalysis)
	r.GET("/analyze/:ticker/status", h.GetAnalysisStatus)
}

// GetCompany godoc
// @Summary Latest accountability analysis
// @Tags companies
// @Produce json
// @Param ticker path string true "Ticker symbol"
// @Success 200 {object} dto.CompanyAnalysisResponse
// @Failure 404 {object} apperrors.ErrorResponse "Not analyzed"
// @Router /companies/{ticker} [get]
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	resp, err := h.companyService.GetCompany(c.Request.Context(), c.Param("ticker"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TriggerAnalysis godoc
// @Summary Start an analysis job
// @Tags companies
// @Produce json
// @Param ticker path string true "Ticker symbol"
// @Success 200 {object} dto.AnalyzeResponse
// @Router /analyze/{ticker} [post]
func (h *CompanyHandler) TriggerAnalysis(c *gin.Context) {
	resp, err := h.companyService.TriggerAnalysis(c.Request.Context(), c.Param("ticker"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetAnalysisStatus godoc
// @Summary Poll an analysis job
// @Tags companies
// @Produce json
// @Param ticker path string true "Ticker symbol"
// @Success 200 {object} dto.AnalysisStatusResponse
// @Router /analyze/{ticker}/status [get]
func (h *CompanyHandler) GetAnalysisStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.companyService.GetAnalysisStatus(c.Request.Context(), c.Param("ticker")))
}

// GetAlternatives godoc
// @Summary Better-scoring peers in the same industry
// @Tags companies
// @Produce json
// @Param ticker path string true "Ticker symbol"
// @Success 200 {array} repositories.AlternativeCompany
// @Router /companies/{ticker}/alternatives [get]
func (h *CompanyHandler) GetAlternatives(c *gin.Context) {
	c.JSON(http.StatusOK, h.companyService.GetAlternatives(c.Request.Context(), c.Param("ticker")))
}
