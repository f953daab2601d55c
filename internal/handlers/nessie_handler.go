package handlers

import (
	"net/http"

	"hera_backend/internal/services"
	"hera_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// NessieHandler serves the banking sandbox routes and the holdings profile
// built on top of them.
type NessieHandler struct {
	*BaseHandler
	bankingService services.BankingService
	profileService services.ProfileService
}

func NewNessieHandler(base *BaseHandler, bankingService services.BankingService, profileService services.ProfileService) *NessieHandler {
	return &NessieHandler{
		BaseHandler:    base,
		bankingService: bankingService,
		profileService: profileService,
	}
}

func (h *NessieHandler) RegisterRoutes(r *gin.RouterGroup) {
	nessie := r.Group("/nessie")
	{
		nessie.POST("/setup-demo", h.SetupDemo)
		nessie.POST("/login", h.Login)
		nessie.GET("/customers", h.ListCustomers)
		nessie.GET("/customers/:id/accounts", h.ListAccounts)
		nessie.GET("/accounts/:id/purchases", h.ListPurchases)
		nessie.POST("/accounts/:id", h.CreateAccount)
		nessie.GET("/profile/:id", h.GetProfile)
		nessie.POST("/profile/:id/analyze-all", h.AnalyzeAll)

		// older client paths
		nessie.GET("/accounts/:id", h.ListAccounts)
		nessie.GET("/purchases/:id", h.ListPurchases)
	}
}

// SetupDemo godoc
// @Summary Recreate the demo customer with seeded purchases
// @Tags nessie
// @Produce json
// @Success 200 {object} dto.SetupDemoResponse
// @Router /nessie/setup-demo [post]
func (h *NessieHandler) SetupDemo(c *gin.Context) {
	resp, err := h.bankingService.SetupDemo(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Login godoc
// @Summary Find or create a customer by name
// @Tags nessie
// @Accept json
// @Produce json
// @Param request body dto.NessieLoginRequest true "Customer name"
// @Success 200 {object} dto.NessieLoginResponse
// @Router /nessie/login [post]
func (h *NessieHandler) Login(c *gin.Context) {
	var req dto.NessieLoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.bankingService.Login(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NessieHandler) ListCustomers(c *gin.Context) {
	customers, err := h.bankingService.ListCustomers(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *NessieHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.bankingService.ListAccounts(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (h *NessieHandler) ListPurchases(c *gin.Context) {
	purchases, err := h.bankingService.ListPurchases(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, purchases)
}

// CreateAccount accepts an empty body, in which case every field takes
// its default.
func (h *NessieHandler) CreateAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if c.Request.ContentLength != 0 && !h.BindAndValidate_JSON(c, &req) {
		return
	}

	account, err := h.bankingService.CreateAccount(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// GetProfile godoc
// @Summary Holdings profile built from a customer's purchases
// @Tags nessie
// @Produce json
// @Param id path string true "Customer id"
// @Success 200 {object} dto.ProfileResponse
// @Router /nessie/profile/{id} [get]
func (h *NessieHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.BuildProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// AnalyzeAll godoc
// @Summary Trigger analysis for every unanalyzed holding
// @Tags nessie
// @Produce json
// @Param id path string true "Customer id"
// @Success 200 {object} dto.AnalyzeAllResponse
// @Router /nessie/profile/{id}/analyze-all [post]
func (h *NessieHandler) AnalyzeAll(c *gin.Context) {
	resp, err := h.profileService.AnalyzeAll(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
