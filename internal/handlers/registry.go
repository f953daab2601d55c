package handlers

// AppHandlers holds every HTTP handler of the API.
type AppHandlers struct {
	HealthHandler    *HealthHandler
	CompanyHandler   *CompanyHandler
	PortfolioHandler *PortfolioHandler
	NessieHandler    *NessieHandler
	PlaidHandler     *PlaidHandler
	ReviewHandler    *ReviewHandler
	CommunityHandler *CommunityHandler
	ResolveHandler   *ResolveHandler
}
