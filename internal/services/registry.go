package services

// ServiceContainer holds every service the HTTP layer depends on.
type ServiceContainer struct {
	CompanyService      CompanyService
	PortfolioService    PortfolioService
	BankingService      BankingService
	ProfileService      ProfileService
	PlaidService        PlaidService
	VerificationService VerificationService
	ReviewService       ReviewService
	CommunityService    CommunityService
	ResolveService      ResolveService
}
