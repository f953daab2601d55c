package config

// DefaultCompanyDomains seeds the employer lookup used by email
// verification when the config file lists none.
var DefaultCompanyDomains = []CompanyDomainSeed{
	{Ticker: "AAPL", CompanyName: "Apple Inc.", Domains: []string{"apple.com"}},
	{Ticker: "MSFT", CompanyName: "Microsoft Corporation", Domains: []string{"microsoft.com"}},
	{Ticker: "GOOGL", CompanyName: "Alphabet Inc.", Domains: []string{"google.com", "alphabet.com"}},
	{Ticker: "AMZN", CompanyName: "Amazon.com Inc.", Domains: []string{"amazon.com"}},
	{Ticker: "META", CompanyName: "Meta Platforms Inc.", Domains: []string{"meta.com", "fb.com"}},
	{Ticker: "TSLA", CompanyName: "Tesla Inc.", Domains: []string{"tesla.com"}},
	{Ticker: "NVDA", CompanyName: "NVIDIA Corporation", Domains: []string{"nvidia.com"}},
	{Ticker: "UBER", CompanyName: "Uber Technologies Inc.", Domains: []string{"uber.com"}},
	{Ticker: "CRM", CompanyName: "Salesforce Inc.", Domains: []string{"salesforce.com"}},
	{Ticker: "ADBE", CompanyName: "Adobe Inc.", Domains: []string{"adobe.com"}},
	{Ticker: "NFLX", CompanyName: "Netflix Inc.", Domains: []string{"netflix.com"}},
	{Ticker: "ATVI", CompanyName: "Activision Blizzard", Domains: []string{"activision.com", "blizzard.com"}},
}
