package dto

import "hera_backend/internal/algorithms"

type NessieLoginRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

type NessieLoginResponse struct {
	Customer any  `json:"customer"`
	Created  bool `json:"created"`
}

type CreateAccountRequest struct {
	Type     string   `json:"type"`
	Nickname string   `json:"nickname"`
	Balance  *float64 `json:"balance"`
}

type SetupDemoResponse struct {
	CustomerID       string `json:"customerId"`
	AccountID        string `json:"accountId"`
	MerchantsCreated int    `json:"merchants_created"`
	PurchasesCreated int    `json:"purchases_created"`
}

type ProfileCustomer struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type ProfileAccount struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Nickname string  `json:"nickname"`
	Balance  float64 `json:"balance"`
	Rewards  float64 `json:"rewards"`
}

// ProfileResponse is a customer's spend turned into ranked holdings.
type ProfileResponse struct {
	Customer            ProfileCustomer      `json:"customer"`
	TotalInvested       float64              `json:"total_invested"`
	Accounts            []ProfileAccount     `json:"accounts"`
	Holdings            []algorithms.Holding `json:"holdings"`
	TotalPurchases      int                  `json:"total_purchases"`
	UnresolvedMerchants []string             `json:"unresolved_merchants"`
}

type AnalyzeAllResponse struct {
	Triggered       []string `json:"triggered"`
	AlreadyAnalyzed []string `json:"already_analyzed"`
	TotalTickers    int      `json:"total_tickers"`
}

type LinkTokenResponse struct {
	LinkToken *string `json:"linkToken"`
	Error     string  `json:"error,omitempty"`
}

type ExchangeTokenRequest struct {
	PublicToken string `json:"public_token" validate:"required"`
}

type ExchangeTokenResponse struct {
	Success bool   `json:"success"`
	ItemID  string `json:"itemId"`
}
