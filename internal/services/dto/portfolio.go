package dto

type ScanRequest struct {
	Tickers []string `json:"tickers" validate:"required,min=1"`
}
