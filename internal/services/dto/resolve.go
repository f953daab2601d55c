package dto

type ResolveRequest struct {
	Inputs []string `json:"inputs" validate:"required,min=1"`
}

type ResolveResult struct {
	Input       string  `json:"input"`
	Ticker      *string `json:"ticker"`
	CompanyName *string `json:"company_name"`
}
