package dto

import "time"

type CommunityActionRequest struct {
	UserName      string `json:"user_name" validate:"required"`
	ActionType    string `json:"action_type" validate:"required"`
	CompanyTicker string `json:"company_ticker" validate:"required"`
}

type CommunityActivityResponse struct {
	ID            string    `json:"id"`
	UserName      string    `json:"user_name"`
	ActionType    string    `json:"action_type"`
	CompanyTicker string    `json:"company_ticker"`
	CreatedAt     time.Time `json:"created_at"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
