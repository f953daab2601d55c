package models

// UserAction is a public community feed entry.
type UserAction struct {
	BaseModel `bson:",inline"`
	UserName      string `gorm:"size:255;not null" json:"user_name"`
	ActionType    string `gorm:"size:64;not null" json:"action_type"`
	CompanyTicker string `gorm:"size:16;not null;index" json:"company_ticker"`
}
