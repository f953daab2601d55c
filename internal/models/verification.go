package models

import "time"

// VerificationCode is a one-time email code. It is deleted when used or
// when the sweeper finds it expired. Email is kept only for the code's
// lifetime.
type VerificationCode struct {
	BaseModel `bson:",inline"`
	Code          string    `gorm:"size:6;not null;uniqueIndex" bson:"code"`
	Email         string    `gorm:"size:320;not null" bson:"email"`
	CompanyTicker string    `gorm:"size:16;not null" bson:"company_ticker"`
	ExpiresAt     time.Time `gorm:"not null;index" bson:"expires_at"`
}

func (c *VerificationCode) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// VerificationIssuance records that a code was sent to an email hash. It
// backs the rolling per-email limit and outlives the code itself.
type VerificationIssuance struct {
	BaseModel `bson:",inline"`
	EmailHash string `gorm:"size:64;not null;index" bson:"email_hash"`
}

// VerifiedUser never stores the email, only its salted hash.
type VerifiedUser struct {
	UserID                string    `gorm:"primaryKey;size:36" bson:"_id"`
	EmailHash             string    `gorm:"size:64;not null;uniqueIndex" bson:"email_hash"`
	VerifiedCompanyTicker string    `gorm:"size:16;not null;index" bson:"verified_company_ticker"`
	VerificationDate      time.Time `gorm:"not null" bson:"verification_date"`
	CreatedAt             time.Time `gorm:"not null" bson:"created_at"`
}

// CompanyEmailDomain maps one email domain to an employer.
type CompanyEmailDomain struct {
	Domain      string `gorm:"primaryKey;size:255"`
	Ticker      string `gorm:"size:16;not null;index"`
	CompanyName string `gorm:"size:255;not null"`
}

// EmployerCompany is what a domain lookup resolves to.
type EmployerCompany struct {
	Ticker      string `json:"ticker" bson:"ticker"`
	CompanyName string `json:"company_name" bson:"company_name"`
}
