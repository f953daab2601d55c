package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ReviewData holds the questionnaire answers of one review.
type ReviewData struct {
	WitnessedIssues WitnessedIssues   `json:"witnessed_issues" bson:"witnessed_issues"`
	IssueTypes      []IssueType       `json:"issue_types,omitempty" bson:"issue_types,omitempty"`
	Timeframe       Timeframe         `json:"timeframe" bson:"timeframe"`
	Reported        Reported          `json:"reported" bson:"reported"`
	ReportedTo      []string          `json:"reported_to,omitempty" bson:"reported_to,omitempty"`
	CompanyResponse []CompanyResponse `json:"company_response,omitempty" bson:"company_response,omitempty"`
	WouldRecommend  Recommendation    `json:"would_recommend" bson:"would_recommend"`
	OptionalComment string            `json:"optional_comment,omitempty" bson:"optional_comment,omitempty"`
}

// Value stores ReviewData as a JSON column.
func (d ReviewData) Value() (driver.Value, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *ReviewData) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = ReviewData{}
		return nil
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("unsupported review data type %T", value)
	}
}

func (ReviewData) GormDataType() string {
	return "json"
}

// EmployeeReview is immutable once created.
type EmployeeReview struct {
	ID            string     `gorm:"primaryKey;size:36" json:"review_id" bson:"_id"`
	UserID        string     `gorm:"size:36;not null;index:idx_review_user_company" json:"-" bson:"user_id"`
	CompanyTicker string     `gorm:"size:16;not null;index:idx_review_user_company;index" json:"company_ticker" bson:"company_ticker"`
	ReviewData    ReviewData `gorm:"not null" json:"review_data" bson:"review_data"`
	Published     bool       `gorm:"not null;index" json:"published" bson:"published"`
	Weight        float64    `gorm:"not null" json:"weight" bson:"weight"`
	FlaggedCount  int        `gorm:"not null;default:0" json:"flagged_count" bson:"flagged_count"`
	HelpfulCount  int        `gorm:"not null;default:0" json:"helpful_count" bson:"helpful_count"`
	CreatedAt     time.Time  `gorm:"not null;index" json:"created_at" bson:"created_at"`
}
