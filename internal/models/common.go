package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel gives a row a uuid primary key and timestamps. The id is set in
// Go so that every supported driver behaves the same.
type BaseModel struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id" bson:"_id"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at" bson:"created_at"`
}

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	return nil
}
