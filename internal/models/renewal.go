package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Renewal records one subscription extension. IdempotencyKey is unique so a
// duplicate submit replays the original record instead of double-charging.
type Renewal struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Months         int        `gorm:"not null" json:"months"`
	Amount         float64    `gorm:"not null" json:"amount"`
	OldEndDate     *time.Time `json:"old_end_date"`
	NewEndDate     time.Time  `gorm:"not null" json:"new_end_date"`
	IdempotencyKey string     `gorm:"type:text;not null;uniqueIndex" json:"idempotency_key"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name
func (Renewal) TableName() string {
	return "renewals"
}

// BeforeCreate sets UUID before creating
func (r *Renewal) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
