package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Visitor is a lead captured by the widget's contact form. Solved is the
// only field the admin table mutates.
type Visitor struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ChatbotID uuid.UUID `gorm:"type:uuid;not null;index" json:"chatbot_id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Email     string    `gorm:"type:text" json:"email"`
	Mobile    string    `gorm:"type:text" json:"mobile"`
	Problem   string    `gorm:"type:text" json:"problem"`
	Solved    bool      `gorm:"default:false" json:"solved"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"date"`

	Chatbot Chatbot `gorm:"foreignKey:ChatbotID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name
func (Visitor) TableName() string {
	return "visitors"
}

// BeforeCreate sets UUID before creating
func (v *Visitor) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
