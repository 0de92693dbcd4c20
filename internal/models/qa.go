package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// QAEntry is a single question/answer pair in a chatbot's knowledge list.
// Only entries with IsDisplay set appear in the public widget.
type QAEntry struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ChatbotID uuid.UUID      `gorm:"type:uuid;not null;index" json:"chatbot_id"`
	Question  string         `gorm:"type:text;not null" json:"question"`
	Answer    string         `gorm:"type:text;not null" json:"answer"`
	Keywords  pq.StringArray `gorm:"type:text[]" json:"keywords"`
	IsDisplay bool           `gorm:"default:true" json:"is_display"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	Chatbot Chatbot `gorm:"foreignKey:ChatbotID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name
func (QAEntry) TableName() string {
	return "qa_entries"
}

// BeforeCreate sets UUID before creating
func (q *QAEntry) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// FaqEntry is the read-only projection served to the widget.
type FaqEntry struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Keywords []string `json:"keywords"`
}
