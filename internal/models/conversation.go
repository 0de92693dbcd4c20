package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation sources
const (
	SourceFaqClick = "faq_click"
	SourceFreeText = "free_text"
)

// Conversation logs one widget exchange for a chatbot.
type Conversation struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ChatbotID   uuid.UUID `gorm:"type:uuid;not null;index" json:"chatbot_id"`
	Source      string    `gorm:"type:text;default:'free_text'" json:"source"`
	MessageText string    `gorm:"type:text" json:"message_text"`
	ReplyText   string    `gorm:"type:text" json:"reply_text"`
	Fallback    bool      `gorm:"default:false" json:"fallback"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Chatbot Chatbot `gorm:"foreignKey:ChatbotID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name
func (Conversation) TableName() string {
	return "conversations"
}

// BeforeCreate sets UUID before creating
func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
