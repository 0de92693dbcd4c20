package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Chatbot is a tenant's configured assistant. The slug routes both the
// public chat page and the per-tenant public endpoints.
type Chatbot struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Slug           string         `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	CompanyName    string         `gorm:"type:text;not null" json:"company_name"`
	LogoURL        string         `gorm:"type:text" json:"logo_url"`
	Description    string         `gorm:"type:text" json:"description"`
	WelcomeMessage string         `gorm:"type:text" json:"welcome_message"`
	SocialLinks    datatypes.JSON `gorm:"type:jsonb" json:"social_links"`
	// Token expected in the X-Widget-Token header on public chat routes
	WidgetToken string    `gorm:"type:text;not null;uniqueIndex" json:"widget_token"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Chatbot) TableName() string {
	return "chatbots"
}

// BeforeCreate sets UUID and widget token before creating
func (b *Chatbot) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.WidgetToken == "" {
		b.WidgetToken = uuid.New().String()
	}
	return nil
}
