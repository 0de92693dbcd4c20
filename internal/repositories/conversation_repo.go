package repositories

import (
	"github.com/botdesk/botdesk-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConversationRepo interface {
	Log(chatbotID uuid.UUID, source, message, reply string, fallback bool) error
	ListByChatbot(chatbotID string, limit int) ([]models.Conversation, error)
}

type conversationRepo struct {
	db *gorm.DB
}

func NewConversationRepo(db *gorm.DB) ConversationRepo {
	return &conversationRepo{db: db}
}

func (r *conversationRepo) Log(chatbotID uuid.UUID, source, message, reply string, fallback bool) error {
	conversation := models.Conversation{
		ChatbotID:   chatbotID,
		Source:      source,
		MessageText: message,
		ReplyText:   reply,
		Fallback:    fallback,
	}
	return r.db.Create(&conversation).Error
}

func (r *conversationRepo) ListByChatbot(chatbotID string, limit int) ([]models.Conversation, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	var conversations []models.Conversation
	err := r.db.Where("chatbot_id = ?", chatbotID).
		Order("created_at DESC").
		Limit(limit).
		Find(&conversations).Error
	return conversations, err
}
