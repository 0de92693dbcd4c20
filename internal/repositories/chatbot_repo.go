package repositories

import (
	"github.com/botdesk/botdesk-backend/internal/models"
	"gorm.io/gorm"
)

type ChatbotRepo interface {
	Create(bot *models.Chatbot) error
	Update(bot *models.Chatbot) error
	GetByID(id string) (*models.Chatbot, error)
	GetBySlug(slug string) (*models.Chatbot, error)
	ListByUser(userID string) ([]models.Chatbot, error)
	SlugExists(slug string) (bool, error)
}

type chatbotRepo struct {
	db *gorm.DB
}

func NewChatbotRepo(db *gorm.DB) ChatbotRepo {
	return &chatbotRepo{db: db}
}

func (r *chatbotRepo) Create(bot *models.Chatbot) error {
	return r.db.Create(bot).Error
}

func (r *chatbotRepo) Update(bot *models.Chatbot) error {
	return r.db.Save(bot).Error
}

func (r *chatbotRepo) GetByID(id string) (*models.Chatbot, error) {
	var bot models.Chatbot
	if err := r.db.Where("id = ?", id).First(&bot).Error; err != nil {
		return nil, err
	}
	return &bot, nil
}

func (r *chatbotRepo) GetBySlug(slug string) (*models.Chatbot, error) {
	var bot models.Chatbot
	if err := r.db.Where("slug = ?", slug).First(&bot).Error; err != nil {
		return nil, err
	}
	return &bot, nil
}

func (r *chatbotRepo) ListByUser(userID string) ([]models.Chatbot, error) {
	var bots []models.Chatbot
	err := r.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&bots).Error
	return bots, err
}

func (r *chatbotRepo) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Chatbot{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}
