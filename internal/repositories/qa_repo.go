package repositories

import (
	"github.com/botdesk/botdesk-backend/internal/models"
	"gorm.io/gorm"
)

type QARepo interface {
	Create(entry *models.QAEntry) error
	Update(entry *models.QAEntry) error
	Delete(id string) error
	GetByID(id string) (*models.QAEntry, error)
	ListByChatbot(chatbotID string) ([]models.QAEntry, error)
	ListDisplayedByChatbot(chatbotID string) ([]models.QAEntry, error)
}

type qaRepo struct {
	db *gorm.DB
}

func NewQARepo(db *gorm.DB) QARepo {
	return &qaRepo{db: db}
}

func (r *qaRepo) Create(entry *models.QAEntry) error {
	return r.db.Create(entry).Error
}

func (r *qaRepo) Update(entry *models.QAEntry) error {
	return r.db.Save(entry).Error
}

func (r *qaRepo) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.QAEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *qaRepo) GetByID(id string) (*models.QAEntry, error) {
	var entry models.QAEntry
	if err := r.db.Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *qaRepo) ListByChatbot(chatbotID string) ([]models.QAEntry, error) {
	var entries []models.QAEntry
	err := r.db.Where("chatbot_id = ?", chatbotID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *qaRepo) ListDisplayedByChatbot(chatbotID string) ([]models.QAEntry, error) {
	var entries []models.QAEntry
	err := r.db.Where("chatbot_id = ? AND is_display = ?", chatbotID, true).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}
