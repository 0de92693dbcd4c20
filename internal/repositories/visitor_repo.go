package repositories

import (
	"time"

	"github.com/botdesk/botdesk-backend/internal/models"
	"gorm.io/gorm"
)

// VisitorQuery narrows the paginated issue listing.
type VisitorQuery struct {
	Page     int
	Limit    int
	Search   string
	FromDate *time.Time
}

type VisitorRepo interface {
	Create(visitor *models.Visitor) error
	List(chatbotID string, q VisitorQuery) ([]models.Visitor, int64, error)
	ListAll(chatbotID string) ([]models.Visitor, error)
	UpdateStatus(chatbotID, visitorID string, solved bool) error
}

type visitorRepo struct {
	db *gorm.DB
}

func NewVisitorRepo(db *gorm.DB) VisitorRepo {
	return &visitorRepo{db: db}
}

func (r *visitorRepo) Create(visitor *models.Visitor) error {
	return r.db.Create(visitor).Error
}

func (r *visitorRepo) List(chatbotID string, q VisitorQuery) ([]models.Visitor, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 10
	}

	query := r.db.Model(&models.Visitor{}).Where("chatbot_id = ?", chatbotID)
	if q.Search != "" {
		like := "%" + q.Search + "%"
		query = query.Where("name ILIKE ? OR mobile ILIKE ? OR problem ILIKE ?", like, like, like)
	}
	if q.FromDate != nil {
		query = query.Where("created_at >= ?", q.FromDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var visitors []models.Visitor
	err := query.Order("created_at DESC").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&visitors).Error
	return visitors, total, err
}

func (r *visitorRepo) ListAll(chatbotID string) ([]models.Visitor, error) {
	var visitors []models.Visitor
	err := r.db.Where("chatbot_id = ?", chatbotID).
		Order("created_at DESC").
		Find(&visitors).Error
	return visitors, err
}

func (r *visitorRepo) UpdateStatus(chatbotID, visitorID string, solved bool) error {
	result := r.db.Model(&models.Visitor{}).
		Where("id = ? AND chatbot_id = ?", visitorID, chatbotID).
		Update("solved", solved)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
