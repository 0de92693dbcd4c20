package repositories

import (
	"errors"

	"github.com/botdesk/botdesk-backend/internal/models"
	"gorm.io/gorm"
)

// ErrDuplicateKey is returned when an idempotency key was already recorded.
var ErrDuplicateKey = errors.New("idempotency key already used")

type RenewalRepo interface {
	Create(renewal *models.Renewal) error
	GetByKey(idempotencyKey string) (*models.Renewal, error)
	GetByID(id string) (*models.Renewal, error)
	ListByUser(userID string) ([]models.Renewal, error)
}

type renewalRepo struct {
	db *gorm.DB
}

func NewRenewalRepo(db *gorm.DB) RenewalRepo {
	return &renewalRepo{db: db}
}

func (r *renewalRepo) Create(renewal *models.Renewal) error {
	err := r.db.Create(renewal).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	return err
}

func (r *renewalRepo) GetByKey(idempotencyKey string) (*models.Renewal, error) {
	var renewal models.Renewal
	err := r.db.Where("idempotency_key = ?", idempotencyKey).First(&renewal).Error
	if err != nil {
		return nil, err
	}
	return &renewal, nil
}

func (r *renewalRepo) GetByID(id string) (*models.Renewal, error) {
	var renewal models.Renewal
	err := r.db.Where("id = ?", id).First(&renewal).Error
	if err != nil {
		return nil, err
	}
	return &renewal, nil
}

func (r *renewalRepo) ListByUser(userID string) ([]models.Renewal, error) {
	var renewals []models.Renewal
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&renewals).Error
	return renewals, err
}
