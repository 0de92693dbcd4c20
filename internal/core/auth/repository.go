package auth

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new auth repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user
func (r *Repository) CreateUser(user *User) error {
	return r.db.Create(user).Error
}

// GetUserByEmail retrieves user by email
func (r *Repository) GetUserByEmail(email string) (*User, error) {
	var user User
	err := r.db.Where("email = ? AND is_active = ?", email, true).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID retrieves user by ID
func (r *Repository) GetUserByID(id string) (*User, error) {
	var user User
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByRefreshToken retrieves user by refresh token
func (r *Repository) GetUserByRefreshToken(refreshToken string) (*User, error) {
	var user User
	err := r.db.Where("refresh_token = ? AND is_active = ?", refreshToken, true).First(&user).Error
	if err != nil {
		return nil, err
	}

	if user.RefreshTokenExpiresAt != nil && user.RefreshTokenExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("refresh token expired")
	}

	return &user, nil
}

// ListUsers returns every registered user, newest first (super admin view)
func (r *Repository) ListUsers() ([]User, error) {
	var users []User
	err := r.db.Order("created_at DESC").Find(&users).Error
	return users, err
}

// DeleteUser removes a user; chatbots and their data cascade in the schema
func (r *Repository) DeleteUser(id string) error {
	result := r.db.Where("id = ?", id).Delete(&User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateRefreshToken updates user's refresh token
func (r *Repository) UpdateRefreshToken(userID string, refreshToken string, expiresAt time.Time) error {
	return r.db.Model(&User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"refresh_token":            refreshToken,
			"refresh_token_expires_at": expiresAt,
		}).Error
}

// UpdateLastLogin updates user's last login timestamp
func (r *Repository) UpdateLastLogin(userID string) error {
	now := time.Now()
	return r.db.Model(&User{}).
		Where("id = ?", userID).
		Update("last_login_at", now).Error
}

// RevokeRefreshToken revokes (clears) user's refresh token
func (r *Repository) RevokeRefreshToken(userID string) error {
	return r.db.Model(&User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"refresh_token":            nil,
			"refresh_token_expires_at": nil,
		}).Error
}

// EmailExists checks if email already exists
func (r *Repository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateSubscription writes a new subscription status and end date
func (r *Repository) UpdateSubscription(userID string, status string, endDate time.Time) error {
	return r.db.Model(&User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"subscription_status":   status,
			"subscription_end_date": endDate,
		}).Error
}

// ExpireLapsedSubscriptions flips every past-due active subscription to
// expired and returns how many rows changed.
func (r *Repository) ExpireLapsedSubscriptions(now time.Time) (int64, error) {
	result := r.db.Model(&User{}).
		Where("subscription_status = ?", SubscriptionActiveStatus).
		Where("subscription_end_date IS NOT NULL AND subscription_end_date < ?", now).
		Update("subscription_status", SubscriptionExpiredStatus)
	return result.RowsAffected, result.Error
}
