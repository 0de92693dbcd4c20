package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
)

// Subscription status markers
const (
	SubscriptionActiveStatus  = "active"
	SubscriptionExpiredStatus = "expired"
)

// User is an account that can sign in to the dashboard: a tenant admin or
// the super admin operating the user registry.
type User struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name  string    `gorm:"type:text;not null" json:"name"`
	Email string    `gorm:"type:text;not null;unique" json:"email"`
	Role  string    `gorm:"type:text;not null;default:'admin'" json:"role"`

	PasswordHash string `gorm:"type:text;not null" json:"-"`

	SubscriptionStatus  string     `gorm:"type:text;default:'active'" json:"subscription_status"`
	SubscriptionEndDate *time.Time `json:"subscription_end_date"`

	IsActive bool `gorm:"type:boolean;default:true" json:"is_active"`

	RefreshToken          string     `gorm:"type:text" json:"-"`
	RefreshTokenExpiresAt *time.Time `json:"-"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// BeforeCreate sets UUID before creating
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// LoginRequest represents login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterRequest represents registration payload (super admin only)
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role,omitempty"`
	// Trial length granted on registration; zero means no end date change
	SubscriptionMonths int `json:"subscription_months,omitempty"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"` // seconds
	User         *UserInfo `json:"user"`
}

// UserInfo is the user block returned with every auth response. Dashboard
// clients persist the subscription fields for the expiry gate.
type UserInfo struct {
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	Name                string     `json:"name"`
	Role                string     `json:"role"`
	SubscriptionStatus  string     `json:"subscription_status"`
	SubscriptionEndDate *time.Time `json:"subscription_end_date"`
}

// ToUserInfo projects a stored user onto the public shape.
func ToUserInfo(user *User) UserInfo {
	return UserInfo{
		ID:                  user.ID.String(),
		Email:               user.Email,
		Name:                user.Name,
		Role:                user.Role,
		SubscriptionStatus:  user.SubscriptionStatus,
		SubscriptionEndDate: user.SubscriptionEndDate,
	}
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
