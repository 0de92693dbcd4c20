package auth

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

type Service struct {
	repo       *Repository
	jwtService *JWTService
}

// NewService creates a new auth service
func NewService(db *gorm.DB, jwtSecret string) *Service {
	return &Service{
		repo:       NewRepository(db),
		jwtService: NewJWTService(jwtSecret),
	}
}

// Repo exposes the underlying repository for the admin registry handlers.
func (s *Service) Repo() *Repository {
	return s.repo
}

// Register creates a new tenant-admin account (super admin only)
func (s *Service) Register(req *RegisterRequest) (*AuthResponse, error) {
	exists, err := s.repo.EmailExists(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("email already registered")
	}

	passwordHash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = RoleAdmin
	}

	user := &User{
		Email:              req.Email,
		Name:               req.Name,
		Role:               role,
		PasswordHash:       passwordHash,
		SubscriptionStatus: SubscriptionActiveStatus,
		IsActive:           true,
	}
	if req.SubscriptionMonths > 0 {
		end := time.Now().AddDate(0, req.SubscriptionMonths, 0)
		user.SubscriptionEndDate = &end
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("✅ User registered: %s (%s)", user.Email, user.ID.String())

	return s.generateAuthResponse(user)
}

// Login authenticates user with email and password
func (s *Service) Login(req *LoginRequest) (*AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(req.Email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("invalid email or password")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := VerifyPassword(user.PasswordHash, req.Password); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	_ = s.repo.UpdateLastLogin(user.ID.String())

	log.Printf("✅ User logged in: %s (%s)", user.Email, user.ID.String())

	return s.generateAuthResponse(user)
}

// RefreshToken generates new access token from refresh token
func (s *Service) RefreshToken(refreshToken string) (*AuthResponse, error) {
	userID, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	user, err := s.repo.GetUserByRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("refresh token not found or expired")
	}

	if user.ID.String() != userID {
		return nil, fmt.Errorf("refresh token user mismatch")
	}

	return s.generateAuthResponse(user)
}

// Logout revokes user's refresh token
func (s *Service) Logout(userID string) error {
	if err := s.repo.RevokeRefreshToken(userID); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	log.Printf("✅ User logged out: %s", userID)
	return nil
}

// ValidateToken validates an access token and returns user info
func (s *Service) ValidateToken(accessToken string) (*TokenClaims, error) {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, fmt.Errorf("invalid access token: %w", err)
	}
	return claims, nil
}

// generateAuthResponse generates auth response with tokens and user info
func (s *Service) generateAuthResponse(user *User) (*AuthResponse, error) {
	claims := &TokenClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   user.Role,
	}

	accessToken, expiresIn, err := s.jwtService.GenerateAccessToken(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, expiresAt, err := s.jwtService.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.repo.UpdateRefreshToken(user.ID.String(), refreshToken, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	info := ToUserInfo(user)
	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		User:         &info,
	}, nil
}
