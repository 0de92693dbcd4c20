package billing

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/botdesk/botdesk-backend/internal/core/auth"
	"github.com/botdesk/botdesk-backend/internal/models"
	"github.com/botdesk/botdesk-backend/internal/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MonthlyPrice is the flat per-month subscription price.
const MonthlyPrice = 79.0

// SubscriptionStore is the slice of the auth repository billing needs.
type SubscriptionStore interface {
	GetUserByID(id string) (*auth.User, error)
	UpdateSubscription(userID string, status string, endDate time.Time) error
}

// RenewRequest carries a renewal submission. Amount is what the client
// displayed; the server recomputes and rejects a mismatch. IdempotencyKey is
// client-generated so a duplicate click replays instead of double-charging.
type RenewRequest struct {
	UserID         string  `json:"user_id"`
	Duration       int     `json:"duration"` // months
	Amount         float64 `json:"amount"`
	EndDate        string  `json:"end_date,omitempty"` // client's view, informational
	IdempotencyKey string  `json:"idempotency_key"`
}

// RenewResult is returned for both fresh and replayed renewals.
type RenewResult struct {
	Renewal  *models.Renewal `json:"renewal"`
	Replayed bool            `json:"replayed"`
}

type Service struct {
	renewals repositories.RenewalRepo
	users    SubscriptionStore
}

// NewService creates a new billing service
func NewService(renewals repositories.RenewalRepo, users SubscriptionStore) *Service {
	return &Service{
		renewals: renewals,
		users:    users,
	}
}

// Amount computes the renewal price for a duration in months.
func Amount(months int) (float64, error) {
	if months <= 0 {
		return 0, fmt.Errorf("duration must be a positive number of months")
	}
	return float64(months) * MonthlyPrice, nil
}

// Renew extends a user's subscription. The new end date extends from the
// current end date when that is still in the future, otherwise from now.
func (s *Service) Renew(req *RenewRequest) (*RenewResult, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	if req.IdempotencyKey == "" {
		return nil, fmt.Errorf("idempotency_key is required")
	}

	expected, err := Amount(req.Duration)
	if err != nil {
		return nil, err
	}
	if req.Amount != 0 && math.Abs(req.Amount-expected) > 0.01 {
		return nil, fmt.Errorf("amount mismatch: expected %.2f for %d month(s)", expected, req.Duration)
	}

	// Replay: same key returns the original record untouched.
	if existing, err := s.renewals.GetByKey(req.IdempotencyKey); err == nil {
		log.Printf("🔁 Renewal replayed for key %s", req.IdempotencyKey)
		return &RenewResult{Renewal: existing, Replayed: true}, nil
	} else if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to check idempotency key: %w", err)
	}

	user, err := s.users.GetUserByID(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	now := time.Now()
	base := now
	if user.SubscriptionEndDate != nil && user.SubscriptionEndDate.After(now) {
		base = *user.SubscriptionEndDate
	}
	newEnd := base.AddDate(0, req.Duration, 0)

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user_id: %w", err)
	}

	renewal := &models.Renewal{
		UserID:         userID,
		Months:         req.Duration,
		Amount:         expected,
		OldEndDate:     user.SubscriptionEndDate,
		NewEndDate:     newEnd,
		IdempotencyKey: req.IdempotencyKey,
	}

	if err := s.renewals.Create(renewal); err != nil {
		if err == repositories.ErrDuplicateKey {
			// Lost a race with the duplicate submit; hand back the winner.
			if existing, getErr := s.renewals.GetByKey(req.IdempotencyKey); getErr == nil {
				return &RenewResult{Renewal: existing, Replayed: true}, nil
			}
		}
		return nil, fmt.Errorf("failed to record renewal: %w", err)
	}

	if err := s.users.UpdateSubscription(req.UserID, auth.SubscriptionActiveStatus, newEnd); err != nil {
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	log.Printf("💳 Subscription renewed: user=%s months=%d amount=%.2f until=%s",
		req.UserID, req.Duration, expected, newEnd.Format("2006-01-02"))

	return &RenewResult{Renewal: renewal}, nil
}

// GetRenewal fetches one renewal record (for the invoice endpoint).
func (s *Service) GetRenewal(id string) (*models.Renewal, error) {
	return s.renewals.GetByID(id)
}

// History lists a user's renewals, newest first.
func (s *Service) History(userID string) ([]models.Renewal, error) {
	return s.renewals.ListByUser(userID)
}
