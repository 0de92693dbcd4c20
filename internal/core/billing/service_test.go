package billing

import (
	"testing"
	"time"

	"github.com/botdesk/botdesk-backend/internal/core/auth"
	"github.com/botdesk/botdesk-backend/internal/models"
	"github.com/botdesk/botdesk-backend/internal/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeRenewalRepo struct {
	byKey map[string]*models.Renewal
}

func newFakeRenewalRepo() *fakeRenewalRepo {
	return &fakeRenewalRepo{byKey: make(map[string]*models.Renewal)}
}

func (f *fakeRenewalRepo) Create(r *models.Renewal) error {
	if _, ok := f.byKey[r.IdempotencyKey]; ok {
		return repositories.ErrDuplicateKey
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	f.byKey[r.IdempotencyKey] = r
	return nil
}

func (f *fakeRenewalRepo) GetByKey(key string) (*models.Renewal, error) {
	if r, ok := f.byKey[key]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRenewalRepo) GetByID(id string) (*models.Renewal, error) {
	for _, r := range f.byKey {
		if r.ID.String() == id {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRenewalRepo) ListByUser(userID string) ([]models.Renewal, error) {
	var out []models.Renewal
	for _, r := range f.byKey {
		if r.UserID.String() == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeUserStore struct {
	user *auth.User
}

func (f *fakeUserStore) GetUserByID(id string) (*auth.User, error) {
	if f.user != nil && f.user.ID.String() == id {
		return f.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) UpdateSubscription(userID string, status string, endDate time.Time) error {
	f.user.SubscriptionStatus = status
	f.user.SubscriptionEndDate = &endDate
	return nil
}

func TestAmount(t *testing.T) {
	for months, want := range map[int]float64{1: 79, 3: 237, 12: 948} {
		got, err := Amount(months)
		if err != nil {
			t.Fatalf("Amount(%d) returned error: %v", months, err)
		}
		if got != want {
			t.Errorf("Amount(%d) = %v, want %v", months, got, want)
		}
	}
}

func TestAmountRejectsNonPositiveDuration(t *testing.T) {
	for _, months := range []int{0, -1, -12} {
		if _, err := Amount(months); err == nil {
			t.Errorf("Amount(%d) expected error, got nil", months)
		}
	}
}

func TestRenewExtendsFromFutureEndDate(t *testing.T) {
	end := time.Now().AddDate(0, 2, 0)
	user := &auth.User{
		ID:                  uuid.New(),
		SubscriptionStatus:  auth.SubscriptionActiveStatus,
		SubscriptionEndDate: &end,
	}
	users := &fakeUserStore{user: user}
	svc := NewService(newFakeRenewalRepo(), users)

	res, err := svc.Renew(&RenewRequest{
		UserID:         user.ID.String(),
		Duration:       3,
		Amount:         237,
		IdempotencyKey: "key-1",
	})
	if err != nil {
		t.Fatalf("Renew returned error: %v", err)
	}
	if res.Replayed {
		t.Fatal("fresh renewal reported as replayed")
	}

	wantEnd := end.AddDate(0, 3, 0)
	if !res.Renewal.NewEndDate.Equal(wantEnd) {
		t.Errorf("NewEndDate = %v, want %v", res.Renewal.NewEndDate, wantEnd)
	}
	if user.SubscriptionEndDate == nil || !user.SubscriptionEndDate.Equal(wantEnd) {
		t.Errorf("user end date not updated: %v", user.SubscriptionEndDate)
	}
}

func TestRenewExtendsFromNowWhenLapsed(t *testing.T) {
	end := time.Now().AddDate(0, -1, 0)
	user := &auth.User{
		ID:                  uuid.New(),
		SubscriptionStatus:  auth.SubscriptionExpiredStatus,
		SubscriptionEndDate: &end,
	}
	users := &fakeUserStore{user: user}
	svc := NewService(newFakeRenewalRepo(), users)

	before := time.Now()
	res, err := svc.Renew(&RenewRequest{
		UserID:         user.ID.String(),
		Duration:       1,
		IdempotencyKey: "key-2",
	})
	if err != nil {
		t.Fatalf("Renew returned error: %v", err)
	}

	minEnd := before.AddDate(0, 1, 0)
	if res.Renewal.NewEndDate.Before(minEnd) {
		t.Errorf("NewEndDate %v is before now+1mo %v", res.Renewal.NewEndDate, minEnd)
	}
	if user.SubscriptionStatus != auth.SubscriptionActiveStatus {
		t.Errorf("status = %q, want active", user.SubscriptionStatus)
	}
}

func TestRenewIdempotencyReplay(t *testing.T) {
	end := time.Now().AddDate(0, 1, 0)
	user := &auth.User{
		ID:                  uuid.New(),
		SubscriptionStatus:  auth.SubscriptionActiveStatus,
		SubscriptionEndDate: &end,
	}
	svc := NewService(newFakeRenewalRepo(), &fakeUserStore{user: user})

	req := &RenewRequest{
		UserID:         user.ID.String(),
		Duration:       6,
		IdempotencyKey: "dup-key",
	}

	first, err := svc.Renew(req)
	if err != nil {
		t.Fatalf("first Renew returned error: %v", err)
	}
	second, err := svc.Renew(req)
	if err != nil {
		t.Fatalf("second Renew returned error: %v", err)
	}
	if !second.Replayed {
		t.Error("duplicate submit not reported as replayed")
	}
	if second.Renewal.ID != first.Renewal.ID {
		t.Errorf("replay returned a different renewal: %s vs %s", second.Renewal.ID, first.Renewal.ID)
	}
	if !second.Renewal.NewEndDate.Equal(first.Renewal.NewEndDate) {
		t.Error("replay changed the end date")
	}
}

// racingRenewalRepo simulates losing the insert race: the key is free at the
// pre-check, but by the time Create runs a rival request has claimed it.
type racingRenewalRepo struct {
	*fakeRenewalRepo
	rival *models.Renewal
}

func (f *racingRenewalRepo) Create(r *models.Renewal) error {
	if _, ok := f.byKey[r.IdempotencyKey]; !ok {
		f.byKey[r.IdempotencyKey] = f.rival
	}
	return repositories.ErrDuplicateKey
}

func TestRenewLostInsertRaceReplays(t *testing.T) {
	end := time.Now().AddDate(0, 1, 0)
	user := &auth.User{
		ID:                  uuid.New(),
		SubscriptionStatus:  auth.SubscriptionActiveStatus,
		SubscriptionEndDate: &end,
	}
	rival := &models.Renewal{
		ID:             uuid.New(),
		UserID:         user.ID,
		Months:         6,
		IdempotencyKey: "race-key",
	}
	repo := &racingRenewalRepo{fakeRenewalRepo: newFakeRenewalRepo(), rival: rival}
	svc := NewService(repo, &fakeUserStore{user: user})

	result, err := svc.Renew(&RenewRequest{
		UserID:         user.ID.String(),
		Duration:       6,
		IdempotencyKey: "race-key",
	})
	if err != nil {
		t.Fatalf("losing the insert race should replay, got error: %v", err)
	}
	if !result.Replayed {
		t.Error("lost race not reported as replayed")
	}
	if result.Renewal.ID != rival.ID {
		t.Errorf("replay should hand back the winner's record, got %s", result.Renewal.ID)
	}
}

func TestRenewRejectsAmountMismatch(t *testing.T) {
	end := time.Now().AddDate(0, 1, 0)
	user := &auth.User{ID: uuid.New(), SubscriptionEndDate: &end}
	svc := NewService(newFakeRenewalRepo(), &fakeUserStore{user: user})

	_, err := svc.Renew(&RenewRequest{
		UserID:         user.ID.String(),
		Duration:       2,
		Amount:         100, // should be 158
		IdempotencyKey: "key-3",
	})
	if err == nil {
		t.Fatal("expected amount mismatch error, got nil")
	}
}

func TestRenewRejectsZeroDuration(t *testing.T) {
	svc := NewService(newFakeRenewalRepo(), &fakeUserStore{})
	_, err := svc.Renew(&RenewRequest{
		UserID:         uuid.New().String(),
		Duration:       0,
		IdempotencyKey: "key-4",
	})
	if err == nil {
		t.Fatal("expected duration error, got nil")
	}
}
