package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/botdesk/botdesk-backend/internal/core/auth"
	"github.com/botdesk/botdesk-backend/internal/core/billing"
	"github.com/botdesk/botdesk-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubRenewalRepo struct {
	created []*models.Renewal
}

func (r *stubRenewalRepo) Create(renewal *models.Renewal) error {
	r.created = append(r.created, renewal)
	return nil
}

func (r *stubRenewalRepo) GetByKey(key string) (*models.Renewal, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRenewalRepo) GetByID(id string) (*models.Renewal, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRenewalRepo) ListByUser(userID string) ([]models.Renewal, error) { return nil, nil }

type stubUserStore struct {
	users map[string]*auth.User
}

func (s *stubUserStore) GetUserByID(id string) (*auth.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserStore) UpdateSubscription(userID string, status string, endDate time.Time) error {
	return nil
}

func newRenewTestApp(callerID uuid.UUID, role string, users ...*auth.User) (*fiber.App, *stubRenewalRepo) {
	store := &stubUserStore{users: map[string]*auth.User{}}
	for _, u := range users {
		store.users[u.ID.String()] = u
	}
	renewals := &stubRenewalRepo{}
	h := NewAdminHandler(nil, billing.NewService(renewals, store))

	app := fiber.New()
	app.Post("/auth/admin/renew", func(c *fiber.Ctx) error {
		c.Locals("userID", callerID.String())
		c.Locals("role", role)
		return c.Next()
	}, h.Renew)
	return app, renewals
}

func activeUser(role string) *auth.User {
	end := time.Now().AddDate(0, 1, 0)
	return &auth.User{
		ID:                  uuid.New(),
		Role:                role,
		SubscriptionStatus:  auth.SubscriptionActiveStatus,
		SubscriptionEndDate: &end,
	}
}

func postRenew(t *testing.T, app *fiber.App, body string) int {
	t.Helper()
	req := httptest.NewRequest("POST", "/auth/admin/renew", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp.StatusCode
}

func TestRenewAdminAlwaysRenewsSelf(t *testing.T) {
	caller := activeUser(auth.RoleAdmin)
	other := activeUser(auth.RoleAdmin)
	app, renewals := newRenewTestApp(caller.ID, auth.RoleAdmin, caller, other)

	body := `{"user_id":"` + other.ID.String() + `","duration":3,"idempotency_key":"k1"}`
	if status := postRenew(t, app, body); status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if len(renewals.created) != 1 {
		t.Fatalf("expected one renewal, got %d", len(renewals.created))
	}
	if got := renewals.created[0].UserID; got != caller.ID {
		t.Fatalf("admin must renew their own account, renewed %s", got)
	}
}

func TestRenewSuperAdminCanTargetAnotherUser(t *testing.T) {
	caller := activeUser(auth.RoleSuperAdmin)
	target := activeUser(auth.RoleAdmin)
	app, renewals := newRenewTestApp(caller.ID, auth.RoleSuperAdmin, caller, target)

	body := `{"user_id":"` + target.ID.String() + `","duration":6,"idempotency_key":"k2"}`
	if status := postRenew(t, app, body); status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if len(renewals.created) != 1 {
		t.Fatalf("expected one renewal, got %d", len(renewals.created))
	}
	if got := renewals.created[0].UserID; got != target.ID {
		t.Fatalf("super admin should renew the target, renewed %s", got)
	}
	if renewals.created[0].Months != 6 {
		t.Fatalf("months = %d, want 6", renewals.created[0].Months)
	}
}

func TestRenewSuperAdminDefaultsToSelf(t *testing.T) {
	caller := activeUser(auth.RoleSuperAdmin)
	app, renewals := newRenewTestApp(caller.ID, auth.RoleSuperAdmin, caller)

	if status := postRenew(t, app, `{"duration":1,"idempotency_key":"k3"}`); status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if len(renewals.created) != 1 || renewals.created[0].UserID != caller.ID {
		t.Fatalf("super admin with no target should renew themselves, got %+v", renewals.created)
	}
}

func TestRenewReturnsResult(t *testing.T) {
	caller := activeUser(auth.RoleAdmin)
	app, _ := newRenewTestApp(caller.ID, auth.RoleAdmin, caller)

	req := httptest.NewRequest("POST", "/auth/admin/renew",
		strings.NewReader(`{"duration":2,"idempotency_key":"k4"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var result billing.RenewResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if result.Replayed {
		t.Fatal("fresh renewal must not be marked replayed")
	}
	if result.Renewal == nil || result.Renewal.Months != 2 {
		t.Fatalf("unexpected renewal: %+v", result.Renewal)
	}
}
