package session

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSetGetRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if err := store.Set(KeyToken, "jwt-abc"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, err := store.Get(KeyToken)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != "jwt-abc" {
		t.Fatalf("got %q, want %q", got, "jwt-abc")
	}
}

func TestGetMissingKeyReturnsEmpty(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Get(KeyChatbotSlug)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty value, got %q", got)
	}
}

func TestSetReplacesValue(t *testing.T) {
	store := newTestStore(t)

	store.Set(KeyUserRole, "admin")
	store.Set(KeyUserRole, "super_admin")

	got, _ := store.Get(KeyUserRole)
	if got != "super_admin" {
		t.Fatalf("got %q, want super_admin", got)
	}
}

func TestSnapshotAndClear(t *testing.T) {
	store := newTestStore(t)

	store.Set(KeyToken, "jwt")
	store.Set(KeyUserRole, "admin")
	store.Set(KeySubscriptionStatus, "active")
	store.Set(KeyChatbotSlug, "acme")

	snap, err := store.Snapshot()
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if snap.Token != "jwt" || snap.UserRole != "admin" || snap.ChatbotSlug != "acme" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	snap, err = store.Snapshot()
	if err != nil {
		t.Fatalf("snapshot after clear failed: %v", err)
	}
	if snap.Token != "" || snap.UserRole != "" {
		t.Fatalf("expected empty session after clear, got %+v", snap)
	}
}

func TestSubscriptionExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour).Format(time.RFC3339)
	past := now.Add(-24 * time.Hour).Format(time.RFC3339)

	tests := []struct {
		name    string
		snap    Snapshot
		expired bool
	}{
		{"active with future end", Snapshot{SubscriptionStatus: "active", SubscriptionEndDate: future}, false},
		{"active with past end", Snapshot{SubscriptionStatus: "active", SubscriptionEndDate: past}, true},
		{"active with no end date", Snapshot{SubscriptionStatus: "active"}, true},
		{"expired status with future end", Snapshot{SubscriptionStatus: "expired", SubscriptionEndDate: future}, true},
		{"garbage end date", Snapshot{SubscriptionStatus: "active", SubscriptionEndDate: "not-a-date"}, true},
		{"empty session", Snapshot{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snap.SubscriptionExpired(now); got != tt.expired {
				t.Fatalf("SubscriptionExpired = %v, want %v", got, tt.expired)
			}
		})
	}
}
