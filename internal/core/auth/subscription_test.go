package auth

import (
	"testing"
	"time"
)

func TestSubscriptionActive(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 1, 0)
	past := now.AddDate(0, -1, 0)

	tests := []struct {
		name    string
		status  string
		endDate *time.Time
		want    bool
	}{
		{"active with future end date", SubscriptionActiveStatus, &future, true},
		{"active with past end date", SubscriptionActiveStatus, &past, false},
		{"active with no end date", SubscriptionActiveStatus, nil, false},
		{"expired status with future end date", SubscriptionExpiredStatus, &future, false},
		{"unknown status", "trial", &future, false},
		{"expired and past", SubscriptionExpiredStatus, &past, false},
	}

	for _, tt := range tests {
		if got := SubscriptionActive(tt.status, tt.endDate, now); got != tt.want {
			t.Errorf("%s: SubscriptionActive() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
