package auth

import "time"

// SubscriptionActive reports whether a subscription grants dashboard access
// at the given instant. An absent end date or any status other than the
// active marker gates the account.
func SubscriptionActive(status string, endDate *time.Time, now time.Time) bool {
	if status != SubscriptionActiveStatus {
		return false
	}
	if endDate == nil {
		return false
	}
	return endDate.After(now)
}
