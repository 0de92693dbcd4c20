package services

import (
	"time"

	"github.com/botdesk/botdesk-backend/internal/shared/utils"
	"github.com/robfig/cron/v3"
)

// SubscriptionExpirer marks every lapsed active subscription as expired and
// reports how many rows changed.
type SubscriptionExpirer interface {
	ExpireLapsedSubscriptions(now time.Time) (int64, error)
}

// SubscriptionSweeper flips subscriptions whose end date has passed to the
// expired status. The middleware gate already rejects lapsed accounts on each
// request; the sweeper keeps the stored status consistent for the admin
// listing.
type SubscriptionSweeper struct {
	expirer SubscriptionExpirer
	cron    *cron.Cron
}

func NewSubscriptionSweeper(expirer SubscriptionExpirer) *SubscriptionSweeper {
	return &SubscriptionSweeper{
		expirer: expirer,
		cron:    cron.New(),
	}
}

// Start runs one sweep immediately, then schedules a daily pass shortly after
// midnight.
func (s *SubscriptionSweeper) Start() error {
	s.Sweep()

	if _, err := s.cron.AddFunc("5 0 * * *", s.Sweep); err != nil {
		return err
	}
	s.cron.Start()
	utils.LogInfo("subscription sweeper started", map[string]interface{}{
		"schedule": "daily 00:05",
	})
	return nil
}

func (s *SubscriptionSweeper) Stop() {
	s.cron.Stop()
}

func (s *SubscriptionSweeper) Sweep() {
	expired, err := s.expirer.ExpireLapsedSubscriptions(time.Now())
	if err != nil {
		utils.LogError("subscription sweep failed", err, nil)
		return
	}
	if expired > 0 {
		utils.LogInfo("subscriptions expired", map[string]interface{}{
			"count": expired,
		})
	}
}
