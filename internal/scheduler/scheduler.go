package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/oriain86/Trading-Platform-Application/internal/services"
)

// Scheduler runs periodic jobs. Currently one: keeping trade prices in the
// coins table tracking the market provider.
type Scheduler struct {
	cron        *cron.Cron
	coinService services.CoinService
	pages       int
}

func New(coinService services.CoinService, pages int) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		coinService: coinService,
		pages:       pages,
	}
}

// Start registers the price refresh on the given cron schedule and launches
// the cron loop. The schedule accepts both cron expressions and @every
// shorthand.
func (s *Scheduler) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, s.refreshCoins)
	if err != nil {
		return err
	}
	s.cron.Start()
	logrus.WithField("schedule", schedule).Info("price refresh scheduled")
	return nil
}

func (s *Scheduler) refreshCoins() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	start := time.Now()
	if err := s.coinService.RefreshCoins(ctx, s.pages); err != nil {
		logrus.WithError(err).Warn("price refresh failed")
		return
	}
	logrus.WithField("duration_ms", time.Since(start).Milliseconds()).Info("price refresh completed")
}

// Stop halts the cron loop and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
