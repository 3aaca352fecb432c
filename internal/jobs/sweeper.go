package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"rental/internal/service"
)

// Sweeper runs the periodic booking hygiene jobs: marking no-shows for
// confirmed bookings past their pickup deadline and cancelling unpaid
// pending bookings.
type Sweeper struct {
	bookingService *service.BookingService
	pendingTimeout time.Duration
	log            *logrus.Logger
	cron           *cron.Cron
}

// NewSweeper creates a new Sweeper.
func NewSweeper(bookingService *service.BookingService, pendingTimeout time.Duration, log *logrus.Logger) *Sweeper {
	return &Sweeper{
		bookingService: bookingService,
		pendingTimeout: pendingTimeout,
		log:            log,
		cron:           cron.New(),
	}
}

// Start registers the jobs and starts the scheduler.
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc("@every 5m", s.sweepNoShows); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@every 5m", s.sweepExpiredPending); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Sweeper) sweepNoShows() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	count, err := s.bookingService.SweepNoShows(ctx, time.Now())
	if err != nil {
		s.log.WithError(err).Error("no-show sweep failed")
		return
	}
	if count > 0 {
		s.log.WithField("count", count).Info("marked bookings as no-show")
	}
}

func (s *Sweeper) sweepExpiredPending() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	count, err := s.bookingService.SweepExpiredPending(ctx, time.Now(), s.pendingTimeout)
	if err != nil {
		s.log.WithError(err).Error("pending sweep failed")
		return
	}
	if count > 0 {
		s.log.WithField("count", count).Info("cancelled expired pending bookings")
	}
}
