package joboffer

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Sweeper wraps robfig/cron and periodically expires offers whose
// application deadline has passed.
type Sweeper struct {
	cron *cron.Cron
	svc  *Service
	spec string // cron spec, e.g. "@every 6h"
}

// NewSweeper creates a Sweeper that fires every intervalHours hours.
func NewSweeper(svc *Service, intervalHours int) *Sweeper {
	return &Sweeper{
		cron: cron.New(cron.WithLogger(cron.DefaultLogger)),
		svc:  svc,
		spec: fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. Also runs one sweep
// immediately so stale offers don't linger until the first tick.
func (s *Sweeper) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runSweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[sweeper] Cron started — spec: %s", s.spec)

	go s.runSweep(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Sweeper) Stop() {
	s.cron.Stop()
	log.Println("[sweeper] Cron stopped")
}

func (s *Sweeper) runSweep(ctx context.Context) {
	n, err := s.svc.SweepExpired(ctx)
	if err != nil {
		log.Printf("[sweeper] Sweep error: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[sweeper] Expired %d offer(s) past deadline", n)
	}
}
