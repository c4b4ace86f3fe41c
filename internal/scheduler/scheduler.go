package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"

	"PeerLens/internal/compare"

	"github.com/robfig/cron/v3"
)

// Scheduler refreshes the active compare view on a cron schedule so the
// served snapshot tracks the data store without client interaction.
type Scheduler struct {
	Cron *cron.Cron
	View *compare.View
	Ctx  context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, view *compare.View) *Scheduler {
	return &Scheduler{
		Cron: cron.New(cron.WithSeconds()),
		View: view,
		Ctx:  ctx,
	}
}

// Register adds the refresh task. An empty expression disables it.
func (s *Scheduler) Register(refreshCron string) error {
	if refreshCron == "" {
		log.Println("[INFO] scheduled refresh disabled")
		return nil
	}
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

func (s *Scheduler) refreshTask() {
	log.Println("[INFO] running scheduled refresh")
	snap, err := s.View.Refresh(s.Ctx)
	if err != nil {
		if errors.Is(err, compare.ErrSuperseded) {
			return // a client request replaced the scheduled fetch
		}
		log.Printf("[ERROR] scheduled refresh: %v", err)
		return
	}
	if snap.Error != "" {
		log.Printf("[WARN] scheduled refresh fetch failed: %s", snap.Error)
		return
	}
	log.Printf("[INFO] refreshed %d tickers (range %s)", len(snap.Series), snap.Descriptor.Range)
}
