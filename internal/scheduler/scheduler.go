// Package scheduler manages cron-driven refresh tasks.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler wraps a seconds-granularity cron runner.
type Scheduler struct {
	cron *cron.Cron
}

// New creates a new Scheduler.
func New() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds()),
	}
}

// Register adds a named task on the given cron spec.
func (s *Scheduler) Register(spec, name string, task func()) error {
	_, err := s.cron.AddFunc(spec, func() {
		log.Printf("[scheduler] running task %s", name)
		task()
	})
	if err != nil {
		return fmt.Errorf("register task %s: %w", name, err)
	}
	return nil
}

// Start begins executing registered tasks in their own goroutines.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler. The returned context is done once all
// running tasks have completed.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
