package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// sweepTimeout bounds a single background pass.
const sweepTimeout = 30 * time.Second

// StatusSweeper applies the automatic booking transitions as of now.
type StatusSweeper interface {
	SweepStatuses(ctx context.Context, now time.Time) error
}

// LifecycleSweeper runs the status sweep on a fixed interval in addition to
// the sweep done on every booking read, so stale bookings also move when
// nobody is listing them.
type LifecycleSweeper struct {
	sweeper  StatusSweeper
	interval time.Duration
	now      func() time.Time
	log      *logrus.Logger

	stopChan chan struct{}
	wg       sync.WaitGroup
	started  atomic.Bool
	stopped  atomic.Bool
}

func NewLifecycleSweeper(sweeper StatusSweeper, interval time.Duration, log *logrus.Logger) *LifecycleSweeper {
	return &LifecycleSweeper{
		sweeper:  sweeper,
		interval: interval,
		now:      time.Now,
		log:      log,
		stopChan: make(chan struct{}),
	}
}

// Start launches the background loop. A non-positive interval is a no-op.
func (s *LifecycleSweeper) Start() {
	if s.interval <= 0 || !s.started.CompareAndSwap(false, true) {
		return
	}

	s.wg.Add(1)
	go s.loop()

	s.log.Infof("Lifecycle sweeper started (interval=%v)", s.interval)
}

// Stop gracefully shuts down the loop.
// Safe to call multiple times.
func (s *LifecycleSweeper) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("Lifecycle sweeper stopped")
	}
}

func (s *LifecycleSweeper) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.runOnce()
		}
	}
}

func (s *LifecycleSweeper) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	if err := s.sweeper.SweepStatuses(ctx, s.now()); err != nil {
		s.log.Warnf("Failed to sweep booking statuses: %+v", err)
	}
}
