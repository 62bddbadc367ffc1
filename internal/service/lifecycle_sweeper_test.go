package service

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type countingSweeper struct {
	calls atomic.Int32
	err   error
}

func (s *countingSweeper) SweepStatuses(ctx context.Context, now time.Time) error {
	s.calls.Add(1)
	return s.err
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestLifecycleSweeperRunsUntilStopped(t *testing.T) {
	fake := &countingSweeper{err: errors.New("db down")}
	sweeper := NewLifecycleSweeper(fake, 5*time.Millisecond, quietLogger())

	sweeper.Start()
	deadline := time.Now().Add(2 * time.Second)
	for fake.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	sweeper.Stop()
	sweeper.Stop()

	got := fake.calls.Load()
	if got < 2 {
		t.Fatalf("sweep calls = %d, want at least 2", got)
	}

	time.Sleep(20 * time.Millisecond)
	if after := fake.calls.Load(); after != got {
		t.Fatalf("sweeper kept running after Stop: %d -> %d calls", got, after)
	}
}

func TestLifecycleSweeperDisabled(t *testing.T) {
	fake := &countingSweeper{}
	sweeper := NewLifecycleSweeper(fake, 0, quietLogger())

	sweeper.Start()
	time.Sleep(10 * time.Millisecond)
	sweeper.Stop()

	if got := fake.calls.Load(); got != 0 {
		t.Fatalf("sweep calls = %d, want 0", got)
	}
}
