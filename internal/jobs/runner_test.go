package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRunnerSurvivesAndLogsFailures(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := New(ctx, zap.New(core).Sugar())
	ran := make(chan struct{}, 16)
	r.Every(5*time.Millisecond, "flaky", func(context.Context) error {
		ran <- struct{}{}
		return errors.New("boom")
	})

	// a failing job keeps its schedule
	for i := 0; i < 3; i++ {
		select {
		case <-ran:
		case <-time.After(2 * time.Second):
			t.Fatal("job stopped running after a failure")
		}
	}
	cancel()

	if logs.FilterMessage("job failed").Len() == 0 {
		t.Error("failures were not logged")
	}
}

func TestRunnerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := New(ctx, zap.NewNop().Sugar())
	ran := make(chan struct{}, 16)
	r.Every(5*time.Millisecond, "ticker", func(context.Context) error {
		ran <- struct{}{}
		return nil
	})

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job never ran")
	}
	cancel()

	// drain anything in flight, then the schedule must go quiet
	time.Sleep(20 * time.Millisecond)
	for len(ran) > 0 {
		<-ran
	}
	select {
	case <-ran:
		t.Error("job ran after cancel")
	case <-time.After(50 * time.Millisecond):
	}
}
