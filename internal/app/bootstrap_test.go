package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brandsite-api/internal/config"
)

type fakeService struct {
	name     string
	startErr error
	stopErr  error
	block    bool
	stopped  bool
}

func (s *fakeService) Name() string { return s.name }

func (s *fakeService) Start(ctx context.Context) error {
	if s.block {
		<-ctx.Done()
		return nil
	}
	return s.startErr
}

func (s *fakeService) Stop(context.Context) error {
	s.stopped = true
	return s.stopErr
}

func TestRunnerStopsAllOnServiceError(t *testing.T) {
	failing := &fakeService{name: "http", startErr: errors.New("bind failed")}
	blocking := &fakeService{name: "worker", block: true}
	runner := NewRunner(ModeAll, failing, blocking)

	err := runner.Run(context.Background(), time.Second, nil)
	if err == nil || err.Error() != "bind failed" {
		t.Fatalf("expected start error, got %v", err)
	}
	if !failing.stopped || !blocking.stopped {
		t.Fatalf("all services should be stopped")
	}
}

func TestRunnerCancelIsCleanExit(t *testing.T) {
	blocking := &fakeService{name: "http", block: true}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewRunner(ModeAPI, blocking).Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("cancelled run should return nil, got %v", err)
	}
}

func TestRunnerWithoutServices(t *testing.T) {
	if err := NewRunner(ModeWorker).Run(context.Background(), time.Second, nil); err == nil {
		t.Fatalf("expected error for empty runner")
	}
}

func TestRunnerReportsStopFailureAfterCleanExit(t *testing.T) {
	stuck := &fakeService{name: "worker", block: true, stopErr: errors.New("drain timeout")}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewRunner(ModeWorker, stuck).Run(ctx, time.Second, nil)
	if err == nil || err.Error() != "drain timeout" {
		t.Fatalf("stop failure should surface, got %v", err)
	}
}

func TestRunnerKeepsMode(t *testing.T) {
	if got := NewRunner(ModeAPI).Mode(); got != ModeAPI {
		t.Fatalf("mode want api got %s", got)
	}
	var nilRunner *Runner
	if nilRunner.Mode() != "" {
		t.Fatalf("nil runner mode should be empty")
	}
	if _, _, err := BuildRunner(&config.Config{}, "cron"); err == nil {
		t.Fatalf("unknown mode should fail before building services")
	}
}

func TestNormalizeOptionsAndModes(t *testing.T) {
	opts := normalizeOptions(Options{})
	if opts.Mode != ModeAll || opts.ShutdownTimeout != 10*time.Second || opts.Logger == nil {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
	for _, mode := range []string{ModeAll, ModeAPI, ModeWorker} {
		if !IsValidMode(mode) {
			t.Fatalf("mode %s should be valid", mode)
		}
	}
	if IsValidMode("cron") {
		t.Fatalf("unknown mode should be rejected")
	}
	if _, _, err := BuildRunner(nil, ModeAll); err == nil {
		t.Fatalf("nil config should fail")
	}
}
