package scheduler

import (
	"context"
	"testing"
	"time"

	"cosmic_gateway/internal/pkg/logger"
)

func TestTick_RunsCallback(t *testing.T) {
	runs := 0
	p := NewPoller("test", time.Hour, 0, func(context.Context) { runs++ }, logger.NewSlogAdapter())

	if !p.Tick(context.Background()) {
		t.Fatalf("expected tick to run")
	}
	if runs != 1 {
		t.Errorf("expected one callback run, got %d", runs)
	}
}

func TestTick_DebouncesWithinMinGap(t *testing.T) {
	runs := 0
	p := NewPoller("test", time.Hour, time.Minute, func(context.Context) { runs++ }, logger.NewSlogAdapter())

	first := p.Tick(context.Background())
	second := p.Tick(context.Background())

	if !first || second {
		t.Errorf("expected first tick to run and second to be debounced, got %v/%v", first, second)
	}
	if runs != 1 {
		t.Errorf("expected one callback run, got %d", runs)
	}
}

func TestTick_ZeroGapNeverDebounces(t *testing.T) {
	runs := 0
	p := NewPoller("test", time.Hour, 0, func(context.Context) { runs++ }, logger.NewSlogAdapter())

	for i := 0; i < 5; i++ {
		if !p.Tick(context.Background()) {
			t.Fatalf("tick %d unexpectedly skipped", i)
		}
	}
	if runs != 5 {
		t.Errorf("expected five callback runs, got %d", runs)
	}
}

func TestTick_HiddenSkipsWithoutConsumingGap(t *testing.T) {
	runs := 0
	p := NewPoller("test", time.Hour, time.Minute, func(context.Context) { runs++ }, logger.NewSlogAdapter())

	p.SetVisible(false)
	if p.Tick(context.Background()) {
		t.Fatalf("hidden tick must not run")
	}
	if p.Visible() {
		t.Fatalf("expected hidden state")
	}

	p.SetVisible(true)
	if !p.Tick(context.Background()) {
		t.Fatalf("tick after regaining visibility must run")
	}
	if runs != 1 {
		t.Errorf("expected exactly one callback run, got %d", runs)
	}
}

func TestStartStop(t *testing.T) {
	ticks := make(chan struct{}, 10)
	p := NewPoller("test", 5*time.Millisecond, 0, func(context.Context) {
		select {
		case ticks <- struct{}{}:
		default:
		}
	}, logger.NewSlogAdapter())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatalf("poller never ticked")
	}

	p.Stop()
	p.Stop() // repeated stops must be safe
}
