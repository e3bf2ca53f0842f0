// Package scheduler provides a small polling abstraction: a fixed-interval
// ticker with a minimum-gap debounce and a visibility pause. Ticks can also be
// driven manually, which keeps time simulation out of the callers' tests.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"cosmic_gateway/internal/app/port"
)

// Poller invokes a callback on a fixed interval. A tick is skipped while the
// poller is hidden, and skipped when it fires sooner than the configured
// minimum gap since the previous executed tick.
type Poller struct {
	name     string
	interval time.Duration
	limiter  *rate.Limiter
	fn       func(context.Context)
	logger   port.Logger

	visible  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewPoller creates a poller. minGap bounds request volume during rapid
// re-triggering; pass 0 to disable debouncing.
func NewPoller(name string, interval, minGap time.Duration, fn func(context.Context), log port.Logger) *Poller {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if minGap > 0 {
		limiter = rate.NewLimiter(rate.Every(minGap), 1)
	}
	p := &Poller{
		name:     name,
		interval: interval,
		limiter:  limiter,
		fn:       fn,
		logger:   log,
		stopCh:   make(chan struct{}),
	}
	p.visible.Store(true)
	return p
}

// Start launches the ticking loop in a goroutine. The loop ends when ctx is
// canceled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-p.stopCh:
				return
			case <-ticker.C:
				p.Tick(ctx)
			}
		}
	}()
	p.logger.Debug("Poller started", "name", p.name, "interval", p.interval.String())
}

// Stop terminates the ticking loop. Safe to call more than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}

// SetVisible pauses (false) or resumes (true) tick execution. Regaining
// visibility does not force a catch-up tick; the next natural tick runs.
func (p *Poller) SetVisible(visible bool) {
	p.visible.Store(visible)
}

// Visible reports whether ticks currently execute.
func (p *Poller) Visible() bool {
	return p.visible.Load()
}

// Tick runs the callback once, honoring the visibility flag and the debounce
// gap. It reports whether the callback actually ran.
func (p *Poller) Tick(ctx context.Context) bool {
	if !p.visible.Load() {
		return false
	}
	if !p.limiter.Allow() {
		p.logger.Debug("Poller tick debounced", "name", p.name)
		return false
	}
	p.fn(ctx)
	return true
}
