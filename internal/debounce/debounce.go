// Package debounce filters mechanical switch bounce from a digital input.
// It contains no pin or timer implementations of its own; those come in
// through the gpio.Input interface and an injectable sleep.
package debounce

import (
	"context"
	"time"

	"github.com/sweeney/button-lights/internal/gpio"
)

// Debouncer confirms logical level changes on a noisy input. Invariant:
// between two returned transitions, the reported level has been stable for at
// least the settle duration.
type Debouncer struct {
	in     gpio.Input
	settle time.Duration

	// sleep is replaced by tests to script glitches inside the settle
	// window.
	sleep func(ctx context.Context, d time.Duration) error
}

// New returns a Debouncer over in. The settle duration must be positive; zero
// degenerates to raw edge detection with no filtering.
func New(in gpio.Input, settle time.Duration) *Debouncer {
	return &Debouncer{in: in, settle: settle, sleep: sleepCtx}
}

// Debounce blocks until a confirmed level change is observed and returns the
// new level. Each electrical transition starts a settle wait; if the level
// after settling equals the level before the transition, the transition was
// bounce (or a glitch) and is discarded. There is no bound on retries:
// liveness assumes physical bounce is finite, not that the circuit is sound.
//
// The only error causes are cancellation and a hardware read fault.
func (d *Debouncer) Debounce(ctx context.Context) (gpio.Level, error) {
	for {
		l1, err := d.in.Level()
		if err != nil {
			return gpio.Low, err
		}
		if err := d.in.WaitForEdge(ctx); err != nil {
			return gpio.Low, err
		}
		if err := d.sleep(ctx, d.settle); err != nil {
			return gpio.Low, err
		}
		l2, err := d.in.Level()
		if err != nil {
			return gpio.Low, err
		}
		if l1 != l2 {
			return l2, nil
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
