// Package task contains the long-running loops that make up the daemon: the
// button poller, the LED rotator, and the standalone demo tasks. Every loop
// runs until its context is cancelled; hardware faults are logged and the
// iteration restarted, matching unattended operation.
package task

import (
	"context"
	"log"
	"time"

	"github.com/sweeney/button-lights/internal/debounce"
	"github.com/sweeney/button-lights/internal/event"
	"github.com/sweeney/button-lights/internal/status"
)

// Poller turns confirmed button presses into Toggle commands: one command per
// press/release pair, emitted on the press. The tick paces the loop's minimum
// period; sampling itself is edge-driven through the debouncer, so the tick
// only prevents runaway iteration.
type Poller struct {
	btn     *debounce.Debouncer
	queue   *event.Queue
	tick    <-chan time.Time
	tracker *status.Tracker // optional
}

// NewPoller creates a poller. tracker may be nil.
func NewPoller(btn *debounce.Debouncer, queue *event.Queue, tick <-chan time.Time, tracker *status.Tracker) *Poller {
	return &Poller{btn: btn, queue: queue, tick: tick, tracker: tracker}
}

// Run loops until ctx is cancelled. A send on a full queue suspends the
// poller until the rotator catches up; commands are never dropped.
func (p *Poller) Run(ctx context.Context) error {
	for {
		// Button down.
		if _, err := p.btn.Debounce(ctx); err != nil {
			if err := p.backoff(ctx, err); err != nil {
				return err
			}
			continue
		}
		if p.tracker != nil {
			p.tracker.RecordPress()
		}
		if err := p.queue.Send(ctx, event.Toggle); err != nil {
			return err
		}

		// Button up. No command on release.
		if _, err := p.btn.Debounce(ctx); err != nil {
			if err := p.backoff(ctx, err); err != nil {
				return err
			}
			continue
		}

		// Wait for the next poll period.
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.tick:
		}
	}
}

// backoff handles a debounce failure: cancellation ends the task, a hardware
// fault is logged and retried on the next tick so a stuck pin cannot spin the
// loop hot.
func (p *Poller) backoff(ctx context.Context, cause error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	log.Printf("poller: debounce: %v", cause)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.tick:
		return nil
	}
}
