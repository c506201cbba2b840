package task

import (
	"context"
	"errors"
	"log"

	"github.com/sweeney/button-lights/internal/event"
	"github.com/sweeney/button-lights/internal/gpio"
	"github.com/sweeney/button-lights/internal/status"
)

// Rotator consumes Toggle commands and moves a lit segment through a fixed
// ring of outputs: each command turns the current output off and the next one
// on, wrapping at the end. With a single output it degenerates to a plain
// flip.
type Rotator struct {
	leds    []gpio.Output
	queue   *event.Queue
	tracker *status.Tracker // optional
	index   int
}

// NewRotator creates a rotator over leds. tracker may be nil.
func NewRotator(leds []gpio.Output, queue *event.Queue, tracker *status.Tracker) *Rotator {
	return &Rotator{leds: leds, queue: queue, tracker: tracker}
}

// Run lights output 0, then advances one step per received Toggle until ctx
// is cancelled. Unknown commands are logged and skipped so the command set
// can grow without breaking old consumers.
func (r *Rotator) Run(ctx context.Context) error {
	if len(r.leds) == 0 {
		return errors.New("rotator: no outputs")
	}
	if err := r.leds[r.index].Set(gpio.High); err != nil {
		return err
	}
	for {
		cmd, err := r.queue.Receive(ctx)
		if err != nil {
			return err
		}
		switch cmd {
		case event.Toggle:
			if err := r.step(); err != nil {
				log.Printf("rotator: %v", err)
			}
		default:
			log.Printf("rotator: unknown command %q", cmd)
		}
	}
}

// step advances the lit segment by one output.
func (r *Rotator) step() error {
	if len(r.leds) == 1 {
		if err := r.leds[0].Toggle(); err != nil {
			return err
		}
		if r.tracker != nil {
			r.tracker.RecordToggle(0)
		}
		return nil
	}
	if err := r.leds[r.index].Toggle(); err != nil {
		return err
	}
	r.index = (r.index + 1) % len(r.leds)
	if err := r.leds[r.index].Toggle(); err != nil {
		return err
	}
	if r.tracker != nil {
		r.tracker.RecordToggle(r.index)
	}
	return nil
}
