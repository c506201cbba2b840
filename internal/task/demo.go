package task

import (
	"context"
	"log"
	"time"

	"github.com/sweeney/button-lights/internal/event"
	"github.com/sweeney/button-lights/internal/gpio"
)

// Blinker toggles a single output once per tick — the classic blink. Two
// blinkers on the same physical LED with close periods produce the "beat"
// duty-cycle effect.
type Blinker struct {
	led  gpio.Output
	tick <-chan time.Time
}

// NewBlinker creates a blinker.
func NewBlinker(led gpio.Output, tick <-chan time.Time) *Blinker {
	return &Blinker{led: led, tick: tick}
}

// Run toggles the output on every tick until ctx is cancelled.
func (b *Blinker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-b.tick:
			if err := b.led.Toggle(); err != nil {
				log.Printf("blinker: %v", err)
			}
		}
	}
}

// Follower mirrors the instantaneous level of an input to an output once per
// tick. There is no debouncing; this is the raw polling demo.
type Follower struct {
	btn  gpio.Input
	led  gpio.Output
	tick <-chan time.Time
}

// NewFollower creates a follower.
func NewFollower(btn gpio.Input, led gpio.Output, tick <-chan time.Time) *Follower {
	return &Follower{btn: btn, led: led, tick: tick}
}

// Run copies button to LED on every tick until ctx is cancelled.
func (f *Follower) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-f.tick:
			lvl, err := f.btn.Level()
			if err != nil {
				log.Printf("follower: %v", err)
				continue
			}
			if err := f.led.Set(lvl); err != nil {
				log.Printf("follower: %v", err)
			}
		}
	}
}

// Sequencer feeds one Toggle into the queue per tick, driving the rotator
// with no button attached.
type Sequencer struct {
	queue *event.Queue
	tick  <-chan time.Time
}

// NewSequencer creates a sequencer.
func NewSequencer(queue *event.Queue, tick <-chan time.Time) *Sequencer {
	return &Sequencer{queue: queue, tick: tick}
}

// Run sends a Toggle then waits for the next tick, until ctx is cancelled. A
// full queue suspends the sequencer; commands are never dropped.
func (s *Sequencer) Run(ctx context.Context) error {
	for {
		if err := s.queue.Send(ctx, event.Toggle); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.tick:
		}
	}
}
