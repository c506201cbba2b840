// Command button-lights drives a ring of LEDs from a debounced push button.
// A poller task confirms button presses and feeds toggle commands through a
// bounded queue to a rotator task that moves a lit segment through the ring.
// Alternate modes run the queue from a ticker or skip it entirely.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sweeney/button-lights/internal/debounce"
	"github.com/sweeney/button-lights/internal/event"
	"github.com/sweeney/button-lights/internal/gpio"
	"github.com/sweeney/button-lights/internal/status"
	"github.com/sweeney/button-lights/internal/task"
)

func main() {
	chip := flag.String("chip", "gpiochip0", "GPIO character device name")
	button := flag.Int("button", gpio.DefaultPinButton, "BCM pin number for the push button")
	leds := flag.String("leds", "5,6,13", "comma-separated BCM pin numbers for the LED ring")
	fault := flag.Int("fault", gpio.DefaultPinFault, "BCM pin number for the fault indicator (-1 to disable)")
	settle := flag.Duration("debounce", 20*time.Millisecond, "settle time for button debouncing")
	tick := flag.Duration("tick", 10*time.Millisecond, "minimum poller loop period")
	blink := flag.Duration("blink", time.Second, "toggle period for blink and sequence modes")
	mode := flag.String("mode", "button", "operating mode: button, sequence, blink or follow")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "heartbeat log interval (0 to disable)")
	printState := flag.Bool("print-state", false, "print the button level and exit")

	flag.Parse()

	pins, err := parseLEDPins(*leds)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	if !validMode(*mode) {
		log.Fatalf("fatal: unknown mode %q", *mode)
	}

	cfg := config{
		chip:       *chip,
		button:     *button,
		leds:       pins,
		fault:      *fault,
		settle:     *settle,
		tick:       *tick,
		blink:      *blink,
		mode:       *mode,
		heartbeat:  *heartbeat,
		printState: *printState,
	}
	if err := run(cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

type config struct {
	chip       string
	button     int
	leds       []int
	fault      int
	settle     time.Duration
	tick       time.Duration
	blink      time.Duration
	mode       string
	heartbeat  time.Duration
	printState bool
}

// validMode reports whether mode names one of the operating modes.
func validMode(mode string) bool {
	switch mode {
	case "button", "sequence", "blink", "follow":
		return true
	}
	return false
}

// parseLEDPins parses a comma-separated pin list, e.g. "5,6,13".
func parseLEDPins(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	pins := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("led pin %q: %w", p, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("led pin %d: negative", n)
		}
		pins = append(pins, n)
	}
	if len(pins) == 0 {
		return nil, errors.New("no LED pins given")
	}
	return pins, nil
}

func run(cfg config) error {
	board, err := gpio.OpenBoard(cfg.chip)
	if err != nil {
		return fmt.Errorf("open %s: %w", cfg.chip, err)
	}
	defer board.Close()

	if cfg.printState {
		btn, err := board.Input(cfg.button)
		if err != nil {
			return fmt.Errorf("request button pin %d: %w", cfg.button, err)
		}
		lvl, err := btn.Level()
		if err != nil {
			return fmt.Errorf("read button: %w", err)
		}
		fmt.Printf("button: %s\n", lvl)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The fault indicator is best-effort: if it cannot be requested we can
	// only log.
	var faultOut gpio.Output
	if cfg.fault >= 0 {
		faultOut, err = board.Output(cfg.fault, gpio.Low)
		if err != nil {
			log.Printf("fault pin %d unavailable: %v", cfg.fault, err)
			faultOut = nil
		}
	}

	tracker := status.NewTracker(time.Now(), status.Config{
		Mode:       cfg.mode,
		Chip:       cfg.chip,
		ButtonPin:  cfg.button,
		LEDPins:    cfg.leds,
		DebounceMs: cfg.settle.Milliseconds(),
		TickMs:     cfg.tick.Milliseconds(),
	})

	queue := event.NewQueue(event.DefaultCapacity)
	g, ctx := errgroup.WithContext(ctx)

	started := 0
	fail := func(what string, err error) {
		// Degrade visibly instead of halting: light the fault indicator
		// and keep whatever did start running.
		log.Printf("%s: %v", what, err)
		indicateFault(faultOut)
	}

	// The rotator consumes the queue in the modes that use it.
	if cfg.mode == "button" || cfg.mode == "sequence" {
		outs, err := requestOutputs(board, cfg.leds)
		if err != nil {
			fail("rotator task", err)
		} else {
			rot := task.NewRotator(outs, queue, tracker)
			g.Go(func() error { return rot.Run(ctx) })
			started++
		}
	}

	switch cfg.mode {
	case "button":
		btn, err := board.Input(cfg.button)
		if err != nil {
			fail("poller task", err)
			break
		}
		ticker := time.NewTicker(cfg.tick)
		defer ticker.Stop()
		poller := task.NewPoller(debounce.New(btn, cfg.settle), queue, ticker.C, tracker)
		g.Go(func() error { return poller.Run(ctx) })
		started++

	case "sequence":
		ticker := time.NewTicker(cfg.blink)
		defer ticker.Stop()
		seq := task.NewSequencer(queue, ticker.C)
		g.Go(func() error { return seq.Run(ctx) })
		started++

	case "blink":
		led, err := board.Output(cfg.leds[0], gpio.Low)
		if err != nil {
			fail("blinker task", err)
			break
		}
		ticker := time.NewTicker(cfg.blink)
		defer ticker.Stop()
		blinker := task.NewBlinker(led, ticker.C)
		g.Go(func() error { return blinker.Run(ctx) })
		started++

	case "follow":
		btn, err := board.Input(cfg.button)
		if err != nil {
			fail("follower task", err)
			break
		}
		led, err := board.Output(cfg.leds[0], gpio.Low)
		if err != nil {
			fail("follower task", err)
			break
		}
		ticker := time.NewTicker(cfg.tick)
		defer ticker.Stop()
		follower := task.NewFollower(btn, led, ticker.C)
		g.Go(func() error { return follower.Run(ctx) })
		started++
	}

	if started == 0 {
		// Nothing came up. Stay alive so the fault indicator stays
		// visible on unattended hardware.
		log.Printf("no tasks running, waiting for shutdown signal")
		<-ctx.Done()
		return nil
	}

	if cfg.heartbeat > 0 {
		hb := time.NewTicker(cfg.heartbeat)
		defer hb.Stop()
		g.Go(func() error { return heartbeatLoop(ctx, hb.C, tracker) })
	}

	log.Printf("started: mode=%s button=%d leds=%v debounce=%v tick=%v",
		cfg.mode, cfg.button, cfg.leds, cfg.settle, cfg.tick)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Printf("shutting down")
	return nil
}

// indicateFault lights the fault indicator, if one was requested.
func indicateFault(out gpio.Output) {
	if out == nil {
		return
	}
	if err := out.Set(gpio.High); err != nil {
		log.Printf("fault indicator: %v", err)
	}
}

// requestOutputs requests every LED pin as an output driven Low.
func requestOutputs(board *gpio.Board, pins []int) ([]gpio.Output, error) {
	outs := make([]gpio.Output, 0, len(pins))
	for _, pin := range pins {
		out, err := board.Output(pin, gpio.Low)
		if err != nil {
			return nil, fmt.Errorf("request led pin %d: %w", pin, err)
		}
		outs = append(outs, out)
	}
	return outs, nil
}

// heartbeatLoop logs one run-state summary per tick.
func heartbeatLoop(ctx context.Context, tick <-chan time.Time, tracker *status.Tracker) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
			s := tracker.Snapshot()
			log.Printf("heartbeat: uptime=%v presses=%d toggles=%d index=%d",
				s.Uptime().Round(time.Second), s.Presses, s.Toggles, s.Index)
		}
	}
}
