package debounce

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sweeney/button-lights/internal/gpio"
)

type result struct {
	lvl gpio.Level
	err error
}

// scriptSleep replaces the settle sleep with a sequence of steps, one per
// settle window. It lets tests inject level changes at exact points inside
// the window without real timing.
func scriptSleep(d *Debouncer, calls *int, steps ...func()) {
	d.sleep = func(context.Context, time.Duration) error {
		if *calls < len(steps) {
			steps[*calls]()
		}
		*calls++
		return nil
	}
}

// await receives a result or fails the test after a deadline.
func await(t *testing.T, ch <-chan result) result {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(time.Second):
		t.Fatal("debounce did not return in time")
		return result{}
	}
}

// awaitEdgeWait blocks until the debouncer has sampled its pre-edge level and
// is waiting for a transition.
func awaitEdgeWait(t *testing.T, in *gpio.FakeInput) {
	t.Helper()
	select {
	case <-in.WaitStarted():
	case <-time.After(time.Second):
		t.Fatal("debouncer never reached the edge wait")
	}
}

func TestDebounceLiveness(t *testing.T) {
	// One clean transition returns the new level after exactly one
	// edge-wait and one settle window.
	in := gpio.NewFakeInput(gpio.Low)
	d := New(in, 20*time.Millisecond)
	calls := 0
	scriptSleep(d, &calls, func() {})

	ch := make(chan result, 1)
	go func() {
		lvl, err := d.Debounce(context.Background())
		ch <- result{lvl, err}
	}()

	awaitEdgeWait(t, in)
	in.SetLevel(gpio.High)

	r := await(t, ch)
	if r.err != nil {
		t.Fatalf("Debounce returned error: %v", r.err)
	}
	if r.lvl != gpio.High {
		t.Errorf("Debounce returned %v, want HIGH", r.lvl)
	}
	if calls != 1 {
		t.Errorf("settle windows = %d, want 1", calls)
	}
}

func TestDebounceDiscardsBounce(t *testing.T) {
	// A transition that reverts within the settle window never produces a
	// return; only the later stable level does.
	in := gpio.NewFakeInput(gpio.Low)
	d := New(in, 20*time.Millisecond)
	calls := 0
	scriptSleep(d, &calls,
		func() { in.SetLevel(gpio.Low) },  // bounce back before re-sample
		func() { in.SetLevel(gpio.High) }, // real press lands during settle
	)

	ch := make(chan result, 1)
	go func() {
		lvl, err := d.Debounce(context.Background())
		ch <- result{lvl, err}
	}()

	awaitEdgeWait(t, in)
	in.SetLevel(gpio.High) // first, bouncy transition

	r := await(t, ch)
	if r.err != nil {
		t.Fatalf("Debounce returned error: %v", r.err)
	}
	if r.lvl != gpio.High {
		t.Errorf("Debounce returned %v, want HIGH", r.lvl)
	}
	if calls != 2 {
		t.Errorf("settle windows = %d, want 2 (bounce + confirmation)", calls)
	}
}

func TestDebouncePressReleaseCycle(t *testing.T) {
	// A press held past the settle window then released yields exactly two
	// confirmed transitions: HIGH then LOW.
	in := gpio.NewFakeInput(gpio.Low)
	d := New(in, 20*time.Millisecond)
	calls := 0
	scriptSleep(d, &calls, func() {}, func() {})

	ch := make(chan result, 2)
	go func() {
		for i := 0; i < 2; i++ {
			lvl, err := d.Debounce(context.Background())
			ch <- result{lvl, err}
		}
	}()

	awaitEdgeWait(t, in)
	in.SetLevel(gpio.High)
	r1 := await(t, ch)

	awaitEdgeWait(t, in)
	in.SetLevel(gpio.Low)
	r2 := await(t, ch)

	if r1.err != nil || r2.err != nil {
		t.Fatalf("Debounce returned errors: %v, %v", r1.err, r2.err)
	}
	if r1.lvl != gpio.High {
		t.Errorf("first transition = %v, want HIGH", r1.lvl)
	}
	if r2.lvl != gpio.Low {
		t.Errorf("second transition = %v, want LOW", r2.lvl)
	}
}

func TestDebounceCancellation(t *testing.T) {
	in := gpio.NewFakeInput(gpio.Low)
	d := New(in, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan result, 1)
	go func() {
		lvl, err := d.Debounce(ctx)
		ch <- result{lvl, err}
	}()

	awaitEdgeWait(t, in)
	cancel()

	r := await(t, ch)
	if !errors.Is(r.err, context.Canceled) {
		t.Errorf("Debounce returned %v, want context.Canceled", r.err)
	}
}

func TestDebounceReadFault(t *testing.T) {
	in := gpio.NewFakeInput(gpio.Low)
	in.ReadError = errors.New("gpio fault")
	d := New(in, 20*time.Millisecond)

	if _, err := d.Debounce(context.Background()); err == nil {
		t.Error("expected error from Debounce, got nil")
	}
}

func TestSleepCtx(t *testing.T) {
	start := time.Now()
	if err := sleepCtx(context.Background(), 10*time.Millisecond); err != nil {
		t.Fatalf("sleepCtx returned error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("sleepCtx returned after %v, want >= 10ms", elapsed)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleepCtx(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("sleepCtx = %v, want context.Canceled", err)
	}
}
