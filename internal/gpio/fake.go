package gpio

import (
	"context"
	"sync"
)

// FakeInput is a test double for a digital input pin. The test script drives
// it with SetLevel; the code under test observes it through the Input
// interface.
type FakeInput struct {
	mu    sync.Mutex
	level Level

	// ReadError, if set, will be returned by Level().
	ReadError error

	// edges is a one-slot pending-edge latch, mirroring real edge
	// detection: transitions while nobody waits coalesce.
	edges chan struct{}

	// waits receives a token each time a caller enters WaitForEdge.
	waits chan struct{}
}

// NewFakeInput creates a FakeInput at the given initial level.
func NewFakeInput(initial Level) *FakeInput {
	return &FakeInput{
		level: initial,
		edges: make(chan struct{}, 1),
		waits: make(chan struct{}, 1),
	}
}

// Level returns the current scripted level.
func (f *FakeInput) Level() (Level, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReadError != nil {
		return Low, f.ReadError
	}
	return f.level, nil
}

// SetLevel changes the pin level. A change latches a pending edge, waking the
// current (or next) WaitForEdge. Setting the same level again is not an edge.
func (f *FakeInput) SetLevel(l Level) {
	f.mu.Lock()
	changed := f.level != l
	f.level = l
	f.mu.Unlock()
	if !changed {
		return
	}
	select {
	case f.edges <- struct{}{}:
	default:
	}
}

// WaitStarted is signalled each time a caller enters WaitForEdge. Tests use
// it to sequence SetLevel calls against the code under test: after receiving
// from this channel the waiter has already sampled its pre-edge level.
func (f *FakeInput) WaitStarted() <-chan struct{} {
	return f.waits
}

// WaitForEdge blocks until a pending edge is latched or ctx is done.
func (f *FakeInput) WaitForEdge(ctx context.Context) error {
	select {
	case f.waits <- struct{}{}:
	default:
	}
	select {
	case <-f.edges:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// FakeOutput is a test double for a digital output pin. It records every
// level written so tests can assert on the full waveform.
type FakeOutput struct {
	mu      sync.Mutex
	level   Level
	history []Level

	// SetError, if set, will be returned by Set and Toggle.
	SetError error
}

// NewFakeOutput creates a FakeOutput at the given initial level.
func NewFakeOutput(initial Level) *FakeOutput {
	return &FakeOutput{level: initial}
}

// Set records and applies the level.
func (f *FakeOutput) Set(l Level) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SetError != nil {
		return f.SetError
	}
	f.level = l
	f.history = append(f.history, l)
	return nil
}

// Toggle inverts the recorded level.
func (f *FakeOutput) Toggle() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SetError != nil {
		return f.SetError
	}
	f.level = !f.level
	f.history = append(f.history, f.level)
	return nil
}

// Level returns the last level written.
func (f *FakeOutput) Level() Level {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.level
}

// History returns a copy of every level written, in order.
func (f *FakeOutput) History() []Level {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Level, len(f.history))
	copy(out, f.history)
	return out
}
