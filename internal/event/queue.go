package event

import "context"

// DefaultCapacity is the queue depth used by the daemon.
const DefaultCapacity = 64

// Queue is a fixed-capacity FIFO hand-off of Commands between tasks: any
// number of producers, one consumer. A send on a full queue blocks until a
// slot frees rather than dropping or erroring, so no command is ever lost;
// the cost is that a stalled consumer stalls its producers. Capacity is fixed
// at construction.
type Queue struct {
	ch chan Command
}

// NewQueue creates a queue with the given capacity.
// Non-positive capacities fall back to DefaultCapacity.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{ch: make(chan Command, capacity)}
}

// Send enqueues cmd, blocking while the queue is full.
// The only error is ctx's, on cancellation.
func (q *Queue) Send(ctx context.Context, cmd Command) error {
	select {
	case q.ch <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Receive dequeues the oldest command, blocking while the queue is empty.
// Commands arrive in the exact order they were sent.
func (q *Queue) Receive(ctx context.Context) (Command, error) {
	select {
	case cmd := <-q.ch:
		return cmd, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Len returns the number of queued commands.
func (q *Queue) Len() int { return len(q.ch) }

// Cap returns the fixed capacity.
func (q *Queue) Cap() int { return cap(q.ch) }
