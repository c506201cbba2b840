// Package status provides a thread-safe run-state tracker for the
// button-lights daemon. It is written by the tasks and read by the heartbeat
// logger.
package status

import (
	"sync"
	"time"
)

// Config contains daemon configuration for display.
type Config struct {
	Mode       string
	Chip       string
	ButtonPin  int
	LEDPins    []int
	DebounceMs int64
	TickMs     int64
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	StartTime time.Time
	Now       time.Time
	Presses   int // confirmed button presses
	Toggles   int // toggle commands applied by the actuator
	Index     int // actuator's current output index
	Config    Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// RecordPress counts one confirmed button press.
func (t *Tracker) RecordPress() {
	t.mu.Lock()
	t.snap.Presses++
	t.mu.Unlock()
}

// RecordToggle counts one applied toggle and records the actuator's new
// output index.
func (t *Tracker) RecordToggle(index int) {
	t.mu.Lock()
	t.snap.Toggles++
	t.snap.Index = index
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
