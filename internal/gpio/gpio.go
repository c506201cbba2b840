// Package gpio provides digital pin access with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementations allow testing without hardware.
package gpio

import "context"

// Level is the logical state of a digital pin.
type Level bool

const (
	Low  Level = false
	High Level = true
)

// String returns "HIGH" or "LOW".
func (l Level) String() string {
	if l == High {
		return "HIGH"
	}
	return "LOW"
}

// Input is a digital input pin.
//
// An Input is owned by exactly one task; methods are not safe for
// concurrent use.
type Input interface {
	// Level returns the instantaneous logical level. Non-blocking.
	Level() (Level, error)

	// WaitForEdge blocks until any transition occurs on the pin, or until
	// ctx is done. Transitions that happen while nobody is waiting may
	// coalesce into a single wake-up, so callers must re-sample the level
	// after waking rather than infer it from the edge.
	WaitForEdge(ctx context.Context) error
}

// Output is a digital output pin.
//
// Like Input, an Output is owned by exactly one task.
type Output interface {
	// Set drives the pin to the given level. Non-blocking.
	Set(Level) error

	// Toggle inverts the pin level. Non-blocking.
	Toggle() error

	// Level returns the last level written. GPIO character device lines
	// have no read-back for outputs, so this is shadow state.
	Level() Level
}

// Default pin assignments (BCM numbering).
const (
	DefaultPinButton = 26 // push button, pulled down
	DefaultPinFault  = 21 // fault indicator LED
)
