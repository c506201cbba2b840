// Package event defines the control messages exchanged between tasks and the
// bounded queue that carries them.
package event

// Command is a control message for the actuator. The set is closed but
// designed to grow; consumers must ignore (and log) kinds they do not know.
type Command string

const (
	// Toggle advances the actuator by one step. It carries no payload.
	Toggle Command = "TOGGLE"
)
