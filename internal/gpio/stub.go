//go:build !linux

package gpio

import "errors"

// Board is not available on non-Linux platforms.
type Board struct{}

// OpenBoard returns an error on non-Linux platforms.
func OpenBoard(chipName string) (*Board, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Input is not implemented on non-Linux platforms.
func (b *Board) Input(pin int) (Input, error) {
	return nil, errors.New("gpio: not supported")
}

// Output is not implemented on non-Linux platforms.
func (b *Board) Output(pin int, initial Level) (Output, error) {
	return nil, errors.New("gpio: not supported")
}

// Close is a no-op on non-Linux platforms.
func (b *Board) Close() error {
	return nil
}
