//go:build linux

package gpio

import (
	"context"
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// Board provides pin access on real hardware via a Linux GPIO character
// device (e.g. a Raspberry Pi's gpiochip0).
type Board struct {
	chip  *gpiocdev.Chip
	lines []*gpiocdev.Line
}

// OpenBoard opens the named GPIO chip.
func OpenBoard(chipName string) (*Board, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}
	return &Board{chip: chip}, nil
}

// Input requests pin as an input with pull-down (matching Pi boot defaults)
// and both-edge event detection. Edge events are delivered to a one-slot
// latch, so bursts coalesce; WaitForEdge only promises "at least one
// transition happened".
func (b *Board) Input(pin int) (Input, error) {
	in := &boardInput{pin: pin, edges: make(chan struct{}, 1)}
	line, err := b.chip.RequestLine(pin,
		gpiocdev.AsInput,
		gpiocdev.WithPullDown,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(in.handleEvent),
	)
	if err != nil {
		return nil, fmt.Errorf("request input pin %d: %w", pin, err)
	}
	in.line = line
	b.lines = append(b.lines, line)
	return in, nil
}

// Output requests pin as an output driven to the initial level.
func (b *Board) Output(pin int, initial Level) (Output, error) {
	line, err := b.chip.RequestLine(pin, gpiocdev.AsOutput(levelValue(initial)))
	if err != nil {
		return nil, fmt.Errorf("request output pin %d: %w", pin, err)
	}
	b.lines = append(b.lines, line)
	return &boardOutput{line: line, pin: pin, level: initial}, nil
}

// Close releases all requested lines and the chip. Lines are reconfigured to
// input with pull-down first, matching Pi boot defaults, so externally
// connected hardware sees a clean state across restarts.
func (b *Board) Close() error {
	var errs []error
	for _, line := range b.lines {
		if err := line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure line: %w", err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close line: %w", err))
		}
	}
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

type boardInput struct {
	line  *gpiocdev.Line
	pin   int
	edges chan struct{}
}

// handleEvent runs on the gpiocdev event goroutine; it must not block.
func (p *boardInput) handleEvent(gpiocdev.LineEvent) {
	select {
	case p.edges <- struct{}{}:
	default:
	}
}

func (p *boardInput) Level() (Level, error) {
	v, err := p.line.Value()
	if err != nil {
		return Low, fmt.Errorf("read pin %d: %w", p.pin, err)
	}
	return Level(v != 0), nil
}

func (p *boardInput) WaitForEdge(ctx context.Context) error {
	select {
	case <-p.edges:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type boardOutput struct {
	line  *gpiocdev.Line
	pin   int
	level Level
}

func (p *boardOutput) Set(l Level) error {
	if err := p.line.SetValue(levelValue(l)); err != nil {
		return fmt.Errorf("set pin %d: %w", p.pin, err)
	}
	p.level = l
	return nil
}

func (p *boardOutput) Toggle() error {
	return p.Set(!p.level)
}

func (p *boardOutput) Level() Level {
	return p.level
}

func levelValue(l Level) int {
	if l == High {
		return 1
	}
	return 0
}
