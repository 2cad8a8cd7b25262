package ordering

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a drag event arrives in the wrong phase
var ErrInvalidTransition = errors.New("invalid drag transition")

// Phase is the current state of a drag gesture
type Phase int

// Drag phases
const (
	Idle Phase = iota
	Dragging
	Over
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Over:
		return "over"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Drag tracks one drag gesture over a list of a given length.
//
//	Idle --Start--> Dragging --Hover/Leave--> Over --Drop--> Idle
//	  any non-idle phase --Cancel--> Idle
type Drag struct {
	phase       Phase
	length      int
	source      int
	destination *int
}

// NewDrag returns an idle drag over a list of length n.
func NewDrag(n int) *Drag {
	return &Drag{length: n}
}

// Phase returns the current phase.
func (d *Drag) Phase() Phase {
	return d.phase
}

// Source returns the index being dragged. Only meaningful outside Idle.
func (d *Drag) Source() int {
	return d.source
}

// Start picks up the item at index.
func (d *Drag) Start(index int) error {
	if d.phase != Idle {
		return fmt.Errorf("%w: start while %s", ErrInvalidTransition, d.phase)
	}
	if index < 0 || index >= d.length {
		return &IndexError{Index: index, Len: d.length}
	}
	d.phase = Dragging
	d.source = index
	d.destination = nil
	return nil
}

// Hover moves the pointer over the slot at index.
func (d *Drag) Hover(index int) error {
	if d.phase == Idle {
		return fmt.Errorf("%w: hover while idle", ErrInvalidTransition)
	}
	index = min(max(index, 0), d.length-1)
	d.phase = Over
	d.destination = &index
	return nil
}

// Leave moves the pointer outside the list.
func (d *Drag) Leave() error {
	if d.phase == Idle {
		return fmt.Errorf("%w: leave while idle", ErrInvalidTransition)
	}
	d.phase = Over
	d.destination = nil
	return nil
}

// Drop releases the item and returns the resulting DropResult. Dropping
// straight after Start keeps the item in place.
func (d *Drag) Drop() (DropResult, error) {
	switch d.phase {
	case Idle:
		return DropResult{}, fmt.Errorf("%w: drop while idle", ErrInvalidTransition)
	case Dragging:
		d.phase = Idle
		return Dropped(d.source, d.source), nil
	}

	result := DropResult{Source: d.source}
	if d.destination != nil {
		dest := *d.destination
		result.Destination = &dest
	}
	d.phase = Idle
	d.destination = nil
	return result, nil
}

// Cancel abandons the drag.
func (d *Drag) Cancel() error {
	if d.phase == Idle {
		return fmt.Errorf("%w: cancel while idle", ErrInvalidTransition)
	}
	d.phase = Idle
	d.destination = nil
	return nil
}
