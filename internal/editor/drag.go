package editor

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/ordering"
)

// DragStart picks up the section at index in the current order.
func (e *Editor) DragStart(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.drag != nil && e.drag.Phase() != ordering.Idle {
		return fmt.Errorf("%w: a drag is already in progress", ordering.ErrInvalidTransition)
	}
	d := e.order.Drag()
	if err := d.Start(index); err != nil {
		return err
	}
	e.drag = d
	return nil
}

// DragHover moves the pointer over the slot at index.
func (e *Editor) DragHover(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.drag == nil {
		return fmt.Errorf("%w: no drag in progress", ordering.ErrInvalidTransition)
	}
	return e.drag.Hover(index)
}

// DragLeave moves the pointer outside the list.
func (e *Editor) DragLeave() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.drag == nil {
		return fmt.Errorf("%w: no drag in progress", ordering.ErrInvalidTransition)
	}
	return e.drag.Leave()
}

// DragCancel abandons the drag in progress.
func (e *Editor) DragCancel() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.drag == nil {
		return fmt.Errorf("%w: no drag in progress", ordering.ErrInvalidTransition)
	}
	err := e.drag.Cancel()
	e.drag = nil
	return err
}

// DragDrop finishes the drag in progress and applies it to the order.
func (e *Editor) DragDrop() (ordering.DropResult, error) {
	var result ordering.DropResult
	err := e.mutate(func() error {
		if e.drag == nil {
			return fmt.Errorf("%w: no drag in progress", ordering.ErrInvalidTransition)
		}
		r, err := e.drag.Drop()
		if err != nil {
			return err
		}
		e.drag = nil
		result = r
		return e.order.Apply(r)
	})
	return result, err
}
