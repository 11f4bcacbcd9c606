// Package interaction implements the pointer drag state machine that moves
// the text and logo watermarks.
package interaction

import (
	"watermark-studio/pkg/geometry"
)

// State is the drag state.
type State int

const (
	Idle State = iota
	DraggingText
	DraggingLogo
)

func (s State) String() string {
	switch s {
	case DraggingText:
		return "dragging-text"
	case DraggingLogo:
		return "dragging-logo"
	default:
		return "idle"
	}
}

// Dragging reports whether an element is being dragged.
func (s State) Dragging() bool {
	return s != Idle
}

// Machine tracks one drag gesture at a time. The zero value is Idle.
//
// There is no cancel: releasing the pointer always ends the drag with a
// commit.
type Machine struct {
	state State
	start geometry.Point2D
	last  geometry.Point2D
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Down starts a drag at p. When a logo is present and p lies within its box
// (edges inclusive) the logo is grabbed; any other press grabs the text,
// including presses on empty canvas.
func (m *Machine) Down(p geometry.Point2D, logo geometry.Rect, hasLogo bool) State {
	if hasLogo && logo.Contains(p) {
		m.state = DraggingLogo
	} else {
		m.state = DraggingText
	}
	m.start, m.last = p, p
	return m.state
}

// Move records the pointer position. It returns the state that owns the
// movement, and false while idle.
func (m *Machine) Move(p geometry.Point2D) (State, bool) {
	if m.state == Idle {
		return Idle, false
	}
	m.last = p
	return m.state, true
}

// Up ends the drag. It returns the state that was active and true when a
// commit is due, or false when the machine was already idle.
func (m *Machine) Up() (State, bool) {
	if m.state == Idle {
		return Idle, false
	}
	ended := m.state
	m.Reset()
	return ended, true
}

// Last returns the most recent pointer position of the current gesture.
func (m *Machine) Last() geometry.Point2D {
	return m.last
}

// Start returns where the current gesture began.
func (m *Machine) Start() geometry.Point2D {
	return m.start
}

// Reset returns to Idle without reporting a commit.
func (m *Machine) Reset() {
	m.state = Idle
	m.start = geometry.Point2D{}
	m.last = geometry.Point2D{}
}
