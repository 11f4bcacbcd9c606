// Package history keeps the linear undo/redo stacks of editing state.
package history

import (
	"image"

	wmimage "watermark-studio/internal/image"
	"watermark-studio/internal/layout"
	"watermark-studio/internal/watermark"
)

// Snapshot is a committed editing state. The logo bitmap is owned by the
// snapshot once captured; use Clone to get an independent copy.
type Snapshot struct {
	Style  watermark.Style
	Text   layout.Placement
	LogoAt layout.Placement
	Logo   *image.RGBA
	// LogoPath is where Logo was loaded from, empty for in-memory logos.
	LogoPath  string
	LogoScale int
}

// Clone returns a deep copy, including the logo pixels.
func (s Snapshot) Clone() Snapshot {
	s.Logo = wmimage.Clone(s.Logo)
	return s
}

// Equal reports whether two snapshots describe the same state.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.Style == o.Style &&
		s.Text == o.Text &&
		s.LogoAt == o.LogoAt &&
		s.LogoScale == o.LogoScale &&
		s.LogoPath == o.LogoPath &&
		wmimage.Equal(s.Logo, o.Logo)
}

// Manager holds the undo and redo stacks. The top of the undo stack is always
// the current state; the bottom entry is the baseline and is never undone.
type Manager struct {
	undo []Snapshot
	redo []Snapshot
}

// New returns an empty history.
func New() *Manager {
	return &Manager{
		undo: make([]Snapshot, 0, 64),
		redo: make([]Snapshot, 0, 64),
	}
}

// Commit records s as the current state and discards the redo stack.
func (m *Manager) Commit(s Snapshot) {
	m.undo = append(m.undo, s.Clone())
	clear(m.redo)
	m.redo = m.redo[:0]
}

// Undo steps back one state and returns the state that is now current.
// With only the baseline left it does nothing and returns false.
func (m *Manager) Undo() (Snapshot, bool) {
	if len(m.undo) <= 1 {
		return Snapshot{}, false
	}
	top := m.undo[len(m.undo)-1]
	m.undo[len(m.undo)-1] = Snapshot{}
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, top)
	return m.undo[len(m.undo)-1].Clone(), true
}

// Redo re-applies the most recently undone state and returns it.
func (m *Manager) Redo() (Snapshot, bool) {
	if len(m.redo) == 0 {
		return Snapshot{}, false
	}
	s := m.redo[len(m.redo)-1]
	m.redo[len(m.redo)-1] = Snapshot{}
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = append(m.undo, s.Clone())
	return s, true
}

// Current returns a copy of the top of the undo stack.
func (m *Manager) Current() (Snapshot, bool) {
	if len(m.undo) == 0 {
		return Snapshot{}, false
	}
	return m.undo[len(m.undo)-1].Clone(), true
}

// CanUndo reports whether Undo would change anything.
func (m *Manager) CanUndo() bool {
	return len(m.undo) > 1
}

// CanRedo reports whether Redo would change anything.
func (m *Manager) CanRedo() bool {
	return len(m.redo) > 0
}

// Len returns the sizes of the undo and redo stacks.
func (m *Manager) Len() (undo, redo int) {
	return len(m.undo), len(m.redo)
}

// Reset drops all history.
func (m *Manager) Reset() {
	clear(m.undo)
	clear(m.redo)
	m.undo = m.undo[:0]
	m.redo = m.redo[:0]
}
