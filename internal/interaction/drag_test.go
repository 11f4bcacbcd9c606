package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"watermark-studio/pkg/geometry"
)

var logoBox = geometry.RectAround(geometry.Pt(250, 250), 100, 100)

func TestDownOnLogoGrabsLogo(t *testing.T) {
	var m Machine
	assert.Equal(t, DraggingLogo, m.Down(geometry.Pt(260, 240), logoBox, true))
	assert.True(t, m.State().Dragging())
}

func TestDownOnLogoEdgeIsInclusive(t *testing.T) {
	var m Machine
	assert.Equal(t, DraggingLogo, m.Down(geometry.Pt(300, 200), logoBox, true))
}

func TestDownOutsideLogoGrabsText(t *testing.T) {
	var m Machine
	assert.Equal(t, DraggingText, m.Down(geometry.Pt(10, 10), logoBox, true))
}

func TestDownWithoutLogoGrabsText(t *testing.T) {
	var m Machine
	// Even inside where a logo box would be.
	assert.Equal(t, DraggingText, m.Down(geometry.Pt(250, 250), logoBox, false))

	m.Reset()
	assert.Equal(t, DraggingText, m.Down(geometry.Pt(10, 10), geometry.Rect{}, false))
}

func TestMoveTracksPointerOnlyWhileDragging(t *testing.T) {
	var m Machine
	_, ok := m.Move(geometry.Pt(1, 1))
	assert.False(t, ok)

	m.Down(geometry.Pt(5, 5), geometry.Rect{}, false)
	st, ok := m.Move(geometry.Pt(40, 50))
	assert.True(t, ok)
	assert.Equal(t, DraggingText, st)
	assert.Equal(t, geometry.Pt(40, 50), m.Last())
	assert.Equal(t, geometry.Pt(5, 5), m.Start())
}

func TestUpCommitsAndReturnsToIdle(t *testing.T) {
	var m Machine
	m.Down(geometry.Pt(250, 250), logoBox, true)
	m.Move(geometry.Pt(100, 100))

	ended, commit := m.Up()
	assert.True(t, commit)
	assert.Equal(t, DraggingLogo, ended)
	assert.Equal(t, Idle, m.State())
}

func TestUpWhileIdleIsNoop(t *testing.T) {
	var m Machine
	ended, commit := m.Up()
	assert.False(t, commit)
	assert.Equal(t, Idle, ended)
	assert.Equal(t, Idle, m.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "dragging-text", DraggingText.String())
	assert.Equal(t, "dragging-logo", DraggingLogo.String())
}
