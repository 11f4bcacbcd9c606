package history

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watermark-studio/internal/fonts"
	"watermark-studio/internal/layout"
	"watermark-studio/internal/watermark"
)

func snap(text string, x, y int) Snapshot {
	return Snapshot{
		Style: watermark.Style{
			Text:    text,
			Font:    fonts.Arial,
			Size:    30,
			Color:   color.RGBA{R: 255, G: 255, B: 255, A: 255},
			Opacity: 128,
		},
		Text:      layout.At(x, y),
		LogoScale: 30,
	}
}

func logo(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestUndoOnBaselineIsNoop(t *testing.T) {
	m := New()
	_, ok := m.Undo()
	assert.False(t, ok)

	m.Commit(snap("base", 0, 0))
	_, ok = m.Undo()
	assert.False(t, ok)
	assert.False(t, m.CanUndo())

	undo, redo := m.Len()
	assert.Equal(t, 1, undo)
	assert.Equal(t, 0, redo)
}

func TestCommitUndoRedoRoundTrip(t *testing.T) {
	s1, s2 := snap("one", 10, 10), snap("two", 20, 20)
	m := New()
	m.Commit(s1)
	m.Commit(s2)
	require.True(t, m.CanUndo())

	got, ok := m.Undo()
	require.True(t, ok)
	assert.True(t, got.Equal(s1))
	assert.True(t, m.CanRedo())

	got, ok = m.Redo()
	require.True(t, ok)
	assert.True(t, got.Equal(s2))

	cur, ok := m.Current()
	require.True(t, ok)
	assert.True(t, cur.Equal(s2))
	assert.False(t, m.CanRedo())
}

func TestCommitClearsRedo(t *testing.T) {
	m := New()
	m.Commit(snap("a", 0, 0))
	m.Commit(snap("b", 1, 1))
	_, ok := m.Undo()
	require.True(t, ok)
	require.True(t, m.CanRedo())

	m.Commit(snap("c", 2, 2))
	assert.False(t, m.CanRedo())
	_, ok = m.Redo()
	assert.False(t, ok)

	cur, _ := m.Current()
	assert.Equal(t, "c", cur.Style.Text)
}

func TestUndoTopTracksCurrentState(t *testing.T) {
	m := New()
	states := []Snapshot{snap("a", 0, 0), snap("b", 1, 0), snap("c", 2, 0), snap("d", 3, 0)}
	for _, s := range states {
		m.Commit(s)
		cur, _ := m.Current()
		assert.True(t, cur.Equal(s))
	}
	for i := len(states) - 2; i >= 0; i-- {
		got, ok := m.Undo()
		require.True(t, ok)
		cur, _ := m.Current()
		assert.True(t, got.Equal(states[i]))
		assert.True(t, cur.Equal(states[i]))
	}
	_, ok := m.Undo()
	assert.False(t, ok)
}

func TestCommitDeepCopiesLogo(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	s := snap("logo", 0, 0)
	s.Logo = logo(red)

	m := New()
	m.Commit(s)

	// Mutating the caller's bitmap must not reach the stored snapshot.
	s.Logo.SetRGBA(0, 0, color.RGBA{G: 255, A: 255})
	cur, _ := m.Current()
	assert.Equal(t, red, cur.Logo.RGBAAt(0, 0))

	// Nor may mutating a returned snapshot.
	cur.Logo.SetRGBA(1, 1, color.RGBA{B: 255, A: 255})
	again, _ := m.Current()
	assert.Equal(t, red, again.Logo.RGBAAt(1, 1))
	assert.NotSame(t, cur.Logo, again.Logo)
}

func TestRedoDeepCopiesOntoUndo(t *testing.T) {
	m := New()
	m.Commit(snap("a", 0, 0))
	withLogo := snap("b", 0, 0)
	withLogo.Logo = logo(color.RGBA{R: 255, A: 255})
	m.Commit(withLogo)

	m.Undo()
	got, ok := m.Redo()
	require.True(t, ok)
	got.Logo.SetRGBA(0, 0, color.RGBA{})

	cur, _ := m.Current()
	assert.Equal(t, uint8(255), cur.Logo.RGBAAt(0, 0).A)
}

func TestSnapshotEqual(t *testing.T) {
	a := snap("x", 1, 2)
	b := a.Clone()
	assert.True(t, a.Equal(b))

	b.Text = layout.Auto()
	assert.False(t, a.Equal(b))

	c := a.Clone()
	c.Logo = logo(color.RGBA{A: 255})
	assert.False(t, a.Equal(c))

	d := c.Clone()
	d.LogoPath = "logo.png"
	assert.False(t, c.Equal(d))
}

func TestUndoRestoresLogoPath(t *testing.T) {
	m := New()
	first := snap("a", 0, 0)
	first.Logo = logo(color.RGBA{R: 255, A: 255})
	first.LogoPath = "/tmp/first.png"
	m.Commit(first)
	second := first.Clone()
	second.Style.Text = "b"
	m.Commit(second)

	got, ok := m.Undo()
	require.True(t, ok)
	assert.Equal(t, "/tmp/first.png", got.LogoPath)
	assert.NotSame(t, first.Logo, got.Logo)

	got, ok = m.Redo()
	require.True(t, ok)
	assert.Equal(t, "/tmp/first.png", got.LogoPath)
}

func TestReset(t *testing.T) {
	m := New()
	m.Commit(snap("a", 0, 0))
	m.Commit(snap("b", 0, 0))
	m.Undo()

	m.Reset()
	undo, redo := m.Len()
	assert.Zero(t, undo)
	assert.Zero(t, redo)
	_, ok := m.Current()
	assert.False(t, ok)
}
