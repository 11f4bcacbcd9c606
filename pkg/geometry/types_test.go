package geometry

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectContainsIsInclusive(t *testing.T) {
	r := RectAround(Pt(250, 250), 100, 100)

	assert.True(t, r.Contains(Pt(260, 240)))
	assert.True(t, r.Contains(Pt(200, 200)))
	assert.True(t, r.Contains(Pt(300, 300)))
	assert.False(t, r.Contains(Pt(301, 250)))
	assert.False(t, r.Contains(Pt(10, 10)))
}

func TestFromImageRect(t *testing.T) {
	r := FromImageRect(image.Rect(10, 20, 40, 60))
	assert.Equal(t, Rect{X: 10, Y: 20, Width: 30, Height: 40}, r)
	assert.Equal(t, Pt(25, 40), r.Center())
	assert.False(t, r.Empty())
	assert.True(t, Rect{}.Empty())
}

func TestComposeAppliesRightOperandFirst(t *testing.T) {
	tr := Translation(5, 7).Compose(Scale(2, 3))
	p := tr.Apply(Pt(1, 1))
	assert.InDelta(t, 7, p.X, 1e-9)
	assert.InDelta(t, 10, p.Y, 1e-9)
}

func TestInverseRoundTrip(t *testing.T) {
	tr := Translation(12, -4).Compose(Scale(0.5, 0.5))
	inv, ok := tr.Inverse()
	require.True(t, ok)

	p := Pt(123, 45)
	back := inv.Apply(tr.Apply(p))
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)
}

func TestInverseSingular(t *testing.T) {
	_, ok := Scale(0, 1).Inverse()
	assert.False(t, ok)
}

func TestFitTransformCentersContent(t *testing.T) {
	tr, s := FitTransform(Size{Width: 800, Height: 600}, Size{Width: 400, Height: 400})
	assert.InDelta(t, 0.5, s, 1e-9)

	topLeft := tr.Apply(Pt(0, 0))
	assert.InDelta(t, 0, topLeft.X, 1e-9)
	assert.InDelta(t, 50, topLeft.Y, 1e-9)

	bottomRight := tr.Apply(Pt(800, 600))
	assert.InDelta(t, 400, bottomRight.X, 1e-9)
	assert.InDelta(t, 350, bottomRight.Y, 1e-9)
}

func TestFitTransformDegenerate(t *testing.T) {
	tr, s := FitTransform(Size{}, Size{Width: 10, Height: 10})
	assert.Equal(t, Identity(), tr)
	assert.Equal(t, 1.0, s)
}

func TestPointFloor(t *testing.T) {
	assert.Equal(t, image.Pt(3, -2), Pt(3.9, -1.1).Floor())
}
