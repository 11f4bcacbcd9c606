package layout

import (
	"image"
	"testing"

	"github.com/golang/freetype/truetype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

func goFace(t *testing.T, size float64) font.Face {
	t.Helper()
	f, err := truetype.Parse(goregular.TTF)
	require.NoError(t, err)
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72})
}

func TestMeasureNonNegative(t *testing.T) {
	faces := map[string]font.Face{
		"basic":     basicfont.Face7x13,
		"goregular": goFace(t, 30),
	}
	texts := []string{"", " ", "A", "DRAFT", "Your Watermark", "gjpqy", "   "}

	for name, face := range faces {
		for _, text := range texts {
			sz := Measure(text, face)
			assert.GreaterOrEqual(t, sz.X, 0, "%s %q", name, text)
			assert.GreaterOrEqual(t, sz.Y, 0, "%s %q", name, text)
		}
	}
}

func TestMeasureEmptyIsZero(t *testing.T) {
	assert.Equal(t, image.Point{}, Measure("", basicfont.Face7x13))
	assert.Equal(t, image.Rectangle{}, TextBox("", goFace(t, 20)))
}

func TestMeasureGrowsWithText(t *testing.T) {
	face := goFace(t, 30)
	short := Measure("DR", face)
	long := Measure("DRAFT", face)
	assert.Greater(t, long.X, short.X)
	assert.Greater(t, short.Y, 0)
}

func TestMeasureGrowsWithSize(t *testing.T) {
	small := Measure("Watermark", goFace(t, 12))
	large := Measure("Watermark", goFace(t, 48))
	assert.Greater(t, large.X, small.X)
	assert.Greater(t, large.Y, small.Y)
}

func TestPlacementVariant(t *testing.T) {
	var zero Placement
	assert.True(t, zero.IsAuto())
	assert.True(t, Auto().IsAuto())

	origin := At(0, 0)
	assert.False(t, origin.IsAuto())
	pt, ok := origin.Point()
	assert.True(t, ok)
	assert.Equal(t, image.Pt(0, 0), pt)
	assert.NotEqual(t, Auto(), origin)

	_, ok = Auto().Point()
	assert.False(t, ok)
	assert.Equal(t, "auto", Auto().String())
	assert.Equal(t, "(3,4)", At(3, 4).String())
}

func TestResolveTextCentered(t *testing.T) {
	l := Layout{Policy: Center}
	got := l.ResolveText(Auto(), image.Pt(100, 20), image.Pt(500, 300))
	assert.Equal(t, image.Pt(200, 140), got)

	assert.Equal(t, image.Pt(7, 9), l.ResolveText(At(7, 9), image.Pt(100, 20), image.Pt(500, 300)))
}

func TestResolveTextBottomRight(t *testing.T) {
	l := Layout{Policy: BottomRight, Margin: 30}
	got := l.ResolveText(Auto(), image.Pt(100, 20), image.Pt(500, 300))
	assert.Equal(t, image.Pt(370, 250), got)
}

func TestAutoTextStaysInBounds(t *testing.T) {
	face := goFace(t, 30)
	canvases := []image.Point{{500, 500}, {800, 600}, {1920, 1080}, {300, 60}}
	for _, policy := range []Policy{Center, BottomRight} {
		l := Layout{Policy: policy, Margin: 10}
		for _, c := range canvases {
			sz := Measure("Your Watermark", face)
			require.True(t, sz.X <= c.X && sz.Y <= c.Y)
			pos := l.ResolveText(Auto(), sz, c)
			r := image.Rectangle{Min: pos, Max: pos.Add(sz)}
			assert.False(t, Overflows(r, c), "%v %v", policy, c)
		}
	}
}

func TestResolveLogoCenter(t *testing.T) {
	assert.Equal(t, image.Pt(400, 300), ResolveLogoCenter(Auto(), image.Pt(800, 600)))
	assert.Equal(t, image.Pt(250, 250), ResolveLogoCenter(At(250, 250), image.Pt(800, 600)))
}

func TestLogoRect(t *testing.T) {
	assert.Equal(t, image.Rect(200, 200, 300, 300), LogoRect(image.Pt(250, 250), image.Pt(100, 100)))
	assert.Equal(t, image.Rect(249, 249, 252, 252), LogoRect(image.Pt(250, 250), image.Pt(3, 3)))
}

func TestParsePolicy(t *testing.T) {
	assert.Equal(t, BottomRight, ParsePolicy("bottom-right"))
	assert.Equal(t, Center, ParsePolicy("center"))
	assert.Equal(t, Center, ParsePolicy("nonsense"))
	assert.Equal(t, "bottom-right", BottomRight.String())
}

func TestOverflows(t *testing.T) {
	c := image.Pt(100, 100)
	assert.False(t, Overflows(image.Rect(0, 0, 100, 100), c))
	assert.True(t, Overflows(image.Rect(-1, 0, 10, 10), c))
	assert.True(t, Overflows(image.Rect(90, 90, 101, 95), c))
	assert.False(t, Overflows(image.Rectangle{}, c))
}

func TestOverflowGuardWarnsOnce(t *testing.T) {
	var g OverflowGuard
	c := image.Pt(100, 100)
	out := image.Rect(80, 80, 140, 120)

	assert.False(t, g.Check(image.Rect(0, 0, 10, 10), c))
	assert.True(t, g.Check(out, c))
	assert.False(t, g.Check(out, c))
	assert.False(t, g.Check(image.Rect(-5, 0, 5, 5), c))
	assert.True(t, g.Warned())

	g.Reset()
	assert.False(t, g.Warned())
	assert.True(t, g.Check(out, c))
}
