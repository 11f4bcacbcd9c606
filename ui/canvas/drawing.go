package canvas

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"watermark-studio/pkg/colorutil"
	"watermark-studio/pkg/geometry"
)

// CheckerSquare is the side of one checkerboard square in view pixels.
const CheckerSquare = 20

// viewport maps canvas coordinates to view pixels and back. The canvas is
// fitted into the view with its aspect ratio preserved and centered.
type viewport struct {
	toView  geometry.AffineTransform
	toImage geometry.AffineTransform
	scale   float64
	dest    image.Rectangle
}

func newViewport(canvas image.Point, view image.Point) (viewport, bool) {
	if canvas.X <= 0 || canvas.Y <= 0 || view.X <= 0 || view.Y <= 0 {
		return viewport{}, false
	}
	t, s := geometry.FitTransform(
		geometry.Size{Width: float64(canvas.X), Height: float64(canvas.Y)},
		geometry.Size{Width: float64(view.X), Height: float64(view.Y)},
	)
	inv, ok := t.Inverse()
	if !ok {
		return viewport{}, false
	}
	v := viewport{toView: t, toImage: inv, scale: s}
	v.dest = v.rectToView(image.Rectangle{Max: canvas})
	return v, true
}

// pointToImage maps a view pixel to canvas coordinates.
func (v viewport) pointToImage(x, y float64) geometry.Point2D {
	return v.toImage.Apply(geometry.Pt(x, y))
}

// rectToView maps a canvas rectangle to view pixels, rounding outward.
func (v viewport) rectToView(r image.Rectangle) image.Rectangle {
	tl := v.toView.Apply(geometry.Pt(float64(r.Min.X), float64(r.Min.Y)))
	br := v.toView.Apply(geometry.Pt(float64(r.Max.X), float64(r.Max.Y)))
	out := image.Rectangle{Min: tl.Floor(), Max: br.Floor()}
	if float64(out.Max.X) < br.X {
		out.Max.X++
	}
	if float64(out.Max.Y) < br.Y {
		out.Max.Y++
	}
	return out
}

// fill paints r with a solid color.
func fill(output *image.RGBA, r image.Rectangle, col color.RGBA) {
	draw.Draw(output, r.Intersect(output.Bounds()), image.NewUniform(col), image.Point{}, draw.Src)
}

// drawCheckerboard fills r with the transparency checkerboard. The pattern
// is anchored at r.Min so it stays put when the view is resized.
func drawCheckerboard(output *image.RGBA, r image.Rectangle, square int) {
	if square <= 0 {
		square = CheckerSquare
	}
	clip := r.Intersect(output.Bounds())
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		row := (y - r.Min.Y) / square
		for x := clip.Min.X; x < clip.Max.X; x++ {
			col := colorutil.CheckerLight
			if ((x-r.Min.X)/square+row)%2 == 1 {
				col = colorutil.CheckerDark
			}
			output.SetRGBA(x, y, col)
		}
	}
}

// drawScaled draws src over output, scaled into dest.
func drawScaled(output *image.RGBA, dest image.Rectangle, src image.Image) {
	if dest.Size() == src.Bounds().Size() {
		draw.Draw(output, dest, src, src.Bounds().Min, draw.Over)
		return
	}
	xdraw.ApproxBiLinear.Scale(output, dest, src, src.Bounds(), xdraw.Over, nil)
}

// drawOutline strokes the inside edge of r. Dashes are phased from r.Min, so
// the top-left corner is always drawn.
func drawOutline(output *image.RGBA, o *Overlay, r image.Rectangle) {
	width := o.Width
	if width < 1 {
		width = 1
	}
	bounds := output.Bounds()
	on := func(x, y int) bool {
		return o.Style == LineSolid || (x-r.Min.X+y-r.Min.Y)%8 < 4
	}
	set := func(x, y int) {
		if (image.Point{X: x, Y: y}).In(bounds) && on(x, y) {
			output.SetRGBA(x, y, o.Color)
		}
	}
	for t := 0; t < width; t++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			set(x, r.Min.Y+t)
			set(x, r.Max.Y-1-t)
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			set(r.Min.X+t, y)
			set(r.Max.X-1-t, y)
		}
	}
}
