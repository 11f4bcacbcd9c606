// Package canvas provides the preview widget that shows the composite and
// turns pointer gestures into canvas coordinates.
package canvas

import (
	"image"
	"image/color"
)

// LineStyle selects how an overlay outline is stroked.
type LineStyle int

const (
	LineSolid LineStyle = iota
	LineDashed
)

// Overlay is an outline drawn over the preview, in canvas coordinates.
type Overlay struct {
	Rect  image.Rectangle
	Color color.RGBA
	Style LineStyle
	// Width is the stroke width in view pixels.
	Width int
}

// Visible reports whether there is anything to draw.
func (o *Overlay) Visible() bool {
	return o != nil && !o.Rect.Empty()
}
