// Package watermark renders a canvas with its text and logo watermark layers.
package watermark

import (
	"image"
	"image/color"

	"watermark-studio/internal/fonts"
	"watermark-studio/internal/layout"
)

// Style is the text watermark's appearance. It is a plain value; copying it
// copies everything.
type Style struct {
	Text string
	Font fonts.ID
	// Size is in points.
	Size float64
	// Color is the RGB of the text. Its alpha is ignored; Opacity applies.
	Color   color.RGBA
	Opacity uint8
}

// Scene is everything a render reads. Canvas and Logo are never modified.
type Scene struct {
	Canvas *image.RGBA
	Style  Style
	// Text is the top-left of the text box.
	Text layout.Placement
	Logo *image.RGBA
	// LogoAt is the center of the logo.
	LogoAt    layout.Placement
	LogoScale int
}

// Result is a rendered composite and where each layer ended up.
type Result struct {
	Image *image.RGBA
	// TextRect is empty when no text was drawn.
	TextRect image.Rectangle
	// LogoRect is empty when no logo was drawn.
	LogoRect     image.Rectangle
	FontFallback bool
}

// HasWatermark reports whether any watermark layer was drawn.
func (r *Result) HasWatermark() bool {
	return r != nil && (!r.TextRect.Empty() || !r.LogoRect.Empty())
}
