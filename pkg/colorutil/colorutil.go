// Package colorutil provides shared color utilities for the watermark studio.
package colorutil

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Colors used by the application.
var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}

	// CheckerLight and CheckerDark alternate in the preview background so
	// transparent areas of the composite stay visible.
	CheckerLight = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	CheckerDark  = color.RGBA{R: 220, G: 220, B: 220, A: 255}

	// Highlight outlines the element being dragged in the preview.
	Highlight = color.RGBA{R: 0, G: 160, B: 255, A: 255}
)

// ToRGB converts any color to straight (non-premultiplied) 8-bit RGB with
// full alpha. Translucent colors are un-premultiplied first so a picker value
// keeps its hue.
func ToRGB(c color.Color) color.RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: 255}
}

// Hex formats the RGB part of c as "#rrggbb".
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses "#rrggbb", "rrggbb" or the short "#rgb" form.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: want 3 or 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
