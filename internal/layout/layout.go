// Package layout measures watermark text and resolves where the text and logo
// land on the canvas.
package layout

import (
	"image"

	"golang.org/x/image/font"
)

// TextBox returns the ink bounds of text drawn with face when the dot sits at
// the origin. Min is usually negative in Y (glyphs rise above the baseline).
// An empty string has an empty box.
func TextBox(text string, face font.Face) image.Rectangle {
	if text == "" || face == nil {
		return image.Rectangle{}
	}
	b, _ := font.BoundString(face, text)
	r := image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil())
	if r.Empty() {
		return image.Rectangle{}
	}
	return r
}

// Measure returns the width and height of the rendered glyph box of text.
// Both are non-negative and zero for empty text.
func Measure(text string, face font.Face) image.Point {
	return TextBox(text, face).Size()
}

// Placement is either automatic or an explicit canvas coordinate.
// The zero value is Auto.
type Placement struct {
	explicit bool
	pt       image.Point
}

// Auto returns the automatic placement.
func Auto() Placement {
	return Placement{}
}

// At returns an explicit placement at (x, y).
func At(x, y int) Placement {
	return Placement{explicit: true, pt: image.Pt(x, y)}
}

// IsAuto reports whether the placement defers to the layout policy.
func (p Placement) IsAuto() bool {
	return !p.explicit
}

// Point returns the explicit coordinate; ok is false for Auto.
func (p Placement) Point() (pt image.Point, ok bool) {
	return p.pt, p.explicit
}

func (p Placement) String() string {
	if !p.explicit {
		return "auto"
	}
	return p.pt.String()
}

// Policy chooses where automatically placed text goes.
type Policy int

const (
	// Center puts the text box in the middle of the canvas.
	Center Policy = iota
	// BottomRight insets the text box from the bottom-right corner.
	BottomRight
)

// ParsePolicy maps a config value to a Policy. Unknown values select Center.
func ParsePolicy(s string) Policy {
	switch s {
	case "bottom-right", "bottomright", "bottom_right":
		return BottomRight
	default:
		return Center
	}
}

func (p Policy) String() string {
	if p == BottomRight {
		return "bottom-right"
	}
	return "center"
}

// Layout resolves automatic placements for one canvas.
type Layout struct {
	Policy Policy
	// Margin is the inset used by BottomRight.
	Margin int
}

// ResolveText returns the top-left of the text box. Explicit placements are
// returned unchanged.
func (l Layout) ResolveText(p Placement, content, canvas image.Point) image.Point {
	if pt, ok := p.Point(); ok {
		return pt
	}
	if l.Policy == BottomRight {
		return image.Pt(canvas.X-content.X-l.Margin, canvas.Y-content.Y-l.Margin)
	}
	return image.Pt((canvas.X-content.X)/2, (canvas.Y-content.Y)/2)
}

// ResolveLogoCenter returns the center point of the logo. Auto centers the
// logo on the canvas.
func ResolveLogoCenter(p Placement, canvas image.Point) image.Point {
	if pt, ok := p.Point(); ok {
		return pt
	}
	return image.Pt(canvas.X/2, canvas.Y/2)
}

// LogoRect returns the rectangle occupied by a logo of the given size
// centered at c.
func LogoRect(c, size image.Point) image.Rectangle {
	tl := c.Sub(size.Div(2))
	return image.Rectangle{Min: tl, Max: tl.Add(size)}
}

// Overflows reports whether r extends past a canvas of the given size.
func Overflows(r image.Rectangle, canvas image.Point) bool {
	if r.Empty() {
		return false
	}
	return r.Min.X < 0 || r.Min.Y < 0 || r.Max.X > canvas.X || r.Max.Y > canvas.Y
}

// OverflowGuard reports an overflow only the first time it happens until it
// is reset.
type OverflowGuard struct {
	warned bool
}

// Check returns true when r overflows and no overflow has been reported since
// the last Reset.
func (g *OverflowGuard) Check(r image.Rectangle, canvas image.Point) bool {
	if g.warned || !Overflows(r, canvas) {
		return false
	}
	g.warned = true
	return true
}

// Reset re-arms the guard.
func (g *OverflowGuard) Reset() {
	g.warned = false
}

// Warned reports whether an overflow has been reported.
func (g *OverflowGuard) Warned() bool {
	return g.warned
}
