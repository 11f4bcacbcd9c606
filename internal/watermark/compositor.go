package watermark

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"watermark-studio/internal/fonts"
	wmimage "watermark-studio/internal/image"
	"watermark-studio/internal/layout"
)

// FaceResolver supplies font faces to the compositor.
type FaceResolver interface {
	Resolve(id fonts.ID, size float64) *fonts.Handle
}

// Compositor draws the base, text and logo layers of a Scene. It is
// deterministic: identical scenes render identical pixels.
type Compositor struct {
	fonts  FaceResolver
	layout layout.Layout
}

// NewCompositor creates a compositor that resolves faces through r and places
// automatic text according to l.
func NewCompositor(r FaceResolver, l layout.Layout) *Compositor {
	return &Compositor{fonts: r, layout: l}
}

// Layout returns the placement rules in use.
func (c *Compositor) Layout() layout.Layout {
	return c.layout
}

// Render composites s. It returns nil when the scene has no canvas.
func (c *Compositor) Render(s Scene) *Result {
	if s.Canvas == nil {
		return nil
	}
	comp := wmimage.NewComposite(s.Canvas)
	res := &Result{}

	if s.Style.Text != "" {
		overlay, rect, fallback := c.textLayer(s)
		comp.AddLayer("text", overlay, image.Point{})
		res.TextRect = rect
		res.FontFallback = fallback
	}

	if s.Logo != nil {
		rect := c.LogoRect(s)
		comp.AddLayer("logo", wmimage.Resize(s.Logo, rect.Size()), rect.Min)
		res.LogoRect = rect
	}

	res.Image = comp.Render()
	return res
}

// TextRect returns where the text box would be drawn, without drawing it.
func (c *Compositor) TextRect(s Scene) image.Rectangle {
	if s.Canvas == nil || s.Style.Text == "" {
		return image.Rectangle{}
	}
	h := c.fonts.Resolve(s.Style.Font, s.Style.Size)
	return c.placeText(s, layout.Measure(s.Style.Text, h.Face))
}

// LogoRect returns the box the scaled logo occupies: its center plus or minus
// half the scaled size. It is empty without a logo.
func (c *Compositor) LogoRect(s Scene) image.Rectangle {
	if s.Canvas == nil || s.Logo == nil {
		return image.Rectangle{}
	}
	size := wmimage.ScaledSize(s.Logo, s.LogoScale)
	center := layout.ResolveLogoCenter(s.LogoAt, s.Canvas.Bounds().Size())
	return layout.LogoRect(center, size)
}

func (c *Compositor) placeText(s Scene, size image.Point) image.Rectangle {
	pos := c.layout.ResolveText(s.Text, size, s.Canvas.Bounds().Size())
	return image.Rectangle{Min: pos, Max: pos.Add(size)}
}

// textLayer draws the text on a transparent canvas-sized overlay so that the
// top-left of its glyph box lands on the resolved position.
func (c *Compositor) textLayer(s Scene) (*image.RGBA, image.Rectangle, bool) {
	h := c.fonts.Resolve(s.Style.Font, s.Style.Size)
	box := layout.TextBox(s.Style.Text, h.Face)
	rect := c.placeText(s, box.Size())

	overlay := image.NewRGBA(s.Canvas.Bounds())
	ink := color.NRGBA{R: s.Style.Color.R, G: s.Style.Color.G, B: s.Style.Color.B, A: s.Style.Opacity}
	d := font.Drawer{
		Dst:  overlay,
		Src:  image.NewUniform(ink),
		Face: h.Face,
		Dot:  fixed.P(rect.Min.X-box.Min.X, rect.Min.Y-box.Min.Y),
	}
	d.DrawString(s.Style.Text)
	return overlay, rect, h.Fallback
}
