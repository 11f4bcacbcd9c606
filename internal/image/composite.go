package image

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Composite stacks overlay layers on top of a base image.
type Composite struct {
	Base   *image.RGBA
	Layers []*CompositeLayer
}

// CompositeLayer is one overlay and where its top-left lands on the base.
type CompositeLayer struct {
	Name    string
	Image   image.Image
	Offset  image.Point
	Visible bool
}

// NewComposite creates a composite over base. base is only read.
func NewComposite(base *image.RGBA) *Composite {
	return &Composite{Base: base}
}

// AddLayer appends an overlay. Later layers are drawn above earlier ones.
func (c *Composite) AddLayer(name string, img image.Image, offset image.Point) *CompositeLayer {
	cl := &CompositeLayer{Name: name, Image: img, Offset: offset, Visible: true}
	c.Layers = append(c.Layers, cl)
	return cl
}

// Render returns a new image: a copy of the base with every visible layer
// alpha-composited over it in order. Pixels of a layer that fall outside the
// base are clipped.
func (c *Composite) Render() *image.RGBA {
	if c.Base == nil {
		return nil
	}
	result := Clone(c.Base)
	for _, cl := range c.Layers {
		if cl == nil || cl.Image == nil || !cl.Visible {
			continue
		}
		sb := cl.Image.Bounds()
		dr := image.Rectangle{Min: cl.Offset, Max: cl.Offset.Add(sb.Size())}
		xdraw.Draw(result, dr, cl.Image, sb.Min, xdraw.Over)
	}
	return result
}
