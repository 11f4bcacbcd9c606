package canvas

import (
	"image"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"watermark-studio/internal/interaction"
)

// Background fills the view around the fitted image.
var Background = color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xFF}

// PointerHandler receives pointer gestures in canvas coordinates.
type PointerHandler interface {
	PointerDown(x, y float64) interaction.State
	PointerMove(x, y float64)
	PointerUp()
}

// Preview shows the current composite fitted to the widget over a
// checkerboard and forwards presses and drags to a PointerHandler.
type Preview struct {
	widget.BaseWidget

	raster *fynecanvas.Raster

	mu        sync.Mutex
	img       *image.RGBA
	highlight *Overlay
	view      viewport
	viewOK    bool
	// pixelScale is raster pixels per fyne unit, learned from the last draw.
	pixelScale float32

	handler PointerHandler
	pressed bool

	onDragState func(interaction.State)
}

var (
	_ desktop.Mouseable = (*Preview)(nil)
	_ fyne.Draggable    = (*Preview)(nil)
)

// NewPreview creates an empty preview that reports gestures to h.
func NewPreview(h PointerHandler) *Preview {
	p := &Preview{handler: h, pixelScale: 1}
	p.raster = fynecanvas.NewRaster(p.draw)
	p.raster.ScaleMode = fynecanvas.ImageScaleSmooth
	p.raster.SetMinSize(fyne.NewSize(500, 500))
	p.ExtendBaseWidget(p)
	return p
}

// SetImage replaces the displayed composite. A nil image shows the empty
// background.
func (p *Preview) SetImage(img *image.RGBA) {
	p.mu.Lock()
	p.img = img
	p.mu.Unlock()
	p.raster.Refresh()
}

// SetHighlight outlines r, in canvas coordinates. An empty r clears it.
func (p *Preview) SetHighlight(r image.Rectangle, col color.RGBA) {
	p.mu.Lock()
	if r.Empty() {
		p.highlight = nil
	} else {
		p.highlight = &Overlay{Rect: r, Color: col, Style: LineDashed, Width: 2}
	}
	p.mu.Unlock()
	p.raster.Refresh()
}

// OnDragState registers a callback for the state returned by each press.
func (p *Preview) OnDragState(fn func(interaction.State)) {
	p.onDragState = fn
}

// CanvasPoint converts a widget position to canvas coordinates. ok is false
// when nothing has been drawn yet.
func (p *Preview) CanvasPoint(pos fyne.Position) (x, y float64, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.viewOK {
		return 0, 0, false
	}
	pt := p.view.pointToImage(float64(pos.X*p.pixelScale), float64(pos.Y*p.pixelScale))
	return pt.X, pt.Y, true
}

// MouseDown starts a gesture on primary button presses.
func (p *Preview) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary || p.handler == nil {
		return
	}
	x, y, ok := p.CanvasPoint(ev.Position)
	if !ok {
		return
	}
	p.pressed = true
	st := p.handler.PointerDown(x, y)
	if p.onDragState != nil {
		p.onDragState(st)
	}
}

// MouseUp ends the gesture.
func (p *Preview) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	p.release()
}

// Dragged moves the grabbed element.
func (p *Preview) Dragged(ev *fyne.DragEvent) {
	if !p.pressed || p.handler == nil {
		return
	}
	x, y, ok := p.CanvasPoint(ev.Position)
	if !ok {
		return
	}
	p.handler.PointerMove(x, y)
}

// DragEnd ends the gesture. Fyne may deliver it as well as MouseUp.
func (p *Preview) DragEnd() {
	p.release()
}

func (p *Preview) release() {
	if !p.pressed {
		return
	}
	p.pressed = false
	if p.handler != nil {
		p.handler.PointerUp()
	}
}

// CreateRenderer implements fyne.Widget.
func (p *Preview) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.raster)
}

// draw renders the view at w x h raster pixels.
func (p *Preview) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	fill(output, output.Bounds(), Background)

	p.mu.Lock()
	defer p.mu.Unlock()

	if size := p.Size(); size.Width > 0 {
		p.pixelScale = float32(w) / size.Width
	}
	if p.img == nil {
		p.viewOK = false
		return output
	}
	p.view, p.viewOK = newViewport(p.img.Bounds().Size(), image.Pt(w, h))
	if !p.viewOK {
		return output
	}
	drawCheckerboard(output, p.view.dest, CheckerSquare)
	drawScaled(output, p.view.dest, p.img)
	if p.highlight.Visible() {
		drawOutline(output, p.highlight, p.view.rectToView(p.highlight.Rect))
	}
	return output
}
