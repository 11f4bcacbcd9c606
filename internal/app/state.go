// Package app holds the editing session: the loaded images, the watermark
// style and placements, the drag state machine, undo history and the events
// the UI listens to.
package app

import (
	"fmt"
	goimage "image"
	"image/color"
	"io"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"watermark-studio/internal/config"
	"watermark-studio/internal/fonts"
	"watermark-studio/internal/history"
	"watermark-studio/internal/image"
	"watermark-studio/internal/interaction"
	"watermark-studio/internal/layout"
	"watermark-studio/internal/watermark"
	"watermark-studio/pkg/colorutil"
	"watermark-studio/pkg/geometry"
)

// Options seeds a new session.
type Options struct {
	Style     watermark.Style
	LogoScale int
	// MaxCanvas downscales uploaded images whose longer side exceeds it.
	MaxCanvas int
}

// OptionsFromConfig converts config defaults into session options.
func OptionsFromConfig(cfg *config.Config) Options {
	id, _ := fonts.ParseID(cfg.Defaults.Font)
	return Options{
		Style: watermark.Style{
			Text:    cfg.Defaults.Text,
			Font:    id,
			Size:    cfg.Defaults.FontSize,
			Color:   cfg.Defaults.Color,
			Opacity: cfg.Defaults.Opacity,
		},
		LogoScale: cfg.Defaults.LogoScale,
		MaxCanvas: cfg.MaxCanvas,
	}
}

// Session is the single owner of all editing state.
//
// Except for On and Emit, a Session must only be used from one goroutine,
// normally the UI event goroutine.
type Session struct {
	ID string

	opts       Options
	log        *zap.Logger
	compositor *watermark.Compositor
	history    *history.Manager
	drag       interaction.Machine
	overflow   layout.OverflowGuard

	canvas     *goimage.RGBA
	canvasPath string
	logo       *goimage.RGBA
	logoPath   string
	style      watermark.Style
	text       layout.Placement
	logoAt     layout.Placement
	logoScale  int
	last       *watermark.Result

	mu        sync.RWMutex
	listeners map[EventType][]EventListener
}

// NewSession creates an empty session that renders with c.
func NewSession(c *watermark.Compositor, opts Options, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.LogoScale <= 0 {
		opts.LogoScale = 100
	}
	id := uuid.NewString()
	return &Session{
		ID:         id,
		opts:       opts,
		log:        log.With(zap.String("session", id)),
		compositor: c,
		history:    history.New(),
		style:      opts.Style,
		logoScale:  opts.LogoScale,
		listeners:  make(map[EventType][]EventListener),
	}
}

// New builds a session and its font resolver and compositor from cfg.
func New(cfg *config.Config, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	dirs := append(append([]string{}, cfg.FontDirs...), fonts.DefaultDirs()...)
	resolver, err := fonts.NewResolver(dirs, cfg.FontCacheSize, log.Named("fonts"))
	if err != nil {
		return nil, fmt.Errorf("failed to create font resolver: %w", err)
	}
	l := layout.Layout{Policy: layout.ParsePolicy(cfg.TextPlacement), Margin: cfg.TextMargin}
	return NewSession(watermark.NewCompositor(resolver, l), OptionsFromConfig(cfg), log.Named("session")), nil
}

// On registers an event listener for the specified event type.
func (s *Session) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *Session) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

func (s *Session) notify(n Notice) {
	fields := []zap.Field{zap.String("title", n.Title), zap.String("message", n.Message)}
	if n.Err != nil {
		fields = append(fields, zap.Error(n.Err))
	}
	switch n.Level {
	case NoticeError:
		s.log.Error("notice", fields...)
	case NoticeWarning:
		s.log.Warn("notice", fields...)
	default:
		s.log.Info("notice", fields...)
	}
	s.Emit(EventNotice, n)
}

// LoadImage makes the image at path the canvas. On failure the session is
// left unchanged.
func (s *Session) LoadImage(path string) error {
	layer, err := image.Load(path)
	if err != nil {
		s.notify(Notice{Level: NoticeError, Title: "Error", Message: loadFailedMessage("image", err), Err: err})
		return err
	}
	s.setCanvas(layer)
	return nil
}

// ReadImage is LoadImage for an already opened stream; name is used for
// logging only.
func (s *Session) ReadImage(r io.Reader, name string) error {
	layer, err := image.Decode(r)
	if err != nil {
		s.notify(Notice{Level: NoticeError, Title: "Error", Message: loadFailedMessage("image", err), Err: err})
		return err
	}
	layer.Path = name
	s.setCanvas(layer)
	return nil
}

// SetImage makes img the canvas.
func (s *Session) SetImage(img goimage.Image) {
	s.setCanvas(&image.Layer{Image: image.ToRGBA(img)})
}

// setCanvas replaces the canvas and starts a fresh edit: placements and the
// logo are cleared, history restarts from a new baseline and the cut-off
// warning is re-armed.
func (s *Session) setCanvas(layer *image.Layer) {
	orig := layer.Image.Bounds().Size()
	layer.Image = image.Fit(layer.Image, s.opts.MaxCanvas)

	s.canvas = layer.Image
	s.canvasPath = layer.Path
	s.text = layout.Auto()
	s.logoAt = layout.Auto()
	s.logo = nil
	s.logoPath = ""
	s.last = nil
	s.drag.Reset()
	s.overflow.Reset()
	s.history.Reset()

	s.log.Info("image loaded",
		zap.String("path", layer.Path),
		zap.String("format", layer.Format),
		zap.Int("width", layer.Width()),
		zap.Int("height", layer.Height()),
		zap.Bool("downscaled", orig != layer.Image.Bounds().Size()))

	s.Emit(EventImageLoaded, layer)
	s.commit()
	s.render()
}

// LoadLogo loads the logo at path.
func (s *Session) LoadLogo(path string) error {
	layer, err := image.Load(path)
	if err != nil {
		s.notify(Notice{Level: NoticeError, Title: "Error", Message: loadFailedMessage("logo", err), Err: err})
		return err
	}
	s.setLogo(layer)
	return nil
}

// ReadLogo is LoadLogo for an already opened stream.
func (s *Session) ReadLogo(r io.Reader, name string) error {
	layer, err := image.Decode(r)
	if err != nil {
		s.notify(Notice{Level: NoticeError, Title: "Error", Message: loadFailedMessage("logo", err), Err: err})
		return err
	}
	layer.Path = name
	s.setLogo(layer)
	return nil
}

// SetLogo replaces the logo with a copy of img, centered on the canvas.
func (s *Session) SetLogo(img goimage.Image) {
	s.setLogo(&image.Layer{Image: image.ToRGBA(img)})
}

func (s *Session) setLogo(layer *image.Layer) {
	s.logo = layer.Image
	s.logoPath = layer.Path
	s.logoAt = layout.Auto()
	s.log.Info("logo loaded",
		zap.String("path", layer.Path),
		zap.Int("width", layer.Width()),
		zap.Int("height", layer.Height()))
	s.Emit(EventLogoLoaded, layer)
	s.edited()
}

// SetText changes the watermark text. Empty text hides the text layer.
func (s *Session) SetText(text string) {
	if text == s.style.Text {
		return
	}
	s.style.Text = text
	s.styleChanged()
}

// SetFont selects a font by display name. Unknown names select Arial.
func (s *Session) SetFont(name string) {
	id, ok := fonts.ParseID(name)
	if !ok {
		s.log.Warn("unknown font, using Arial", zap.String("font", name))
	}
	if id == s.style.Font {
		return
	}
	s.style.Font = id
	s.styleChanged()
}

// SetFontSize changes the text size in points.
func (s *Session) SetFontSize(size float64) {
	if size <= 0 || size == s.style.Size {
		return
	}
	s.style.Size = size
	s.styleChanged()
}

// SetColor changes the text color. Only the RGB part of c is used.
func (s *Session) SetColor(c color.Color) {
	rgb := colorutil.ToRGB(c)
	if rgb == s.style.Color {
		return
	}
	s.style.Color = rgb
	s.styleChanged()
}

// SetOpacity changes the text opacity, 0 invisible to 255 opaque.
func (s *Session) SetOpacity(opacity uint8) {
	if opacity == s.style.Opacity {
		return
	}
	s.style.Opacity = opacity
	s.styleChanged()
}

// SetLogoScale changes the logo size as a percentage of its natural size.
func (s *Session) SetLogoScale(percent int) {
	if percent <= 0 || percent == s.logoScale {
		return
	}
	s.logoScale = percent
	s.edited()
}

func (s *Session) styleChanged() {
	s.Emit(EventStyleChanged, s.style)
	s.edited()
}

// edited commits and re-renders after a change. Before an image is loaded
// there is nothing to render and history has not started.
func (s *Session) edited() {
	if s.canvas == nil {
		return
	}
	s.commit()
	s.render()
}

// Apply commits and renders the current watermark on request.
func (s *Session) Apply() error {
	if err := s.checkApplicable(s.style.Text); err != nil {
		return err
	}
	s.commit()
	s.render()
	return nil
}

// ApplyText sets the watermark text and applies it in one step. Empty text
// is refused and leaves the session unchanged.
func (s *Session) ApplyText(text string) error {
	if err := s.checkApplicable(text); err != nil {
		return err
	}
	if text != s.style.Text {
		s.style.Text = text
		s.Emit(EventStyleChanged, s.style)
	}
	s.commit()
	s.render()
	return nil
}

func (s *Session) checkApplicable(text string) error {
	if s.canvas == nil {
		s.notify(Notice{Level: NoticeWarning, Title: "Warning", Message: msgNoImage, Err: ErrNoImage})
		return ErrNoImage
	}
	if text == "" {
		s.notify(Notice{Level: NoticeWarning, Title: "Warning", Message: msgNoText, Err: ErrNoText})
		return ErrNoText
	}
	return nil
}

// PointerDown starts a drag at canvas coordinates (x, y). Presses inside the
// logo box grab the logo; every other press grabs the text.
func (s *Session) PointerDown(x, y float64) interaction.State {
	if s.canvas == nil {
		return interaction.Idle
	}
	box := geometry.FromImageRect(s.compositor.LogoRect(s.scene()))
	st := s.drag.Down(geometry.Pt(x, y), box, s.logo != nil)
	s.log.Debug("drag started", zap.Stringer("state", st), zap.Float64("x", x), zap.Float64("y", y))
	s.Emit(EventDragChanged, st)
	return st
}

// PointerMove moves the element being dragged to (x, y) and re-renders
// without committing.
func (s *Session) PointerMove(x, y float64) {
	st, ok := s.drag.Move(geometry.Pt(x, y))
	if !ok {
		return
	}
	p := geometry.Pt(x, y).Floor()
	switch st {
	case interaction.DraggingLogo:
		s.logoAt = layout.At(p.X, p.Y)
	case interaction.DraggingText:
		s.text = layout.At(p.X, p.Y)
	}
	s.render()
}

// PointerUp ends a drag and commits the result. It does nothing while idle.
func (s *Session) PointerUp() {
	ended, ok := s.drag.Up()
	if !ok {
		return
	}
	s.log.Debug("drag ended", zap.Stringer("state", ended),
		zap.Stringer("text", s.text), zap.Stringer("logo", s.logoAt))
	s.Emit(EventDragChanged, interaction.Idle)
	s.commit()
}

// PlaceText sets the text placement directly and commits.
func (s *Session) PlaceText(p layout.Placement) {
	if s.canvas == nil || p == s.text {
		return
	}
	s.text = p
	s.commit()
	s.render()
}

// PlaceLogo sets the logo placement directly and commits. It does nothing
// without a logo.
func (s *Session) PlaceLogo(p layout.Placement) {
	if s.canvas == nil || s.logo == nil || p == s.logoAt {
		return
	}
	s.logoAt = p
	s.commit()
	s.render()
}

// Undo restores the previous committed state. It reports whether anything
// changed.
func (s *Session) Undo() bool {
	if s.drag.State().Dragging() {
		return false
	}
	snap, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.restore(snap)
	return true
}

// Redo re-applies the most recently undone state.
func (s *Session) Redo() bool {
	if s.drag.State().Dragging() {
		return false
	}
	snap, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.restore(snap)
	return true
}

func (s *Session) restore(snap history.Snapshot) {
	s.style = snap.Style
	s.text = snap.Text
	s.logoAt = snap.LogoAt
	s.logo = snap.Logo
	s.logoPath = snap.LogoPath
	s.logoScale = snap.LogoScale
	s.Emit(EventStyleChanged, s.style)
	s.emitHistory()
	s.render()
}

// Save writes the last composite to path as PNG. Any extension other than
// ".png" is replaced.
func (s *Session) Save(path string) error {
	if err := s.CheckSavable(); err != nil {
		return err
	}
	path = image.EnsurePNGExt(path)
	if err := image.SavePNG(path, s.last.Image); err != nil {
		return s.saveFailed(err)
	}
	s.saved(path)
	return nil
}

// Export writes the last composite as PNG to w; name identifies the target
// in logs and events.
func (s *Session) Export(w io.Writer, name string) error {
	if err := s.CheckSavable(); err != nil {
		return err
	}
	if err := image.EncodePNG(w, s.last.Image); err != nil {
		return s.saveFailed(err)
	}
	s.saved(name)
	return nil
}

// CheckSavable reports, and tells the user, why there is nothing to save.
func (s *Session) CheckSavable() error {
	if s.canvas == nil {
		s.notify(Notice{Level: NoticeWarning, Title: "Warning", Message: msgNoImage, Err: ErrNoImage})
		return ErrNoImage
	}
	if !s.last.HasWatermark() {
		s.notify(Notice{Level: NoticeWarning, Title: "Warning", Message: msgNoWatermark, Err: ErrNoWatermark})
		return ErrNoWatermark
	}
	return nil
}

func (s *Session) saveFailed(err error) error {
	err = fmt.Errorf("failed to save image: %w", err)
	s.notify(Notice{Level: NoticeError, Title: "Error", Message: saveFailedMessage(err), Err: err})
	return err
}

func (s *Session) saved(name string) {
	s.notify(Notice{Level: NoticeInfo, Title: "Success", Message: msgSaved})
	s.Emit(EventSaved, name)
}

func (s *Session) snapshot() history.Snapshot {
	return history.Snapshot{
		Style:     s.style,
		Text:      s.text,
		LogoAt:    s.logoAt,
		Logo:      s.logo,
		LogoPath:  s.logoPath,
		LogoScale: s.logoScale,
	}
}

func (s *Session) commit() {
	s.history.Commit(s.snapshot())
	s.emitHistory()
}

func (s *Session) emitHistory() {
	s.Emit(EventHistoryChanged, HistoryState{CanUndo: s.history.CanUndo(), CanRedo: s.history.CanRedo()})
}

func (s *Session) scene() watermark.Scene {
	return watermark.Scene{
		Canvas:    s.canvas,
		Style:     s.style,
		Text:      s.text,
		Logo:      s.logo,
		LogoAt:    s.logoAt,
		LogoScale: s.logoScale,
	}
}

// render recomputes the composite from the current state and publishes it.
func (s *Session) render() {
	res := s.compositor.Render(s.scene())
	if res == nil {
		return
	}
	s.last = res
	if s.overflow.Check(res.TextRect, res.Image.Bounds().Size()) {
		s.notify(Notice{Level: NoticeWarning, Title: "Warning", Message: msgCutOff})
	}
	s.Emit(EventRendered, res.Image)
}

// HasImage reports whether a canvas is loaded.
func (s *Session) HasImage() bool { return s.canvas != nil }

// HasLogo reports whether a logo is loaded.
func (s *Session) HasLogo() bool { return s.logo != nil }

// LogoPath returns where the current logo was loaded from. It is empty
// without a logo or for a logo set from memory.
func (s *Session) LogoPath() string { return s.logoPath }

// Canvas returns the loaded canvas. Callers must not modify it.
func (s *Session) Canvas() *goimage.RGBA { return s.canvas }

// CanvasPath returns where the canvas was loaded from.
func (s *Session) CanvasPath() string { return s.canvasPath }

// Composite returns the most recent render, or nil.
func (s *Session) Composite() *goimage.RGBA {
	if s.last == nil {
		return nil
	}
	return s.last.Image
}

// Style returns the current watermark style.
func (s *Session) Style() watermark.Style { return s.style }

// TextPlacement returns the text placement.
func (s *Session) TextPlacement() layout.Placement { return s.text }

// LogoPlacement returns the logo placement.
func (s *Session) LogoPlacement() layout.Placement { return s.logoAt }

// LogoScale returns the logo scale percentage.
func (s *Session) LogoScale() int { return s.logoScale }

// DragState returns the drag state machine's state.
func (s *Session) DragState() interaction.State { return s.drag.State() }

// CanUndo reports whether Undo would change anything.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether Redo would change anything.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// TextRect returns the canvas rectangle of the text in the last render.
func (s *Session) TextRect() goimage.Rectangle {
	if s.last == nil {
		return goimage.Rectangle{}
	}
	return s.last.TextRect
}

// LogoRect returns the canvas rectangle of the logo in the last render.
func (s *Session) LogoRect() goimage.Rectangle {
	if s.last == nil {
		return goimage.Rectangle{}
	}
	return s.last.LogoRect
}

// OverflowWarned reports whether the cut-off warning has been shown for the
// current image.
func (s *Session) OverflowWarned() bool { return s.overflow.Warned() }
