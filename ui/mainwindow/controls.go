package mainwindow

import (
	"fmt"
	"image/color"
	"path/filepath"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"watermark-studio/internal/app"
	"watermark-studio/internal/config"
	"watermark-studio/internal/fonts"
	"watermark-studio/internal/watermark"
)

// controls is the side panel of buttons, inputs and sliders.
type controls struct {
	text         *widget.Entry
	font         *widget.Select
	size         *widget.Slider
	sizeLabel    *widget.Label
	swatch       *fynecanvas.Rectangle
	opacity      *widget.Slider
	opacityLabel *widget.Label
	logo         *widget.Slider
	logoLabel    *widget.Label
	logoName     *widget.Label
	undo         *widget.Button
	redo         *widget.Button

	box *fyne.Container
}

func newControls(mw *MainWindow) *controls {
	c := &controls{}
	s := mw.session
	style := s.Style()

	c.text = widget.NewEntry()
	c.text.SetPlaceHolder("Watermark text")
	c.text.SetText(style.Text)
	c.text.OnSubmitted = func(string) { mw.onApply() }

	c.font = widget.NewSelect(fonts.Names(), func(name string) { s.SetFont(name) })
	c.font.SetSelected(style.Font.String())

	c.sizeLabel = widget.NewLabel("")
	c.size = newIntSlider(config.MinFontSize, config.MaxFontSize, c.sizeLabel, "Font size")
	c.size.SetValue(style.Size)
	c.size.OnChangeEnded = func(v float64) { s.SetFontSize(v) }

	c.swatch = fynecanvas.NewRectangle(style.Color)
	c.swatch.SetMinSize(fyne.NewSize(24, 24))
	c.swatch.StrokeColor = color.Gray{Y: 0x80}
	c.swatch.StrokeWidth = 1

	c.opacityLabel = widget.NewLabel("")
	c.opacity = newIntSlider(0, 255, c.opacityLabel, "Opacity")
	c.opacity.SetValue(float64(style.Opacity))
	c.opacity.OnChangeEnded = func(v float64) { s.SetOpacity(uint8(v)) }

	c.logoName = widget.NewLabel("")
	c.setLogoName(s.LogoPath(), s.HasLogo())

	c.logoLabel = widget.NewLabel("")
	c.logo = newIntSlider(config.MinLogoScale, config.MaxLogoScale, c.logoLabel, "Logo size %")
	c.logo.SetValue(float64(s.LogoScale()))
	c.logo.OnChangeEnded = func(v float64) { s.SetLogoScale(int(v)) }

	c.undo = widget.NewButton("Undo", mw.onUndo)
	c.redo = widget.NewButton("Redo", mw.onRedo)

	c.box = container.NewVBox(
		widget.NewButton("Upload Image", mw.onUploadImage),
		widget.NewSeparator(),
		widget.NewLabel("Watermark Text"),
		c.text,
		c.font,
		c.sizeLabel,
		c.size,
		container.NewHBox(widget.NewButton("Pick Color", mw.onPickColor), c.swatch),
		c.opacityLabel,
		c.opacity,
		widget.NewSeparator(),
		widget.NewButton("Upload Logo", mw.onUploadLogo),
		c.logoName,
		c.logoLabel,
		c.logo,
		widget.NewSeparator(),
		widget.NewButton("Add Watermark", mw.onApply),
		widget.NewButton("Save Image", mw.onSave),
		container.NewGridWithColumns(2, c.undo, c.redo),
	)
	return c
}

// newIntSlider creates a whole-number slider whose label tracks its value
// while dragging. Sessions are only updated from OnChangeEnded.
func newIntSlider(lo, hi float64, label *widget.Label, title string) *widget.Slider {
	sl := widget.NewSlider(lo, hi)
	sl.Step = 1
	sl.OnChanged = func(v float64) {
		label.SetText(fmt.Sprintf("%s: %d", title, int(v)))
	}
	label.SetText(fmt.Sprintf("%s: %d", title, int(lo)))
	return sl
}

func (c *controls) container() fyne.CanvasObject {
	return c.box
}

// sync moves the controls to style, e.g. after an undo. Session setters
// ignore unchanged values, so the callbacks this triggers are harmless.
func (c *controls) sync(style watermark.Style, logoScale int) {
	if c.text.Text != style.Text {
		c.text.SetText(style.Text)
	}
	c.font.SetSelected(style.Font.String())
	c.size.SetValue(style.Size)
	c.opacity.SetValue(float64(style.Opacity))
	c.logo.SetValue(float64(logoScale))
	c.swatch.FillColor = style.Color
	c.swatch.Refresh()
}

// setLogoName shows which logo file is current.
func (c *controls) setLogoName(path string, hasLogo bool) {
	switch {
	case !hasLogo:
		c.logoName.SetText("No logo")
	case path == "":
		c.logoName.SetText("Logo: untitled")
	default:
		c.logoName.SetText("Logo: " + filepath.Base(path))
	}
}

func (c *controls) setHistory(hs app.HistoryState) {
	if hs.CanUndo {
		c.undo.Enable()
	} else {
		c.undo.Disable()
	}
	if hs.CanRedo {
		c.redo.Enable()
	} else {
		c.redo.Disable()
	}
}
