package mainwindow

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"go.uber.org/zap"

	"watermark-studio/internal/app"
	"watermark-studio/internal/config"
	wmimage "watermark-studio/internal/image"
	"watermark-studio/internal/layout"
	"watermark-studio/internal/version"
	"watermark-studio/pkg/colorutil"
	"watermark-studio/ui/prefs"
)

func (mw *MainWindow) onUploadImage() {
	mw.openImage(prefs.KeyImageDir, mw.session.ReadImage)
}

func (mw *MainWindow) onUploadLogo() {
	mw.openImage(prefs.KeyLogoDir, mw.session.ReadLogo)
}

// openImage shows a file dialog and hands the chosen file to load. Load
// failures are reported by the session as notices.
func (mw *MainWindow) openImage(dirKey string, load func(r io.Reader, name string) error) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		mw.saveLastDir(dirKey, path)
		if err := load(reader, path); err != nil {
			mw.log.Debug("load failed", zap.String("path", path), zap.Error(err))
		}
	}, mw.Window)

	fd.SetFilter(storage.NewExtensionFileFilter(wmimage.SupportedFormats()))
	if loc := mw.lastDir(dirKey); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onApply() {
	_ = mw.session.ApplyText(mw.controls.text.Text)
}

func (mw *MainWindow) onPickColor() {
	picker := dialog.NewColorPicker("Pick Color", "Watermark text color", func(c color.Color) {
		mw.session.SetColor(c)
	}, mw.Window)
	picker.Advanced = true
	picker.SetColor(mw.session.Style().Color)
	picker.Show()
}

func (mw *MainWindow) onSave() {
	if err := mw.session.CheckSavable(); err != nil {
		return
	}
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		// The dialog has already created path; drop it if the extension changes.
		if wmimage.EnsurePNGExt(path) != path {
			_ = os.Remove(path)
		}
		mw.saveLastDir(prefs.KeySaveDir, path)
		_ = mw.session.Save(path)
	}, mw.Window)

	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
	fd.SetFileName(suggestedName(mw.session.CanvasPath()))
	if loc := mw.lastDir(prefs.KeySaveDir); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// suggestedName derives the default output name from the input path.
func suggestedName(canvasPath string) string {
	base := strings.TrimSuffix(filepath.Base(canvasPath), filepath.Ext(canvasPath))
	if canvasPath == "" || base == "" || base == "." {
		return "watermarked.png"
	}
	return base + "_watermarked.png"
}

// onResetText returns the text to its automatic position.
func (mw *MainWindow) onResetText() {
	mw.session.PlaceText(layout.Auto())
}

// onResetLogo re-centers the logo.
func (mw *MainWindow) onResetLogo() {
	mw.session.PlaceLogo(layout.Auto())
}

func (mw *MainWindow) onUndo() {
	if mw.session.Undo() {
		mw.updateStatus("Undo")
	}
}

func (mw *MainWindow) onRedo() {
	if mw.session.Redo() {
		mw.updateStatus("Redo")
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+version.AppName,
		fmt.Sprintf("%s v%s\n\n"+
			"Add text and logo watermarks to images.\n"+
			"Drag the text or logo on the preview to move it.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.AppName, version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}

// showNotice presents a session notice as a blocking dialog.
func (mw *MainWindow) showNotice(n app.Notice) {
	if n.Level == app.NoticeError {
		dialog.ShowError(errors.New(n.Message), mw.Window)
	} else {
		dialog.ShowInformation(n.Title, n.Message, mw.Window)
	}
	mw.updateStatus(strings.SplitN(n.Message, "\n", 2)[0])
}

// lastDir returns the last used directory for key as a ListableURI, or nil.
func (mw *MainWindow) lastDir(key string) fyne.ListableURI {
	if mw.prefs == nil {
		return nil
	}
	path := mw.prefs.String(key)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir remembers the directory of filePath under key.
func (mw *MainWindow) saveLastDir(key, filePath string) {
	if mw.prefs != nil {
		mw.prefs.SetString(key, filepath.Dir(filePath))
	}
}

// restoreStyle seeds the session with the style saved by the last run.
// Nothing is loaded yet, so these edits neither render nor commit.
func (mw *MainWindow) restoreStyle() {
	p := mw.prefs
	if p == nil {
		return
	}
	s := mw.session
	style := s.Style()

	s.SetText(p.StringWithFallback(prefs.KeyText, style.Text))
	s.SetFont(p.StringWithFallback(prefs.KeyFont, style.Font.String()))
	s.SetFontSize(clamp(p.FloatWithFallback(prefs.KeyFontSize, style.Size), config.MinFontSize, config.MaxFontSize))
	if c, err := colorutil.ParseHex(p.StringWithFallback(prefs.KeyColor, colorutil.Hex(style.Color))); err == nil {
		s.SetColor(c)
	}
	s.SetOpacity(uint8(clamp(float64(p.IntWithFallback(prefs.KeyOpacity, int(style.Opacity))), 0, 255)))
	s.SetLogoScale(int(clamp(float64(p.IntWithFallback(prefs.KeyLogoScale, s.LogoScale())), config.MinLogoScale, config.MaxLogoScale)))
}

// SavePreferences stores the current style for the next run.
func (mw *MainWindow) SavePreferences() {
	p := mw.prefs
	if p == nil {
		return
	}
	style := mw.session.Style()
	p.SetString(prefs.KeyText, style.Text)
	p.SetString(prefs.KeyFont, style.Font.String())
	p.SetFloat(prefs.KeyFontSize, style.Size)
	p.SetString(prefs.KeyColor, colorutil.Hex(style.Color))
	p.SetInt(prefs.KeyOpacity, int(style.Opacity))
	p.SetInt(prefs.KeyLogoScale, mw.session.LogoScale())
	if err := p.Save(); err != nil {
		mw.log.Warn("failed to save preferences", zap.String("path", p.Path()), zap.Error(err))
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
