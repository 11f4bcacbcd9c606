// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"image"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"watermark-studio/internal/app"
	wmimage "watermark-studio/internal/image"
	"watermark-studio/internal/interaction"
	"watermark-studio/internal/version"
	"watermark-studio/internal/watermark"
	"watermark-studio/pkg/colorutil"
	"watermark-studio/ui/canvas"
	"watermark-studio/ui/prefs"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app     fyne.App
	session *app.Session
	prefs   *prefs.Prefs
	log     *zap.Logger

	preview   *canvas.Preview
	controls  *controls
	statusBar *widget.Label

	undoItem *fyne.MenuItem
	redoItem *fyne.MenuItem
}

// New creates the main window for session. Preferences are read from p and
// written back when the window closes.
func New(fyneApp fyne.App, session *app.Session, p *prefs.Prefs, log *zap.Logger) *MainWindow {
	if log == nil {
		log = zap.NewNop()
	}
	win := fyneApp.NewWindow(version.AppName)

	mw := &MainWindow{
		Window:  win,
		app:     fyneApp,
		session: session,
		prefs:   p,
		log:     log,
	}

	mw.restoreStyle()
	mw.setupUI()
	mw.setupMenus()
	mw.setupShortcuts()
	mw.setupEventHandlers()
	mw.updateHistory(app.HistoryState{})

	win.SetOnClosed(mw.SavePreferences)
	win.Resize(fyne.NewSize(1000, 640))
	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.preview = canvas.NewPreview(mw.session)
	mw.controls = newControls(mw)
	mw.statusBar = widget.NewLabel("Upload an image to begin")

	split := container.NewHSplit(
		container.NewVScroll(mw.controls.container()),
		mw.preview,
	)
	split.SetOffset(0.3)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil,
		nil,
		split,
	)
	mw.SetContent(content)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	openItem := fyne.NewMenuItem("Open Image...", mw.onUploadImage)
	openItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierShortcutDefault}
	saveItem := fyne.NewMenuItem("Save Image...", mw.onSave)
	saveItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault}

	fileMenu := fyne.NewMenu("File",
		openItem,
		fyne.NewMenuItem("Open Logo...", mw.onUploadLogo),
		fyne.NewMenuItemSeparator(),
		saveItem,
	)

	mw.undoItem = fyne.NewMenuItem("Undo", mw.onUndo)
	mw.undoItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}
	mw.redoItem = fyne.NewMenuItem("Redo", mw.onRedo)
	mw.redoItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault}

	editMenu := fyne.NewMenu("Edit",
		mw.undoItem,
		mw.redoItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Add Watermark", mw.onApply),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reset Text Position", mw.onResetText),
		fyne.NewMenuItem("Reset Logo Position", mw.onResetLogo),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	// Fyne adds Quit to the first menu.
	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, helpMenu))
}

// setupShortcuts binds the keyboard shortcuts on the window canvas so they
// also work where the platform does not render a menu bar.
func (mw *MainWindow) setupShortcuts() {
	bind := func(key fyne.KeyName, fn func()) {
		mw.Canvas().AddShortcut(
			&desktop.CustomShortcut{KeyName: key, Modifier: fyne.KeyModifierShortcutDefault},
			func(fyne.Shortcut) { fn() },
		)
	}
	bind(fyne.KeyZ, mw.onUndo)
	bind(fyne.KeyY, mw.onRedo)
	bind(fyne.KeyS, mw.onSave)
	bind(fyne.KeyO, mw.onUploadImage)
}

// setupEventHandlers registers for session events.
func (mw *MainWindow) setupEventHandlers() {
	mw.session.On(app.EventImageLoaded, func(data interface{}) {
		if layer, ok := data.(*wmimage.Layer); ok {
			name := filepath.Base(layer.Path)
			if layer.Path == "" {
				name = "untitled"
			}
			mw.SetTitle(version.AppName + " - " + name)
			mw.controls.setLogoName("", false)
			mw.updateStatus(fmt.Sprintf("Loaded %s (%dx%d)", name, layer.Width(), layer.Height()))
		}
	})

	mw.session.On(app.EventLogoLoaded, func(data interface{}) {
		if layer, ok := data.(*wmimage.Layer); ok {
			mw.controls.setLogoName(layer.Path, true)
			mw.updateStatus(fmt.Sprintf("Logo loaded (%dx%d)", layer.Width(), layer.Height()))
		}
	})

	mw.session.On(app.EventRendered, func(data interface{}) {
		mw.preview.SetImage(mw.session.Composite())
		mw.updateHighlight(mw.session.DragState())
	})

	mw.session.On(app.EventStyleChanged, func(data interface{}) {
		if style, ok := data.(watermark.Style); ok {
			mw.controls.sync(style, mw.session.LogoScale())
		}
	})

	mw.session.On(app.EventHistoryChanged, func(data interface{}) {
		if hs, ok := data.(app.HistoryState); ok {
			mw.updateHistory(hs)
			mw.controls.setLogoName(mw.session.LogoPath(), mw.session.HasLogo())
		}
	})

	mw.session.On(app.EventDragChanged, func(data interface{}) {
		if st, ok := data.(interaction.State); ok {
			mw.updateHighlight(st)
		}
	})

	mw.session.On(app.EventNotice, func(data interface{}) {
		if n, ok := data.(app.Notice); ok {
			mw.showNotice(n)
		}
	})

	mw.session.On(app.EventSaved, func(data interface{}) {
		mw.updateStatus(fmt.Sprintf("Saved %v", data))
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) updateHistory(hs app.HistoryState) {
	mw.controls.setHistory(hs)
	mw.undoItem.Disabled = !hs.CanUndo
	mw.redoItem.Disabled = !hs.CanRedo
	if menu := mw.MainMenu(); menu != nil {
		menu.Refresh()
	}
}

// updateHighlight outlines the element being dragged.
func (mw *MainWindow) updateHighlight(st interaction.State) {
	switch st {
	case interaction.DraggingLogo:
		mw.preview.SetHighlight(mw.session.LogoRect(), colorutil.Highlight)
	case interaction.DraggingText:
		mw.preview.SetHighlight(mw.session.TextRect(), colorutil.Highlight)
	default:
		mw.preview.SetHighlight(image.Rectangle{}, colorutil.Highlight)
	}
}
