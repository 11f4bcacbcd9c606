package app

import (
	"errors"
	"fmt"
)

// EventType identifies different session events.
type EventType int

const (
	// EventImageLoaded carries the *image.Layer that became the canvas.
	EventImageLoaded EventType = iota
	// EventLogoLoaded carries the *image.Layer of the new logo.
	EventLogoLoaded
	// EventStyleChanged carries the new watermark.Style.
	EventStyleChanged
	// EventRendered carries the new composite as *image.RGBA.
	EventRendered
	// EventHistoryChanged carries a HistoryState.
	EventHistoryChanged
	// EventDragChanged carries the interaction.State after a pointer event.
	EventDragChanged
	// EventNotice carries a Notice for the user.
	EventNotice
	// EventSaved carries the path or URI the composite was written to.
	EventSaved
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// HistoryState tells the UI which of undo and redo are available.
type HistoryState struct {
	CanUndo bool
	CanRedo bool
}

// NoticeLevel is the severity of a Notice.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeWarning
	NoticeError
)

func (l NoticeLevel) String() string {
	switch l {
	case NoticeWarning:
		return "warning"
	case NoticeError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a message the UI shows as a blocking dialog.
type Notice struct {
	Level   NoticeLevel
	Title   string
	Message string
	// Err is the underlying error, if any.
	Err error
}

// Precondition failures. Operations that hit one change nothing.
var (
	ErrNoImage     = errors.New("no image loaded")
	ErrNoText      = errors.New("no text entered")
	ErrNoWatermark = errors.New("no watermark to save")
)

// Messages shown to the user.
const (
	msgNoImage     = "Please upload an image first."
	msgNoText      = "Please enter watermark text."
	msgCutOff      = "Text watermark might be cut off."
	msgNoWatermark = "No watermarked image to save."
	msgSaved       = "Image saved successfully!"
)

func saveFailedMessage(err error) string {
	return fmt.Sprintf("Failed to save image:\n%v", err)
}

func loadFailedMessage(what string, err error) string {
	return fmt.Sprintf("Failed to load %s:\n%v", what, err)
}
