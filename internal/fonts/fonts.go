// Package fonts maps the fixed set of logical watermark fonts to loadable font
// faces, falling back to a built-in bitmap face when no font file is found.
package fonts

// ID is a logical font from the picker.
type ID int

const (
	Arial ID = iota
	Courier
	TimesNewRoman
	Helvetica
	ComicSansMS
)

var names = [...]string{
	Arial:         "Arial",
	Courier:       "Courier",
	TimesNewRoman: "Times New Roman",
	Helvetica:     "Helvetica",
	ComicSansMS:   "Comic Sans MS",
}

// Helvetica has no file of its own on the platforms we ship to; it renders
// with the Arial metrics.
var files = [...]string{
	Arial:         "arial.ttf",
	Courier:       "cour.ttf",
	TimesNewRoman: "times.ttf",
	Helvetica:     "arial.ttf",
	ComicSansMS:   "comic.ttf",
}

// All returns every logical font in picker order.
func All() []ID {
	return []ID{Arial, Courier, TimesNewRoman, Helvetica, ComicSansMS}
}

// Names returns the display names of All, in the same order.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names[:])
	return out
}

// Valid reports whether id is one of the known fonts.
func (id ID) Valid() bool {
	return id >= Arial && id <= ComicSansMS
}

func (id ID) String() string {
	if !id.Valid() {
		return names[Arial]
	}
	return names[id]
}

// File returns the font file name backing id.
func (id ID) File() string {
	if !id.Valid() {
		return files[Arial]
	}
	return files[id]
}

// ParseID looks up a font by display name. Unknown names resolve to Arial
// with ok set to false.
func ParseID(name string) (id ID, ok bool) {
	for i, n := range names {
		if n == name {
			return ID(i), true
		}
	}
	return Arial, false
}
