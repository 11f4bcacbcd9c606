package fonts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/golang/freetype/truetype"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// FallbackSize is the only size the built-in fallback face renders at.
const FallbackSize = 13

// Handle is a resolved face ready for measuring and drawing.
type Handle struct {
	Face font.Face
	ID   ID
	// Size is the size the face actually renders at. For the fallback face it
	// is FallbackSize regardless of the requested size.
	Size float64
	// Path is the font file in use, empty for the fallback face.
	Path     string
	Fallback bool
}

type faceKey struct {
	path string
	size float64
}

// parsedFont holds whichever parser accepted the file.
type parsedFont struct {
	path string
	tt   *truetype.Font
	ot   *opentype.Font
}

// Resolver turns logical fonts into faces. Parsed files and faces are cached;
// a file that failed to load is not probed again.
//
// A Resolver is not safe for concurrent use.
type Resolver struct {
	dirs   []string
	faces  *lru.Cache[faceKey, font.Face]
	parsed map[string]*parsedFont
	warned map[ID]bool
	log    *zap.Logger
}

// NewResolver creates a resolver that searches dirs in order. Callers usually
// pass their own directories followed by DefaultDirs. cacheSize bounds the
// number of live faces.
func NewResolver(dirs []string, cacheSize int, log *zap.Logger) (*Resolver, error) {
	if log == nil {
		log = zap.NewNop()
	}
	faces, err := lru.NewWithEvict[faceKey, font.Face](cacheSize, func(_ faceKey, f font.Face) {
		_ = f.Close()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font cache: %w", err)
	}
	return &Resolver{
		dirs:   append([]string(nil), dirs...),
		faces:  faces,
		parsed: make(map[string]*parsedFont),
		warned: make(map[ID]bool),
		log:    log,
	}, nil
}

// Resolve returns a face for id at size points. It never fails: when the
// font file is missing or unreadable the built-in fixed-size face is returned
// and Handle.Fallback is set.
func (r *Resolver) Resolve(id ID, size float64) *Handle {
	if !id.Valid() {
		id = Arial
	}
	if size <= 0 {
		size = 1
	}

	pf := r.load(id)
	if pf == nil {
		return fallback(id)
	}

	key := faceKey{path: pf.path, size: size}
	if face, ok := r.faces.Get(key); ok {
		return &Handle{Face: face, ID: id, Size: size, Path: pf.path}
	}

	face, err := newFace(pf, size)
	if err != nil {
		r.log.Warn("font face creation failed, using built-in face",
			zap.String("font", id.String()), zap.Float64("size", size), zap.Error(err))
		return fallback(id)
	}
	r.faces.Add(key, face)
	return &Handle{Face: face, ID: id, Size: size, Path: pf.path}
}

// Purge drops every cached face.
func (r *Resolver) Purge() {
	r.faces.Purge()
}

func fallback(id ID) *Handle {
	return &Handle{Face: basicfont.Face7x13, ID: id, Size: FallbackSize, Fallback: true}
}

func (r *Resolver) load(id ID) *parsedFont {
	file := id.File()
	if pf, seen := r.parsed[file]; seen {
		if pf == nil {
			r.warnOnce(id, file, nil)
		}
		return pf
	}

	pf, err := r.parseFile(file)
	if err != nil {
		r.parsed[file] = nil
		r.warnOnce(id, file, err)
		return nil
	}
	r.parsed[file] = pf
	r.log.Debug("font loaded", zap.String("font", id.String()), zap.String("path", pf.path))
	return pf
}

func (r *Resolver) warnOnce(id ID, file string, err error) {
	if r.warned[id] {
		return
	}
	r.warned[id] = true
	r.log.Warn("font unavailable, using built-in face",
		zap.String("font", id.String()), zap.String("file", file), zap.Error(err))
}

var errNotFound = errors.New("font file not found")

func (r *Resolver) parseFile(file string) (*parsedFont, error) {
	path, ok := r.find(file)
	if !ok {
		return nil, errNotFound
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	if tt, err := truetype.Parse(data); err == nil {
		return &parsedFont{path: path, tt: tt}, nil
	}
	// freetype only understands glyf outlines; CFF fonts go through opentype.
	ot, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	return &parsedFont{path: path, ot: ot}, nil
}

func (r *Resolver) find(file string) (string, bool) {
	candidates := []string{file, strings.ToUpper(file[:1]) + file[1:], strings.ToUpper(file)}
	for _, dir := range r.dirs {
		for _, name := range candidates {
			p := filepath.Join(dir, name)
			if st, err := os.Stat(p); err == nil && !st.IsDir() {
				return p, true
			}
		}
	}
	return "", false
}

func newFace(pf *parsedFont, size float64) (font.Face, error) {
	if pf.tt != nil {
		return truetype.NewFace(pf.tt, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		}), nil
	}
	return opentype.NewFace(pf.ot, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// DefaultDirs lists the platform font directories, followed by the working
// directory.
func DefaultDirs() []string {
	var dirs []string
	switch runtime.GOOS {
	case "windows":
		root := os.Getenv("WINDIR")
		if root == "" {
			root = `C:\Windows`
		}
		dirs = append(dirs, filepath.Join(root, "Fonts"))
	case "darwin":
		dirs = append(dirs, "/Library/Fonts", "/System/Library/Fonts/Supplemental", "/System/Library/Fonts")
	default:
		dirs = append(dirs,
			"/usr/share/fonts/truetype/msttcorefonts",
			"/usr/share/fonts/TTF",
			"/usr/share/fonts/truetype",
		)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".fonts"), filepath.Join(home, ".local", "share", "fonts"))
	}
	return append(dirs, ".")
}
