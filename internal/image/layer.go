// Package image provides image loading, normalization, scaling, export and
// layer compositing.
package image

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Layer is a decoded image normalized to RGBA with its origin at (0, 0).
type Layer struct {
	Path   string
	Format string
	Image  *image.RGBA
}

// Load opens and decodes the image at path. EXIF orientation is applied.
func Load(path string) (*Layer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	l, err := Decode(f)
	if err != nil {
		return nil, err
	}
	l.Path = path
	return l, nil
}

// Decode reads an image from r. EXIF orientation is applied.
func Decode(r io.Reader) (*Layer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return &Layer{Format: format, Image: ToRGBA(img)}, nil
}

// Width returns the image width in pixels.
func (l *Layer) Width() int {
	if l == nil || l.Image == nil {
		return 0
	}
	return l.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (l *Layer) Height() int {
	if l == nil || l.Image == nil {
		return 0
	}
	return l.Image.Bounds().Dy()
}

// ToRGBA converts img to *image.RGBA with bounds starting at the origin. An
// RGBA input that already satisfies this is copied, never shared.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(out, out.Bounds(), img, b.Min, xdraw.Src)
	return out
}

// Clone returns a deep copy of img. A nil image clones to nil.
func Clone(img *image.RGBA) *image.RGBA {
	if img == nil {
		return nil
	}
	out := &image.RGBA{
		Pix:    make([]uint8, len(img.Pix)),
		Stride: img.Stride,
		Rect:   img.Rect,
	}
	copy(out.Pix, img.Pix)
	return out
}

// Equal reports whether a and b have the same bounds and pixels.
func Equal(a, b *image.RGBA) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Rect != b.Rect {
		return false
	}
	w := a.Rect.Dx() * 4
	for y := 0; y < a.Rect.Dy(); y++ {
		ra := a.Pix[y*a.Stride : y*a.Stride+w]
		rb := b.Pix[y*b.Stride : y*b.Stride+w]
		if !bytes.Equal(ra, rb) {
			return false
		}
	}
	return true
}

// Fit downscales img so neither side exceeds limit, keeping the aspect ratio.
// Images that already fit, and limit <= 0, return img unchanged.
func Fit(img *image.RGBA, limit int) *image.RGBA {
	b := img.Bounds()
	if limit <= 0 || (b.Dx() <= limit && b.Dy() <= limit) {
		return img
	}
	return ToRGBA(imaging.Fit(img, limit, limit, imaging.Lanczos))
}

// Resize scales img to exactly size using Catmull-Rom resampling. Sizes
// below one pixel are clamped to one.
func Resize(img *image.RGBA, size image.Point) *image.RGBA {
	if size.X < 1 {
		size.X = 1
	}
	if size.Y < 1 {
		size.Y = 1
	}
	if img.Bounds().Size() == size {
		return Clone(img)
	}
	out := image.NewRGBA(image.Rectangle{Max: size})
	xdraw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return out
}

// ScaledSize returns the size of img scaled by percent, at least 1x1.
func ScaledSize(img image.Image, percent int) image.Point {
	b := img.Bounds()
	w := b.Dx() * percent / 100
	h := b.Dy() * percent / 100
	return image.Pt(max(w, 1), max(h, 1))
}

// SavePNG writes img to path as PNG, creating parent directories as needed.
func SavePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := EncodePNG(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

// EncodePNG writes img to w as PNG. Alpha is preserved.
func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// SupportedFormats returns the file extensions that can be loaded.
func SupportedFormats() []string {
	return []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}
}

// IsSupportedFormat checks if the given path has a supported image format.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}

// EnsurePNGExt gives path a ".png" extension, replacing any other one.
// Output is always PNG, so "out.jpg" becomes "out.png".
func EnsurePNGExt(path string) string {
	ext := filepath.Ext(path)
	if strings.EqualFold(ext, ".png") {
		return path
	}
	return strings.TrimSuffix(path, ext) + ".png"
}
