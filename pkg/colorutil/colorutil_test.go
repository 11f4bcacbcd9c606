package colorutil

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#ffffff", White},
		{"000000", Black},
		{"#1a2B3c", color.RGBA{R: 0x1a, G: 0x2b, B: 0x3c, A: 255}},
		{"#f80", color.RGBA{R: 0xff, G: 0x88, B: 0x00, A: 255}},
		{"  #dcdcdc ", CheckerDark},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHexRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "#12", "#zzzzzz", "#1234567"} {
		_, err := ParseHex(in)
		assert.Error(t, err, in)
	}
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#ffffff", Hex(White))
	assert.Equal(t, "#0a0b0c", Hex(color.RGBA{R: 10, G: 11, B: 12, A: 3}))
}

func TestToRGBUnpremultiplies(t *testing.T) {
	// 50% alpha premultiplied red.
	got := ToRGB(color.RGBA{R: 128, A: 128})
	assert.Equal(t, color.RGBA{R: 255, A: 255}, got)

	assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 255}, ToRGB(color.NRGBA{R: 1, G: 2, B: 3, A: 255}))
}
