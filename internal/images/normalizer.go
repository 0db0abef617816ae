package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrUnsupportedFormat is returned when the decoder cannot handle the source
// codec. HEIC/HEIF always ends up here: there is no pure-Go decoder for it.
var ErrUnsupportedFormat = errors.New("unsupported image format")

const (
	// maxDimension bounds both sides of the normalized image. The vision
	// model gains nothing from larger inputs and inline payloads stay small.
	maxDimension = 3000

	jpegQuality = 95
)

// Normalized is a re-encoded scan image ready for the vision model and the
// PDF builder. Immutable once produced.
type Normalized struct {
	JPEG   []byte
	Width  int
	Height int
}

// IsHEIC reports whether an upload looks like an iPhone HEIC/HEIF photo,
// either by declared MIME type or by file extension.
func IsHEIC(filename, mimeType string) bool {
	if mimeType == "image/heic" || mimeType == "image/heif" {
		return true
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".heic", ".heif":
		return true
	}
	return false
}

// Normalize decodes a raw upload and prepares it for extraction: auto-orient,
// scale down to fit 3000x3000 (never up), sharpen, stretch contrast and
// re-encode as high-quality JPEG.
func Normalize(data []byte) (*Normalized, error) {
	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	img := imaging.Fit(src, maxDimension, maxDimension, imaging.Lanczos)
	img = imaging.Sharpen(img, 0.8)
	img = stretchContrast(img)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}

	bounds := img.Bounds()
	return &Normalized{
		JPEG:   buf.Bytes(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

// stretchContrast linearly maps the 1st..99th luminance percentiles onto the
// full 0..255 range. Scans of paper sheets are often washed out; this is the
// same histogram stretch the old pipeline applied.
func stretchContrast(img *image.NRGBA) *image.NRGBA {
	var hist [256]int
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return img
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			lum := (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
			hist[lum]++
		}
	}

	lo := percentile(hist[:], total, 1)
	hi := percentile(hist[:], total, 99)
	if hi <= lo {
		// Flat image, nothing to stretch.
		return img
	}

	scale := 255.0 / float64(hi-lo)
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: stretchByte(c.R, lo, scale),
			G: stretchByte(c.G, lo, scale),
			B: stretchByte(c.B, lo, scale),
			A: c.A,
		}
	})
}

func percentile(hist []int, total, pct int) int {
	threshold := total * pct / 100
	seen := 0
	for v, count := range hist {
		seen += count
		if seen > threshold {
			return v
		}
	}
	return len(hist) - 1
}

func stretchByte(v uint8, lo int, scale float64) uint8 {
	f := float64(int(v)-lo) * scale
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return uint8(f + 0.5)
}
