package artifacts

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"testing"

	"github.com/thehouseofcoaching/awl-scanner/internal/images"
)

func normalizedImage(t *testing.T, width, height int) *images.Normalized {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("jpeg.Encode() error = %v", err)
	}
	return &images.Normalized{JPEG: buf.Bytes(), Width: width, Height: height}
}

func TestPageSize(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantW   float64
		wantH   float64
	}{
		{name: "small image keeps native size", w: 300, h: 400, wantW: 300, wantH: 400},
		{name: "wide image capped by width", w: 1190, h: 842, wantW: 595, wantH: 421},
		{name: "tall image capped by height", w: 595, h: 1684, wantW: 297.5, wantH: 842},
		{name: "exactly A4 unchanged", w: 595, h: 842, wantW: 595, wantH: 842},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotW, gotH := pageSize(tt.w, tt.h)
			if math.Abs(gotW-tt.wantW) > 0.01 || math.Abs(gotH-tt.wantH) > 0.01 {
				t.Errorf("pageSize(%d, %d) = %.2fx%.2f, want %.2fx%.2f",
					tt.w, tt.h, gotW, gotH, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestPageSizePreservesAspectRatio(t *testing.T) {
	w, h := pageSize(3000, 2000)
	if math.Abs(w/h-1.5) > 0.001 {
		t.Errorf("aspect ratio = %.4f, want 1.5", w/h)
	}
}

func TestBuildPDF(t *testing.T) {
	pages := []*images.Normalized{
		normalizedImage(t, 100, 150),
		normalizedImage(t, 150, 100),
	}

	out, err := BuildPDF(pages)
	if err != nil {
		t.Fatalf("BuildPDF() error = %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("output missing %PDF header")
	}
	if len(out) < 500 {
		t.Errorf("output suspiciously small: %d bytes", len(out))
	}
}

func TestBuildPDFNoPages(t *testing.T) {
	if _, err := BuildPDF(nil); err == nil {
		t.Fatal("BuildPDF(nil) expected error")
	}
}
