package artifacts

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/thehouseofcoaching/awl-scanner/internal/images"
)

// A4 dimensions in points. Pages never exceed these; smaller scans get a
// smaller page at their native size.
const (
	maxPageWidth  = 595.0
	maxPageHeight = 842.0
)

// pageSize maps image pixel dimensions to a page size in points: one pixel
// per point, scaled down to fit A4 and never scaled up.
func pageSize(widthPx, heightPx int) (float64, float64) {
	w := float64(widthPx)
	h := float64(heightPx)
	scale := math.Min(math.Min(maxPageWidth/w, maxPageHeight/h), 1)
	return w * scale, h * scale
}

// BuildPDF assembles one page per normalized scan image, each page sized to
// the image's aspect ratio capped at A4, with the image drawn at the origin
// filling the page.
func BuildPDF(pages []*images.Normalized) ([]byte, error) {
	if len(pages) == 0 {
		return nil, errors.New("no images to build PDF from")
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		SizeStr:        "A4",
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	opts := fpdf.ImageOptions{ImageType: "JPG"}
	for i, page := range pages {
		w, h := pageSize(page.Width, page.Height)
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})

		name := fmt.Sprintf("scan-%d", i+1)
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(page.JPEG))
		pdf.ImageOptions(name, 0, 0, w, h, false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
