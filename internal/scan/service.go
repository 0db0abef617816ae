package scan

import (
	"context"
	"log/slog"
	"strings"

	"github.com/thehouseofcoaching/awl-scanner/internal/artifacts"
	"github.com/thehouseofcoaching/awl-scanner/internal/extract"
	"github.com/thehouseofcoaching/awl-scanner/internal/images"
	"github.com/thehouseofcoaching/awl-scanner/internal/models"
	"github.com/thehouseofcoaching/awl-scanner/internal/vision"
)

const (
	// MaxImages is the upload limit per scan batch.
	MaxImages = 5

	// MaxImageBytes is the per-file upload limit.
	MaxImageBytes = 10 << 20
)

// UploadedImage is one raw file from the multipart upload, alive only for the
// duration of the request.
type UploadedImage struct {
	Filename string
	MimeType string
	Data     []byte
}

// Result is everything a successful batch produces: the merged record, both
// artifacts and the processing counts. Nothing here is persisted.
type Result struct {
	Data     models.ExtractionRecord
	CSV      string
	PDF      []byte
	Summary  models.Summary
	Metadata models.Metadata
}

// Service runs the scan pipeline: per image normalize -> extract -> parse,
// then merge, deduplicate and build artifacts. Images are handled strictly
// sequentially in submission order.
type Service struct {
	extractor vision.Extractor
}

func NewService(extractor vision.Extractor) *Service {
	return &Service{extractor: extractor}
}

// Process runs the batch. Per-image failures are logged and skipped; the
// batch only fails when invalid, or when no image yielded a record.
func (s *Service) Process(ctx context.Context, uploads []UploadedImage) (*Result, error) {
	if len(uploads) == 0 || len(uploads) > MaxImages {
		return nil, ErrInvalidUpload
	}

	var (
		records   []models.ExtractionRecord
		processed []*images.Normalized
	)

	for i, upload := range uploads {
		logger := slog.With("image", i+1, "total", len(uploads), "filename", upload.Filename)

		normalized, err := images.Normalize(upload.Data)
		if err != nil {
			logger.Error("Image conversion failed", "err", err)
			if images.IsHEIC(upload.Filename, upload.MimeType) && len(uploads) == 1 {
				// The only image cannot be decoded at all; tell the
				// caller to re-encode instead of reporting empty data.
				return nil, &NoDataError{AllHEIC: true, Total: 1}
			}
			continue
		}
		logger.Info("Image normalized", "width", normalized.Width, "height", normalized.Height)

		text, err := s.extractor.Extract(ctx, normalized.JPEG)
		if err != nil {
			logger.Error("Vision extraction failed", "err", err)
			continue
		}

		record, err := extract.Parse(text)
		if err != nil {
			// The model replied but not with usable JSON. The scan page
			// still goes into the PDF; only the data is missing.
			logger.Warn("Could not parse model response", "err", err)
		} else {
			records = append(records, *record)
			logger.Info("Extraction record parsed", "attendees", len(record.Attendees))
		}

		processed = append(processed, normalized)
	}

	if len(records) == 0 {
		return nil, &NoDataError{
			AllHEIC:   allHEIC(uploads),
			Processed: len(processed),
			Total:     len(uploads),
		}
	}

	info := chooseTrainingInfo(records)
	merged := mergeAttendees(records)
	final := deduplicate(merged)

	slog.Info("Batch aggregated",
		"images", len(uploads),
		"processed", len(processed),
		"mentions", len(merged),
		"unique", len(final))

	result := &Result{
		Data: models.ExtractionRecord{
			TrainingInfo: info,
			Attendees:    final,
		},
		CSV: artifacts.BuildCSV(final),
		Summary: models.Summary{
			Total:    len(final),
			Present:  countPresent(final),
			Training: trainingName(info),
		},
		Metadata: models.Metadata{
			TotalImages:     len(uploads),
			ProcessedImages: len(processed),
			TotalContacts:   len(merged),
			UniqueContacts:  len(final),
			PDFPages:        len(processed),
		},
	}

	pdf, err := artifacts.BuildPDF(processed)
	if err != nil {
		return nil, err
	}
	result.PDF = pdf

	return result, nil
}

// chooseTrainingInfo picks the first record (submission order) with a
// non-empty title, falling back to the first record's info.
func chooseTrainingInfo(records []models.ExtractionRecord) models.TrainingInfo {
	for _, r := range records {
		if r.TrainingInfo.Title != "" {
			return r.TrainingInfo
		}
	}
	return records[0].TrainingInfo
}

func mergeAttendees(records []models.ExtractionRecord) []models.Attendee {
	var all []models.Attendee
	for _, r := range records {
		all = append(all, r.Attendees...)
	}
	return all
}

// deduplicate collapses attendees sharing a non-empty email
// (case-insensitive). The entry keeps the position of its first occurrence
// but the field values of its last occurrence: a later scan page overrides an
// earlier one for the same person. Attendees without an email cannot be
// matched and are appended untouched.
func deduplicate(all []models.Attendee) []models.Attendee {
	index := make(map[string]int)
	var withEmail []models.Attendee
	var noEmail []models.Attendee

	for _, a := range all {
		if a.Email == "" {
			noEmail = append(noEmail, a)
			continue
		}
		key := strings.ToLower(a.Email)
		if pos, seen := index[key]; seen {
			withEmail[pos] = a
		} else {
			index[key] = len(withEmail)
			withEmail = append(withEmail, a)
		}
	}

	return append(withEmail, noEmail...)
}

func countPresent(attendees []models.Attendee) int {
	n := 0
	for _, a := range attendees {
		if a.Present {
			n++
		}
	}
	return n
}

func trainingName(info models.TrainingInfo) string {
	if info.Title == "" {
		return "Onbekend"
	}
	return info.Title
}

func allHEIC(uploads []UploadedImage) bool {
	for _, u := range uploads {
		if !images.IsHEIC(u.Filename, u.MimeType) {
			return false
		}
	}
	return true
}
