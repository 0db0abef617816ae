package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/thehouseofcoaching/awl-scanner/internal/images"
	"github.com/thehouseofcoaching/awl-scanner/internal/models"
	"github.com/thehouseofcoaching/awl-scanner/internal/scan"
)

// heicSuggestion is the remediation hint for photos this server cannot
// decode: modern browsers convert HEIC client-side before upload.
const heicSuggestion = "Gebruik een moderne browser (Chrome/Edge/Safari) die HEIC automatisch converteert, of converteer de foto eerst naar JPEG"

// HandleScan accepts a multipart upload of 1-5 sheet images and returns the
// merged attendance data, the CSV export and the multi-page PDF.
func (h *Handler) HandleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.writeError(w, http.StatusBadRequest, "Ongeldige upload: "+err.Error(), nil)
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		h.writeError(w, http.StatusBadRequest, "Geen afbeeldingen ontvangen", nil)
		return
	}
	if len(files) > scan.MaxImages {
		h.writeError(w, http.StatusBadRequest, "Maximum 5 afbeeldingen toegestaan", nil)
		return
	}

	uploads := make([]scan.UploadedImage, 0, len(files))
	for _, fh := range files {
		mimeType := fh.Header.Get("Content-Type")
		if !strings.HasPrefix(mimeType, "image/") && !images.IsHEIC(fh.Filename, mimeType) {
			h.writeError(w, http.StatusBadRequest, "Alleen afbeeldingen zijn toegestaan", nil)
			return
		}

		file, err := fh.Open()
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "Kon bestand niet lezen: "+err.Error(), nil)
			return
		}
		data, err := io.ReadAll(io.LimitReader(file, scan.MaxImageBytes+1))
		file.Close()
		if err != nil {
			h.writeError(w, http.StatusInternalServerError, "Kon bestand niet lezen: "+err.Error(), nil)
			return
		}
		if len(data) > scan.MaxImageBytes {
			h.writeError(w, http.StatusBadRequest, "Afbeelding te groot (max 10MB)", nil)
			return
		}

		uploads = append(uploads, scan.UploadedImage{
			Filename: fh.Filename,
			MimeType: mimeType,
			Data:     data,
		})
	}

	slog.Info("Processing scan batch", "images", len(uploads))

	result, err := h.scanner.Process(r.Context(), uploads)
	if err != nil {
		h.scanError(w, err)
		return
	}

	h.metrics.ObserveScan("success", result.Metadata.ProcessedImages)
	h.writeJSON(w, models.ScanResponse{
		Success:  true,
		Data:     result.Data,
		CSV:      result.CSV,
		PDF:      base64.StdEncoding.EncodeToString(result.PDF),
		Summary:  result.Summary,
		Metadata: result.Metadata,
	})
}

func (h *Handler) scanError(w http.ResponseWriter, err error) {
	var noData *scan.NoDataError
	switch {
	case errors.As(err, &noData):
		extra := map[string]any{
			"processed": noData.Processed,
			"total":     noData.Total,
		}
		if noData.AllHEIC {
			h.metrics.ObserveScan("heic_unsupported", noData.Processed)
			message := "HEIC bestanden konden niet verwerkt worden"
			if noData.Total == 1 {
				message = "HEIC conversie niet ondersteund op deze server"
			}
			extra["suggestion"] = heicSuggestion
			h.writeError(w, http.StatusBadRequest, message, extra)
			return
		}
		h.metrics.ObserveScan("no_data", noData.Processed)
		h.writeError(w, http.StatusUnprocessableEntity,
			"Geen gegevens kunnen extraheren uit de afbeeldingen", extra)
	case errors.Is(err, scan.ErrInvalidUpload):
		h.metrics.ObserveScan("invalid", -1)
		h.writeError(w, http.StatusBadRequest, "Ongeldige upload: tussen 1 en 5 afbeeldingen vereist", nil)
	default:
		h.metrics.ObserveScan("error", -1)
		h.writeError(w, http.StatusInternalServerError,
			fmt.Sprintf("Er ging iets mis bij het verwerken: %v", err), nil)
	}
}
