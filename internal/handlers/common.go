package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/thehouseofcoaching/awl-scanner/internal/config"
	"github.com/thehouseofcoaching/awl-scanner/internal/contacts"
	"github.com/thehouseofcoaching/awl-scanner/internal/mail"
	"github.com/thehouseofcoaching/awl-scanner/internal/metrics"
	"github.com/thehouseofcoaching/awl-scanner/internal/scan"
)

// Handler wires the HTTP boundary to the scan pipeline, the contact
// repository and the mail client. The mailer may be nil when Graph
// credentials are not configured; /api/send then reports the service as
// unavailable.
type Handler struct {
	cfg      *config.Config
	scanner  *scan.Service
	contacts contacts.Repository
	mailer   mail.Sender
	metrics  *metrics.Metrics
}

func New(cfg *config.Config, scanner *scan.Service, repo contacts.Repository, mailer mail.Sender, m *metrics.Metrics) *Handler {
	return &Handler{
		cfg:      cfg,
		scanner:  scanner,
		contacts: repo,
		mailer:   mailer,
		metrics:  m,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// writeError emits the API's JSON error shape: {"error": message} plus any
// extra fields (suggestion, processed counts).
func (h *Handler) writeError(w http.ResponseWriter, code int, message string, extra map[string]any) {
	slog.Error(message, "status", code)
	payload := map[string]any{"error": message}
	for k, v := range extra {
		payload[k] = v
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Unable to encode error response", "err", err)
	}
}
