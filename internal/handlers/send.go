package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/thehouseofcoaching/awl-scanner/internal/mail"
	"github.com/thehouseofcoaching/awl-scanner/internal/models"
)

var filenameSafe = regexp.MustCompile(`[^a-zA-Z0-9]`)

type sendRequest struct {
	ContactIDs    []int64        `json:"contactIds"`
	CSV           string         `json:"csv"`
	PDF           string         `json:"pdf"`
	Summary       models.Summary `json:"summary"`
	CustomMessage string         `json:"customMessage"`
}

type sendResult struct {
	Contact string `json:"contact"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// HandleSend mails the scan artifacts to the selected contacts, one message
// per contact, collecting per-contact results instead of failing the whole
// request on the first bounce.
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
		return
	}

	var request sendRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error(), nil)
		return
	}
	if len(request.ContactIDs) == 0 {
		h.writeError(w, http.StatusBadRequest, "Selecteer minimaal één contactpersoon", nil)
		return
	}
	if h.mailer == nil {
		h.writeError(w, http.StatusInternalServerError,
			"Email service niet beschikbaar. Controleer server configuratie.", nil)
		return
	}

	pdfBytes, err := base64.StdEncoding.DecodeString(request.PDF)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Ongeldige PDF bijlage", nil)
		return
	}

	all, err := h.contacts.All(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Kon contacten niet laden", nil)
		return
	}
	var selected []models.Contact
	for _, c := range all {
		if slices.Contains(request.ContactIDs, c.ID) {
			selected = append(selected, c)
		}
	}
	if len(selected) == 0 {
		h.writeError(w, http.StatusBadRequest, "Geen geldige contacten gevonden", nil)
		return
	}

	training := request.Summary.Training
	if training == "" {
		training = "Training"
	}
	dateStr := time.Now().Format("2006-01-02")
	baseFilename := "AWL_" + truncate(filenameSafe.ReplaceAllString(training, "_"), 30) + "_" + dateStr

	results := make([]sendResult, 0, len(selected))
	for _, contact := range selected {
		msg := mail.Message{
			To:       contact.Email,
			Subject:  fmt.Sprintf("Aanwezigheidslijst: %s - %s", training, dateStr),
			HTMLBody: h.emailBody(contact.Name, request.Summary, request.CustomMessage),
			Attachments: []mail.Attachment{
				{Filename: baseFilename + ".pdf", ContentType: "application/pdf", Content: pdfBytes},
				{Filename: baseFilename + ".csv", ContentType: "text/csv", Content: []byte(request.CSV)},
			},
		}

		if err := h.mailer.Send(r.Context(), msg); err != nil {
			slog.Error("Email sending failed", "to", contact.Email, "err", err)
			h.metrics.ObserveEmail(false)
			results = append(results, sendResult{Contact: contact.Name, Error: err.Error()})
			continue
		}
		h.metrics.ObserveEmail(true)
		results = append(results, sendResult{Contact: contact.Name, Success: true})
	}

	allSuccess := true
	for _, res := range results {
		if !res.Success {
			allSuccess = false
			break
		}
	}

	message := fmt.Sprintf("Email verstuurd naar %d contacten", len(results))
	if !allSuccess {
		message = "Sommige emails konden niet verstuurd worden"
	}
	h.writeJSON(w, map[string]any{
		"success": allSuccess,
		"results": results,
		"message": message,
	})
}

func (h *Handler) emailBody(contactName string, summary models.Summary, customMessage string) string {
	training := summary.Training
	if training == "" {
		training = "Onbekend"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<p>Beste %s,</p>\n", contactName)
	b.WriteString("<p>Hierbij de aanwezigheidslijst van de training.</p>\n")
	b.WriteString("<p><strong>Samenvatting:</strong></p>\n<ul>\n")
	fmt.Fprintf(&b, "<li>Training: %s</li>\n", training)
	fmt.Fprintf(&b, "<li>Totaal deelnemers: %d</li>\n", summary.Total)
	fmt.Fprintf(&b, "<li>Aanwezig: %d</li>\n", summary.Present)
	b.WriteString("</ul>\n")
	if customMessage != "" {
		fmt.Fprintf(&b, "<p>%s</p>\n", customMessage)
	}
	b.WriteString("<p>In bijlage vind je:</p>\n<ul>\n")
	b.WriteString("<li>De ingescande aanwezigheidslijst (PDF)</li>\n")
	b.WriteString("<li>Een digitale versie van de aanwezigheden (CSV)</li>\n")
	b.WriteString("</ul>\n")
	b.WriteString("<p>Met vriendelijke groeten,</p>\n")
	fmt.Fprintf(&b, "<p>%s<br>The House of Coaching</p>\n", h.cfg.SenderName)
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
