package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// HandleContacts serves the contact list and creation.
func (h *Handler) HandleContacts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := h.contacts.All(r.Context())
		if err != nil {
			h.writeError(w, http.StatusInternalServerError, "Kon contacten niet laden", nil)
			return
		}
		h.writeJSON(w, list)
	case http.MethodPost:
		var request struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error(), nil)
			return
		}
		if request.Name == "" || request.Email == "" {
			h.writeError(w, http.StatusBadRequest, "Naam en email zijn verplicht", nil)
			return
		}
		contact, err := h.contacts.Add(r.Context(), request.Name, request.Email)
		if err != nil {
			h.writeError(w, http.StatusInternalServerError, "Kon contact niet toevoegen", nil)
			return
		}
		h.writeJSON(w, contact)
	default:
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	}
}

// HandleContactDelete handles DELETE /api/contacts/{id}.
func (h *Handler) HandleContactDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
		return
	}

	idPart := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Ongeldig contact id", nil)
		return
	}

	if err := h.contacts.Delete(r.Context(), id); err != nil {
		h.writeError(w, http.StatusInternalServerError, "Kon contact niet verwijderen", nil)
		return
	}
	h.writeJSON(w, map[string]any{"success": true})
}
