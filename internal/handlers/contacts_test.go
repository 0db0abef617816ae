package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/thehouseofcoaching/awl-scanner/internal/models"
)

func TestHandleContactsList(t *testing.T) {
	handler := testHandler(t, &stubExtractor{})

	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	rec := httptest.NewRecorder()
	handler.HandleContacts(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var list []models.Contact
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(list) != 3 {
		t.Errorf("got %d contacts, want 3 defaults", len(list))
	}
}

func TestHandleContactsAdd(t *testing.T) {
	handler := testHandler(t, &stubExtractor{})

	body := strings.NewReader(`{"name":"Test BV","email":"test@test.be"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/contacts", body)
	rec := httptest.NewRecorder()
	handler.HandleContacts(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var contact models.Contact
	if err := json.Unmarshal(rec.Body.Bytes(), &contact); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if contact.ID == 0 || contact.Name != "Test BV" {
		t.Errorf("contact = %+v", contact)
	}
}

func TestHandleContactsAddMissingFields(t *testing.T) {
	handler := testHandler(t, &stubExtractor{})

	tests := []struct {
		name string
		body string
	}{
		{name: "missing email", body: `{"name":"Test BV"}`},
		{name: "missing name", body: `{"email":"test@test.be"}`},
		{name: "empty object", body: `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/contacts", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.HandleContacts(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestHandleContactDelete(t *testing.T) {
	handler := testHandler(t, &stubExtractor{})

	req := httptest.NewRequest(http.MethodDelete, "/api/contacts/2", nil)
	rec := httptest.NewRecorder()
	handler.HandleContactDelete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	listReq := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	listRec := httptest.NewRecorder()
	handler.HandleContacts(listRec, listReq)

	var list []models.Contact
	if err := json.Unmarshal(listRec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	for _, c := range list {
		if c.ID == 2 {
			t.Error("contact 2 still present after delete")
		}
	}
}

func TestHandleContactDeleteBadID(t *testing.T) {
	handler := testHandler(t, &stubExtractor{})

	req := httptest.NewRequest(http.MethodDelete, "/api/contacts/abc", nil)
	rec := httptest.NewRecorder()
	handler.HandleContactDelete(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
