package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/thehouseofcoaching/awl-scanner/internal/config"
	"github.com/thehouseofcoaching/awl-scanner/internal/contacts"
	"github.com/thehouseofcoaching/awl-scanner/internal/metrics"
	"github.com/thehouseofcoaching/awl-scanner/internal/scan"
)

func TestHandleManifestBasePath(t *testing.T) {
	repo, err := contacts.NewFileRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileRepository() error = %v", err)
	}
	cfg := &config.Config{BasePath: "/awl"}
	handler := New(cfg, scan.NewService(&stubExtractor{}), repo, nil, metrics.New())

	req := httptest.NewRequest(http.MethodGet, "/awl/manifest.json", nil)
	rec := httptest.NewRecorder()
	handler.HandleManifest(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/manifest+json" {
		t.Errorf("content type = %q", got)
	}

	var manifest struct {
		StartURL string `json:"start_url"`
		Icons    []struct {
			Src string `json:"src"`
		} `json:"icons"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &manifest); err != nil {
		t.Fatalf("decoding manifest: %v", err)
	}
	if manifest.StartURL != "/awl/" {
		t.Errorf("start_url = %q, want /awl/", manifest.StartURL)
	}
	if len(manifest.Icons) != 2 || manifest.Icons[0].Src != "/awl/icon-192.png" {
		t.Errorf("icons = %+v", manifest.Icons)
	}
}

func TestHandleStaticBlocksTraversal(t *testing.T) {
	handler := testHandler(t, &stubExtractor{})

	req := httptest.NewRequest(http.MethodGet, "/../etc/passwd", nil)
	req.URL.Path = "/../etc/passwd"
	rec := httptest.NewRecorder()
	handler.HandleStatic(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
