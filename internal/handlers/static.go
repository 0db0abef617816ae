package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// HandleManifest serves the PWA manifest with base-path-aware URLs so the
// app installs correctly behind a path prefix.
func (h *Handler) HandleManifest(w http.ResponseWriter, r *http.Request) {
	base := h.cfg.BasePath
	manifest := map[string]any{
		"name":             "AWL Scanner",
		"short_name":       "AWL Scanner",
		"description":      "Scan, digitaliseer en verstuur aanwezigheidslijsten",
		"start_url":        base + "/",
		"display":          "standalone",
		"background_color": "#ffffff",
		"theme_color":      "#4F46E5",
		"orientation":      "portrait",
		"icons": []map[string]any{
			{
				"src":     base + "/icon-192.png",
				"sizes":   "192x192",
				"type":    "image/png",
				"purpose": "any maskable",
			},
			{
				"src":     base + "/icon-512.png",
				"sizes":   "512x512",
				"type":    "image/png",
				"purpose": "any maskable",
			},
		},
	}

	w.Header().Set("Content-Type", "application/manifest+json")
	if err := json.NewEncoder(w).Encode(manifest); err != nil {
		slog.Error("Unable to encode manifest", "err", err)
	}
}

// HandleStatic serves the frontend from the public directory.
func (h *Handler) HandleStatic(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, h.cfg.BasePath)
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		path = "index.html"
	}

	// Prevent directory traversal attacks
	if strings.Contains(path, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	switch {
	case strings.HasSuffix(path, ".css"):
		w.Header().Set("Content-Type", "text/css")
	case strings.HasSuffix(path, ".js"):
		w.Header().Set("Content-Type", "application/javascript")
	case strings.HasSuffix(path, ".html"):
		w.Header().Set("Content-Type", "text/html")
	}

	http.ServeFile(w, r, "public/"+path)
}
