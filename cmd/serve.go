package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/thehouseofcoaching/awl-scanner/internal/config"
	"github.com/thehouseofcoaching/awl-scanner/internal/contacts"
	"github.com/thehouseofcoaching/awl-scanner/internal/handlers"
	"github.com/thehouseofcoaching/awl-scanner/internal/logging"
	"github.com/thehouseofcoaching/awl-scanner/internal/mail"
	"github.com/thehouseofcoaching/awl-scanner/internal/metrics"
	"github.com/thehouseofcoaching/awl-scanner/internal/scan"
	"github.com/thehouseofcoaching/awl-scanner/internal/vision"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the attendance scanner web server",
		Long: `Starts the AWL Scanner API and web interface.

The server accepts attendance sheet uploads on /api/scan, manages mail
recipients on /api/contacts and dispatches the generated CSV/PDF
artifacts on /api/send.`,
		Example: `  # Start server on the default port 3000
  awl-scanner serve

  # Start server on a custom port
  awl-scanner serve --port 8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}

			slog.SetDefault(logging.NewJSONLogger("awl-scanner", cfg.LogLevel))

			repo, err := buildContactRepository(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			var mailer mail.Sender
			if client, err := mail.NewGraphClient(cmd.Context(), cfg); err != nil {
				slog.Warn("Graph API not available, email sending disabled", "err", err)
			} else {
				slog.Info("Microsoft Graph API client initialized", "sender", cfg.SenderEmail)
				mailer = client
			}

			scanner := scan.NewService(vision.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel))
			m := metrics.New()
			handler := handlers.New(cfg, scanner, repo, mailer, m)

			base := cfg.BasePath
			mux := http.NewServeMux()
			mux.HandleFunc(base+"/api/scan", handler.HandleScan)
			mux.HandleFunc(base+"/api/contacts", handler.HandleContacts)
			mux.HandleFunc(base+"/api/contacts/", handler.HandleContactDelete)
			mux.HandleFunc(base+"/api/send", handler.HandleSend)
			mux.HandleFunc(base+"/manifest.json", handler.HandleManifest)
			mux.HandleFunc(base+"/", handler.HandleStatic)
			mux.Handle("/metrics", m.Handler())
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + cfg.Port
			server := &http.Server{
				Addr:    addr,
				Handler: m.Middleware(mux),
			}

			serverErr := make(chan error, 1)
			go func() {
				slog.Info("AWL Scanner available", "addr", addr,
					"basePath", base, "model", cfg.GeminiModel, "mail", mailer != nil)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides PORT)")

	return cmd
}

// buildContactRepository picks Postgres when DATABASE_URL is set, otherwise
// the JSON file store under the data directory.
func buildContactRepository(ctx context.Context, cfg *config.Config) (contacts.Repository, error) {
	if cfg.DatabaseURL == "" {
		return contacts.NewFileRepository(cfg.DataDir)
	}

	db, err := contacts.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	repo := contacts.NewPostgresRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	slog.Info("Contact repository backed by Postgres")
	return repo, nil
}
