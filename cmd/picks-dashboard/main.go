package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/supercweida/weida-picks/internal/aggregator"
	"github.com/supercweida/weida-picks/internal/config"
	"github.com/supercweida/weida-picks/internal/handlers"
	"github.com/supercweida/weida-picks/internal/normalizer"
	"github.com/supercweida/weida-picks/internal/providers/theoddsapi"
	"github.com/supercweida/weida-picks/internal/schedule"
	"github.com/supercweida/weida-picks/internal/store"
	"github.com/supercweida/weida-picks/internal/web"
)

func main() {
	fmt.Println("=== NFL Picks Dashboard v0 ===")

	// Local development reads the API key from .env; production sets
	// the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("⚠️  Failed to load .env: %v\n", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Printf("❌ Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	anchor, err := schedule.NewSeasonAnchor(cfg.SeasonAnchor, cfg.SeasonTimezone)
	if err != nil {
		fmt.Printf("❌ Invalid season anchor: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Season anchored at %s (%s), %d weeks\n", cfg.SeasonAnchor, cfg.SeasonTimezone, cfg.MaxWeeks)

	// Wire the pipeline: provider → snapshot store → aggregator
	client := theoddsapi.New(cfg.OddsAPIKey, cfg.OddsAPIBaseURL, cfg.FetchTimeout)
	snapshots := store.New()
	agg := aggregator.New(anchor, normalizer.New(cfg.Bookmaker, anchor.Location()))

	handler := handlers.NewHandler(client, theoddsapi.Options{
		Sport:      cfg.SportKey,
		Regions:    cfg.Regions,
		Markets:    cfg.Markets,
		OddsFormat: "american",
	}, snapshots, agg, cfg.MaxWeeks)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Routes
	r.Get("/health", handler.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", handler.GetStatus)
		r.Post("/refresh", handler.RefreshOdds)
		r.Get("/weeks", handler.GetAllWeeks)
		r.Get("/weeks/current", handler.GetCurrentWeek)
		r.Get("/weeks/{week}", handler.GetWeek)
	})

	// Embedded dashboard
	r.Handle("/*", web.Handler())

	// Start server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	serverErrors := make(chan error, 1)
	go func() {
		fmt.Printf("✓ Picks dashboard listening on %s\n", cfg.Port)
		fmt.Println("  Endpoints:")
		fmt.Println("    GET  /health")
		fmt.Println("    GET  /api/v1/status")
		fmt.Println("    POST /api/v1/refresh")
		fmt.Println("    GET  /api/v1/weeks")
		fmt.Println("    GET  /api/v1/weeks/current")
		fmt.Println("    GET  /api/v1/weeks/{week}")
		fmt.Println("    GET  /  (dashboard)")

		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		fmt.Printf("❌ Server error: %v\n", err)
		os.Exit(1)

	case sig := <-shutdown:
		fmt.Printf("\n⚠️  Received signal: %v\n", sig)

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			fmt.Printf("⚠️  Graceful shutdown failed: %v\n", err)
			if err := srv.Close(); err != nil {
				fmt.Printf("❌ Could not stop server: %v\n", err)
			}
		}
	}

	fmt.Println("✓ Shutdown complete")
}
