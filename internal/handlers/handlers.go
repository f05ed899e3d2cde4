package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/supercweida/weida-picks/internal/aggregator"
	"github.com/supercweida/weida-picks/internal/providers/theoddsapi"
	"github.com/supercweida/weida-picks/internal/store"
	"github.com/supercweida/weida-picks/pkg/models"
)

// OddsFetcher is the outbound provider dependency, narrowed for tests.
type OddsFetcher interface {
	FetchOdds(ctx context.Context, opts theoddsapi.Options) ([]models.RawGame, models.RateLimits, error)
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	fetcher    OddsFetcher
	fetchOpts  theoddsapi.Options
	store      *store.Store
	aggregator *aggregator.Aggregator
	maxWeeks   int
}

// NewHandler creates a new handler with dependencies
func NewHandler(fetcher OddsFetcher, opts theoddsapi.Options, s *store.Store, agg *aggregator.Aggregator, maxWeeks int) *Handler {
	return &Handler{
		fetcher:    fetcher,
		fetchOpts:  opts,
		store:      s,
		aggregator: agg,
		maxWeeks:   maxWeeks,
	}
}

// HealthCheck returns the health status of the service
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "picks-dashboard",
	})
}

// GetStatus reports snapshot state so the dashboard can distinguish
// "nothing loaded yet" from "loaded but quiet week".
// GET /api/v1/status
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"loaded":       false,
		"current_week": h.aggregator.CurrentWeek(time.Now()),
		"max_weeks":    h.maxWeeks,
		"sport":        h.fetchOpts.Sport,
		"bookmaker":    h.aggregator.BookKey(),
	}

	if snap, ok := h.store.Current(); ok {
		status["loaded"] = true
		status["games"] = len(snap.Games)
		status["fetched_at"] = snap.FetchedAt
	}

	respondJSON(w, http.StatusOK, status)
}

// RefreshOdds fetches a fresh board from the provider and replaces
// the snapshot. A provider failure leaves the prior snapshot intact
// and is reported once; nothing retries.
// POST /api/v1/refresh
func (h *Handler) RefreshOdds(w http.ResponseWriter, r *http.Request) {
	games, limits, err := h.fetcher.FetchOdds(r.Context(), h.fetchOpts)
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to fetch odds", err)
		return
	}

	snap := h.store.Replace(games)
	fmt.Printf("✓ Refreshed odds: %d games (quota remaining: %d)\n", len(games), limits.RequestsRemaining)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games":              len(snap.Games),
		"fetched_at":         snap.FetchedAt,
		"requests_remaining": limits.RequestsRemaining,
		"requests_used":      limits.RequestsUsed,
	})
}

// GetWeek returns the aggregated rows for one week. An empty games
// array is a normal "no games this week"; 409 means nothing has been
// fetched yet.
// GET /api/v1/weeks/{week}
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "week must be an integer", err)
		return
	}

	if week < 1 || week > h.maxWeeks {
		respondError(w, http.StatusBadRequest,
			fmt.Sprintf("week must be between 1 and %d", h.maxWeeks), nil)
		return
	}

	h.respondWeek(w, week)
}

// GetCurrentWeek returns the aggregated rows for the week containing
// the current instant.
// GET /api/v1/weeks/current
func (h *Handler) GetCurrentWeek(w http.ResponseWriter, r *http.Request) {
	h.respondWeek(w, h.aggregator.CurrentWeek(time.Now()))
}

// GetAllWeeks returns every week present in the snapshot, with
// autopick computed independently per week.
// GET /api/v1/weeks
func (h *Handler) GetAllWeeks(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.store.Current()
	if !ok {
		respondError(w, http.StatusConflict, "no odds loaded yet - refresh first", nil)
		return
	}

	games := h.aggregator.AllWeeks(snap.Games)

	seen := make(map[int]bool)
	weeks := []int{}
	for _, g := range games {
		if !seen[g.WeekNumber] {
			seen[g.WeekNumber] = true
			weeks = append(weeks, g.WeekNumber)
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games":      games,
		"count":      len(games),
		"weeks":      weeks,
		"fetched_at": snap.FetchedAt,
	})
}

func (h *Handler) respondWeek(w http.ResponseWriter, week int) {
	snap, ok := h.store.Current()
	if !ok {
		respondError(w, http.StatusConflict, "no odds loaded yet - refresh first", nil)
		return
	}

	games := h.aggregator.Week(snap.Games, week)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"week":       week,
		"games":      games,
		"count":      len(games),
		"fetched_at": snap.FetchedAt,
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Printf("error encoding response: %v\n", err)
	}
}

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errResp := models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}

	if err != nil {
		fmt.Printf("error: %s - %v\n", message, err)
	}

	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		fmt.Printf("error encoding error response: %v\n", err)
	}
}
