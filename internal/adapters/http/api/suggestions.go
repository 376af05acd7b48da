// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/acgithub1138/drillscore/internal/domain/model"
)

// SuggestionsHandler handles mapping suggestion lookups.
type SuggestionsHandler struct {
	deps Dependencies
}

// NewSuggestionsHandler creates a new suggestions handler.
func NewSuggestionsHandler(deps Dependencies) *SuggestionsHandler {
	return &SuggestionsHandler{deps: deps}
}

type suggestionsResponse struct {
	Candidates []model.SimilarityCandidate `json:"candidates"`
}

// scanRequest mirrors the wire schema for POST /suggestions/scan.
type scanRequest struct {
	EventType string   `json:"event_type"`
	Criteria  []string `json:"criteria"`
}

type scanResponse struct {
	Suggestions map[string][]model.SimilarityCandidate `json:"suggestions"`
}

// HandleGetSuggestions handles GET /suggestions requests.
func (h *SuggestionsHandler) HandleGetSuggestions(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_suggestions"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	criterion := q.Get("criterion")
	eventType := q.Get("event_type")
	if strings.TrimSpace(criterion) == "" || strings.TrimSpace(eventType) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: criterion and event_type are required", op, ErrBadRequest))
		return
	}

	candidates, err := h.deps.Suggestions(r.Context(), criterion, eventType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}
	if candidates == nil {
		candidates = []model.SimilarityCandidate{}
	}
	writeJSON(w, http.StatusOK, suggestionsResponse{Candidates: candidates})
}

// HandlePostScan handles POST /suggestions/scan requests.
func (h *SuggestionsHandler) HandlePostScan(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_suggestions_scan"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %v", op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.EventType) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: event_type is required", op, ErrBadRequest))
		return
	}

	suggestions, err := h.deps.ScanSuggestions(r.Context(), req.EventType, req.Criteria)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, scanResponse{Suggestions: suggestions})
}
