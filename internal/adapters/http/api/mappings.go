// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	service "github.com/acgithub1138/drillscore/internal/app"
	"github.com/acgithub1138/drillscore/internal/domain/model"
)

// MappingsHandler handles criteria mapping reads and saves.
type MappingsHandler struct {
	deps Dependencies
}

// NewMappingsHandler creates a new mappings handler.
func NewMappingsHandler(deps Dependencies) *MappingsHandler {
	return &MappingsHandler{deps: deps}
}

// mappingsRequest mirrors the wire schema for PUT /mappings.
type mappingsRequest struct {
	EventType string                  `json:"event_type"`
	GroupID   string                  `json:"group_id"`
	Mappings  []model.CriteriaMapping `json:"mappings"`
}

type mappingsResponse struct {
	Mappings []model.CriteriaMapping `json:"mappings"`
}

// HandleMappings handles GET and PUT /mappings requests.
func (h *MappingsHandler) HandleMappings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPut:
		h.handlePut(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *MappingsHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_mappings"
	q := r.URL.Query()
	eventType := q.Get("event_type")
	groupID := q.Get("group_id")
	if strings.TrimSpace(eventType) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: event_type is required", op, ErrBadRequest))
		return
	}

	mappings, err := h.deps.LoadMappings(r.Context(), eventType, groupID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, mappingsResponse{Mappings: mappings})
}

func (h *MappingsHandler) handlePut(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_mappings"
	var req mappingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %v", op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.EventType) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: event_type is required", op, ErrBadRequest))
		return
	}

	err := h.deps.SaveMappings(r.Context(), req.EventType, req.GroupID, req.Mappings)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, mappingsResponse{Mappings: req.Mappings})
	case errors.Is(err, service.ErrNoGroup), errors.Is(err, service.ErrInvalidMapping):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
	}
}
