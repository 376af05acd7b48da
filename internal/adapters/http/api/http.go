// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/acgithub1138/drillscore/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// IngestRecord persists a score record. Returns true for a duplicate ack.
	IngestRecord(ctx context.Context, rec model.ScoreRecord) (bool, error)

	// Read operations expose report and mapping data.
	BuildReport(ctx context.Context, eventType, groupID string, competitionIDs []string) (model.Report, error)
	LoadMappings(ctx context.Context, eventType, groupID string) ([]model.CriteriaMapping, error)
	SaveMappings(ctx context.Context, eventType, groupID string, mappings []model.CriteriaMapping) error

	// Suggestion lookups against the similarity service.
	Suggestions(ctx context.Context, criterion, eventType string) ([]model.SimilarityCandidate, error)
	ScanSuggestions(ctx context.Context, eventType string, criteria []string) (map[string][]model.SimilarityCandidate, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	recordsHandler     *RecordsHandler
	reportHandler      *ReportHandler
	mappingsHandler    *MappingsHandler
	suggestionsHandler *SuggestionsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		recordsHandler:     NewRecordsHandler(deps),
		reportHandler:      NewReportHandler(deps),
		mappingsHandler:    NewMappingsHandler(deps),
		suggestionsHandler: NewSuggestionsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/records", MetricsMiddleware(s.recordsHandler.HandlePostRecord, "records"))
	mux.HandleFunc("/report", MetricsMiddleware(s.reportHandler.HandleGetReport, "report"))
	mux.HandleFunc("/mappings", MetricsMiddleware(s.mappingsHandler.HandleMappings, "mappings"))
	mux.HandleFunc("/suggestions", MetricsMiddleware(s.suggestionsHandler.HandleGetSuggestions, "suggestions"))
	mux.HandleFunc("/suggestions/scan", MetricsMiddleware(s.suggestionsHandler.HandlePostScan, "suggestions_scan"))
}

// recordRequest mirrors the wire schema for POST /records.
type recordRequest struct {
	ID            string         `json:"id"`
	EventType     string         `json:"event_type"`
	GroupID       string         `json:"group_id"`
	CompetitionID string         `json:"competition_id"`
	Date          string         `json:"date"`
	ScoreSheet    map[string]any `json:"score_sheet"`
}

func (r recordRequest) validate() error {
	switch {
	case strings.TrimSpace(r.ID) == "":
		return errors.New("missing id")
	case strings.TrimSpace(r.EventType) == "":
		return errors.New("missing event_type")
	case strings.TrimSpace(r.GroupID) == "":
		return errors.New("missing group_id")
	case strings.TrimSpace(r.Date) == "":
		return errors.New("missing date")
	}
	if _, err := time.Parse(model.DateLayout, r.Date); err != nil {
		return errors.New("invalid date; must be YYYY-MM-DD")
	}
	return nil
}

func (r recordRequest) toModel() model.ScoreRecord {
	d, _ := time.Parse(model.DateLayout, r.Date)
	return model.ScoreRecord{
		ID:            r.ID,
		EventType:     r.EventType,
		GroupID:       r.GroupID,
		CompetitionID: r.CompetitionID,
		Date:          d,
		ScoreSheet:    r.ScoreSheet,
	}
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
