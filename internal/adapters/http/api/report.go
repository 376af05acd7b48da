// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strings"
)

// ReportHandler handles performance report requests.
type ReportHandler struct {
	deps Dependencies
}

// NewReportHandler creates a new report handler.
func NewReportHandler(deps Dependencies) *ReportHandler {
	return &ReportHandler{deps: deps}
}

// HandleGetReport handles GET /report requests.
//
// The competition_ids parameter distinguishes absent from empty: omitting
// it means no filter, while competition_ids= (present but blank) means the
// caller deselected every competition and gets an empty report.
func (h *ReportHandler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_report"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	eventType := q.Get("event_type")
	groupID := q.Get("group_id")
	if strings.TrimSpace(eventType) == "" || strings.TrimSpace(groupID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: event_type and group_id are required", op, ErrBadRequest))
		return
	}

	var competitionIDs []string
	if q.Has("competition_ids") {
		competitionIDs = []string{}
		for _, id := range strings.Split(q.Get("competition_ids"), ",") {
			if id = strings.TrimSpace(id); id != "" {
				competitionIDs = append(competitionIDs, id)
			}
		}
	}

	report, err := h.deps.BuildReport(r.Context(), eventType, groupID, competitionIDs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}
