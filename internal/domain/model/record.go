// Package model contains domain models passed between layers.
package model

import "time"

// DateLayout is the calendar-date form used for aggregation buckets and
// the wire format of record dates.
const DateLayout = "2006-01-02"

// ScoreRecord is one scored performance as produced by the scoring
// workflow. The score sheet is schema-less: an arbitrarily nested JSON
// object whose numeric (or numeric-string) leaves carry the scores.
// Records are immutable inputs to the reporting pipeline.
type ScoreRecord struct {
	ID            string         // unique id for idempotent ingest
	EventType     string         // competition event type, e.g. "armed_regulation"
	GroupID       string         // owning group (school)
	CompetitionID string         // competition this performance belongs to
	Date          time.Time      // performance date (calendar date, required)
	ScoreSheet    map[string]any // decoded score-sheet JSON; may be nil
}

// DateKey returns the calendar-date identity used to bucket this record.
func (r ScoreRecord) DateKey() string {
	return r.Date.Format(DateLayout)
}

// ReportRow is one date row of an aggregated series. Values is sparse:
// a criterion with no data on this date is absent, not zero.
type ReportRow struct {
	Date   string             `json:"date"`
	Values map[string]float64 `json:"values"`
}

// Report is the chart-ready result of a report build: the date-ordered
// series plus the final sorted criterion list for the legend.
type Report struct {
	Series   []ReportRow `json:"series"`
	Criteria []string    `json:"criteria"`
}
