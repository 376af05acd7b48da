package model

// CriteriaMapping groups semantically-equivalent criteria under one
// user-chosen display name. Score-sheet schema drift produces distinct
// display labels for the same logical criterion; a mapping absorbs those
// aliases so they report as a single series.
//
// A mapping is owned by a group, or shared across all groups when Global
// is set. A given raw/formatted criterion belongs to at most one mapping;
// reassignment is last-write-wins at save time.
type CriteriaMapping struct {
	ID          string   `json:"id"`
	EventType   string   `json:"event_type"`
	GroupID     string   `json:"group_id,omitempty"` // empty for global rows
	DisplayName string   `json:"display_name"`
	Criteria    []string `json:"criteria"` // raw or formatted criterion strings absorbed
	UsageCount  int      `json:"usage_count"`
	Global      bool     `json:"global"`
}

// SimilarityCandidate is an externally-suggested existing mapping that
// might apply to a newly observed criterion. Candidates are advisory;
// one only becomes a mapping through an explicit user action.
type SimilarityCandidate struct {
	MappingID        string   `json:"mapping_id"`
	DisplayName      string   `json:"display_name"`
	OriginalCriteria []string `json:"original_criteria"`
	UsageCount       int      `json:"usage_count"`
	Similarity       float64  `json:"similarity"` // in [0,1]
}
