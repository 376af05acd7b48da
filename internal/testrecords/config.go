package testrecords

import "time"

// Config holds configuration for the record ingest test
type Config struct {
	BaseURL    string        // Base URL of the service
	NumRecords int           // Number of score records to generate
	EventType  string        // Event type used for generated records
	GroupID    string        // Group (school) the records belong to
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Output file for records
	LogFile    string        // Log file for test output
	Verbose    bool          // Enable verbose logging
}

// Record represents a score record to be submitted
type Record struct {
	ID            string         `json:"id"`
	EventType     string         `json:"event_type"`
	GroupID       string         `json:"group_id"`
	CompetitionID string         `json:"competition_id"`
	Date          string         `json:"date"`
	ScoreSheet    map[string]any `json:"score_sheet"`
}

// AckResponse represents the response from record submission
type AckResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// ReportResponse represents the aggregated report returned by the service
type ReportResponse struct {
	Series []struct {
		Date   string             `json:"date"`
		Values map[string]float64 `json:"values"`
	} `json:"series"`
	Criteria []string `json:"criteria"`
}

// Stats holds test statistics
type Stats struct {
	RecordsGenerated  int
	RecordsSubmitted  int
	RecordsSuccessful int
	RecordsDuplicate  int
	RecordsFailed     int
	ReportRows        int
	ReportCriteria    int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
