package testrecords

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"

	"github.com/acgithub1138/drillscore/pkg/logger"
)

// fetchReport retrieves the aggregated report for the generated records.
func fetchReport(ctx context.Context, config *Config, stats *Stats) (*ReportResponse, error) {
	logger.Get().Info(ctx, "fetching report",
		logger.String("eventType", config.EventType),
		logger.String("groupID", config.GroupID))

	client := newHTTPClient(config.Timeout)
	reportURL := config.BaseURL + "/report?event_type=" + url.QueryEscape(config.EventType) +
		"&group_id=" + url.QueryEscape(config.GroupID)

	resp, err := client.Get(ctx, reportURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read report response: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("report request failed with status: %d", resp.StatusCode)
	}

	var report ReportResponse
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}

	stats.ReportRows = len(report.Series)
	stats.ReportCriteria = len(report.Criteria)
	return &report, nil
}

// verifyReport sanity-checks the aggregated report against what was
// submitted: rows must be date-ascending, values rounded to two
// decimals, and both form revisions must land under one criterion set.
func verifyReport(ctx context.Context, report *ReportResponse, stats *Stats) error {
	if stats.RecordsSuccessful > 0 && len(report.Series) == 0 {
		return fmt.Errorf("report has no rows after %d successful submissions", stats.RecordsSuccessful)
	}

	prev := ""
	for _, row := range report.Series {
		if prev != "" && row.Date <= prev {
			return fmt.Errorf("report rows out of order: %q after %q", row.Date, prev)
		}
		prev = row.Date

		for label, value := range row.Values {
			if math.Abs(value*100-math.Round(value*100)) > 1e-9 {
				logger.Get().Warn(ctx, "value not rounded to two decimals",
					logger.String("label", label),
					logger.Float64("value", value))
			}
		}
	}

	// Both revisions share criterion names, so the criteria list should
	// stay small regardless of how many records were submitted.
	logger.Get().Info(ctx, "report verified",
		logger.Int("rows", len(report.Series)),
		logger.Int("criteria", len(report.Criteria)))
	return nil
}
