package testrecords

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/acgithub1138/drillscore/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete record ingest test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting drill score ingest test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("records", config.NumRecords),
		logger.String("eventType", config.EventType),
		logger.String("groupID", config.GroupID),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate records
	records, err := generateRecords(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("record generation failed: %w", err)
	}

	// Step 3: Submit records concurrently
	if err := submitRecords(ctx, config, records, stats); err != nil {
		return fmt.Errorf("record submission failed: %w", err)
	}

	// Step 4: Fetch the aggregated report
	report, err := fetchReport(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("report retrieval failed: %w", err)
	}

	// Step 5: Verify the report shape
	if err := verifyReport(ctx, report, stats); err != nil {
		return fmt.Errorf("report verification failed: %w", err)
	}

	// Step 6: Save records to file
	if err := saveRecordsToFile(ctx, config, records); err != nil {
		logger.Get().Warn(ctx, "failed to save records to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveRecordsToFile saves the generated records to a JSON file.
func saveRecordsToFile(ctx context.Context, config *Config, records []Record) error {
	if len(records) == 0 {
		return fmt.Errorf("no records to save")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_records_" + timestamp + ".json"
	}

	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	if _, err := file.WriteString("[\n"); err != nil {
		return fmt.Errorf("failed to write opening bracket: %w", err)
	}

	for i, record := range records {
		jsonData, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal record %d: %w", i, err)
		}

		if _, err := file.Write(jsonData); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}

		if i < len(records)-1 {
			if _, err := file.WriteString(","); err != nil {
				return fmt.Errorf("failed to write comma: %w", err)
			}
		}
		_, _ = file.WriteString("\n")
	}

	if _, err := file.WriteString("]\n"); err != nil {
		return fmt.Errorf("failed to write closing bracket: %w", err)
	}

	logger.Get().Info(ctx, "records saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var successRate, recordsPerSecond float64

	if stats.RecordsSubmitted > 0 {
		successRate = float64(stats.RecordsSuccessful) / float64(stats.RecordsSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		recordsPerSecond = float64(stats.RecordsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("recordsGenerated", stats.RecordsGenerated),
		logger.Int("recordsSubmitted", stats.RecordsSubmitted),
		logger.Int("recordsSuccessful", stats.RecordsSuccessful),
		logger.Int("recordsDuplicate", stats.RecordsDuplicate),
		logger.Int("recordsFailed", stats.RecordsFailed),
		logger.Int("reportRows", stats.ReportRows),
		logger.Int("reportCriteria", stats.ReportCriteria),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("recordsPerSecond", recordsPerSecond))
}
