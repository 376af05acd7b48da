package testrecords

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitRecords submits records concurrently using worker pools
func submitRecords(ctx context.Context, config *Config, records []Record, stats *Stats) error {
	log.Printf("submitting %d records with %d workers...", len(records), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/records"

	// Counters for statistics
	var (
		successful int64
		duplicate  int64
		failed     int64
		submitted  int64
	)

	recordChan := make(chan Record, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for record := range recordChan {
				select {
				case <-ctx.Done():
					return
				default:
					result := submitSingleRecord(ctx, client, url, record)

					atomic.AddInt64(&submitted, 1)
					switch result {
					case "success":
						atomic.AddInt64(&successful, 1)
					case "duplicate":
						atomic.AddInt64(&duplicate, 1)
					case "failed":
						atomic.AddInt64(&failed, 1)
					}

					if config.Verbose {
						total := atomic.LoadInt64(&submitted)
						if total%100 == 0 {
							log.Printf("progress: %d/%d submitted (success: %d, duplicate: %d, failed: %d)",
								total, len(records),
								atomic.LoadInt64(&successful),
								atomic.LoadInt64(&duplicate),
								atomic.LoadInt64(&failed))
						}
					}
				}
			}
		}()
	}

	// Send records to workers
	go func() {
		defer close(recordChan)
		for _, record := range records {
			select {
			case <-ctx.Done():
				return
			case recordChan <- record:
			}
		}
	}()

	wg.Wait()

	// Update stats
	stats.RecordsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.RecordsSuccessful = int(atomic.LoadInt64(&successful))
	stats.RecordsDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.RecordsFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`record submission completed:
   Successful: %d
   Duplicate: %d
   Failed: %d
`, stats.RecordsSuccessful, stats.RecordsDuplicate, stats.RecordsFailed)

	return nil
}

// submitSingleRecord submits a single record and returns the result
func submitSingleRecord(ctx context.Context, client *HTTPClient, url string, record Record) string {
	resp, err := client.Post(ctx, url, record)
	if err != nil {
		return "failed"
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return "failed"
	}

	switch resp.StatusCode {
	case StatusAccepted:
		return "success"
	case StatusOK:
		var ack AckResponse
		if err := json.Unmarshal(body, &ack); err == nil && ack.Duplicate {
			return "duplicate"
		}
		return "duplicate"
	default:
		return "failed"
	}
}
