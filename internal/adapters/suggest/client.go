package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/acgithub1138/drillscore/internal/domain/model"
)

const defaultTimeout = 5 * time.Second

// Client is an HTTP Suggester talking to the similarity service.
type Client struct {
	baseURL string
	httpc   *http.Client
	timeout time.Duration
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithTimeout bounds each lookup call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		if httpc != nil {
			c.httpc = httpc
		}
	}
}

// NewClient creates a client for the similarity service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   http.DefaultClient,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// candidatesResponse mirrors the service's lookup envelope.
type candidatesResponse struct {
	Candidates []model.SimilarityCandidate `json:"candidates"`
}

// FindSimilar asks the service for mappings similar to the criterion.
// The call is bounded by the client timeout so a slow service degrades
// to "no suggestions" at the caller instead of blocking a scan.
func (c *Client) FindSimilar(ctx context.Context, criterion, eventType string) ([]model.SimilarityCandidate, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("criterion", criterion)
	q.Set("event_type", eventType)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/similar?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrLookup, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookup, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrLookup, resp.StatusCode)
	}

	var body candidatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrLookup, err)
	}
	return body.Candidates, nil
}
