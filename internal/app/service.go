// Package service provides the core reporting service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/acgithub1138/drillscore/internal/adapters/repository"
	"github.com/acgithub1138/drillscore/internal/adapters/suggest"
	"github.com/acgithub1138/drillscore/internal/domain/aggregate"
	"github.com/acgithub1138/drillscore/internal/domain/dedupe"
	"github.com/acgithub1138/drillscore/internal/domain/mapping"
	"github.com/acgithub1138/drillscore/internal/domain/model"
	"github.com/acgithub1138/drillscore/internal/domain/registry"
	"github.com/acgithub1138/drillscore/pkg/logger"
	"github.com/acgithub1138/drillscore/pkg/metrics"
)

const defaultScanConcurrency = 8

// Service implements the reporting façade: report builds, mapping saves,
// suggestion lookups and record ingest.
type Service struct {
	mu sync.RWMutex

	// Core components
	records   repository.RecordStore
	mappings  repository.MappingStore
	suggester suggest.Suggester
	seen      dedupe.Tracker

	// Configuration
	dedupeSize      int
	scanConcurrency int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithRecordStore sets the score-record store.
func WithRecordStore(store repository.RecordStore) Option {
	return func(s *Service) {
		s.records = store
	}
}

// WithMappingStore sets the criteria-mapping store.
func WithMappingStore(store repository.MappingStore) Option {
	return func(s *Service) {
		s.mappings = store
	}
}

// WithSuggester sets the similarity lookup client.
func WithSuggester(sg suggest.Suggester) Option {
	return func(s *Service) {
		s.suggester = sg
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDedupeSize sets the size of the ingest idempotency cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithScanConcurrency bounds concurrent suggestion lookups per scan.
func WithScanConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.scanConcurrency = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dedupeSize:      50000,
		scanConcurrency: defaultScanConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start validates wiring and initializes internal components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.records == nil || s.mappings == nil {
		return ErrNotConfigured
	}

	s.seen = dedupe.NewTracker(dedupe.WithMaxSize(s.dedupeSize))
	s.started = true
	s.logger.Info(ctx, "reporting service started",
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("scanConcurrency", s.scanConcurrency),
	)
	return nil
}

// Stop marks the service stopped. The pipeline holds no background
// state, so there is nothing to drain.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "reporting service stopped")
}

// IngestRecord persists a score record posted by the scoring workflow.
// Returns true if the record was already seen (duplicate ack).
func (s *Service) IngestRecord(ctx context.Context, rec model.ScoreRecord) (bool, error) {
	if s.seen.SeenAndRecord(ctx, rec.ID) {
		metrics.RecordIngestDuplicate()
		return true, nil
	}
	if err := s.records.Insert(ctx, rec); err != nil {
		// Roll back the seen mark so a retry can succeed.
		s.seen.Forget(ctx, rec.ID)
		return false, fmt.Errorf("ingest record: %w", err)
	}
	metrics.RecordIngested()
	s.logger.Debug(ctx, "record ingested",
		logger.String("recordID", rec.ID),
		logger.String("eventType", rec.EventType),
		logger.String("date", rec.DateKey()),
	)
	return false, nil
}

// BuildReport answers "time series for event X, criteria subset Y,
// competitions Z". A present-but-empty competition filter is the
// explicit no-competitions-selected state: it returns an empty report
// without touching the record store. Read-only and side-effect-free.
func (s *Service) BuildReport(ctx context.Context, eventType, groupID string, competitionIDs []string) (model.Report, error) {
	start := time.Now()
	if competitionIDs != nil && len(competitionIDs) == 0 {
		return model.Report{Series: []model.ReportRow{}, Criteria: []string{}}, nil
	}

	records, err := s.records.Query(ctx, eventType, groupID, competitionIDs)
	if err != nil {
		return model.Report{}, fmt.Errorf("build report: %w", err)
	}
	mappings, err := s.mappings.Load(ctx, eventType, groupID)
	if err != nil {
		return model.Report{}, fmt.Errorf("build report: %w", err)
	}

	reg := registry.Build(records)
	final := mapping.Apply(mappings, reg.RawToDisplay)
	report := model.Report{
		Series:   aggregate.Series(records, final),
		Criteria: mapping.CriteriaList(mappings, reg.RawToDisplay),
	}

	metrics.RecordReportBuilt(float64(time.Since(start).Milliseconds()))
	metrics.AddFieldsExtracted(len(reg.RawToDisplay))
	s.logger.Debug(ctx, "report built",
		logger.String("eventType", eventType),
		logger.Int("records", len(records)),
		logger.Int("criteria", len(report.Criteria)),
		logger.Int("rows", len(report.Series)),
	)
	return report, nil
}

// LoadMappings returns the mappings visible to the group for the event
// type, usage descending.
func (s *Service) LoadMappings(ctx context.Context, eventType, groupID string) ([]model.CriteriaMapping, error) {
	mappings, err := s.mappings.Load(ctx, eventType, groupID)
	if err != nil {
		return nil, fmt.Errorf("load mappings: %w", err)
	}
	return mappings, nil
}

// SaveMappings validates and persists the group's mapping set for the
// event type. Invalid edits are rejected before anything is persisted;
// nothing is partially applied.
func (s *Service) SaveMappings(ctx context.Context, eventType, groupID string, mappings []model.CriteriaMapping) error {
	if strings.TrimSpace(groupID) == "" {
		return ErrNoGroup
	}
	for _, m := range mappings {
		if err := mapping.Validate(m); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInvalidMapping, m.DisplayName, err)
		}
	}
	if err := s.mappings.Save(ctx, eventType, groupID, mappings); err != nil {
		return fmt.Errorf("save mappings: %w", err)
	}
	metrics.RecordMappingSave(len(mappings))
	s.logger.Info(ctx, "mappings saved",
		logger.String("eventType", eventType),
		logger.String("groupID", groupID),
		logger.Int("count", len(mappings)),
	)
	return nil
}

// Suggestions returns ranked candidates for one criterion, filtered to
// the similarity floor. A service failure degrades to no candidates.
func (s *Service) Suggestions(ctx context.Context, criterion, eventType string) ([]model.SimilarityCandidate, error) {
	if s.suggester == nil {
		return nil, nil
	}
	metrics.RecordSuggestionLookup()
	candidates, err := s.suggester.FindSimilar(ctx, criterion, eventType)
	if err != nil {
		metrics.RecordSuggestionFailure()
		s.logger.Warn(ctx, "suggestion lookup failed; treating as no candidates",
			logger.String("criterion", criterion),
			logger.Error(err),
		)
		return nil, nil
	}
	return suggest.Filter(candidates), nil
}

// ScanSuggestions looks up every unmapped criterion concurrently and
// returns whatever completed: individual failures are logged and yield
// no candidates for that criterion only. Each criterion's list is capped
// to the top candidates by service ranking.
func (s *Service) ScanSuggestions(ctx context.Context, eventType string, criteria []string) (map[string][]model.SimilarityCandidate, error) {
	out := make(map[string][]model.SimilarityCandidate, len(criteria))
	if s.suggester == nil || len(criteria) == 0 {
		return out, nil
	}

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(s.scanConcurrency)
	for _, criterion := range criteria {
		criterion := criterion
		g.Go(func() error {
			metrics.RecordSuggestionLookup()
			candidates, err := s.suggester.FindSimilar(ctx, criterion, eventType)
			if err != nil {
				metrics.RecordSuggestionFailure()
				s.logger.Warn(ctx, "suggestion lookup failed during scan",
					logger.String("criterion", criterion),
					logger.Error(err),
				)
				return nil // settle-all: one failure must not sink the scan
			}
			filtered := suggest.Top(suggest.Filter(candidates), suggest.ScanTopN)
			if len(filtered) == 0 {
				return nil
			}
			mu.Lock()
			out[criterion] = filtered
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // workers never return errors
	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":         s.started,
		"dedupeSize":      s.dedupeSize,
		"scanConcurrency": s.scanConcurrency,
	}
	if !s.started {
		return stats
	}

	stats["seenRecords"] = s.seen.Size()
	if n, err := s.records.Count(ctx); err == nil {
		stats["totalRecords"] = n
		metrics.UpdateTotalRecords(n)
	}
	if n, err := s.mappings.Count(ctx); err == nil {
		stats["totalMappings"] = n
		metrics.UpdateTotalMappings(n)
	}
	return stats
}
