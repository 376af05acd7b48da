package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/acgithub1138/drillscore/internal/domain/model"
	"github.com/acgithub1138/drillscore/pkg/metrics"
)

const componentRecordStore = "record_store"

// scoreRecordRow is the persisted shape of a score record. The score
// sheet stays schema-less: one JSON column, decoded on read.
type scoreRecordRow struct {
	ID            string `gorm:"primaryKey;size:36"`
	EventType     string `gorm:"size:64;index:idx_records_scope"`
	GroupID       string `gorm:"size:64;index:idx_records_scope"`
	CompetitionID string `gorm:"size:64;index"`
	Date          time.Time
	ScoreSheet    datatypes.JSON
	CreatedAt     time.Time
}

func (scoreRecordRow) TableName() string { return "score_records" }

// SQLRecordStore implements RecordStore over gorm.
type SQLRecordStore struct {
	db *gorm.DB
}

// NewRecordStore creates a record store bound to db.
func NewRecordStore(db *gorm.DB) *SQLRecordStore {
	return &SQLRecordStore{db: db}
}

// Insert persists one score record.
func (s *SQLRecordStore) Insert(ctx context.Context, rec model.ScoreRecord) error {
	if rec.ID == "" {
		return ErrMissingID
	}
	if rec.Date.IsZero() {
		return ErrMissingDate
	}

	var sheet datatypes.JSON
	if rec.ScoreSheet != nil {
		raw, err := json.Marshal(rec.ScoreSheet)
		if err != nil {
			metrics.RecordErrorByComponent(componentRecordStore, "encode")
			return fmt.Errorf("%w: encode score sheet: %v", ErrStorage, err)
		}
		sheet = datatypes.JSON(raw)
	}

	row := scoreRecordRow{
		ID:            rec.ID,
		EventType:     rec.EventType,
		GroupID:       rec.GroupID,
		CompetitionID: rec.CompetitionID,
		Date:          rec.Date,
		ScoreSheet:    sheet,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		metrics.RecordErrorByComponent(componentRecordStore, "insert")
		return fmt.Errorf("%w: insert record %s: %v", ErrStorage, rec.ID, err)
	}
	return nil
}

// Query returns matching records, date ascending.
func (s *SQLRecordStore) Query(ctx context.Context, eventType, groupID string, competitionIDs []string) ([]model.ScoreRecord, error) {
	q := s.db.WithContext(ctx).
		Where("event_type = ? AND group_id = ?", eventType, groupID).
		Order("date ASC")
	if competitionIDs != nil {
		q = q.Where("competition_id IN ?", competitionIDs)
	}

	var rows []scoreRecordRow
	if err := q.Find(&rows).Error; err != nil {
		metrics.RecordErrorByComponent(componentRecordStore, "query")
		return nil, fmt.Errorf("%w: query records: %v", ErrStorage, err)
	}

	records := make([]model.ScoreRecord, 0, len(rows))
	for _, row := range rows {
		rec := model.ScoreRecord{
			ID:            row.ID,
			EventType:     row.EventType,
			GroupID:       row.GroupID,
			CompetitionID: row.CompetitionID,
			Date:          row.Date,
		}
		if len(row.ScoreSheet) > 0 {
			var sheet map[string]any
			// A sheet that fails to decode contributes zero fields
			// downstream; it must not fail the whole query.
			if err := json.Unmarshal(row.ScoreSheet, &sheet); err == nil {
				rec.ScoreSheet = sheet
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// Count returns the number of stored records.
func (s *SQLRecordStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&scoreRecordRow{}).Count(&n).Error; err != nil {
		metrics.RecordErrorByComponent(componentRecordStore, "count")
		return 0, fmt.Errorf("%w: count records: %v", ErrStorage, err)
	}
	return n, nil
}
