package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/acgithub1138/drillscore/internal/domain/model"
	"github.com/acgithub1138/drillscore/pkg/metrics"
)

const componentMappingStore = "mapping_store"

// criteriaMappingRow is the persisted shape of a criteria mapping.
type criteriaMappingRow struct {
	ID          string `gorm:"primaryKey;size:36"`
	EventType   string `gorm:"size:64;index:idx_mappings_scope"`
	GroupID     string `gorm:"size:64;index:idx_mappings_scope"`
	Global      bool
	DisplayName string
	Criteria    datatypes.JSON
	UsageCount  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (criteriaMappingRow) TableName() string { return "criteria_mappings" }

// SQLMappingStore implements MappingStore over gorm.
type SQLMappingStore struct {
	db *gorm.DB
}

// NewMappingStore creates a mapping store bound to db.
func NewMappingStore(db *gorm.DB) *SQLMappingStore {
	return &SQLMappingStore{db: db}
}

// Load returns the group's mappings plus global ones, usage descending.
// Without a group context it fails closed: empty list, no error.
func (s *SQLMappingStore) Load(ctx context.Context, eventType, groupID string) ([]model.CriteriaMapping, error) {
	if groupID == "" {
		return []model.CriteriaMapping{}, nil
	}

	var rows []criteriaMappingRow
	err := s.db.WithContext(ctx).
		Where("event_type = ?", eventType).
		Where("group_id = ? OR global = ?", groupID, true).
		Order("usage_count DESC").
		Find(&rows).Error
	if err != nil {
		metrics.RecordErrorByComponent(componentMappingStore, "load")
		return nil, fmt.Errorf("%w: load mappings: %v", ErrStorage, err)
	}

	mappings := make([]model.CriteriaMapping, 0, len(rows))
	for _, row := range rows {
		m := model.CriteriaMapping{
			ID:          row.ID,
			EventType:   row.EventType,
			GroupID:     row.GroupID,
			DisplayName: row.DisplayName,
			UsageCount:  row.UsageCount,
			Global:      row.Global,
		}
		if len(row.Criteria) > 0 {
			if err := json.Unmarshal(row.Criteria, &m.Criteria); err != nil {
				metrics.RecordErrorByComponent(componentMappingStore, "decode")
				return nil, fmt.Errorf("%w: decode mapping %s criteria: %v", ErrStorage, row.ID, err)
			}
		}
		mappings = append(mappings, m)
	}
	return mappings, nil
}

// Save replaces the group's non-global mappings for the event type with
// the given list, delete-then-insert in one transaction. Global rows and
// other groups' rows are untouched. An empty list clears the scope.
func (s *SQLMappingStore) Save(ctx context.Context, eventType, groupID string, mappings []model.CriteriaMapping) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("event_type = ? AND group_id = ? AND global = ?", eventType, groupID, false).
			Delete(&criteriaMappingRow{}).Error; err != nil {
			return err
		}
		for _, m := range mappings {
			criteria, err := json.Marshal(m.Criteria)
			if err != nil {
				return err
			}
			id := m.ID
			if id == "" {
				id = uuid.New().String()
			}
			row := criteriaMappingRow{
				ID:          id,
				EventType:   eventType,
				GroupID:     groupID,
				Global:      false,
				DisplayName: m.DisplayName,
				Criteria:    datatypes.JSON(criteria),
				UsageCount:  m.UsageCount,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		metrics.RecordErrorByComponent(componentMappingStore, "save")
		return fmt.Errorf("%w: save mappings: %v", ErrStorage, err)
	}
	return nil
}

// Count returns the number of stored mappings.
func (s *SQLMappingStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&criteriaMappingRow{}).Count(&n).Error; err != nil {
		metrics.RecordErrorByComponent(componentMappingStore, "count")
		return 0, fmt.Errorf("%w: count mappings: %v", ErrStorage, err)
	}
	return n, nil
}
