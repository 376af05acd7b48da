// Package repository provides SQL-backed stores for score records and
// criteria mappings.
package repository

import (
	"context"

	"github.com/acgithub1138/drillscore/internal/domain/model"
)

// RecordStore provides read/write access to stored score records.
type RecordStore interface {
	// Insert persists one score record. The record's ID must be set.
	Insert(ctx context.Context, rec model.ScoreRecord) error

	// Query returns records matching the event type and group, date
	// ascending. A nil competitionIDs applies no competition filter; an
	// empty slice matches nothing.
	Query(ctx context.Context, eventType, groupID string, competitionIDs []string) ([]model.ScoreRecord, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)
}

// MappingStore provides access to persisted criteria mappings.
type MappingStore interface {
	// Load returns mappings for the event type visible to the group:
	// the group's own rows plus global rows, ordered by descending
	// usage count. Fails closed (empty, no error) without a group.
	Load(ctx context.Context, eventType, groupID string) ([]model.CriteriaMapping, error)

	// Save replaces all non-global mappings owned by the group for the
	// event type with the given list, in one transaction. Global rows
	// are never touched. An empty list clears the group's custom
	// mappings for that event type.
	Save(ctx context.Context, eventType, groupID string, mappings []model.CriteriaMapping) error

	// Count returns the number of stored mappings.
	Count(ctx context.Context) (int64, error)
}
