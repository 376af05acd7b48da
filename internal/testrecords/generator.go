package testrecords

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/acgithub1138/drillscore/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	competitionCount   = 6
	weekSpread         = 12
)

// Score-sheet shape constants. Raw keys look like
// field_<criterion>_<revision>.<description>; half the records use the
// older form revision so that reports exercise label unification.
const (
	oldRevision = "2"
	newRevision = "7"
	penaltyKey  = "field_9_boot_violation"
)

// Scoring criteria present on every generated sheet.
var criteria = []struct {
	num  string
	name string
}{
	{"1", "Report_In"},
	{"3", "Routine_Marching"},
	{"4", "Routine_Rifle_Work"},
	{"7", "Report_Out"},
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// getRandomInt returns a random int in [0, max).
func getRandomInt(max int64) int64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(max))
	return n.Int64()
}

// generateRecords creates the specified number of score records spread
// across competitions and performance dates.
func generateRecords(ctx context.Context, config *Config, stats *Stats) ([]Record, error) {
	logger.Get().Info(ctx, "generating score records",
		logger.Int("numRecords", config.NumRecords),
		logger.String("eventType", config.EventType),
		logger.String("groupID", config.GroupID))

	// Pre-allocate competitions so several records share one
	competitions := make([]string, competitionCount)
	for i := range competitions {
		competitions[i] = "comp-" + uuid.New().String()[:8]
	}

	records := make([]Record, config.NumRecords)
	for i := 0; i < config.NumRecords; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		records[i] = generateSingleRecord(i, config, competitions)
	}

	stats.RecordsGenerated = len(records)
	logger.Get().Info(ctx, "generated records successfully", logger.Int("count", len(records)))

	return records, nil
}

// generateSingleRecord creates a single score record.
func generateSingleRecord(index int, config *Config, competitions []string) Record {
	// Spread performances across recent weekends
	weeksAgo := getRandomInt(weekSpread)
	date := time.Now().UTC().AddDate(0, 0, -int(weeksAgo)*7).Format("2006-01-02")

	competition := competitions[getRandomInt(int64(len(competitions)))]

	// Unique record ID
	recordID := "record_" + strconv.Itoa(index) + "_" + uuid.New().String()

	return Record{
		ID:            recordID,
		EventType:     config.EventType,
		GroupID:       config.GroupID,
		CompetitionID: competition,
		Date:          date,
		ScoreSheet:    generateScoreSheet(index),
	}
}

// generateScoreSheet builds a nested score sheet. Even-indexed records
// use the older form revision, odd-indexed the newer one, so the two
// shapes land in the same report under one criterion label.
func generateScoreSheet(index int) map[string]any {
	revision := newRevision
	if index%2 == 0 {
		revision = oldRevision
	}

	fields := make(map[string]any, len(criteria)+1)
	for _, c := range criteria {
		fields["field_"+c.num+"_"+revision+"."+c.name] = generateScore()
	}
	// Penalty fields score low and occasionally as numeric strings
	if index%3 == 0 {
		fields[penaltyKey] = strconv.FormatFloat(getRandomFloat()*5, 'f', 1, 64)
	} else {
		fields[penaltyKey] = getRandomFloat() * 5
	}

	return map[string]any{"fields": fields}
}

// generateScore returns a drill score between 60.0 and 100.0 with a
// skew toward the middle of the range.
func generateScore() float64 {
	base := 60.0 + getRandomFloat()*40.0
	mid := 60.0 + getRandomFloat()*40.0
	return (base + mid) / 2
}
