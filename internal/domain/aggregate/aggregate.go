// Package aggregate turns score records into a date-ordered time series
// of per-criterion averages.
package aggregate

import (
	"math"
	"sort"

	"github.com/acgithub1138/drillscore/internal/domain/extract"
	"github.com/acgithub1138/drillscore/internal/domain/label"
	"github.com/acgithub1138/drillscore/internal/domain/model"
)

// Series buckets every extracted value by (date, final label), pools
// values that collapse onto the same bucket, and emits one sparse row
// per distinct date, ascending. Raw keys missing from rawToFinal fall
// back to their formatted label. Means are rounded half-up to two
// decimal places; a (date, label) bucket with no values is simply absent
// from that row.
func Series(records []model.ScoreRecord, rawToFinal map[string]string) []model.ReportRow {
	buckets := make(map[string]map[string][]float64)
	for _, rec := range records {
		fields := extract.Fields(rec.ScoreSheet)
		if len(fields) == 0 {
			continue
		}
		day := rec.DateKey()
		row, ok := buckets[day]
		if !ok {
			row = make(map[string][]float64)
			buckets[day] = row
		}
		for raw, v := range fields {
			lbl, ok := rawToFinal[raw]
			if !ok {
				lbl = label.Format(raw)
			}
			row[lbl] = append(row[lbl], v)
		}
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	// Calendar-date keys sort chronologically as strings.
	sort.Strings(days)

	series := make([]model.ReportRow, 0, len(days))
	for _, day := range days {
		values := make(map[string]float64, len(buckets[day]))
		for lbl, pool := range buckets[day] {
			values[lbl] = Round2(mean(pool))
		}
		series = append(series, model.ReportRow{Date: day, Values: values})
	}
	return series
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Round2 rounds half-up to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
