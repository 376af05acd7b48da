// Package registry accumulates the criteria observed across a batch of
// score records.
package registry

import (
	"sort"

	"github.com/acgithub1138/drillscore/internal/domain/extract"
	"github.com/acgithub1138/drillscore/internal/domain/label"
	"github.com/acgithub1138/drillscore/internal/domain/model"
)

// Registry holds the raw-key to display-label translation discovered in
// one record batch, plus the distinct label set. It is rebuilt from
// scratch per query: the record set behind it changes with every filter.
type Registry struct {
	RawToDisplay  map[string]string
	DisplayLabels []string // distinct, sorted by the label comparator
}

// Build walks every record's extracted field map and formats each raw
// key once. Duplicate raw keys across records collapse; duplicate
// display labels across distinct raw keys are kept as one label.
func Build(records []model.ScoreRecord) Registry {
	r := Registry{RawToDisplay: make(map[string]string)}
	seen := make(map[string]struct{})
	for _, rec := range records {
		for raw := range extract.Fields(rec.ScoreSheet) {
			if _, ok := r.RawToDisplay[raw]; ok {
				continue
			}
			l := label.Format(raw)
			r.RawToDisplay[raw] = l
			if _, ok := seen[l]; !ok {
				seen[l] = struct{}{}
				r.DisplayLabels = append(r.DisplayLabels, l)
			}
		}
	}
	sort.Slice(r.DisplayLabels, func(i, j int) bool {
		return label.Less(r.DisplayLabels[i], r.DisplayLabels[j])
	})
	return r
}
