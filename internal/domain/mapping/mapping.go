// Package mapping applies user-curated criteria mappings to a registry
// of formatted labels.
package mapping

import (
	"sort"
	"strings"

	"github.com/acgithub1138/drillscore/internal/domain/label"
	"github.com/acgithub1138/drillscore/internal/domain/model"
)

// Apply translates every raw key to its final label: if the formatted
// label (or the raw key itself) is absorbed by a mapping, the mapping's
// display name wins; otherwise the formatted label stays. Idempotent:
// applying the result through the same mappings again changes nothing,
// chains of display names are resolved to their terminal name.
func Apply(mappings []model.CriteriaMapping, rawToDisplay map[string]string) map[string]string {
	byCriterion := make(map[string]string)
	for _, m := range mappings {
		for _, c := range m.Criteria {
			byCriterion[c] = m.DisplayName
		}
	}

	out := make(map[string]string, len(rawToDisplay))
	for raw, lbl := range rawToDisplay {
		if name, ok := byCriterion[raw]; ok {
			out[raw] = resolve(name, byCriterion)
			continue
		}
		out[raw] = resolve(lbl, byCriterion)
	}
	return out
}

// resolve follows display-name hops until a fixed point, guarding
// against cycles between mappings.
func resolve(l string, byCriterion map[string]string) string {
	seen := make(map[string]struct{})
	for {
		next, ok := byCriterion[l]
		if !ok || next == l {
			return l
		}
		if _, cycled := seen[l]; cycled {
			return l
		}
		seen[l] = struct{}{}
		l = next
	}
}

// CriteriaList returns the final criterion list for a report: every
// mapping's terminal display name plus each label some raw key still
// resolves to, sorted numbered-first. A label drained by raw-key
// absorption drops out with its data; it survives as long as at least
// one unabsorbed raw key still formats to it.
func CriteriaList(mappings []model.CriteriaMapping, rawToDisplay map[string]string) []string {
	byCriterion := make(map[string]string)
	for _, m := range mappings {
		for _, c := range m.Criteria {
			byCriterion[c] = m.DisplayName
		}
	}

	set := make(map[string]struct{}, len(mappings)+len(rawToDisplay))
	for _, m := range mappings {
		set[resolve(m.DisplayName, byCriterion)] = struct{}{}
	}
	for _, l := range Apply(mappings, rawToDisplay) {
		set[l] = struct{}{}
	}

	out := make([]string, 0, len(set))
	for l := range set {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return label.Less(out[i], out[j]) })
	return out
}

// Validate rejects mapping edits that must never reach the store.
func Validate(m model.CriteriaMapping) error {
	if strings.TrimSpace(m.DisplayName) == "" {
		return ErrEmptyDisplayName
	}
	if len(m.Criteria) == 0 {
		return ErrNoCriteria
	}
	return nil
}
