// Package label converts raw score-sheet key paths into human-readable
// display labels and defines the ordering used for criterion lists.
package label

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Raw-key shapes, checked in order. The leading number of a numbered
// criterion is taken verbatim from the key: two schema revisions that
// changed only the numeric grouping format to different labels, and the
// mapping layer is the seam that reconciles them.
var (
	// field_<N>_<M>.<description>
	numberedRe = regexp.MustCompile(`^field_(\d+)_\d+\.(.+)$`)
	// field_<N>_<description>, single numeric group, no dot
	penaltyRe = regexp.MustCompile(`^field_\d+_([^.]+)$`)

	leadingNumRe = regexp.MustCompile(`^(\d+)\. `)
)

// Format converts a raw key into its display label. Pure: same input,
// same output.
func Format(rawKey string) string {
	if m := numberedRe.FindStringSubmatch(rawKey); m != nil {
		return m[1] + ". " + titleCase(humanize(m[2]))
	}
	if m := penaltyRe.FindStringSubmatch(rawKey); m != nil {
		return titleCase(humanize(m[1]))
	}
	return titleCase(humanize(rawKey))
}

// humanize replaces underscores with spaces.
func humanize(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

// titleCase upper-cases the first letter of each space-separated word.
// Everything else, "&" and "/" included, is preserved verbatim.
func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// leadingNumber parses the "N. " prefix of a numbered label.
func leadingNumber(s string) (int, bool) {
	m := leadingNumRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Less orders labels for criterion lists and chart legends: numbered
// labels first by their leading integer, unnumbered labels after all
// numbered ones, ties broken alphabetically.
func Less(a, b string) bool {
	na, oka := leadingNumber(a)
	nb, okb := leadingNumber(b)
	switch {
	case oka && okb:
		if na != nb {
			return na < nb
		}
		return a < b
	case oka:
		return true
	case okb:
		return false
	default:
		return a < b
	}
}
