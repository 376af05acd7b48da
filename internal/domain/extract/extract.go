// Package extract walks schema-less score sheets and pulls out their
// numeric leaves, keyed by dotted path.
package extract

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// wrapKey is the conventional key score sheets use to wrap their fields
// one level deeper. When present with an object value, extraction starts
// below it.
const wrapKey = "fields"

// Fields returns every numeric leaf reachable through non-array object
// nesting, keyed by its dotted raw-key path. String leaves that parse to
// a finite number count as numeric; arrays and any other scalar carry no
// score data and are skipped. A missing or non-object sheet yields an
// empty map, never an error.
func Fields(sheet any) map[string]float64 {
	out := make(map[string]float64)
	obj, ok := sheet.(map[string]any)
	if !ok {
		return out
	}
	if inner, ok := obj[wrapKey].(map[string]any); ok {
		obj = inner
	}
	walk(obj, "", out)
	return out
}

func walk(obj map[string]any, prefix string, out map[string]float64) {
	for key, value := range obj {
		rawKey := key
		if prefix != "" {
			rawKey = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			walk(v, rawKey, out)
		case float64:
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				out[rawKey] = v
			}
		case int:
			out[rawKey] = float64(v)
		case int64:
			out[rawKey] = float64(v)
		case json.Number:
			if n, ok := parseNumeric(v.String()); ok {
				out[rawKey] = n
			}
		case string:
			if n, ok := parseNumeric(v); ok {
				out[rawKey] = n
			}
		}
	}
}

// parseNumeric coerces a string leaf via standard decimal parsing.
// Blank strings and non-finite results are rejected.
func parseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
