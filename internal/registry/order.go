package registry

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"
)

// SortRecords orders recs by key: keys that parse as numbers come first in
// numeric order, the remaining keys follow in lexical order, and ties are
// broken by id.
func SortRecords(recs []Record) {
	slices.SortStableFunc(recs, compareRecords)
}

func compareRecords(a, b Record) int {
	an, aok := numericKey(a.Key)
	bn, bok := numericKey(b.Key)
	switch {
	case aok && bok:
		if c := cmp.Compare(an, bn); c != 0 {
			return c
		}
	case aok:
		return -1
	case bok:
		return 1
	default:
		if c := strings.Compare(a.Key, b.Key); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.ID, b.ID)
}

func numericKey(k string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(k), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
