package registry

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// recordSource adapts a record slice to fuzzy.Source. Each record is matched
// on its key, label, command and program path.
type recordSource []Record

func (s recordSource) String(i int) string {
	r := s[i]
	return strings.Join([]string{r.Key, r.Label, r.Command, r.ProgramPath}, " ")
}

func (s recordSource) Len() int { return len(s) }

// Filter returns the records matching query, best match first. An empty
// query returns recs unchanged.
func Filter(recs []Record, query string) []Record {
	query = strings.TrimSpace(query)
	if query == "" {
		return recs
	}
	matches := fuzzy.FindFrom(query, recordSource(recs))
	out := make([]Record, 0, len(matches))
	for _, m := range matches {
		out = append(out, recs[m.Index])
	}
	return out
}
