package search

import "github.com/kailas-cloud/leadscout/internal/domain/lead"

// Deduplicate collapses records sharing a normalized name.
// The last record seen for a key wins; it takes the position where the key first appeared.
func Deduplicate(records []lead.Record) []lead.Record {
	out := make([]lead.Record, 0, len(records))
	pos := make(map[string]int, len(records))

	for _, r := range records {
		k := r.Key()
		if i, ok := pos[k]; ok {
			out[i] = r
			continue
		}
		pos[k] = len(out)
		out = append(out, r)
	}
	return out
}
