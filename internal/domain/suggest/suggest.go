// Package suggest proposes Pal names close to a search text that matched nothing.
package suggest

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/leodovqa/palworld-data-tool/internal/domain/pal"
)

// minTokenLen is the shortest query worth suggesting for.
const minTokenLen = 2

// Suggestion is a candidate name with its match score in (0, 1].
type Suggestion struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Names ranks the record names closest to text and returns at most limit
// of them. Exact matches score 1, prefixes 0.9, and names within the
// length-dependent edit distance bound score lower the farther they are.
func Names(records []pal.FlatRecord, text string, limit int) []Suggestion {
	token := strings.ToLower(strings.TrimSpace(text))
	if len(token) < minTokenLen || limit <= 0 {
		return nil
	}

	seen := make(map[string]bool, len(records))
	out := make([]Suggestion, 0, limit)
	for _, r := range records {
		name := strings.ToLower(r.Name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var score float64
		switch {
		case token == name:
			score = 1.0
		case strings.HasPrefix(name, token):
			score = 0.9
		default:
			dist := levenshtein.ComputeDistance(token, name)
			if dist > distanceLimit(len(name)) {
				continue
			}
			score = 0.72 - (0.08 * float64(dist))
		}
		out = append(out, Suggestion{ID: r.ID, Name: r.Name, Score: score})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score == out[j].Score {
			return out[i].Name < out[j].Name
		}
		return out[i].Score > out[j].Score
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
