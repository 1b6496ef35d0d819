// Package facet derives the selectable filter values from a loaded dataset.
package facet

import (
	"sort"
	"strings"

	"github.com/leodovqa/palworld-data-tool/internal/domain/pal"
)

// Index holds the distinct values of every facet, each sorted and deduplicated.
type Index struct {
	Elements   []string       `json:"elements"`
	MountTypes []string       `json:"mountTypes"`
	Attacks    []string       `json:"attacks"`
	Moves      []string       `json:"moves"`
	Masteries  []string       `json:"masteries"`
	MaxLevel   map[string]int `json:"maxLevel"`
}

// Build computes the facet index for ds. It never mutates ds and returns
// identical output for identical input.
func Build(ds pal.Dataset) Index {
	elements := newSet()
	mounts := newSet()
	attacks := newSet()
	moves := newSet()
	for _, r := range ds.Flat {
		for _, e := range r.Elements() {
			elements.add(e)
		}
		mounts.add(r.MountType)
		for _, a := range r.Attacks() {
			attacks.add(a)
		}
		for _, m := range r.Moves() {
			moves.add(m)
		}
	}

	masteries := newSet()
	maxLevel := make(map[string]int)
	for _, raw := range ds.RawByID {
		for _, w := range raw.WorkSuitability {
			if w.Type == "" {
				continue
			}
			masteries.add(w.Type)
			if cur, ok := maxLevel[w.Type]; !ok || w.Level > cur {
				maxLevel[w.Type] = w.Level
			}
		}
	}

	return Index{
		Elements:   elements.sorted(),
		MountTypes: mounts.sorted(),
		Attacks:    attacks.sorted(),
		Moves:      moves.sorted(),
		Masteries:  masteries.sorted(),
		MaxLevel:   maxLevel,
	}
}

// LevelOptions returns the selectable levels 1..maxLevel for a mastery.
// A known mastery always offers at least level 1; an unknown one offers none.
func (ix Index) LevelOptions(mastery string) []int {
	if strings.TrimSpace(mastery) == "" {
		return nil
	}
	top, ok := ix.MaxLevel[mastery]
	if !ok {
		return nil
	}
	if top < 1 {
		top = 1
	}
	levels := make([]int, top)
	for i := range levels {
		levels[i] = i + 1
	}
	return levels
}

type set map[string]struct{}

func newSet() set { return make(set) }

func (s set) add(v string) {
	if v != "" {
		s[v] = struct{}{}
	}
}

func (s set) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
