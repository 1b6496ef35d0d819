package tablecheck

import (
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"

	"github.com/leodovqa/palworld-data-tool/internal/domain/pal"
	"github.com/leodovqa/palworld-data-tool/internal/domain/sorting"
)

// Odds, in percent, that a generated query sets each filter.
const (
	textOdds     = 30
	elementOdds  = 35
	mountOdds    = 15
	attackOdds   = 20
	moveOdds     = 15
	masteryOdds  = 25
	levelOdds    = 50
	activateOdds = 30
	descOdds     = 50
	percent      = 100
	maxTextRunes = 4
)

// Generate builds n table queries from the catalog. The same seed yields
// the same queries.
func Generate(cat Catalog, n int, seed uint64) []Query {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // reproducible test input
	out := make([]Query, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, generateQuery(rng, cat))
	}
	return out
}

func generateQuery(rng *rand.Rand, cat Catalog) Query {
	p := url.Values{}
	chance := func(odds int) bool { return rng.IntN(percent) < odds }

	if chance(textOdds) && len(cat.Pals) > 0 {
		p.Set("q", textFragment(rng, cat.Pals[rng.IntN(len(cat.Pals))]))
	}
	if chance(elementOdds) {
		setOne(rng, p, "element", cat.Facets.Elements)
	}
	if chance(mountOdds) {
		setOne(rng, p, "mount", cat.Facets.MountTypes)
	}
	if chance(attackOdds) {
		setOne(rng, p, "attack", cat.Facets.Attacks)
	}
	if chance(moveOdds) {
		setOne(rng, p, "move", cat.Facets.Moves)
	}
	if chance(masteryOdds) && len(cat.Facets.Masteries) > 0 {
		m := cat.Facets.Masteries[rng.IntN(len(cat.Facets.Masteries))]
		p.Set("mastery", m)
		if top := cat.Facets.MaxLevel[m]; top > 0 && chance(levelOdds) {
			p.Set("level", strconv.Itoa(1+rng.IntN(top)))
		}
	}

	state := sorting.Initial()
	if len(cat.Columns) > 0 {
		state.Key = cat.Columns[rng.IntN(len(cat.Columns))].Key
		state.Dir = sorting.Asc
		if chance(descOdds) {
			state.Dir = sorting.Desc
		}
	}
	p.Set("sort", state.Key)
	p.Set("dir", string(state.Dir))

	expect := state
	if chance(activateOdds) && len(cat.Columns) > 0 {
		key := cat.Columns[rng.IntN(len(cat.Columns))].Key
		p.Set("activate", key)
		expect = state.Activate(key)
	}

	return Query{Params: p, Sort: state, Expect: expect}
}

func setOne(rng *rand.Rand, p url.Values, key string, values []string) {
	if len(values) == 0 {
		return
	}
	p.Set(key, values[rng.IntN(len(values))])
}

// textFragment picks a short slice of a Pal's name or, for nameless
// records, its id.
func textFragment(rng *rand.Rand, r pal.FlatRecord) string {
	src := []rune(strings.TrimSpace(r.Name))
	if len(src) == 0 {
		return r.ID
	}
	n := 1 + rng.IntN(min(maxTextRunes, len(src)))
	start := rng.IntN(len(src) - n + 1)
	return string(src[start : start+n])
}
