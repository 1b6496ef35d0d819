package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	service "github.com/leodovqa/palworld-data-tool/internal/app"
	"github.com/leodovqa/palworld-data-tool/internal/domain/filter"
	"github.com/leodovqa/palworld-data-tool/internal/domain/pal"
	"github.com/leodovqa/palworld-data-tool/internal/domain/sorting"
)

// Query parameter names accepted by /api/pals and /api/pals.csv.
const (
	paramText     = "q"
	paramElement  = "element"
	paramMount    = "mount"
	paramAttack   = "attack"
	paramMove     = "move"
	paramMastery  = "mastery"
	paramLevel    = "level"
	paramSort     = "sort"
	paramDir      = "dir"
	paramActivate = "activate"
)

// parseTableRequest reads filters and sort state from the query string.
// Without sort or dir the table starts at id descending; a sort key
// without dir starts ascending.
func parseTableRequest(r *http.Request) (service.TableRequest, error) {
	v := r.URL.Query()

	q := filter.Query{
		Text:      v.Get(paramText),
		Element:   v.Get(paramElement),
		MountType: v.Get(paramMount),
		Attack:    v.Get(paramAttack),
		Move:      v.Get(paramMove),
		Mastery:   v.Get(paramMastery),
	}
	if raw := strings.TrimSpace(v.Get(paramLevel)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return service.TableRequest{}, errors.Wrapf(ErrBadRequest, "level must be an integer, got %q", raw)
		}
		q.MasteryLevel = &n
	}

	state, err := parseSortState(v)
	if err != nil {
		return service.TableRequest{}, err
	}

	activate := strings.TrimSpace(v.Get(paramActivate))
	if activate != "" {
		if _, ok := pal.ColumnByKey(activate); !ok {
			return service.TableRequest{}, errors.Wrapf(sorting.ErrUnknownKey, "activate %q", activate)
		}
	}

	return service.TableRequest{Query: q, Sort: state, Activate: activate}, nil
}

func parseSortState(v url.Values) (sorting.State, error) {
	state := sorting.Initial()
	key := strings.TrimSpace(v.Get(paramSort))
	dir := strings.TrimSpace(v.Get(paramDir))

	if key != "" {
		if _, ok := pal.ColumnByKey(key); !ok {
			return sorting.State{}, errors.Wrapf(sorting.ErrUnknownKey, "sort %q", key)
		}
		state = sorting.State{Key: pal.CanonicalKey(key), Dir: sorting.Asc}
	}
	if dir != "" {
		d, err := sorting.ParseDirection(dir)
		if err != nil {
			return sorting.State{}, errors.Wrapf(err, "dir %q", dir)
		}
		state.Dir = d
	}
	return state, nil
}
