package tablecheck

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/leodovqa/palworld-data-tool/internal/domain/filter"
	"github.com/leodovqa/palworld-data-tool/internal/domain/pal"
	"github.com/leodovqa/palworld-data-tool/internal/domain/sorting"
)

// Verify checks one table response against the query that produced it
// and returns every violated invariant.
func Verify(q Query, t Table, total int) []error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, errors.Wrapf(ErrMismatch, format, args...))
	}

	if t.Shown != len(t.Rows) {
		fail("shown %d but %d rows", t.Shown, len(t.Rows))
	}
	if t.Total != total {
		fail("total %d, want %d", t.Total, total)
	}
	if t.Shown > t.Total {
		fail("shown %d exceeds total %d", t.Shown, t.Total)
	}
	if t.Sort != q.Expect {
		fail("sort state %s/%s, want %s/%s", t.Sort.Key, t.Sort.Dir, q.Expect.Key, q.Expect.Dir)
	}

	records := make([]pal.FlatRecord, len(t.Rows))
	for i, r := range t.Rows {
		records[i] = r.Record
	}

	// Mastery needs the detail records, so only the column predicates are
	// re-evaluated here.
	fq := filter.Query{
		Text:      q.Params.Get("q"),
		Element:   q.Params.Get("element"),
		MountType: q.Params.Get("mount"),
		Attack:    q.Params.Get("attack"),
		Move:      q.Params.Get("move"),
	}
	if kept := filter.Apply(pal.Dataset{}, records, fq); len(kept) != len(records) {
		fail("%d of %d rows fail the column filters", len(records)-len(kept), len(records))
	}

	if q.Params.Get("mastery") != "" {
		errs = append(errs, verifyMastery(q, t.Rows)...)
		return errs
	}
	if err := verifyOrder(records, t.Sort); err != nil {
		errs = append(errs, err)
	}
	return errs
}

func verifyMastery(q Query, rows []Row) []error {
	var errs []error
	want := -1
	if raw := q.Params.Get("level"); raw != "" {
		want, _ = strconv.Atoi(raw)
	}
	prev := -1
	for i, r := range rows {
		if r.MasteryLevel == nil {
			errs = append(errs, errors.Wrapf(ErrMismatch, "row %d (%s) has no mastery level", i, r.Record.ID))
			continue
		}
		lvl := *r.MasteryLevel
		if want >= 0 && lvl != want {
			errs = append(errs, errors.Wrapf(ErrMismatch, "row %d (%s) level %d, want %d", i, r.Record.ID, lvl, want))
		}
		if prev >= 0 && lvl > prev {
			errs = append(errs, errors.Wrapf(ErrMismatch, "row %d (%s) level %d after %d", i, r.Record.ID, lvl, prev))
		}
		prev = lvl
	}
	return errs
}

// verifyOrder re-sorts the rows with the same stable comparator. A
// correctly ordered response is a fixed point.
func verifyOrder(records []pal.FlatRecord, state sorting.State) error {
	sorted, err := state.Apply(records)
	if err != nil {
		return errors.Wrapf(ErrMismatch, "sort state %s/%s: %v", state.Key, state.Dir, err)
	}
	for i := range sorted {
		if sorted[i].ID != records[i].ID {
			return errors.Wrapf(ErrMismatch, "row %d is %s, want %s under %s/%s",
				i, records[i].ID, sorted[i].ID, state.Key, state.Dir)
		}
	}
	return nil
}
