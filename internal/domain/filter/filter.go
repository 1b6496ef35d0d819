// Package filter evaluates the table's compound search predicate.
//
// Apply is a pure function of the dataset, the already-sorted records and
// the query; it never mutates its inputs.
package filter

import (
	"sort"
	"strings"

	"github.com/leodovqa/palworld-data-tool/internal/domain/pal"
)

// textSeparator joins field values before the text search.
const textSeparator = " "

// Query is the complete set of table filters. Empty strings mean "unset".
// MasteryLevel is only honoured when Mastery is set.
type Query struct {
	Text         string `json:"text"`
	Element      string `json:"element,omitempty"`
	MountType    string `json:"mountType,omitempty"`
	Attack       string `json:"attack,omitempty"`
	Move         string `json:"move,omitempty"`
	Mastery      string `json:"mastery,omitempty"`
	MasteryLevel *int   `json:"masteryLevel,omitempty"`
}

// IsZero reports whether no predicate is active.
func (q Query) IsZero() bool {
	q = q.normalize()
	return q.Text == "" && q.Element == "" && q.MountType == "" &&
		q.Attack == "" && q.Move == "" && q.Mastery == ""
}

// Row is a record that passed the filter. MasteryLevel is set when a
// mastery filter matched.
type Row struct {
	Record       pal.FlatRecord `json:"record"`
	MasteryLevel *int           `json:"masteryLevel,omitempty"`
}

// normalize lower-cases the case-insensitive predicates and drops blank ones.
// Mastery keeps its case: it is matched exactly.
func (q Query) normalize() Query {
	n := Query{
		Text:      strings.ToLower(q.Text),
		Element:   strings.ToLower(strings.TrimSpace(q.Element)),
		MountType: strings.ToLower(strings.TrimSpace(q.MountType)),
		Attack:    strings.ToLower(strings.TrimSpace(q.Attack)),
		Move:      strings.ToLower(strings.TrimSpace(q.Move)),
	}
	if strings.TrimSpace(q.Mastery) != "" {
		n.Mastery = q.Mastery
		n.MasteryLevel = q.MasteryLevel
	}
	return n
}

// Apply returns the records of records that satisfy q, in input order.
// When a mastery filter is active the result is re-sorted by matched level,
// highest first; ties keep input order.
func Apply(ds pal.Dataset, records []pal.FlatRecord, q Query) []Row {
	q = q.normalize()
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		row, ok := match(ds, r, q)
		if ok {
			rows = append(rows, row)
		}
	}
	if q.Mastery != "" {
		sort.SliceStable(rows, func(i, j int) bool {
			return level(rows[i]) > level(rows[j])
		})
	}
	return rows
}

// Records strips the mastery annotation from rows.
func Records(rows []Row) []pal.FlatRecord {
	out := make([]pal.FlatRecord, len(rows))
	for i, r := range rows {
		out[i] = r.Record
	}
	return out
}

func match(ds pal.Dataset, r pal.FlatRecord, q Query) (Row, bool) {
	row := Row{Record: r}
	if q.Text != "" && !strings.Contains(searchText(r), q.Text) {
		return row, false
	}
	if q.Element != "" && !hasElement(r, q.Element) {
		return row, false
	}
	if q.MountType != "" {
		mt := strings.ToLower(r.MountType)
		if mt == "" || !strings.Contains(mt, q.MountType) {
			return row, false
		}
	}
	if q.Attack != "" && !anyContains(r.Attacks(), q.Attack) {
		return row, false
	}
	if q.Move != "" && !anyContains(r.Moves(), q.Move) {
		return row, false
	}
	if q.Mastery != "" {
		raw, ok := ds.Raw(r.ID)
		if !ok {
			return row, false
		}
		w, ok := raw.Work(q.Mastery)
		if !ok {
			return row, false
		}
		if q.MasteryLevel != nil && w.Level != *q.MasteryLevel {
			return row, false
		}
		lvl := w.Level
		row.MasteryLevel = &lvl
	}
	return row, true
}

func searchText(r pal.FlatRecord) string {
	return strings.ToLower(strings.Join(r.Values(), textSeparator))
}

func hasElement(r pal.FlatRecord, element string) bool {
	for _, e := range r.Elements() {
		if strings.ToLower(e) == element {
			return true
		}
	}
	return false
}

func anyContains(values []string, needle string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

func level(r Row) int {
	if r.MasteryLevel == nil {
		return 0
	}
	return *r.MasteryLevel
}
