package filter_test

import (
	"testing"

	"github.com/leodovqa/palworld-data-tool/internal/domain/filter"
	"github.com/leodovqa/palworld-data-tool/internal/domain/pal"
	. "github.com/smartystreets/goconvey/convey"
)

func intPtr(v int) *int { return &v }

func ids(rows []filter.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Record.ID
	}
	return out
}

func scenario() pal.Dataset {
	return pal.Dataset{
		Flat: []pal.FlatRecord{
			{ID: "1", Name: "Alpha", Element: "Fire", MountType: "", Attack1: "Demon God"},
			{ID: "2", Name: "Beta", Element: "Fire,Water", MountType: "flying", Attack2: "Serenity", Move1: "Swift"},
		},
		RawByID: map[string]pal.RawRecord{
			"1": {Number: "1", WorkSuitability: []pal.WorkSuitability{{Type: "Lumbering", Level: 3}}},
			"2": {Number: "2", WorkSuitability: []pal.WorkSuitability{{Type: "Lumbering", Level: 1}}},
		},
	}
}

func TestApplyWithoutPredicates(t *testing.T) {
	Convey("Given an empty query", t, func() {
		ds := scenario()
		q := filter.Query{}

		Convey("Then every record passes in input order", func() {
			rows := filter.Apply(ds, ds.Flat, q)
			So(ids(rows), ShouldResemble, []string{"1", "2"})
			So(rows[0].MasteryLevel, ShouldBeNil)
			So(q.IsZero(), ShouldBeTrue)
		})

		Convey("Then a reversed input keeps its order", func() {
			in := []pal.FlatRecord{ds.Flat[1], ds.Flat[0]}
			So(ids(filter.Apply(ds, in, q)), ShouldResemble, []string{"2", "1"})
		})

		Convey("Then blank facet values count as unset", func() {
			blank := filter.Query{Element: "  ", Mastery: " ", MasteryLevel: intPtr(9)}
			So(blank.IsZero(), ShouldBeTrue)
			So(ids(filter.Apply(ds, ds.Flat, blank)), ShouldResemble, []string{"1", "2"})
		})
	})
}

func TestTextPredicate(t *testing.T) {
	Convey("Given a text query", t, func() {
		ds := scenario()

		Convey("Then it matches any declared field case-insensitively", func() {
			So(ids(filter.Apply(ds, ds.Flat, filter.Query{Text: "BETA"})), ShouldResemble, []string{"2"})
			So(ids(filter.Apply(ds, ds.Flat, filter.Query{Text: "fire"})), ShouldResemble, []string{"1", "2"})
			So(ids(filter.Apply(ds, ds.Flat, filter.Query{Text: "swift"})), ShouldResemble, []string{"2"})
		})

		Convey("Then it can span adjacent fields through the separator", func() {
			So(ids(filter.Apply(ds, ds.Flat, filter.Query{Text: "1 alpha"})), ShouldResemble, []string{"1"})
		})

		Convey("Then nothing matches an absent value", func() {
			So(filter.Apply(ds, ds.Flat, filter.Query{Text: "zzz"}), ShouldBeEmpty)
		})
	})
}

func TestFacetPredicates(t *testing.T) {
	Convey("Given facet queries", t, func() {
		ds := scenario()

		Convey("When filtering by element", func() {
			Convey("Then only exact members of the element list pass", func() {
				So(ids(filter.Apply(ds, ds.Flat, filter.Query{Element: "Water"})), ShouldResemble, []string{"2"})
				So(ids(filter.Apply(ds, ds.Flat, filter.Query{Element: "fire"})), ShouldResemble, []string{"1", "2"})
				So(filter.Apply(ds, ds.Flat, filter.Query{Element: "Wat"}), ShouldBeEmpty)
			})
		})

		Convey("When filtering by mount type", func() {
			Convey("Then substrings match and empty mount types never do", func() {
				So(ids(filter.Apply(ds, ds.Flat, filter.Query{MountType: "fly"})), ShouldResemble, []string{"2"})
				So(ids(filter.Apply(ds, ds.Flat, filter.Query{MountType: "FLYING"})), ShouldResemble, []string{"2"})
			})
		})

		Convey("When filtering by attack or move", func() {
			Convey("Then any slot may match", func() {
				So(ids(filter.Apply(ds, ds.Flat, filter.Query{Attack: "serenity"})), ShouldResemble, []string{"2"})
				So(ids(filter.Apply(ds, ds.Flat, filter.Query{Attack: "god"})), ShouldResemble, []string{"1"})
				So(ids(filter.Apply(ds, ds.Flat, filter.Query{Move: "Swift"})), ShouldResemble, []string{"2"})
				So(filter.Apply(ds, ds.Flat, filter.Query{Move: "Nimble"}), ShouldBeEmpty)
			})
		})

		Convey("When combining predicates", func() {
			Convey("Then all of them must hold", func() {
				q := filter.Query{Text: "a", Element: "Fire", MountType: "flying"}
				So(ids(filter.Apply(ds, ds.Flat, q)), ShouldResemble, []string{"2"})
			})
		})
	})
}

func TestMasteryPredicate(t *testing.T) {
	Convey("Given a mastery query", t, func() {
		ds := scenario()

		Convey("Then rows are ordered by matched level, highest first", func() {
			in := []pal.FlatRecord{ds.Flat[1], ds.Flat[0]}
			rows := filter.Apply(ds, in, filter.Query{Mastery: "Lumbering"})
			So(ids(rows), ShouldResemble, []string{"1", "2"})
			So(*rows[0].MasteryLevel, ShouldEqual, 3)
			So(*rows[1].MasteryLevel, ShouldEqual, 1)
		})

		Convey("Then a level narrows to exact matches", func() {
			rows := filter.Apply(ds, ds.Flat, filter.Query{Mastery: "Lumbering", MasteryLevel: intPtr(3)})
			So(ids(rows), ShouldResemble, []string{"1"})
		})

		Convey("Then mastery names are matched case-sensitively", func() {
			So(filter.Apply(ds, ds.Flat, filter.Query{Mastery: "lumbering"}), ShouldBeEmpty)
		})

		Convey("Then records without raw data are excluded", func() {
			ds.Flat = append(ds.Flat, pal.FlatRecord{ID: "3", Name: "Orphan"})
			So(ids(filter.Apply(ds, ds.Flat, filter.Query{Mastery: "Lumbering"})), ShouldResemble, []string{"1", "2"})
		})

		Convey("Then ties keep the input order", func() {
			ds.Flat = append(ds.Flat, pal.FlatRecord{ID: "4"}, pal.FlatRecord{ID: "5"})
			ds.RawByID["4"] = pal.RawRecord{WorkSuitability: []pal.WorkSuitability{{Type: "Lumbering", Level: 1}}}
			ds.RawByID["5"] = pal.RawRecord{WorkSuitability: []pal.WorkSuitability{{Type: "Lumbering", Level: 3}}}
			rows := filter.Apply(ds, ds.Flat, filter.Query{Mastery: "Lumbering"})
			So(ids(rows), ShouldResemble, []string{"1", "5", "2", "4"})

			for i := 1; i < len(rows); i++ {
				So(*rows[i-1].MasteryLevel, ShouldBeGreaterThanOrEqualTo, *rows[i].MasteryLevel)
			}
		})
	})
}

func TestApplyDoesNotMutate(t *testing.T) {
	Convey("Given a dataset", t, func() {
		ds := scenario()
		in := []pal.FlatRecord{ds.Flat[1], ds.Flat[0]}

		filter.Apply(ds, in, filter.Query{Mastery: "Lumbering"})

		Convey("Then the input slice is left untouched", func() {
			So(in[0].ID, ShouldEqual, "2")
			So(in[1].ID, ShouldEqual, "1")
		})

		Convey("Then Records strips annotations", func() {
			rows := filter.Apply(ds, in, filter.Query{})
			So(filter.Records(rows), ShouldResemble, in)
		})
	})
}
