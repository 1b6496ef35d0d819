package pal_test

import (
	"testing"

	"github.com/leodovqa/palworld-data-tool/internal/domain/pal"
	. "github.com/smartystreets/goconvey/convey"
)

func TestColumns(t *testing.T) {
	Convey("Given the declared columns", t, func() {
		keys := make([]string, len(pal.Columns))
		for i, c := range pal.Columns {
			keys[i] = c.Key
		}

		Convey("Then they follow the flat record field order", func() {
			So(keys, ShouldResemble, []string{
				"id", "name", "element",
				"attack1", "attack2", "attack3", "attack4", "attackAlt",
				"move1", "move2", "move3", "move4", "moveAlt",
				"mountType",
			})
		})

		Convey("Then labels are derived from keys", func() {
			So(pal.Columns[0].Label, ShouldEqual, "Pal #")
			So(pal.Columns[1].Label, ShouldEqual, "Pal Name")
			So(pal.Label("attackAlt"), ShouldEqual, "Attack Alt")
			So(pal.Label("mountType"), ShouldEqual, "Mount Type")
			So(pal.Label("move1"), ShouldEqual, "Move1")
		})

		Convey("Then legacy keys resolve to declared columns", func() {
			c, ok := pal.ColumnByKey("palNum")
			So(ok, ShouldBeTrue)
			So(c.Key, ShouldEqual, pal.KeyID)

			_, ok = pal.ColumnByKey("nope")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestFlatRecord(t *testing.T) {
	Convey("Given a flat record", t, func() {
		r := pal.FlatRecord{
			ID: "12", Name: "Jolthog", Element: " Electric , ,Ice ",
			Attack1: "Legend", AttackAlt: "Ferocious", Move2: "Swift", MountType: "ground",
		}

		Convey("Then elements are split and trimmed", func() {
			So(r.Elements(), ShouldResemble, []string{"Electric", "Ice"})
		})

		Convey("Then values follow the column order", func() {
			vals := r.Values()
			So(len(vals), ShouldEqual, len(pal.Columns))
			So(vals[0], ShouldEqual, "12")
			So(vals[7], ShouldEqual, "Ferocious")
			So(vals[13], ShouldEqual, "ground")
		})

		Convey("Then a single value can be read by key", func() {
			v, ok := r.Value("palName")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, "Jolthog")
		})

		Convey("Then attack and move slots are exposed in order", func() {
			So(r.Attacks(), ShouldResemble, []string{"Legend", "", "", "", "Ferocious"})
			So(r.Moves(), ShouldResemble, []string{"", "Swift", "", "", ""})
		})
	})
}

func TestRawRecordWork(t *testing.T) {
	Convey("Given a raw record with repeated work types", t, func() {
		r := pal.RawRecord{WorkSuitability: []pal.WorkSuitability{
			{Type: "Lumbering", Level: 2},
			{Type: "Mining", Level: 1},
			{Type: "Lumbering", Level: 4},
		}}

		Convey("Then the first matching entry wins", func() {
			w, ok := r.Work("Lumbering")
			So(ok, ShouldBeTrue)
			So(w.Level, ShouldEqual, 2)
		})

		Convey("Then matching is case-sensitive", func() {
			_, ok := r.Work("lumbering")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestIDHelpers(t *testing.T) {
	Convey("Given id helpers", t, func() {
		Convey("Then numeric ids strip non-digits", func() {
			So(pal.NumericID("12B"), ShouldEqual, 12)
			So(pal.NumericID("#007"), ShouldEqual, 7)
			So(pal.NumericID("garbage"), ShouldEqual, 0)
			So(pal.NumericID(""), ShouldEqual, 0)
		})

		Convey("Then ids are zero padded", func() {
			So(pal.PadID("7", 3), ShouldEqual, "007")
			So(pal.PadID("12B", 3), ShouldEqual, "12B")
			So(pal.PadID("1234", 3), ShouldEqual, "1234")
		})

		Convey("Then names are sanitized for file paths", func() {
			So(pal.SanitizeName("Chikipi"), ShouldEqual, "Chikipi")
			So(pal.SanitizeName("Mau Cryst"), ShouldEqual, "Mau_Cryst")
			So(pal.SanitizeName("Lyleen-Noct_2"), ShouldEqual, "Lyleen-Noct_2")
		})
	})
}

func TestIconManifest(t *testing.T) {
	Convey("Given an icon manifest", t, func() {
		m := pal.IconManifest{"Fire": {Filename: "fire.png"}}

		So(m.Filename("Fire"), ShouldEqual, "fire.png")
		So(m.Filename("Water"), ShouldEqual, "")

		var empty pal.IconManifest
		So(empty.Filename("Fire"), ShouldEqual, "")
	})
}
