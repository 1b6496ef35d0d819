package suggest_test

import (
	"testing"

	"github.com/leodovqa/palworld-data-tool/internal/domain/pal"
	"github.com/leodovqa/palworld-data-tool/internal/domain/suggest"
	. "github.com/smartystreets/goconvey/convey"
)

func records() []pal.FlatRecord {
	return []pal.FlatRecord{
		{ID: "1", Name: "Lamball"},
		{ID: "2", Name: "Cattiva"},
		{ID: "3", Name: "Chikipi"},
		{ID: "5", Name: "Foxparks"},
		{ID: "5B", Name: "Foxparks"},
		{ID: "24", Name: "Penking"},
	}
}

func TestNames(t *testing.T) {
	Convey("Given a set of Pal names", t, func() {
		in := records()

		Convey("When the text is a misspelling", func() {
			out := suggest.Names(in, "Lamboll", 3)

			Convey("Then the closest name is proposed", func() {
				So(len(out), ShouldEqual, 1)
				So(out[0].Name, ShouldEqual, "Lamball")
				So(out[0].ID, ShouldEqual, "1")
				So(out[0].Score, ShouldAlmostEqual, 0.64, 0.0001)
			})
		})

		Convey("When the text is a prefix", func() {
			out := suggest.Names(in, "fox", 3)

			Convey("Then duplicates collapse to one entry", func() {
				So(len(out), ShouldEqual, 1)
				So(out[0].Name, ShouldEqual, "Foxparks")
				So(out[0].Score, ShouldEqual, 0.9)
			})
		})

		Convey("When several names qualify", func() {
			out := suggest.Names(in, "c", 5)

			Convey("Then tokens shorter than two characters are ignored", func() {
				So(out, ShouldBeEmpty)
			})

			out = suggest.Names(in, "ch", 1)
			Convey("Then the limit is honoured", func() {
				So(len(out), ShouldEqual, 1)
				So(out[0].Name, ShouldEqual, "Chikipi")
			})
		})

		Convey("When nothing is close", func() {
			So(suggest.Names(in, "zzzzzzzz", 3), ShouldBeEmpty)
		})

		Convey("When the limit is not positive", func() {
			So(suggest.Names(in, "Lamball", 0), ShouldBeNil)
		})
	})
}
