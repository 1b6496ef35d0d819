package detail_test

import (
	"testing"

	"github.com/leodovqa/palworld-data-tool/internal/domain/detail"
	"github.com/leodovqa/palworld-data-tool/internal/domain/pal"
	. "github.com/smartystreets/goconvey/convey"
)

func dataset() pal.Dataset {
	return pal.Dataset{
		Flat: []pal.FlatRecord{
			{ID: "1", Name: "Lamball", Element: "Neutral"},
			{ID: "5", Name: "Foxparks", Element: "Fire, Ice"},
			{ID: "7", Name: "Mau Cryst", Element: "Ice"},
		},
		RawByID: map[string]pal.RawRecord{
			"1": {Number: "1", Name: "Lamball", Elements: []string{"Neutral"}, WorkSuitability: []pal.WorkSuitability{
				{Type: "Handiwork", Level: 1},
				{Type: "Farming", Level: 0},
			}},
			"7":  {Number: "7", Name: "Mau Cryst", RawText: "Cooling Lv. 1 (unparsed)"},
			"42": {Number: "42", Name: "Rawonly", Elements: []string{"Dark", "Dragon"}},
		},
		PalIcons:     pal.IconManifest{"1": {Filename: "001_Lamball.png", URL: "https://example.test/lamball.png"}},
		WorkIcons:    pal.IconManifest{"Handiwork": {Filename: "handiwork.png"}},
		ElementIcons: pal.IconManifest{"Fire": {Filename: "fire.png"}, "Neutral": {Filename: "neutral.png"}},
	}
}

func TestResolve(t *testing.T) {
	Convey("Given a loaded dataset", t, func() {
		ds := dataset()

		Convey("When both records exist", func() {
			v := detail.Resolve(ds, "1")

			Convey("Then the view joins them", func() {
				So(v.Found, ShouldBeTrue)
				So(v.ID, ShouldEqual, "1")
				So(v.Name, ShouldEqual, "Lamball")
				So(v.ElementText, ShouldEqual, "Neutral")
				So(v.Elements, ShouldResemble, []detail.Element{{Name: "Neutral", IconPath: "assets/element_icons/neutral.png"}})
				So(v.IconPath, ShouldEqual, "assets/pals_icons/001_Lamball.png")
			})

			Convey("Then work entries carry icons or placeholders in order", func() {
				So(v.WorkStatus, ShouldEqual, detail.WorkListed)
				So(v.Works, ShouldResemble, []detail.Work{
					{Type: "Handiwork", Level: 1, Label: "Handiwork Lv. 1", IconPath: "assets/work_icons/handiwork.png"},
					{Type: "Farming", Level: 0, Label: "Farming", Placeholder: true},
				})
			})
		})

		Convey("When only the flat record exists", func() {
			v := detail.Resolve(ds, "5")

			Convey("Then elements come from the flat list", func() {
				So(v.Found, ShouldBeTrue)
				So(v.ElementText, ShouldEqual, "Fire, Ice")
				So(v.Elements, ShouldResemble, []detail.Element{
					{Name: "Fire", IconPath: "assets/element_icons/fire.png"},
					{Name: "Ice"},
				})
			})

			Convey("Then the icon falls back to the conventional file name", func() {
				So(v.IconPath, ShouldEqual, "assets/pals_icons/005_Foxparks.png")
			})

			Convey("Then the work section reports no data", func() {
				So(v.WorkStatus, ShouldEqual, detail.WorkNone)
				So(v.WorkNote, ShouldEqual, detail.NoWorkSuitability)
				So(v.Works, ShouldBeEmpty)
			})
		})

		Convey("When the raw record only has a free-text note", func() {
			v := detail.Resolve(ds, "7")

			So(v.WorkStatus, ShouldEqual, detail.WorkNote)
			So(v.WorkNote, ShouldEqual, "Cooling Lv. 1 (unparsed)")
			So(v.IconPath, ShouldEqual, "assets/pals_icons/007_Mau_Cryst.png")
		})

		Convey("When only the raw record exists", func() {
			v := detail.Resolve(ds, "42")

			So(v.Found, ShouldBeTrue)
			So(v.Name, ShouldEqual, "Rawonly")
			So(v.ElementText, ShouldEqual, "Dark, Dragon")
			So(v.IconPath, ShouldEqual, "assets/pals_icons/042_Rawonly.png")
		})

		Convey("When neither record exists", func() {
			v := detail.Resolve(ds, "999")

			Convey("Then a fallback view is returned", func() {
				So(v.Found, ShouldBeFalse)
				So(v.ID, ShouldEqual, "999")
				So(v.Name, ShouldEqual, detail.UnknownName)
				So(v.ElementText, ShouldEqual, detail.NoElement)
				So(v.Elements, ShouldBeEmpty)
				So(v.IconPath, ShouldEqual, "")
				So(v.WorkStatus, ShouldEqual, detail.WorkNone)
			})
		})

		Convey("When the dataset has no manifests", func() {
			ds.PalIcons, ds.WorkIcons, ds.ElementIcons = nil, nil, nil
			v := detail.Resolve(ds, "1")

			So(v.IconPath, ShouldEqual, "assets/pals_icons/001_Lamball.png")
			So(v.Works[0].Placeholder, ShouldBeTrue)
			So(v.Elements[0].IconPath, ShouldEqual, "")
		})
	})
}
