// Package detail assembles the per-Pal detail view from the flat record,
// the raw record and the icon manifests.
package detail

import (
	"strconv"
	"strings"

	"github.com/leodovqa/palworld-data-tool/internal/domain/pal"
)

// Asset directories the icon manifests are stored under.
const (
	PalIconDir     = "assets/pals_icons/"
	WorkIconDir    = "assets/work_icons/"
	ElementIconDir = "assets/element_icons/"
)

// Fallback display values.
const (
	UnknownName        = "Unknown"
	NoElement          = "—"
	NoWorkSuitability  = "No work suitability data available."
	iconIDWidth        = 3
	fallbackIconSuffix = ".png"
)

// WorkStatus tells which source the work section was built from.
type WorkStatus string

// Work section sources.
const (
	WorkListed WorkStatus = "listed"
	WorkNote   WorkStatus = "note"
	WorkNone   WorkStatus = "none"
)

// Element is one element with its icon, if known.
type Element struct {
	Name     string `json:"name"`
	IconPath string `json:"iconPath,omitempty"`
}

// Work is one work suitability entry of the detail view.
type Work struct {
	Type        string `json:"type"`
	Level       int    `json:"level"`
	Label       string `json:"label"`
	IconPath    string `json:"iconPath,omitempty"`
	Placeholder bool   `json:"placeholder"`
}

// View is the denormalized detail of one Pal.
type View struct {
	Found       bool       `json:"found"`
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Elements    []Element  `json:"elements"`
	ElementText string     `json:"elementText"`
	IconPath    string     `json:"iconPath"`
	WorkStatus  WorkStatus `json:"workStatus"`
	Works       []Work     `json:"works,omitempty"`
	WorkNote    string     `json:"workNote,omitempty"`
}

// Resolve builds the detail view for id. A Pal unknown to both sources
// still yields a view, with Found unset and fallback values filled in.
func Resolve(ds pal.Dataset, id string) View {
	flat, hasFlat := ds.FlatByID(id)
	raw, hasRaw := ds.Raw(id)

	v := View{
		Found: hasFlat || hasRaw,
		ID:    firstNonEmpty(flat.ID, raw.Number, id),
		Name:  firstNonEmpty(flat.Name, raw.Name, UnknownName),
	}

	names := flat.Elements()
	if len(names) == 0 {
		names = raw.Elements
	}
	v.Elements = ElementIcons(ds.ElementIcons, names)
	v.ElementText = NoElement
	if len(names) > 0 {
		v.ElementText = strings.Join(names, ", ")
	}

	v.IconPath = iconPath(ds.PalIcons, id, v.ID, firstNonEmpty(flat.Name, raw.Name))

	switch {
	case len(raw.WorkSuitability) > 0:
		v.WorkStatus = WorkListed
		v.Works = works(ds.WorkIcons, raw.WorkSuitability)
	case raw.RawText != "":
		v.WorkStatus = WorkNote
		v.WorkNote = raw.RawText
	default:
		v.WorkStatus = WorkNone
		v.WorkNote = NoWorkSuitability
	}
	return v
}

// ElementIcons pairs each element name with its icon path from the manifest.
func ElementIcons(m pal.IconManifest, names []string) []Element {
	out := make([]Element, 0, len(names))
	for _, n := range names {
		e := Element{Name: n}
		if f := m.Filename(n); f != "" {
			e.IconPath = ElementIconDir + f
		}
		out = append(out, e)
	}
	return out
}

// iconPath prefers the manifest entry and otherwise derives the
// conventional file name from the padded id and the sanitized name.
func iconPath(m pal.IconManifest, id, displayID, name string) string {
	if f := m.Filename(id); f != "" {
		return PalIconDir + f
	}
	if name == "" {
		return ""
	}
	return PalIconDir + pal.PadID(displayID, iconIDWidth) + "_" + pal.SanitizeName(name) + fallbackIconSuffix
}

func works(m pal.IconManifest, ws []pal.WorkSuitability) []Work {
	out := make([]Work, 0, len(ws))
	for _, w := range ws {
		item := Work{Type: w.Type, Level: w.Level, Label: w.Type}
		if w.Level > 0 {
			item.Label = w.Type + " Lv. " + strconv.Itoa(w.Level)
		}
		if f := m.Filename(w.Type); f != "" {
			item.IconPath = WorkIconDir + f
		} else {
			item.Placeholder = true
		}
		out = append(out, item)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
