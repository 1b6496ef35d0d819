package loader

import (
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/leodovqa/palworld-data-tool/internal/domain/pal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// flexString accepts a JSON string or number. null and other kinds decode to "".
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	switch c := b[0]; {
	case c == '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
	case c == '-' || (c >= '0' && c <= '9'):
		*s = flexString(strings.TrimSpace(string(b)))
	}
	return nil
}

// flexLevel accepts a JSON number or numeric string. Anything malformed,
// non-finite or negative decodes to 0.
type flexLevel int

func (l *flexLevel) UnmarshalJSON(b []byte) error {
	var raw flexString
	if err := raw.UnmarshalJSON(b); err != nil {
		*l = 0
		return nil //nolint:nilerr // malformed levels normalise to 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		*l = 0
		return nil
	}
	*l = flexLevel(int(f))
	return nil
}

// wireFlat is one pals.json entry as producers actually write it.
type wireFlat struct {
	ID        flexString `json:"id"`
	PalNum    flexString `json:"palNum"`
	PalNumLC  flexString `json:"palnum"`
	Num       flexString `json:"num"`
	Number    flexString `json:"number"`
	Name      flexString `json:"name"`
	PalName   flexString `json:"palName"`
	Element   flexString `json:"element"`
	Attack1   flexString `json:"attack1"`
	Attack2   flexString `json:"attack2"`
	Attack3   flexString `json:"attack3"`
	Attack4   flexString `json:"attack4"`
	AttackAlt flexString `json:"attackAlt"`
	Move1     flexString `json:"move1"`
	Move2     flexString `json:"move2"`
	Move3     flexString `json:"move3"`
	Move4     flexString `json:"move4"`
	MoveAlt   flexString `json:"moveAlt"`
	MountType flexString `json:"mountType"`
}

func (w wireFlat) record() pal.FlatRecord {
	return pal.FlatRecord{
		ID:        first(w.ID, w.PalNum, w.PalNumLC, w.Num, w.Number),
		Name:      first(w.Name, w.PalName),
		Element:   string(w.Element),
		Attack1:   string(w.Attack1),
		Attack2:   string(w.Attack2),
		Attack3:   string(w.Attack3),
		Attack4:   string(w.Attack4),
		AttackAlt: string(w.AttackAlt),
		Move1:     string(w.Move1),
		Move2:     string(w.Move2),
		Move3:     string(w.Move3),
		Move4:     string(w.Move4),
		MoveAlt:   string(w.MoveAlt),
		MountType: string(w.MountType),
	}
}

type wireWork struct {
	Type  flexString `json:"type"`
	Level flexLevel  `json:"level"`
}

// wireRaw is one pals_raw.json entry.
type wireRaw struct {
	Number          flexString          `json:"number"`
	PalNum          flexString          `json:"palNum"`
	ID              flexString          `json:"id"`
	Name            flexString          `json:"name"`
	PalName         flexString          `json:"palName"`
	Elements        []string            `json:"elements"`
	WorkSuitability []wireWork          `json:"workSuitability"`
	Type            flexString          `json:"type"`
	MountType       *string             `json:"mountType"`
	Passives        jsoniter.RawMessage `json:"passives"`
	RawText         flexString          `json:"_rawText"`
}

func (w wireRaw) record() pal.RawRecord {
	elements := make([]string, 0, len(w.Elements))
	for _, e := range w.Elements {
		if e = strings.TrimSpace(e); e != "" {
			elements = append(elements, e)
		}
	}
	if len(elements) == 0 {
		elements = []string{pal.DefaultElement}
	}

	works := make([]pal.WorkSuitability, 0, len(w.WorkSuitability))
	for _, ws := range w.WorkSuitability {
		works = append(works, pal.WorkSuitability{Type: string(ws.Type), Level: int(ws.Level)})
	}

	role := string(w.Type)
	if role == "" {
		role = pal.RoleFighter
	}

	var passives []byte
	if len(w.Passives) > 0 && string(w.Passives) != "null" {
		passives = w.Passives
	}

	return pal.RawRecord{
		Number:          first(w.Number, w.PalNum, w.ID),
		Name:            first(w.Name, w.PalName),
		Elements:        elements,
		WorkSuitability: works,
		Type:            role,
		MountType:       w.MountType,
		Passives:        passives,
		RawText:         string(w.RawText),
	}
}

type wireIcon struct {
	Filename flexString `json:"filename"`
	URL      flexString `json:"url"`
}

func first(vals ...flexString) string {
	for _, v := range vals {
		if v != "" {
			return string(v)
		}
	}
	return ""
}
