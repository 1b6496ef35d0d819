// Package tsvparse turns the tab-separated Pal sheet export into the
// pals.json and pals_raw.json inputs served by the table.
package tsvparse

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/dimchansky/utfbom"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/leodovqa/palworld-data-tool/internal/domain/pal"
	"github.com/leodovqa/palworld-data-tool/internal/domain/passives"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	minParts    = 4
	maxLineSize = 1 << 20
)

// elementMarkers lists the icon captions in the order elements are reported.
var elementMarkers = []struct{ marker, element string }{
	{"Palworld - Neutral Icon", "Neutral"},
	{"Palworld - Fire Icon", "Fire"},
	{"Palworld - Water Icon", "Water"},
	{"Palworld - Grass Icon", "Grass"},
	{"Palworld - Electric Icon", "Electric"},
	{"Palworld - Ice Icon", "Ice"},
	{"Palworld - Dark Icon", "Dark"},
	{"Palworld - Ground Icon", "Ground"},
	{"Palworld - Dragon Icon", "Dragon"},
}

// csvHeader is the sheet's own header row, one label per declared column.
var csvHeader = []string{
	"Pal #", "Pal Name", "Element",
	"Attack 1", "Attack 2", "Attack 3", "Attack 4", "Attack Alt",
	"Move 1", "Move 2", "Move 3", "Move 4", "Move Alt",
	"Mount Type",
}

var (
	workPattern = regexp.MustCompile(`([A-Za-z]+(?:\s+[A-Za-z]+)*?)\s+Lv\.\s+(\d+)`)
	wordPattern = regexp.MustCompile(`[A-Z][a-z]+`)
)

// TypeEntry classifies one Pal as fighter or mount.
type TypeEntry struct {
	Number    string `json:"number"`
	Type      string `json:"type"`
	MountType string `json:"mountType"`
}

// TypeTable indexes TypeEntry by Pal number.
type TypeTable map[string]TypeEntry

// ReadTypeTable decodes a JSON array of type entries. Numbers may be
// JSON strings or numbers.
func ReadTypeTable(r io.Reader) (TypeTable, error) {
	var wire []struct {
		Number    any    `json:"number"`
		Type      string `json:"type"`
		MountType string `json:"mountType"`
	}
	if err := json.NewDecoder(utfbom.SkipOnly(r)).Decode(&wire); err != nil {
		return nil, errors.Wrapf(ErrTypeTable, "decode: %v", err)
	}
	table := make(TypeTable, len(wire))
	for _, w := range wire {
		if w.Number == nil {
			continue
		}
		n := strings.TrimSpace(fmt.Sprint(w.Number))
		table[n] = TypeEntry{Number: n, Type: w.Type, MountType: w.MountType}
	}
	return table, nil
}

// Parse reads the sheet export. The first line is a header. Lines with
// fewer than four non-blank tab-separated cells are skipped.
func Parse(r io.Reader, types TypeTable) ([]pal.FlatRecord, []pal.RawRecord, error) {
	sc := bufio.NewScanner(utfbom.SkipOnly(r))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		flat   []pal.FlatRecord
		raw    []pal.RawRecord
		header = true
	)
	for sc.Scan() {
		line := sc.Text()
		if header {
			header = false
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := cells(line)
		if len(parts) < minParts {
			continue
		}
		f, rr, err := parseRow(parts, types)
		if err != nil {
			return nil, nil, err
		}
		flat = append(flat, f)
		raw = append(raw, rr)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, errors.Wrapf(ErrRead, "scan: %v", err)
	}
	return flat, raw, nil
}

func cells(line string) []string {
	var out []string
	for _, p := range strings.Split(line, "\t") {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseRow(parts []string, types TypeTable) (pal.FlatRecord, pal.RawRecord, error) {
	number := strings.TrimSpace(parts[0])
	name := strings.TrimSpace(parts[1])
	if i := strings.Index(name, "Image"); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}

	elements := Elements(parts[2])
	if len(elements) == 0 {
		elements = []string{pal.DefaultElement}
	}
	works := WorkSuitability(strings.Join(parts[3:], " "))

	entry := types[number]
	role := entry.Type
	if role == "" {
		role = pal.RoleFighter
	}
	sets := passives.For(number, elements[0], role, entry.MountType)

	flat := pal.FlatRecord{
		ID:        number,
		Name:      name,
		Element:   strings.Join(elements, ","),
		Attack1:   sets.Damage.Slot(0),
		Attack2:   sets.Damage.Slot(1),
		Attack3:   sets.Damage.Slot(2),
		Attack4:   sets.Damage.Slot(3),
		AttackAlt: sets.Damage.Alternative,
		MountType: entry.MountType,
	}
	if role == pal.RoleMount && sets.Mount != nil {
		flat.Move1 = sets.Mount.Slot(0)
		flat.Move2 = sets.Mount.Slot(1)
		flat.Move3 = sets.Mount.Slot(2)
		flat.Move4 = sets.Mount.Slot(3)
		flat.MoveAlt = sets.Mount.Alternative
	}

	encoded, err := json.Marshal(sets)
	if err != nil {
		return pal.FlatRecord{}, pal.RawRecord{}, errors.Wrapf(err, "encode passives of %s", number)
	}
	rr := pal.RawRecord{
		Number:          number,
		Name:            name,
		Elements:        elements,
		WorkSuitability: works,
		Type:            role,
		Passives:        encoded,
	}
	if entry.MountType != "" {
		mt := entry.MountType
		rr.MountType = &mt
	}
	return flat, rr, nil
}

// Elements returns the elements whose icon caption appears in text, in
// marker order and without duplicates.
func Elements(text string) []string {
	var out []string
	for _, m := range elementMarkers {
		if strings.Contains(text, m.marker) {
			out = append(out, m.element)
		}
	}
	return out
}

// WorkSuitability extracts "<Type> Lv. <n>" pairs. A type whose first and
// last capitalised words repeat ("Kindling Kindling") collapses to the
// first word. Type and level pairs are reported once.
func WorkSuitability(text string) []pal.WorkSuitability {
	out := []pal.WorkSuitability{}
	seen := make(map[string]bool)
	for _, m := range workPattern.FindAllStringSubmatch(text, -1) {
		workType := strings.TrimSpace(m[1])
		if words := wordPattern.FindAllString(workType, -1); len(words) > 1 && words[0] == words[len(words)-1] {
			workType = words[0]
		}
		level, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		key := workType + ":" + m[2]
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, pal.WorkSuitability{Type: workType, Level: level})
	}
	return out
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteCSV writes records in declared column order under the sheet header.
func WriteCSV(w io.Writer, records []pal.FlatRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(r.Values()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
