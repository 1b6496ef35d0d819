// Package pal contains the Pal records shared by the table engine.
package pal

import (
	"encoding/json"
	"strings"
)

// Role tags carried by RawRecord.Type.
const (
	RoleFighter = "fighter"
	RoleMount   = "mount"
)

// DefaultElement is used when a record carries no element at all.
const DefaultElement = "Neutral"

// FlatRecord is the display-oriented, column-shaped projection of a Pal.
// Field order follows Columns.
type FlatRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Element   string `json:"element"`
	Attack1   string `json:"attack1"`
	Attack2   string `json:"attack2"`
	Attack3   string `json:"attack3"`
	Attack4   string `json:"attack4"`
	AttackAlt string `json:"attackAlt"`
	Move1     string `json:"move1"`
	Move2     string `json:"move2"`
	Move3     string `json:"move3"`
	Move4     string `json:"move4"`
	MoveAlt   string `json:"moveAlt"`
	MountType string `json:"mountType"`
}

// Elements returns the trimmed, non-empty entries of the comma-joined element list.
func (r FlatRecord) Elements() []string {
	return SplitElements(r.Element)
}

// Attacks returns attack1..attackAlt in column order, empties included.
func (r FlatRecord) Attacks() []string {
	return []string{r.Attack1, r.Attack2, r.Attack3, r.Attack4, r.AttackAlt}
}

// Moves returns move1..moveAlt in column order, empties included.
func (r FlatRecord) Moves() []string {
	return []string{r.Move1, r.Move2, r.Move3, r.Move4, r.MoveAlt}
}

// Values returns every declared field value in column order.
func (r FlatRecord) Values() []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = c.get(r)
	}
	return out
}

// Value returns the value of the column named key.
func (r FlatRecord) Value(key string) (string, bool) {
	c, ok := ColumnByKey(key)
	if !ok {
		return "", false
	}
	return c.get(r), true
}

// WorkSuitability is one mastery a Pal possesses.
type WorkSuitability struct {
	Type  string `json:"type"`
	Level int    `json:"level"`
}

// RawRecord is the detail-oriented representation of a Pal.
type RawRecord struct {
	Number          string            `json:"number"`
	Name            string            `json:"name"`
	Elements        []string          `json:"elements"`
	WorkSuitability []WorkSuitability `json:"workSuitability"`
	Type            string            `json:"type"`
	MountType       *string           `json:"mountType"`
	Passives        json.RawMessage   `json:"passives,omitempty"`
	RawText         string            `json:"_rawText,omitempty"`
}

// Work returns the first entry whose type equals workType exactly.
func (r RawRecord) Work(workType string) (WorkSuitability, bool) {
	for _, w := range r.WorkSuitability {
		if w.Type == workType {
			return w, true
		}
	}
	return WorkSuitability{}, false
}

// IconEntry points at a locally stored icon.
type IconEntry struct {
	Filename string `json:"filename"`
	URL      string `json:"url,omitempty"`
}

// IconManifest maps a Pal id, work type or element name to its icon.
type IconManifest map[string]IconEntry

// Filename returns the icon filename for key, or "" when none is known.
func (m IconManifest) Filename(key string) string {
	if m == nil {
		return ""
	}
	return m[key].Filename
}

// Dataset is the loaded snapshot. It is never mutated after loading.
type Dataset struct {
	Flat         []FlatRecord
	RawByID      map[string]RawRecord
	PalIcons     IconManifest
	WorkIcons    IconManifest
	ElementIcons IconManifest
}

// Raw returns the raw record joined to id.
func (d Dataset) Raw(id string) (RawRecord, bool) {
	r, ok := d.RawByID[id]
	return r, ok
}

// FlatByID returns the first flat record whose id equals id.
func (d Dataset) FlatByID(id string) (FlatRecord, bool) {
	for _, r := range d.Flat {
		if r.ID == id {
			return r, true
		}
	}
	return FlatRecord{}, false
}

// SplitElements splits a comma-joined element list, trimming and dropping empties.
func SplitElements(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
