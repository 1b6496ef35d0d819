package pal

import (
	"strings"
	"unicode"
)

// Column keys.
const (
	KeyID        = "id"
	KeyName      = "name"
	KeyElement   = "element"
	KeyMountType = "mountType"
)

// Column is one declared table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`

	get func(FlatRecord) string
}

// Columns lists the FlatRecord fields in display order. Text search,
// CSV export and header rendering all iterate this list.
var Columns = []Column{
	col(KeyID, "Pal #", func(r FlatRecord) string { return r.ID }),
	col(KeyName, "Pal Name", func(r FlatRecord) string { return r.Name }),
	col(KeyElement, "", func(r FlatRecord) string { return r.Element }),
	col("attack1", "", func(r FlatRecord) string { return r.Attack1 }),
	col("attack2", "", func(r FlatRecord) string { return r.Attack2 }),
	col("attack3", "", func(r FlatRecord) string { return r.Attack3 }),
	col("attack4", "", func(r FlatRecord) string { return r.Attack4 }),
	col("attackAlt", "", func(r FlatRecord) string { return r.AttackAlt }),
	col("move1", "", func(r FlatRecord) string { return r.Move1 }),
	col("move2", "", func(r FlatRecord) string { return r.Move2 }),
	col("move3", "", func(r FlatRecord) string { return r.Move3 }),
	col("move4", "", func(r FlatRecord) string { return r.Move4 }),
	col("moveAlt", "", func(r FlatRecord) string { return r.MoveAlt }),
	col(KeyMountType, "", func(r FlatRecord) string { return r.MountType }),
}

// legacyKeys maps the column keys used by older pals.json producers.
var legacyKeys = map[string]string{
	"palNum":  KeyID,
	"palName": KeyName,
}

func col(key, label string, get func(FlatRecord) string) Column {
	if label == "" {
		label = Label(key)
	}
	return Column{Key: key, Label: label, get: get}
}

// CanonicalKey resolves legacy column names to their declared key.
func CanonicalKey(key string) string {
	if k, ok := legacyKeys[key]; ok {
		return k
	}
	return key
}

// ColumnByKey looks up a declared column, accepting legacy key names.
func ColumnByKey(key string) (Column, bool) {
	key = CanonicalKey(key)
	for _, c := range Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// Label turns a camelCase key into a header label: "attackAlt" -> "Attack Alt".
func Label(key string) string {
	var b strings.Builder
	for i, r := range key {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
