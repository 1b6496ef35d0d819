package passives

import "sort"

// Ability types.
const (
	TypeCombat    = "combat"
	TypeElemental = "elemental"
	TypeMovement  = "movement"
)

// Ability describes one passive named by the builds.
type Ability struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Element     string `json:"element,omitempty"`
	Description string `json:"description,omitempty"`
}

var abilities = map[string]Ability{
	"Legend":     {Name: "Legend", Type: TypeCombat, Description: "Ultimate combat ability"},
	"Demon God":  {Name: "Demon God", Type: TypeCombat, Description: "Increases attack power significantly"},
	"Serenity":   {Name: "Serenity", Type: TypeCombat, Description: "Reduces cooldowns, hidden multiplier"},
	"Musclehead": {Name: "Musclehead", Type: TypeCombat, Description: "Physical attack boost"},
	"Ferocious":  {Name: "Ferocious", Type: TypeCombat, Description: "Aggressive attack enhancement"},
	"Invader":    {Name: "Invader", Type: TypeCombat, Description: "Invasion-based attack"},

	"Siren of the Void": {Name: "Siren of the Void", Type: TypeCombat, Description: "Void-based attack"},

	"Celestial Emperor":      {Name: "Celestial Emperor", Type: TypeElemental, Element: "Neutral"},
	"Flame Emperor":          {Name: "Flame Emperor", Type: TypeElemental, Element: "Fire"},
	"Lord of the Sea":        {Name: "Lord of the Sea", Type: TypeElemental, Element: "Water"},
	"Lunker":                 {Name: "Lunker", Type: TypeElemental, Element: "Water"},
	"Lord of Lightning":      {Name: "Lord of Lightning", Type: TypeElemental, Element: "Electric"},
	"Spirit Emperor":         {Name: "Spirit Emperor", Type: TypeElemental, Element: "Grass"},
	"Ice Emperor":            {Name: "Ice Emperor", Type: TypeElemental, Element: "Ice"},
	"Earth Emperor":          {Name: "Earth Emperor", Type: TypeElemental, Element: "Ground"},
	"Lord of the Underworld": {Name: "Lord of the Underworld", Type: TypeElemental, Element: "Dark"},
	"Divine Dragon":          {Name: "Divine Dragon", Type: TypeElemental, Element: "Dragon"},

	"Swift":             {Name: "Swift", Type: TypeMovement, Description: "Speed enhancement"},
	"Runner":            {Name: "Runner", Type: TypeMovement, Description: "Movement boost"},
	"Eternal Engine":    {Name: "Eternal Engine", Type: TypeMovement, Description: "Stamina management"},
	"Nimble":            {Name: "Nimble", Type: TypeMovement, Description: "Ground speed optimization"},
	"King of the Waves": {Name: "King of the Waves", Type: TypeMovement, Description: "Water movement mastery"},
	"Ace Swimmer":       {Name: "Ace Swimmer", Type: TypeMovement, Description: "Swimming optimization"},
	"Vanguard":          {Name: "Vanguard", Type: TypeMovement, Description: "Front-line leadership"},
}

// Describe returns the catalog entry for a passive name.
func Describe(name string) (Ability, bool) {
	a, ok := abilities[name]
	return a, ok
}

// Catalog returns every known passive ordered by type, then name.
func Catalog() []Ability {
	out := make([]Ability, 0, len(abilities))
	for _, a := range abilities {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Abilities returns the catalog entries for every passive the sets name,
// in build order and without repeats. Names outside the catalog are skipped.
func (s Sets) Abilities() []Ability {
	names := append([]string{}, s.Damage.Best4...)
	names = append(names, s.Damage.Alternative)
	if s.Mount != nil {
		names = append(names, s.Mount.Best4...)
		names = append(names, s.Mount.Alternative)
	}
	seen := make(map[string]bool, len(names))
	out := make([]Ability, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		if a, ok := abilities[n]; ok {
			out = append(out, a)
		}
	}
	return out
}
