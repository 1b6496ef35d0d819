// Package passives is the static table of recommended passive builds.
package passives

import "github.com/leodovqa/palworld-data-tool/internal/domain/pal"

// legendaryFrom is the first Pal number treated as legendary.
const legendaryFrom = 100

// Mount types with a dedicated movement build.
const (
	MountFlying = "flying"
	MountWater  = "water"
	MountGround = "ground"
)

// Set is four recommended passives plus an alternative.
type Set struct {
	Best4       []string `json:"best4"`
	Alternative string   `json:"alternative"`
}

// Slot returns the i-th recommended passive, or "" past the end.
func (s Set) Slot(i int) string {
	if i < 0 || i >= len(s.Best4) {
		return ""
	}
	return s.Best4[i]
}

// Sets holds the damage build and, for mounts, the movement build.
type Sets struct {
	Damage Set  `json:"damage"`
	Mount  *Set `json:"mount"`
}

var emperors = map[string]string{
	"Fire":     "Flame Emperor",
	"Water":    "Lunker",
	"Electric": "Lord of Lightning",
	"Grass":    "Spirit Emperor",
	"Ice":      "Ice Emperor",
	"Ground":   "Earth Emperor",
	"Dark":     "Lord of the Underworld",
	"Dragon":   "Divine Dragon",
}

// Emperor returns the element-specific slot 4 passive.
func Emperor(element string) string {
	if e, ok := emperors[element]; ok {
		return e
	}
	return "Celestial Emperor"
}

// Combat returns the damage build for a Pal number and primary element.
func Combat(number int, element string) Set {
	emperor := Emperor(element)
	if number >= legendaryFrom {
		return Set{Best4: []string{"Legend", "Demon God", "Serenity", emperor}, Alternative: "Musclehead"}
	}
	return Set{Best4: []string{"Demon God", "Serenity", "Musclehead", emperor}, Alternative: "Ferocious"}
}

// Movement returns the mount build for a mount type.
func Movement(mountType string) Set {
	base := []string{"Legend", "Swift", "Runner"}
	switch mountType {
	case MountFlying:
		return Set{Best4: append(base, "Eternal Engine"), Alternative: "Nimble"}
	case MountWater:
		return Set{Best4: append(base, "King of the Waves"), Alternative: "Ace Swimmer"}
	default:
		return Set{Best4: append(base, "Nimble"), Alternative: "Eternal Engine"}
	}
}

// For returns the passive sets of a Pal. Only mounts get a movement build;
// a mount without a mount type is treated as a ground mount.
func For(id, element, role, mountType string) Sets {
	s := Sets{Damage: Combat(pal.NumericID(id), element)}
	if role == pal.RoleMount {
		if mountType == "" {
			mountType = MountGround
		}
		m := Movement(mountType)
		s.Mount = &m
	}
	return s
}
