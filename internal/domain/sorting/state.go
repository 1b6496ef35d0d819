package sorting

import "github.com/leodovqa/palworld-data-tool/internal/domain/pal"

// State is the active sort column and direction of a table view.
type State struct {
	Key string    `json:"key"`
	Dir Direction `json:"dir"`
}

// Initial is the state of a freshly loaded table.
func Initial() State {
	return State{Key: pal.KeyID, Dir: Desc}
}

// Activate returns the state after a header click on key. Clicking the
// current column flips its direction; any other column starts ascending.
func (s State) Activate(key string) State {
	key = pal.CanonicalKey(key)
	if key == pal.CanonicalKey(s.Key) {
		return State{Key: key, Dir: s.Dir.Reverse()}
	}
	return State{Key: key, Dir: Asc}
}

// Apply sorts records according to the state.
func (s State) Apply(records []pal.FlatRecord) ([]pal.FlatRecord, error) {
	return Sort(records, s.Key, s.Dir)
}
