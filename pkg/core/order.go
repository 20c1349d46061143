package core

import (
	"encoding/json"
	"fmt"
	"sort"
)

// OrderUpdate assigns a new explicit order to a note.
// On the wire it is the two-element array ["id", order].
type OrderUpdate struct {
	ID    string
	Order int
}

func (u OrderUpdate) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{u.ID, u.Order})
}

func (u *OrderUpdate) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("order update must be an [id, order] pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("order update must have 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &u.ID); err != nil {
		return fmt.Errorf("invalid order update id: %w", err)
	}
	if err := json.Unmarshal(pair[1], &u.Order); err != nil {
		return fmt.Errorf("invalid order update value: %w", err)
	}
	return nil
}

// SortNotes orders notes by (Order, ID) ascending, in place.
func SortNotes(notes []NoteBlock) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].Order != notes[j].Order {
			return notes[i].Order < notes[j].Order
		}
		return notes[i].ID < notes[j].ID
	})
}
