// Package core holds the domain types of zenus and the ports adapters implement.
package core

// DefaultTitle is used when a stored note carries no title.
const DefaultTitle = "Untitled"

// Partition is one of the two disjoint storage areas a note can live in.
type Partition string

const (
	Active   Partition = "active"
	Archived Partition = "archived"
)

// Valid reports whether p names a known partition.
func (p Partition) Valid() bool {
	return p == Active || p == Archived
}

func (p Partition) String() string {
	return string(p)
}

// NoteBlock is the unit of storage.
// ID is assigned by the caller and doubles as the storage key.
type NoteBlock struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	IsCollapsed bool     `json:"isCollapsed"`
	Order       int      `json:"order"`
	Tags        []string `json:"tags,omitempty"`
}

// HasTag reports whether the note carries the given tag.
func (n NoteBlock) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
