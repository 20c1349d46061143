package core

import "context"

// Repository defines the contract for storing and retrieving notes.
// The local filesystem store and the HTTP client both satisfy it, so callers
// issue the same operations regardless of where the data lives.
type Repository interface {
	// List returns the notes of one partition sorted by (Order, ID).
	// A partition that does not exist yet is empty, not an error.
	List(ctx context.Context, p Partition) ([]NoteBlock, error)

	// Put creates or overwrites a note. A note that is already archived stays archived.
	Put(ctx context.Context, n NoteBlock) error

	// Delete removes a note from the given partition. Missing notes are not an error.
	Delete(ctx context.Context, id string, p Partition) error

	// Archive moves a note from the active partition to the archive.
	Archive(ctx context.Context, id string) error

	// Unarchive moves a note from the archive back to the active partition.
	Unarchive(ctx context.Context, id string) error

	// Reorder rewrites the order of each listed note, skipping unknown ids.
	Reorder(ctx context.Context, updates []OrderUpdate) error
}

// Watchable is implemented by repositories that can report changes as they happen.
type Watchable interface {
	// Watch emits events for notes whose id matches pattern (empty matches all)
	// until ctx is cancelled.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
