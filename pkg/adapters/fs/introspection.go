package fs

import (
	"os"
	"time"

	"github.com/aretw0/introspection"

	"github.com/aretw0/zenus/pkg/core"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path          string     `json:"path"`
	ArchivePath   string     `json:"archive_path"`
	Extension     string     `json:"extension"`
	ReadOnly      bool       `json:"read_only"`
	ActiveNotes   int        `json:"active_notes"`
	ArchivedNotes int        `json:"archived_notes"`
	WatcherActive bool       `json:"watcher_active"`
	LastEvent     *time.Time `json:"last_event,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	watcherActive := r.watcherActive
	lastEvent := r.lastEvent
	r.mu.RUnlock()

	return RepositoryState{
		Path:          r.Path,
		ArchivePath:   r.dir(core.Archived),
		Extension:     r.config.Extension,
		ReadOnly:      r.config.ReadOnly,
		ActiveNotes:   r.count(core.Active),
		ArchivedNotes: r.count(core.Archived),
		WatcherActive: watcherActive,
		LastEvent:     lastEvent,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "fs-repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

// count returns the number of note files in p without decoding them.
func (r *Repository) count(p core.Partition) int {
	entries, err := os.ReadDir(r.dir(p))
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if _, ok := r.noteID(e.Name()); ok && !e.IsDir() {
			n++
		}
	}
	return n
}

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}

func (r *Repository) recordEvent() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.lastEvent = &now
}
