package fs

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/zenus/pkg/core"
)

// collector drains a watch channel in the background.
type collector struct {
	mu     sync.Mutex
	events []core.Event
	done   chan struct{}
}

func collect(events <-chan core.Event) *collector {
	c := &collector{done: make(chan struct{})}
	go func() {
		defer close(c.done)
		for e := range events {
			c.mu.Lock()
			c.events = append(c.events, e)
			c.mu.Unlock()
		}
	}()
	return c
}

func (c *collector) has(t core.EventType, id string, p core.Partition) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.events {
		if e.Type == t && e.ID == id && e.Partition == p {
			return true
		}
	}
	return false
}

func (c *collector) seen(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.events {
		if e.ID == id {
			return true
		}
	}
	return false
}

func TestWatch_ReportsNoteChanges(t *testing.T) {
	repo, root := newTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := repo.Watch(ctx, "")
	require.NoError(t, err)
	c := collect(events)

	require.Eventually(t, func() bool {
		return repo.State().(RepositoryState).WatcherActive
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, repo.Put(ctx, core.NoteBlock{ID: "n1", Title: "T"}))
	assert.Eventually(t, func() bool { return c.has(core.EventCreate, "n1", core.Active) }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, repo.Archive(ctx, "n1"))
	assert.Eventually(t, func() bool { return c.has(core.EventDelete, "n1", core.Active) }, 2*time.Second, 10*time.Millisecond)

	// The archive directory was created after the watch started; a later write there is still seen.
	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(root, DefaultArchiveDir))
		return err == nil
	}, time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, repo.Put(ctx, core.NoteBlock{ID: "n1", Title: "edited"}))
	assert.Eventually(t, func() bool { return c.has(core.EventCreate, "n1", core.Archived) }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-c.done:
	case <-time.After(2 * time.Second):
		t.Fatal("events channel was not closed after cancel")
	}
	assert.False(t, repo.State().(RepositoryState).WatcherActive)
}

func TestWatch_PatternFilter(t *testing.T) {
	repo, root := newTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := repo.Watch(ctx, "work-*")
	require.NoError(t, err)
	c := collect(events)

	require.NoError(t, repo.Put(ctx, core.NoteBlock{ID: "home-1"}))
	require.NoError(t, repo.Put(ctx, core.NoteBlock{ID: "work-1"}))
	require.NoError(t, os.WriteFile(filepath.Join(root, "work-2.txt"), []byte("x"), 0644))

	assert.Eventually(t, func() bool { return c.seen("work-1") }, 2*time.Second, 10*time.Millisecond)
	assert.False(t, c.seen("home-1"))
	assert.False(t, c.seen("work-2"))
}

func TestWatch_InvalidPattern(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Watch(context.Background(), "[")
	assert.Error(t, err)
}

func TestWatch_ReadOnlyMissingRoot(t *testing.T) {
	repo := NewRepository(Config{Path: filepath.Join(t.TempDir(), "missing"), ReadOnly: true})

	_, err := repo.Watch(context.Background(), "")
	assert.Error(t, err)
}
