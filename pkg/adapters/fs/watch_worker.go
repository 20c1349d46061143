package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/zenus/pkg/core"
)

// Watch reports changes to note files in both partitions until ctx is cancelled.
// pattern is a doublestar glob matched against note ids; empty matches every note.
//
// Writes go through a temp file and a rename, so an overwrite shows up as CREATE.
// Archiving shows up as DELETE in the active partition plus CREATE in the archive.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", pattern)
	}

	if _, err := os.Stat(r.Path); err != nil {
		if !errors.Is(err, os.ErrNotExist) || r.config.ReadOnly {
			return nil, fmt.Errorf("cannot watch %s: %w", r.Path, err)
		}
		if err := os.MkdirAll(r.Path, 0755); err != nil {
			return nil, fmt.Errorf("failed to create root directory: %w", err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(r.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", r.Path, err)
	}
	// The archive directory may not exist yet; it is picked up when created.
	_ = watcher.Add(r.dir(core.Archived))

	w := &watchWorker{
		repo:    r,
		pattern: pattern,
		watcher: watcher,
		events:  make(chan core.Event, 16),
	}
	r.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		r.logger.Error("watcher stopped", "error", err)
		if r.config.ErrorHandler != nil {
			r.config.ErrorHandler(err)
		}
	}))

	return w.events, nil
}

type watchWorker struct {
	repo    *Repository
	pattern string
	watcher *fsnotify.Watcher
	events  chan core.Event
}

// run is the main event loop. It owns the watcher and the events channel.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
		}
	}()
	defer close(w.events)
	defer w.repo.setWatcherActive(false)
	defer w.watcher.Close()

	archiveDir := w.repo.dir(core.Archived)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher events channel closed")
			}
			w.repo.logger.Debug("event received", "name", event.Name, "op", event.Op.String())

			if filepath.Clean(event.Name) == archiveDir && event.Has(fsnotify.Create) {
				if err := w.watcher.Add(archiveDir); err != nil {
					w.repo.logger.Warn("failed to watch archive directory", "error", err)
				}
				continue
			}

			e, ok := w.mapEvent(event)
			if !ok {
				continue
			}
			w.repo.recordEvent()
			select {
			case w.events <- e:
			case <-ctx.Done():
				return nil
			}

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher errors channel closed")
			}
			w.repo.logger.Error("fsnotify error", "error", wErr)
			if w.repo.config.ErrorHandler != nil {
				w.repo.config.ErrorHandler(wErr)
			}
		}
	}
}

// mapEvent turns a raw filesystem event into a note event, dropping
// anything that is not a note file matching the pattern.
func (w *watchWorker) mapEvent(event fsnotify.Event) (core.Event, bool) {
	var p core.Partition
	switch filepath.Dir(event.Name) {
	case w.repo.Path:
		p = core.Active
	case w.repo.dir(core.Archived):
		p = core.Archived
	default:
		return core.Event{}, false
	}

	id, ok := w.repo.noteID(filepath.Base(event.Name))
	if !ok {
		return core.Event{}, false
	}
	if w.pattern != "" {
		if matched, err := doublestar.Match(w.pattern, id); err != nil || !matched {
			return core.Event{}, false
		}
	}

	var t core.EventType
	switch {
	case event.Has(fsnotify.Create):
		t = core.EventCreate
	case event.Has(fsnotify.Write):
		t = core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		t = core.EventDelete
	default:
		return core.Event{}, false
	}

	return core.Event{
		Type:      t,
		ID:        id,
		Partition: p,
		Timestamp: time.Now().Unix(),
	}, true
}
