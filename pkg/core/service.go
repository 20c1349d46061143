package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Service is the entry point used by the CLI and embedding applications.
// It checks arguments and logs, and leaves storage to the Repository.
type Service struct {
	repo   Repository
	logger *slog.Logger

	mu       sync.RWMutex
	watchers int
}

// NewService creates a new Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Repository returns the underlying storage.
func (s *Service) Repository() Repository {
	return s.repo
}

// ListNotes returns the notes of a partition in display order.
func (s *Service) ListNotes(ctx context.Context, p Partition) ([]NoteBlock, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("unknown partition %q", p)
	}
	notes, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("listed notes", "partition", p, "count", len(notes))
	return notes, nil
}

// SaveNote creates or updates a note.
func (s *Service) SaveNote(ctx context.Context, n NoteBlock) error {
	if n.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidID)
	}
	if err := s.repo.Put(ctx, n); err != nil {
		return err
	}
	s.logger.Debug("saved note", "id", n.ID)
	return nil
}

// DeleteNote removes a note from a partition.
func (s *Service) DeleteNote(ctx context.Context, id string, p Partition) error {
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidID)
	}
	if !p.Valid() {
		return fmt.Errorf("unknown partition %q", p)
	}
	if err := s.repo.Delete(ctx, id, p); err != nil {
		return err
	}
	s.logger.Debug("deleted note", "id", id, "partition", p)
	return nil
}

// ArchiveNote moves a note into the archive.
func (s *Service) ArchiveNote(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidID)
	}
	if err := s.repo.Archive(ctx, id); err != nil {
		return err
	}
	s.logger.Debug("archived note", "id", id)
	return nil
}

// UnarchiveNote moves a note back to the active partition.
func (s *Service) UnarchiveNote(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidID)
	}
	if err := s.repo.Unarchive(ctx, id); err != nil {
		return err
	}
	s.logger.Debug("unarchived note", "id", id)
	return nil
}

// Reorder applies a batch of order updates.
func (s *Service) Reorder(ctx context.Context, updates []OrderUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	if err := s.repo.Reorder(ctx, updates); err != nil {
		return err
	}
	s.logger.Debug("reordered notes", "count", len(updates))
	return nil
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	events, err := w.Watch(ctx, pattern)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.watchers++
	s.mu.Unlock()

	out := make(chan Event)
	go func() {
		defer func() {
			s.mu.Lock()
			s.watchers--
			s.mu.Unlock()
			close(out)
		}()
		for e := range events {
			select {
			case out <- e:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
