package fs

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/aretw0/zenus/pkg/core"
)

const (
	// DefaultArchiveDir is the subdirectory of the root holding archived notes.
	DefaultArchiveDir = "archive"
	// DefaultExtension is the extension of note files.
	DefaultExtension = ".md"
)

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path         string
	ArchiveDir   string // relative to Path, defaults to "archive"
	Extension    string // defaults to ".md"
	ReadOnly     bool
	Logger       *slog.Logger
	ErrorHandler func(error)      // receives watcher failures
	Clock        func() time.Time // defaults to time.Now
}

// Repository implements core.Repository on a directory of note files.
// Active notes live in the root, archived notes in the archive subdirectory.
// There is no in-process locking; the store assumes a single writer per root.
type Repository struct {
	Path   string
	config Config
	codec  *Codec
	logger *slog.Logger

	mu            sync.RWMutex // guards the observability fields below
	watcherActive bool
	lastEvent     *time.Time
}

// NewRepository creates a new filesystem-backed repository.
// Directories are created lazily by the first write.
func NewRepository(config Config) *Repository {
	if config.ArchiveDir == "" {
		config.ArchiveDir = DefaultArchiveDir
	}
	if config.Extension == "" {
		config.Extension = DefaultExtension
	}
	if config.Path != "" {
		config.Path = filepath.Clean(config.Path)
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		Path:   config.Path,
		config: config,
		codec:  NewCodec(),
		logger: logger,
	}
}

// List returns the notes of partition p sorted by (Order, ID).
func (r *Repository) List(ctx context.Context, p core.Partition) ([]core.NoteBlock, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("unknown partition %q", p)
	}

	notes := []core.NoteBlock{}
	for n, err := range r.Scan(ctx, p) {
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	core.SortNotes(notes)
	return notes, nil
}

// Scan lazily decodes the notes of partition p in directory order.
// A missing partition directory yields nothing.
func (r *Repository) Scan(ctx context.Context, p core.Partition) iter.Seq2[core.NoteBlock, error] {
	return func(yield func(core.NoteBlock, error) bool) {
		dir := r.dir(p)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return
			}
			yield(core.NoteBlock{}, fmt.Errorf("failed to read %s partition: %w", p, err))
			return
		}

		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				yield(core.NoteBlock{}, err)
				return
			}
			if entry.IsDir() {
				continue
			}
			id, ok := r.noteID(entry.Name())
			if !ok {
				continue
			}

			data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					continue // removed while listing
				}
				if !yield(core.NoteBlock{}, fmt.Errorf("failed to read note %s: %w", id, err)) {
					return
				}
				continue
			}

			n, _ := r.codec.Decode(data, id)
			if !yield(n, nil) {
				return
			}
		}
	}
}

// Put writes n into the partition that already holds its id, or the active
// partition for a new note. createdAt survives rewrites.
func (r *Repository) Put(ctx context.Context, n core.NoteBlock) error {
	if err := r.checkWritable(); err != nil {
		return err
	}
	if err := checkID(n.ID); err != nil {
		return err
	}
	if err := checkNote(n); err != nil {
		return err
	}

	p, found, err := r.locate(n.ID)
	if err != nil {
		return err
	}
	if !found {
		p = core.Active
	}

	now := r.config.Clock()
	createdAt := now
	if found {
		_, h, err := r.read(n.ID, p)
		if err != nil && !errors.Is(err, core.ErrNotFound) {
			return err
		}
		if !h.CreatedAt.IsZero() {
			createdAt = h.CreatedAt
		}
	}

	if err := r.write(n, p, createdAt, now); err != nil {
		return err
	}
	r.logger.Debug("note written", "id", n.ID, "partition", p)
	return nil
}

// Delete removes the note file from partition p. A missing file is not an error.
func (r *Repository) Delete(ctx context.Context, id string, p core.Partition) error {
	if err := r.checkWritable(); err != nil {
		return err
	}
	if err := checkID(id); err != nil {
		return err
	}
	if !p.Valid() {
		return fmt.Errorf("unknown partition %q", p)
	}

	if err := os.Remove(r.path(id, p)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to delete note %s: %w", id, err)
	}
	r.logger.Debug("note deleted", "id", id, "partition", p)
	return nil
}

// Archive moves a note from the active partition into the archive.
func (r *Repository) Archive(ctx context.Context, id string) error {
	return r.move(id, core.Active, core.Archived)
}

// Unarchive moves a note from the archive back into the active partition.
func (r *Repository) Unarchive(ctx context.Context, id string) error {
	return r.move(id, core.Archived, core.Active)
}

// Reorder rewrites the order of each note in updates, wherever it lives.
// Unknown ids are skipped. Updates are applied one file at a time, so a
// failure part way leaves the earlier ones in place.
func (r *Repository) Reorder(ctx context.Context, updates []core.OrderUpdate) error {
	if err := r.checkWritable(); err != nil {
		return err
	}

	for _, u := range updates {
		if err := ctx.Err(); err != nil {
			return err
		}
		if checkID(u.ID) != nil {
			r.logger.Debug("reorder skipped invalid id", "id", u.ID)
			continue
		}

		p, found, err := r.locate(u.ID)
		if err != nil {
			return err
		}
		if !found {
			r.logger.Debug("reorder skipped unknown note", "id", u.ID)
			continue
		}

		n, h, err := r.read(u.ID, p)
		if errors.Is(err, core.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}

		now := r.config.Clock()
		createdAt := h.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		n.Order = u.Order
		if err := r.write(n, p, createdAt, now); err != nil {
			return err
		}
	}
	return nil
}

// locate finds the partition currently holding id. The archive is checked first,
// so a note present in both is treated as archived.
func (r *Repository) locate(id string) (core.Partition, bool, error) {
	for _, p := range []core.Partition{core.Archived, core.Active} {
		info, err := os.Stat(r.path(id, p))
		if err == nil {
			if info.IsDir() {
				continue
			}
			return p, true, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat note %s: %w", id, err)
		}
	}
	return "", false, nil
}

func (r *Repository) move(id string, from, to core.Partition) error {
	if err := r.checkWritable(); err != nil {
		return err
	}
	if err := checkID(id); err != nil {
		return err
	}

	src := r.path(id, from)
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s in %s partition", core.ErrNotFound, id, from)
		}
		return fmt.Errorf("failed to stat note %s: %w", id, err)
	}

	if err := os.MkdirAll(r.dir(to), 0755); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", to, err)
	}
	if err := os.Rename(src, r.path(id, to)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s in %s partition", core.ErrNotFound, id, from)
		}
		return fmt.Errorf("failed to move note %s to %s: %w", id, to, err)
	}
	r.logger.Debug("note moved", "id", id, "from", from, "to", to)
	return nil
}

func (r *Repository) read(id string, p core.Partition) (core.NoteBlock, Header, error) {
	data, err := os.ReadFile(r.path(id, p))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return core.NoteBlock{}, Header{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
		}
		return core.NoteBlock{}, Header{}, fmt.Errorf("failed to read note %s: %w", id, err)
	}
	n, h := r.codec.Decode(data, id)
	return n, h, nil
}

func (r *Repository) write(n core.NoteBlock, p core.Partition, createdAt, updatedAt time.Time) error {
	if err := os.MkdirAll(r.dir(p), 0755); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", p, err)
	}
	data, err := r.codec.Encode(n, createdAt, updatedAt)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(r.path(n.ID, p), data, 0644); err != nil {
		return fmt.Errorf("failed to write note %s: %w", n.ID, err)
	}
	return nil
}

func (r *Repository) checkWritable() error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	return nil
}

func (r *Repository) dir(p core.Partition) string {
	if p == core.Archived {
		return filepath.Join(r.Path, r.config.ArchiveDir)
	}
	return r.Path
}

func (r *Repository) path(id string, p core.Partition) string {
	return filepath.Join(r.dir(p), id+r.config.Extension)
}

// noteID maps a directory entry name to a note id, rejecting foreign and temp files.
func (r *Repository) noteID(name string) (string, bool) {
	if !strings.HasSuffix(name, r.config.Extension) {
		return "", false
	}
	id := strings.TrimSuffix(name, r.config.Extension)
	if checkID(id) != nil {
		return "", false
	}
	return id, true
}

// checkID keeps ids usable as a single filename stem inside the root.
func checkID(id string) error {
	switch {
	case id == "":
		return fmt.Errorf("%w: empty id", core.ErrInvalidID)
	case strings.HasPrefix(id, "."):
		return fmt.Errorf("%w: %q starts with a dot", core.ErrInvalidID, id)
	case strings.ContainsAny(id, `/\`+"\x00"):
		return fmt.Errorf("%w: %q contains a path separator", core.ErrInvalidID, id)
	}
	return nil
}

// checkNote rejects fields the JSON header cannot carry byte for byte.
// Content is stored raw and needs no check.
func checkNote(n core.NoteBlock) error {
	if !utf8.ValidString(n.Title) {
		return fmt.Errorf("%w: title of %q is not valid UTF-8", core.ErrInvalidNote, n.ID)
	}
	for _, tag := range n.Tags {
		if !utf8.ValidString(tag) {
			return fmt.Errorf("%w: tag of %q is not valid UTF-8", core.ErrInvalidNote, n.ID)
		}
	}
	return nil
}

var _ core.Repository = (*Repository)(nil)
