package fs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/zenus/pkg/core"
)

// seedNotes writes count encoded notes straight to disk, bypassing the repository.
func seedNotes(b *testing.B, dir string, count int) {
	b.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		b.Fatal(err)
	}

	codec := NewCodec()
	now := time.Now()
	for i := 0; i < count; i++ {
		n := core.NoteBlock{
			ID:      fmt.Sprintf("note_%d", i),
			Title:   fmt.Sprintf("Note %d", i),
			Content: "# Benchmark Note\nThis is a test note.",
			Order:   count - i,
			Tags:    []string{"benchmark"},
		}
		data, err := codec.Encode(n, now, now)
		if err != nil {
			b.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, n.ID+DefaultExtension), data, 0644); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkList(b *testing.B) {
	for _, count := range []int{100, 1000} {
		b.Run(fmt.Sprintf("notes=%d", count), func(b *testing.B) {
			dir := b.TempDir()
			seedNotes(b, dir, count)
			repo := NewRepository(Config{Path: dir, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
			ctx := context.Background()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				notes, err := repo.List(ctx, core.Active)
				if err != nil {
					b.Fatal(err)
				}
				if len(notes) != count {
					b.Fatalf("expected %d notes, got %d", count, len(notes))
				}
			}
		})
	}
}

func BenchmarkReorder(b *testing.B) {
	dir := b.TempDir()
	seedNotes(b, dir, 100)
	repo := NewRepository(Config{Path: dir, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	ctx := context.Background()

	updates := make([]core.OrderUpdate, 100)
	for i := range updates {
		updates[i] = core.OrderUpdate{ID: fmt.Sprintf("note_%d", i), Order: i}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := repo.Reorder(ctx, updates); err != nil {
			b.Fatal(err)
		}
	}
}
