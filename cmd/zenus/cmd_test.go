package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/zenus/pkg/adapters/fs"
	"github.com/aretw0/zenus/pkg/core"
)

func TestParseOrderUpdates(t *testing.T) {
	updates, err := parseOrderUpdates([]string{"a=1", "b=-2", "x=y=3"})
	require.NoError(t, err)
	assert.Equal(t, []core.OrderUpdate{
		{ID: "a", Order: 1},
		{ID: "b", Order: -2},
		{ID: "x=y", Order: 3},
	}, updates)

	for _, bad := range []string{"a", "=1", "a=", "a=one"} {
		_, err := parseOrderUpdates([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestFilterNotes(t *testing.T) {
	notes := []core.NoteBlock{
		{ID: "work-1", Tags: []string{"todo"}},
		{ID: "work-2"},
		{ID: "home-1", Tags: []string{"todo"}},
	}

	got, err := filterNotes(notes, "", "")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = filterNotes(notes, "todo", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"work-1", "home-1"}, []string{got[0].ID, got[1].ID})

	got, err = filterNotes(notes, "todo", "work-*")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "work-1", got[0].ID)

	got, err = filterNotes(nil, "", "")
	require.NoError(t, err)
	assert.NotNil(t, got)

	_, err = filterNotes(notes, "", "[")
	assert.Error(t, err)
}

func TestReadContent(t *testing.T) {
	got, err := readContent("inline", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "inline", got)

	got, err = readContent("", "-", strings.NewReader("from stdin\n"))
	require.NoError(t, err)
	assert.Equal(t, "from stdin\n", got)

	path := filepath.Join(t.TempDir(), "body.txt")
	require.NoError(t, os.WriteFile(path, []byte("from file"), 0644))
	got, err = readContent("", path, nil)
	require.NoError(t, err)
	assert.Equal(t, "from file", got)

	_, err = readContent("", filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)
}

func TestBuildStoreTree(t *testing.T) {
	tree := buildStoreTree(core.ServiceState{
		RepositoryType: "fs-repository",
		RepositoryState: fs.RepositoryState{
			Path:          "/notes",
			ArchivePath:   "/notes/archive",
			ActiveNotes:   2,
			ArchivedNotes: 1,
			WatcherActive: true,
		},
	})

	require.Len(t, tree.Children, 3)
	assert.Equal(t, "2", tree.Children[0].Metadata["notes"])
	assert.Equal(t, "1", tree.Children[1].Metadata["notes"])
	assert.Equal(t, "running", tree.Children[2].Status)
}
