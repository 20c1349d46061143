package fs

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/zenus/pkg/core"
)

func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec()
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	tests := []struct {
		name string
		note core.NoteBlock
	}{
		{"simple", core.NoteBlock{ID: "n1", Title: "T", Content: "C"}},
		{"empty title and content", core.NoteBlock{ID: "n2"}},
		{"multiline with trailing newline", core.NoteBlock{ID: "n3", Title: "Lines", Content: "a\nb\n\nc\n"}},
		{"content starting with blank lines", core.NoteBlock{ID: "n4", Title: "Gap", Content: "\n\nbody"}},
		{"collapsed and ordered", core.NoteBlock{ID: "n5", Title: "X", Content: "y", IsCollapsed: true, Order: 7}},
		{"negative order", core.NoteBlock{ID: "n6", Title: "neg", Order: -3}},
		{"title with comment terminator", core.NoteBlock{ID: "n7", Title: "a --> b\nc", Content: "<!-- not a header -->"}},
		{"content looks like heading", core.NoteBlock{ID: "n8", Title: "H", Content: "# Heading\n\ntext"}},
		{"tags", core.NoteBlock{ID: "n9", Title: "tagged", Content: "x", Tags: []string{"work", "idea"}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, err := codec.Encode(tc.note, created, updated)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(data), headerOpen), "missing header in %q", data)
			assert.Equal(t, 1, strings.Count(strings.SplitN(string(data), "\n", 2)[0], headerClose))

			got, h := codec.Decode(data, tc.note.ID)
			assert.Equal(t, tc.note, got)
			assert.True(t, created.Equal(h.CreatedAt), "createdAt %v", h.CreatedAt)
			assert.True(t, updated.Equal(h.UpdatedAt), "updatedAt %v", h.UpdatedAt)
		})
	}
}

func TestCodec_DecodeHistoricalFormats(t *testing.T) {
	codec := NewCodec()

	tests := []struct {
		name string
		file string
		want core.NoteBlock
	}{
		{
			name: "metadata header",
			file: "<!-- {\"title\":\"Meta\",\"isCollapsed\":true,\"order\":4,\"createdAt\":\"2025-01-01T00:00:00Z\",\"updatedAt\":\"2025-01-01T00:00:00Z\"} -->\n\nbody\nmore",
			want: core.NoteBlock{ID: "x", Title: "Meta", IsCollapsed: true, Order: 4, Content: "body\nmore"},
		},
		{
			name: "header without order (first release)",
			file: "<!-- {\"title\":\"Old\",\"isCollapsed\":false,\"createdAt\":\"2024-05-01T00:00:00+00:00\",\"updatedAt\":\"2024-05-01T00:00:00+00:00\"} -->\n\ntext",
			want: core.NoteBlock{ID: "x", Title: "Old", Content: "text"},
		},
		{
			name: "header missing title",
			file: "<!-- {\"isCollapsed\":true,\"order\":2} -->\n\ntext",
			want: core.NoteBlock{ID: "x", Title: core.DefaultTitle, IsCollapsed: true, Order: 2, Content: "text"},
		},
		{
			name: "header missing title with heading line",
			file: "<!-- {\"isCollapsed\":true} -->\n# Heading Title\nbody",
			want: core.NoteBlock{ID: "x", Title: "Heading Title", IsCollapsed: true, Content: "body"},
		},
		{
			name: "header title wins over heading line",
			file: "<!-- {\"title\":\"Meta\"} -->\n# Ignored\nbody",
			want: core.NoteBlock{ID: "x", Title: "Meta", Content: "body"},
		},
		{
			name: "header with wrongly typed key",
			file: "<!-- {\"title\":\"Partial\",\"order\":\"five\",\"isCollapsed\":true} -->\n\ntext",
			want: core.NoteBlock{ID: "x", Title: "Partial", IsCollapsed: true, Content: "text"},
		},
		{
			name: "header with null title",
			file: "<!-- {\"title\":null,\"order\":1} -->\n\ntext",
			want: core.NoteBlock{ID: "x", Title: core.DefaultTitle, Order: 1, Content: "text"},
		},
		{
			name: "header only",
			file: "<!-- {\"title\":\"Alone\"} -->",
			want: core.NoteBlock{ID: "x", Title: "Alone"},
		},
		{
			name: "heading",
			file: "# My Title\n\nfirst line\nsecond line",
			want: core.NoteBlock{ID: "x", Title: "My Title", Content: "first line\nsecond line"},
		},
		{
			name: "heading only",
			file: "# Lonely",
			want: core.NoteBlock{ID: "x", Title: "Lonely"},
		},
		{
			name: "plain text",
			file: "just some text\nacross lines\n",
			want: core.NoteBlock{ID: "x", Title: core.DefaultTitle, Content: "just some text\nacross lines\n"},
		},
		{
			name: "empty file",
			file: "",
			want: core.NoteBlock{ID: "x", Title: core.DefaultTitle},
		},
		{
			name: "malformed header falls back to heading",
			file: "<!-- {not json -->\n\n# Rescued\n\nbody",
			want: core.NoteBlock{ID: "x", Title: "Rescued", Content: "body"},
		},
		{
			name: "malformed header falls back to plain",
			file: "<!-- [1, 2] -->\n\nbody\n",
			want: core.NoteBlock{ID: "x", Title: core.DefaultTitle, Content: "body\n"},
		},
		{
			name: "crlf header",
			file: "<!-- {\"title\":\"Win\",\"order\":1} -->\r\n\r\nline1\r\nline2",
			want: core.NoteBlock{ID: "x", Title: "Win", Order: 1, Content: "line1\r\nline2"},
		},
		{
			name: "crlf heading",
			file: "# Win\r\n\r\nbody",
			want: core.NoteBlock{ID: "x", Title: "Win", Content: "body"},
		},
		{
			name: "comment not on first line is content",
			file: "intro\n<!-- {\"title\":\"Hidden\"} -->",
			want: core.NoteBlock{ID: "x", Title: core.DefaultTitle, Content: "intro\n<!-- {\"title\":\"Hidden\"} -->"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := codec.Decode([]byte(tc.file), "x")
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCodec_HeaderTimestamps(t *testing.T) {
	codec := NewCodec()

	_, h := codec.Decode([]byte("<!-- {\"title\":\"t\",\"createdAt\":\"2024-05-01T12:30:00+02:00\"} -->\n\nx"), "id")
	assert.True(t, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC).Equal(h.CreatedAt))
	assert.True(t, h.UpdatedAt.IsZero())

	_, h = codec.Decode([]byte("# legacy\n\nx"), "id")
	assert.True(t, h.CreatedAt.IsZero())
	assert.Equal(t, "legacy", h.Title)
}
