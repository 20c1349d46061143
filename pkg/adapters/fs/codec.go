package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/zenus/pkg/core"
)

const (
	headerOpen    = "<!-- "
	headerClose   = " -->"
	headingMarker = "# "
)

// Header is the metadata stored on the first line of a note file,
// as a JSON object wrapped in an HTML comment.
type Header struct {
	Title       string    `json:"title"`
	IsCollapsed bool      `json:"isCollapsed"`
	Order       int       `json:"order"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Codec converts notes to and from their on-disk form.
//
// Files are written in the newest format only:
//
//	<!-- {"title":"...","isCollapsed":false,"order":0,...} -->
//
//	content...
//
// Reading walks a chain of decoders from newest to oldest format, so files
// written by earlier releases (a "# Title" first line, or bare text) still load.
type Codec struct {
	chain []decodeStep
}

// decodeStep reports whether it recognized the data. A step that returns false
// must leave n and h untouched.
type decodeStep func(data []byte, n *core.NoteBlock, h *Header) bool

// NewCodec returns a codec with the full decoder chain.
func NewCodec() *Codec {
	c := &Codec{}
	c.chain = []decodeStep{c.decodeMetadataHeader, decodeHeading, decodePlain}
	return c
}

// Encode renders n with the given timestamps. The id is not stored; it lives in the filename.
func (c *Codec) Encode(n core.NoteBlock, createdAt, updatedAt time.Time) ([]byte, error) {
	meta, err := json.Marshal(Header{
		Title:       n.Title,
		IsCollapsed: n.IsCollapsed,
		Order:       n.Order,
		Tags:        n.Tags,
		CreatedAt:   createdAt.UTC(),
		UpdatedAt:   updatedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize metadata: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(len(meta) + len(n.Content) + 16)
	buf.WriteString(headerOpen)
	buf.Write(meta)
	buf.WriteString(headerClose)
	buf.WriteString("\n\n")
	buf.WriteString(n.Content)
	return buf.Bytes(), nil
}

// Decode never fails: anything unrecognized degrades to defaults and plain content.
func (c *Codec) Decode(data []byte, id string) (core.NoteBlock, Header) {
	n := core.NoteBlock{ID: id, Title: core.DefaultTitle}
	var h Header
	for _, step := range c.chain {
		if step(data, &n, &h) {
			break
		}
	}
	h.Title = n.Title
	h.IsCollapsed = n.IsCollapsed
	h.Order = n.Order
	h.Tags = n.Tags
	return n, h
}

func (c *Codec) decodeMetadataHeader(data []byte, n *core.NoteBlock, h *Header) bool {
	line, rest := splitLine(data)
	inner, ok := headerPayload(line)
	if !ok {
		return false
	}

	if parseHeaderFields(inner, n, h) {
		// The line after the header is skipped; it may still carry the title
		// when the header has none.
		next, content := splitLine(rest)
		if n.Title == core.DefaultTitle && bytes.HasPrefix(next, []byte(headingMarker)) {
			n.Title = string(next[len(headingMarker):])
		}
		n.Content = string(content)
		return true
	}

	// Delimiters without a readable mapping: the line is still a header, never content.
	if sep, after := splitLine(rest); len(bytes.TrimSpace(sep)) == 0 {
		rest = after
	}
	if !decodeHeading(rest, n, h) {
		decodePlain(rest, n, h)
	}
	return true
}

func decodeHeading(data []byte, n *core.NoteBlock, _ *Header) bool {
	line, rest := splitLine(data)
	if !bytes.HasPrefix(line, []byte(headingMarker)) {
		return false
	}
	n.Title = string(line[len(headingMarker):])
	_, content := splitLine(rest)
	n.Content = string(content)
	return true
}

func decodePlain(data []byte, n *core.NoteBlock, _ *Header) bool {
	n.Title = core.DefaultTitle
	n.IsCollapsed = false
	n.Order = 0
	n.Content = string(data)
	return true
}

// headerPayload returns the text between the comment delimiters of line.
func headerPayload(line []byte) ([]byte, bool) {
	if len(line) < len(headerOpen)+len(headerClose) {
		return nil, false
	}
	if !bytes.HasPrefix(line, []byte(headerOpen)) || !bytes.HasSuffix(line, []byte(headerClose)) {
		return nil, false
	}
	return line[len(headerOpen) : len(line)-len(headerClose)], true
}

// parseHeaderFields fills every key that decodes; a key with an unexpected type
// is skipped without affecting the others. It fails only when payload is not a JSON object.
func parseHeaderFields(payload []byte, n *core.NoteBlock, h *Header) bool {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil || raw == nil {
		return false
	}

	var (
		title     string
		collapsed bool
		order     int
		tags      []string
		ts        time.Time
	)
	if v, ok := field(raw, "title"); ok && json.Unmarshal(v, &title) == nil {
		n.Title = title
	}
	if v, ok := field(raw, "isCollapsed"); ok && json.Unmarshal(v, &collapsed) == nil {
		n.IsCollapsed = collapsed
	}
	if v, ok := field(raw, "order"); ok && json.Unmarshal(v, &order) == nil {
		n.Order = order
	}
	if v, ok := field(raw, "tags"); ok && json.Unmarshal(v, &tags) == nil {
		n.Tags = tags
	}
	if v, ok := field(raw, "createdAt"); ok && json.Unmarshal(v, &ts) == nil {
		h.CreatedAt = ts
	}
	ts = time.Time{}
	if v, ok := field(raw, "updatedAt"); ok && json.Unmarshal(v, &ts) == nil {
		h.UpdatedAt = ts
	}
	return true
}

// field treats an explicit null like a missing key.
func field(raw map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	v, ok := raw[key]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil, false
	}
	return v, true
}

// splitLine cuts data after the first newline. The returned line has no
// line terminator; rest is nil when data holds a single line.
func splitLine(data []byte) (line, rest []byte) {
	i := bytes.IndexByte(data, '\n')
	if i < 0 {
		return bytes.TrimSuffix(data, []byte("\r")), nil
	}
	return bytes.TrimSuffix(data[:i], []byte("\r")), data[i+1:]
}
