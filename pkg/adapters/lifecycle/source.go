// Package lifecycle exposes zenus watch events as a lifecycle.Source,
// filtered and formatted for a terminal.
package lifecycle

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/zenus/pkg/core"
)

// NoteEvent is the lifecycle.Event emitted for one note change.
type NoteEvent struct {
	core.Event
}

// String renders "15:04:05 CREATE archived/n1" in local time.
func (e NoteEvent) String() string {
	return fmt.Sprintf("%s %-6s %s/%s", time.Unix(e.Timestamp, 0).Format(time.TimeOnly), e.Type, e.Partition, e.ID)
}

// Option narrows which events a source forwards.
type Option func(*noteSource)

// WithPartition forwards only events from partition p.
func WithPartition(p core.Partition) Option {
	return func(s *noteSource) {
		s.partition = p
	}
}

// WithTypes forwards only the given event types. No types means all.
func WithTypes(types ...core.EventType) Option {
	return func(s *noteSource) {
		s.types = types
	}
}

type noteSource struct {
	events    <-chan core.Event
	out       chan lifecycle.Event
	partition core.Partition
	types     []core.EventType
}

// NewSource wraps a watch channel.
func NewSource(events <-chan core.Event, opts ...Option) lifecycle.Source {
	s := &noteSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *noteSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *noteSource) accept(e core.Event) bool {
	if s.partition != "" && e.Partition != s.partition {
		return false
	}
	return len(s.types) == 0 || slices.Contains(s.types, e.Type)
}

// Start forwards matching events until the watch channel closes or ctx is
// cancelled, then closes Events.
func (s *noteSource) Start(ctx context.Context) error {
	if s.partition != "" && !s.partition.Valid() {
		return fmt.Errorf("unknown partition %q", s.partition)
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if !s.accept(e) {
					continue
				}
				select {
				case s.out <- NoteEvent{Event: e}:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
