// Package lifecycle feeds storage change notifications to
// github.com/aretw0/lifecycle consumers such as `jot watch`.
package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/jot/pkg/core"
)

// Change is a storage event rendered for terminal output.
type Change struct {
	core.Event
}

// String formats the change as "15:04:05 MODIFY notes".
func (c Change) String() string {
	at := time.Unix(c.Timestamp, 0).Format(time.TimeOnly)
	return fmt.Sprintf("%s %s %s", at, c.Type, c.Key)
}

type changeSource struct {
	in  <-chan core.Event
	out chan lifecycle.Event
}

// NewSource wraps a Watch channel as a lifecycle.Source of Change values.
// Events() is closed when the Watch channel closes or the Start context ends.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &changeSource{in: events, out: make(chan lifecycle.Event)}
}

func (s *changeSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *changeSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, s.forward)
	return nil
}

func (s *changeSource) forward(ctx context.Context) error {
	defer close(s.out)
	for {
		var e core.Event
		select {
		case <-ctx.Done():
			return nil
		case next, ok := <-s.in:
			if !ok {
				return nil
			}
			e = next
		}

		select {
		case s.out <- Change{Event: e}:
		case <-ctx.Done():
			return nil
		}
	}
}
