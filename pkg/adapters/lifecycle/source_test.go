package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/adapters/lifecycle"
	"github.com/aretw0/jot/pkg/core"
)

func TestSource_ForwardsAndCloses(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	upstream := make(chan core.Event, 2)
	upstream <- core.Event{Type: core.EventModify, Key: "notes", Timestamp: at.Unix()}
	close(upstream)

	src := lifecycle.NewSource(upstream)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, src.Start(ctx))

	select {
	case e := <-src.Events():
		change, ok := e.(lifecycle.Change)
		require.True(t, ok)
		assert.Equal(t, "notes", change.Key)
		want := time.Unix(at.Unix(), 0).Format(time.TimeOnly) + " MODIFY notes"
		assert.Equal(t, want, e.String())
	case <-ctx.Done():
		t.Fatal("Timed out waiting for event")
	}

	select {
	case _, ok := <-src.Events():
		assert.False(t, ok, "source should close after upstream closes")
	case <-ctx.Done():
		t.Fatal("Timed out waiting for close")
	}
}

func TestSource_ClosesOnCancel(t *testing.T) {
	upstream := make(chan core.Event)
	src := lifecycle.NewSource(upstream)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, src.Start(ctx))
	cancel()

	select {
	case _, ok := <-src.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("source not closed after cancel")
	}
}
