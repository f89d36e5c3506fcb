package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/adapters/memory"
)

func TestStorage(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStorage()

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", "v1"))
	require.NoError(t, s.Set(ctx, "k", "v2"))

	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", v)
}

func TestStorage_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := memory.NewStorage()
	assert.ErrorIs(t, s.Set(ctx, "k", "v"), context.Canceled)
	_, _, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
