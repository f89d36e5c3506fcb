package transfer_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/adapters/memory"
	"github.com/aretw0/jot/pkg/core"
	"github.com/aretw0/jot/pkg/transfer"
)

var now = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// failingStorage wraps memory storage and fails writes once armed.
type failingStorage struct {
	*memory.Storage
	failWrites bool
}

func (f *failingStorage) Set(ctx context.Context, key, value string) error {
	if f.failWrites {
		return fmt.Errorf("write refused")
	}
	return f.Storage.Set(ctx, key, value)
}

func setup(t *testing.T) (*transfer.Codec, *core.Service, *failingStorage) {
	t.Helper()

	storage := &failingStorage{Storage: memory.NewStorage()}
	seq := 0
	svc := core.NewService(core.NewStore(storage, ""), discard,
		core.WithClock(func() time.Time { return now }),
		core.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("00000000-%04d", seq)
		}),
	)
	return transfer.NewCodec(svc, discard), svc, storage
}

func seed(t *testing.T, svc *core.Service, notes ...core.Note) {
	t.Helper()
	for _, n := range notes {
		_, err := svc.CreateNote(context.Background(), n)
		require.NoError(t, err)
	}
}

func mk(id, title, content string, age time.Duration) core.Note {
	ts := now.Add(-age)
	return core.Note{ID: id, Title: title, Content: content, CreatedAt: ts, UpdatedAt: ts}
}
