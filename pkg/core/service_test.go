package core_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/core"
)

// MockStorage implements core.Storage in memory.
// It deliberately does NOT implement core.Watchable.
type MockStorage struct {
	data   map[string]string
	sets   int
	setErr error
}

func NewMockStorage() *MockStorage {
	return &MockStorage{data: make(map[string]string)}
}

func (m *MockStorage) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MockStorage) Set(ctx context.Context, key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	m.data[key] = value
	return nil
}

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return base.Add(time.Duration(minutes) * time.Minute)
}

func note(id, title, content string, updated int) core.Note {
	return core.Note{ID: id, Title: title, Content: content, CreatedAt: base, UpdatedAt: at(updated)}
}

func newService(t *testing.T) (*core.Service, *MockStorage) {
	t.Helper()
	storage := NewMockStorage()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	seq := 0
	svc := core.NewService(core.NewStore(storage, ""), logger,
		core.WithClock(func() time.Time { return at(100) }),
		core.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("gen-%d", seq)
		}),
	)
	return svc, storage
}

func ids(notes []core.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func TestStore_LazyInitialization(t *testing.T) {
	storage := NewMockStorage()
	store := core.NewStore(storage, "")

	raw, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)

	v, ok := storage.data[core.DefaultKey]
	assert.True(t, ok, "first load should initialize the key")
	assert.Equal(t, "[]", v)
}

func TestService_CRUD(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	// 1. Create
	id, err := svc.CreateNote(ctx, note("a", "First", "one", 1))
	require.NoError(t, err)
	assert.Equal(t, "a", id)
	_, err = svc.CreateNote(ctx, note("b", "Second", "two", 2))
	require.NoError(t, err)

	// 2. Get
	got, found, err := svc.GetNote(ctx, "a")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "First", got.Title)

	// 3. List is most recent first
	notes, err := svc.ListNotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids(notes))

	// 4. Update moves "a" to the top
	updated := note("a", "First!", "one", 5)
	found, err = svc.UpdateNote(ctx, "a", updated)
	require.NoError(t, err)
	assert.True(t, found)
	notes, err = svc.ListNotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(notes))
	assert.Equal(t, "First!", notes[0].Title)

	// 5. Delete
	found, err = svc.DeleteNote(ctx, "a")
	require.NoError(t, err)
	assert.True(t, found)
	_, found, err = svc.GetNote(ctx, "a")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestService_NotFoundIsNoop(t *testing.T) {
	svc, storage := newService(t)
	ctx := context.Background()

	_, err := svc.CreateNote(ctx, note("a", "A", "", 1))
	require.NoError(t, err)
	before := storage.data[core.DefaultKey]
	setsBefore := storage.sets

	found, err := svc.UpdateNote(ctx, "missing", note("missing", "X", "", 2))
	require.NoError(t, err)
	assert.False(t, found)

	found, err = svc.DeleteNote(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	assert.Equal(t, before, storage.data[core.DefaultKey])
	assert.Equal(t, setsBefore, storage.sets, "not-found mutations must not write")
}

func TestService_EmptyID(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateNote(ctx, core.Note{Title: "no id"})
	assert.ErrorIs(t, err, core.ErrEmptyID)

	_, err = svc.UpdateNote(ctx, "", core.Note{})
	assert.ErrorIs(t, err, core.ErrEmptyID)

	_, err = svc.DeleteNote(ctx, "")
	assert.ErrorIs(t, err, core.ErrEmptyID)
}

func TestService_ClearAll(t *testing.T) {
	svc, storage := newService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.CreateNote(ctx, note(fmt.Sprint(i), "t", "c", i))
		require.NoError(t, err)
	}
	require.NoError(t, svc.ClearAll(ctx))

	notes, err := svc.ListNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
	assert.Equal(t, "[]", storage.data[core.DefaultKey])
}

func TestService_TieBreakByID(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		_, err := svc.CreateNote(ctx, note(id, id, "", 1))
		require.NoError(t, err)
	}

	notes, err := svc.ListNotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(notes))
}

func TestService_CorruptStorageIsEmpty(t *testing.T) {
	svc, storage := newService(t)
	storage.data[core.DefaultKey] = "{not json"

	notes, err := svc.ListNotes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestService_StorageErrorsPropagate(t *testing.T) {
	svc, storage := newService(t)
	boom := errors.New("disk full")
	storage.data[core.DefaultKey] = "[]"
	storage.setErr = boom

	_, err := svc.CreateNote(context.Background(), note("a", "A", "", 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestService_EditNoteRefreshesUpdatedAt(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateNote(ctx, note("a", "Old", "old", 1))
	require.NoError(t, err)

	edited, found, err := svc.EditNote(ctx, "a", "New", "new")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "New", edited.Title)
	assert.Equal(t, at(100), edited.UpdatedAt)
	assert.Equal(t, base, edited.CreatedAt, "CreatedAt is never mutated")

	_, found, err = svc.EditNote(ctx, "missing", "x", "y")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestService_NewNote(t *testing.T) {
	svc, _ := newService(t)

	n := svc.NewNote("title", "body")
	assert.Equal(t, "gen-1", n.ID)
	assert.Equal(t, at(100), n.CreatedAt)
	assert.Equal(t, n.CreatedAt, n.UpdatedAt)
}

func TestService_WatchUnsupported(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Watch(context.Background())
	assert.ErrorIs(t, err, core.ErrWatchUnsupported)
}

func TestService_State(t *testing.T) {
	svc, _ := newService(t)

	state, ok := svc.State().(core.ServiceState)
	require.True(t, ok)
	assert.Equal(t, core.DefaultKey, state.Key)
	assert.False(t, state.Watchable)
	assert.Equal(t, "service", svc.ComponentType())
}

func TestService_LenientTimestamps(t *testing.T) {
	svc, storage := newService(t)
	ctx := context.Background()
	storage.data[core.DefaultKey] = `[
		{"id":"a","title":"A","content":"","createdAt":"2024-05-01T12:00:00Z","updatedAt":"2024-05-01T12:05:00Z"},
		{"id":"b","title":"B","content":"","createdAt":"2024-05-01","updatedAt":""}
	]`

	_, err := svc.CreateNote(ctx, note("c", "C", "", 1))
	require.NoError(t, err)

	notes, err := svc.ListNotes(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, ids(notes), "one odd timestamp must not drop the collection")

	b, found, err := svc.GetNote(ctx, "b")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), b.CreatedAt)
	assert.True(t, b.UpdatedAt.IsZero())
}

func TestService_UpdateReplacesDuplicates(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for _, title := range []string{"first", "second"} {
		_, err := svc.CreateNote(ctx, note("dup", title, "", 1))
		require.NoError(t, err)
	}

	found, err := svc.UpdateNote(ctx, "dup", note("dup", "replaced", "", 2))
	require.NoError(t, err)
	assert.True(t, found)

	notes, err := svc.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	for _, n := range notes {
		assert.Equal(t, "replaced", n.Title)
	}
}

func TestStore_ReadOnlyEmptyStorage(t *testing.T) {
	svc, storage := newService(t)
	storage.setErr = core.ErrReadOnly

	notes, err := svc.ListNotes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notes)

	_, err = svc.CreateNote(context.Background(), note("a", "A", "", 1))
	assert.ErrorIs(t, err, core.ErrReadOnly)
}
