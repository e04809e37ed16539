package localstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todocli/internal/service"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "tasks.json"), nil)
	s.SetClock(func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	})
	return s
}

func TestMissingFileReadsEmpty(t *testing.T) {
	s := newStore(t)

	tasks, err := s.ListTasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestCreatePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	s := New(path, nil)
	ctx := context.Background()

	created, err := s.CreateTask(ctx, service.CreateTaskRequest{Title: "Buy milk"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "local", created.UserID)

	reopened := New(path, nil)
	tasks, err := reopened.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, created.ID, tasks[0].ID)
	assert.Equal(t, "Buy milk", tasks[0].Title)
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	a, err := s.CreateTask(ctx, service.CreateTaskRequest{Title: "a"})
	require.NoError(t, err)
	b, err := s.CreateTask(ctx, service.CreateTaskRequest{Title: "b"})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestGetTask(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	created, err := s.CreateTask(ctx, service.CreateTaskRequest{Title: "Buy milk"})
	require.NoError(t, err)

	got, err := s.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = s.GetTask(ctx, "nope")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCompleteAndUncomplete(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	created, err := s.CreateTask(ctx, service.CreateTaskRequest{Title: "Buy milk"})
	require.NoError(t, err)

	done, err := s.CompleteTask(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, done.Completed)

	undone, err := s.UncompleteTask(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, undone.Completed)
}

func TestPatchTask(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	created, err := s.CreateTask(ctx, service.CreateTaskRequest{Title: "Buy milk"})
	require.NoError(t, err)

	title := "Buy oat milk"
	loc := &service.Location{Latitude: 52.52, Longitude: 13.405}
	got, err := s.PatchTask(ctx, created.ID, service.TaskPatch{Title: &title, Location: loc})
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", got.Title)
	require.NotNil(t, got.Location)
	assert.Equal(t, 52.52, got.Location.Latitude)
	assert.False(t, got.Completed, "untouched fields keep their value")
}

func TestReplaceTask(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	created, err := s.CreateTask(ctx, service.CreateTaskRequest{Title: "Buy milk"})
	require.NoError(t, err)

	got, err := s.ReplaceTask(ctx, created.ID, service.UpdateTaskRequest{
		Title:     "Walk dog",
		Completed: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Walk dog", got.Title)
	assert.True(t, got.Completed)
	assert.Nil(t, got.Location)
}

func TestDeleteTask(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	created, err := s.CreateTask(ctx, service.CreateTaskRequest{Title: "Buy milk"})
	require.NoError(t, err)

	deleted, err := s.DeleteTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	tasks, err := s.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	_, err = s.DeleteTask(ctx, created.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCorruptFileReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	s := New(path, nil)
	tasks, err := s.ListTasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)

	// The store recovers: the next write replaces the corrupt file.
	created, err := s.CreateTask(context.Background(), service.CreateTaskRequest{Title: "Buy milk"})
	require.NoError(t, err)
	tasks, err = s.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, created.ID, tasks[0].ID)
}

func TestMutateNotFound(t *testing.T) {
	s := newStore(t)

	_, err := s.CompleteTask(context.Background(), "nope")
	assert.ErrorIs(t, err, service.ErrNotFound)
}
