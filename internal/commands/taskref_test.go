package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todocli/internal/cache"
	"todocli/internal/config"
	"todocli/internal/service"
	"todocli/internal/tasks"
	"todocli/internal/testutil"
)

func TestParseTaskRef(t *testing.T) {
	ref, err := ParseTaskRef([]string{"3"})
	require.NoError(t, err)
	assert.Equal(t, TaskRef{Num: 3}, ref)

	ref, err = ParseTaskRef([]string{"a1b2"})
	require.NoError(t, err)
	assert.Equal(t, TaskRef{ID: "a1b2"}, ref)

	_, err = ParseTaskRef(nil)
	assert.ErrorIs(t, err, ErrTaskRefRequired)

	_, err = ParseTaskRef([]string{"0"})
	assert.Error(t, err)

	// Non-ASCII digits are not positions; they read as a literal ID.
	ref, err = ParseTaskRef([]string{"٣"})
	require.NoError(t, err)
	assert.Equal(t, TaskRef{ID: "٣"}, ref)
}

func TestResolveTask_PositionMatchesListedOrder(t *testing.T) {
	svc := testutil.NewFakeService()
	first := svc.AddTask("Buy milk", false)
	second := svc.AddTask("Walk dog", true)
	client := tasks.New(tasks.Config{Service: svc, Cache: cache.New(config.DefaultStaleTTL)})
	ctx := context.Background()

	got, err := ResolveTask(ctx, client, TaskRef{Num: 1})
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	got, err = ResolveTask(ctx, client, TaskRef{Num: 2})
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)

	_, err = ResolveTask(ctx, client, TaskRef{Num: 3})
	assert.ErrorContains(t, err, "out of range")
}

func TestResolveTask_ByID(t *testing.T) {
	svc := testutil.NewFakeService()
	seeded := svc.AddTask("Buy milk", false)
	client := tasks.New(tasks.Config{Service: svc, Cache: cache.New(config.DefaultStaleTTL)})
	ctx := context.Background()

	got, err := ResolveTask(ctx, client, TaskRef{ID: seeded.ID})
	require.NoError(t, err)
	assert.Equal(t, seeded.Title, got.Title)

	_, err = ResolveTask(ctx, client, TaskRef{ID: "nope"})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestResolveTask_UsesCachedOrder(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false)
	target := svc.AddTask("Walk dog", false)
	client := tasks.New(tasks.Config{Service: svc, Cache: cache.New(config.DefaultStaleTTL)})
	ctx := context.Background()

	// The user listed tasks, then the backend changed underneath.
	_, err := client.List(ctx)
	require.NoError(t, err)
	_, err = svc.DeleteTask(ctx, "1")
	require.NoError(t, err)

	// Position 2 still means the second line of the listing they saw.
	got, err := ResolveTask(ctx, client, TaskRef{Num: 2})
	require.NoError(t, err)
	assert.Equal(t, target.ID, got.ID)
}
