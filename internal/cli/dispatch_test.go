package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todocli/internal/cache"
	"todocli/internal/commands"
	"todocli/internal/config"
	"todocli/internal/exitcode"
	"todocli/internal/session"
	"todocli/internal/tasks"
	"todocli/internal/testutil"
)

func newDispatcher(t *testing.T, svc *testutil.FakeService) *Dispatcher {
	t.Helper()
	factory := func(ctx context.Context, cfg *config.Config) (*tasks.Client, error) {
		return tasks.New(tasks.Config{Service: svc, Cache: cache.New(cfg.StaleTTL)}), nil
	}
	return NewDispatcher(commands.DefaultRegistry, factory)
}

func run(t *testing.T, d *Dispatcher, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := d.Run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_NoArgsListsTasks(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false)
	d := newDispatcher(t, svc)

	code, out, _ := run(t, d)
	assert.Equal(t, exitcode.Success, code)
	assert.Contains(t, out, "Buy milk")
}

func TestRun_UnknownCommand(t *testing.T) {
	d := newDispatcher(t, testutil.NewFakeService())

	code, _, errOut := run(t, d, "frobnicate")
	assert.Equal(t, exitcode.UserError, code)
	assert.Contains(t, errOut, "unknown command: frobnicate")
}

func TestRun_FlagBeforeCommand(t *testing.T) {
	d := newDispatcher(t, testutil.NewFakeService())

	code, _, errOut := run(t, d, "--quiet")
	assert.Equal(t, exitcode.UserError, code)
	assert.Contains(t, errOut, "unknown command: --quiet")
}

func TestRun_UnknownFlag(t *testing.T) {
	d := newDispatcher(t, testutil.NewFakeService())

	code, _, errOut := run(t, d, "list", "--frob")
	assert.Equal(t, exitcode.UserError, code)
	assert.Contains(t, errOut, "unknown flag: frob")
}

func TestRun_FlagNeedsArgument(t *testing.T) {
	d := newDispatcher(t, testutil.NewFakeService())

	code, _, errOut := run(t, d, "add", "--photo")
	assert.Equal(t, exitcode.UserError, code)
	assert.Contains(t, errOut, "flag needs an argument")
}

func TestRun_Aliases(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false)
	d := newDispatcher(t, svc)

	code, out, _ := run(t, d, "ls")
	assert.Equal(t, exitcode.Success, code)
	assert.Contains(t, out, "Buy milk")
}

func TestRun_NoSessionMapsToAuthError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (*tasks.Client, error) {
		return nil, session.ErrNoSession
	}
	d := NewDispatcher(commands.DefaultRegistry, factory)

	code, _, errOut := run(t, d, "list")
	assert.Equal(t, exitcode.AuthError, code)
	assert.Contains(t, errOut, "not logged in (run: todocli login)")
}

func TestRun_FactoryFailureMapsToBackendError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config) (*tasks.Client, error) {
		return nil, errors.New("backend unreachable")
	}
	d := NewDispatcher(commands.DefaultRegistry, factory)

	code, _, errOut := run(t, d, "list")
	assert.Equal(t, exitcode.BackendError, code)
	assert.Contains(t, errOut, "backend unreachable")
}

func TestRun_NoAuthCommandSkipsFactory(t *testing.T) {
	called := false
	factory := func(ctx context.Context, cfg *config.Config) (*tasks.Client, error) {
		called = true
		return nil, session.ErrNoSession
	}
	d := NewDispatcher(commands.DefaultRegistry, factory)

	code, out, _ := run(t, d, "version")
	assert.Equal(t, exitcode.Success, code)
	assert.Contains(t, out, "todocli")
	assert.False(t, called)
}

func TestRun_QuietFlagReachesCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false)
	d := newDispatcher(t, svc)

	code, out, _ := run(t, d, "done", "--quiet", "1")
	require.Equal(t, exitcode.Success, code)
	assert.Empty(t, out)
	assert.True(t, svc.Tasks()[0].Completed)
}
