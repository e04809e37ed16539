package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todocli/internal/config"
	"todocli/internal/exitcode"
	"todocli/internal/output"
	"todocli/internal/session"
	"todocli/internal/tasks"
)

func init() {
	Register(&WhoamiCmd{})
}

// WhoamiCmd prints the stored session user.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string      { return "whoami" }
func (c *WhoamiCmd) Aliases() []string { return nil }
func (c *WhoamiCmd) Synopsis() string  { return "Print the signed-in user" }
func (c *WhoamiCmd) Usage() string     { return "todocli whoami" }
func (c *WhoamiCmd) NeedsAuth() bool   { return false }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, client *tasks.Client, args []string, out, errOut io.Writer) int {
	sessions := session.NewStore(cfg.SessionPath(), cfg.TokenPath())
	user, err := sessions.User()
	if err != nil {
		fmt.Fprintln(errOut, "error: not logged in (run: todocli login)")
		return exitcode.AuthError
	}
	output.FormatUser(out, user)
	return exitcode.Success
}
