package commands

import (
	"context"
	"flag"
	"io"

	"todocli/internal/config"
	"todocli/internal/service"
	"todocli/internal/tasks"
)

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command. A successful registration
// also signs in, like the mobile flow.
type RegisterCmd struct {
	password string
	auth     service.Authenticator
	input    io.Reader
}

// SetAuth overrides the authenticator (for testing).
func (c *RegisterCmd) SetAuth(a service.Authenticator) {
	c.auth = a
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return nil }
func (c *RegisterCmd) Synopsis() string  { return "Create an account and sign in" }
func (c *RegisterCmd) Usage() string     { return "todocli register [--password <password>] <email>" }
func (c *RegisterCmd) NeedsAuth() bool   { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.password, "password", "", "")
}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, client *tasks.Client, args []string, out, errOut io.Writer) int {
	return runAuth(ctx, cfg, c.auth, c.input, c.password, args, true, out, errOut)
}
