package commands

import (
	"context"
	"flag"
	"io"

	"todocli/internal/config"
	"todocli/internal/tasks"
)

func init() {
	Register(&UndoCmd{})
}

// UndoCmd implements the undo command.
type UndoCmd struct{}

func (c *UndoCmd) Name() string      { return "undo" }
func (c *UndoCmd) Aliases() []string { return []string{"uncomplete"} }
func (c *UndoCmd) Synopsis() string  { return "Mark a task as pending again" }
func (c *UndoCmd) Usage() string     { return "todocli undo <ref>" }
func (c *UndoCmd) NeedsAuth() bool   { return true }

func (c *UndoCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UndoCmd) Run(ctx context.Context, cfg *config.Config, client *tasks.Client, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, cfg, client, args, false, out, errOut)
}
