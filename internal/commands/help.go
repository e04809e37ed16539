package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todocli/internal/config"
	"todocli/internal/exitcode"
	"todocli/internal/tasks"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todocli help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, client *tasks.Client, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todocli                                            List all tasks
  todocli list [common flags] [--count]              List tasks with numbers
  todocli show [common flags] <ref>                  Show one task in full
  todocli add [common flags] [--photo <file>] [--at <lat,lng>] <title...>
  todocli done [common flags] <ref>                  Mark a task completed
  todocli undo [common flags] <ref>                  Mark a task pending
  todocli edit [common flags] [--title <title>] [--at <lat,lng>] [--clear-photo] <ref>
  todocli rm [common flags] <ref>                    Delete a task
  todocli login [common flags] [--password <pw>] <email>
  todocli register [common flags] [--password <pw>] <email>
  todocli logout [common flags]
  todocli whoami [common flags]
  todocli help
  todocli version

A <ref> is the task number from the last listing, or a full task ID.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Environment:
  TODO_API_URL     Backend base URL
  TODO_STALE_TTL   Cache staleness horizon (e.g. 5m)
  TODO_OFFLINE     Use the local task store instead of the backend
  TODO_LOCATION    Device position as "lat,lng" for add
`
