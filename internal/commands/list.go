package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todocli/internal/config"
	"todocli/internal/exitcode"
	"todocli/internal/output"
	"todocli/internal/tasks"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command. Also runs for `todocli` with no
// args. Tasks print in listed order with 1-based numbers; those numbers
// are what done/undo/edit/rm accept as references.
type ListCmd struct {
	count bool
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "todocli list [--count]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.count, "count", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, client *tasks.Client, args []string, out, errOut io.Writer) int {
	list, err := client.List(ctx)
	if err != nil {
		return fail(errOut, err)
	}

	for i, task := range list.Tasks {
		output.FormatTask(out, i+1, task)
	}

	if len(list.Tasks) == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	if c.count && !cfg.Quiet {
		fmt.Fprintf(out, "%d task(s)\n", list.Count)
	}
	return exitcode.Success
}
