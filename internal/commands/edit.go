package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todocli/internal/config"
	"todocli/internal/device"
	"todocli/internal/exitcode"
	"todocli/internal/service"
	"todocli/internal/tasks"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command as a partial update: only the
// fields given as flags are sent.
type EditCmd struct {
	title      string
	at         string
	clearPhoto bool
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Update fields of a task" }
func (c *EditCmd) Usage() string {
	return "todocli edit [--title <title>] [--at <lat,lng>] [--clear-photo] <ref>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.at, "at", "", "")
	fs.BoolVar(&c.clearPhoto, "clear-photo", false, "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, client *tasks.Client, args []string, out, errOut io.Writer) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		if err == ErrTaskRefRequired {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	var patch service.TaskPatch
	if c.title != "" {
		patch.Title = &c.title
	}
	if c.at != "" {
		loc, err := device.ParseLocation(c.at)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		patch.Location = &loc
	}
	if c.clearPhoto {
		empty := ""
		patch.PhotoURI = &empty
	}
	if patch.Title == nil && patch.Location == nil && patch.PhotoURI == nil {
		fmt.Fprintln(errOut, "error: nothing to update")
		return exitcode.UserError
	}

	task, err := ResolveTask(ctx, client, ref)
	if err != nil {
		return fail(errOut, err)
	}

	if _, err := client.Patch(ctx, task.ID, patch); err != nil {
		return fail(errOut, err)
	}

	// The record no longer references the photo; drop the upload too.
	if c.clearPhoto && task.PhotoURI != "" {
		client.RemovePhoto(ctx, task.PhotoURI)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
