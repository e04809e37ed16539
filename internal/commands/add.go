package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"todocli/internal/config"
	"todocli/internal/device"
	"todocli/internal/exitcode"
	"todocli/internal/tasks"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command: the full save flow with optional
// photo attachment and location capture. Without --at the save flow asks
// the device locator for a position, best effort.
type AddCmd struct {
	photoPath string
	at        string
}

// SetPhotoPath sets the photo path (for testing).
func (c *AddCmd) SetPhotoPath(path string) {
	c.photoPath = path
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "todocli add [--photo <file>] [--at <lat,lng>] <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.photoPath, "photo", "", "")
	fs.StringVar(&c.at, "at", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, client *tasks.Client, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	req := tasks.SaveRequest{Title: title}

	if c.at != "" {
		loc, err := device.ParseLocation(c.at)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		req.Location = &loc
	}

	if c.photoPath != "" {
		f, err := os.Open(c.photoPath)
		if err != nil {
			fmt.Fprintf(errOut, "error: cannot read photo: %v\n", err)
			return exitcode.UserError
		}
		defer f.Close()
		req.Photo = f
		req.PhotoName = filepath.Base(c.photoPath)
	}

	task, err := client.Save(ctx, req)
	if err != nil {
		return fail(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "created %s\n", task.ID)
	}
	return exitcode.Success
}
