// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"todocli/internal/service"
)

// FormatTask formats a task line for the list view.
// Format: "{N:>4}  [x]  {TITLE}{markers}\n" where markers note an attached
// photo or location.
func FormatTask(w io.Writer, num int, task service.Task) {
	box := "[ ]"
	if task.Completed {
		box = "[x]"
	}
	fmt.Fprintf(w, "%4d  %s  %s%s\n", num, box, normalizeTitle(task.Title), markers(task))
}

// FormatTaskDetail prints the full record, one field per line.
func FormatTaskDetail(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "id:        %s\n", task.ID)
	fmt.Fprintf(w, "title:     %s\n", normalizeTitle(task.Title))
	fmt.Fprintf(w, "completed: %t\n", task.Completed)
	if task.Location != nil {
		fmt.Fprintf(w, "location:  %.5f,%.5f\n", task.Location.Latitude, task.Location.Longitude)
	}
	if task.PhotoURI != "" {
		fmt.Fprintf(w, "photo:     %s\n", task.PhotoURI)
	}
	if !task.CreatedAt.IsZero() {
		fmt.Fprintf(w, "created:   %s\n", task.CreatedAt.Format(time.RFC3339))
	}
	if !task.UpdatedAt.IsZero() {
		fmt.Fprintf(w, "updated:   %s\n", task.UpdatedAt.Format(time.RFC3339))
	}
}

// FormatUser prints the session user for whoami.
func FormatUser(w io.Writer, u service.User) {
	fmt.Fprintln(w, u.Email)
}

func markers(task service.Task) string {
	var b strings.Builder
	if task.PhotoURI != "" {
		b.WriteString("  [photo]")
	}
	if task.Location != nil {
		fmt.Fprintf(&b, "  @%.4f,%.4f", task.Location.Latitude, task.Location.Longitude)
	}
	return b.String()
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
