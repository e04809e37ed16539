package commands

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"todocli/internal/api"
	"todocli/internal/exitcode"
	"todocli/internal/service"
	"todocli/internal/session"
	"todocli/internal/tasks"
)

// fail prints a normalized error and maps it to an exit code. Mutation
// failures arrive here already rolled back; nothing is retried.
func fail(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, session.ErrNoSession):
		fmt.Fprintln(errOut, "error: not logged in (run: todocli login)")
		return exitcode.AuthError
	case errors.Is(err, service.ErrNotFound):
		fmt.Fprintln(errOut, "error: task not found")
		return exitcode.UserError
	case errors.Is(err, tasks.ErrTitleRequired),
		errors.Is(err, tasks.ErrMutationPending),
		errors.Is(err, tasks.ErrNoUploader):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden {
			fmt.Fprintln(errOut, "error: session expired or revoked (run: todocli login)")
			return exitcode.AuthError
		}
		fmt.Fprintf(errOut, "error: %s\n", apiErr.Message)
		return exitcode.BackendError
	}

	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}
