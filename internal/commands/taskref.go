package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"todocli/internal/service"
	"todocli/internal/tasks"
)

// TaskRef represents a parsed task reference: either a 1-based position in
// the listed order, or a literal task ID.
type TaskRef struct {
	Num int    // 1-based position, 0 when an ID was given
	ID  string // literal ID, empty when a position was given
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from args.
//
// Parsing rules:
// 1. No args → error: task reference required
// 2. All digits → 1-based position in the listed order
// 3. Anything else → literal task ID
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}

	ref := args[0]
	if isAllDigits(ref) {
		num, err := strconv.Atoi(ref)
		if err != nil || num < 1 {
			return TaskRef{}, fmt.Errorf("task number out of range: %s", ref)
		}
		return TaskRef{Num: num}, nil
	}
	return TaskRef{ID: ref}, nil
}

// ResolveTask maps a reference to a task using the cached list, so a
// position always means the position the user just saw.
func ResolveTask(ctx context.Context, client *tasks.Client, ref TaskRef) (service.Task, error) {
	list, err := client.List(ctx)
	if err != nil {
		return service.Task{}, err
	}

	if ref.Num > 0 {
		if ref.Num > len(list.Tasks) {
			return service.Task{}, fmt.Errorf("task number out of range: %d", ref.Num)
		}
		return list.Tasks[ref.Num-1], nil
	}

	for _, t := range list.Tasks {
		if t.ID == ref.ID {
			return t, nil
		}
	}
	return service.Task{}, service.ErrNotFound
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
