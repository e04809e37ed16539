package tasks

import (
	"context"
	"errors"
	"strings"

	"todocli/internal/cache"
	"todocli/internal/service"
)

// ErrTitleRequired is the validation error for empty titles, caught
// before any network call.
var ErrTitleRequired = errors.New("title: Required")

// Toggle sets a task's completion flag. The flip is applied to the
// single-task and list entries before the call; a failure restores both
// snapshots; both outcomes invalidate both identities so the next read
// reconciles with the server.
func (c *Client) Toggle(ctx context.Context, id string, completed bool) (service.Task, error) {
	if err := c.begin(id); err != nil {
		return service.Task{}, err
	}
	defer c.end(id)

	itemSnap := cache.Mutate(c.cache, ItemKey(id), func(t service.Task) service.Task {
		t.Completed = completed
		return t
	})
	listSnap := cache.Mutate(c.cache, ListKey, func(l List) List {
		out := make([]service.Task, len(l.Tasks))
		copy(out, l.Tasks)
		for i := range out {
			if out[i].ID == id {
				out[i].Completed = completed
			}
		}
		l.Tasks = out
		return l
	})
	defer c.cache.Invalidate(ItemKey(id), ListKey)

	var (
		task service.Task
		err  error
	)
	if completed {
		task, err = c.svc.CompleteTask(ctx, id)
	} else {
		task, err = c.svc.UncompleteTask(ctx, id)
	}
	if err != nil {
		c.cache.Restore(itemSnap)
		c.cache.Restore(listSnap)
		c.logger.Debug("toggle rolled back", "id", id, "err", err)
		return service.Task{}, err
	}
	return task, nil
}

// Delete removes a task. The list entry drops the record and its count
// optimistically; on success the single-task identity is removed from the
// cache entirely. A failure does not revert the list entry, it only marks
// it stale so the next read refetches the authoritative state.
func (c *Client) Delete(ctx context.Context, id string) (service.Task, error) {
	if err := c.begin(id); err != nil {
		return service.Task{}, err
	}
	defer c.end(id)

	cache.Mutate(c.cache, ListKey, func(l List) List {
		out := make([]service.Task, 0, len(l.Tasks))
		for _, t := range l.Tasks {
			if t.ID != id {
				out = append(out, t)
			}
		}
		removed := len(l.Tasks) - len(out)
		l.Tasks = out
		l.Count -= removed
		return l
	})

	task, err := c.svc.DeleteTask(ctx, id)
	if err != nil {
		c.cache.Invalidate(ListKey)
		return service.Task{}, err
	}
	c.cache.Remove(ItemKey(id))
	return task, nil
}

// Create submits a new task. There is no optimistic phase; a success
// invalidates the list identity so the next read includes the record.
func (c *Client) Create(ctx context.Context, req service.CreateTaskRequest) (service.Task, error) {
	if strings.TrimSpace(req.Title) == "" {
		return service.Task{}, ErrTitleRequired
	}

	task, err := c.svc.CreateTask(ctx, req)
	if err != nil {
		return service.Task{}, err
	}
	c.cache.Invalidate(ListKey)
	c.logger.Debug("task created", "id", task.ID)
	return task, nil
}

// Patch partially updates a task. A success invalidates both identities
// and writes the fresh server value straight into the single-task entry,
// saving the follow-up round trip.
func (c *Client) Patch(ctx context.Context, id string, patch service.TaskPatch) (service.Task, error) {
	if err := c.begin(id); err != nil {
		return service.Task{}, err
	}
	defer c.end(id)

	task, err := c.svc.PatchTask(ctx, id, patch)
	if err != nil {
		return service.Task{}, err
	}
	c.cache.Invalidate(ListKey, ItemKey(id))
	c.cache.Set(ItemKey(id), task)
	return task, nil
}

// Update fully replaces a task's mutable fields. Cache handling matches
// Patch.
func (c *Client) Update(ctx context.Context, id string, req service.UpdateTaskRequest) (service.Task, error) {
	if strings.TrimSpace(req.Title) == "" {
		return service.Task{}, ErrTitleRequired
	}
	if err := c.begin(id); err != nil {
		return service.Task{}, err
	}
	defer c.end(id)

	task, err := c.svc.ReplaceTask(ctx, id, req)
	if err != nil {
		return service.Task{}, err
	}
	c.cache.Invalidate(ListKey, ItemKey(id))
	c.cache.Set(ItemKey(id), task)
	return task, nil
}
