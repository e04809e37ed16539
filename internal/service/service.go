// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// The remote REST backend and the offline file store both implement it.
// Commands and orchestrators never talk to a backend directly.
type Service interface {
	// ListTasks returns all tasks for the authenticated owner.
	ListTasks(ctx context.Context) ([]Task, error)

	// GetTask returns a single task by ID.
	// Returns ErrNotFound if the task does not exist.
	GetTask(ctx context.Context, id string) (Task, error)

	// CreateTask creates a new task. The backend assigns the ID and
	// both timestamps.
	CreateTask(ctx context.Context, req CreateTaskRequest) (Task, error)

	// ReplaceTask fully replaces a task's mutable fields.
	ReplaceTask(ctx context.Context, id string, req UpdateTaskRequest) (Task, error)

	// PatchTask partially updates a task. Nil patch fields are untouched.
	PatchTask(ctx context.Context, id string, patch TaskPatch) (Task, error)

	// DeleteTask removes a task and returns its last state.
	DeleteTask(ctx context.Context, id string) (Task, error)

	// CompleteTask marks a task completed. Completing an already
	// completed task succeeds.
	CompleteTask(ctx context.Context, id string) (Task, error)

	// UncompleteTask marks a task as pending again.
	UncompleteTask(ctx context.Context, id string) (Task, error)
}

// Authenticator exchanges credentials for a user record and a bearer token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (User, string, error)
	Register(ctx context.Context, email, password string) (User, string, error)
}
