package service

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a task does not exist.
var ErrNotFound = errors.New("task not found")

// Location is a geographic position in floating-point degrees.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Task represents a single to-do item. The ID is assigned by the backend
// and never changes afterwards.
type Task struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Location  *Location `json:"location,omitempty"`
	PhotoURI  string    `json:"photoUri,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// User represents an authenticated account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ImageRef describes an uploaded image.
type ImageRef struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// CreateTaskRequest is the payload for creating a task.
type CreateTaskRequest struct {
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Location  *Location `json:"location,omitempty"`
	PhotoURI  string    `json:"photoUri,omitempty"`
}

// UpdateTaskRequest is the payload for a full replace of a task.
type UpdateTaskRequest struct {
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Location  *Location `json:"location,omitempty"`
	PhotoURI  string    `json:"photoUri,omitempty"`
}

// TaskPatch is a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Title     *string   `json:"title,omitempty"`
	Completed *bool     `json:"completed,omitempty"`
	Location  *Location `json:"location,omitempty"`
	PhotoURI  *string   `json:"photoUri,omitempty"`
}
