// Package localstore implements service.Service over a JSON file, the
// offline variant of the task backend. A missing file reads as an empty
// list, and local I/O problems are logged and treated as empty results
// rather than propagated.
package localstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"todocli/internal/service"
)

// localUserID marks tasks created without a remote account.
const localUserID = "local"

// Store is a file-backed task store. All operations serialize on one
// mutex; the file is rewritten whole on every mutation.
type Store struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
	now    func() time.Time
}

// New creates a store over the given file path.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger, now: time.Now}
}

// SetClock overrides the timestamp source (for testing).
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Store) load() []service.Task {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read task store", "path", s.path, "err", err)
		}
		return nil
	}
	var tasks []service.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		s.logger.Warn("corrupt task store, treating as empty", "path", s.path, "err", err)
		return nil
	}
	return tasks
}

func (s *Store) save(tasks []service.Task) error {
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// ListTasks implements service.Service.
func (s *Store) ListTasks(ctx context.Context) ([]service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

// GetTask implements service.Service.
func (s *Store) GetTask(ctx context.Context, id string) (service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.load() {
		if t.ID == id {
			return t, nil
		}
	}
	return service.Task{}, service.ErrNotFound
}

// CreateTask implements service.Service. IDs are random UUIDs, not
// positions in the list, so concurrent stores never collide.
func (s *Store) CreateTask(ctx context.Context, req service.CreateTaskRequest) (service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	task := service.Task{
		ID:        uuid.NewString(),
		UserID:    localUserID,
		Title:     req.Title,
		Completed: req.Completed,
		Location:  req.Location,
		PhotoURI:  req.PhotoURI,
		CreatedAt: now,
		UpdatedAt: now,
	}
	tasks := append(s.load(), task)
	if err := s.save(tasks); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// ReplaceTask implements service.Service.
func (s *Store) ReplaceTask(ctx context.Context, id string, req service.UpdateTaskRequest) (service.Task, error) {
	return s.mutate(id, func(t *service.Task) {
		t.Title = req.Title
		t.Completed = req.Completed
		t.Location = req.Location
		t.PhotoURI = req.PhotoURI
	})
}

// PatchTask implements service.Service.
func (s *Store) PatchTask(ctx context.Context, id string, patch service.TaskPatch) (service.Task, error) {
	return s.mutate(id, func(t *service.Task) {
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Completed != nil {
			t.Completed = *patch.Completed
		}
		if patch.Location != nil {
			t.Location = patch.Location
		}
		if patch.PhotoURI != nil {
			t.PhotoURI = *patch.PhotoURI
		}
	})
}

// DeleteTask implements service.Service.
func (s *Store) DeleteTask(ctx context.Context, id string) (service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.load()
	for i, t := range tasks {
		if t.ID == id {
			tasks = append(tasks[:i], tasks[i+1:]...)
			if err := s.save(tasks); err != nil {
				return service.Task{}, err
			}
			return t, nil
		}
	}
	return service.Task{}, service.ErrNotFound
}

// CompleteTask implements service.Service.
func (s *Store) CompleteTask(ctx context.Context, id string) (service.Task, error) {
	completed := true
	return s.PatchTask(ctx, id, service.TaskPatch{Completed: &completed})
}

// UncompleteTask implements service.Service.
func (s *Store) UncompleteTask(ctx context.Context, id string) (service.Task, error) {
	completed := false
	return s.PatchTask(ctx, id, service.TaskPatch{Completed: &completed})
}

// mutate applies fn to the matching task, bumps UpdatedAt, and persists.
func (s *Store) mutate(id string, fn func(*service.Task)) (service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.load()
	for i := range tasks {
		if tasks[i].ID == id {
			fn(&tasks[i])
			now := s.now()
			if now.Before(tasks[i].CreatedAt) {
				now = tasks[i].CreatedAt
			}
			tasks[i].UpdatedAt = now
			if err := s.save(tasks); err != nil {
				return service.Task{}, err
			}
			return tasks[i], nil
		}
	}
	return service.Task{}, service.ErrNotFound
}
