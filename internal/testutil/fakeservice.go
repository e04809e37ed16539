// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"strconv"
	"sync"
	"time"

	"todocli/internal/service"
)

// FakeService is an in-memory implementation of service.Service for
// testing. IDs are assigned sequentially ("1", "2", ...).
type FakeService struct {
	mu     sync.Mutex
	tasks  []service.Task
	nextID int
	now    time.Time

	// Call counters.
	ListCalls   int
	CreateCalls int

	// Error injection for testing.
	ListTasksErr  error
	GetTaskErr    error
	CreateTaskErr error
	ReplaceErr    error
	PatchErr      error
	DeleteErr     error

	// Block, when set, is closed by the test to release in-flight
	// mutations (for in-flight guard and dedup tests). Entered, when
	// set, receives a value as each call reaches the blocking point.
	Block   chan struct{}
	Entered chan struct{}
}

// NewFakeService creates an empty fake backend.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID: 1,
		now:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

// AddTask seeds a task and returns it.
func (f *FakeService) AddTask(title string, completed bool) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.add(service.CreateTaskRequest{Title: title, Completed: completed})
}

func (f *FakeService) add(req service.CreateTaskRequest) service.Task {
	task := service.Task{
		ID:        strconv.Itoa(f.nextID),
		UserID:    "user-1",
		Title:     req.Title,
		Completed: req.Completed,
		Location:  req.Location,
		PhotoURI:  req.PhotoURI,
		CreatedAt: f.now,
		UpdatedAt: f.now,
	}
	f.nextID++
	f.tasks = append(f.tasks, task)
	return task
}

// Tasks returns a copy of the current backend state.
func (f *FakeService) Tasks() []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

func (f *FakeService) wait() {
	if f.Entered != nil {
		select {
		case f.Entered <- struct{}{}:
		default:
		}
	}
	if f.Block != nil {
		<-f.Block
	}
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	f.ListCalls++
	f.mu.Unlock()
	f.wait()
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	return f.Tasks(), nil
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, id string) (service.Task, error) {
	if f.GetTaskErr != nil {
		return service.Task{}, f.GetTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return service.Task{}, service.ErrNotFound
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, req service.CreateTaskRequest) (service.Task, error) {
	f.mu.Lock()
	f.CreateCalls++
	f.mu.Unlock()
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.add(req), nil
}

// ReplaceTask implements service.Service.
func (f *FakeService) ReplaceTask(ctx context.Context, id string, req service.UpdateTaskRequest) (service.Task, error) {
	if f.ReplaceErr != nil {
		return service.Task{}, f.ReplaceErr
	}
	return f.mutate(id, func(t *service.Task) {
		t.Title = req.Title
		t.Completed = req.Completed
		t.Location = req.Location
		t.PhotoURI = req.PhotoURI
	})
}

// PatchTask implements service.Service.
func (f *FakeService) PatchTask(ctx context.Context, id string, patch service.TaskPatch) (service.Task, error) {
	f.wait()
	if f.PatchErr != nil {
		return service.Task{}, f.PatchErr
	}
	return f.mutate(id, func(t *service.Task) {
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
func (f *FakeService) DeleteTask(ctx context.Context, id string) (service.Task, error) {
	f.wait()
	if f.DeleteErr != nil {
		return service.Task{}, f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return t, nil
		}
	}
	return service.Task{}, service.ErrNotFound
}

// CompleteTask implements service.Service.
func (f *FakeService) CompleteTask(ctx context.Context, id string) (service.Task, error) {
	completed := true
	return f.PatchTask(ctx, id, service.TaskPatch{Completed: &completed})
}

// UncompleteTask implements service.Service.
func (f *FakeService) UncompleteTask(ctx context.Context, id string) (service.Task, error) {
	completed := false
	return f.PatchTask(ctx, id, service.TaskPatch{Completed: &completed})
}

func (f *FakeService) mutate(id string, fn func(*service.Task)) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			fn(&f.tasks[i])
			f.tasks[i].UpdatedAt = f.now.Add(time.Minute)
			return f.tasks[i], nil
		}
	}
	return service.Task{}, service.ErrNotFound
}
