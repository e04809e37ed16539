// Package tasks implements the mutation orchestrators: the create,
// update, toggle and delete flows that read from and write to the cache
// around each backend call.
package tasks

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"todocli/internal/cache"
	"todocli/internal/service"
)

// ListKey is the query identity for "all tasks for the current session".
const ListKey cache.Key = "todos"

// ItemKey returns the query identity for a single task.
func ItemKey(id string) cache.Key {
	return cache.Key("todos/" + id)
}

// ErrMutationPending is returned when a mutation is invoked on a record
// that already has one in flight.
var ErrMutationPending = errors.New("mutation already in progress for this task")

// List is the cached value under ListKey: the task slice plus the server
// count.
type List struct {
	Tasks []service.Task
	Count int
}

// Uploader sends a locally captured photo to the image endpoint.
type Uploader interface {
	UploadImage(ctx context.Context, filename string, r io.Reader) (service.ImageRef, error)
}

// ImageRemover deletes a stored upload by its storage key.
type ImageRemover interface {
	DeleteImage(ctx context.Context, key string) error
}

// Locator obtains the device's current position.
type Locator interface {
	CurrentLocation(ctx context.Context) (service.Location, error)
}

// Config wires a Client. Service and Cache are required; Uploader,
// Remover and Locator may be nil when the capability is absent (offline
// mode).
type Config struct {
	Service  service.Service
	Cache    *cache.Store
	Uploader Uploader
	Remover  ImageRemover
	Locator  Locator
	Logger   *slog.Logger
}

// Client orchestrates task reads and mutations over the cache. It is
// constructed per session and torn down on logout; there is no ambient
// shared state beyond the cache it owns a reference to.
type Client struct {
	svc     service.Service
	cache   *cache.Store
	uploads Uploader
	images  ImageRemover
	locator Locator
	logger  *slog.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// New creates a Client from cfg.
func New(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		svc:      cfg.Service,
		cache:    cfg.Cache,
		uploads:  cfg.Uploader,
		images:   cfg.Remover,
		locator:  cfg.Locator,
		logger:   logger,
		inflight: make(map[string]struct{}),
	}
}

// Cache exposes the underlying store (for command-level peeks).
func (c *Client) Cache() *cache.Store {
	return c.cache
}

// List returns all tasks, served from cache while fresh.
func (c *Client) List(ctx context.Context) (List, error) {
	return cache.Fetch(ctx, c.cache, ListKey, func(ctx context.Context) (List, error) {
		tasks, err := c.svc.ListTasks(ctx)
		if err != nil {
			return List{}, err
		}
		return List{Tasks: tasks, Count: len(tasks)}, nil
	})
}

// Get returns one task, served from cache while fresh.
func (c *Client) Get(ctx context.Context, id string) (service.Task, error) {
	return cache.Fetch(ctx, c.cache, ItemKey(id), func(ctx context.Context) (service.Task, error) {
		return c.svc.GetTask(ctx, id)
	})
}

// Teardown clears the cache on session end so no data leaks into a
// subsequent login. Pending reads are cancelled by cancelling the session
// context; values they resolve to are discarded by the store.
func (c *Client) Teardown() {
	c.cache.Clear()
}

// begin acquires the per-record in-flight guard.
func (c *Client) begin(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inflight[id]; busy {
		return ErrMutationPending
	}
	c.inflight[id] = struct{}{}
	return nil
}

func (c *Client) end(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, id)
}
