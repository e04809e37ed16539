// Package todoapi implements the service.Service interface over the
// to-do REST API.
package todoapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"

	"todocli/internal/api"
	"todocli/internal/config"
	"todocli/internal/service"
	"todocli/internal/session"
)

const (
	todosPath    = "/todos"
	loginPath    = "/auth/login"
	registerPath = "/auth/register"
	imagesPath   = "/images"

	// imageField is the multipart form field name for uploads.
	imageField = "image"
)

// Client implements service.Service against the remote API.
type Client struct {
	api *api.Client
}

// New creates an authenticated client. A missing bearer credential fails
// here, before any network call is attempted.
func New(cfg *config.Config, sessions *session.Store, logger *slog.Logger) (*Client, error) {
	tok, err := sessions.Token()
	if err != nil {
		return nil, err
	}
	return &Client{api: api.New(cfg.APIBaseURL, tok, logger)}, nil
}

// NewAnonymous creates a client without credentials, for login and
// register.
func NewAnonymous(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{api: api.New(cfg.APIBaseURL, nil, logger)}
}

// NewWithToken creates a client with an explicit credential (for testing).
func NewWithToken(baseURL string, tok *oauth2.Token, logger *slog.Logger) *Client {
	return &Client{api: api.New(baseURL, tok, logger)}
}

// Response envelopes. Every success body is {success, data, count?}.
type listEnvelope struct {
	Success bool           `json:"success"`
	Data    []service.Task `json:"data"`
	Count   int            `json:"count"`
}

type taskEnvelope struct {
	Success bool         `json:"success"`
	Data    service.Task `json:"data"`
	Message string       `json:"message,omitempty"`
}

type authEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		User  service.User `json:"user"`
		Token string       `json:"token"`
	} `json:"data"`
}

type imageEnvelope struct {
	Success bool             `json:"success"`
	Data    service.ImageRef `json:"data"`
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var env listEnvelope
	if err := c.api.Get(ctx, todosPath, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// GetTask implements service.Service.
func (c *Client) GetTask(ctx context.Context, id string) (service.Task, error) {
	var env taskEnvelope
	if err := c.api.Get(ctx, todosPath+"/"+id, &env); err != nil {
		return service.Task{}, notFoundOr(err)
	}
	return env.Data, nil
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, req service.CreateTaskRequest) (service.Task, error) {
	var env taskEnvelope
	if err := c.api.Post(ctx, todosPath, req, &env); err != nil {
		return service.Task{}, err
	}
	return env.Data, nil
}

// ReplaceTask implements service.Service.
func (c *Client) ReplaceTask(ctx context.Context, id string, req service.UpdateTaskRequest) (service.Task, error) {
	var env taskEnvelope
	if err := c.api.Put(ctx, todosPath+"/"+id, req, &env); err != nil {
		return service.Task{}, notFoundOr(err)
	}
	return env.Data, nil
}

// PatchTask implements service.Service.
func (c *Client) PatchTask(ctx context.Context, id string, patch service.TaskPatch) (service.Task, error) {
	var env taskEnvelope
	if err := c.api.Patch(ctx, todosPath+"/"+id, patch, &env); err != nil {
		return service.Task{}, notFoundOr(err)
	}
	return env.Data, nil
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, id string) (service.Task, error) {
	var env taskEnvelope
	if err := c.api.Delete(ctx, todosPath+"/"+id, &env); err != nil {
		return service.Task{}, notFoundOr(err)
	}
	return env.Data, nil
}

// CompleteTask implements service.Service as a partial update.
func (c *Client) CompleteTask(ctx context.Context, id string) (service.Task, error) {
	completed := true
	return c.PatchTask(ctx, id, service.TaskPatch{Completed: &completed})
}

// UncompleteTask implements service.Service as a partial update.
func (c *Client) UncompleteTask(ctx context.Context, id string) (service.Task, error) {
	completed := false
	return c.PatchTask(ctx, id, service.TaskPatch{Completed: &completed})
}

// Login implements service.Authenticator.
func (c *Client) Login(ctx context.Context, email, password string) (service.User, string, error) {
	return c.auth(ctx, loginPath, email, password)
}

// Register implements service.Authenticator.
func (c *Client) Register(ctx context.Context, email, password string) (service.User, string, error) {
	return c.auth(ctx, registerPath, email, password)
}

func (c *Client) auth(ctx context.Context, path, email, password string) (service.User, string, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var env authEnvelope
	if err := c.api.Post(ctx, path, body, &env); err != nil {
		return service.User{}, "", err
	}
	return env.Data.User, env.Data.Token, nil
}

// UploadImage posts the image as multipart form data and returns its
// public reference.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (service.ImageRef, error) {
	var env imageEnvelope
	if err := c.api.Upload(ctx, imagesPath, imageField, filename, r, &env); err != nil {
		return service.ImageRef{}, err
	}
	return env.Data, nil
}

// DeleteImage removes an uploaded image by its storage key.
func (c *Client) DeleteImage(ctx context.Context, key string) error {
	return c.api.Delete(ctx, imagesPath+"/"+key, nil)
}

// notFoundOr maps a 404 response onto service.ErrNotFound so callers can
// test for it without inspecting the API error.
func notFoundOr(err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return service.ErrNotFound
	}
	return err
}
