// Package api implements the request client for the to-do backend.
// It issues HTTP calls, decodes success envelopes, and normalizes every
// failure into the *Error shape.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// RequestTimeout is the fixed timeout for every API call.
const RequestTimeout = 10 * time.Second

// Client performs HTTP calls against the backend base URL. When built
// with a token it attaches "Authorization: Bearer <token>" to every
// request via the oauth2 transport.
type Client struct {
	base   string
	http   *http.Client
	logger *slog.Logger
}

// New creates a client. tok may be nil for unauthenticated endpoints
// (login, register).
func New(baseURL string, tok *oauth2.Token, logger *slog.Logger) *Client {
	hc := &http.Client{}
	if tok != nil {
		hc = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(tok))
	}
	hc.Timeout = RequestTimeout
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		http:   hc,
		logger: logger,
	}
}

// Get performs a GET request and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPatch, path, body, out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", out)
}

// Upload sends a multipart/form-data POST with a single file field.
func (c *Client) Upload(ctx context.Context, path, field, filename string, r io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return &Error{Message: "failed to build upload request: " + err.Error(), Code: CodeRequest}
	}
	if _, err := io.Copy(part, r); err != nil {
		return &Error{Message: "failed to read upload data: " + err.Error(), Code: CodeRequest}
	}
	if err := mw.Close(); err != nil {
		return &Error{Message: "failed to build upload request: " + err.Error(), Code: CodeRequest}
	}
	return c.do(ctx, http.MethodPost, path, &buf, mw.FormDataContentType(), out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: "failed to encode request body: " + err.Error(), Code: CodeRequest}
		}
		buf = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, buf, "application/json", out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return &Error{Message: "failed to build request: " + err.Error(), Code: CodeRequest}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return networkError(err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Message: NormalizeErrorBody(resp.StatusCode, data),
			Status:  resp.StatusCode,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Message: "invalid response from server: " + err.Error(), Code: CodeRequest}
	}
	return nil
}

// networkError classifies a transport failure: deadline expiry becomes a
// timeout, everything else a connectivity error.
func networkError(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Message: "request timed out", Code: CodeTimeout}
	}
	var ne interface{ Timeout() bool }
	if errors.As(err, &ne) && ne.Timeout() {
		return &Error{Message: "request timed out", Code: CodeTimeout}
	}
	if errors.Is(err, context.Canceled) {
		return &Error{Message: "request cancelled", Code: CodeNetwork}
	}
	return &Error{Message: "connection failed, check your network", Code: CodeNetwork}
}
