package tasks

import (
	"context"
	"errors"
	"io"
	"net/url"
	"path"
	"strings"

	"todocli/internal/service"
)

// ErrNoUploader is returned when a photo is supplied but no upload
// capability is wired (offline mode).
var ErrNoUploader = errors.New("photo upload not available")

// SaveRequest is the input to the composite create flow.
type SaveRequest struct {
	Title string

	// Location, when nil, is requested from the device locator.
	Location *service.Location

	// Photo is the locally captured image still to be uploaded.
	// PhotoName is its filename, used for the multipart part.
	Photo     io.Reader
	PhotoName string
}

// Save runs the user-initiated save flow: capture a location if none was
// provided (best effort), upload the pending photo (aborts the flow on
// failure), then create the record. Only the record creation mutates the
// cache.
func (c *Client) Save(ctx context.Context, req SaveRequest) (service.Task, error) {
	if strings.TrimSpace(req.Title) == "" {
		return service.Task{}, ErrTitleRequired
	}

	loc := req.Location
	if loc == nil && c.locator != nil {
		got, err := c.locator.CurrentLocation(ctx)
		if err != nil {
			// Denied or failed positioning never blocks the save.
			c.logger.Debug("proceeding without location", "err", err)
		} else {
			loc = &got
		}
	}

	var photoURI string
	if req.Photo != nil {
		if c.uploads == nil {
			return service.Task{}, ErrNoUploader
		}
		ref, err := c.uploads.UploadImage(ctx, req.PhotoName, req.Photo)
		if err != nil {
			return service.Task{}, err
		}
		photoURI = ref.URL
		c.logger.Debug("photo uploaded", "key", ref.Key, "size", ref.Size)
	}

	return c.Create(ctx, service.CreateTaskRequest{
		Title:     req.Title,
		Completed: false,
		Location:  loc,
		PhotoURI:  photoURI,
	})
}

// RemovePhoto deletes the stored upload behind photoURI. It runs after
// the owning record stopped referencing the image, so a failure only
// leaks the stored file; it is logged, never returned.
func (c *Client) RemovePhoto(ctx context.Context, photoURI string) {
	if c.images == nil || photoURI == "" {
		return
	}
	key := photoKey(photoURI)
	if key == "" {
		return
	}
	if err := c.images.DeleteImage(ctx, key); err != nil {
		c.logger.Warn("orphaned upload not removed", "key", key, "err", err)
		return
	}
	c.logger.Debug("upload removed", "key", key)
}

// photoKey extracts the storage key from a photo URL: the final path
// segment, as assigned by the image endpoint on upload.
func photoKey(photoURI string) string {
	u, err := url.Parse(photoURI)
	if err != nil || u.Path == "" {
		return ""
	}
	key := path.Base(u.Path)
	if key == "." || key == "/" {
		return ""
	}
	return key
}
