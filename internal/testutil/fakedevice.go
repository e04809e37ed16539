package testutil

import (
	"context"
	"io"
	"sync"

	"todocli/internal/service"
)

// FakeUploader records image uploads and deletions and returns a canned
// reference.
type FakeUploader struct {
	mu        sync.Mutex
	Ref       service.ImageRef
	Err       error
	DeleteErr error
	Names     []string
	Deleted   []string
}

// UploadImage implements tasks.Uploader.
func (f *FakeUploader) UploadImage(ctx context.Context, filename string, r io.Reader) (service.ImageRef, error) {
	f.mu.Lock()
	f.Names = append(f.Names, filename)
	f.mu.Unlock()
	if f.Err != nil {
		return service.ImageRef{}, f.Err
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return service.ImageRef{}, err
	}
	return f.Ref, nil
}

// DeleteImage implements tasks.ImageRemover.
func (f *FakeUploader) DeleteImage(ctx context.Context, key string) error {
	f.mu.Lock()
	f.Deleted = append(f.Deleted, key)
	f.mu.Unlock()
	return f.DeleteErr
}

// Calls returns how many uploads were attempted.
func (f *FakeUploader) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Names)
}

// FakeLocator returns a fixed position or error.
type FakeLocator struct {
	Loc   service.Location
	Err   error
	calls int
}

// CurrentLocation implements tasks.Locator.
func (f *FakeLocator) CurrentLocation(ctx context.Context) (service.Location, error) {
	f.calls++
	if f.Err != nil {
		return service.Location{}, f.Err
	}
	return f.Loc, nil
}

// Calls returns how many times a position was requested.
func (f *FakeLocator) Calls() int { return f.calls }

// FakeAuthenticator returns a canned user/token pair.
type FakeAuthenticator struct {
	User  service.User
	Token string
	Err   error
}

// Login implements service.Authenticator.
func (f *FakeAuthenticator) Login(ctx context.Context, email, password string) (service.User, string, error) {
	if f.Err != nil {
		return service.User{}, "", f.Err
	}
	u := f.User
	if u.Email == "" {
		u.Email = email
	}
	return u, f.Token, nil
}

// Register implements service.Authenticator.
func (f *FakeAuthenticator) Register(ctx context.Context, email, password string) (service.User, string, error) {
	return f.Login(ctx, email, password)
}
