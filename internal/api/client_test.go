package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestClient_GetDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/todos", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":[{"id":"1","title":"Buy milk"}],"count":1}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, nil)

	var env struct {
		Success bool `json:"success"`
		Data    []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"data"`
		Count int `json:"count"`
	}
	err := c.Get(context.Background(), "/todos", &env)
	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.Equal(t, 1, env.Count)
	require.Len(t, env.Data, 1)
	assert.Equal(t, "Buy milk", env.Data[0].Title)
}

func TestClient_BearerHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, &oauth2.Token{AccessToken: "secret-token", TokenType: "Bearer"}, nil)
	require.NoError(t, c.Get(context.Background(), "/todos", nil))
	assert.Equal(t, "Bearer secret-token", gotAuth)
}

func TestClient_ServerErrorNormalized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`[{"path":["title"],"message":"Required"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, nil)
	err := c.Post(context.Background(), "/todos", map[string]string{}, nil)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "title: Required", apiErr.Message)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.True(t, apiErr.IsServer())
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := New(srv.URL, nil, nil)
	err := c.Get(context.Background(), "/todos", nil)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNetwork())
	assert.Zero(t, apiErr.Status)
}

func TestClient_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(srv.URL, nil, nil)
	err := c.Get(ctx, "/todos", nil)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNetwork())
}

func TestClient_UploadMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "cat.jpg", hdr.Filename)
		w.Write([]byte(`{"success":true,"data":{"url":"https://img.example/cat.jpg","key":"cat.jpg","size":3,"contentType":"image/jpeg"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, nil)

	var env struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	err := c.Upload(context.Background(), "/images", "image", "cat.jpg", strings.NewReader("abc"), &env)
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/cat.jpg", env.Data.URL)
}

func TestClient_InvalidSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, nil)
	var out map[string]any
	err := c.Get(context.Background(), "/todos", &out)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CodeRequest, apiErr.Code)
	assert.False(t, errors.Is(err, context.Canceled))
}
