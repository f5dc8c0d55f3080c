package cms

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"realestate-server/cache"
	"realestate-server/confs"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const galleryBody = `{
  "data": [{
    "id": 3,
    "attributes": {
      "slug": "sea-view",
      "images": {"data": [
        {"id": 1, "attributes": {"url": "/uploads/front.jpg", "alternativeText": "Front", "width": 1200, "height": 800}},
        {"id": 2, "attributes": {"url": "https://cdn.example/pool.jpg", "caption": "Pool"}}
      ]}
    }
  }],
  "meta": {}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(confs.CMSConfig{
		BaseURL:  srv.URL + "/",
		Token:    "cms-token",
		Timeout:  time.Second,
		CacheTTL: time.Minute,
	}, nil)
	return c, srv
}

func TestGallery_ParsesAndCaches(t *testing.T) {
	var calls int32
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/api/properties", r.URL.Path)
		assert.Equal(t, "sea-view", r.URL.Query().Get("filters[slug][$eq]"))
		assert.Equal(t, "images", r.URL.Query().Get("populate"))
		assert.Equal(t, "Bearer cms-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(galleryBody))
	})

	images, err := c.Gallery(context.Background(), "properties", "sea-view")
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, Image{URL: srv.URL + "/uploads/front.jpg", Alt: "Front", Width: 1200, Height: 800}, images[0])
	assert.Equal(t, "https://cdn.example/pool.jpg", images[1].URL)
	assert.Equal(t, "Pool", images[1].Alt)

	again, err := c.Gallery(context.Background(), "properties", "sea-view")
	require.NoError(t, err)
	assert.Equal(t, images, again)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	c.galleries.Purge()
	_, err = c.Gallery(context.Background(), "properties", "sea-view")
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestGallery_EmptyAndMissing(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("filters[slug][$eq]") == "gone" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"data": [{"id": 1, "attributes": {"slug": "bare", "images": {"data": null}}}]}`))
	})

	images, err := c.Gallery(context.Background(), "projects", "bare")
	require.NoError(t, err)
	assert.Empty(t, images)

	images, err = c.Gallery(context.Background(), "projects", "gone")
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestGallery_Unconfigured(t *testing.T) {
	c := NewClient(confs.CMSConfig{}, cache.NewTTLCache[[]Image](time.Minute))
	assert.False(t, c.Configured())

	images, err := c.Gallery(context.Background(), "properties", "x")
	assert.NoError(t, err)
	assert.Nil(t, images)

	_, err = c.Proxy(context.Background(), "articles", nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestProxy_PassesThrough(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/articles/7", r.URL.Path)
		assert.Equal(t, "title", r.URL.Query().Get("fields"))
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	resp, err := c.Proxy(context.Background(), "/articles/7", url.Values{"fields": {"title"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.Status)
	assert.Equal(t, "application/json; charset=utf-8", resp.ContentType)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
}

func TestProxy_RejectsTraversal(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("upstream must not be called, got %s", r.URL.Path)
	})

	for _, p := range []string{"../admin", "articles/../../secrets", "", "/", "a//b", `a\..\b`} {
		_, err := c.Proxy(context.Background(), p, nil)
		assert.ErrorIs(t, err, ErrInvalidPath, p)
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	for i := 0; i < consecutiveFailures; i++ {
		_, err := c.Proxy(context.Background(), "articles", nil)
		var upstream *upstreamError
		require.True(t, errors.As(err, &upstream))
	}
	assert.Equal(t, gobreaker.StateOpen.String(), c.BreakerState())

	_, err := c.Proxy(context.Background(), "articles", nil)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	_, err = c.Gallery(context.Background(), "properties", "x")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.EqualValues(t, consecutiveFailures, atomic.LoadInt32(&calls))
}

func TestResolve(t *testing.T) {
	c := NewClient(confs.CMSConfig{BaseURL: "https://cms.example"}, nil)
	assert.Equal(t, "https://cms.example/uploads/a.png", c.resolve("/uploads/a.png"))
	assert.Equal(t, "https://other.example/b.png", c.resolve("https://other.example/b.png"))
}
