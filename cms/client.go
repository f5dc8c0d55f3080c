// Package cms talks to the headless CMS that hosts editorial images for
// properties and projects.
package cms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"realestate-server/cache"
	"realestate-server/confs"
	"realestate-server/logger"
	"realestate-server/metrics"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/sirupsen/logrus"
)

const (
	breakerName         = "cms"
	maxBodyBytes        = 8 << 20
	consecutiveFailures = 5
	openTimeout         = 30 * time.Second
)

var (
	// ErrNotConfigured is returned by Proxy when no CMS base URL is set.
	ErrNotConfigured = errors.New("cms is not configured")
	// ErrInvalidPath rejects proxy paths that try to leave /api.
	ErrInvalidPath = errors.New("invalid cms path")
)

// Image is one picture from a CMS media field.
type Image struct {
	URL    string `json:"url"`
	Alt    string `json:"alt"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Response is an upstream reply relayed by Proxy.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// upstreamError marks replies that count against the breaker.
type upstreamError struct {
	status int
}

func (e *upstreamError) Error() string {
	return fmt.Sprintf("cms responded with status %d", e.status)
}

type Client struct {
	baseURL    string
	token      string
	imageField string
	http       *http.Client
	breaker    *gobreaker.CircuitBreaker[*Response]
	galleries  *cache.TTLCache[[]Image]
}

// NewClient builds a client from config. galleries may be shared with the
// cache janitor and admin endpoints.
func NewClient(cfg confs.CMSConfig, galleries *cache.TTLCache[[]Image]) *Client {
	if galleries == nil {
		galleries = cache.NewTTLCache[[]Image](cfg.CacheTTL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	field := cfg.ImageField
	if field == "" {
		field = "images"
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		imageField: field,
		http:       &http.Client{Timeout: timeout},
		galleries:  galleries,
		breaker: gobreaker.NewCircuitBreaker[*Response](gobreaker.Settings{
			Name:        breakerName,
			MaxRequests: 1,
			Timeout:     openTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= consecutiveFailures
			},
			IsExcluded: func(err error) bool {
				return errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Log.WithFields(logrus.Fields{
					"breaker": name,
					"from":    from.String(),
					"to":      to.String(),
				}).Warn("cms circuit breaker changed state")
			},
		}),
	}
}

// Configured reports whether a CMS base URL was provided.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// BreakerState exposes the breaker state for health output.
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

// Gallery returns the images attached to the entry with the given slug in a
// collection. Results, including empty ones, are cached per collection and slug.
func (c *Client) Gallery(ctx context.Context, collection, slug string) ([]Image, error) {
	if !c.Configured() {
		return nil, nil
	}
	key := collection + "/" + slug
	if images, ok := c.galleries.Get(key); ok {
		metrics.CMSRequests.WithLabelValues("gallery", "cache_hit").Inc()
		return images, nil
	}

	query := url.Values{}
	query.Set("filters[slug][$eq]", slug)
	query.Set("populate", c.imageField)

	resp, err := c.do(ctx, "gallery", "/api/"+url.PathEscape(collection), query)
	if err != nil {
		return nil, err
	}
	if resp.Status == http.StatusNotFound {
		c.galleries.Set(key, []Image{})
		return []Image{}, nil
	}
	if resp.Status != http.StatusOK {
		return nil, &upstreamError{status: resp.Status}
	}

	images, err := c.parseGallery(resp.Body)
	if err != nil {
		metrics.CMSRequests.WithLabelValues("gallery", "decode_error").Inc()
		return nil, fmt.Errorf("decode cms gallery: %w", err)
	}
	c.galleries.Set(key, images)
	return images, nil
}

// Proxy relays a GET to {base}/api/{path}. Upstream 4xx replies are passed
// through untouched.
func (c *Client) Proxy(ctx context.Context, path string, query url.Values) (*Response, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	clean, err := cleanPath(path)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, "proxy", "/api/"+clean, query)
}

func (c *Client) do(ctx context.Context, kind, path string, query url.Values) (*Response, error) {
	resp, err := c.breaker.Execute(func() (*Response, error) {
		resp, err := c.get(ctx, path, query)
		if err != nil {
			return nil, err
		}
		if resp.Status >= http.StatusInternalServerError {
			return resp, &upstreamError{status: resp.Status}
		}
		return resp, nil
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CMSRequests.WithLabelValues(kind, "rejected").Inc()
		return nil, err
	case err != nil:
		metrics.CMSRequests.WithLabelValues(kind, "error").Inc()
		logger.Log.WithFields(logrus.Fields{"path": path, "error": err}).Warn("cms request failed")
		return nil, err
	}
	metrics.CMSRequests.WithLabelValues(kind, "ok").Inc()
	return resp, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*Response, error) {
	target := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read cms response: %w", err)
	}
	return &Response{
		Status:      res.StatusCode,
		ContentType: res.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func cleanPath(path string) (string, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return "", ErrInvalidPath
	}
	for _, segment := range strings.Split(path, "/") {
		if segment == "" || segment == "." || segment == ".." || strings.Contains(segment, "\\") {
			return "", ErrInvalidPath
		}
	}
	return path, nil
}
