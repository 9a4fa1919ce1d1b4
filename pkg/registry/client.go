// Package registry is the HTTP client for the mip package repository.
//
// The repository is a static file server: the catalog lives at
// <base>/packages.json and artifacts at <base>/packages/<filename>. The
// client caches manifest fetches through a [cache.Cache] backend and maps
// transport failures to the error taxonomy the CLI reports.
package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/magland/mip/pkg/cache"
	"github.com/magland/mip/pkg/httputil"
	"github.com/magland/mip/pkg/manifest"
)

const httpTimeout = 30 * time.Second

var (
	// ErrNotFound is returned when a requested resource doesn't exist in the repository.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors).
	ErrNetwork = errors.New("network error")
)

// RemoteError reports a non-success HTTP response from the repository.
type RemoteError struct {
	StatusCode int
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	return fmt.Sprintf("repository returned status %d", e.StatusCode)
}

// Options configures a registry Client.
type Options struct {
	Cache    cache.Cache   // Manifest cache backend (nil for no caching)
	CacheTTL time.Duration // How long manifest fetches are cached
	Attempts int           // Transport attempts per request (default 1: a failure is fatal)
}

// Client fetches the package manifest and downloads artifacts.
//
// Downloads are sequential and synchronous; the client performs no
// concurrent requests.
type Client struct {
	baseURL  string
	http     *http.Client
	cache    cache.Cache
	ttl      time.Duration
	attempts int
}

// NewClient creates a Client for the repository at baseURL
// (e.g., "https://magland.github.io/mip").
func NewClient(baseURL string, opts Options) *Client {
	c := opts.Cache
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: httpTimeout},
		cache:    c,
		ttl:      opts.CacheTTL,
		attempts: max(opts.Attempts, 1),
	}
}

// FetchManifest retrieves and parses the package catalog.
//
// If refresh is true the cache is bypassed. Raw manifest bytes are cached
// only after they parse successfully, so a corrupt catalog is never served
// from cache.
//
// Returns [ErrNetwork]-wrapped errors for connection failures, *RemoteError
// for non-success responses, and INVALID_MANIFEST errors from
// [manifest.Parse] for malformed content.
func (c *Client) FetchManifest(ctx context.Context, refresh bool) (*manifest.Manifest, error) {
	key := "manifest:" + c.baseURL

	if !refresh {
		if data, ok, _ := c.cache.Get(ctx, key); ok {
			if m, err := manifest.Parse(data); err == nil {
				return m, nil
			}
			// Unparseable cache entry: drop it and fetch fresh.
			_ = c.cache.Delete(ctx, key)
		}
	}

	var data []byte
	err := httputil.Retry(ctx, c.attempts, time.Second, func() error {
		var err error
		data, err = c.get(ctx, c.baseURL+"/packages.json")
		return err
	})
	if err != nil {
		return nil, err
	}

	m, err := manifest.Parse(data)
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(ctx, key, data, c.ttl)
	return m, nil
}

// Download fetches the artifact with the given filename into destDir,
// streaming to a uniquely named temporary file. It returns the local path;
// the caller removes the file after extraction.
//
// Downloads are never cached or retried beyond the configured attempt
// budget; a transport failure aborts the remaining install plan.
func (c *Client) Download(ctx context.Context, filename, destDir string) (string, error) {
	url := c.baseURL + "/packages/" + filename
	path := filepath.Join(destDir, uuid.NewString()+".mhl")

	err := httputil.Retry(ctx, c.attempts, time.Second, func() error {
		return c.downloadTo(ctx, url, path)
	})
	if err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

func (c *Client) downloadTo(ctx context.Context, url, path string) error {
	body, err := c.doRequest(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	return f.Close()
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	body, err := c.doRequest(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}

func (c *Client) doRequest(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, &RemoteError{StatusCode: code})
	case code >= 500:
		return &httputil.RetryableError{Err: &RemoteError{StatusCode: code}}
	default:
		return &RemoteError{StatusCode: code}
	}
}
