// Package fetch retrieves a URL into a caller-owned directory. It makes
// exactly one attempt per call: retry policy, if any, belongs to the
// caller, and no internal timeout is imposed beyond the context's.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/markwhelan/optool/internal/assets"
)

const userAgent = "optool/1.0"

// Error describes a failed download: either a transport failure (Err set,
// Status zero) or an HTTP-level rejection (Status set).
type Error struct {
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Fetcher downloads resources over HTTP.
type Fetcher struct {
	client *http.Client
}

// New creates a fetcher with a redirect-limited HTTP client.
func New() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
	}
}

// NewWithClient creates a fetcher around an existing HTTP client, used by
// tests to count or stub requests.
func NewWithClient(client *http.Client) *Fetcher {
	return &Fetcher{client: client}
}

// Download streams the entire resource at url into dir under the URL's
// basename, writing through a temporary file and renaming atomically so a
// partial download is never visible under the final name. The destination
// path is returned on success; any failure yields a *Error.
func (f *Fetcher) Download(ctx context.Context, url, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &Error{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &Error{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: url, Status: resp.StatusCode}
	}

	destPath := filepath.Join(dir, assets.Basename(url))
	tmpPath := destPath + ".tmp"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return "", &Error{URL: url, Err: fmt.Errorf("create temp file: %w", err)}
	}

	cleanupNeeded := true
	defer func() {
		tmpFile.Close()
		if cleanupNeeded {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return "", &Error{URL: url, Err: fmt.Errorf("copy response body: %w", err)}
	}

	if err := tmpFile.Close(); err != nil {
		return "", &Error{URL: url, Err: fmt.Errorf("close temp file: %w", err)}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return "", &Error{URL: url, Err: fmt.Errorf("rename temp file: %w", err)}
	}

	cleanupNeeded = false
	return destPath, nil
}
