// Package ghub lists release assets and builds raw-content URLs for
// projects hosted on GitHub. It is the external collaborator of the install
// pipeline: given an owner/project/tag it returns candidate download URLs
// and leaves all selection logic to the caller.
package ghub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

const (
	defaultAPIBase = "https://api.github.com"
	defaultRawBase = "https://raw.githubusercontent.com"
	defaultWebBase = "https://github.com"

	userAgent = "optool/1.0"
)

// TagLatest selects a project's most recent published release.
const TagLatest = "latest"

// release mirrors the subset of the GitHub release JSON the lister needs.
type release struct {
	TagName string `json:"tag_name"`
	Assets  []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// Client queries the release API of a GitHub-compatible host.
type Client struct {
	apiBase string
	rawBase string
	webBase string
	client  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at an alternate API and web base, used by
// tests to target an httptest server.
func WithBaseURL(apiBase, webBase string) Option {
	return func(c *Client) {
		c.apiBase = strings.TrimRight(apiBase, "/")
		c.webBase = strings.TrimRight(webBase, "/")
	}
}

// WithRawBase points raw-content URLs at an alternate host.
func WithRawBase(rawBase string) Option {
	return func(c *Client) {
		c.rawBase = strings.TrimRight(rawBase, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) { c.client = client }
}

// NewClient creates a release lister. The API base honors the
// OPTOOL_API_BASE environment variable before any options are applied.
func NewClient(opts ...Option) *Client {
	apiBase := defaultAPIBase
	if env := strings.TrimSpace(os.Getenv("OPTOOL_API_BASE")); env != "" {
		apiBase = strings.TrimRight(env, "/")
	}

	c := &Client{
		apiBase: apiBase,
		rawBase: defaultRawBase,
		webBase: defaultWebBase,
		client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListReleaseAssets returns the absolute download URLs of every asset
// attached to the named release, in API order. The list may be empty; no
// ordering is guaranteed.
func (c *Client) ListReleaseAssets(ctx context.Context, owner, project, tag string) ([]string, error) {
	releaseID := TagLatest
	if tag != "" && tag != TagLatest {
		releaseID = "tags/" + tag
	}
	url := fmt.Sprintf("%s/repos/%s/%s/releases/%s", c.apiBase, owner, project, releaseID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch release %s/%s@%s: %w", owner, project, tag, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("release %s/%s@%s: status %d: %s",
			owner, project, tag, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release JSON: %w", err)
	}

	urls := make([]string, 0, len(rel.Assets))
	for _, asset := range rel.Assets {
		if asset.BrowserDownloadURL != "" {
			urls = append(urls, asset.BrowserDownloadURL)
		}
	}
	return urls, nil
}

// ReleasePageURL returns the human-facing release page, used in
// diagnostics when no asset matches.
func (c *Client) ReleasePageURL(owner, project, tag string) string {
	if tag == "" || tag == TagLatest {
		return fmt.Sprintf("%s/%s/%s/releases/latest", c.webBase, owner, project)
	}
	return fmt.Sprintf("%s/%s/%s/releases/tag/%s", c.webBase, owner, project, tag)
}

// RawContentURL returns the direct download URL for a single file inside a
// repository at the given tag. An empty path defaults to the project name
// and an empty tag to "master".
func (c *Client) RawContentURL(owner, project, path, tag string) string {
	if path == "" {
		path = project
	}
	if tag == "" {
		tag = "master"
	}
	return fmt.Sprintf("%s/%s/%s/%s/%s", c.rawBase, owner, project, tag, path)
}
