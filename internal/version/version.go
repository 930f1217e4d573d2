// Package version compares build versions against published GitHub releases.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

const (
	// DefaultBaseURL is the GitHub REST API root.
	DefaultBaseURL = "https://api.github.com"

	// DefaultTimeout bounds a single release lookup.
	DefaultTimeout = 30 * time.Second

	maxErrorBody    = 1 << 10
	maxResponseBody = 64 << 10
)

var (
	// ErrReleaseLookup is returned for non-200 responses from the releases API.
	ErrReleaseLookup = errors.New("release lookup failed")

	// ErrInvalidRepository is returned for an empty or malformed owner/repo pair.
	ErrInvalidRepository = errors.New("invalid repository")
)

var repoSegment = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`) //nolint:gochecknoglobals // compiled once

// Release is the subset of a GitHub release the CLI reports.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	Prerelease  bool      `json:"prerelease"`
	PublishedAt time.Time `json:"published_at"`
	URL         string    `json:"html_url"`
}

// Checker fetches the latest release of a repository.
type Checker struct {
	baseURL   string
	client    *http.Client
	userAgent string
}

// Option configures a Checker.
type Option func(*Checker)

// WithBaseURL points the checker at another API root.
func WithBaseURL(url string) Option {
	return func(c *Checker) { c.baseURL = strings.TrimSuffix(url, "/") }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Checker) { c.client = client }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Checker) { c.userAgent = ua }
}

// NewChecker returns a Checker with defaults applied before opts.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		baseURL:   DefaultBaseURL,
		client:    &http.Client{Timeout: DefaultTimeout},
		userAgent: fmt.Sprintf("suiwallet/dev (%s/%s)", runtime.GOOS, runtime.GOARCH),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Latest returns the newest published release of owner/repo.
func (c *Checker) Latest(ctx context.Context, owner, repo string) (*Release, error) {
	if !repoSegment.MatchString(owner) || !repoSegment.MatchString(repo) {
		return nil, fmt.Errorf("%w: %q/%q", ErrInvalidRepository, owner, repo)
	}

	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, owner, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req) //nolint:gosec // URL is built from the configured API root
	if err != nil {
		return nil, fmt.Errorf("fetching release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: status %d: %s", ErrReleaseLookup, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var rel Release
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decoding release: %w", err)
	}
	return &rel, nil
}

// Parse reads a release version, ignoring a leading "v" and surrounding space.
// Development builds ("dev", empty, or a bare commit hash) do not parse.
func Parse(v string) (*semver.Version, bool) {
	v = strings.TrimSpace(v)
	if v == "" || v == "dev" || isCommitHash(v) {
		return nil, false
	}
	parsed, err := semver.NewVersion(v)
	if err != nil {
		return nil, false
	}
	return parsed, true
}

// Compare orders two versions. Development builds sort before every release.
func Compare(a, b string) int {
	va, okA := Parse(a)
	vb, okB := Parse(b)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return -1
	case !okB:
		return 1
	}
	return va.Compare(vb)
}

// IsNewer reports whether latest is a newer release than current.
func IsNewer(current, latest string) bool {
	return Compare(latest, current) > 0
}

// Normalize renders v as MAJOR.MINOR.PATCH, or returns it trimmed when it is
// not a release version.
func Normalize(v string) string {
	parsed, ok := Parse(v)
	if !ok {
		return strings.TrimPrefix(strings.TrimSpace(v), "v")
	}
	return fmt.Sprintf("%d.%d.%d", parsed.Major(), parsed.Minor(), parsed.Patch())
}

// isCommitHash matches 7-40 hex characters with at least one letter, so
// numeric versions like "1234567" are not mistaken for hashes.
func isCommitHash(s string) bool {
	s = strings.TrimSuffix(s, "-dirty")
	if len(s) < 7 || len(s) > 40 {
		return false
	}
	letter := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
			letter = true
		default:
			return false
		}
	}
	return letter
}
