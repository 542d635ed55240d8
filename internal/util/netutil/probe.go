// Package netutil provides network readiness probes.
package netutil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/imamik/clusterup/internal/util/poll"
)

// DefaultProbeTimeout bounds a single readiness request.
const DefaultProbeTimeout = 5 * time.Second

// HTTPProbe issues GET requests against an address to decide readiness.
type HTTPProbe struct {
	client *http.Client
}

// NewHTTPProbe creates a probe whose requests time out after timeout.
// If timeout is zero, DefaultProbeTimeout is used.
func NewHTTPProbe(timeout time.Duration) *HTTPProbe {
	if timeout == 0 {
		timeout = DefaultProbeTimeout
	}
	return &HTTPProbe{client: &http.Client{Timeout: timeout}}
}

// Ready issues one GET against url. It returns true for any status below
// 400; connection errors and HTTP error statuses come back as errors, which
// callers treat as not ready.
func (p *HTTPProbe) Ready(ctx context.Context, url string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return false, err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return false, fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	return true, nil
}

// Check adapts Ready for url into a poll.Check.
func (p *HTTPProbe) Check(url string) poll.Check {
	return func(ctx context.Context) (bool, error) {
		return p.Ready(ctx, url)
	}
}
