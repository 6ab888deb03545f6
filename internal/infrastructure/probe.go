package infrastructure

import (
	"context"
	"net/http"
	"time"
)

const defaultProbeTimeout = 10 * time.Second

// HTTPProbe checks website availability with HEAD requests. A site counts
// as available only when it answers 200 OK.
type HTTPProbe struct {
	client *http.Client
}

// NewHTTPProbe builds a probe whose requests time out after timeout.
func NewHTTPProbe(timeout time.Duration) *HTTPProbe {
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}

	return &HTTPProbe{
		client: &http.Client{Timeout: timeout},
	}
}

// Check reports whether url currently responds to a HEAD request with
// status 200. Transport errors count as unavailable.
func (p *HTTPProbe) Check(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
