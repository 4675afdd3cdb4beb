package fetcher

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vaidikcode/Mirelio-Game-Forge/internal/core/domain"
	"github.com/vaidikcode/Mirelio-Game-Forge/internal/core/ports"
)

type httpVideoFetcher struct {
	client *http.Client
}

// NewHTTPVideoFetcher downloads raw video bytes over HTTP. TLS
// verification stays on unless insecureSkipVerify is set.
func NewHTTPVideoFetcher(timeout time.Duration, insecureSkipVerify bool) ports.VideoFetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if insecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &httpVideoFetcher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (f *httpVideoFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building download request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &DownloadFailure{url: url, cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.DownloadError{URL: url, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading video body: %w", err)
	}
	return data, nil
}

// DownloadFailure wraps transport-level errors so they unwrap to the
// underlying cause while still reading as a download problem.
type DownloadFailure struct {
	url   string
	cause error
}

func (e *DownloadFailure) Error() string {
	return fmt.Sprintf("downloading %s: %v", e.url, e.cause)
}

func (e *DownloadFailure) Unwrap() error { return e.cause }
