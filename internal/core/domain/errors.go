package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAnalysisFailed covers every extraction outcome that yields no
	// events; callers cannot distinguish model errors from empty results.
	ErrAnalysisFailed = errors.New("analysis failed")

	// ErrNotFound means a regeneration target id resolved to no record.
	ErrNotFound = errors.New("event not found")

	// ErrNoAudio means the provider answered successfully but resolved
	// no playable audio URL.
	ErrNoAudio = errors.New("no audio URL resolved")
)

// DownloadError reports an unreachable or non-2xx video URL.
type DownloadError struct {
	URL    string
	Status int
}

func (e *DownloadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("downloading %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("downloading %s failed", e.URL)
}

// ProviderError carries an upstream provider's status so the single-event
// endpoints can forward it to the caller.
type ProviderError struct {
	Provider string
	Status   int
	Message  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s returned %d: %s", e.Provider, e.Status, e.Message)
}
