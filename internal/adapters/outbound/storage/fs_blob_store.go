package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vaidikcode/Mirelio-Game-Forge/internal/core/ports"
)

type fsBlobStore struct {
	root          string
	publicBaseURL string
}

// NewFSBlobStore writes fallback audio under root and resolves public
// URLs below <publicBaseURL>/media/. The server mounts the same
// directory at /media.
func NewFSBlobStore(root, publicBaseURL string) (ports.BlobStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating blob dir: %w", err)
	}
	return &fsBlobStore{
		root:          root,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}, nil
}

func (s *fsBlobStore) Put(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	// Reject ".." segments before Clean collapses them; a name like
	// "..hidden.mp3" is still fine.
	slashed := filepath.ToSlash(name)
	for _, seg := range strings.Split(slashed, "/") {
		if seg == ".." {
			return "", fmt.Errorf("invalid blob name %q", name)
		}
	}

	clean := filepath.ToSlash(filepath.Clean("/" + slashed))[1:]
	if clean == "" {
		return "", fmt.Errorf("invalid blob name %q", name)
	}

	path := filepath.Join(s.root, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating blob subdir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing blob %s: %w", clean, err)
	}

	return s.publicBaseURL + "/media/" + clean, nil
}
