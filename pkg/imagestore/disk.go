package imagestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskStore keeps images on the local filesystem under a media directory
// that the HTTP layer serves statically.
type DiskStore struct {
	dir     string
	baseURL string
}

// NewDiskStore creates the media directory if needed. baseURL is the
// public path prefix the files are served under, e.g. "/media".
func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media dir %s: %w", dir, err)
	}
	return &DiskStore{dir: dir, baseURL: baseURL}, nil
}

// Save writes the image under a unique name and returns that name.
func (s *DiskStore) Save(filename, _ string, r io.Reader) (string, error) {
	name := uniqueName(filename)
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	return name, nil
}

// Open reads an image back by its reference.
func (s *DiskStore) Open(ref string) (io.ReadCloser, error) {
	// Strip any path component so a reference can never escape the dir.
	f, err := os.Open(filepath.Join(s.dir, filepath.Base(ref)))
	if err != nil {
		return nil, fmt.Errorf("failed to open media file %s: %w", ref, err)
	}
	return f, nil
}

// URL returns the public URL for a reference.
func (s *DiskStore) URL(ref string) string {
	return s.baseURL + "/" + ref
}
