// Package imagestore abstracts where uploaded images live. The rest of
// the application only holds opaque references; the store knows how to
// persist bytes, read them back (the try-on gateway needs the garment
// bytes synchronously) and turn a reference into a public URL.
package imagestore

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists and serves uploaded images.
type Store interface {
	// Save writes the image and returns an opaque reference.
	Save(filename, contentType string, r io.Reader) (string, error)
	// Open reads an image back by its reference.
	Open(ref string) (io.ReadCloser, error)
	// URL returns the public URL for a reference.
	URL(ref string) string
}

// uniqueName builds a collision-free object name from the original
// filename, keeping the extension so content types stay guessable.
func uniqueName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return uuid.New().String() + ext
}
