// Package storage keeps uploaded quotation documents on the local
// filesystem.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileInfo describes one stored document.
type FileInfo struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

// LocalStorage stores uploaded documents under a base directory.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a local filesystem storage rooted at
// basePath, creating the directory if needed.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// Save writes an uploaded document to disk and returns its metadata.
// The stored name carries a short unique prefix so repeated uploads of
// the same filename never collide.
func (s *LocalStorage) Save(filename string, r io.Reader) (*FileInfo, error) {
	fileID := uuid.New()

	storedName := fmt.Sprintf("%s_%s", fileID.String()[:8], sanitizeFilename(filename))
	path := filepath.Join(s.basePath, storedName)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &FileInfo{
		ID:        fileID,
		Name:      filename,
		Size:      size,
		Path:      path,
		CreatedAt: time.Now(),
	}, nil
}

// List returns the absolute paths of stored documents matching the
// glob pattern (relative to the base path).
func (s *LocalStorage) List(pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*"
	}
	return filepath.Glob(filepath.Join(s.basePath, pattern))
}

// sanitizeFilename keeps the base name and replaces path separators
// and control characters.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	replacer := strings.NewReplacer("/", "_", "\\", "_", "..", "_", "\x00", "_")
	name = replacer.Replace(name)
	if name == "" || name == "." {
		name = "upload"
	}
	return name
}
