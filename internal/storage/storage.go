// Package storage writes uploaded files to the local filesystem
package storage

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

// Upload kinds map to fixed subdirectories under the base path
const (
	KindProject = "projects"
	KindAvatar  = "avatars"
)

// localStorage implements upload storage on the local filesystem
type localStorage struct {
	basePath string
}

// NewLocalStorage creates a new localStorage instance and ensures the upload
// subdirectories exist
func NewLocalStorage(basePath string) (*localStorage, error) {
	for _, kind := range []string{KindProject, KindAvatar} {
		if err := os.MkdirAll(filepath.Join(basePath, kind), 0755); err != nil {
			return nil, fmt.Errorf("failed to create upload dir %s: %w", kind, err)
		}
	}

	return &localStorage{
		basePath: basePath,
	}, nil
}

// GenerateFileName builds a collision-resistant file name from the current
// timestamp and a random suffix, keeping the original extension
func GenerateFileName(extension string) string {
	name := fmt.Sprintf("%d-%09d", time.Now().UnixMilli(), rand.Intn(1_000_000_000))
	if extension != "" && extension[0] != '.' {
		return name + "." + extension
	}
	return name + extension
}

// Save writes the reader's content into a new file under the kind's
// subdirectory and returns the generated file name and its public path
func (s *localStorage) Save(kind, extension string, r io.Reader) (string, string, error) {
	filename := GenerateFileName(extension)
	path := filepath.Join(s.basePath, kind, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return filename, fmt.Sprintf("/uploads/%s/%s", kind, filename), nil
}

// Delete removes a stored file
func (s *localStorage) Delete(kind, filename string) error {
	return os.Remove(filepath.Join(s.basePath, kind, filename))
}
