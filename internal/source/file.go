package source

import (
	"context"
	"fmt"
	"os"
)

// FileSource reads a log file from disk.
type FileSource struct {
	path string
}

// NewFileSource creates a source that reads the file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns the source identifier.
func (s *FileSource) Name() string {
	return fmt.Sprintf("file:%s", s.path)
}

// Path returns the file path.
func (s *FileSource) Path() string {
	return s.path
}

// Load reads the whole file.
func (s *FileSource) Load(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("read file %s: %w", s.path, err)
	}
	return string(data), nil
}
