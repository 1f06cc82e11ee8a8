package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSource reads text from a local file.
type FileSource struct {
	path string
}

// NewFileSource builds a source for the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) GetText(_ context.Context) (*Content, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	title := filepath.Base(s.path)
	content, err := newContent("", title, string(raw))
	if err != nil {
		return nil, fmt.Errorf("file %s: %w", s.path, err)
	}
	return content, nil
}
