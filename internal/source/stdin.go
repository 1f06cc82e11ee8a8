package source

import (
	"context"
	"fmt"
	"io"
)

// ReaderSource reads text from an io.Reader, typically stdin.
type ReaderSource struct {
	r    io.Reader
	name string
}

// NewReaderSource wraps a reader. The name labels the content's title.
func NewReaderSource(r io.Reader, name string) *ReaderSource {
	return &ReaderSource{r: r, name: name}
}

func (s *ReaderSource) GetText(_ context.Context) (*Content, error) {
	raw, err := io.ReadAll(s.r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.name, err)
	}
	content, err := newContent("", s.name, string(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}
	return content, nil
}
