// Package source provides the text inputs the pipeline can analyze: local
// files, stdin, and fetched web pages.
package source

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// minTextLength is the smallest extracted text accepted as analyzable.
const minTextLength = 10

// Content is one retrieved text plus its retrieval metadata. Language and
// LanguageConfidence are filled in after the pipeline resolves them.
type Content struct {
	URL                string    `json:"url,omitempty"`
	Title              string    `json:"title,omitempty"`
	Text               string    `json:"text"`
	FetchedAt          time.Time `json:"fetched_at"`
	WordCount          int       `json:"word_count"`
	CharCount          int       `json:"char_count"`
	Language           string    `json:"language,omitempty"`
	LanguageConfidence float64   `json:"language_confidence,omitempty"`
}

// TextSource yields one Content per call. Implementations must respect the
// context for anything that blocks.
type TextSource interface {
	GetText(ctx context.Context) (*Content, error)
}

// newContent fills the derived fields for a retrieved text.
func newContent(url, title, text string) (*Content, error) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < minTextLength {
		return nil, fmt.Errorf("extracted text too short to analyze (%d runes)", utf8.RuneCountInString(text))
	}
	return &Content{
		URL:       url,
		Title:     title,
		Text:      text,
		FetchedAt: time.Now().UTC(),
		WordCount: len(strings.Fields(text)),
		CharCount: utf8.RuneCountInString(text),
	}, nil
}
