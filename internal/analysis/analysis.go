// Package analysis defines the contracts shared by the pipeline and every
// analyzer: the analyzer interface, the uniform result shape consumed by all
// report writers, and the provenance types stamped onto each result.
package analysis

import (
	"context"
	"time"

	"github.com/lexiscan/lexiscan/internal/engine"
)

// Kind classifies what an analyzer computes.
type Kind string

// Analysis kinds. The kind doubles as the default result name when an
// analyzer leaves its name unset.
const (
	KindLexicalStats Kind = "lexical_stats"
	KindPOS          Kind = "pos"
	KindNER          Kind = "ner"
	KindReadability  Kind = "readability"
	KindKeywords     Kind = "keywords"
	KindEmbeddings   Kind = "embeddings"
	KindSentiment    Kind = "sentiment"
	KindDependency   Kind = "dependency"
)

// Analyzer is one leaf computation over the shared parsed text. Analyze must
// treat the Doc as read-only; the pipeline runs analyzers concurrently
// against a single Doc. A returned error (or panic) is converted by the
// pipeline into an unsupported result for that analyzer alone.
type Analyzer interface {
	Name() string
	Kind() Kind
	Analyze(ctx context.Context, doc *engine.Doc, lang string) (Result, error)
}

// Result is the structurally uniform output of one analyzer: the same four
// scalar fields plus a free-form results map for every analyzer, so generic
// serializers can treat them all alike. Metadata is rewritten exactly once
// by the pipeline's provenance injection; results are immutable afterwards.
type Result struct {
	Name           string
	Kind           Kind
	Results        map[string]any
	ProcessingTime time.Duration
	Confidence     float64
	Metadata       map[string]any
}

// Unsupported builds the in-band failure result used when an analyzer
// errors or cannot serve the input: supported=false, the reason in note,
// and zero confidence.
func Unsupported(name string, kind Kind, note string, elapsed time.Duration) Result {
	return Result{
		Name:           name,
		Kind:           kind,
		Results:        map[string]any{"supported": false, "note": note},
		ProcessingTime: elapsed,
		Confidence:     0,
	}
}

// LanguageContext is the resolved language for one pipeline run, attached to
// every result's metadata. Immutable after creation.
type LanguageContext struct {
	Code       string
	Confidence float64
	Model      string
}

// Timing is the wall-clock record for one pipeline run.
type Timing struct {
	RunID     string
	StartedAt time.Time
	EndedAt   time.Time
	Total     time.Duration
}
