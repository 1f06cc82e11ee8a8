package analyzers

import (
	"context"
	"time"

	"github.com/lexiscan/lexiscan/internal/analysis"
	"github.com/lexiscan/lexiscan/internal/engine"
)

// maxKeywords bounds the keyword list in the result.
const maxKeywords = 20

// keywordEntry is one extracted keyword with its raw count and relative
// frequency score.
type keywordEntry struct {
	Term  string  `json:"term"`
	Count int     `json:"count"`
	Score float64 `json:"score"`
}

// Keywords extracts the most frequent content lemmas.
type Keywords struct{}

func (Keywords) Name() string        { return "keywords" }
func (Keywords) Kind() analysis.Kind { return analysis.KindKeywords }

func (a Keywords) Analyze(_ context.Context, doc *engine.Doc, _ string) (analysis.Result, error) {
	start := time.Now()

	var lemmas []string
	for _, tok := range doc.Tokens() {
		if tok.IsAlpha && !tok.IsStop {
			lemmas = append(lemmas, tok.Lemma)
		}
	}
	ranked := topCounts(lemmas, maxKeywords)

	keywords := make([]keywordEntry, 0, len(ranked))
	for _, rc := range ranked {
		score := 0.0
		if len(lemmas) > 0 {
			score = float64(rc.Count) / float64(len(lemmas))
		}
		keywords = append(keywords, keywordEntry{Term: rc.Value, Count: rc.Count, Score: score})
	}

	return analysis.Result{
		Name: a.Name(),
		Kind: a.Kind(),
		Results: map[string]any{
			"keywords": keywords,
			"method":   "frequency",
		},
		ProcessingTime: time.Since(start),
		Confidence:     1.0,
	}, nil
}
