// Package analyzers holds the built-in analyzer implementations and the
// default registry that wires them up. Each analyzer is an independent,
// side-effect-free computation over the shared parsed text; only the
// embeddings analyzer talks to the network, through its backend.
package analyzers

import (
	"context"
	"sort"
	"time"

	"github.com/lexiscan/lexiscan/internal/analysis"
	"github.com/lexiscan/lexiscan/internal/engine"
)

// LexicalStats computes token, lemma, and sentence statistics.
type LexicalStats struct{}

func (LexicalStats) Name() string        { return "lexical_stats" }
func (LexicalStats) Kind() analysis.Kind { return analysis.KindLexicalStats }

func (a LexicalStats) Analyze(_ context.Context, doc *engine.Doc, _ string) (analysis.Result, error) {
	start := time.Now()

	var (
		lemmas       []string
		totalLen     int
		totalTokens  int
		uniqueLemmas = make(map[string]struct{})
	)
	for _, tok := range doc.Tokens() {
		if !tok.IsAlpha || tok.IsStop {
			continue
		}
		totalTokens++
		totalLen += len([]rune(tok.Text))
		lemmas = append(lemmas, tok.Lemma)
		uniqueLemmas[tok.Lemma] = struct{}{}
	}

	avgTokenLen := 0.0
	ttr := 0.0
	if totalTokens > 0 {
		avgTokenLen = float64(totalLen) / float64(totalTokens)
		ttr = float64(len(uniqueLemmas)) / float64(totalTokens)
	}

	sentences := doc.Sentences()
	var sentLenSum int
	for _, s := range sentences {
		for _, tok := range doc.Tokens()[s.Start:s.End] {
			if tok.IsAlpha {
				sentLenSum++
			}
		}
	}
	avgSentLen := 0.0
	if len(sentences) > 0 {
		avgSentLen = float64(sentLenSum) / float64(len(sentences))
	}

	return analysis.Result{
		Name: a.Name(),
		Kind: a.Kind(),
		Results: map[string]any{
			"total_tokens":               totalTokens,
			"unique_lemmas":              len(uniqueLemmas),
			"sentences":                  len(sentences),
			"avg_token_length":           avgTokenLen,
			"avg_sentence_length_tokens": avgSentLen,
			"type_token_ratio":           ttr,
			"top_lemmas":                 topCounts(lemmas, 20),
		},
		ProcessingTime: time.Since(start),
		Confidence:     1.0,
	}, nil
}

// rankedCount is one (value, count) pair in a frequency ranking.
type rankedCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// topCounts ranks values by count descending, ties broken alphabetically.
func topCounts(values []string, limit int) []rankedCount {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	ranked := make([]rankedCount, 0, len(counts))
	for v, c := range counts {
		ranked = append(ranked, rankedCount{Value: v, Count: c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Value < ranked[j].Value
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
