package analyzers

import (
	"context"
	"sort"
	"time"

	"github.com/lexiscan/lexiscan/internal/analysis"
	"github.com/lexiscan/lexiscan/internal/engine"
)

// POSDistribution summarizes the universal part-of-speech makeup of a text.
type POSDistribution struct{}

func (POSDistribution) Name() string        { return "pos" }
func (POSDistribution) Kind() analysis.Kind { return analysis.KindPOS }

func (a POSDistribution) Analyze(_ context.Context, doc *engine.Doc, _ string) (analysis.Result, error) {
	start := time.Now()

	if !doc.HasAnnotation(engine.AnnotationPOS) {
		res := analysis.Unsupported(a.Name(), a.Kind(), "part-of-speech tags not available for this language", time.Since(start))
		res.Confidence = 1.0
		return res, nil
	}

	counts := make(map[string]int)
	byPOS := make(map[string][]string)
	total := 0
	for _, tok := range doc.Tokens() {
		if tok.POS == "" {
			continue
		}
		counts[tok.POS]++
		total++
		if tok.IsAlpha && !tok.IsStop {
			byPOS[tok.POS] = append(byPOS[tok.POS], tok.Lemma)
		}
	}

	ratios := make(map[string]float64, len(counts))
	if total > 0 {
		for pos, c := range counts {
			ratios[pos] = float64(c) / float64(total)
		}
	}

	topByPOS := make(map[string][]rankedCount, len(byPOS))
	for pos, lemmas := range byPOS {
		topByPOS[pos] = topCounts(lemmas, 5)
	}

	return analysis.Result{
		Name: a.Name(),
		Kind: a.Kind(),
		Results: map[string]any{
			"upos_counts":       counts,
			"upos_ratios":       ratios,
			"top_lemmas_by_pos": topByPOS,
		},
		ProcessingTime: time.Since(start),
		Confidence:     1.0,
	}, nil
}

// sortedKeys returns map keys in sorted order, for stable reporting.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
