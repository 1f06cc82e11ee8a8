package analyzers

import (
	"context"
	"fmt"
	"time"

	"github.com/lexiscan/lexiscan/internal/analysis"
	"github.com/lexiscan/lexiscan/internal/engine"
)

// DependencyRelations summarizes syntactic dependency arcs. It only
// produces a full result for engines that attach a dependency parse.
type DependencyRelations struct{}

func (DependencyRelations) Name() string        { return "dependency" }
func (DependencyRelations) Kind() analysis.Kind { return analysis.KindDependency }

func (a DependencyRelations) Analyze(_ context.Context, doc *engine.Doc, _ string) (analysis.Result, error) {
	start := time.Now()

	if !doc.HasAnnotation(engine.AnnotationDep) {
		res := analysis.Unsupported(a.Name(), a.Kind(), "dependency parser not available for this language", time.Since(start))
		res.Confidence = 0.8
		return res, nil
	}

	tokens := doc.Tokens()
	depCounts := make(map[string]int)
	var triples []string
	for _, tok := range tokens {
		if tok.Dep == "" {
			continue
		}
		depCounts[tok.Dep]++
		if tok.Head >= 0 && tok.Head < len(tokens) {
			triples = append(triples, fmt.Sprintf("%s<-%s-%s", tokens[tok.Head].POS, tok.Dep, tok.POS))
		}
	}

	return analysis.Result{
		Name: a.Name(),
		Kind: a.Kind(),
		Results: map[string]any{
			"dep_counts":   depCounts,
			"head_pos_dep": topCounts(triples, 20),
		},
		ProcessingTime: time.Since(start),
		Confidence:     1.0,
	}, nil
}
