package analyzers

import (
	"context"
	"time"

	"github.com/lexiscan/lexiscan/internal/analysis"
	"github.com/lexiscan/lexiscan/internal/engine"
)

// maxEntityExamples bounds the examples kept per entity label.
const maxEntityExamples = 10

// NamedEntities groups recognized entities by label.
type NamedEntities struct{}

func (NamedEntities) Name() string        { return "ner" }
func (NamedEntities) Kind() analysis.Kind { return analysis.KindNER }

func (a NamedEntities) Analyze(_ context.Context, doc *engine.Doc, _ string) (analysis.Result, error) {
	start := time.Now()

	if !doc.HasAnnotation(engine.AnnotationNER) || len(doc.Entities()) == 0 {
		res := analysis.Unsupported(a.Name(), a.Kind(), "named entity recognition not available for this language", time.Since(start))
		res.Results["counts_by_label"] = map[string]int{}
		res.Results["examples_by_label"] = map[string][]string{}
		res.Results["total_entities"] = 0
		res.Confidence = 1.0
		return res, nil
	}

	counts := make(map[string]int)
	examples := make(map[string][]string)
	seen := make(map[string]map[string]bool)
	for _, ent := range doc.Entities() {
		counts[ent.Label]++
		if seen[ent.Label] == nil {
			seen[ent.Label] = make(map[string]bool)
		}
		if len(examples[ent.Label]) < maxEntityExamples && !seen[ent.Label][ent.Text] {
			examples[ent.Label] = append(examples[ent.Label], ent.Text)
			seen[ent.Label][ent.Text] = true
		}
	}

	return analysis.Result{
		Name: a.Name(),
		Kind: a.Kind(),
		Results: map[string]any{
			"counts_by_label":   counts,
			"examples_by_label": examples,
			"total_entities":    len(doc.Entities()),
			"labels":            sortedKeys(counts),
		},
		ProcessingTime: time.Since(start),
		Confidence:     1.0,
	}, nil
}
