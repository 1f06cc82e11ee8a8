package analyzers

import (
	"context"
	"math"
	"time"

	"github.com/lexiscan/lexiscan/internal/analysis"
	"github.com/lexiscan/lexiscan/internal/engine"
)

// Embeddings produces a single L2-normalized document vector via a remote
// embedding backend. Backend failures surface as an unsupported result
// rather than failing the whole run.
type Embeddings struct {
	backend EmbeddingBackend
}

// NewEmbeddings wraps the given backend.
func NewEmbeddings(backend EmbeddingBackend) *Embeddings {
	return &Embeddings{backend: backend}
}

func (*Embeddings) Name() string        { return "embeddings" }
func (*Embeddings) Kind() analysis.Kind { return analysis.KindEmbeddings }

func (a *Embeddings) Analyze(ctx context.Context, doc *engine.Doc, _ string) (analysis.Result, error) {
	start := time.Now()

	vec, err := a.backend.Embed(ctx, doc.Text())
	if err != nil {
		res := analysis.Unsupported(a.Name(), a.Kind(), err.Error(), time.Since(start))
		res.Metadata = a.backend.Provenance()
		return res, nil
	}
	normalize(vec)

	return analysis.Result{
		Name: a.Name(),
		Kind: a.Kind(),
		Results: map[string]any{
			"vector":     vec,
			"dimensions": len(vec),
			"normalized": true,
		},
		ProcessingTime: time.Since(start),
		Confidence:     1.0,
		Metadata:       a.backend.Provenance(),
	}, nil
}

// normalize scales vec to unit L2 norm in place. Zero vectors are left
// untouched.
func normalize(vec []float64) {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
}
