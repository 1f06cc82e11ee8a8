package analyzers

import (
	"fmt"

	"github.com/lexiscan/lexiscan/internal/analysis"
	"github.com/lexiscan/lexiscan/internal/registry"
)

// Options configures the default registry's analyzers.
type Options struct {
	Embeddings BackendConfig
}

// DefaultRegistry returns a registry holding every built-in analyzer. The
// embeddings factory defers backend construction so a misconfigured backend
// only fails when embeddings are actually requested.
func DefaultRegistry(opts Options) (*registry.Registry, error) {
	reg := registry.New()

	statics := []analysis.Analyzer{
		LexicalStats{},
		POSDistribution{},
		NamedEntities{},
		Readability{},
		Keywords{},
		DependencyRelations{},
	}
	for _, a := range statics {
		a := a
		factory := func() (analysis.Analyzer, error) { return a, nil }
		if err := reg.Register(a.Name(), a.Kind(), factory); err != nil {
			return nil, fmt.Errorf("register %s: %w", a.Name(), err)
		}
	}

	err := reg.Register("sentiment", analysis.KindSentiment, func() (analysis.Analyzer, error) {
		return NewSentiment(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("register sentiment: %w", err)
	}

	embeddings := opts.Embeddings
	err = reg.Register("embeddings", analysis.KindEmbeddings, func() (analysis.Analyzer, error) {
		backend, err := NewEmbeddingBackend(embeddings)
		if err != nil {
			return nil, fmt.Errorf("build embedding backend: %w", err)
		}
		return NewEmbeddings(backend), nil
	})
	if err != nil {
		return nil, fmt.Errorf("register embeddings: %w", err)
	}

	return reg, nil
}
