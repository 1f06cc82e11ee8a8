package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexiscan/lexiscan/internal/analysis"
)

func TestInjectStampsProvenance(t *testing.T) {
	t.Parallel()
	lc := analysis.LanguageContext{Code: "en", Confidence: 0.9, Model: "lexiscan_en_prose"}
	res := analysis.Result{
		Kind:     analysis.KindKeywords,
		Results:  map[string]any{"ok": true},
		Metadata: map[string]any{"backend": "ollama"},
	}

	out := Inject(res, lc)

	assert.Equal(t, "keywords", out.Name, "empty name defaults to the kind")
	assert.Equal(t, "ollama", out.Metadata["backend"], "analyzer metadata survives")
	assert.Equal(t, "lexiscan_en_prose", out.Metadata["model"])

	langMeta, ok := out.Metadata["language"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "en", langMeta["code"])
	assert.Equal(t, 0.9, langMeta["confidence"])

	// The input result is not mutated.
	assert.NotContains(t, res.Metadata, "language")
}

func TestInjectIdempotent(t *testing.T) {
	t.Parallel()
	lc := analysis.LanguageContext{Code: "de", Confidence: 1.0, Model: "lexiscan_de_lexical"}
	res := analysis.Result{Name: "pos", Kind: analysis.KindPOS, Results: map[string]any{}}

	once := Inject(res, lc)
	twice := Inject(once, lc)
	assert.Equal(t, once.Metadata, twice.Metadata)
	assert.Equal(t, once.Name, twice.Name)
}
