package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexiscan/lexiscan/internal/analysis"
	"github.com/lexiscan/lexiscan/internal/engine"
)

type noopAnalyzer struct {
	name string
	kind analysis.Kind
}

func (a noopAnalyzer) Name() string        { return a.name }
func (a noopAnalyzer) Kind() analysis.Kind { return a.kind }
func (a noopAnalyzer) Analyze(context.Context, *engine.Doc, string) (analysis.Result, error) {
	return analysis.Result{Name: a.name, Kind: a.kind}, nil
}

func factoryFor(name string) Factory {
	return func() (analysis.Analyzer, error) {
		return noopAnalyzer{name: name, kind: analysis.KindLexicalStats}, nil
	}
}

func TestRegisterAndLookup(t *testing.T) {
	t.Parallel()
	r := New()
	require.NoError(t, r.Register("alpha", analysis.KindLexicalStats, factoryFor("alpha")))

	desc, err := r.Lookup("alpha")
	require.NoError(t, err)
	assert.Equal(t, "alpha", desc.Name)
	assert.Equal(t, analysis.KindLexicalStats, desc.Kind)

	a, err := desc.Factory()
	require.NoError(t, err)
	assert.Equal(t, "alpha", a.Name())
}

func TestRegisterDuplicateRejected(t *testing.T) {
	t.Parallel()
	r := New()
	require.NoError(t, r.Register("alpha", analysis.KindLexicalStats, factoryFor("alpha")))

	err := r.Register("alpha", analysis.KindPOS, factoryFor("other"))
	var dup *DuplicateAnalyzerError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "alpha", dup.Name)

	// First registration survives.
	desc, err := r.Lookup("alpha")
	require.NoError(t, err)
	assert.Equal(t, analysis.KindLexicalStats, desc.Kind)
}

func TestRegisterInvalidDescriptor(t *testing.T) {
	t.Parallel()
	r := New()

	var invalid *InvalidDescriptorError
	assert.ErrorAs(t, r.Register("", analysis.KindPOS, factoryFor("x")), &invalid)
	assert.ErrorAs(t, r.Register("x", analysis.KindPOS, nil), &invalid)
}

func TestLookupUnknown(t *testing.T) {
	t.Parallel()
	r := New()
	require.NoError(t, r.Register("alpha", analysis.KindLexicalStats, factoryFor("alpha")))
	require.NoError(t, r.Register("beta", analysis.KindPOS, factoryFor("beta")))

	_, err := r.Lookup("gamma")
	var unknown *UnknownAnalyzerError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "gamma", unknown.Name)
	assert.Equal(t, []string{"alpha", "beta"}, unknown.Known)
}

func TestNamesSorted(t *testing.T) {
	t.Parallel()
	r := New()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, r.Register(name, analysis.KindKeywords, factoryFor(name)))
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, r.Names())
}
