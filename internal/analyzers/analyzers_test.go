package analyzers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexiscan/lexiscan/internal/engine"
)

// word builds an alpha token with POS annotation fields filled in.
func word(text, pos string, stop bool) engine.Token {
	return engine.Token{
		Text:    text,
		Lemma:   strings.ToLower(text),
		POS:     pos,
		IsAlpha: true,
		IsStop:  stop,
	}
}

func punct(text string) engine.Token {
	return engine.Token{Text: text, POS: "PUNCT"}
}

// twoSentenceDoc builds "Dogs chase cats . They run fast ." with POS and NER
// layers.
func twoSentenceDoc() *engine.Doc {
	tokens := []engine.Token{
		word("Dogs", "NOUN", false),
		word("chase", "VERB", false),
		word("cats", "NOUN", false),
		punct("."),
		word("They", "PRON", true),
		word("run", "VERB", false),
		word("fast", "ADV", false),
		punct("."),
	}
	sentences := []engine.Sentence{{Start: 0, End: 4}, {Start: 4, End: 8}}
	entities := []engine.Entity{
		{Text: "Dogs", Label: "GPE"},
		{Text: "Dogs", Label: "GPE"},
		{Text: "Rex", Label: "PERSON"},
	}
	return engine.NewDoc(
		"Dogs chase cats. They run fast.",
		tokens, sentences, entities,
		[]string{engine.AnnotationPOS, engine.AnnotationNER},
	)
}

// bareDoc builds the same text with no annotation layers, as the lexical
// engines produce.
func bareDoc() *engine.Doc {
	tokens := []engine.Token{
		word("Dogs", "", false),
		word("chase", "", false),
		word("cats", "", false),
		punct("."),
	}
	return engine.NewDoc("Dogs chase cats.", tokens, []engine.Sentence{{Start: 0, End: 4}}, nil, nil)
}

func TestLexicalStats(t *testing.T) {
	t.Parallel()
	res, err := LexicalStats{}.Analyze(context.Background(), twoSentenceDoc(), "en")
	require.NoError(t, err)

	assert.Equal(t, "lexical_stats", res.Name)
	assert.Equal(t, 1.0, res.Confidence)
	assert.Equal(t, 5, res.Results["total_tokens"], "stop words and punctuation excluded")
	assert.Equal(t, 5, res.Results["unique_lemmas"])
	assert.Equal(t, 2, res.Results["sentences"])
	assert.Equal(t, 1.0, res.Results["type_token_ratio"])
	assert.InDelta(t, 3.0, res.Results["avg_sentence_length_tokens"].(float64), 1e-9)

	top := res.Results["top_lemmas"].([]rankedCount)
	require.NotEmpty(t, top)
	// Ties break alphabetically.
	assert.Equal(t, "cats", top[0].Value)
}

func TestLexicalStatsEmptyDoc(t *testing.T) {
	t.Parallel()
	doc := engine.NewDoc("", nil, nil, nil, nil)
	res, err := LexicalStats{}.Analyze(context.Background(), doc, "en")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Results["total_tokens"])
	assert.Equal(t, 0.0, res.Results["type_token_ratio"])
}

func TestPOSDistribution(t *testing.T) {
	t.Parallel()
	res, err := POSDistribution{}.Analyze(context.Background(), twoSentenceDoc(), "en")
	require.NoError(t, err)

	counts := res.Results["upos_counts"].(map[string]int)
	assert.Equal(t, 2, counts["NOUN"])
	assert.Equal(t, 2, counts["VERB"])
	assert.Equal(t, 2, counts["PUNCT"])

	ratios := res.Results["upos_ratios"].(map[string]float64)
	assert.InDelta(t, 0.25, ratios["NOUN"], 1e-9)

	topByPOS := res.Results["top_lemmas_by_pos"].(map[string][]rankedCount)
	require.Contains(t, topByPOS, "NOUN")
	// Stop words are excluded from the lemma rankings.
	assert.NotContains(t, topByPOS, "PRON")
}

func TestPOSDistributionUnsupported(t *testing.T) {
	t.Parallel()
	res, err := POSDistribution{}.Analyze(context.Background(), bareDoc(), "de")
	require.NoError(t, err)
	assert.Equal(t, false, res.Results["supported"])
	assert.Equal(t, 1.0, res.Confidence)
}

func TestNamedEntities(t *testing.T) {
	t.Parallel()
	res, err := NamedEntities{}.Analyze(context.Background(), twoSentenceDoc(), "en")
	require.NoError(t, err)

	counts := res.Results["counts_by_label"].(map[string]int)
	assert.Equal(t, 2, counts["GPE"])
	assert.Equal(t, 1, counts["PERSON"])
	assert.Equal(t, 3, res.Results["total_entities"])
	assert.Equal(t, []string{"GPE", "PERSON"}, res.Results["labels"])

	examples := res.Results["examples_by_label"].(map[string][]string)
	assert.Equal(t, []string{"Dogs"}, examples["GPE"], "duplicate example texts collapse")
}

func TestNamedEntitiesUnsupported(t *testing.T) {
	t.Parallel()
	res, err := NamedEntities{}.Analyze(context.Background(), bareDoc(), "de")
	require.NoError(t, err)
	assert.Equal(t, false, res.Results["supported"])
	assert.Equal(t, 1.0, res.Confidence)
	assert.Equal(t, 0, res.Results["total_entities"])
}

func TestReadability(t *testing.T) {
	t.Parallel()
	res, err := Readability{}.Analyze(context.Background(), twoSentenceDoc(), "en")
	require.NoError(t, err)

	assert.Equal(t, 6, res.Results["words"])
	assert.Equal(t, 2, res.Results["sentences"])
	assert.Equal(t, 1.0, res.Confidence)
	assert.NotContains(t, res.Results, "note")

	flesch := res.Results["flesch_reading_ease"].(float64)
	assert.Greater(t, flesch, 80.0, "short monosyllabic sentences score as very easy")
}

func TestReadabilityNonEnglishNote(t *testing.T) {
	t.Parallel()
	res, err := Readability{}.Analyze(context.Background(), twoSentenceDoc(), "de")
	require.NoError(t, err)
	assert.Equal(t, 0.5, res.Confidence)
	assert.Contains(t, res.Results["note"], "English")
}

func TestReadabilityEmptyDoc(t *testing.T) {
	t.Parallel()
	doc := engine.NewDoc("", nil, nil, nil, nil)
	res, err := Readability{}.Analyze(context.Background(), doc, "en")
	require.NoError(t, err)
	assert.Equal(t, false, res.Results["supported"])
}

func TestCountSyllables(t *testing.T) {
	t.Parallel()
	cases := map[string]int{
		"dog":       1,
		"running":   2,
		"beautiful": 3,
		"cake":      1,
		"table":     2,
		"a":         1,
		"rhythm":    1,
	}
	for word, want := range cases {
		assert.Equal(t, want, countSyllables(word), "countSyllables(%q)", word)
	}
}

func TestKeywords(t *testing.T) {
	t.Parallel()
	res, err := Keywords{}.Analyze(context.Background(), twoSentenceDoc(), "en")
	require.NoError(t, err)

	assert.Equal(t, "frequency", res.Results["method"])
	assert.Equal(t, 1.0, res.Confidence)

	keywords := res.Results["keywords"].([]keywordEntry)
	require.Len(t, keywords, 5)
	assert.Equal(t, "cats", keywords[0].Term, "ties break alphabetically")
	assert.Equal(t, 1, keywords[0].Count)
	assert.InDelta(t, 0.2, keywords[0].Score, 1e-9)
}

func TestSentiment(t *testing.T) {
	t.Parallel()
	a := NewSentiment()

	doc := engine.NewDoc("I love this wonderful, amazing product!", nil, nil, nil, nil)
	res, err := a.Analyze(context.Background(), doc, "en")
	require.NoError(t, err)
	assert.Equal(t, "positive", res.Results["label"])
	compound := res.Results["compound"].(float64)
	assert.Greater(t, compound, 0.05)
	assert.InDelta(t, compound, res.Confidence, 1e-9)

	doc = engine.NewDoc("This is terrible, I hate it.", nil, nil, nil, nil)
	res, err = a.Analyze(context.Background(), doc, "en")
	require.NoError(t, err)
	assert.Equal(t, "negative", res.Results["label"])
}

func TestSentimentNonEnglish(t *testing.T) {
	t.Parallel()
	a := NewSentiment()
	doc := engine.NewDoc("Das ist wunderbar.", nil, nil, nil, nil)
	res, err := a.Analyze(context.Background(), doc, "de")
	require.NoError(t, err)
	assert.Equal(t, false, res.Results["supported"])
	assert.Equal(t, 0.0, res.Confidence)
}

func TestDependencyRelationsUnsupported(t *testing.T) {
	t.Parallel()
	res, err := DependencyRelations{}.Analyze(context.Background(), twoSentenceDoc(), "en")
	require.NoError(t, err)
	assert.Equal(t, false, res.Results["supported"])
	assert.Equal(t, 0.8, res.Confidence)
}

func TestDependencyRelationsWithParse(t *testing.T) {
	t.Parallel()
	tokens := []engine.Token{
		{Text: "Dogs", POS: "NOUN", Dep: "nsubj", Head: 1, IsAlpha: true, Lemma: "dogs"},
		{Text: "bark", POS: "VERB", Dep: "ROOT", Head: 1, IsAlpha: true, Lemma: "bark"},
	}
	doc := engine.NewDoc("Dogs bark", tokens, []engine.Sentence{{Start: 0, End: 2}}, nil,
		[]string{engine.AnnotationPOS, engine.AnnotationDep})

	res, err := DependencyRelations{}.Analyze(context.Background(), doc, "en")
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Confidence)

	depCounts := res.Results["dep_counts"].(map[string]int)
	assert.Equal(t, 1, depCounts["nsubj"])
	assert.Equal(t, 1, depCounts["ROOT"])
}

func TestTopCounts(t *testing.T) {
	t.Parallel()
	ranked := topCounts([]string{"b", "a", "b", "c", "a", "b"}, 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, rankedCount{Value: "b", Count: 3}, ranked[0])
	assert.Equal(t, rankedCount{Value: "a", Count: 2}, ranked[1])
}
