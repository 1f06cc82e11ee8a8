package analyzers

import (
	"context"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/lexiscan/lexiscan/internal/analysis"
	"github.com/lexiscan/lexiscan/internal/engine"
)

// Readability scores a text with the classic readability formulas. The
// formulas and the syllable heuristic are calibrated for English; results
// for other languages are reported with a note and reduced confidence.
type Readability struct{}

func (Readability) Name() string        { return "readability" }
func (Readability) Kind() analysis.Kind { return analysis.KindReadability }

func (a Readability) Analyze(_ context.Context, doc *engine.Doc, lang string) (analysis.Result, error) {
	start := time.Now()

	var (
		words     int
		chars     int
		syllables int
		difficult int
		polysylls int
	)
	for _, tok := range doc.Tokens() {
		if !tok.IsAlpha {
			continue
		}
		words++
		chars += len([]rune(tok.Text))
		syl := countSyllables(tok.Text)
		syllables += syl
		if syl >= 3 {
			polysylls++
			if !tok.IsStop {
				difficult++
			}
		}
	}
	sentences := len(doc.Sentences())
	if words == 0 || sentences == 0 {
		res := analysis.Unsupported(a.Name(), a.Kind(), "not enough text to score", time.Since(start))
		return res, nil
	}

	wordsPerSentence := float64(words) / float64(sentences)
	syllablesPerWord := float64(syllables) / float64(words)

	flesch := 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
	fkGrade := 0.39*wordsPerSentence + 11.8*syllablesPerWord - 15.59
	smog := 1.043*math.Sqrt(float64(polysylls)*30.0/float64(sentences)) + 3.1291
	ari := 4.71*(float64(chars)/float64(words)) + 0.5*wordsPerSentence - 21.43
	l := float64(chars) / float64(words) * 100
	s := float64(sentences) / float64(words) * 100
	colemanLiau := 0.0588*l - 0.296*s - 15.8

	results := map[string]any{
		"flesch_reading_ease":         round2(flesch),
		"flesch_kincaid_grade":        round2(fkGrade),
		"smog_index":                  round2(smog),
		"automated_readability_index": round2(ari),
		"coleman_liau_index":          round2(colemanLiau),
		"difficult_words":             difficult,
		"words":                       words,
		"sentences":                   sentences,
	}
	confidence := 1.0
	if lang != "en" {
		results["note"] = "readability formulas are calibrated for English"
		confidence = 0.5
	}

	return analysis.Result{
		Name:           a.Name(),
		Kind:           a.Kind(),
		Results:        results,
		ProcessingTime: time.Since(start),
		Confidence:     confidence,
	}, nil
}

// countSyllables estimates syllables by counting vowel groups, with the
// common silent-e adjustment. Minimum one syllable per word.
func countSyllables(word string) int {
	w := strings.ToLower(word)
	count := 0
	prevVowel := false
	for _, r := range w {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}
	if strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") && count > 1 {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u', 'y', 'ä', 'ö', 'ü', 'é', 'è', 'ê', 'á', 'í', 'ó', 'ú':
		return true
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
