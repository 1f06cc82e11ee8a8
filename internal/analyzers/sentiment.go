package analyzers

import (
	"context"
	"math"
	"time"

	"github.com/jonreiter/govader"

	"github.com/lexiscan/lexiscan/internal/analysis"
	"github.com/lexiscan/lexiscan/internal/engine"
)

// compoundThreshold separates positive/negative from neutral compound
// scores, matching the conventional VADER cutoff.
const compoundThreshold = 0.05

// Sentiment scores polarity with the VADER lexicon. The lexicon is
// English-only; other languages get an unsupported result.
type Sentiment struct {
	vader *govader.SentimentIntensityAnalyzer
}

// NewSentiment builds the analyzer with a fresh VADER lexicon.
func NewSentiment() *Sentiment {
	return &Sentiment{vader: govader.NewSentimentIntensityAnalyzer()}
}

func (*Sentiment) Name() string        { return "sentiment" }
func (*Sentiment) Kind() analysis.Kind { return analysis.KindSentiment }

func (a *Sentiment) Analyze(_ context.Context, doc *engine.Doc, lang string) (analysis.Result, error) {
	start := time.Now()

	if lang != "en" {
		return analysis.Unsupported(a.Name(), a.Kind(), "sentiment lexicon is English-only", time.Since(start)), nil
	}

	scores := a.vader.PolarityScores(doc.Text())
	label := "neutral"
	switch {
	case scores.Compound >= compoundThreshold:
		label = "positive"
	case scores.Compound <= -compoundThreshold:
		label = "negative"
	}

	return analysis.Result{
		Name: a.Name(),
		Kind: a.Kind(),
		Results: map[string]any{
			"label":    label,
			"compound": scores.Compound,
			"positive": scores.Positive,
			"neutral":  scores.Neutral,
			"negative": scores.Negative,
		},
		ProcessingTime: time.Since(start),
		Confidence:     math.Abs(scores.Compound),
	}, nil
}
