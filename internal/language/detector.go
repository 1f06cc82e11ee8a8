package language

import (
	"errors"

	"github.com/abadojack/whatlanggo"
)

// Candidate is one language-id hypothesis with its probability.
type Candidate struct {
	Code       string
	Confidence float64
}

// Detector produces ranked language candidates for a text. Implementations
// must be deterministic: identical input yields identical output.
type Detector interface {
	Detect(text string) ([]Candidate, error)
}

// WhatlangDetector identifies languages with the whatlanggo trigram model.
// The algorithm is purely statistical over the input, so results are
// deterministic without any seeding.
type WhatlangDetector struct{}

// Detect returns the top candidate reported by whatlanggo.
func (WhatlangDetector) Detect(text string) ([]Candidate, error) {
	info := whatlanggo.Detect(text)
	code := whatlanggo.LangToStringShort(info.Lang)
	if code == "" {
		// No ISO 639-1 equivalent; surface the 639-3 code and let the
		// resolver's supported-set mapping handle it.
		code = whatlanggo.LangToString(info.Lang)
	}
	if code == "" {
		return nil, errors.New("language detection produced no candidate")
	}
	return []Candidate{{Code: code, Confidence: info.Confidence}}, nil
}
