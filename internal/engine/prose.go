package engine

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
)

// proseEngine is the English engine, backed by the prose tagger and entity
// recognizer plus the bundled function-word lexicon for stop-word flags.
type proseEngine struct {
	lexicon map[string]struct{}
}

func newProseEngine(lexicon map[string]struct{}) *proseEngine {
	return &proseEngine{lexicon: lexicon}
}

func (e *proseEngine) Language() string { return "en" }

func (e *proseEngine) Model() string { return modelCatalog["en"] }

func (e *proseEngine) Supports(capability string) bool {
	switch capability {
	case CapabilityPOSTags, CapabilityNamedEntities:
		return true
	default:
		return false
	}
}

func (e *proseEngine) Parse(ctx context.Context, text string) (*Doc, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse canceled: %w", err)
	}
	pdoc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("prose parse: %w", err)
	}

	ptoks := pdoc.Tokens()
	tokens := make([]Token, 0, len(ptoks))
	for _, pt := range ptoks {
		lower := strings.ToLower(pt.Text)
		_, stop := e.lexicon[lower]
		tokens = append(tokens, Token{
			Text:    pt.Text,
			Lemma:   lower,
			Tag:     pt.Tag,
			POS:     universalPOS(pt.Tag),
			IsAlpha: isAlphaWord(pt.Text),
			IsStop:  stop,
		})
	}

	pents := pdoc.Entities()
	entities := make([]Entity, 0, len(pents))
	for _, pe := range pents {
		entities = append(entities, Entity{Text: pe.Text, Label: pe.Label})
	}

	return NewDoc(
		text,
		tokens,
		sentenceSpans(tokens),
		entities,
		[]string{AnnotationPOS, AnnotationNER},
	), nil
}

// sentenceSpans splits the token stream at sentence-final punctuation so
// that sentence ranges stay aligned with token indexes.
func sentenceSpans(tokens []Token) []Sentence {
	var spans []Sentence
	start := 0
	for i, tok := range tokens {
		if isSentenceFinal(tok.Text) {
			spans = append(spans, Sentence{Start: start, End: i + 1})
			start = i + 1
		}
	}
	if start < len(tokens) {
		spans = append(spans, Sentence{Start: start, End: len(tokens)})
	}
	return spans
}

func isSentenceFinal(text string) bool {
	switch text {
	case ".", "!", "?", "...", "?!", "!?":
		return true
	}
	return false
}

func isAlphaWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// pennToUniversal collapses Penn Treebank tags into coarse universal POS
// classes so the pos analyzer reports the same vocabulary for every engine.
var pennToUniversal = map[string]string{
	"NN": "NOUN", "NNS": "NOUN",
	"NNP": "PROPN", "NNPS": "PROPN",
	"VB": "VERB", "VBD": "VERB", "VBG": "VERB", "VBN": "VERB", "VBP": "VERB", "VBZ": "VERB",
	"JJ": "ADJ", "JJR": "ADJ", "JJS": "ADJ",
	"RB": "ADV", "RBR": "ADV", "RBS": "ADV", "WRB": "ADV",
	"PRP": "PRON", "PRP$": "PRON", "WP": "PRON", "WP$": "PRON", "EX": "PRON",
	"DT": "DET", "WDT": "DET", "PDT": "DET",
	"IN": "ADP",
	"CC": "CCONJ",
	"CD": "NUM",
	"MD": "AUX",
	"UH": "INTJ",
	"RP": "PART", "TO": "PART", "POS": "PART",
	"FW": "X", "LS": "X",
	"SYM": "SYM", "$": "SYM", "#": "SYM",
}

func universalPOS(tag string) string {
	if upos, ok := pennToUniversal[tag]; ok {
		return upos
	}
	if tag != "" && !unicode.IsLetter(rune(tag[0])) {
		return "PUNCT"
	}
	switch tag {
	case ".", ",", ":", "``", "''", "-LRB-", "-RRB-":
		return "PUNCT"
	}
	return "X"
}
