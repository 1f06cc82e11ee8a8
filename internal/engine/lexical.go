package engine

import (
	"context"
	"fmt"
	"unicode"
)

// lexicalEngine serves languages without a tagger backend. It tokenizes and
// segments sentences but produces no POS, entity, or dependency layers, so
// capability queries report false across the board.
type lexicalEngine struct {
	lang    string
	model   string
	lexicon map[string]struct{}
}

func newLexicalEngine(lang, model string, lexicon map[string]struct{}) *lexicalEngine {
	return &lexicalEngine{lang: lang, model: model, lexicon: lexicon}
}

func (e *lexicalEngine) Language() string { return e.lang }

func (e *lexicalEngine) Model() string { return e.model }

func (e *lexicalEngine) Supports(string) bool { return false }

func (e *lexicalEngine) Parse(ctx context.Context, text string) (*Doc, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse canceled: %w", err)
	}
	tokens := e.tokenize(text)
	return NewDoc(text, tokens, sentenceSpans(tokens), nil, nil), nil
}

// tokenize splits text into word tokens and single-rune punctuation tokens.
// Words keep interior apostrophes and hyphens so contractions and compounds
// survive as single tokens.
func (e *lexicalEngine) tokenize(text string) []Token {
	var tokens []Token
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			start := i
			for i < len(runes) && isWordRune(runes, i) {
				i++
			}
			tokens = append(tokens, e.wordToken(string(runes[start:i])))
		default:
			tokens = append(tokens, Token{Text: string(r), POS: "PUNCT"})
			i++
		}
	}
	return tokens
}

func isWordRune(runes []rune, i int) bool {
	r := runes[i]
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	// Interior apostrophe or hyphen joined on both sides by word runes.
	if r == '\'' || r == '’' || r == '-' {
		return i > 0 && i+1 < len(runes) &&
			(unicode.IsLetter(runes[i-1]) || unicode.IsDigit(runes[i-1])) &&
			(unicode.IsLetter(runes[i+1]) || unicode.IsDigit(runes[i+1]))
	}
	return false
}

func (e *lexicalEngine) wordToken(text string) Token {
	lower := lowerString(text)
	_, stop := e.lexicon[lower]
	return Token{
		Text:    text,
		Lemma:   lower,
		IsAlpha: isAlphaWord(text),
		IsStop:  stop,
	}
}

func lowerString(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		out = append(out, unicode.ToLower(r))
	}
	return string(out)
}
