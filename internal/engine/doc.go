// Package engine produces the parsed-text representation shared by all
// analyzers in a pipeline run. A Provider caches one Engine per language
// code; each Engine tokenizes and annotates text into a Doc.
package engine

// Annotation kinds a Doc may carry. Analyzers check these before reading
// the corresponding token fields.
const (
	AnnotationPOS = "POS"
	AnnotationNER = "NER"
	AnnotationDep = "DEP"
)

// Capabilities an Engine can report via Supports.
const (
	CapabilityPOSTags         = "pos_tags"
	CapabilityNamedEntities   = "named_entities"
	CapabilityDependencyParse = "dependency_parse"
)

// Token is one tokenized unit of the input text.
type Token struct {
	Text    string
	Lemma   string // lowercased base form; falls back to the lowercased text
	Tag     string // tagger-native tag (Penn Treebank for the English engine)
	POS     string // coarse universal POS class mapped from Tag
	Dep     string // dependency relation, set only by parser-backed engines
	Head    int    // token index of the syntactic head, valid with Dep
	IsAlpha bool
	IsStop  bool
}

// Sentence is a half-open token index range [Start, End).
type Sentence struct {
	Start int
	End   int
}

// Entity is a named entity span recognized by the engine.
type Entity struct {
	Text  string
	Label string
}

// Doc is the parsed representation of one input text. It is created once
// per pipeline run and shared read-only across all analyzer goroutines;
// callers must not mutate the returned slices.
type Doc struct {
	text        string
	tokens      []Token
	sentences   []Sentence
	entities    []Entity
	annotations map[string]bool
}

// NewDoc assembles a Doc. Engines (and tests) are the only callers.
func NewDoc(text string, tokens []Token, sentences []Sentence, entities []Entity, annotations []string) *Doc {
	set := make(map[string]bool, len(annotations))
	for _, a := range annotations {
		set[a] = true
	}
	return &Doc{
		text:        text,
		tokens:      tokens,
		sentences:   sentences,
		entities:    entities,
		annotations: set,
	}
}

// Text returns the original input text.
func (d *Doc) Text() string { return d.text }

// Tokens returns the token slice. Read-only by convention.
func (d *Doc) Tokens() []Token { return d.tokens }

// Sentences returns the sentence spans. Read-only by convention.
func (d *Doc) Sentences() []Sentence { return d.sentences }

// Entities returns recognized named entities. Read-only by convention.
func (d *Doc) Entities() []Entity { return d.entities }

// HasAnnotation reports whether the engine produced the given annotation
// layer for this Doc.
func (d *Doc) HasAnnotation(kind string) bool { return d.annotations[kind] }
