package engine

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

//go:embed data/*.txt
var bundledModels embed.FS

// Engine tokenizes and annotates text for one language. Implementations are
// safe for concurrent Parse calls; the only shared state is loaded model data.
type Engine interface {
	// Parse produces a fresh Doc for the given text.
	Parse(ctx context.Context, text string) (*Doc, error)
	// Supports reports whether the engine provides a capability such as
	// CapabilityNamedEntities or CapabilityDependencyParse.
	Supports(capability string) bool
	// Model returns the model identifier stamped onto result provenance.
	Model() string
	// Language returns the normalized language code the engine serves.
	Language() string
}

// modelCatalog maps supported language codes to their model identifiers.
var modelCatalog = map[string]string{
	"en": "lexiscan_en_prose",
	"de": "lexiscan_de_lexical",
	"es": "lexiscan_es_lexical",
	"fr": "lexiscan_fr_lexical",
}

// SupportedLanguages returns the supported ISO 639-1 codes, sorted.
func SupportedLanguages() []string {
	codes := make([]string, 0, len(modelCatalog))
	for code := range modelCatalog {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ModelFor returns the model identifier for a supported language code.
func ModelFor(code string) (string, error) {
	model, ok := modelCatalog[code]
	if !ok {
		return "", &UnsupportedLanguageError{Code: code, Supported: SupportedLanguages()}
	}
	return model, nil
}

// Provider builds and caches one Engine per language code. The cache is
// shared across all pipeline runs in the process, so mutation is guarded by
// a mutex to avoid duplicate model loads under concurrent requests.
type Provider struct {
	dataDir string
	logger  *zap.Logger

	mu      sync.Mutex
	engines map[string]Engine
}

// NewProvider constructs a Provider whose model data lives under dataDir.
func NewProvider(dataDir string, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		dataDir: dataDir,
		logger:  logger,
		engines: make(map[string]Engine),
	}
}

// Engine returns the cached engine for the given language code, loading it
// on first use. With autoInstall set, missing model data is installed once
// and the load retried.
func (p *Provider) Engine(code string, autoInstall bool) (Engine, error) {
	model, ok := modelCatalog[code]
	if !ok {
		return nil, &UnsupportedLanguageError{Code: code, Supported: SupportedLanguages()}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if eng, ok := p.engines[code]; ok {
		return eng, nil
	}

	lexicon, err := p.loadLexicon(code)
	if err != nil {
		if !autoInstall {
			return nil, &ModelNotInstalledError{
				Code:  code,
				Model: model,
				Remediation: fmt.Sprintf(
					"run `lexiscan models install %s` or pass --auto-download", code),
			}
		}
		p.logger.Info("installing model data", zap.String("language", code), zap.String("model", model))
		if installErr := p.Install(code); installErr != nil {
			return nil, &ModelInstallFailedError{Code: code, Model: model, Err: installErr}
		}
		lexicon, err = p.loadLexicon(code)
		if err != nil {
			return nil, &ModelInstallFailedError{Code: code, Model: model, Err: err}
		}
	}

	var eng Engine
	if code == "en" {
		eng = newProseEngine(lexicon)
	} else {
		eng = newLexicalEngine(code, model, lexicon)
	}
	p.engines[code] = eng
	return eng, nil
}

// Preload eagerly materializes engines for the given codes. Failures do not
// abort; they are returned as warnings for the caller to surface.
func (p *Provider) Preload(codes []string, autoInstall bool) []error {
	var warnings []error
	for _, code := range codes {
		if _, err := p.Engine(code, autoInstall); err != nil {
			p.logger.Warn("preload failed", zap.String("language", code), zap.Error(err))
			warnings = append(warnings, fmt.Errorf("preload %s: %w", code, err))
		}
	}
	return warnings
}

// Install materializes the bundled model data for a language into the data
// directory. Idempotent; installing an already present model rewrites it.
func (p *Provider) Install(code string) error {
	if _, ok := modelCatalog[code]; !ok {
		return &UnsupportedLanguageError{Code: code, Supported: SupportedLanguages()}
	}
	raw, err := bundledModels.ReadFile("data/" + code + ".txt")
	if err != nil {
		return fmt.Errorf("read bundled model data: %w", err)
	}
	if err := os.MkdirAll(p.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	path := filepath.Join(p.dataDir, code+".txt")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write model data: %w", err)
	}
	return nil
}

func (p *Provider) loadLexicon(code string) (map[string]struct{}, error) {
	path := filepath.Join(p.dataDir, code+".txt")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model data %s: %w", path, err)
	}
	lexicon := make(map[string]struct{})
	for _, line := range strings.Split(string(raw), "\n") {
		word := strings.TrimSpace(line)
		if word == "" {
			continue
		}
		lexicon[strings.ToLower(word)] = struct{}{}
	}
	return lexicon, nil
}
