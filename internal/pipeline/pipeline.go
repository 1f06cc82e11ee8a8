// Package pipeline orchestrates one analysis run: resolve the language,
// parse the text once, fan the parsed document out to the active analyzers
// concurrently, and stamp provenance onto every result.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lexiscan/lexiscan/internal/analysis"
	"github.com/lexiscan/lexiscan/internal/engine"
	"github.com/lexiscan/lexiscan/internal/language"
	"github.com/lexiscan/lexiscan/internal/registry"
	"github.com/lexiscan/lexiscan/internal/source"
)

// lowConfidenceThreshold is the resolver confidence below which a warning is
// attached to the run.
const lowConfidenceThreshold = 0.6

// Config selects and tunes the analyzers for one run. The zero value runs
// every registered analyzer against auto-detected language.
type Config struct {
	// Enabled names the analyzers to run. Empty means all registered.
	Enabled []string
	// Disabled removes analyzers from the active set. Disabling wins over
	// every other selection mechanism, including capability injection.
	Disabled []string
	// EnableEmbeddings and EnableSentiment override list membership for
	// their analyzer when set. They act after Enabled/Disabled are applied.
	EnableEmbeddings *bool
	EnableSentiment  *bool

	// LanguageOverride forces the language, skipping detection.
	LanguageOverride string
	// DefaultLanguage is used when no override is given, skipping detection.
	DefaultLanguage string
	// AutoInstall permits installing missing model data on demand.
	AutoInstall bool
	// PreloadLanguages are warmed before the run. Failures become warnings.
	PreloadLanguages []string
}

// Run is the complete outcome of one pipeline invocation. Doc is retained so
// callers can feed the parsed text to exporters.
type Run struct {
	Doc      *engine.Doc
	Results  []analysis.Result
	Language analysis.LanguageContext
	Timing   analysis.Timing
	Warnings []string
}

// Pipeline wires the registry, engine provider, and language resolver into a
// single orchestrator. Safe for concurrent use.
type Pipeline struct {
	registry *registry.Registry
	engines  *engine.Provider
	resolver *language.Resolver
	logger   *zap.Logger
}

// New assembles a Pipeline.
func New(reg *registry.Registry, engines *engine.Provider, resolver *language.Resolver, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{registry: reg, engines: engines, resolver: resolver, logger: logger}
}

// AnalyzeText runs the active analyzers over one text. Analyzer errors and
// panics degrade to per-analyzer unsupported results; only language
// resolution, engine loading, parsing, and cancellation fail the run.
func (p *Pipeline) AnalyzeText(ctx context.Context, text string, cfg Config) (*Run, error) {
	runsTotal.Inc()
	run := &Run{
		Timing: analysis.Timing{RunID: uuid.NewString(), StartedAt: time.Now()},
	}
	logger := p.logger.With(zap.String("run_id", run.Timing.RunID))

	for _, err := range p.engines.Preload(cfg.PreloadLanguages, cfg.AutoInstall) {
		run.Warnings = append(run.Warnings, err.Error())
	}

	code, confidence := p.resolver.Resolve(text, cfg.LanguageOverride, cfg.DefaultLanguage)
	if confidence < lowConfidenceThreshold {
		warning := fmt.Sprintf("language detection confidence %.2f for %q is low", confidence, code)
		logger.Warn("low language confidence", zap.String("language", code), zap.Float64("confidence", confidence))
		run.Warnings = append(run.Warnings, warning)
	}

	eng, err := p.engines.Engine(code, cfg.AutoInstall)
	if err != nil {
		runErrorsTotal.Inc()
		return nil, err
	}
	run.Language = analysis.LanguageContext{Code: code, Confidence: confidence, Model: eng.Model()}

	doc, err := eng.Parse(ctx, text)
	if err != nil {
		runErrorsTotal.Inc()
		return nil, fmt.Errorf("parse text: %w", err)
	}
	run.Doc = doc

	active, warnings := p.activeAnalyzers(cfg, eng)
	run.Warnings = append(run.Warnings, warnings...)
	logger.Debug("active analyzers resolved", zap.Int("count", len(active)))

	results := make([]analysis.Result, len(active))
	var wg sync.WaitGroup
	for i, a := range active {
		wg.Add(1)
		go func(i int, a analysis.Analyzer) {
			defer wg.Done()
			results[i] = p.runOne(ctx, a, doc, code, logger)
		}(i, a)
	}
	wg.Wait()

	if ctx.Err() != nil {
		runErrorsTotal.Inc()
		return nil, &PipelineCancelledError{RunID: run.Timing.RunID, Reason: ctx.Err()}
	}

	for i := range results {
		results[i] = Inject(results[i], run.Language)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	run.Results = results

	run.Timing.EndedAt = time.Now()
	run.Timing.Total = run.Timing.EndedAt.Sub(run.Timing.StartedAt)
	runDuration.Observe(run.Timing.Total.Seconds())
	logger.Info("pipeline run complete",
		zap.String("language", code),
		zap.Int("analyzers", len(results)),
		zap.Duration("total", run.Timing.Total))
	return run, nil
}

// AnalyzeSource retrieves text from a source, analyzes it, and writes the
// resolved language back onto the returned content record.
func (p *Pipeline) AnalyzeSource(ctx context.Context, src source.TextSource, cfg Config) (*source.Content, *Run, error) {
	content, err := src.GetText(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("get text: %w", err)
	}
	run, err := p.AnalyzeText(ctx, content.Text, cfg)
	if err != nil {
		return nil, nil, err
	}
	content.Language = run.Language.Code
	content.LanguageConfidence = run.Language.Confidence
	return content, run, nil
}

// runOne executes a single analyzer, converting errors and panics into
// unsupported results so one analyzer cannot take down the run.
func (p *Pipeline) runOne(ctx context.Context, a analysis.Analyzer, doc *engine.Doc, lang string, logger *zap.Logger) (res analysis.Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			analyzerFailuresTotal.WithLabelValues(a.Name()).Inc()
			logger.Error("analyzer panicked", zap.String("analyzer", a.Name()), zap.Any("panic", r))
			res = analysis.Unsupported(a.Name(), a.Kind(), fmt.Sprintf("analyzer panicked: %v", r), time.Since(start))
		}
	}()

	res, err := a.Analyze(ctx, doc, lang)
	if err != nil {
		analyzerFailuresTotal.WithLabelValues(a.Name()).Inc()
		logger.Warn("analyzer failed", zap.String("analyzer", a.Name()), zap.Error(err))
		return analysis.Unsupported(a.Name(), a.Kind(), err.Error(), time.Since(start))
	}
	return res
}

// activeAnalyzers computes the ordered analyzer set for a run: the enabled
// list (default: the whole registry) minus disabled names, then the
// embeddings/sentiment toggles, then capability-based injection of the
// dependency analyzer. Disabled names stay out no matter what added them.
func (p *Pipeline) activeAnalyzers(cfg Config, eng engine.Engine) ([]analysis.Analyzer, []string) {
	var warnings []string

	names := cfg.Enabled
	if len(names) == 0 {
		names = p.registry.Names()
	}

	disabled := make(map[string]bool, len(cfg.Disabled))
	for _, name := range cfg.Disabled {
		disabled[name] = true
	}

	var active []string
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if disabled[name] || seen[name] {
			continue
		}
		seen[name] = true
		active = append(active, name)
	}

	active = applyToggle(active, seen, disabled, "embeddings", cfg.EnableEmbeddings)
	active = applyToggle(active, seen, disabled, "sentiment", cfg.EnableSentiment)

	if eng.Supports(engine.CapabilityDependencyParse) && !seen["dependency"] && !disabled["dependency"] {
		seen["dependency"] = true
		active = append(active, "dependency")
	}

	var analyzers []analysis.Analyzer
	for _, name := range active {
		desc, err := p.registry.Lookup(name)
		if err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		a, err := desc.Factory()
		if err != nil {
			p.logger.Debug("analyzer factory failed, skipping", zap.String("analyzer", name), zap.Error(err))
			continue
		}
		analyzers = append(analyzers, a)
	}
	return analyzers, warnings
}

// applyToggle forces one analyzer in or out of the active set. A true toggle
// adds the analyzer unless it is disabled; a false toggle removes it.
func applyToggle(active []string, seen, disabled map[string]bool, name string, toggle *bool) []string {
	if toggle == nil {
		return active
	}
	if *toggle {
		if !seen[name] && !disabled[name] {
			seen[name] = true
			active = append(active, name)
		}
		return active
	}
	if seen[name] {
		seen[name] = false
		out := active[:0]
		for _, n := range active {
			if n != name {
				out = append(out, n)
			}
		}
		return out
	}
	return active
}
