package pipeline

import "github.com/lexiscan/lexiscan/internal/analysis"

// Inject stamps language and model provenance onto a result. It is pure and
// idempotent: the input is not mutated, analyzer-provided metadata keys other
// than "language" and "model" survive, and an empty name defaults to the
// analyzer kind.
func Inject(res analysis.Result, lc analysis.LanguageContext) analysis.Result {
	meta := make(map[string]any, len(res.Metadata)+2)
	for k, v := range res.Metadata {
		meta[k] = v
	}
	meta["language"] = map[string]any{
		"code":       lc.Code,
		"confidence": lc.Confidence,
	}
	meta["model"] = lc.Model

	out := res
	out.Metadata = meta
	if out.Name == "" {
		out.Name = string(out.Kind)
	}
	return out
}
