// Package report shapes a pipeline run into the serializable output written
// by the CLI and the HTTP API.
package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/lexiscan/lexiscan/internal/analysis"
	"github.com/lexiscan/lexiscan/internal/pipeline"
	"github.com/lexiscan/lexiscan/internal/source"
)

// AnalyzerReport is one analyzer's result in wire form.
type AnalyzerReport struct {
	Name              string         `json:"name"`
	Kind              string         `json:"kind"`
	Results           map[string]any `json:"results"`
	ProcessingSeconds float64        `json:"processing_seconds"`
	Confidence        float64        `json:"confidence"`
	Metadata          map[string]any `json:"metadata,omitempty"`
}

// LanguageReport is the resolved language in wire form.
type LanguageReport struct {
	Code       string  `json:"code"`
	Confidence float64 `json:"confidence"`
	Model      string  `json:"model"`
}

// TimingReport is the run's wall-clock record in wire form.
type TimingReport struct {
	RunID        string    `json:"run_id"`
	StartedAt    time.Time `json:"started_at"`
	EndedAt      time.Time `json:"ended_at"`
	TotalSeconds float64   `json:"total_seconds"`
}

// Report is the complete output document for one analysis run.
type Report struct {
	Content   *source.Content  `json:"content"`
	Language  LanguageReport   `json:"language"`
	Analyzers []AnalyzerReport `json:"analyzers"`
	Warnings  []string         `json:"warnings,omitempty"`
	Timing    TimingReport     `json:"timing"`
}

// Build assembles the report for one run. Results arrive sorted by name from
// the pipeline and keep that order.
func Build(content *source.Content, run *pipeline.Run) *Report {
	analyzers := make([]AnalyzerReport, 0, len(run.Results))
	for _, res := range run.Results {
		analyzers = append(analyzers, toAnalyzerReport(res))
	}
	return &Report{
		Content: content,
		Language: LanguageReport{
			Code:       run.Language.Code,
			Confidence: run.Language.Confidence,
			Model:      run.Language.Model,
		},
		Analyzers: analyzers,
		Warnings:  run.Warnings,
		Timing: TimingReport{
			RunID:        run.Timing.RunID,
			StartedAt:    run.Timing.StartedAt,
			EndedAt:      run.Timing.EndedAt,
			TotalSeconds: run.Timing.Total.Seconds(),
		},
	}
}

func toAnalyzerReport(res analysis.Result) AnalyzerReport {
	return AnalyzerReport{
		Name:              res.Name,
		Kind:              string(res.Kind),
		Results:           res.Results,
		ProcessingSeconds: res.ProcessingTime.Seconds(),
		Confidence:        res.Confidence,
		Metadata:          res.Metadata,
	}
}

// WriteJSON streams the report as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
