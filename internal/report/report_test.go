package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexiscan/lexiscan/internal/analysis"
	"github.com/lexiscan/lexiscan/internal/pipeline"
	"github.com/lexiscan/lexiscan/internal/source"
)

func sampleRun() *pipeline.Run {
	started := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return &pipeline.Run{
		Results: []analysis.Result{
			{
				Name:           "keywords",
				Kind:           analysis.KindKeywords,
				Results:        map[string]any{"method": "frequency"},
				ProcessingTime: 250 * time.Millisecond,
				Confidence:     1.0,
				Metadata:       map[string]any{"model": "lexiscan_en_prose"},
			},
			{
				Name:           "sentiment",
				Kind:           analysis.KindSentiment,
				Results:        map[string]any{"label": "positive"},
				ProcessingTime: 10 * time.Millisecond,
				Confidence:     0.7,
			},
		},
		Language: analysis.LanguageContext{Code: "en", Confidence: 0.95, Model: "lexiscan_en_prose"},
		Warnings: []string{"something minor"},
		Timing: analysis.Timing{
			RunID:     "run-123",
			StartedAt: started,
			EndedAt:   started.Add(2 * time.Second),
			Total:     2 * time.Second,
		},
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()
	content := &source.Content{Text: "hello there friend", WordCount: 3, CharCount: 18}
	r := Build(content, sampleRun())

	assert.Same(t, content, r.Content)
	assert.Equal(t, "en", r.Language.Code)
	assert.Equal(t, 0.95, r.Language.Confidence)
	require.Len(t, r.Analyzers, 2)
	assert.Equal(t, "keywords", r.Analyzers[0].Name)
	assert.Equal(t, "keywords", r.Analyzers[0].Kind)
	assert.Equal(t, 0.25, r.Analyzers[0].ProcessingSeconds)
	assert.Equal(t, []string{"something minor"}, r.Warnings)
	assert.Equal(t, "run-123", r.Timing.RunID)
	assert.Equal(t, 2.0, r.Timing.TotalSeconds)
}

func TestWriteJSONShape(t *testing.T) {
	t.Parallel()
	content := &source.Content{Text: "hello there friend", WordCount: 3, CharCount: 18}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Build(content, sampleRun())))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "content")
	assert.Contains(t, decoded, "language")
	assert.Contains(t, decoded, "analyzers")
	assert.Contains(t, decoded, "timing")

	timing := decoded["timing"].(map[string]any)
	assert.Equal(t, "run-123", timing["run_id"])
	assert.Equal(t, 2.0, timing["total_seconds"])

	analyzers := decoded["analyzers"].([]any)
	require.Len(t, analyzers, 2)
	first := analyzers[0].(map[string]any)
	assert.Equal(t, "keywords", first["name"])
	assert.Equal(t, 0.25, first["processing_seconds"])
}
