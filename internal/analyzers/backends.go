package analyzers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// EmbeddingBackend produces a dense vector for a text. Provenance identifies
// the backend and model so results can be traced to the producing service.
type EmbeddingBackend interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	Provenance() map[string]any
}

// BackendConfig carries the settings shared by all embedding backends.
type BackendConfig struct {
	Name     string
	Model    string
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// NewEmbeddingBackend builds the named backend. Known names are "ollama"
// and "openai".
func NewEmbeddingBackend(cfg BackendConfig) (EmbeddingBackend, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	client := &http.Client{Timeout: cfg.Timeout}
	switch cfg.Name {
	case "ollama":
		endpoint := cfg.Endpoint
		if endpoint == "" {
			endpoint = "http://localhost:11434"
		}
		model := cfg.Model
		if model == "" {
			model = "nomic-embed-text"
		}
		return &ollamaBackend{client: client, endpoint: endpoint, model: model}, nil
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai backend requires an API key")
		}
		endpoint := cfg.Endpoint
		if endpoint == "" {
			endpoint = "https://api.openai.com/v1"
		}
		model := cfg.Model
		if model == "" {
			model = "text-embedding-3-small"
		}
		return &openaiBackend{client: client, endpoint: endpoint, model: model, apiKey: cfg.APIKey}, nil
	default:
		return nil, fmt.Errorf("unknown embedding backend %q", cfg.Name)
	}
}

// ollamaBackend calls a local Ollama server's embeddings endpoint.
type ollamaBackend struct {
	client   *http.Client
	endpoint string
	model    string
}

func (b *ollamaBackend) Provenance() map[string]any {
	return map[string]any{"backend": "ollama", "model": b.model, "endpoint": b.endpoint}
}

func (b *ollamaBackend) Embed(ctx context.Context, text string) ([]float64, error) {
	payload, err := json.Marshal(map[string]string{"model": b.model, "prompt": text})
	if err != nil {
		return nil, fmt.Errorf("encode embeddings request: %w", err)
	}
	url := strings.TrimRight(b.endpoint, "/") + "/api/embeddings"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build embeddings request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call ollama: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("ollama returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out struct {
		Embedding []float64 `json:"embedding"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode embeddings response: %w", err)
	}
	if len(out.Embedding) == 0 {
		return nil, fmt.Errorf("ollama returned an empty embedding")
	}
	return out.Embedding, nil
}

// openaiBackend calls the OpenAI embeddings API. Error messages never carry
// the API key; redactSecret scrubs it if a transport error echoes the
// request.
type openaiBackend struct {
	client   *http.Client
	endpoint string
	model    string
	apiKey   string
}

func (b *openaiBackend) Provenance() map[string]any {
	return map[string]any{"backend": "openai", "model": b.model}
}

func (b *openaiBackend) Embed(ctx context.Context, text string) ([]float64, error) {
	payload, err := json.Marshal(map[string]any{"model": b.model, "input": text})
	if err != nil {
		return nil, fmt.Errorf("encode embeddings request: %w", err)
	}
	url := strings.TrimRight(b.endpoint, "/") + "/embeddings"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build embeddings request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call openai: %s", redactSecret(err.Error(), b.apiKey))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		msg := redactSecret(strings.TrimSpace(string(body)), b.apiKey)
		return nil, fmt.Errorf("openai returned %d: %s", resp.StatusCode, msg)
	}

	var out struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode embeddings response: %w", err)
	}
	if len(out.Data) == 0 || len(out.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("openai returned an empty embedding")
	}
	return out.Data[0].Embedding, nil
}

func redactSecret(msg, secret string) string {
	if secret == "" {
		return msg
	}
	return strings.ReplaceAll(msg, secret, "[redacted]")
}
