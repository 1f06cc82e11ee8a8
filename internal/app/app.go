// Package app assembles the application's services: configuration, logging,
// the analyzer registry, the engine provider, and the pipeline.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lexiscan/lexiscan/internal/analyzers"
	"github.com/lexiscan/lexiscan/internal/engine"
	"github.com/lexiscan/lexiscan/internal/language"
	"github.com/lexiscan/lexiscan/internal/logging"
	"github.com/lexiscan/lexiscan/internal/pipeline"
	"github.com/lexiscan/lexiscan/internal/registry"
	"github.com/lexiscan/lexiscan/pkg/config"
)

// App holds the wired services shared by all commands.
type App struct {
	Settings config.Settings
	Logger   *zap.Logger
	Registry *registry.Registry
	Engines  *engine.Provider
	Pipeline *pipeline.Pipeline
}

// New loads configuration and wires the service graph.
func New() (*App, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, err := logging.New(settings.Development, settings.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("initialize logging: %w", err)
	}

	reg, err := analyzers.DefaultRegistry(analyzers.Options{
		Embeddings: analyzers.BackendConfig{
			Name:     settings.EmbeddingsBackend,
			Model:    settings.EmbeddingsModel,
			Endpoint: settings.EmbeddingsEndpoint,
			APIKey:   settings.OpenAIAPIKey,
			Timeout:  30 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("build analyzer registry: %w", err)
	}

	engines := engine.NewProvider(settings.DataDir, logger)
	resolver := language.NewResolver(language.WhatlangDetector{}, engine.SupportedLanguages(), logger)

	return &App{
		Settings: settings,
		Logger:   logger,
		Registry: reg,
		Engines:  engines,
		Pipeline: pipeline.New(reg, engines, resolver, logger),
	}, nil
}

// Close flushes buffered log entries.
func (a *App) Close() {
	_ = a.Logger.Sync()
}
