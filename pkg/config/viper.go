// Package config initializes the application's configuration. It uses the
// Viper library to read settings from a config file and environment
// variables, providing a unified configuration system.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings is the resolved application configuration, decoupled from viper
// so the rest of the code never touches viper directly.
type Settings struct {
	LogLevel    string
	Development bool

	DataDir            string
	ModelsAutoDownload bool
	LanguagesPreload   []string
	DefaultLanguage    string

	Format    string
	OutputDir string

	TimeoutSeconds int
	RespectRobots  bool
	UserAgent      string
	MaxRetries     int
	RateLimit      time.Duration

	EmbeddingsBackend  string
	EmbeddingsModel    string
	EmbeddingsEndpoint string
	OpenAIAPIKey       string

	APIAddr string
}

// Timeout returns the configured request timeout as a duration.
func (s Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Load initializes viper with defaults, search paths, and the LEXISCAN
// environment prefix, then resolves the Settings. A missing config file is
// not an error; defaults and environment variables are enough.
func Load() (Settings, error) {
	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/lexiscan/")
	viper.AddConfigPath("$HOME/.lexiscan")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.development", false)

	viper.SetDefault("models.data_dir", defaultDataDir())
	viper.SetDefault("models.auto_download", false)
	viper.SetDefault("models.preload", []string{})
	viper.SetDefault("language.default", "")

	viper.SetDefault("output.format", "json")
	viper.SetDefault("output.dir", "")

	viper.SetDefault("fetch.timeout_seconds", 15)
	viper.SetDefault("fetch.respect_robots", true)
	viper.SetDefault("fetch.user_agent", "")
	viper.SetDefault("fetch.max_retries", 2)
	viper.SetDefault("fetch.rate_limit", "1s")

	viper.SetDefault("embeddings.backend", "ollama")
	viper.SetDefault("embeddings.model", "")
	viper.SetDefault("embeddings.endpoint", "")
	viper.SetDefault("embeddings.openai_api_key", "")

	viper.SetDefault("api.addr", ":8080")

	viper.SetEnvPrefix("LEXISCAN") // e.g. LEXISCAN_MODELS_AUTO_DOWNLOAD=true
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Settings{}, fmt.Errorf("read config file: %w", err)
		}
	}

	return Settings{
		LogLevel:           viper.GetString("log.level"),
		Development:        viper.GetBool("log.development"),
		DataDir:            viper.GetString("models.data_dir"),
		ModelsAutoDownload: viper.GetBool("models.auto_download"),
		LanguagesPreload:   viper.GetStringSlice("models.preload"),
		DefaultLanguage:    viper.GetString("language.default"),
		Format:             viper.GetString("output.format"),
		OutputDir:          viper.GetString("output.dir"),
		TimeoutSeconds:     viper.GetInt("fetch.timeout_seconds"),
		RespectRobots:      viper.GetBool("fetch.respect_robots"),
		UserAgent:          viper.GetString("fetch.user_agent"),
		MaxRetries:         viper.GetInt("fetch.max_retries"),
		RateLimit:          viper.GetDuration("fetch.rate_limit"),
		EmbeddingsBackend:  viper.GetString("embeddings.backend"),
		EmbeddingsModel:    viper.GetString("embeddings.model"),
		EmbeddingsEndpoint: viper.GetString("embeddings.endpoint"),
		OpenAIAPIKey:       viper.GetString("embeddings.openai_api_key"),
		APIAddr:            viper.GetString("api.addr"),
	}, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lexiscan/models"
	}
	return filepath.Join(home, ".lexiscan", "models")
}
