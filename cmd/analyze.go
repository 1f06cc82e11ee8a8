package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lexiscan/lexiscan/internal/pipeline"
	"github.com/lexiscan/lexiscan/internal/report"
	"github.com/lexiscan/lexiscan/internal/source"
	"github.com/lexiscan/lexiscan/pkg/config"
)

type analyzeFlags struct {
	url      string
	file     string
	stdin    bool
	lang     string
	autoDL   bool
	enabled  []string
	disabled []string
	output   string
	embedOn  bool
	sentimOn bool
}

func newAnalyzeCmd() *cobra.Command {
	var flags analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a URL, file, or stdin and write a JSON report.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}

			src, err := pickSource(flags, a.Settings, a.Logger)
			if err != nil {
				return err
			}

			cfg := pipeline.Config{
				Enabled:          flags.enabled,
				Disabled:         flags.disabled,
				LanguageOverride: flags.lang,
				DefaultLanguage:  a.Settings.DefaultLanguage,
				AutoInstall:      flags.autoDL || a.Settings.ModelsAutoDownload,
				PreloadLanguages: a.Settings.LanguagesPreload,
			}
			if cmd.Flags().Changed("enable-embeddings") {
				cfg.EnableEmbeddings = &flags.embedOn
			}
			if cmd.Flags().Changed("enable-sentiment") {
				cfg.EnableSentiment = &flags.sentimOn
			}

			content, run, err := a.Pipeline.AnalyzeSource(cmd.Context(), src, cfg)
			if err != nil {
				return fmt.Errorf("analyze: %w", err)
			}

			out := cmd.OutOrStdout()
			if flags.output != "" {
				f, err := os.Create(flags.output)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer f.Close()
				out = f
				a.Logger.Info("writing report", zap.String("path", flags.output))
			}
			return report.WriteJSON(out, report.Build(content, run))
		},
	}

	cmd.Flags().StringVar(&flags.url, "url", "", "web page to fetch and analyze")
	cmd.Flags().StringVar(&flags.file, "file", "", "local file to analyze")
	cmd.Flags().BoolVar(&flags.stdin, "stdin", false, "read text from standard input")
	cmd.Flags().StringVar(&flags.lang, "lang", "", "force the language (ISO 639-1)")
	cmd.Flags().BoolVar(&flags.autoDL, "auto-download", false, "install missing model data on demand")
	cmd.Flags().StringSliceVar(&flags.enabled, "enable", nil, "analyzers to run (default: all)")
	cmd.Flags().StringSliceVar(&flags.disabled, "disable", nil, "analyzers to exclude")
	cmd.Flags().BoolVar(&flags.embedOn, "enable-embeddings", false, "force the embeddings analyzer on or off")
	cmd.Flags().BoolVar(&flags.sentimOn, "enable-sentiment", false, "force the sentiment analyzer on or off")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the report to a file instead of stdout")

	return cmd
}

// pickSource chooses the text source from the mutually exclusive input flags.
func pickSource(flags analyzeFlags, settings config.Settings, logger *zap.Logger) (source.TextSource, error) {
	selected := 0
	for _, on := range []bool{flags.url != "", flags.file != "", flags.stdin} {
		if on {
			selected++
		}
	}
	if selected != 1 {
		return nil, fmt.Errorf("exactly one of --url, --file, or --stdin is required")
	}
	switch {
	case flags.url != "":
		webCfg := source.WebConfig{
			UserAgent:     settings.UserAgent,
			RespectRobots: settings.RespectRobots,
			Timeout:       settings.Timeout(),
			MaxRetries:    settings.MaxRetries,
			RateLimit:     settings.RateLimit,
		}
		return source.NewWebSource(flags.url, webCfg, logger), nil
	case flags.file != "":
		return source.NewFileSource(flags.file), nil
	default:
		return source.NewReaderSource(os.Stdin, "stdin"), nil
	}
}
