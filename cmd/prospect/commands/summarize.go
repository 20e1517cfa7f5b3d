package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/prospect/internal/logger"
	"github.com/jmylchreest/prospect/internal/summary"
	"github.com/jmylchreest/prospect/pkg/record"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Generate recruiter-facing summaries for normalized records",
	Long: `Summarize reads normalized candidate records (JSON) and writes a
short LLM-generated narrative for each to stdout.

The provider is auto-detected from ANTHROPIC_API_KEY or OPENAI_API_KEY
unless --provider is given.

Examples:
  prospect summarize -i candidate.json
  prospect summarize -i candidate.json -p openai -m gpt-4o`,
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	flags := summarizeCmd.Flags()
	flags.StringSliceP("input", "i", nil, "normalized record file(s) (required)")
	flags.StringP("provider", "p", "", "LLM provider: anthropic, openai (auto-detects from env vars)")
	flags.StringP("model", "m", "", "model name (provider-specific)")
	flags.StringP("api-key", "k", "", "API key (or use env var)")

	_ = summarizeCmd.MarkFlagRequired("input")

	_ = viper.BindPFlag("provider", flags.Lookup("provider"))
	_ = viper.BindPFlag("model", flags.Lookup("model"))
	_ = viper.BindPFlag("api_key", flags.Lookup("api-key"))
}

func runSummarize(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	provider, err := resolveProvider()
	if err != nil {
		logError("%v", err)
		return err
	}
	s := summary.NewSummarizer(provider)

	inputs, _ := cmd.Flags().GetStringSlice("input")
	for _, path := range inputs {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		var p record.Profile
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}

		text, err := s.Summarize(ctx, &p)
		if err != nil {
			logError("summarizing %s: %v", path, err)
			continue
		}
		fmt.Println(text)
	}
	return nil
}

func resolveProvider() (summary.Provider, error) {
	name := viper.GetString("provider")
	apiKey := viper.GetString("api_key")

	if name == "" {
		detected, key, err := summary.DetectProvider()
		if err != nil {
			return nil, err
		}
		name = detected
		if apiKey == "" {
			apiKey = key
		}
	}

	cfg := summary.DefaultProviderConfig()
	cfg.APIKey = apiKey
	cfg.Model = viper.GetString("model")
	return summary.NewProvider(name, cfg)
}
