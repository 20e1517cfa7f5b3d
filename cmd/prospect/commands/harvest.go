package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/prospect/internal/harvester"
	"github.com/jmylchreest/prospect/internal/logger"
	"github.com/jmylchreest/prospect/pkg/fetcher"
	"github.com/jmylchreest/prospect/pkg/pipeline"
	"github.com/jmylchreest/prospect/pkg/profile"
)

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Fetch and harvest profile pages into raw extraction documents",
	Long: `Harvest fetches profile pages, slices them into heading-anchored
sections, and emits raw extraction documents. With --normalize the
documents are run through the pipeline and candidate records are
emitted instead.

Examples:
  # Harvest raw extractions from live pages
  prospect harvest -u "https://example.com/in/jane" -o extraction.json

  # Straight to normalized records, using a headless browser
  prospect harvest -u "https://example.com/in/jane" \
      --fetch-mode dynamic --normalize --format csv`,
	RunE: runHarvest,
}

func init() {
	rootCmd.AddCommand(harvestCmd)

	flags := harvestCmd.Flags()
	flags.StringSliceP("url", "u", nil, "URL(s) to harvest (required)")
	flags.String("fetch-mode", "static", "fetch mode: static, dynamic")
	flags.Duration("timeout", 30*time.Second, "request timeout")
	flags.String("wait-for", "", "CSS selector to wait for (dynamic mode)")
	flags.Duration("delay", 200*time.Millisecond, "delay between requests")
	flags.Bool("normalize", false, "run the pipeline and emit candidate records")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "json", "output format: json, jsonl, yaml, csv (csv requires --normalize)")

	_ = harvestCmd.MarkFlagRequired("url")
}

func runHarvest(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	urls, _ := cmd.Flags().GetStringSlice("url")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	delay, _ := cmd.Flags().GetDuration("delay")
	waitFor, _ := cmd.Flags().GetString("wait-for")

	f, err := newFetcher(cmd, timeout)
	if err != nil {
		logError("%v", err)
		return err
	}
	defer func() { _ = f.Close() }()

	h := harvester.New()
	var docs []*profile.RawExtraction
	for i, url := range urls {
		if i > 0 && delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		logInfo("Fetching %s", url)
		content, err := f.Fetch(ctx, url, fetcher.Options{
			Timeout:         timeout,
			WaitForSelector: waitFor,
		})
		if err != nil {
			logError("fetching %s: %v", url, err)
			continue
		}

		doc, err := h.Harvest(content, time.Now().UTC())
		if err != nil {
			logError("harvesting %s: %v", url, err)
			continue
		}
		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		return fmt.Errorf("no pages harvested")
	}
	logInfo("Harvested %d page(s)", len(docs))

	writer, closeFn, err := openWriter(cmd)
	if err != nil {
		logError("%v", err)
		return err
	}
	defer closeFn()

	if normalize, _ := cmd.Flags().GetBool("normalize"); normalize {
		results := pipeline.New().NormalizeBatch(docs, time.Now().UTC())
		for _, res := range results {
			if res.Profile == nil {
				logInfo("Rejected %s: %s", docs[res.Index].SourceURL, res.RejectedReason)
				continue
			}
			if err := writer.Write(res.Profile); err != nil {
				return err
			}
		}
		return writer.Flush()
	}

	for _, doc := range docs {
		if err := writer.Write(doc); err != nil {
			return err
		}
	}
	return writer.Flush()
}

func newFetcher(cmd *cobra.Command, timeout time.Duration) (fetcher.Fetcher, error) {
	mode, _ := cmd.Flags().GetString("fetch-mode")
	switch mode {
	case "static":
		return fetcher.NewStatic(fetcher.StaticConfig{Timeout: timeout}), nil
	case "dynamic":
		return fetcher.NewDynamic(fetcher.DynamicConfig{Timeout: timeout})
	default:
		return nil, fmt.Errorf("unknown fetch mode: %s (available: static, dynamic)", mode)
	}
}
