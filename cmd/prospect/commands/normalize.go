package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/prospect/internal/logger"
	"github.com/jmylchreest/prospect/internal/output"
	"github.com/jmylchreest/prospect/pkg/pipeline"
	"github.com/jmylchreest/prospect/pkg/profile"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Normalize harvested extraction documents into candidate records",
	Long: `Normalize reads raw extraction documents (JSON or YAML, single
document or JSON array) and emits validated candidate records.

Examples:
  # Normalize a batch into CSV
  prospect normalize -i extractions.json -o candidates.csv --format csv

  # Keep rejection reasons alongside the records
  prospect normalize -i extractions.json --include-rejected --format jsonl`,
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)

	flags := normalizeCmd.Flags()
	flags.StringSliceP("input", "i", nil, "input file(s) with raw extractions (required)")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "json", "output format: json, jsonl, yaml, csv")
	flags.Bool("include-rejected", false, "emit per-document results including rejection reasons")
	flags.Int("min-raw-text", 0, "override the empty-document raw text threshold")
	flags.StringSlice("deny-name", nil, "extra placeholder names to reject")

	_ = normalizeCmd.MarkFlagRequired("input")
}

func runNormalize(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	inputs, _ := cmd.Flags().GetStringSlice("input")
	docs, err := loadDocs(inputs)
	if err != nil {
		logError("%v", err)
		return err
	}
	logInfo("Loaded %d document(s)", len(docs))

	var opts []pipeline.Option
	if n, _ := cmd.Flags().GetInt("min-raw-text"); n > 0 {
		opts = append(opts, pipeline.WithMinRawTextLen(n))
	}
	if names, _ := cmd.Flags().GetStringSlice("deny-name"); len(names) > 0 {
		opts = append(opts, pipeline.WithDenyNames(names...))
	}

	results := pipeline.New(opts...).NormalizeBatch(docs, time.Now().UTC())

	writer, closeFn, err := openWriter(cmd)
	if err != nil {
		logError("%v", err)
		return err
	}
	defer closeFn()

	format, _ := cmd.Flags().GetString("format")
	includeRejected, _ := cmd.Flags().GetBool("include-rejected")
	accepted, rejected, err := writeResults(writer, results, includeRejected, format == string(output.FormatCSV))
	if err != nil {
		return err
	}

	if err := writer.Flush(); err != nil {
		return err
	}
	logInfo("Normalized %d record(s), rejected %d", accepted, rejected)
	return nil
}

// writeResults emits batch results. CSV rows are always profiles: the flat
// record contract has no column for a rejection reason, so rejected entries
// are counted but never written to CSV, even with include-rejected set.
func writeResults(writer output.Writer, results []pipeline.BatchResult, includeRejected, csv bool) (accepted, rejected int, err error) {
	for _, res := range results {
		if res.Profile == nil {
			rejected++
			if includeRejected && !csv {
				if err := writer.Write(res); err != nil {
					return accepted, rejected, err
				}
			}
			continue
		}
		accepted++
		var item any = res.Profile
		if includeRejected && !csv {
			item = res
		}
		if err := writer.Write(item); err != nil {
			return accepted, rejected, err
		}
	}
	return accepted, rejected, nil
}

// loadDocs reads each input file, accepting a single document or a JSON
// array of documents per file.
func loadDocs(paths []string) ([]*profile.RawExtraction, error) {
	var docs []*profile.RawExtraction
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
			var batch []*profile.RawExtraction
			if err := json.Unmarshal(data, &batch); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
			docs = append(docs, batch...)
			continue
		}

		doc, err := profile.FromFile(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// openWriter resolves the output destination and format flags.
func openWriter(cmd *cobra.Command) (output.Writer, func(), error) {
	format, _ := cmd.Flags().GetString("format")
	dest, _ := cmd.Flags().GetString("output")

	w := os.Stdout
	closeFn := func() {}
	if dest != "" {
		f, err := os.Create(dest)
		if err != nil {
			return nil, nil, fmt.Errorf("creating %s: %w", dest, err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}

	writer, err := output.NewWriter(w, output.Format(format))
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return writer, closeFn, nil
}
