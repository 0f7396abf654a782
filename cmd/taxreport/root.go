package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/taxreport/internal/config"
	"github.com/crimson-sun/taxreport/internal/engine"
	"github.com/crimson-sun/taxreport/internal/logging"
	"github.com/crimson-sun/taxreport/internal/output"
	"github.com/crimson-sun/taxreport/internal/output/htmlreport"
	"github.com/crimson-sun/taxreport/internal/output/multi"
	"github.com/crimson-sun/taxreport/internal/output/ndjson"
	"github.com/crimson-sun/taxreport/internal/pipeline"
	"github.com/crimson-sun/taxreport/internal/stream"
)

var version = "dev"

// flags holds command line values; only flags that were set override config.
type flags struct {
	configPath        string
	topN              int
	classifierVersion string
	databaseDate      string
	format            string
	jsonPath          string
	logLevel          string
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "taxreport <kreport> <taxdump> <out> [topN] [version date]",
		Short: "Render a taxonomic classification report as an annotated HTML table",
		Long: `Read a kraken-style classification report and a taxonomy dump, keep the
top N most abundant taxa, test each for enrichment relative to its share of
the reference database, and write an HTML (or NDJSON) report.

Paths may be "-" for stdin/stdout. Compressed inputs are detected
automatically; outputs ending in .gz are gzip-compressed.`,
		Example: `  taxreport sample.kreport nt.taxdump report.html
  taxreport sample.kreport.gz nt.taxdump.gz report.html 30 1.0.4 2024-03-01
  taxreport --format json --top 50 sample.kreport nt.taxdump -`,
		Version:       version,
		Args:          positionalArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f, args)
			if err != nil {
				return err
			}
			out := args[2]
			logging.Init(out == stream.Stdio, logging.ParseLevel(cfg.LogLevel))

			eng := engine.New(
				engine.WithTopN(cfg.Engine.TopN),
				engine.WithClassifierVersion(cfg.Engine.ClassifierVersion),
				engine.WithDatabaseDate(cfg.Engine.DatabaseDate),
			)
			p := pipeline.New(eng, openOutputs(cfg.Output, out))
			_, err = p.Run(cmd.Context(), pipeline.Paths{Report: args[0], Taxonomy: args[1]})
			return err
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "YAML config file (default $TAXREPORT_CONFIG)")
	fl.IntVarP(&f.topN, "top", "n", engine.DefaultTopN, "number of most abundant taxa to report")
	fl.StringVar(&f.classifierVersion, "classifier-version", "", "classifier version shown in the footer")
	fl.StringVar(&f.databaseDate, "db-date", "", "reference database download date shown in the footer")
	fl.StringVarP(&f.format, "format", "f", config.FormatHTML, "report format: html or json")
	fl.StringVar(&f.jsonPath, "json", "", "also write the report as NDJSON to this path")
	fl.StringVar(&f.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	return cmd
}

// positionalArgs accepts <kreport> <taxdump> <out>, optionally followed by
// topN, and then by the classifier version and database date as a pair.
func positionalArgs(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 3, 4, 6:
		return nil
	case 5:
		return fmt.Errorf("classifier version and database date must be given together")
	default:
		return fmt.Errorf("accepts 3, 4 or 6 arg(s), received %d", len(args))
	}
}

// resolveConfig layers environment, config file, positional arguments and
// explicitly set flags, in increasing precedence.
func resolveConfig(cmd *cobra.Command, f flags, args []string) (config.Config, error) {
	cfg := config.Load()

	path := config.File()
	if f.configPath != "" {
		path = f.configPath
	}
	if path != "" {
		var err error
		if cfg, err = config.LoadFile(path, cfg); err != nil {
			return cfg, err
		}
	}

	if len(args) >= 4 {
		n, err := strconv.Atoi(args[3])
		if err != nil {
			return cfg, fmt.Errorf("topN %q: not an integer", args[3])
		}
		cfg.Engine.TopN = n
	}
	if len(args) == 6 {
		cfg.Engine.ClassifierVersion = args[4]
		cfg.Engine.DatabaseDate = args[5]
	}

	fl := cmd.Flags()
	if fl.Changed("top") {
		cfg.Engine.TopN = f.topN
	}
	if fl.Changed("classifier-version") {
		cfg.Engine.ClassifierVersion = f.classifierVersion
	}
	if fl.Changed("db-date") {
		cfg.Engine.DatabaseDate = f.databaseDate
	}
	if fl.Changed("format") {
		cfg.Output.Format = f.format
	}
	if fl.Changed("json") {
		cfg.Output.JSONPath = f.jsonPath
	}
	if fl.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	return cfg, cfg.Validate()
}

// openOutputs returns the pipeline's output factory for the configured
// format, adding an NDJSON copy when a JSON path is set.
func openOutputs(cfg config.OutputConfig, path string) pipeline.OpenFunc {
	return func() (output.Output, error) {
		w, err := stream.Create(path)
		if err != nil {
			return nil, err
		}
		var primary output.Output
		if cfg.Format == config.FormatJSON {
			primary = ndjson.New(w)
		} else {
			primary = htmlreport.New(w)
		}
		if cfg.JSONPath == "" {
			return primary, nil
		}

		jw, err := stream.Create(cfg.JSONPath)
		if err != nil {
			primary.Close()
			return nil, err
		}
		return multi.New(primary, ndjson.New(jw)), nil
	}
}
