// Package main provides the tuberfind CLI entry point.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ddddgit/KOL/internal/csvout"
	"github.com/ddddgit/KOL/internal/discovery"
	"github.com/ddddgit/KOL/internal/display"
	"github.com/ddddgit/KOL/internal/keywords"
	"github.com/ddddgit/KOL/internal/youtube"
)

// version is stamped at release time via
// go build -ldflags "-X main.version=$(git describe --tags)".
var version = "dev"

// resolveVersion prefers the ldflags-injected version and falls back to the
// module version recorded by go install.
func resolveVersion(injected string, info *debug.BuildInfo) string {
	if injected != "dev" {
		return injected
	}
	if info == nil || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return "dev"
	}
	return info.Main.Version
}

func main() {
	// Load environment variables from .env if present
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger creates the run logger. Progress goes to stderr so stdout stays
// reserved for the report.
func newLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// newRootCmd creates the root command for the tuberfind CLI.
func newRootCmd() *cobra.Command {
	info, _ := debug.ReadBuildInfo()

	rootCmd := &cobra.Command{
		Use:     "tuberfind",
		Short:   "Find YouTube channels by keyword",
		Long:    "Tuberfind searches YouTube for channels matching your keywords, keeps the ones that fit your audience and country filters, and appends them to a CSV file.",
		Version: resolveVersion(version, info),
	}

	rootCmd.SetVersionTemplate("tuberfind version {{.Version}}\n")

	rootCmd.AddCommand(newDiscoverCmd())

	return rootCmd
}

// newDiscoverCmd creates the discover subcommand.
func newDiscoverCmd() *cobra.Command {
	var (
		keywordsFile string
		minSubs      int64
		country      string
		outPath      string
		maxChannels  int
		results      int64
		pages        int
		dedupe       bool
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "discover [keywords...]",
		Short: "Discover channels matching keywords",
		Long:  "Search YouTube for channels matching the given keywords (or the keywords file), filter them by subscriber count and country, and append the survivors to the output CSV.",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(verbose)

			opts := discovery.Options{
				MinSubscribers: minSubs,
				Country:        country,
				MaxChannels:    maxChannels,
				Logger:         log,
			}
			if err := opts.Validate(); err != nil {
				return err
			}

			kws, err := loadKeywords(args, keywordsFile)
			if err != nil {
				return err
			}
			if len(kws) == 0 {
				return fmt.Errorf("no keywords to search: add lines to %s or pass keywords as arguments", keywordsFile)
			}

			apiKey := os.Getenv("YOUTUBE_API_KEY")
			if apiKey == "" {
				return fmt.Errorf("missing API key: set the YOUTUBE_API_KEY environment variable")
			}

			// Interrupts cancel the run; rows appended so far stay on disk
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			clientOpts := []youtube.ClientOption{
				youtube.WithPageSize(results),
				youtube.WithSearchPages(pages),
			}
			if url := os.Getenv("TUBERFIND_API_URL"); url != "" {
				clientOpts = append(clientOpts, youtube.WithEndpoint(url))
			}
			client, err := youtube.NewClient(ctx, apiKey, clientOpts...)
			if err != nil {
				return err
			}

			sinkOpts := []csvout.WriterOption{csvout.WithLogger(log)}
			if dedupe {
				sinkOpts = append(sinkOpts, csvout.WithDedupe())
			}
			sink, err := csvout.Open(outPath, sinkOpts...)
			if err != nil {
				return err
			}
			defer func() { _ = sink.Close() }()

			pipeline, err := discovery.New(client, sink, opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Searching %d keywords...\n", len(kws))

			summary, err := pipeline.Run(ctx, kws)
			if err != nil {
				return err
			}

			// Report, biggest audiences first
			formatter := display.NewTerminalFormatter()
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReport(summary.Records))

			usage := client.Usage()
			log.WithFields(logrus.Fields{
				"keywords":    len(kws),
				"discovered":  summary.Discovered,
				"eligible":    summary.Eligible,
				"written":     sink.Written(),
				"quota_units": usage.Units,
			}).Info("discovery run complete")

			fmt.Fprintf(cmd.OutOrStdout(), "\n%d rows appended to %s (%d quota units spent)\n", sink.Written(), outPath, usage.Units)

			return nil
		},
	}

	cmd.Flags().StringVarP(&keywordsFile, "keywords-file", "f", "keywords.txt", "File with one search keyword per line")
	cmd.Flags().Int64Var(&minSubs, "min-subs", 2000, "Minimum subscriber count to keep a channel")
	cmd.Flags().StringVarP(&country, "country", "c", "", "Keep only channels from this two-letter country code")
	cmd.Flags().StringVarP(&outPath, "out", "o", "channels.csv", "CSV file to append discovered channels to")
	cmd.Flags().IntVarP(&maxChannels, "max-channels", "n", 0, "Stop after this many channels (0 = unlimited)")
	cmd.Flags().Int64Var(&results, "results", 50, "Search results requested per page (1-50)")
	cmd.Flags().IntVar(&pages, "pages", 1, "Search pages fetched per keyword")
	cmd.Flags().BoolVar(&dedupe, "dedupe", false, "Skip channels already present in the output file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

// loadKeywords prefers keywords given on the command line and falls back to
// the keywords file.
func loadKeywords(args []string, path string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	return keywords.LoadFile(path)
}
