package main

import (
	"fmt"

	"github.com/jonathan/internship-finder/internal/listings"
	"github.com/jonathan/internship-finder/internal/observability"
	"github.com/jonathan/internship-finder/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	scanConfigPath string
	scanResume     string
	scanNoFetch    bool
	scanVerbose    bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Analyze a resume PDF from the command line",
	Long: `Extract skills from a resume PDF, list matching catalog jobs, and query the
configured listing sites, printing the same results the web wizard shows.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanConfigPath, "config", "", "Path to config.json file")
	scanCmd.Flags().StringVarP(&scanResume, "resume", "r", "", "Path to the resume PDF (required)")
	scanCmd.Flags().BoolVar(&scanNoFetch, "no-fetch", false, "Skip external listing sites")
	scanCmd.Flags().BoolVarP(&scanVerbose, "verbose", "v", false, "Print progress information")
	addListingFlags(scanCmd)
	_ = scanCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, scanConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var fetcher *listings.Fetcher
	if !scanNoFetch {
		sources, err := cfg.Sources()
		if err != nil {
			return err
		}
		fetcher = listings.NewFetcher(listings.Config{
			Sources:    sources,
			Timeout:    cfg.FetchTimeout(),
			UseBrowser: cfg.UseBrowser,
		})
	}

	opts := pipeline.ScanOptions{
		ResumePath:  scanResume,
		CatalogPath: cfg.CatalogPath,
		Fetcher:     fetcher,
	}
	if scanVerbose {
		opts.OnProgress = func(e pipeline.ProgressEvent) {
			fmt.Fprintf(cmd.ErrOrStderr(), "[VERBOSE] %s: %s\n", e.Step, e.Message)
		}
	}

	found, suggestions, err := pipeline.Scan(cmd.Context(), opts)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintSkills(found)
	printer.PrintSuggestions(suggestions.Jobs)
	printer.PrintListings(suggestions.Listings)
	return nil
}
