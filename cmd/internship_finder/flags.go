package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/internship-finder/internal/config"
)

// loadConfig builds the effective config from defaults, the optional file,
// the environment, and finally any flags the user set.
func loadConfig(cmd *cobra.Command, configPath string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("catalog") {
		cfg.CatalogPath, _ = flags.GetString("catalog")
	}
	if flags.Changed("sources") {
		raw, _ := flags.GetString("sources")
		cfg.ListingSources = splitList(raw)
	}
	if flags.Changed("use-browser") {
		cfg.UseBrowser, _ = flags.GetBool("use-browser")
	}
	if flags.Changed("timeout") {
		cfg.FetchTimeoutSeconds, _ = flags.GetInt("timeout")
	}
	return cfg, nil
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// addListingFlags registers the flags shared by serve and scan.
func addListingFlags(cmd *cobra.Command) {
	cmd.Flags().String("catalog", "", "Path to the job catalog CSV (default ./job_listings.csv)")
	cmd.Flags().String("sources", "", "Comma-separated listing sources (internshala, linkedin)")
	cmd.Flags().Bool("use-browser", false, "Render listing pages with headless Chrome")
	cmd.Flags().Int("timeout", 0, "Listing fetch timeout in seconds (default 15)")
}
