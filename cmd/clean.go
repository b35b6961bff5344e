package main

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/therapistindex/directory-cli/internal/config"
	"github.com/therapistindex/directory-cli/internal/filter"
	"github.com/therapistindex/directory-cli/internal/ingest"
	"github.com/therapistindex/directory-cli/internal/pipeline"
	"github.com/therapistindex/directory-cli/internal/scrape"
)

var (
	cleanInput          string
	cleanOutput         string
	cleanOutputFilename string
	cleanValidateURLs   int
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Filter, dedupe, and standardize raw listings",
	RunE: func(cmd *cobra.Command, args []string) error {
		listings, err := ingest.Load(cleanInput)
		if err != nil {
			return err
		}
		zap.L().Info("clean: loaded", zap.Int("records", len(listings)))

		kw, err := config.LoadFilterKeywords(cfg.Keywords.Dir)
		if err != nil {
			return err
		}

		var prober scrape.Prober
		if cleanValidateURLs > 0 {
			prober = scrape.NewHTTPRetriever(cfg.Scrape)
		}

		cleaner := pipeline.NewCleaner(filter.New(kw), prober)
		out, report, err := cleaner.Clean(cmd.Context(), listings, cleanValidateURLs)
		if err != nil {
			return err
		}

		path := filepath.Join(cleanOutput, cleanOutputFilename)
		if err := ingest.Write(path, out); err != nil {
			return err
		}
		zap.L().Info("clean: written",
			zap.String("path", path),
			zap.Int("records", report.Output),
		)
		return nil
	},
}

func init() {
	cleanCmd.Flags().StringVarP(&cleanInput, "input", "i", "", "raw CSV file or directory of CSVs")
	cleanCmd.Flags().StringVarP(&cleanOutput, "output", "o", "", "output directory for the cleaned CSV")
	cleanCmd.Flags().StringVar(&cleanOutputFilename, "output-filename", "therapists_cleaned.csv", "name of the output CSV file")
	cleanCmd.Flags().IntVar(&cleanValidateURLs, "validate-urls", 0, "check up to N websites for reachability (0 = skip)")
	_ = cleanCmd.MarkFlagRequired("input")
	_ = cleanCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(cleanCmd)
}
