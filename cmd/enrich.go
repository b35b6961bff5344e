package main

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/therapistindex/directory-cli/internal/enrich"
	"github.com/therapistindex/directory-cli/internal/ingest"
	"github.com/therapistindex/directory-cli/internal/scrape"
)

var (
	enrichInput          string
	enrichOutput         string
	enrichOutputFilename string
	enrichResume         bool
	enrichLimit          int
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich cleaned listings from their practice websites",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		listings, err := ingest.Load(enrichInput)
		if err != nil {
			return err
		}
		if enrichLimit > 0 && len(listings) > enrichLimit {
			listings = listings[:enrichLimit]
		}
		zap.L().Info("enrich: loaded", zap.Int("records", len(listings)))

		extractor, err := buildExtractor()
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		retriever := scrape.NewHTTPRetriever(cfg.Scrape)
		enricher := enrich.New(retriever, extractor, st, cfg.Enrich, cfg.Scrape.DelayMs)

		res, err := enricher.Run(ctx, listings, enrichResume)
		if err != nil {
			return err
		}
		zap.L().Info("enrich: batch complete",
			zap.String("run_id", res.Run.ID),
			zap.Int("full", res.Full),
			zap.Int("basic", res.Basic),
			zap.Int("no_content", res.NoContent),
			zap.Int("resumed", res.Resumed),
		)

		path := filepath.Join(enrichOutput, enrichOutputFilename)
		if err := ingest.Write(path, listings); err != nil {
			return err
		}
		zap.L().Info("enrich: written", zap.String("path", path), zap.Int("records", len(listings)))
		return nil
	},
}

func init() {
	enrichCmd.Flags().StringVarP(&enrichInput, "input", "i", "", "cleaned CSV from the clean stage")
	enrichCmd.Flags().StringVarP(&enrichOutput, "output", "o", "", "output directory for the enriched CSV")
	enrichCmd.Flags().StringVar(&enrichOutputFilename, "output-filename", "therapists_enriched.csv", "name of the output CSV file")
	enrichCmd.Flags().BoolVar(&enrichResume, "resume", false, "resume the most recent incomplete enrich run")
	enrichCmd.Flags().IntVar(&enrichLimit, "limit", 0, "limit number of records to enrich (0 = all)")
	_ = enrichCmd.MarkFlagRequired("input")
	_ = enrichCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(enrichCmd)
}
