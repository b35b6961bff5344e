package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/therapistindex/directory-cli/internal/export"
	"github.com/therapistindex/directory-cli/internal/ingest"
)

var (
	exportInput          string
	exportOutput         string
	exportOutputFilename string
	exportBatchSize      int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Format enriched listings for GeoDirectory import",
	RunE: func(cmd *cobra.Command, args []string) error {
		listings, err := ingest.Load(exportInput)
		if err != nil {
			return err
		}
		zap.L().Info("export: loaded", zap.Int("records", len(listings)))

		batchSize := exportBatchSize
		if batchSize <= 0 {
			batchSize = cfg.Export.BatchSize
		}

		paths, err := export.WriteBatches(exportOutput, exportOutputFilename, listings, batchSize, time.Now())
		if err != nil {
			return err
		}
		zap.L().Info("export: import files ready",
			zap.Int("records", len(listings)),
			zap.Strings("paths", paths),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportInput, "input", "i", "", "enriched or verified CSV")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output directory for import-ready CSVs")
	exportCmd.Flags().StringVar(&exportOutputFilename, "output-filename", "therapists_geodirectory_import.csv", "base name for the output CSV file(s)")
	exportCmd.Flags().IntVar(&exportBatchSize, "batch-size", 0, "rows per import file (default from config)")
	_ = exportCmd.MarkFlagRequired("input")
	_ = exportCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(exportCmd)
}
