package main

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/therapistindex/directory-cli/internal/ingest"
	"github.com/therapistindex/directory-cli/internal/model"
	"github.com/therapistindex/directory-cli/internal/verify"
)

var (
	verifyInput          string
	verifyOutput         string
	verifyOutputFilename string
	verifyState          string
	verifyLimit          int
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Cross-reference therapist names against state licensing boards",
	RunE: func(cmd *cobra.Command, args []string) error {
		listings, err := ingest.Load(verifyInput)
		if err != nil {
			return err
		}
		zap.L().Info("verify: loaded", zap.Int("records", len(listings)))

		registry := verify.NewRegistry(cfg.Verify)

		state := strings.ToUpper(verifyState)
		if state != "" && state != "ALL" {
			j, ok := verify.ParseJurisdiction(state)
			if !ok {
				return eris.Errorf("unsupported state %q (supported: DC, MD, VA)", verifyState)
			}
			registry = verify.Registry{j: registry[j]}
		}

		batch := listings
		if state != "" && state != "ALL" {
			batch = make([]model.Listing, 0, len(listings))
			for _, l := range listings {
				if strings.EqualFold(l.State, state) {
					batch = append(batch, l)
				}
			}
			zap.L().Info("verify: filtered", zap.String("state", state), zap.Int("records", len(batch)))
		}
		if verifyLimit > 0 && len(batch) > verifyLimit {
			batch = batch[:verifyLimit]
		}

		sum, err := verify.Batch(cmd.Context(), registry, batch)
		if err != nil {
			return err
		}
		zap.L().Info("verify: batch complete",
			zap.Int("processed", sum.Processed),
			zap.Int("flagged_for_review", sum.Flagged),
			zap.Int("no_verifier", sum.NoVerifier),
		)

		// Merge verified rows back into the full set by listing key.
		if len(batch) != len(listings) {
			verified := make(map[string]model.Listing, len(batch))
			for _, l := range batch {
				verified[l.Key()] = l
			}
			for i := range listings {
				if v, ok := verified[listings[i].Key()]; ok {
					listings[i] = v
				}
			}
		} else {
			listings = batch
		}

		path := filepath.Join(verifyOutput, verifyOutputFilename)
		if err := ingest.Write(path, listings); err != nil {
			return err
		}
		zap.L().Info("verify: written", zap.String("path", path), zap.Int("records", len(listings)))
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringVarP(&verifyInput, "input", "i", "", "enriched CSV from the enrich stage")
	verifyCmd.Flags().StringVarP(&verifyOutput, "output", "o", "", "output directory for the verified CSV")
	verifyCmd.Flags().StringVar(&verifyOutputFilename, "output-filename", "therapists_verified.csv", "name of the output CSV file")
	verifyCmd.Flags().StringVar(&verifyState, "state", "ALL", "which state to verify (DC, MD, VA, ALL)")
	verifyCmd.Flags().IntVar(&verifyLimit, "limit", 0, "limit number of records to verify (0 = all)")
	_ = verifyCmd.MarkFlagRequired("input")
	_ = verifyCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(verifyCmd)
}
