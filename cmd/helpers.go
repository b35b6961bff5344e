package main

import (
	"context"

	"github.com/therapistindex/directory-cli/internal/config"
	"github.com/therapistindex/directory-cli/internal/extract"
	"github.com/therapistindex/directory-cli/internal/lookup"
	"github.com/therapistindex/directory-cli/internal/store"
)

// initStore opens the configured checkpoint store and runs migrations.
func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

// buildExtractor loads the alias dictionaries and assembles the extractor.
func buildExtractor() (*extract.Extractor, error) {
	aliases, err := config.LoadAliases(cfg.Keywords.Dir)
	if err != nil {
		return nil, err
	}
	return extract.New(
		lookup.Build(aliases.InsuranceProviders),
		lookup.Build(aliases.Specializations),
		lookup.Build(aliases.TherapyApproaches),
	), nil
}
