// Package pipeline wires the cleaning stages together: filter, dedupe,
// standardize, derive.
package pipeline

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/therapistindex/directory-cli/internal/dedupe"
	"github.com/therapistindex/directory-cli/internal/extract"
	"github.com/therapistindex/directory-cli/internal/filter"
	"github.com/therapistindex/directory-cli/internal/model"
	"github.com/therapistindex/directory-cli/internal/normalize"
	"github.com/therapistindex/directory-cli/internal/scrape"
)

// CleanReport summarizes one cleaning pass.
type CleanReport struct {
	Input       int           `json:"input"`
	Filtered    filter.Report `json:"filtered"`
	Duplicates  dedupe.Report `json:"duplicates"`
	InvalidURLs int           `json:"invalid_urls"`
	DeadURLs    int           `json:"dead_urls"`
	Output      int           `json:"output"`
}

// Cleaner runs the full cleaning pass over a raw batch.
type Cleaner struct {
	filter *filter.Filter
	prober scrape.Prober
}

// NewCleaner creates a Cleaner. prober may be nil; live URL checks are then
// skipped regardless of the probe limit.
func NewCleaner(f *filter.Filter, prober scrape.Prober) *Cleaner {
	return &Cleaner{filter: f, prober: prober}
}

// Clean filters, dedupes, standardizes, and derives fields over a raw
// batch. probeLimit > 0 additionally HEAD-checks up to that many websites
// and clears unreachable ones.
func (c *Cleaner) Clean(ctx context.Context, listings []model.Listing, probeLimit int) ([]model.Listing, *CleanReport, error) {
	report := &CleanReport{Input: len(listings)}

	kept, filterReport := c.filter.Apply(listings)
	report.Filtered = filterReport

	kept, dupReport := dedupe.Collapse(kept)
	report.Duplicates = dupReport

	for i := range kept {
		report.InvalidURLs += standardize(&kept[i])
	}

	if c.prober != nil && probeLimit > 0 {
		dead, err := c.probeWebsites(ctx, kept, probeLimit)
		if err != nil {
			return nil, report, err
		}
		report.DeadURLs = dead
	}

	for i := range kept {
		derive(&kept[i])
	}

	report.Output = len(kept)
	zap.L().Info("clean: pass complete",
		zap.Int("input", report.Input),
		zap.Int("closed", report.Filtered.Closed),
		zap.Int("non_therapist", report.Filtered.NonTherapist),
		zap.Int("duplicates", report.Duplicates.Total()),
		zap.Int("invalid_urls", report.InvalidURLs),
		zap.Int("dead_urls", report.DeadURLs),
		zap.Int("output", report.Output),
	)
	return kept, report, nil
}

// standardize normalizes the formatted fields in place and returns 1 when
// an invalid website URL was cleared.
func standardize(l *model.Listing) int {
	l.Phone = normalize.Phone(l.Phone)
	l.State = normalize.State(l.State)
	l.Address = normalize.Address(l.Address)
	l.ZipCode = normalize.Zip(l.ZipCode)

	if r := strings.TrimSpace(l.Rating); r != "" {
		if _, err := strconv.ParseFloat(r, 64); err != nil {
			l.Rating = ""
		} else {
			l.Rating = r
		}
	}
	if rc := strings.TrimSpace(l.ReviewCount); rc != "" {
		if n, err := strconv.ParseFloat(rc, 64); err == nil {
			l.ReviewCount = strconv.Itoa(int(n))
		} else {
			l.ReviewCount = "0"
		}
	}

	cleared := 0
	if l.Website != "" {
		l.Website = normalize.URL(l.Website)
		if !normalize.ValidURL(l.Website) {
			l.Website = ""
			cleared = 1
		}
	}
	return cleared
}

// probeWebsites HEAD-checks up to limit listings with a website and clears
// the URL on failure. Returns the number cleared.
func (c *Cleaner) probeWebsites(ctx context.Context, listings []model.Listing, limit int) (int, error) {
	checked := 0
	dead := 0
	for i := range listings {
		if err := ctx.Err(); err != nil {
			return dead, err
		}
		if listings[i].Website == "" {
			continue
		}
		if checked >= limit {
			break
		}
		checked++
		if !c.prober.Probe(ctx, listings[i].Website) {
			zap.L().Debug("clean: unreachable website",
				zap.String("name", listings[i].Name),
				zap.String("url", listings[i].Website),
			)
			listings[i].Website = ""
			dead++
		}
	}
	return dead, nil
}

func derive(l *model.Listing) {
	l.LicenseType = extract.GuessLicenseType(l.Name, l.Category)
	l.GroupPractice = extract.IsGroupPractice(l.Name)
	l.DataSource = "outscraper"
	l.EnrichmentStatus = "cleaned"
	l.LastVerifiedDate = ""
}
