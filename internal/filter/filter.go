// Package filter decides per-listing inclusion: permanently closed entities
// and non-therapist businesses are dropped from the working batch.
package filter

import (
	"strings"

	"github.com/therapistindex/directory-cli/internal/config"
	"github.com/therapistindex/directory-cli/internal/model"
)

// Report counts listings removed by each filter.
type Report struct {
	Closed       int `json:"closed"`
	NonTherapist int `json:"non_therapist"`
}

// Filter applies the configured inclusion/exclusion phrase lists. All
// matches are case-insensitive substring tests, not word-boundary tests;
// partial-word hits are an accepted tradeoff.
type Filter struct {
	kw *config.FilterKeywords
}

// New creates a Filter from loaded keyword configuration.
func New(kw *config.FilterKeywords) *Filter {
	return &Filter{kw: kw}
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if p == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// IsClosed reports whether the listing looks permanently closed: any closed
// indicator appearing in the status or the name.
func (f *Filter) IsClosed(l model.Listing) bool {
	status := strings.ToLower(l.Status)
	name := strings.ToLower(l.Name)
	return containsAny(status, f.kw.ClosedIndicators) || containsAny(name, f.kw.ClosedIndicators)
}

// IsNonTherapist reports whether the listing should be excluded as a
// non-therapist business. A category hit on the include list rescues a
// listing whose name superficially matches an exclusion phrase.
func (f *Filter) IsNonTherapist(l model.Listing) bool {
	name := strings.ToLower(l.Name)
	category := strings.ToLower(l.Category)

	excluded := containsAny(name, f.kw.ExcludeNameContains) ||
		containsAny(category, f.kw.ExcludeCategoryContains)
	if !excluded {
		return false
	}
	return !containsAny(category, f.kw.IncludeCategoryContains)
}

// Apply runs both filters over the batch, keeping input order. A listing
// survives only if it passes both.
func (f *Filter) Apply(listings []model.Listing) ([]model.Listing, Report) {
	var report Report
	kept := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if f.IsClosed(l) {
			report.Closed++
			continue
		}
		if f.IsNonTherapist(l) {
			report.NonTherapist++
			continue
		}
		kept = append(kept, l)
	}
	return kept, report
}
