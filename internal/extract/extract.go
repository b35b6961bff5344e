package extract

import (
	"strings"

	"github.com/therapistindex/directory-cli/internal/lookup"
	"github.com/therapistindex/directory-cli/internal/model"
)

// bioMaxChars bounds the bio excerpt taken from the top of the page text.
const bioMaxChars = 500

// Extractor runs every sub-extractor over one blob of page text and
// assembles the enrichment vector. The alias tables are injected once at
// construction; the extractor itself holds no mutable state, so it is safe
// to share across workers.
type Extractor struct {
	Insurance       lookup.Table
	Specializations lookup.Table
	Approaches      lookup.Table
}

// New creates an Extractor over the given alias tables.
func New(insurance, specializations, approaches lookup.Table) *Extractor {
	return &Extractor{
		Insurance:       insurance,
		Specializations: specializations,
		Approaches:      approaches,
	}
}

// FromText produces the enrichment vector for one page. text is the
// extracted page text, html the raw page markup (used only for the image
// scan), and pageURL the source address for resolving relative image URLs.
// Empty text yields the all-unknown vector, never a nil pointer.
func (e *Extractor) FromText(text, html, pageURL string) *model.Enrichment {
	enr := &model.Enrichment{
		SlidingScale:       DetectSlidingScale(text),
		Telehealth:         DetectTelehealth(text),
		TelehealthPlatform: DetectTelehealthPlatform(text),
		AcceptingPatients:  AcceptingPatients(text),
		Education:          Education(text),
		ProfileImageURL:    ProfileImage(html, pageURL),
	}

	enr.InsuranceAccepted = MatchAliases(text, e.Insurance)
	enr.Specializations = MatchAliases(text, e.Specializations)
	enr.TherapyApproaches = MatchAliases(text, e.Approaches)
	enr.Languages = Languages(text)

	if min, max, ok := PriceRange(text); ok {
		enr.PriceMin, enr.PriceMax = &min, &max
	}

	if trimmed := strings.TrimSpace(text); trimmed != "" {
		if runes := []rune(trimmed); len(runes) > bioMaxChars {
			trimmed = string(runes[:bioMaxChars])
		}
		enr.BioSummary = trimmed
	}

	return enr
}
