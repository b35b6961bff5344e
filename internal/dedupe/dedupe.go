// Package dedupe collapses near-identical listings that represent the same
// real-world practice.
package dedupe

import (
	"strings"

	"github.com/therapistindex/directory-cli/internal/model"
	"github.com/therapistindex/directory-cli/internal/normalize"
)

// Report counts listings removed by each collapse phase.
type Report struct {
	ByPlaceID     int `json:"by_place_id"`
	ByNameAddress int `json:"by_name_address"`
	ByNamePhone   int `json:"by_name_phone"`
}

// Total returns the number of listings removed across all phases.
func (r Report) Total() int {
	return r.ByPlaceID + r.ByNameAddress + r.ByNamePhone
}

func nameKey(l model.Listing) string {
	return strings.ToLower(strings.TrimSpace(l.Name))
}

// Collapse removes duplicates in three phases, each keep-first over the
// survivors of the previous phase:
//
//  1. exact place-ID match, where present
//  2. (normalized name, normalized address), both-missing addresses collide
//  3. (normalized name, digits-only phone), only for phones with >=10 digits
//
// Place ID runs first so identifier-confirmed duplicates never reach the
// weaker name keys with a different address encoding. Input order is
// preserved; running Collapse on its own output removes nothing.
func Collapse(listings []model.Listing) ([]model.Listing, Report) {
	var report Report

	// Phase 1: place ID.
	seenID := make(map[string]bool, len(listings))
	phase1 := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if l.PlaceID != "" {
			if seenID[l.PlaceID] {
				report.ByPlaceID++
				continue
			}
			seenID[l.PlaceID] = true
		}
		phase1 = append(phase1, l)
	}

	// Phase 2: name + address. A missing address is an empty key on purpose:
	// two same-named listings with no address either time still collide.
	seenAddr := make(map[string]bool, len(phase1))
	phase2 := make([]model.Listing, 0, len(phase1))
	for _, l := range phase1 {
		key := nameKey(l) + "|" + strings.ToLower(strings.TrimSpace(l.Address))
		if seenAddr[key] {
			report.ByNameAddress++
			continue
		}
		seenAddr[key] = true
		phase2 = append(phase2, l)
	}

	// Phase 3: name + phone, only for listings that clear the digit floor.
	seenPhone := make(map[string]bool, len(phase2))
	out := make([]model.Listing, 0, len(phase2))
	for _, l := range phase2 {
		digits := normalize.Digits(l.Phone)
		if len(digits) < 10 {
			out = append(out, l)
			continue
		}
		key := nameKey(l) + "|" + digits
		if seenPhone[key] {
			report.ByNamePhone++
			continue
		}
		seenPhone[key] = true
		out = append(out, l)
	}

	return out, report
}
