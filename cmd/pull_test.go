package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/therapistindex/directory-cli/pkg/outscraper"
)

func TestFileSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Washington, DC", "washington_dc"},
		{"therapist_Bethesda, MD", "therapist_bethesda_md"},
		{"  Northern Virginia  ", "northern_virginia"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, fileSlug(tt.in))
		})
	}
}

func TestPlaceListing(t *testing.T) {
	p := outscraper.Place{
		Name:           "Jane Smith, LCSW",
		FullAddress:    "123 Main St NW, Washington, DC 20001",
		City:           "Washington",
		State:          "District Of Columbia",
		StateCode:      "DC",
		PostalCode:     "20001",
		Phone:          "+1 202-555-0101",
		Site:           "https://janesmiththerapy.com",
		Rating:         json.Number("4.9"),
		Reviews:        json.Number("27"),
		Category:       "Psychotherapist",
		Subtypes:       "Psychotherapist, Family counselor",
		PlaceID:        "ChIJabc123",
		BusinessStatus: "OPERATIONAL",
	}

	l := placeListing(p)
	assert.Equal(t, "Jane Smith, LCSW", l.Name)
	assert.Equal(t, "123 Main St NW, Washington, DC 20001", l.Address)
	// Detailed subtypes win over the single category.
	assert.Equal(t, "Psychotherapist, Family counselor", l.Category)
	// The short state code wins over the spelled-out state.
	assert.Equal(t, "DC", l.State)
	assert.Equal(t, "4.9", l.Rating)
	assert.Equal(t, "27", l.ReviewCount)
	assert.Equal(t, "OPERATIONAL", l.Status)
}

func TestPlaceListingFallbacks(t *testing.T) {
	l := placeListing(outscraper.Place{
		Name:     "Minimal",
		State:    "Maryland",
		Category: "Counselor",
	})
	assert.Equal(t, "Maryland", l.State)
	assert.Equal(t, "Counselor", l.Category)
	assert.Equal(t, "", l.Rating)
}
