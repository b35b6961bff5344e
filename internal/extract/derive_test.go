package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuessLicenseType(t *testing.T) {
	tests := []struct {
		name     string
		listing  string
		category string
		want     string
	}{
		{"lcsw in name", "Jane Smith, LCSW", "", "LCSW"},
		{"lcpc wins over lpc substring", "John Doe, LCPC", "", "LCPC"},
		{"lpc alone", "John Doe, LPC", "", "LPC"},
		{"psychiatrist category", "Dr. Reed", "Psychiatrist", "MD/Psychiatrist"},
		{"md suffix", "Sarah Kim, MD", "", "MD/Psychiatrist"},
		{"psyd before phd", "Alex Chen, PsyD", "Psychologist", "PsyD"},
		{"psychologist category", "Alex Chen", "Psychologist", "PhD"},
		{"marriage and family", "DMV Marriage and Family Therapy", "", "LMFT"},
		{"no signal", "Oak Street Counseling", "Counselor", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GuessLicenseType(tt.listing, tt.category))
		})
	}
}

func TestIsGroupPractice(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Capital Counseling Center", true},
		{"Smith & Associates", true},
		{"District Wellness Collective", true},
		{"Jane Smith, LCSW", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsGroupPractice(tt.name))
		})
	}
}
