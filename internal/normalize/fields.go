// Package normalize canonicalizes raw scalar listing fields into fixed
// formats. Normalization failures are silent: an unparsable value becomes
// the empty string, which callers must read as "unknown".
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// stateAbbr maps lowercase full state names to two-letter abbreviations
// (50 states + DC).
var stateAbbr = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT",
	"delaware": "DE", "district of columbia": "DC", "florida": "FL",
	"georgia": "GA", "hawaii": "HI", "idaho": "ID", "illinois": "IL",
	"indiana": "IN", "iowa": "IA", "kansas": "KS", "kentucky": "KY",
	"louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN",
	"mississippi": "MS", "missouri": "MO", "montana": "MT",
	"nebraska": "NE", "nevada": "NV", "new hampshire": "NH",
	"new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH",
	"oklahoma": "OK", "oregon": "OR", "pennsylvania": "PA",
	"rhode island": "RI", "south carolina": "SC", "south dakota": "SD",
	"tennessee": "TN", "texas": "TX", "utah": "UT", "vermont": "VT",
	"virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY",
}

// Digits strips every non-digit character.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Phone normalizes a phone number to (NNN) NNN-NNNN. An 11-digit number
// with a leading country code drops the 1; anything that is not exactly
// 10 digits after stripping yields "".
func Phone(phone string) string {
	digits := Digits(phone)
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return ""
	}
	return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:])
}

// State converts a state name to its two-letter abbreviation. Two-character
// input passes through uppercased. Unmatched full names fall back to the
// first two characters uppercased; best-effort, may be wrong.
func State(state string) string {
	state = strings.TrimSpace(state)
	if state == "" {
		return ""
	}
	if len(state) == 2 {
		return strings.ToUpper(state)
	}
	if abbr, ok := stateAbbr[strings.ToLower(state)]; ok {
		return abbr
	}
	// Slice runes, not bytes: a fallback like "Éire" must not split the
	// leading character.
	upper := []rune(strings.ToUpper(state))
	if len(upper) < 2 {
		return string(upper)
	}
	return string(upper[:2])
}

// reupper holds abbreviations that title-casing incorrectly lowercases:
// target-market state codes, compass directions, and country codes.
var reupper = regexp.MustCompile(`\b(Dc|Md|Va|Nw|Ne|Sw|Se|Usa?)\b`)

var titleCaser = cases.Title(language.AmericanEnglish)

// Address splits an address on commas, title-cases each segment, and
// restores known abbreviations.
func Address(address string) string {
	address = strings.TrimSpace(address)
	if address == "" {
		return ""
	}
	parts := strings.Split(address, ",")
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		part = titleCaser.String(strings.TrimSpace(part))
		part = reupper.ReplaceAllStringFunc(part, strings.ToUpper)
		cleaned = append(cleaned, part)
	}
	return strings.Join(cleaned, ", ")
}

// urlPattern checks structure only: scheme, dotted host, optional path.
// Reachability is a separate probe, not part of validity.
var urlPattern = regexp.MustCompile(`^https?://(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?:/[^\s]*)?$`)

// ValidURL reports whether a URL is structurally valid.
func ValidURL(url string) bool {
	return urlPattern.MatchString(strings.TrimSpace(url))
}

// URL ensures an https:// prefix and strips trailing slashes.
func URL(url string) string {
	url = strings.TrimRight(strings.TrimSpace(url), "/")
	if url == "" {
		return ""
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}
	return url
}

var zipPattern = regexp.MustCompile(`\d{5}`)

// Zip extracts the first run of five consecutive digits; anything else
// becomes "".
func Zip(zip string) string {
	return zipPattern.FindString(zip)
}
