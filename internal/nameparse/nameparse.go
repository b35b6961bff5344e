// Package nameparse splits display names into identity tokens for license
// lookups and slug generation.
package nameparse

import (
	"regexp"
	"strings"
)

// credentialPattern matches credential/license suffixes, allowing trailing
// hyphenated extensions like LCSW-C.
var credentialPattern = regexp.MustCompile(`(?i),?\s*(LCSW|LPC|LMFT|PsyD|PhD|MD|LCPC|LCMFT|MA|MS|MSW|MEd|EdD|NCC|ACS|LICSW)[-\w]*`)

// businessPattern matches business-entity suffix tokens.
var businessPattern = regexp.MustCompile(`(?i)\b(LLC|Inc|PLLC|PC|Associates|& Associates|Group|Center|Practice)\b`)

// honorificPattern matches a leading "Dr." style prefix.
var honorificPattern = regexp.MustCompile(`(?i)^Dr\.?\s+`)

// Tokens holds the parsed (first, last) pair. Last is populated whenever
// any non-credential token remains; First may be empty.
type Tokens struct {
	First string
	Last  string
}

// Parse splits a display name into first and last tokens after stripping
// credential suffixes, business-entity suffixes, and a leading honorific.
// This is a heuristic, not a name grammar: multi-word surnames and
// generational suffixes are not specifically handled.
func Parse(name string) Tokens {
	if name == "" {
		return Tokens{}
	}
	name = strings.TrimSpace(credentialPattern.ReplaceAllString(name, ""))
	name = strings.TrimSpace(businessPattern.ReplaceAllString(name, ""))
	name = strings.TrimSpace(honorificPattern.ReplaceAllString(name, ""))

	parts := strings.Fields(name)
	switch {
	case len(parts) >= 2:
		return Tokens{First: parts[0], Last: parts[len(parts)-1]}
	case len(parts) == 1:
		return Tokens{Last: parts[0]}
	}
	return Tokens{}
}
