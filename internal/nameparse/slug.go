package nameparse

import (
	"regexp"
	"strings"
)

var (
	slugStrip   = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugHyphens = regexp.MustCompile(`-+`)
)

// Slug builds a URL slug like "jane-doe-bethesda-md" from the given parts.
// Empty parts are skipped.
func Slug(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		p := slugStrip.ReplaceAllString(strings.ToLower(strings.TrimSpace(part)), "")
		p = slugSpaces.ReplaceAllString(p, "-")
		p = strings.Trim(slugHyphens.ReplaceAllString(p, "-"), "-")
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return strings.Join(cleaned, "-")
}
