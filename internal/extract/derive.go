package extract

import "strings"

// licenseRule pairs an indicator with the license type it implies.
// Rules are evaluated in order; the first hit wins, so the more specific
// credentials (LCPC before LPC) come first.
type licenseRule struct {
	indicators []string
	license    string
}

var licenseRules = []licenseRule{
	{[]string{"psychiatr", ", md", "m.d."}, "MD/Psychiatrist"},
	{[]string{"psyd", "psy.d"}, "PsyD"},
	{[]string{"ph.d", "phd", "psychologist"}, "PhD"},
	{[]string{"lcsw", "lcsw-c"}, "LCSW"},
	{[]string{"lcpc"}, "LCPC"},
	{[]string{"lpc"}, "LPC"},
	{[]string{"lcmft"}, "LCMFT"},
	{[]string{"lmft", "marriage and family"}, "LMFT"},
}

// GuessLicenseType infers a license type from the listing name and category.
// Returns "" when nothing matches; this is a heuristic annotation, not a
// verified credential.
func GuessLicenseType(name, category string) string {
	text := strings.ToLower(name + " " + category)
	for _, rule := range licenseRules {
		if containsAny(text, rule.indicators) {
			return rule.license
		}
	}
	return ""
}

var groupIndicators = []string{
	"group", "associates", "& associates", "center", "centre",
	"clinic", "institute", "practice", "services", "wellness",
	"counseling center", "therapy center", "behavioral health",
	"mental health services", "psychological services",
	"partners", "collective", "collaborative",
}

// IsGroupPractice reports whether a listing name looks like a group
// practice rather than a solo practitioner.
func IsGroupPractice(name string) bool {
	if name == "" {
		return false
	}
	return containsAny(strings.ToLower(name), groupIndicators)
}
