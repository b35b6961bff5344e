package extract

import (
	"regexp"
	"strings"
)

// Three ordered strategies: keyword-led section, verb-led phrase, and
// degree-abbreviation-led phrase. The first strategy runs over lowercased
// text; the keyword list reads naturally that way and casing carries no
// signal for section headers.
var eduKeywordPattern = regexp.MustCompile(`(?:education|credentials|degree|training|qualifications)[:\s]*([^\n]{10,200})`)
var eduVerbPattern = regexp.MustCompile(`(?i)(?:earned|received|graduated|completed)\s+(?:a\s+|an\s+)?([^\n]{10,150})`)
var eduDegreePattern = regexp.MustCompile(`(?i)((?:M\.?A\.?|M\.?S\.?|Ph\.?D\.?|Psy\.?D\.?|M\.?D\.?|Ed\.?D\.?|M\.?S\.?W\.?|B\.?A\.?|B\.?S\.?)\s+(?:in\s+)?[^\n,]{5,100})`)

// Education extracts up to three distinct education/credential phrases,
// semicolon-joined. Within the candidate list the first occurrence wins.
func Education(text string) string {
	if text == "" {
		return ""
	}

	var findings []string
	seen := make(map[string]bool)
	collect := func(matches [][]string) {
		for _, m := range matches {
			cleaned := strings.TrimRight(strings.TrimSpace(m[1]), ".,;")
			if len(cleaned) <= 10 || seen[cleaned] {
				continue
			}
			seen[cleaned] = true
			findings = append(findings, cleaned)
		}
	}

	collect(eduKeywordPattern.FindAllStringSubmatch(strings.ToLower(text), -1))
	collect(eduVerbPattern.FindAllStringSubmatch(text, -1))
	collect(eduDegreePattern.FindAllStringSubmatch(text, -1))

	if len(findings) > 3 {
		findings = findings[:3]
	}
	return strings.Join(findings, "; ")
}
