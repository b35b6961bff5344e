// Package extract derives structured facts from unstructured scraped page
// text via keyword and regex heuristics. Every extractor is a pure function
// of its input text; none perform I/O, and empty input yields empty output.
package extract

import (
	"sort"
	"strings"

	"github.com/therapistindex/directory-cli/internal/lookup"
)

// MatchAliases scans text for every alias in the table and returns the
// sorted set of distinct canonical names hit. Aliases of three characters
// or fewer match only at word boundaries so short acronyms don't fire
// inside unrelated words; longer aliases match anywhere as a substring.
func MatchAliases(text string, table lookup.Table) []string {
	if text == "" || len(table) == 0 {
		return nil
	}
	lower := strings.ToLower(text)
	found := make(map[string]bool)
	for alias, canonical := range table {
		if len(alias) <= 3 {
			if containsWord(lower, alias) {
				found[canonical] = true
			}
		} else if strings.Contains(lower, alias) {
			found[canonical] = true
		}
	}
	if len(found) == 0 {
		return nil
	}
	out := make([]string, 0, len(found))
	for c := range found {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// containsWord reports whether text contains needle bounded by non-word
// characters or string boundaries. Word characters are letters, digits,
// and underscore, mirroring regexp \b. Both arguments must already be
// lowercased.
func containsWord(text, needle string) bool {
	if needle == "" || text == "" {
		return false
	}
	start := 0
	for {
		idx := strings.Index(text[start:], needle)
		if idx < 0 {
			return false
		}
		absIdx := start + idx
		endIdx := absIdx + len(needle)

		leftOK := absIdx == 0 || !isWordChar(text[absIdx-1])
		rightOK := endIdx == len(text) || !isWordChar(text[endIdx])

		if leftOK && rightOK {
			return true
		}
		start = absIdx + 1
	}
}

func isWordChar(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
