// Package lookup compiles canonical-name dictionaries into flat
// alias-to-canonical tables used by signal extraction.
package lookup

import (
	"strings"

	"github.com/therapistindex/directory-cli/internal/config"
)

// Table maps a normalized alias (lowercased, trimmed) to its canonical name.
type Table map[string]string

// Build flattens alias entries into a Table. When two entries claim the
// same alias the later entry wins; config ordering is fixed, so the result
// is deterministic.
func Build(entries []config.AliasEntry) Table {
	t := make(Table)
	for _, entry := range entries {
		for _, alias := range entry.Aliases {
			key := strings.ToLower(strings.TrimSpace(alias))
			if key == "" {
				continue
			}
			t[key] = entry.CanonicalName
		}
	}
	return t
}

// Canonical resolves an alias to its canonical name.
func (t Table) Canonical(alias string) (string, bool) {
	c, ok := t[strings.ToLower(strings.TrimSpace(alias))]
	return c, ok
}
