package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

const validFilterYAML = `
exclude_name_contains: [massage, spa]
exclude_category_contains: [chiropractor]
include_category_contains: [therapist, counselor]
exclude_permanently_closed_indicators: [permanently closed]
`

func TestLoadFilterKeywords(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "filter_keywords.yaml", validFilterYAML)

	kw, err := LoadFilterKeywords(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"massage", "spa"}, kw.ExcludeNameContains)
	assert.Equal(t, []string{"therapist", "counselor"}, kw.IncludeCategoryContains)
	assert.Equal(t, []string{"permanently closed"}, kw.ClosedIndicators)
}

func TestLoadFilterKeywordsEmptyListRejected(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "filter_keywords.yaml", `
exclude_name_contains: [massage]
exclude_category_contains: [chiropractor]
include_category_contains: []
exclude_permanently_closed_indicators: [permanently closed]
`)

	_, err := LoadFilterKeywords(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate filter_keywords.yaml")
}

func TestLoadFilterKeywordsMissingFile(t *testing.T) {
	_, err := LoadFilterKeywords(t.TempDir())
	assert.Error(t, err)
}

func TestLoadAliases(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "insurance_list.yaml", `
insurance_providers:
  - canonical_name: Aetna
    aliases: [aetna]
  - canonical_name: Blue Cross Blue Shield
    aliases: [blue cross, bcbs, carefirst]
`)
	writeYAML(t, dir, "specializations.yaml", `
specializations:
  - canonical_name: Anxiety
    aliases: [anxiety, anxious]
therapy_approaches:
  - canonical_name: EMDR
    aliases: [emdr, eye movement desensitization]
`)

	aliases, err := LoadAliases(dir)
	require.NoError(t, err)
	require.Len(t, aliases.InsuranceProviders, 2)
	assert.Equal(t, "Blue Cross Blue Shield", aliases.InsuranceProviders[1].CanonicalName)
	require.Len(t, aliases.Specializations, 1)
	assert.Equal(t, []string{"anxiety", "anxious"}, aliases.Specializations[0].Aliases)
	require.Len(t, aliases.TherapyApproaches, 1)
}

func TestLoadAliasesEntryWithoutAliasesRejected(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "insurance_list.yaml", `
insurance_providers:
  - canonical_name: Aetna
    aliases: []
`)

	_, err := LoadAliases(dir)
	assert.Error(t, err)
}

func TestLoadQueries(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "outscraper_queries.yaml", `
queries:
  - search_term: therapist
    location: Washington, DC
    priority: 1
  - search_term: counselor
    location: Bethesda, MD
    priority: 2
`)

	q, err := LoadQueries(dir)
	require.NoError(t, err)
	require.Len(t, q.Queries, 2)
	assert.Equal(t, "therapist", q.Queries[0].SearchTerm)
	assert.Equal(t, "Bethesda, MD", q.Queries[1].Location)
	assert.Equal(t, 2, q.Queries[1].Priority)
}

func TestLoadQueriesMissingTermRejected(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "outscraper_queries.yaml", `
queries:
  - location: Washington, DC
`)

	_, err := LoadQueries(dir)
	assert.Error(t, err)
}
