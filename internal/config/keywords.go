package config

import (
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// AliasEntry maps one canonical name to the raw-text spellings that should
// resolve to it. An entry with zero aliases would be permanently unmatchable,
// so validation rejects it at startup.
type AliasEntry struct {
	CanonicalName string   `yaml:"canonical_name" validate:"required"`
	Aliases       []string `yaml:"aliases" validate:"required,min=1,dive,required"`
}

// FilterKeywords holds the inclusion/exclusion phrase lists for record
// filtering. All matching downstream is case-insensitive substring.
type FilterKeywords struct {
	ExcludeNameContains     []string `yaml:"exclude_name_contains" validate:"required,min=1"`
	ExcludeCategoryContains []string `yaml:"exclude_category_contains" validate:"required,min=1"`
	IncludeCategoryContains []string `yaml:"include_category_contains" validate:"required,min=1"`
	ClosedIndicators        []string `yaml:"exclude_permanently_closed_indicators" validate:"required,min=1"`
}

// Aliases holds the three alias dictionaries used for signal extraction.
type Aliases struct {
	InsuranceProviders []AliasEntry `yaml:"insurance_providers" validate:"required,min=1,dive"`
	Specializations    []AliasEntry `yaml:"specializations" validate:"required,min=1,dive"`
	TherapyApproaches  []AliasEntry `yaml:"therapy_approaches" validate:"required,min=1,dive"`
}

// Query is one maps-search pull defined in the query config.
type Query struct {
	SearchTerm string `yaml:"search_term" validate:"required"`
	Location   string `yaml:"location" validate:"required"`
	Priority   int    `yaml:"priority"`
}

// Queries holds the configured maps-search pulls.
type Queries struct {
	Queries []Query `yaml:"queries" validate:"required,min=1,dive"`
}

var validate = validator.New()

func loadYAML(dir, name string, out any) error {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return eris.Wrapf(err, "config: read %s", name)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return eris.Wrapf(err, "config: parse %s", name)
	}
	if err := validate.Struct(out); err != nil {
		return eris.Wrapf(err, "config: validate %s", name)
	}
	return nil
}

// LoadFilterKeywords reads filter_keywords.yaml from the keywords directory.
func LoadFilterKeywords(dir string) (*FilterKeywords, error) {
	var kw FilterKeywords
	if err := loadYAML(dir, "filter_keywords.yaml", &kw); err != nil {
		return nil, err
	}
	return &kw, nil
}

// LoadAliases reads the insurance and specialization dictionaries. The two
// files mirror the shape of the upstream config: insurance_list.yaml holds
// providers, specializations.yaml holds both specializations and approaches.
func LoadAliases(dir string) (*Aliases, error) {
	var ins struct {
		InsuranceProviders []AliasEntry `yaml:"insurance_providers" validate:"required,min=1,dive"`
	}
	if err := loadYAML(dir, "insurance_list.yaml", &ins); err != nil {
		return nil, err
	}

	var specs struct {
		Specializations   []AliasEntry `yaml:"specializations" validate:"required,min=1,dive"`
		TherapyApproaches []AliasEntry `yaml:"therapy_approaches" validate:"required,min=1,dive"`
	}
	if err := loadYAML(dir, "specializations.yaml", &specs); err != nil {
		return nil, err
	}

	return &Aliases{
		InsuranceProviders: ins.InsuranceProviders,
		Specializations:    specs.Specializations,
		TherapyApproaches:  specs.TherapyApproaches,
	}, nil
}

// LoadQueries reads outscraper_queries.yaml from the keywords directory.
func LoadQueries(dir string) (*Queries, error) {
	var q Queries
	if err := loadYAML(dir, "outscraper_queries.yaml", &q); err != nil {
		return nil, err
	}
	return &q, nil
}
