// Package export reshapes enriched listings into the CSV schema the
// GeoDirectory WordPress importer expects.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/therapistindex/directory-cli/internal/ingest"
	"github.com/therapistindex/directory-cli/internal/model"
	"github.com/therapistindex/directory-cli/internal/nameparse"
)

type mapping struct {
	ours   string
	geodir string
}

// columnMap pairs our canonical column names with the GeoDirectory import
// names. Columns our schema does not carry (practice_name, email, ...) are
// still emitted, empty, so the import template stays stable.
var columnMap = []mapping{
	{"therapist_name", "post_title"},
	{"practice_name", "geodir_practice_name"},
	{"address", "post_address"},
	{"street", "street"},
	{"city", "city"},
	{"state", "region"},
	{"zip_code", "zip"},
	{"country_code", "country"},
	{"phone", "geodir_contact_phone"},
	{"email", "geodir_email"},
	{"website", "geodir_website"},
	{"latitude", "post_latitude"},
	{"longitude", "post_longitude"},
	{"license_type", "geodir_license_type"},
	{"license_number", "geodir_license_number"},
	{"license_state", "geodir_license_state"},
	{"license_verified", "geodir_license_verified"},
	{"specializations", "geodir_specializations"},
	{"insurance_accepted", "geodir_insurance_accepted"},
	{"sliding_scale", "geodir_sliding_scale"},
	{"price_range_min", "geodir_price_range_min"},
	{"price_range_max", "geodir_price_range_max"},
	{"session_length", "geodir_session_length"},
	{"telehealth", "geodir_telehealth"},
	{"telehealth_platform", "geodir_telehealth_platform"},
	{"accepting_new_patients", "geodir_accepting_new_patients"},
	{"wait_time", "geodir_wait_time"},
	{"languages", "geodir_languages"},
	{"therapy_approaches", "geodir_therapy_approaches"},
	{"age_groups_served", "geodir_age_groups_served"},
	{"gender", "geodir_gender"},
	{"years_experience", "geodir_years_experience"},
	{"education", "geodir_education"},
	{"profile_image_url", "geodir_profile_image_url"},
	{"google_rating", "geodir_google_rating"},
	{"google_review_count", "geodir_google_review_count"},
	{"last_verified_date", "geodir_last_verified_date"},
	{"data_source", "geodir_data_source"},
	{"enrichment_status", "geodir_enrichment_status"},
}

// defaults are required GeoDirectory columns set to a constant for every
// row. country overrides the mapped country_code value.
var defaults = []mapping{
	{"post_status", "publish"},
	{"post_type", "gd_place"},
	{"post_category", "Therapist"},
	{"country", "US"},
}

var multiselectColumns = map[string]bool{
	"geodir_specializations":    true,
	"geodir_insurance_accepted": true,
	"geodir_languages":          true,
	"geodir_therapy_approaches": true,
	"geodir_age_groups_served":  true,
}

var numericColumns = map[string]bool{
	"geodir_price_range_min":     true,
	"geodir_price_range_max":     true,
	"geodir_google_rating":       true,
	"geodir_google_review_count": true,
	"geodir_years_experience":    true,
	"post_latitude":              true,
	"post_longitude":             true,
}

// priorityColumns lead the header so the import preview reads naturally.
var priorityColumns = []string{
	"post_title", "post_slug", "post_status", "post_type", "post_category",
	"post_content", "post_address", "city", "region", "zip", "country",
	"post_latitude", "post_longitude",
	"geodir_contact_phone", "geodir_email", "geodir_website",
}

// Header returns the GeoDirectory column order.
func Header() []string {
	var all []string
	seen := make(map[string]bool)
	add := func(col string) {
		if !seen[col] {
			seen[col] = true
			all = append(all, col)
		}
	}

	for _, m := range columnMap {
		add(m.geodir)
	}
	for _, d := range defaults {
		add(d.ours)
	}
	add("post_slug")
	add("post_content")

	priority := make(map[string]bool, len(priorityColumns))
	for _, col := range priorityColumns {
		priority[col] = true
	}

	header := make([]string, 0, len(all))
	header = append(header, priorityColumns...)
	for _, col := range all {
		if !priority[col] {
			header = append(header, col)
		}
	}
	return header
}

// Row formats one listing into the GeoDirectory schema. now supplies the
// fallback last-verified date.
func Row(l *model.Listing, now time.Time) map[string]string {
	row := make(map[string]string, len(columnMap)+len(defaults)+2)

	for _, m := range columnMap {
		row[m.geodir] = ingest.Field(l, m.ours)
	}
	for _, d := range defaults {
		row[d.ours] = d.geodir
	}

	row["post_slug"] = nameparse.Slug(l.Name, l.City, l.State)
	row["post_content"] = Description(l)

	if row["geodir_last_verified_date"] == "" {
		row["geodir_last_verified_date"] = now.Format("2006-01-02")
	}
	if row["geodir_license_state"] == "" {
		row["geodir_license_state"] = l.State
	}

	for col := range multiselectColumns {
		row[col] = formatMultiselect(row[col])
	}
	for col := range numericColumns {
		row[col] = coerceNumeric(row[col])
	}

	return row
}

// Description generates the post excerpt for a listing.
func Description(l *model.Listing) string {
	var parts []string

	if l.Name != "" {
		intro := l.Name
		if l.LicenseType != "" {
			intro += fmt.Sprintf(" (%s)", l.LicenseType)
		}
		location := l.City
		if l.City != "" && l.State != "" {
			location = l.City + ", " + l.State
		} else if location == "" {
			location = l.State
		}
		if location != "" {
			intro += " in " + location
		}
		parts = append(parts, intro+".")
	}

	if l.Enrichment != nil {
		if specs := l.Enrichment.Specializations; len(specs) > 0 {
			if len(specs) > 5 {
				specs = specs[:5]
			}
			parts = append(parts, fmt.Sprintf("Specializes in %s.", strings.Join(specs, ", ")))
		}

		if ins := l.Enrichment.InsuranceAccepted; len(ins) > 0 {
			shown := ins
			if len(shown) > 3 {
				shown = shown[:3]
			}
			text := strings.Join(shown, ", ")
			if remaining := len(ins) - 3; remaining > 0 {
				text += fmt.Sprintf(" and %d more", remaining)
			}
			parts = append(parts, fmt.Sprintf("Accepts %s.", text))
		}

		th := l.Enrichment.Telehealth
		if th != "" && th != model.TelehealthNo && th != model.TelehealthUnknown {
			parts = append(parts, "Telehealth available.")
		}
		if l.Enrichment.AcceptingPatients == model.AcceptingYes {
			parts = append(parts, "Currently accepting new patients.")
		}
	}

	return strings.Join(parts, " ")
}

// formatMultiselect normalizes comma-separated multiselect values.
func formatMultiselect(value string) string {
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return strings.Join(items, ", ")
}

// coerceNumeric blanks values that do not parse as numbers.
func coerceNumeric(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
		return ""
	}
	return trimmed
}
