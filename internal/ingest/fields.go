package ingest

import (
	"strconv"
	"strings"

	"github.com/therapistindex/directory-cli/internal/model"
)

// Columns is the canonical attribute order for pipeline CSVs. Stages write
// and re-read this fixed set; unrecognized input columns are dropped.
var Columns = []string{
	"therapist_name", "address", "street", "city", "state", "zip_code",
	"country_code", "phone", "website", "google_rating",
	"google_review_count", "category", "working_hours", "latitude",
	"longitude", "place_id", "google_id", "status", "photo_url",
	"description", "source_file",
	"license_type", "is_group_practice", "data_source",
	"enrichment_status", "last_verified_date",
	"insurance_accepted", "sliding_scale", "price_range_min",
	"price_range_max", "specializations", "therapy_approaches",
	"telehealth", "telehealth_platform", "accepting_new_patients",
	"education", "languages", "profile_image_url", "bio_summary",
	"license_verified", "license_number", "verification_notes",
}

func joined(vals []string) string { return strings.Join(vals, ", ") }

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func ensureEnrichment(l *model.Listing) *model.Enrichment {
	if l.Enrichment == nil {
		l.Enrichment = &model.Enrichment{}
	}
	return l.Enrichment
}

// SetField assigns a canonical-column value onto a listing. Unknown columns
// are ignored; unparsable numerics degrade to absent, never errors.
func SetField(l *model.Listing, col, val string) {
	switch col {
	case "therapist_name":
		l.Name = val
	case "address":
		l.Address = val
	case "street":
		l.Street = val
	case "city":
		l.City = val
	case "state":
		l.State = val
	case "zip_code":
		l.ZipCode = val
	case "country_code":
		l.CountryCode = val
	case "phone":
		l.Phone = val
	case "website":
		l.Website = val
	case "google_rating":
		l.Rating = val
	case "google_review_count":
		l.ReviewCount = val
	case "category":
		l.Category = val
	case "working_hours":
		l.Hours = val
	case "latitude":
		l.Latitude = val
	case "longitude":
		l.Longitude = val
	case "place_id":
		l.PlaceID = val
	case "google_id":
		l.GoogleID = val
	case "status":
		l.Status = val
	case "photo_url":
		l.PhotoURL = val
	case "description":
		l.Description = val
	case "source_file":
		l.SourceFile = val
	case "license_type":
		l.LicenseType = val
	case "is_group_practice":
		l.GroupPractice = strings.EqualFold(val, "true")
	case "data_source":
		l.DataSource = val
	case "enrichment_status":
		l.EnrichmentStatus = val
	case "last_verified_date":
		l.LastVerifiedDate = val
	case "license_verified":
		l.LicenseVerified = strings.EqualFold(val, "true")
	case "license_number":
		l.LicenseNumber = val
	case "verification_notes":
		l.VerificationNotes = val
	case "insurance_accepted":
		if vals := splitList(val); vals != nil {
			ensureEnrichment(l).InsuranceAccepted = vals
		}
	case "sliding_scale":
		if val != "" {
			ensureEnrichment(l).SlidingScale = model.TriState(val)
		}
	case "price_range_min":
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			ensureEnrichment(l).PriceMin = &n
		}
	case "price_range_max":
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			ensureEnrichment(l).PriceMax = &n
		}
	case "specializations":
		if vals := splitList(val); vals != nil {
			ensureEnrichment(l).Specializations = vals
		}
	case "therapy_approaches":
		if vals := splitList(val); vals != nil {
			ensureEnrichment(l).TherapyApproaches = vals
		}
	case "telehealth":
		if val != "" {
			ensureEnrichment(l).Telehealth = model.Telehealth(val)
		}
	case "telehealth_platform":
		if val != "" {
			ensureEnrichment(l).TelehealthPlatform = val
		}
	case "accepting_new_patients":
		if val != "" {
			ensureEnrichment(l).AcceptingPatients = model.Accepting(val)
		}
	case "education":
		if val != "" {
			ensureEnrichment(l).Education = val
		}
	case "languages":
		if vals := splitList(val); vals != nil {
			ensureEnrichment(l).Languages = vals
		}
	case "profile_image_url":
		if val != "" {
			ensureEnrichment(l).ProfileImageURL = val
		}
	case "bio_summary":
		if val != "" {
			ensureEnrichment(l).BioSummary = val
		}
	}
}

// Field reads a canonical-column value from a listing, formatting derived
// and enrichment fields for CSV output.
func Field(l *model.Listing, col string) string {
	enr := l.Enrichment
	switch col {
	case "therapist_name":
		return l.Name
	case "address":
		return l.Address
	case "street":
		return l.Street
	case "city":
		return l.City
	case "state":
		return l.State
	case "zip_code":
		return l.ZipCode
	case "country_code":
		return l.CountryCode
	case "phone":
		return l.Phone
	case "website":
		return l.Website
	case "google_rating":
		return l.Rating
	case "google_review_count":
		return l.ReviewCount
	case "category":
		return l.Category
	case "working_hours":
		return l.Hours
	case "latitude":
		return l.Latitude
	case "longitude":
		return l.Longitude
	case "place_id":
		return l.PlaceID
	case "google_id":
		return l.GoogleID
	case "status":
		return l.Status
	case "photo_url":
		return l.PhotoURL
	case "description":
		return l.Description
	case "source_file":
		return l.SourceFile
	case "license_type":
		return l.LicenseType
	case "is_group_practice":
		return strconv.FormatBool(l.GroupPractice)
	case "data_source":
		return l.DataSource
	case "enrichment_status":
		return l.EnrichmentStatus
	case "last_verified_date":
		return l.LastVerifiedDate
	case "license_verified":
		return strconv.FormatBool(l.LicenseVerified)
	case "license_number":
		return l.LicenseNumber
	case "verification_notes":
		return l.VerificationNotes
	}

	if enr == nil {
		return ""
	}
	switch col {
	case "insurance_accepted":
		return joined(enr.InsuranceAccepted)
	case "sliding_scale":
		return string(enr.SlidingScale)
	case "price_range_min":
		if enr.PriceMin != nil {
			return strconv.Itoa(*enr.PriceMin)
		}
	case "price_range_max":
		if enr.PriceMax != nil {
			return strconv.Itoa(*enr.PriceMax)
		}
	case "specializations":
		return joined(enr.Specializations)
	case "therapy_approaches":
		return joined(enr.TherapyApproaches)
	case "telehealth":
		return string(enr.Telehealth)
	case "telehealth_platform":
		return enr.TelehealthPlatform
	case "accepting_new_patients":
		return string(enr.AcceptingPatients)
	case "education":
		return enr.Education
	case "languages":
		return joined(enr.Languages)
	case "profile_image_url":
		return enr.ProfileImageURL
	case "bio_summary":
		return enr.BioSummary
	}
	return ""
}
