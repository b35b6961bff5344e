package normalize

import "strings"

// columnRenames maps raw export column names to the canonical attribute
// names used by the pipeline. The source exports vary their headers between
// runs, so common alternates are included.
var columnRenames = map[string]string{
	"name":          "therapist_name",
	"full_address":  "address",
	"street":        "street",
	"city":          "city",
	"state":         "state",
	"zip_code":      "zip_code",
	"country_code":  "country_code",
	"phone":         "phone",
	"site":          "website",
	"rating":        "google_rating",
	"reviews":       "google_review_count",
	"category":      "category",
	"working_hours": "working_hours",
	"latitude":      "latitude",
	"longitude":     "longitude",
	"place_id":      "place_id",
	"google_id":     "google_id",
	"status":        "status",
	"reviews_count": "google_review_count",
	"review_count":  "google_review_count",
	"website":       "website",
	"address":       "address",
	"postal_code":   "zip_code",
	"zipcode":       "zip_code",
}

// Header normalizes a raw column header: lowercased, trimmed, spaces
// replaced with underscores.
func Header(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.ReplaceAll(h, " ", "_")
}

// Column resolves a raw column header to its canonical attribute name.
// Unrecognized headers pass through normalized, so unknown columns stay
// addressable without being remapped.
func Column(h string) string {
	norm := Header(h)
	if canonical, ok := columnRenames[norm]; ok {
		return canonical
	}
	return norm
}
