// Package model defines the data types shared across the directory pipeline.
package model

// Listing represents one scraped business listing as it moves through the
// pipeline. Fields are mutated in place by each stage; a listing only leaves
// the working batch via filtering or dedup removal.
type Listing struct {
	Name        string `json:"therapist_name"`
	Address     string `json:"address,omitempty"`
	Street      string `json:"street,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	ZipCode     string `json:"zip_code,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Website     string `json:"website,omitempty"`
	Rating      string `json:"google_rating,omitempty"`
	ReviewCount string `json:"google_review_count,omitempty"`
	Category    string `json:"category,omitempty"`
	Hours       string `json:"working_hours,omitempty"`
	Latitude    string `json:"latitude,omitempty"`
	Longitude   string `json:"longitude,omitempty"`
	PlaceID     string `json:"place_id,omitempty"`
	GoogleID    string `json:"google_id,omitempty"`
	Status      string `json:"status,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
	Description string `json:"description,omitempty"`
	SourceFile  string `json:"source_file,omitempty"`

	// Derived during cleaning.
	LicenseType      string `json:"license_type,omitempty"`
	GroupPractice    bool   `json:"is_group_practice,omitempty"`
	DataSource       string `json:"data_source,omitempty"`
	EnrichmentStatus string `json:"enrichment_status,omitempty"`
	LastVerifiedDate string `json:"last_verified_date,omitempty"`

	// Populated by license verification.
	LicenseVerified   bool   `json:"license_verified,omitempty"`
	LicenseNumber     string `json:"license_number,omitempty"`
	VerificationNotes string `json:"verification_notes,omitempty"`

	Enrichment *Enrichment `json:"enrichment,omitempty"`
}

// Key returns a stable identity for checkpointing: the place ID when the
// source supplied one, otherwise name+address.
func (l *Listing) Key() string {
	if l.PlaceID != "" {
		return l.PlaceID
	}
	return l.Name + "|" + l.Address
}
