package model

// Accepting is the accepting-new-patients classification.
type Accepting string

const (
	AcceptingYes      Accepting = "Yes"
	AcceptingNo       Accepting = "No"
	AcceptingWaitlist Accepting = "Waitlist"
	AcceptingUnknown  Accepting = "Unknown"
)

// Telehealth is the telehealth availability classification.
type Telehealth string

const (
	TelehealthVideo   Telehealth = "Yes - Video"
	TelehealthPhone   Telehealth = "Yes - Phone"
	TelehealthBoth    Telehealth = "Yes - Both"
	TelehealthNo      Telehealth = "No"
	TelehealthUnknown Telehealth = "Unknown"
)

// TriState is a Yes/No/Unknown classification.
type TriState string

const (
	TriYes     TriState = "Yes"
	TriNo      TriState = "No"
	TriUnknown TriState = "Unknown"
)

// Enrichment is the fixed-shape vector of facts derived from one blob of
// scraped page text. A page that could not be retrieved yields the zero
// value with the tri-state fields left empty, never a nil dereference.
type Enrichment struct {
	InsuranceAccepted  []string   `json:"insurance_accepted,omitempty"`
	SlidingScale       TriState   `json:"sliding_scale,omitempty"`
	PriceMin           *int       `json:"price_range_min,omitempty"`
	PriceMax           *int       `json:"price_range_max,omitempty"`
	Specializations    []string   `json:"specializations,omitempty"`
	TherapyApproaches  []string   `json:"therapy_approaches,omitempty"`
	Telehealth         Telehealth `json:"telehealth,omitempty"`
	TelehealthPlatform string     `json:"telehealth_platform,omitempty"`
	AcceptingPatients  Accepting  `json:"accepting_new_patients,omitempty"`
	Education          string     `json:"education,omitempty"`
	Languages          []string   `json:"languages,omitempty"`
	ProfileImageURL    string     `json:"profile_image_url,omitempty"`
	BioSummary         string     `json:"bio_summary,omitempty"`
}

// Empty reports whether no extractor produced a value.
func (e *Enrichment) Empty() bool {
	if e == nil {
		return true
	}
	return len(e.InsuranceAccepted) == 0 &&
		(e.SlidingScale == "" || e.SlidingScale == TriUnknown) &&
		e.PriceMin == nil && e.PriceMax == nil &&
		len(e.Specializations) == 0 &&
		len(e.TherapyApproaches) == 0 &&
		(e.Telehealth == "" || e.Telehealth == TelehealthUnknown) &&
		e.TelehealthPlatform == "" &&
		(e.AcceptingPatients == "" || e.AcceptingPatients == AcceptingUnknown) &&
		e.Education == "" &&
		len(e.Languages) == 0 &&
		e.ProfileImageURL == "" &&
		e.BioSummary == ""
}
