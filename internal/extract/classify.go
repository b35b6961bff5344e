package extract

import (
	"sort"
	"strings"

	"github.com/therapistindex/directory-cli/internal/model"
)

// Phrase lists are ordered rule sets. Evaluation order is the tie-break:
// for accepting-patients the negative list is checked first so an explicit
// "not accepting" statement beats any "accepting new patients" boilerplate
// elsewhere on the page.

var acceptingNo = []string{
	"not accepting new",
	"not currently accepting",
	"no longer accepting",
	"practice is full",
	"caseload is full",
	"currently full",
}

var acceptingWaitlist = []string{
	"waitlist",
	"wait list",
	"waiting list",
	"join the waitlist",
}

var acceptingYes = []string{
	"accepting new patients",
	"accepting new clients",
	"currently accepting",
	"now accepting",
	"welcoming new",
	"taking new patients",
	"taking new clients",
	"open to new",
	"availability for new",
	"schedule an appointment",
	"book an appointment",
	"book a session",
	"free consultation",
	"complimentary consultation",
}

// AcceptingPatients classifies whether the practice is taking new clients.
func AcceptingPatients(text string) model.Accepting {
	if text == "" {
		return model.AcceptingUnknown
	}
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, acceptingNo):
		return model.AcceptingNo
	case containsAny(lower, acceptingWaitlist):
		return model.AcceptingWaitlist
	case containsAny(lower, acceptingYes):
		return model.AcceptingYes
	}
	return model.AcceptingUnknown
}

var telehealthVideo = []string{
	"telehealth", "teletherapy", "video session", "video therapy",
	"online therapy", "online counseling", "virtual session",
	"virtual therapy", "virtual appointment", "doxy", "zoom",
	"simplepractice telehealth", "remote therapy",
}

var telehealthPhone = []string{
	"phone session", "phone therapy", "telephone session",
	"telephone therapy", "phone counseling",
}

var telehealthNo = []string{
	"in-person only", "in person only", "office visits only",
	"no telehealth", "does not offer telehealth",
}

// DetectTelehealth classifies telehealth availability. The negative list
// short-circuits: "in-person only" wins even when a platform name appears.
func DetectTelehealth(text string) model.Telehealth {
	if text == "" {
		return model.TelehealthUnknown
	}
	lower := strings.ToLower(text)
	if containsAny(lower, telehealthNo) {
		return model.TelehealthNo
	}
	hasVideo := containsAny(lower, telehealthVideo)
	hasPhone := containsAny(lower, telehealthPhone)
	switch {
	case hasVideo && hasPhone:
		return model.TelehealthBoth
	case hasVideo:
		return model.TelehealthVideo
	case hasPhone:
		return model.TelehealthPhone
	}
	return model.TelehealthUnknown
}

// telehealthPlatforms maps platform display names to their text keywords.
var telehealthPlatforms = map[string][]string{
	"doxy.me":         {"doxy", "doxy.me"},
	"Zoom":            {"zoom"},
	"SimplePractice":  {"simplepractice", "simple practice"},
	"TherapyNotes":    {"therapynotes", "therapy notes"},
	"VSee":            {"vsee"},
	"Google Meet":     {"google meet"},
	"Microsoft Teams": {"microsoft teams", "ms teams"},
	"TheraNest":       {"theranest"},
	"Jane App":        {"jane app", "janeapp"},
}

// DetectTelehealthPlatform returns a comma-joined list of every platform
// whose keyword appears. Platforms are not mutually exclusive with the
// availability classification.
func DetectTelehealthPlatform(text string) string {
	if text == "" {
		return ""
	}
	lower := strings.ToLower(text)
	var found []string
	for platform, keywords := range telehealthPlatforms {
		if containsAny(lower, keywords) {
			found = append(found, platform)
		}
	}
	sort.Strings(found)
	return strings.Join(found, ", ")
}

var slidingYes = []string{
	"sliding scale", "sliding fee", "income-based",
	"reduced fee", "reduced rate", "financial hardship",
	"ability to pay", "affordable rates",
}

var slidingNo = []string{
	"no sliding scale", "does not offer sliding",
	"do not offer sliding",
}

// DetectSlidingScale classifies whether sliding-scale fees are offered.
func DetectSlidingScale(text string) model.TriState {
	if text == "" {
		return model.TriUnknown
	}
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, slidingNo):
		return model.TriNo
	case containsAny(lower, slidingYes):
		return model.TriYes
	}
	return model.TriUnknown
}
