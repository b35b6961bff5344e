// Package verify cross-references therapist names against state licensing
// board lookups. A board hit is only a "name appears in source" signal; it
// flags the record for manual review and never auto-verifies.
package verify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/therapistindex/directory-cli/internal/model"
)

// Jurisdiction is a licensing board jurisdiction we can query.
type Jurisdiction string

const (
	JurisdictionDC Jurisdiction = "DC"
	JurisdictionMD Jurisdiction = "MD"
	JurisdictionVA Jurisdiction = "VA"
)

// ParseJurisdiction maps a state code to a supported jurisdiction.
func ParseJurisdiction(state string) (Jurisdiction, bool) {
	switch Jurisdiction(strings.ToUpper(strings.TrimSpace(state))) {
	case JurisdictionDC:
		return JurisdictionDC, true
	case JurisdictionMD:
		return JurisdictionMD, true
	case JurisdictionVA:
		return JurisdictionVA, true
	default:
		return "", false
	}
}

// Result is the outcome of one board lookup.
type Result struct {
	Verified      bool
	LicenseNumber string
	LicenseType   string
	Source        string
	Notes         string
}

// Verifier queries one licensing board.
type Verifier interface {
	Jurisdiction() Jurisdiction
	Verify(ctx context.Context, name, licenseType string) Result
}

// Registry holds the verifier for each supported jurisdiction.
type Registry map[Jurisdiction]Verifier

// Summary counts the outcomes of a verification batch.
type Summary struct {
	Processed  int
	Flagged    int
	NoVerifier int
}

// Batch verifies listings in place. Lookups that fail leave their reason in
// the verification notes; nothing here is fatal.
func Batch(ctx context.Context, registry Registry, listings []model.Listing) (*Summary, error) {
	sum := &Summary{}

	for i := range listings {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		l := &listings[i]
		if l.Name == "" {
			continue
		}

		j, ok := ParseJurisdiction(l.State)
		if !ok {
			l.VerificationNotes = fmt.Sprintf("No verifier available for state: %s", strings.ToUpper(l.State))
			sum.NoVerifier++
			continue
		}
		v, ok := registry[j]
		if !ok {
			l.VerificationNotes = fmt.Sprintf("No verifier available for state: %s", j)
			sum.NoVerifier++
			continue
		}

		res := v.Verify(ctx, l.Name, l.LicenseType)
		l.LicenseVerified = res.Verified
		if res.LicenseNumber != "" {
			l.LicenseNumber = res.LicenseNumber
		}
		if res.LicenseType != "" {
			l.LicenseType = res.LicenseType
		}
		l.VerificationNotes = res.Notes

		if strings.Contains(res.Notes, "needs manual confirmation") {
			sum.Flagged++
		}

		sum.Processed++
		if sum.Processed%10 == 0 {
			zap.L().Info("verify: progress", zap.Int("processed", sum.Processed), zap.Int("total", len(listings)))
		}
	}

	return sum, nil
}
