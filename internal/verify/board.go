package verify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/therapistindex/directory-cli/internal/config"
	"github.com/therapistindex/directory-cli/internal/nameparse"
	"github.com/therapistindex/directory-cli/internal/resilience"
)

const verifyUserAgent = "TherapistIndex Directory Verification Bot/1.0"

// Board lookup endpoints.
const (
	dcLookupURL = "https://doh.dc.gov/service/license-verification"
	mdLookupURL = "https://health.maryland.gov/bopc"
	vaLookupURL = "https://dhp.virginia.gov/lookup/default"
)

// boardVerifier queries a single board's public lookup page and scans the
// response for the therapist's last name.
type boardVerifier struct {
	jurisdiction Jurisdiction
	source       string
	boardLabel   string
	lookupURL    string
	buildParams  func(first, last string) url.Values

	client  *http.Client
	limiter *rate.Limiter
}

func newBoardVerifier(j Jurisdiction, source, boardLabel, lookupURL string, buildParams func(first, last string) url.Values, cfg config.VerifyConfig) *boardVerifier {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	limit := rate.Inf
	if cfg.DelaySecs > 0 {
		limit = rate.Every(time.Duration(cfg.DelaySecs) * time.Second)
	}

	return &boardVerifier{
		jurisdiction: j,
		source:       source,
		boardLabel:   boardLabel,
		lookupURL:    lookupURL,
		buildParams:  buildParams,
		client:       &http.Client{Timeout: timeout},
		limiter:      rate.NewLimiter(limit, 1),
	}
}

// NewDC creates the DC Department of Health verifier.
func NewDC(cfg config.VerifyConfig) Verifier {
	return newBoardVerifier(JurisdictionDC, "dc_doh", "DC DOH", dcLookupURL,
		func(first, last string) url.Values {
			return url.Values{"last_name": {last}, "first_name": {first}}
		}, cfg)
}

// NewMD creates the Maryland Board of Professional Counselors verifier.
func NewMD(cfg config.VerifyConfig) Verifier {
	return newBoardVerifier(JurisdictionMD, "md_bopc", "MD BOPC", mdLookupURL,
		func(first, last string) url.Values {
			return url.Values{"lastName": {last}, "firstName": {first}}
		}, cfg)
}

// NewVA creates the Virginia Department of Health Professions verifier.
func NewVA(cfg config.VerifyConfig) Verifier {
	return newBoardVerifier(JurisdictionVA, "va_dhp", "VA DHP", vaLookupURL,
		func(first, last string) url.Values {
			return url.Values{"lastName": {last}, "firstName": {first}, "profession": {"counseling"}}
		}, cfg)
}

// NewRegistry builds the full jurisdiction registry.
func NewRegistry(cfg config.VerifyConfig) Registry {
	return Registry{
		JurisdictionDC: NewDC(cfg),
		JurisdictionMD: NewMD(cfg),
		JurisdictionVA: NewVA(cfg),
	}
}

func (b *boardVerifier) Jurisdiction() Jurisdiction { return b.jurisdiction }

func (b *boardVerifier) Verify(ctx context.Context, name, licenseType string) Result {
	res := Result{LicenseType: licenseType, Source: b.source}

	tokens := nameparse.Parse(name)
	if tokens.Last == "" {
		res.Notes = "Could not parse name"
		return res
	}

	if err := b.limiter.Wait(ctx); err != nil {
		res.Notes = fmt.Sprintf("Request error: %v", err)
		return res
	}

	lr, err := resilience.DoVal(ctx, resilience.RetryConfig{MaxAttempts: 2}, func(ctx context.Context) (lookupResponse, error) {
		return b.fetch(ctx, tokens.First, tokens.Last)
	})
	if err != nil {
		res.Notes = fmt.Sprintf("Request error: %v", err)
		return res
	}
	if lr.status != http.StatusOK {
		res.Notes = fmt.Sprintf("%s returned status %d", b.boardLabel, lr.status)
		return res
	}

	// A substring hit flags the record for manual review only.
	if strings.Contains(strings.ToLower(lr.body), strings.ToLower(tokens.Last)) {
		res.Notes = fmt.Sprintf("Name found in %s database, needs manual confirmation", b.boardLabel)
	} else {
		res.Notes = fmt.Sprintf("Name not found in %s search results", b.boardLabel)
	}
	return res
}

type lookupResponse struct {
	body   string
	status int
}

func (b *boardVerifier) fetch(ctx context.Context, first, last string) (lookupResponse, error) {
	reqURL := b.lookupURL + "?" + b.buildParams(first, last).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return lookupResponse{}, err
	}
	req.Header.Set("User-Agent", verifyUserAgent)

	resp, err := b.client.Do(req)
	if err != nil {
		return lookupResponse{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resilience.IsTransientHTTPStatus(resp.StatusCode) {
		return lookupResponse{}, resilience.NewTransientError(
			fmt.Errorf("%s returned status %d", b.boardLabel, resp.StatusCode), resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return lookupResponse{}, err
	}
	return lookupResponse{body: string(body), status: resp.StatusCode}, nil
}
