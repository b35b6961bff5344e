// Package outscraper provides a client for the Outscraper Google Maps
// search API.
package outscraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

// Client defines the Outscraper operations.
type Client interface {
	// Search runs a Google Maps search query (e.g. "therapist, Washington, DC")
	// and returns the place records.
	Search(ctx context.Context, query string, opts ...SearchOption) ([]Place, error)
}

// Place is one Google Maps listing as returned by the API.
type Place struct {
	Name           string          `json:"name"`
	FullAddress    string          `json:"full_address"`
	Street         string          `json:"street"`
	City           string          `json:"city"`
	State          string          `json:"state"`
	StateCode      string          `json:"state_code"`
	PostalCode     string          `json:"postal_code"`
	CountryCode    string          `json:"country_code"`
	Phone          string          `json:"phone"`
	Site           string          `json:"site"`
	Rating         json.Number     `json:"rating"`
	Reviews        json.Number     `json:"reviews"`
	Category       string          `json:"category"`
	Subtypes       string          `json:"subtypes"`
	WorkingHours   json.RawMessage `json:"working_hours"`
	Latitude       json.Number     `json:"latitude"`
	Longitude      json.Number     `json:"longitude"`
	PlaceID        string          `json:"place_id"`
	GoogleID       string          `json:"google_id"`
	BusinessStatus string          `json:"business_status"`
	Photo          string          `json:"photo"`
	Description    string          `json:"description"`
}

// searchResponse is the API envelope. Data holds one slice of places per
// submitted query; we submit one query per call.
type searchResponse struct {
	ID     string    `json:"id"`
	Status string    `json:"status"`
	Data   [][]Place `json:"data"`
}

// SearchOption configures a search request.
type SearchOption func(*searchOpts)

type searchOpts struct {
	limit    int
	language string
	region   string
}

// WithLimit caps the number of results per query.
func WithLimit(limit int) SearchOption {
	return func(o *searchOpts) {
		o.limit = limit
	}
}

// WithLanguage sets the results language.
func WithLanguage(lang string) SearchOption {
	return func(o *searchOpts) {
		o.language = lang
	}
}

// WithRegion sets the search region.
func WithRegion(region string) SearchOption {
	return func(o *searchOpts) {
		o.region = region
	}
}

// Option configures the Outscraper client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(baseURL string) Option {
	return func(c *httpClient) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new Outscraper client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://api.app.outscraper.com",
		http: &http.Client{
			// Synchronous searches can take a while server-side.
			Timeout: 5 * time.Minute,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, query string, opts ...SearchOption) ([]Place, error) {
	o := searchOpts{limit: 100, language: "en", region: "US"}
	for _, opt := range opts {
		opt(&o)
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(o.limit))
	params.Set("language", o.language)
	params.Set("region", o.region)
	params.Set("async", "false")

	reqURL := fmt.Sprintf("%s/maps/search-v3?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "outscraper: create request")
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "outscraper: search request")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "outscraper: read response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, eris.Wrap(err, "outscraper: decode response")
	}
	if len(sr.Data) == 0 {
		return nil, nil
	}
	return sr.Data[0], nil
}

// APIError is a non-200 response from the Outscraper API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("outscraper: API error %d: %s", e.StatusCode, e.Body)
}
