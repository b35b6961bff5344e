package outscraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))
		assert.Equal(t, "therapist, Washington, DC", r.URL.Query().Get("query"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, "en", r.URL.Query().Get("language"))
		assert.Equal(t, "false", r.URL.Query().Get("async"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "req-1",
			"status": "Success",
			"data": [[
				{
					"name": "Jane Smith, LCSW",
					"full_address": "123 Main St NW, Washington, DC 20001",
					"city": "Washington",
					"state": "District Of Columbia",
					"state_code": "DC",
					"postal_code": "20001",
					"phone": "+1 202-555-0101",
					"site": "https://janesmiththerapy.com",
					"rating": 4.9,
					"reviews": 27,
					"subtypes": "Psychotherapist, Family counselor",
					"place_id": "ChIJabc123",
					"business_status": "OPERATIONAL"
				}
			]]
		}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	places, err := client.Search(context.Background(), "therapist, Washington, DC", WithLimit(50))
	require.NoError(t, err)
	require.Len(t, places, 1)

	p := places[0]
	assert.Equal(t, "Jane Smith, LCSW", p.Name)
	assert.Equal(t, "DC", p.StateCode)
	assert.Equal(t, "Psychotherapist, Family counselor", p.Subtypes)
	assert.Equal(t, "4.9", p.Rating.String())
	assert.Equal(t, "27", p.Reviews.String())
	assert.Equal(t, "ChIJabc123", p.PlaceID)
}

func TestSearchEmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": "req-2", "status": "Success", "data": []}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	places, err := client.Search(context.Background(), "therapist, Nowhere")
	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestSearchAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": "rate limited"}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.Search(context.Background(), "therapist, Washington, DC")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
}
