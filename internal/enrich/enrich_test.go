package enrich

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/therapistindex/directory-cli/internal/config"
	"github.com/therapistindex/directory-cli/internal/extract"
	"github.com/therapistindex/directory-cli/internal/lookup"
	"github.com/therapistindex/directory-cli/internal/model"
	"github.com/therapistindex/directory-cli/internal/scrape"
	"github.com/therapistindex/directory-cli/internal/store"
)

// fakeRetriever serves canned page text by URL and records which URLs were
// fetched.
type fakeRetriever struct {
	mu      sync.Mutex
	pages   map[string]string
	fetched []string
}

func (f *fakeRetriever) Retrieve(_ context.Context, url string) (*scrape.Page, bool) {
	f.mu.Lock()
	f.fetched = append(f.fetched, url)
	f.mu.Unlock()

	text, ok := f.pages[url]
	if !ok {
		return nil, false
	}
	return &scrape.Page{URL: url, Text: text}, true
}

func newTestEnricher(t *testing.T, retriever scrape.Retriever) (*Enricher, store.Store) {
	t.Helper()

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.Migrate(context.Background()))

	extractor := extract.New(
		lookup.Table{"aetna": "Aetna"},
		lookup.Table{"anxiety": "Anxiety"},
		lookup.Table{"cbt": "CBT"},
	)

	e := New(retriever, extractor, st, config.EnrichConfig{Concurrency: 2, CheckpointEvery: 1}, 0)
	return e, st
}

func TestRunStatuses(t *testing.T) {
	retriever := &fakeRetriever{pages: map[string]string{
		"https://full.example.com":  "We accept Aetna insurance for all sessions.",
		"https://basic.example.com": "We specialize in anxiety treatment.",
	}}
	e, _ := newTestEnricher(t, retriever)

	listings := []model.Listing{
		{Name: "Full Therapy", PlaceID: "p1", Website: "https://full.example.com"},
		{Name: "Basic Therapy", PlaceID: "p2", Website: "https://basic.example.com"},
		{Name: "No Site Therapy", PlaceID: "p3"},
		{Name: "Dead Site Therapy", PlaceID: "p4", Website: "https://gone.example.com"},
	}

	res, err := e.Run(context.Background(), listings, false)
	require.NoError(t, err)

	assert.Equal(t, StatusFull, listings[0].EnrichmentStatus)
	require.NotNil(t, listings[0].Enrichment)
	assert.Equal(t, []string{"Aetna"}, listings[0].Enrichment.InsuranceAccepted)

	assert.Equal(t, StatusBasic, listings[1].EnrichmentStatus)
	assert.Equal(t, StatusCleaned, listings[2].EnrichmentStatus)
	assert.Equal(t, StatusCleaned, listings[3].EnrichmentStatus)

	assert.Equal(t, 1, res.Full)
	assert.Equal(t, 1, res.Basic)
	assert.Equal(t, 2, res.NoContent)
	assert.Equal(t, model.RunStatusComplete, res.Run.Status)
	assert.Equal(t, 4, res.Run.Processed)
}

func TestRunResumeSkipsCheckpointed(t *testing.T) {
	retriever := &fakeRetriever{pages: map[string]string{
		"https://a.example.com": "We accept Aetna.",
		"https://b.example.com": "We specialize in anxiety.",
	}}
	e, st := newTestEnricher(t, retriever)
	ctx := context.Background()

	// Simulate an interrupted run that already processed listing p1.
	prev, err := st.CreateRun(ctx, "enrich", 2)
	require.NoError(t, err)
	require.NoError(t, st.UpdateRunStatus(ctx, prev.ID, model.RunStatusRunning))
	require.NoError(t, st.SaveCheckpoint(ctx, model.Checkpoint{
		RunID:      prev.ID,
		ListingKey: "p1",
		Enrichment: &model.Enrichment{InsuranceAccepted: []string{"Aetna"}},
	}))

	listings := []model.Listing{
		{Name: "A", PlaceID: "p1", Website: "https://a.example.com"},
		{Name: "B", PlaceID: "p2", Website: "https://b.example.com"},
	}

	res, err := e.Run(ctx, listings, true)
	require.NoError(t, err)

	assert.Equal(t, prev.ID, res.Run.ID)
	assert.Equal(t, 1, res.Resumed)
	assert.Equal(t, []string{"https://b.example.com"}, retriever.fetched)
	assert.Equal(t, StatusFull, listings[0].EnrichmentStatus)
	assert.Equal(t, StatusBasic, listings[1].EnrichmentStatus)
}

func TestRunResumeInterleavedCheckpoints(t *testing.T) {
	retriever := &fakeRetriever{pages: map[string]string{}}
	e, st := newTestEnricher(t, retriever)
	ctx := context.Background()

	prev, err := st.CreateRun(ctx, "enrich", 200)
	require.NoError(t, err)
	require.NoError(t, st.UpdateRunStatus(ctx, prev.ID, model.RunStatusRunning))

	// Every other listing already has a checkpoint, so resumed listings and
	// freshly worked listings alternate through the batch.
	listings := make([]model.Listing, 200)
	for i := range listings {
		key := fmt.Sprintf("p%d", i)
		listings[i] = model.Listing{
			Name:    "Practice " + key,
			PlaceID: key,
			Website: fmt.Sprintf("https://site%d.example.com", i),
		}
		if i%2 == 0 {
			require.NoError(t, st.SaveCheckpoint(ctx, model.Checkpoint{
				RunID:      prev.ID,
				ListingKey: key,
				Enrichment: &model.Enrichment{InsuranceAccepted: []string{"Aetna"}},
			}))
		}
	}

	res, err := e.Run(ctx, listings, true)
	require.NoError(t, err)

	assert.Equal(t, prev.ID, res.Run.ID)
	assert.Equal(t, 100, res.Resumed)
	assert.Equal(t, 100, res.Full)
	assert.Equal(t, 200, res.Run.Processed)

	retriever.mu.Lock()
	defer retriever.mu.Unlock()
	assert.Len(t, retriever.fetched, 100)
}

func TestRunResumeIgnoresCompleteRun(t *testing.T) {
	retriever := &fakeRetriever{pages: map[string]string{}}
	e, st := newTestEnricher(t, retriever)
	ctx := context.Background()

	prev, err := st.CreateRun(ctx, "enrich", 1)
	require.NoError(t, err)
	require.NoError(t, st.UpdateRunStatus(ctx, prev.ID, model.RunStatusComplete))

	listings := []model.Listing{{Name: "A", PlaceID: "p1"}}
	res, err := e.Run(ctx, listings, true)
	require.NoError(t, err)
	assert.NotEqual(t, prev.ID, res.Run.ID)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		enr  *model.Enrichment
		want string
	}{
		{"nil", nil, StatusCleaned},
		{"empty", &model.Enrichment{}, StatusCleaned},
		{"insurance wins", &model.Enrichment{InsuranceAccepted: []string{"Aetna"}}, StatusFull},
		{"specializations", &model.Enrichment{Specializations: []string{"Anxiety"}}, StatusBasic},
		{"telehealth", &model.Enrichment{Telehealth: model.TelehealthVideo}, StatusBasic},
		{"telehealth unknown is not a signal", &model.Enrichment{Telehealth: model.TelehealthUnknown}, StatusCleaned},
		{"accepting", &model.Enrichment{AcceptingPatients: model.AcceptingWaitlist}, StatusBasic},
		{"accepting unknown is not a signal", &model.Enrichment{AcceptingPatients: model.AcceptingUnknown}, StatusCleaned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.enr))
		})
	}
}
