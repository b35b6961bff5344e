package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/therapistindex/directory-cli/internal/model"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileNormalizesHeaders(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "raw.csv",
		"name,Full Address,site,rating,reviews\n"+
			"Jane Smith,\"123 Main St, Washington, DC\",janesmiththerapy.com,4.9,27\n")

	listings, err := Load(path)
	require.NoError(t, err)
	require.Len(t, listings, 1)

	l := listings[0]
	assert.Equal(t, "Jane Smith", l.Name)
	assert.Equal(t, "123 Main St, Washington, DC", l.Address)
	assert.Equal(t, "janesmiththerapy.com", l.Website)
	assert.Equal(t, "4.9", l.Rating)
	assert.Equal(t, "27", l.ReviewCount)
	assert.Equal(t, "raw.csv", l.SourceFile)
}

func TestLoadDirectoryMergesSorted(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "b.csv", "therapist_name\nSecond Practice\n")
	writeCSV(t, dir, "a.csv", "therapist_name\nFirst Practice\n")

	listings, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "First Practice", listings[0].Name)
	assert.Equal(t, "Second Practice", listings[1].Name)
	assert.Equal(t, "a.csv", listings[0].SourceFile)
}

func TestLoadMissingNameColumn(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "bad.csv", "address,phone\n123 Main St,2025550101\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no name column")
}

func TestLoadEmptyDirectory(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no CSV files")
}

func TestLoadMissingPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestLoadRaggedRows(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "ragged.csv",
		"therapist_name,phone\nJane Smith\nJohn Doe,2025550101,extra\n")

	listings, err := Load(path)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Empty(t, listings[0].Phone)
	assert.Equal(t, "2025550101", listings[1].Phone)
}

func TestWriteRoundTrip(t *testing.T) {
	min, max := 100, 180
	in := []model.Listing{
		{
			Name:             "Jane Smith",
			City:             "Washington",
			State:            "DC",
			GroupPractice:    true,
			EnrichmentStatus: "enriched_full",
			Enrichment: &model.Enrichment{
				InsuranceAccepted: []string{"Aetna", "Cigna"},
				SlidingScale:      model.TriYes,
				PriceMin:          &min,
				PriceMax:          &max,
				Telehealth:        model.TelehealthBoth,
				AcceptingPatients: model.AcceptingYes,
				Languages:         []string{"English", "Spanish"},
			},
		},
		{Name: "No Enrichment", State: "MD"},
	}

	path := filepath.Join(t.TempDir(), "out", "listings.csv")
	require.NoError(t, Write(path, in))

	out, err := Load(path)
	require.NoError(t, err)
	require.Len(t, out, 2)

	got := out[0]
	assert.Equal(t, "Jane Smith", got.Name)
	assert.True(t, got.GroupPractice)
	assert.Equal(t, "enriched_full", got.EnrichmentStatus)
	require.NotNil(t, got.Enrichment)
	assert.Equal(t, []string{"Aetna", "Cigna"}, got.Enrichment.InsuranceAccepted)
	assert.Equal(t, model.TriYes, got.Enrichment.SlidingScale)
	require.NotNil(t, got.Enrichment.PriceMin)
	assert.Equal(t, 100, *got.Enrichment.PriceMin)
	assert.Equal(t, model.TelehealthBoth, got.Enrichment.Telehealth)
	assert.Equal(t, []string{"English", "Spanish"}, got.Enrichment.Languages)

	assert.Nil(t, out[1].Enrichment)
	assert.False(t, out[1].GroupPractice)
}

func TestSetFieldUnknownColumnIgnored(t *testing.T) {
	var l model.Listing
	SetField(&l, "mystery_column", "value")
	assert.Equal(t, model.Listing{}, l)
}

func TestSetFieldBadNumberIgnored(t *testing.T) {
	var l model.Listing
	SetField(&l, "price_range_min", "not a number")
	assert.Nil(t, l.Enrichment)
}
