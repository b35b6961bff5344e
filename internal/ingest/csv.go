// Package ingest loads raw listing CSVs and writes the canonical pipeline
// CSVs passed between stages.
package ingest

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/therapistindex/directory-cli/internal/model"
	"github.com/therapistindex/directory-cli/internal/normalize"
)

// Load reads listings from a CSV file or every *.csv in a directory.
// Column headers are normalized to canonical attribute names; a missing
// name column is fatal because every downstream key builds on the name.
func Load(path string) ([]model.Listing, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: stat %s", path)
	}

	if !info.IsDir() {
		return loadFile(path)
	}

	matches, err := filepath.Glob(filepath.Join(path, "*.csv"))
	if err != nil {
		return nil, eris.Wrap(err, "ingest: glob")
	}
	if len(matches) == 0 {
		return nil, eris.Errorf("ingest: no CSV files in %s", path)
	}
	sort.Strings(matches)

	var all []model.Listing
	for _, file := range matches {
		listings, err := loadFile(file)
		if err != nil {
			return nil, err
		}
		all = append(all, listings...)
	}
	zap.L().Info("loaded raw listings",
		zap.Int("count", len(all)),
		zap.Int("files", len(matches)),
	)
	return all, nil
}

func loadFile(path string) ([]model.Listing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: open %s", path)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // allow ragged rows from flaky exports

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: read %s", path)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	hasName := false
	for i, h := range rows[0] {
		header[i] = normalize.Column(h)
		if header[i] == "therapist_name" {
			hasName = true
		}
	}
	if !hasName {
		return nil, eris.Errorf("ingest: %s has no name column; check the export format", path)
	}

	source := filepath.Base(path)
	listings := make([]model.Listing, 0, len(rows)-1)
	for _, row := range rows[1:] {
		var l model.Listing
		for i, val := range row {
			if i >= len(header) {
				break
			}
			SetField(&l, header[i], val)
		}
		l.SourceFile = source
		listings = append(listings, l)
	}
	return listings, nil
}

// Write serializes listings to a canonical-column CSV at path, creating
// parent directories as needed.
func Write(path string, listings []model.Listing) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrap(err, "ingest: mkdir")
	}
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "ingest: create %s", path)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return eris.Wrap(err, "ingest: write header")
	}
	for i := range listings {
		row := make([]string, len(Columns))
		for j, col := range Columns {
			row[j] = Field(&listings[i], col)
		}
		if err := w.Write(row); err != nil {
			return eris.Wrap(err, "ingest: write row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "ingest: flush")
	}
	return nil
}
