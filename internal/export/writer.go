package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/therapistindex/directory-cli/internal/model"
)

// WriteBatches writes listings as GeoDirectory import CSVs of at most
// batchSize rows each and returns the written paths. A batch that fits in
// one file keeps the plain filename; larger sets get _batchN suffixes so
// they can be imported one at a time.
func WriteBatches(dir, filename string, listings []model.Listing, batchSize int, now time.Time) ([]string, error) {
	if batchSize <= 0 {
		batchSize = 500
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrap(err, "export: create output dir")
	}

	if len(listings) <= batchSize {
		path := filepath.Join(dir, filename)
		if err := writeFile(path, listings, now); err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	var paths []string
	numBatches := (len(listings) + batchSize - 1) / batchSize
	for i := 0; i < numBatches; i++ {
		start := i * batchSize
		end := start + batchSize
		if end > len(listings) {
			end = len(listings)
		}

		path := filepath.Join(dir, fmt.Sprintf("%s_batch%d%s", base, i+1, ext))
		if err := writeFile(path, listings[start:end], now); err != nil {
			return paths, err
		}
		paths = append(paths, path)

		zap.L().Info("export: batch written",
			zap.Int("batch", i+1),
			zap.Int("batches", numBatches),
			zap.Int("rows", end-start),
			zap.String("path", path),
		)
	}
	return paths, nil
}

func writeFile(path string, listings []model.Listing, now time.Time) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create file")
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	header := Header()
	if err := w.Write(header); err != nil {
		return eris.Wrap(err, "export: write header")
	}

	for i := range listings {
		row := Row(&listings[i], now)
		record := make([]string, len(header))
		for j, col := range header {
			record[j] = row[col]
		}
		if err := w.Write(record); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "export: flush")
	}
	return f.Close()
}
