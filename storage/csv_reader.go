package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"airbnb-analysis/models"
	"airbnb-analysis/utils"
)

// CSVReader loads a comma-delimited file with a header row.
type CSVReader struct {
	path   string
	logger *utils.Logger
}

// NewCSVReader creates a reader for the file at path. The file is not opened
// until Read is called.
func NewCSVReader(path string, logger *utils.Logger) *CSVReader {
	return &CSVReader{path: path, logger: logger}
}

// Read opens the file and parses it into a Table. Every failure is returned as
// a *models.LoadError.
func (c *CSVReader) Read(ctx context.Context) (*models.Table, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, &models.LoadError{Source: c.path, Err: fmt.Errorf("csv: open: %w", err)}
	}
	defer f.Close()

	t, skipped, err := ReadCSV(ctx, f)
	if err != nil {
		return nil, &models.LoadError{Source: c.path, Err: err}
	}
	if skipped > 0 {
		c.logger.Warn("[csv] Skipped %d malformed rows in %s", skipped, c.path)
	}
	c.logger.Info("[csv] Loaded %d rows × %d columns from %s",
		t.Len(), len(t.Schema.Columns), c.path)
	return t, nil
}

// Close is a no-op; the file is closed at the end of Read.
func (c *CSVReader) Close() error { return nil }

// ReadCSV parses CSV data from r. Rows shorter than the header are padded with
// nulls and longer rows are truncated; rows the CSV parser rejects are skipped
// and counted. Empty cells are null.
func ReadCSV(ctx context.Context, r io.Reader) (*models.Table, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, fmt.Errorf("csv: %w", models.ErrNoHeader)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("csv: read header: %w", err)
	}

	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		header[i] = strings.TrimSpace(h)
	}
	if len(header) == 1 && header[0] == "" {
		return nil, 0, fmt.Errorf("csv: %w", models.ErrNoHeader)
	}
	header = uniqueHeader(header)

	var (
		rows    []rawRow
		skipped int
	)
	for n := 0; ; n++ {
		if n%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, 0, fmt.Errorf("csv: %w", err)
			}
		}

		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				skipped++
				continue
			}
			return nil, 0, fmt.Errorf("csv: read row: %w", err)
		}

		row := make(rawRow, len(header))
		for i := range row {
			if i >= len(fields) || fields[i] == "" {
				row[i] = rawCell{null: true}
				continue
			}
			row[i] = rawCell{text: fields[i]}
		}
		rows = append(rows, row)
	}

	return buildTable(header, rows), skipped, nil
}
