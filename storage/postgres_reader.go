package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"airbnb-analysis/models"
	"airbnb-analysis/utils"
)

// PostgresReader loads listings from an existing PostgreSQL table. It only
// reads; nothing is written back.
type PostgresReader struct {
	db     *sql.DB
	table  string
	logger *utils.Logger
}

// NewPostgresReader opens a connection and pings it with retry.
func NewPostgresReader(ctx context.Context, dsn, table string, retry *utils.RetryConfig, logger *utils.Logger) (*PostgresReader, error) {
	source := "postgres:" + table

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, &models.LoadError{Source: source, Err: fmt.Errorf("postgres: open: %w", err)}
	}

	if err := retry.Do(ctx, "postgres ping", db.PingContext); err != nil {
		_ = db.Close()
		return nil, &models.LoadError{Source: source, Err: fmt.Errorf("postgres: %w", err)}
	}

	return &PostgresReader{db: db, table: table, logger: logger}, nil
}

// Read selects every row of the configured table. SQL NULL becomes a null
// cell; column types are inferred the same way as for CSV input.
func (pr *PostgresReader) Read(ctx context.Context) (*models.Table, error) {
	source := "postgres:" + pr.table

	ident, err := quoteQualified(pr.table)
	if err != nil {
		return nil, &models.LoadError{Source: source, Err: err}
	}

	rows, err := pr.db.QueryContext(ctx, "SELECT * FROM "+ident)
	if err != nil {
		return nil, &models.LoadError{Source: source, Err: fmt.Errorf("postgres: select: %w", err)}
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, &models.LoadError{Source: source, Err: fmt.Errorf("postgres: columns: %w", err)}
	}
	if len(header) == 0 {
		return nil, &models.LoadError{Source: source, Err: models.ErrNoHeader}
	}

	var raw []rawRow
	dest := make([]sql.NullString, len(header))
	ptrs := make([]any, len(header))
	for i := range dest {
		ptrs[i] = &dest[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &models.LoadError{Source: source, Err: fmt.Errorf("postgres: scan row: %w", err)}
		}
		row := make(rawRow, len(header))
		for i, v := range dest {
			row[i] = rawCell{text: v.String, null: !v.Valid}
		}
		raw = append(raw, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.LoadError{Source: source, Err: fmt.Errorf("postgres: rows: %w", err)}
	}

	t := buildTable(uniqueHeader(header), raw)
	pr.logger.Info("[postgres] Loaded %d rows × %d columns from %s",
		t.Len(), len(t.Schema.Columns), pr.table)
	return t, nil
}

func (pr *PostgresReader) Close() error {
	return pr.db.Close()
}

// quoteQualified quotes a possibly schema-qualified table name.
func quoteQualified(name string) (string, error) {
	parts := strings.Split(strings.TrimSpace(name), ".")
	if len(parts) > 2 {
		return "", fmt.Errorf("postgres: invalid table name %q", name)
	}
	for i, p := range parts {
		if p == "" {
			return "", fmt.Errorf("postgres: invalid table name %q", name)
		}
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, "."), nil
}
