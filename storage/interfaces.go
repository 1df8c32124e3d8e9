package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"airbnb-analysis/config"
	"airbnb-analysis/models"
	"airbnb-analysis/utils"
)

// TableReader is the interface any listings source must satisfy.
type TableReader interface {
	Read(ctx context.Context) (*models.Table, error)
	Close() error
}

// NewReader returns the TableReader selected by cfg.InputSource.
func NewReader(ctx context.Context, cfg *config.Config, logger *utils.Logger) (TableReader, error) {
	switch strings.ToLower(cfg.InputSource) {
	case "", config.SourceCSV:
		return NewCSVReader(cfg.CSVInputPath, logger), nil
	case config.SourcePostgres:
		retry := &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		}
		return NewPostgresReader(ctx, cfg.DSN(), cfg.PostgresTable, retry, logger)
	default:
		return nil, &models.LoadError{
			Source: cfg.InputSource,
			Err:    fmt.Errorf("unknown input source %q", cfg.InputSource),
		}
	}
}
