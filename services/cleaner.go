package services

import (
	"math"
	"strings"

	"airbnb-analysis/models"
	"airbnb-analysis/utils"
)

// CleanStats counts records at each stage of cleaning.
type CleanStats struct {
	// Total is the number of input records.
	Total int
	// Complete is the number left after dropping records with any missing cell.
	Complete int
	// Clean is the number left after numeric coercion and the second drop.
	Clean int
}

// Cleaner turns a loaded table into one that is rectangular on the numeric
// listing columns. Bad values are filtered, never reported as errors.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean returns a new table; the input is not modified and no record is shared
// between the two.
func (c *Cleaner) Clean(t *models.Table) (*models.Table, CleanStats) {
	stats := CleanStats{Total: t.Len()}

	numeric := make([]int, 0, len(models.NumericColumns))
	schema := t.Schema
	for _, name := range models.NumericColumns {
		i, ok := t.Schema.Index(name)
		if !ok {
			c.logger.Warn("[cleaner] Column %q not present — skipping coercion", name)
			continue
		}
		numeric = append(numeric, i)
		schema = schema.WithType(name, models.TypeFloat)
	}

	out := models.NewTable(schema)
	out.Records = make([]models.Record, 0, len(t.Records))

	for _, r := range t.Records {
		if !complete(r) {
			continue
		}
		stats.Complete++

		rec := append(models.Record(nil), r...)
		for _, i := range numeric {
			rec[i] = coerceFloat(rec[i], t.Schema.Columns[i].Type)
		}
		if !completeAt(rec, numeric) {
			continue
		}
		out.Records = append(out.Records, rec)
	}
	stats.Clean = out.Len()

	c.logger.Info("[cleaner] Cleaned %d → %d listings (dropped %d incomplete, %d non-numeric)",
		stats.Total, stats.Clean, stats.Total-stats.Complete, stats.Complete-stats.Clean)
	return out, stats
}

// coerceFloat reinterprets a cell as a float. Cells of numeric columns keep
// their value; text is parsed, and anything unparsable becomes null.
func coerceFloat(v models.Value, from models.ColumnType) models.Value {
	if v.Missing() {
		return models.NullValue
	}
	if from.Numeric() {
		return v
	}
	f, ok := models.ParseNumber(strings.TrimSpace(v.Text))
	if !ok || math.IsNaN(f) {
		return models.NullValue
	}
	return models.Value{Text: v.Text, Num: f}
}

func complete(r models.Record) bool {
	for _, v := range r {
		if v.Missing() {
			return false
		}
	}
	return true
}

func completeAt(r models.Record, cols []int) bool {
	for _, i := range cols {
		if r[i].Missing() {
			return false
		}
	}
	return true
}
