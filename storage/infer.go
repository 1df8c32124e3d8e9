package storage

import (
	"strconv"

	"airbnb-analysis/models"
)

// rawCell is a source cell before typing.
type rawCell struct {
	text string
	null bool
}

type rawRow []rawCell

// buildTable infers a type for every column and converts the raw rows into a
// typed Table. A column whose non-null cells all parse as integers is an int
// column; all parse as floats, a float column; anything else, or no non-null
// cells at all, a string column.
func buildTable(header []string, rows []rawRow) *models.Table {
	cols := make([]models.Column, len(header))
	for i, name := range header {
		cols[i] = models.Column{Name: name, Type: inferColumn(rows, i)}
	}

	t := models.NewTable(models.NewSchema(cols))
	t.Records = make([]models.Record, 0, len(rows))
	for _, row := range rows {
		rec := make(models.Record, len(cols))
		for i, col := range cols {
			if i >= len(row) || row[i].null {
				rec[i] = models.NullValue
				continue
			}
			rec[i] = typedValue(row[i].text, col.Type)
		}
		t.Records = append(t.Records, rec)
	}
	return t
}

func inferColumn(rows []rawRow, col int) models.ColumnType {
	seen := false
	typ := models.TypeInt
	for _, row := range rows {
		if col >= len(row) || row[col].null {
			continue
		}
		seen = true
		text := row[col].text
		if typ == models.TypeInt {
			if _, err := strconv.ParseInt(text, 10, 64); err == nil {
				continue
			}
			typ = models.TypeFloat
		}
		if _, ok := models.ParseNumber(text); !ok {
			return models.TypeString
		}
	}
	if !seen {
		return models.TypeString
	}
	return typ
}

func typedValue(text string, typ models.ColumnType) models.Value {
	if !typ.Numeric() {
		return models.TextValue(text)
	}
	f, ok := models.ParseNumber(text)
	if !ok {
		return models.NullValue
	}
	return models.Value{Text: text, Num: f}
}

// uniqueHeader fills blank names with a positional name and disambiguates
// repeated names by appending the column index.
func uniqueHeader(names []string) []string {
	counts := make(map[string]int, len(names))
	for _, n := range names {
		counts[n]++
	}
	out := make([]string, len(names))
	for i, n := range names {
		switch {
		case n == "":
			out[i] = "_c" + strconv.Itoa(i)
		case counts[n] > 1:
			out[i] = n + strconv.Itoa(i)
		default:
			out[i] = n
		}
	}
	return out
}
