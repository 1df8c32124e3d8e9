package services

import (
	"math"
	"reflect"
	"testing"

	"airbnb-analysis/models"
)

func TestCleanerScenarioDropsNullPrice(t *testing.T) {
	raw := mkTable(listingCols,
		[]any{1, "A", "Private", 100, 2, 0, 0.0, 1},
		[]any{2, "A", "Private", nil, 2, 0, 0.0, 1},
		[]any{3, "A", "Entire", 200, 5, 1, 0.5, 2},
	)

	cleaned, stats := NewCleaner(newTestLogger()).Clean(raw)
	if cleaned.Len() != 2 {
		t.Fatalf("cleaned rows: got %d, want 2", cleaned.Len())
	}
	if stats.Total != 3 || stats.Complete != 2 || stats.Clean != 2 {
		t.Errorf("stats: got %+v", stats)
	}

	groups, err := TopNeighbourhoodsByPrice(cleaned, TopNeighbourhoods)
	if err != nil {
		t.Fatalf("TopNeighbourhoodsByPrice: %v", err)
	}
	if len(groups) != 1 || groups[0].Label != "A" || groups[0].Mean != 150 {
		t.Errorf("groups: got %+v, want [A 150]", groups)
	}
}

func TestCleanerCoercesNumericColumns(t *testing.T) {
	cols := append([]models.Column(nil), listingCols...)
	cols[4].Type = models.TypeString // minimum_nights as text

	raw := mkTable(cols,
		listing(1, "A", "Private", 100, " 12 ", 1),
		listing(2, "A", "Private", 100, "abc", 1),
		listing(3, "A", "Private", 100, "NaN", 1),
		listing(4, "A", "Private", 100, "1e2", 1),
	)

	cleaned, stats := NewCleaner(newTestLogger()).Clean(raw)
	if stats.Complete != 4 || stats.Clean != 2 {
		t.Fatalf("stats: got %+v, want complete 4 clean 2", stats)
	}

	i, _ := cleaned.Schema.Index(models.ColMinimumNights)
	if got := cleaned.Schema.Columns[i].Type; got != models.TypeFloat {
		t.Errorf("minimum_nights type: got %v, want float", got)
	}
	if got := cleaned.Records[0][i].Num; got != 12 {
		t.Errorf("row 0 minimum_nights: got %v, want 12", got)
	}
	if got := cleaned.Records[1][i].Num; got != 100 {
		t.Errorf("row 1 minimum_nights: got %v, want 100", got)
	}
}

func TestCleanerNumberSyntax(t *testing.T) {
	cols := append([]models.Column(nil), listingCols...)
	cols[4].Type = models.TypeString

	raw := mkTable(cols,
		listing(1, "A", "Private", 100, "0x1p4", 1),
		listing(2, "A", "Private", 100, "1e400", 1),
	)

	cleaned, _ := NewCleaner(newTestLogger()).Clean(raw)
	if cleaned.Len() != 1 {
		t.Fatalf("cleaned rows: got %d, want 1 (hex dropped, overflow kept)", cleaned.Len())
	}
	i, _ := cleaned.Schema.Index(models.ColMinimumNights)
	if got := cleaned.Records[0][i].Num; !math.IsInf(got, 1) {
		t.Errorf("minimum_nights: got %v, want +Inf", got)
	}
}

func TestCleanedColumnsAreNonNullNumeric(t *testing.T) {
	cols := append([]models.Column(nil), listingCols...)
	cols[3].Type = models.TypeString // price as text

	raw := mkTable(cols,
		listing(1, "A", "Private", "100", 2, 1),
		listing(2, "B", "Private", "$50", 2, 1),
		listing(3, "B", "Entire", "", 2, 1),
		listing(4, "C", "Entire", "75.5", nil, 1),
		listing(5, "C", "Shared", "20", 1, 4),
	)

	cleaned, _ := NewCleaner(newTestLogger()).Clean(raw)
	idx, err := cleaned.Lookup(models.NumericColumns...)
	if err != nil {
		t.Fatal(err)
	}
	for r, rec := range cleaned.Records {
		for _, i := range idx {
			if rec[i].Missing() {
				t.Errorf("row %d column %s is missing", r, cleaned.Schema.Columns[i].Name)
			}
			if !cleaned.Schema.Columns[i].Type.Numeric() {
				t.Errorf("column %s is not numeric", cleaned.Schema.Columns[i].Name)
			}
		}
	}
	if cleaned.Len() != 2 {
		t.Errorf("cleaned rows: got %d, want 2", cleaned.Len())
	}
}

func TestCleanerIsIdempotent(t *testing.T) {
	cols := append([]models.Column(nil), listingCols...)
	cols[4].Type = models.TypeString

	raw := mkTable(cols,
		listing(1, "A", "Private", 100, "2", 1),
		listing(2, "B", "Entire", 300, "x", 2),
		listing(3, "B", "Entire", nil, "3", 2),
		listing(4, "C", "Shared", 40, "1", 5),
	)

	c := NewCleaner(newTestLogger())
	once, _ := c.Clean(raw)
	twice, stats := c.Clean(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("cleaning twice changed the table:\n once: %+v\ntwice: %+v", once, twice)
	}
	if stats.Total != stats.Clean {
		t.Errorf("second pass dropped rows: %+v", stats)
	}
}

func TestCleanerDoesNotAliasInput(t *testing.T) {
	raw := mkTable(listingCols, listing(1, "A", "Private", 100, 2, 1))

	cleaned, _ := NewCleaner(newTestLogger()).Clean(raw)
	cleaned.Records[0][1] = models.TextValue("changed")

	if raw.Records[0][1].Text != "A" {
		t.Error("mutating the cleaned table changed the input")
	}
}

func TestCleanerAllNonNumericYieldsEmptyTable(t *testing.T) {
	cols := append([]models.Column(nil), listingCols...)
	cols[4].Type = models.TypeString

	raw := mkTable(cols,
		listing(1, "A", "Private", 100, "N/A", 1),
		listing(2, "B", "Entire", 200, "N/A", 2),
	)

	cleaned, stats := NewCleaner(newTestLogger()).Clean(raw)
	if cleaned.Len() != 0 {
		t.Errorf("cleaned rows: got %d, want 0", cleaned.Len())
	}
	if stats.Complete != 2 {
		t.Errorf("Complete: got %d, want 2", stats.Complete)
	}
}
