package services

import (
	"errors"
	"fmt"
	"testing"

	"airbnb-analysis/models"
)

func sampleTable() *models.Table {
	return mkTable(listingCols,
		listing(1, "Harlem", "Private room", 80, 2, 1),
		listing(2, "Midtown", "Entire home/apt", 300, 3, 12),
		listing(3, "Harlem", "Entire home/apt", 150, 30, 1),
		listing(4, "SoHo", "Entire home/apt", 0, 1, 2),
		listing(5, "Midtown", "Shared room", 60, 1, 12),
		listing(6, "SoHo", "Private room", 500, 5, 2),
	)
}

func TestPriceDistributionPreservesOrder(t *testing.T) {
	got, err := PriceDistribution(sampleTable())
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{80, 300, 150, 0, 60, 500}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPriceDistributionSkipsNulls(t *testing.T) {
	tbl := mkTable(listingCols,
		listing(1, "A", "Private", nil, 2, 1),
		listing(2, "A", "Private", 10, 2, 1),
	)
	got, err := PriceDistribution(tbl)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != 10 {
		t.Errorf("got %v, want [10]", got)
	}
}

func TestStayVsPriceRequiresBoth(t *testing.T) {
	tbl := mkTable(listingCols,
		listing(1, "A", "Private", 100, nil, 1),
		listing(2, "A", "Private", nil, 3, 1),
		listing(3, "A", "Private", 120, 4, 1),
	)
	got, err := StayVsPrice(tbl)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != (models.Point{X: 4, Y: 120}) {
		t.Errorf("got %v, want [{4 120}]", got)
	}
}

func TestPriceByRoomType(t *testing.T) {
	got, err := PriceByRoomType(sampleTable())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 6 {
		t.Fatalf("len: got %d, want 6", len(got))
	}
	if got[1] != (models.Labeled{Label: "Entire home/apt", Value: 300}) {
		t.Errorf("got[1] = %+v", got[1])
	}
}

func TestTopNeighbourhoodsSortedAndLimited(t *testing.T) {
	var rows [][]any
	for i := 0; i < 15; i++ {
		rows = append(rows, listing(i, fmt.Sprintf("hood-%02d", i), "Private", 10*(i%7)+5, 1, 1))
	}
	tbl := mkTable(listingCols, rows...)

	got, err := TopNeighbourhoodsByPrice(tbl, TopNeighbourhoods)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != TopNeighbourhoods {
		t.Fatalf("len: got %d, want %d", len(got), TopNeighbourhoods)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Mean > got[i-1].Mean {
			t.Errorf("not sorted at %d: %v > %v", i, got[i].Mean, got[i-1].Mean)
		}
	}
	// hood-06 and hood-13 tie at 65; first-seen wins.
	if got[0].Label != "hood-06" || got[1].Label != "hood-13" {
		t.Errorf("tie order: got %s, %s", got[0].Label, got[1].Label)
	}
}

func TestMinNightsByRoomType(t *testing.T) {
	got, err := MinNightsByRoomType(sampleTable())
	if err != nil {
		t.Fatal(err)
	}
	want := []models.GroupMean{
		{Label: "Entire home/apt", Mean: 34.0 / 3.0, Count: 3},
		{Label: "Private room", Mean: 3.5, Count: 2},
		{Label: "Shared room", Mean: 1, Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("group %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestNeighbourhoodPriceDensityExcludesNonPositive(t *testing.T) {
	tbl := mkTable(listingCols,
		listing(1, "A", "Private", 0, 1, 1),
		listing(2, "A", "Private", -5, 1, 1),
		listing(3, "B", "Private", 0.01, 1, 1),
		listing(4, "B", "Private", nil, 1, 1),
	)
	got, err := NeighbourhoodPriceDensity(tbl)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Label != "B" {
		t.Errorf("got %+v, want only B/0.01", got)
	}
	for _, l := range got {
		if l.Value <= 0 {
			t.Errorf("non-positive price leaked: %+v", l)
		}
	}
}

func TestPriceByHostListingsOrderedByKey(t *testing.T) {
	got, err := PriceByHostListings(sampleTable())
	if err != nil {
		t.Fatal(err)
	}
	wantKeys := []float64{12, 2, 1}
	wantMeans := []float64{180, 250, 115}
	if len(got) != 3 {
		t.Fatalf("got %+v", got)
	}
	for i := range got {
		if got[i].Key != wantKeys[i] || got[i].Mean != wantMeans[i] {
			t.Errorf("group %d: got key %v mean %v, want %v / %v",
				i, got[i].Key, got[i].Mean, wantKeys[i], wantMeans[i])
		}
	}
	if got[0].Label != "12" {
		t.Errorf("label: got %q, want %q", got[0].Label, "12")
	}
}

func TestQueriesOnEmptyTable(t *testing.T) {
	empty := models.NewTable(models.NewSchema(listingCols))

	for _, q := range DefaultQueries() {
		res, err := q.Run(empty)
		if err != nil {
			t.Errorf("%s: unexpected error %v", q.Name, err)
			continue
		}
		if res.Len() != 0 {
			t.Errorf("%s: got %d rows, want 0", q.Name, res.Len())
		}
	}
}

func TestQueryMissingColumn(t *testing.T) {
	tbl := mkTable([]models.Column{{Name: models.ColPrice, Type: models.TypeFloat}}, []any{10.0})

	_, err := TopNeighbourhoodsByPrice(tbl, TopNeighbourhoods)
	var aerr *models.AggregationError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected *AggregationError, got %v", err)
	}
	if aerr.Query != models.QueryTopNeighbourhoodsByPrice {
		t.Errorf("Query: got %s", aerr.Query)
	}
	if !errors.Is(err, models.ErrMissingColumn) {
		t.Errorf("expected ErrMissingColumn in chain, got %v", err)
	}

	if _, err := PriceDistribution(tbl); err != nil {
		t.Errorf("PriceDistribution should not need other columns: %v", err)
	}
}
