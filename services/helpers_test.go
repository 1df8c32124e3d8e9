package services

import (
	"airbnb-analysis/models"
	"airbnb-analysis/utils"
)

func newTestLogger() *utils.Logger { return utils.NewNopLogger() }

// mkTable builds a table from loosely typed cells: nil is null, string is
// text, int and float64 are numbers.
func mkTable(cols []models.Column, rows ...[]any) *models.Table {
	t := models.NewTable(models.NewSchema(cols))
	for _, row := range rows {
		rec := make(models.Record, len(row))
		for i, cell := range row {
			switch v := cell.(type) {
			case nil:
				rec[i] = models.NullValue
			case string:
				rec[i] = models.TextValue(v)
			case int:
				rec[i] = models.NumValue(float64(v))
			case float64:
				rec[i] = models.NumValue(v)
			}
		}
		t.Append(rec)
	}
	return t
}

var listingCols = []models.Column{
	{Name: "id", Type: models.TypeInt},
	{Name: models.ColNeighbourhood, Type: models.TypeString},
	{Name: models.ColRoomType, Type: models.TypeString},
	{Name: models.ColPrice, Type: models.TypeInt},
	{Name: models.ColMinimumNights, Type: models.TypeInt},
	{Name: models.ColNumberOfReviews, Type: models.TypeInt},
	{Name: models.ColReviewsPerMonth, Type: models.TypeFloat},
	{Name: models.ColCalculatedHostListingsCount, Type: models.TypeInt},
}

// listing row: id, neighbourhood, room_type, price, minimum_nights,
// number_of_reviews, reviews_per_month, calculated_host_listings_count.
func listing(id int, hood, room string, price any, nights any, hostCount any) []any {
	return []any{id, hood, room, price, nights, 3, 0.5, hostCount}
}
