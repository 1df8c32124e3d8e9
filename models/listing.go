package models

// Column names of the NYC listings dataset used by the pipeline. Any other
// column in the source is carried through untouched.
const (
	ColPrice                       = "price"
	ColMinimumNights               = "minimum_nights"
	ColNumberOfReviews             = "number_of_reviews"
	ColReviewsPerMonth             = "reviews_per_month"
	ColCalculatedHostListingsCount = "calculated_host_listings_count"
	ColRoomType                    = "room_type"
	ColNeighbourhood               = "neighbourhood"
)

// NumericColumns are coerced to float by the cleaner, in coercion order.
var NumericColumns = []string{
	ColMinimumNights,
	ColNumberOfReviews,
	ColReviewsPerMonth,
	ColCalculatedHostListingsCount,
	ColPrice,
}
