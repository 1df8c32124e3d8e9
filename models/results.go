package models

// QueryName identifies one of the fixed aggregation queries.
type QueryName string

const (
	QueryPriceDistribution         QueryName = "price_distribution"
	QueryStayVsPrice               QueryName = "stay_vs_price"
	QueryPriceByRoomType           QueryName = "price_by_room_type"
	QueryTopNeighbourhoodsByPrice  QueryName = "avg_price_by_neighbourhood"
	QueryMinNightsByRoomType       QueryName = "avg_min_nights_by_room_type"
	QueryNeighbourhoodPriceDensity QueryName = "price_density_by_neighbourhood"
	QueryPriceByHostListings       QueryName = "avg_price_by_host_listings"
)

// ChartKind tells a renderer how to draw a result.
type ChartKind string

const (
	ChartHistogram ChartKind = "histogram"
	ChartScatter   ChartKind = "scatter"
	ChartBox       ChartKind = "box"
	ChartBar       ChartKind = "bar"
	ChartDensity   ChartKind = "density"
	ChartLine      ChartKind = "line"
)

// ChartSpec is the labeling metadata handed to renderers with each result.
type ChartSpec struct {
	Kind   ChartKind
	Title  string
	XLabel string
	YLabel string
	Width  int
	Height int
	// Bins applies to histograms.
	Bins int
	// XMin/XMax clamp the x axis when XMax > XMin.
	XMin, XMax float64
}

// Point is one (x, y) pair.
type Point struct {
	X float64
	Y float64
}

// Labeled is a categorical label paired with a numeric value.
type Labeled struct {
	Label string
	Value float64
}

// GroupMean is one group of a grouped average. Key is set when the grouping
// column is numeric; Label is always set.
type GroupMean struct {
	Label string
	Key   float64
	Mean  float64
	Count int
}

// AggregationResult is the envelope passed to renderers. Exactly one payload
// field is populated, depending on the query.
type AggregationResult struct {
	Query QueryName
	Chart ChartSpec

	Values  []float64
	Points  []Point
	Labeled []Labeled
	Groups  []GroupMean
}

// Len returns the number of rows in the populated payload.
func (r *AggregationResult) Len() int {
	return len(r.Values) + len(r.Points) + len(r.Labeled) + len(r.Groups)
}
