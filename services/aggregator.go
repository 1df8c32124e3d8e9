package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"airbnb-analysis/config"
	"airbnb-analysis/models"
	"airbnb-analysis/utils"
)

// Query is one named aggregation together with its chart labeling.
type Query struct {
	Name  models.QueryName
	Chart models.ChartSpec
	Run   func(*models.Table) (*models.AggregationResult, error)
}

// DefaultQueries returns the seven listing queries in display order.
func DefaultQueries() []Query {
	return []Query{
		{
			Name: models.QueryPriceDistribution,
			Chart: models.ChartSpec{
				Kind: models.ChartHistogram, Title: "Price Distribution",
				XLabel: "Price", YLabel: "Frequency", Width: 1000, Height: 600, Bins: 30,
			},
			Run: func(t *models.Table) (*models.AggregationResult, error) {
				v, err := PriceDistribution(t)
				return &models.AggregationResult{Values: v}, err
			},
		},
		{
			Name: models.QueryStayVsPrice,
			Chart: models.ChartSpec{
				Kind: models.ChartScatter, Title: "Minimum Nights vs. Price",
				XLabel: "Minimum Nights", YLabel: "Price", Width: 1000, Height: 600,
			},
			Run: func(t *models.Table) (*models.AggregationResult, error) {
				p, err := StayVsPrice(t)
				return &models.AggregationResult{Points: p}, err
			},
		},
		{
			Name: models.QueryPriceByRoomType,
			Chart: models.ChartSpec{
				Kind: models.ChartBox, Title: "Price Distribution by Room Type",
				XLabel: "Room Type", YLabel: "Price", Width: 1000, Height: 600,
			},
			Run: func(t *models.Table) (*models.AggregationResult, error) {
				l, err := PriceByRoomType(t)
				return &models.AggregationResult{Labeled: l}, err
			},
		},
		{
			Name: models.QueryTopNeighbourhoodsByPrice,
			Chart: models.ChartSpec{
				Kind: models.ChartBar, Title: "Average Prices by Neighbourhood",
				XLabel: "Neighbourhood", YLabel: "Average Price", Width: 1500, Height: 1000,
			},
			Run: func(t *models.Table) (*models.AggregationResult, error) {
				g, err := TopNeighbourhoodsByPrice(t, TopNeighbourhoods)
				return &models.AggregationResult{Groups: g}, err
			},
		},
		{
			Name: models.QueryMinNightsByRoomType,
			Chart: models.ChartSpec{
				Kind: models.ChartBar, Title: "Average Staying Time by Room Type",
				XLabel: "Room Type", YLabel: "Average Staying Time (days)", Width: 1500, Height: 1000,
			},
			Run: func(t *models.Table) (*models.AggregationResult, error) {
				g, err := MinNightsByRoomType(t)
				return &models.AggregationResult{Groups: g}, err
			},
		},
		{
			Name: models.QueryNeighbourhoodPriceDensity,
			Chart: models.ChartSpec{
				Kind: models.ChartDensity, Title: "Price Density by Neighbourhood",
				XLabel: "Price", YLabel: "Density", Width: 1500, Height: 1000, XMin: 0, XMax: 500,
			},
			Run: func(t *models.Table) (*models.AggregationResult, error) {
				l, err := NeighbourhoodPriceDensity(t)
				return &models.AggregationResult{Labeled: l}, err
			},
		},
		{
			Name: models.QueryPriceByHostListings,
			Chart: models.ChartSpec{
				Kind: models.ChartLine, Title: "Average Price by Number of Host Listings",
				XLabel: "Number of Listings by Host", YLabel: "Average Price", Width: 1200, Height: 600,
			},
			Run: func(t *models.Table) (*models.AggregationResult, error) {
				g, err := PriceByHostListings(t)
				return &models.AggregationResult{Groups: g}, err
			},
		},
	}
}

// ArrangeQueries applies a chart layout to queries: charts named in
// layout.Order come first in that order, the rest follow in their original
// order, disabled charts are dropped and label overrides are merged in.
func ArrangeQueries(queries []Query, layout *config.ChartLayout) ([]Query, error) {
	if layout == nil {
		return append([]Query(nil), queries...), nil
	}

	byName := make(map[string]int, len(queries))
	for i, q := range queries {
		byName[string(q.Name)] = i
	}
	for _, name := range layout.Order {
		if _, ok := byName[name]; !ok {
			return nil, fmt.Errorf("config: unknown chart %q in order", name)
		}
	}
	for name := range layout.Charts {
		if _, ok := byName[name]; !ok {
			return nil, fmt.Errorf("config: unknown chart %q", name)
		}
	}

	ordered := make([]Query, 0, len(queries))
	placed := make(map[string]bool, len(queries))
	for _, name := range layout.Order {
		ordered = append(ordered, queries[byName[name]])
		placed[name] = true
	}
	for _, q := range queries {
		if !placed[string(q.Name)] {
			ordered = append(ordered, q)
		}
	}

	out := ordered[:0]
	for _, q := range ordered {
		o, ok := layout.Charts[string(q.Name)]
		if ok && o.Disabled {
			continue
		}
		if ok {
			q.Chart = applyOverride(q.Chart, o)
		}
		out = append(out, q)
	}
	return out, nil
}

func applyOverride(c models.ChartSpec, o config.ChartOverride) models.ChartSpec {
	if o.Title != "" {
		c.Title = o.Title
	}
	if o.XLabel != "" {
		c.XLabel = o.XLabel
	}
	if o.YLabel != "" {
		c.YLabel = o.YLabel
	}
	if o.Width > 0 {
		c.Width = o.Width
	}
	if o.Height > 0 {
		c.Height = o.Height
	}
	if o.Bins > 0 {
		c.Bins = o.Bins
	}
	if o.XMax > o.XMin {
		c.XMin, c.XMax = o.XMin, o.XMax
	}
	return c
}

// Aggregator evaluates a fixed list of queries against one cleaned table.
type Aggregator struct {
	logger      *utils.Logger
	queries     []Query
	concurrency int
}

// NewAggregator creates an Aggregator. concurrency below 2 runs the queries
// one after another.
func NewAggregator(logger *utils.Logger, queries []Query, concurrency int) *Aggregator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Aggregator{logger: logger, queries: queries, concurrency: concurrency}
}

// Run evaluates every query. The table must not be modified while Run is in
// progress. Results come back in query order whatever the concurrency; a query
// that fails is left out and its *models.AggregationError is included in the
// joined error.
func (a *Aggregator) Run(ctx context.Context, t *models.Table) ([]*models.AggregationResult, error) {
	results := make([]*models.AggregationResult, len(a.queries))
	errs := make([]error, len(a.queries))

	var g errgroup.Group
	g.SetLimit(a.concurrency)

	for i, q := range a.queries {
		i, q := i, q
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = &models.AggregationError{Query: q.Name, Err: err}
				return nil
			}

			start := time.Now()
			res, err := q.Run(t)
			if err != nil {
				var aerr *models.AggregationError
				if !errors.As(err, &aerr) {
					err = &models.AggregationError{Query: q.Name, Err: err}
				}
				errs[i] = err
				a.logger.Error("[aggregator] %s failed: %v", q.Name, err)
				return nil
			}

			res.Query = q.Name
			res.Chart = q.Chart
			results[i] = res
			a.logger.Debug("[aggregator] %s → %s in %v", q.Name, describe(res), time.Since(start))
			return nil
		})
	}
	_ = g.Wait()

	out := make([]*models.AggregationResult, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, errors.Join(errs...)
}
