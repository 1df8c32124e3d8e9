package services

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"airbnb-analysis/models"
)

// TopNeighbourhoods is how many neighbourhoods the average-price query keeps.
const TopNeighbourhoods = 10

// PriceDistribution returns every non-null price in source order.
func PriceDistribution(t *models.Table) ([]float64, error) {
	idx, err := lookup(t, models.QueryPriceDistribution, models.ColPrice)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, t.Len())
	for _, r := range t.Records {
		if p, ok := numAt(t, r, idx[0]); ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// StayVsPrice returns (minimum_nights, price) for records where both are set.
func StayVsPrice(t *models.Table) ([]models.Point, error) {
	idx, err := lookup(t, models.QueryStayVsPrice, models.ColMinimumNights, models.ColPrice)
	if err != nil {
		return nil, err
	}
	out := make([]models.Point, 0, t.Len())
	for _, r := range t.Records {
		x, okX := numAt(t, r, idx[0])
		y, okY := numAt(t, r, idx[1])
		if okX && okY {
			out = append(out, models.Point{X: x, Y: y})
		}
	}
	return out, nil
}

// PriceByRoomType returns (room_type, price) for records where both are set.
func PriceByRoomType(t *models.Table) ([]models.Labeled, error) {
	idx, err := lookup(t, models.QueryPriceByRoomType, models.ColRoomType, models.ColPrice)
	if err != nil {
		return nil, err
	}
	return labeledWhere(t, idx[0], idx[1], func(float64) bool { return true }), nil
}

// TopNeighbourhoodsByPrice averages price per neighbourhood and keeps the
// limit highest averages. Equal averages keep first-seen group order.
func TopNeighbourhoodsByPrice(t *models.Table, limit int) ([]models.GroupMean, error) {
	idx, err := lookup(t, models.QueryTopNeighbourhoodsByPrice, models.ColNeighbourhood, models.ColPrice)
	if err != nil {
		return nil, err
	}
	groups := groupMeans(t, idx[0], idx[1], false)
	sortByMeanDesc(groups)
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	return groups, nil
}

// MinNightsByRoomType averages minimum_nights per room type, highest first.
func MinNightsByRoomType(t *models.Table) ([]models.GroupMean, error) {
	idx, err := lookup(t, models.QueryMinNightsByRoomType, models.ColRoomType, models.ColMinimumNights)
	if err != nil {
		return nil, err
	}
	groups := groupMeans(t, idx[0], idx[1], false)
	sortByMeanDesc(groups)
	return groups, nil
}

// NeighbourhoodPriceDensity returns (neighbourhood, price) for strictly
// positive prices.
func NeighbourhoodPriceDensity(t *models.Table) ([]models.Labeled, error) {
	idx, err := lookup(t, models.QueryNeighbourhoodPriceDensity, models.ColNeighbourhood, models.ColPrice)
	if err != nil {
		return nil, err
	}
	return labeledWhere(t, idx[0], idx[1], func(p float64) bool { return p > 0 }), nil
}

// PriceByHostListings averages price per calculated_host_listings_count. The
// result is ordered by the listing count, descending, not by the average.
func PriceByHostListings(t *models.Table) ([]models.GroupMean, error) {
	idx, err := lookup(t, models.QueryPriceByHostListings, models.ColCalculatedHostListingsCount, models.ColPrice)
	if err != nil {
		return nil, err
	}
	groups := groupMeans(t, idx[0], idx[1], true)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Key > groups[j].Key
	})
	return groups, nil
}

func lookup(t *models.Table, q models.QueryName, cols ...string) ([]int, error) {
	idx, err := t.Lookup(cols...)
	if err != nil {
		return nil, &models.AggregationError{Query: q, Err: err}
	}
	return idx, nil
}

// numAt reads a cell as a number. Text cells are parsed so the queries also
// work on tables that have not been through the cleaner.
func numAt(t *models.Table, r models.Record, col int) (float64, bool) {
	v := r[col]
	if v.Missing() {
		return 0, false
	}
	if t.Schema.Columns[col].Type.Numeric() {
		return v.Num, true
	}
	f, ok := models.ParseNumber(strings.TrimSpace(v.Text))
	if !ok || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func labeledWhere(t *models.Table, labelCol, valueCol int, keep func(float64) bool) []models.Labeled {
	out := make([]models.Labeled, 0, t.Len())
	for _, r := range t.Records {
		label := r[labelCol]
		if label.Missing() {
			continue
		}
		v, ok := numAt(t, r, valueCol)
		if !ok || !keep(v) {
			continue
		}
		out = append(out, models.Labeled{Label: label.Text, Value: v})
	}
	return out
}

type meanAcc struct {
	label string
	key   float64
	sum   float64
	n     int
}

// groupMeans groups by keyCol and averages valueCol, ignoring missing values.
// Groups appear in first-seen order; a group with no usable value is never
// created. With numericKey the key is parsed and groups are keyed by value.
func groupMeans(t *models.Table, keyCol, valueCol int, numericKey bool) []models.GroupMean {
	index := make(map[string]int)
	var accs []*meanAcc

	for _, r := range t.Records {
		if r[keyCol].Missing() {
			continue
		}
		v, ok := numAt(t, r, valueCol)
		if !ok {
			continue
		}

		label := r[keyCol].Text
		var key float64
		if numericKey {
			k, ok := numAt(t, r, keyCol)
			if !ok {
				continue
			}
			if k == 0 {
				k = 0 // fold -0
			}
			key = k
			label = strconv.FormatFloat(k, 'f', -1, 64)
		}

		i, seen := index[label]
		if !seen {
			i = len(accs)
			index[label] = i
			accs = append(accs, &meanAcc{label: label, key: key})
		}
		accs[i].sum += v
		accs[i].n++
	}

	out := make([]models.GroupMean, len(accs))
	for i, a := range accs {
		out[i] = models.GroupMean{
			Label: a.label,
			Key:   a.key,
			Mean:  a.sum / float64(a.n),
			Count: a.n,
		}
	}
	return out
}

func sortByMeanDesc(groups []models.GroupMean) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Mean > groups[j].Mean
	})
}

// describe is a short human summary used in logs.
func describe(res *models.AggregationResult) string {
	switch {
	case res.Groups != nil:
		return fmt.Sprintf("%d groups", len(res.Groups))
	case res.Labeled != nil:
		return fmt.Sprintf("%d labeled values", len(res.Labeled))
	case res.Points != nil:
		return fmt.Sprintf("%d points", len(res.Points))
	default:
		return fmt.Sprintf("%d values", len(res.Values))
	}
}
