package charts

import (
	"image/color"
	"math"
	"sort"

	"airbnb-analysis/models"
	"airbnb-analysis/utils"
)

// maxLegend caps legend entries on density charts.
const maxLegend = 12

func drawHistogram(p *plot, values []float64) {
	bins := p.spec.Bins
	if bins < 1 {
		bins = 30
	}
	edges, counts := utils.Histogram(values, bins)
	if len(counts) == 0 {
		p.labels()
		p.noData()
		p.frame()
		return
	}

	top := 0
	for _, c := range counts {
		if c > top {
			top = c
		}
	}
	p.setX(edges[0], edges[len(edges)-1])
	p.setY(0, float64(top)*1.05)
	p.yAxis()
	p.xAxis()

	dc := p.dc
	for i, c := range counts {
		if c == 0 {
			continue
		}
		x0, x1 := p.X(edges[i]), p.X(edges[i+1])
		y := p.Y(float64(c))
		dc.DrawRectangle(x0, y, x1-x0, p.bottom-y)
		dc.SetColor(skyBlue)
		dc.FillPreserve()
		dc.SetColor(axisColor)
		dc.SetLineWidth(0.5)
		dc.Stroke()
	}
	p.labels()
	p.frame()
}

func drawScatter(p *plot, points []models.Point) {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, pt := range points {
		xs[i], ys[i] = pt.X, pt.Y
	}
	xlo, xhi, okX := utils.MinMax(xs)
	ylo, yhi, okY := utils.MinMax(ys)
	if !okX || !okY {
		p.labels()
		p.noData()
		p.frame()
		return
	}
	p.setX(xlo, xhi)
	p.setY(ylo, yhi)
	p.yAxis()
	p.xAxis()

	dc := p.dc
	dc.SetColor(salmon)
	for _, pt := range points {
		if !finite(pt.X) || !finite(pt.Y) {
			continue
		}
		dc.DrawCircle(p.X(pt.X), p.Y(pt.Y), 3)
		dc.Fill()
	}
	p.labels()
	p.frame()
}

func drawBox(p *plot, labeled []models.Labeled) {
	labels, groups := splitLabeled(labeled)
	if len(labels) == 0 {
		p.labels()
		p.noData()
		p.frame()
		return
	}

	all := make([]float64, 0, len(labeled))
	for _, l := range labeled {
		all = append(all, l.Value)
	}
	lo, hi, _ := utils.MinMax(all)
	p.setY(lo, hi)
	p.yAxis()
	centres, slot := p.categories(labels)

	dc := p.dc
	half := slot * 0.3
	for i, label := range labels {
		b, ok := utils.Box(groups[label])
		if !ok {
			continue
		}
		x := centres[i]
		c := paletteColor(i, 0xff)

		dc.SetColor(c)
		dc.DrawRectangle(x-half, p.Y(b.Q3), 2*half, p.Y(b.Q1)-p.Y(b.Q3))
		dc.FillPreserve()
		dc.SetColor(axisColor)
		dc.SetLineWidth(1.2)
		dc.Stroke()

		dc.DrawLine(x-half, p.Y(b.Median), x+half, p.Y(b.Median))
		dc.DrawLine(x, p.Y(b.Q3), x, p.Y(b.HighWhisker))
		dc.DrawLine(x, p.Y(b.Q1), x, p.Y(b.LowWhisker))
		dc.DrawLine(x-half/2, p.Y(b.HighWhisker), x+half/2, p.Y(b.HighWhisker))
		dc.DrawLine(x-half/2, p.Y(b.LowWhisker), x+half/2, p.Y(b.LowWhisker))
		dc.Stroke()

		for _, o := range b.Outliers {
			dc.DrawCircle(x, p.Y(o), 2.5)
			dc.Stroke()
		}
	}
	p.labels()
	p.frame()
}

func drawBar(p *plot, groups []models.GroupMean) {
	if len(groups) == 0 {
		p.labels()
		p.noData()
		p.frame()
		return
	}

	labels := make([]string, len(groups))
	lo, hi := 0.0, 0.0
	for i, g := range groups {
		labels[i] = g.Label
		lo = math.Min(lo, g.Mean)
		hi = math.Max(hi, g.Mean)
	}
	p.setY(lo, hi*1.1)
	p.yAxis()
	centres, slot := p.categories(labels)

	dc := p.dc
	half := slot * 0.4
	for i, g := range groups {
		y0, y1 := p.Y(0), p.Y(g.Mean)
		top, h := math.Min(y0, y1), math.Abs(y0-y1)
		dc.DrawRectangle(centres[i]-half, top, 2*half, h)
		dc.SetColor(paletteColor(i, 0xff))
		dc.Fill()
	}
	p.labels()
	p.frame()
}

func drawDensity(p *plot, labeled []models.Labeled) {
	labels, groups := splitLabeled(labeled)

	xmin, xmax := p.spec.XMin, p.spec.XMax
	if xmax <= xmin {
		all := make([]float64, 0, len(labeled))
		for _, l := range labeled {
			all = append(all, l.Value)
		}
		var ok bool
		if xmin, xmax, ok = utils.MinMax(all); !ok {
			xmin, xmax = 0, 1
		}
	}
	xs := utils.Linspace(xmin, xmax, 200)

	type curve struct {
		label string
		ys    []float64
		color color.NRGBA
		n     int
	}
	var curves []curve
	top := 0.0
	for i, label := range labels {
		ys := utils.KDE(groups[label], xs)
		if ys == nil {
			continue
		}
		for _, y := range ys {
			top = math.Max(top, y)
		}
		curves = append(curves, curve{label: label, ys: ys, color: paletteColor(i, 0x4d), n: len(groups[label])})
	}

	if len(curves) == 0 {
		p.labels()
		p.noData()
		p.frame()
		return
	}

	p.setX(xmin, xmax)
	p.setY(0, top*1.05)
	p.yAxis()
	p.xAxis()

	dc := p.dc
	for _, c := range curves {
		dc.MoveTo(p.X(xs[0]), p.Y(0))
		for i, x := range xs {
			dc.LineTo(p.X(x), p.Y(c.ys[i]))
		}
		dc.LineTo(p.X(xs[len(xs)-1]), p.Y(0))
		dc.ClosePath()
		dc.SetColor(c.color)
		dc.FillPreserve()
		line := c.color
		line.A = 0xcc
		dc.SetColor(line)
		dc.SetLineWidth(1)
		dc.Stroke()
	}

	sort.SliceStable(curves, func(i, j int) bool { return curves[i].n > curves[j].n })
	if len(curves) > maxLegend {
		curves = curves[:maxLegend]
	}
	names := make([]string, len(curves))
	colors := make([]color.NRGBA, len(curves))
	for i, c := range curves {
		names[i], colors[i] = c.label, c.color
	}
	p.legend(names, colors)
	p.labels()
	p.frame()
}

func drawLine(p *plot, groups []models.GroupMean) {
	pts := make([]models.Point, 0, len(groups))
	for _, g := range groups {
		if finite(g.Key) && finite(g.Mean) {
			pts = append(pts, models.Point{X: g.Key, Y: g.Mean})
		}
	}
	if len(pts) == 0 {
		p.labels()
		p.noData()
		p.frame()
		return
	}
	// Lines are drawn left to right whatever order the result is in.
	sort.Slice(pts, func(i, j int) bool { return pts[i].X < pts[j].X })

	p.setX(pts[0].X, pts[len(pts)-1].X)
	ylo, yhi := pts[0].Y, pts[0].Y
	for _, pt := range pts {
		ylo = math.Min(ylo, pt.Y)
		yhi = math.Max(yhi, pt.Y)
	}
	p.setY(ylo, yhi)
	p.yAxis()
	p.xAxis()

	dc := p.dc
	dc.SetColor(blue)
	dc.SetLineWidth(2)
	for i, pt := range pts {
		if i == 0 {
			dc.MoveTo(p.X(pt.X), p.Y(pt.Y))
			continue
		}
		dc.LineTo(p.X(pt.X), p.Y(pt.Y))
	}
	dc.Stroke()
	for _, pt := range pts {
		dc.DrawCircle(p.X(pt.X), p.Y(pt.Y), 4)
		dc.Fill()
	}
	p.labels()
	p.frame()
}

// splitLabeled groups values by label, keeping first-seen label order.
func splitLabeled(labeled []models.Labeled) ([]string, map[string][]float64) {
	groups := make(map[string][]float64)
	var labels []string
	for _, l := range labeled {
		if !finite(l.Value) {
			continue
		}
		if _, ok := groups[l.Label]; !ok {
			labels = append(labels, l.Label)
		}
		groups[l.Label] = append(groups[l.Label], l.Value)
	}
	return labels, groups
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
