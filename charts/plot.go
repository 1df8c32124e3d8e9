package charts

import (
	"image/color"
	"math"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"airbnb-analysis/models"
)

var (
	background = color.White
	axisColor  = color.NRGBA{0x33, 0x33, 0x33, 0xff}
	gridColor  = color.NRGBA{0xdd, 0xdd, 0xdd, 0xff}
	textColor  = color.NRGBA{0x22, 0x22, 0x22, 0xff}

	palette = []color.NRGBA{
		{0x4c, 0x72, 0xb0, 0xff},
		{0xdd, 0x84, 0x52, 0xff},
		{0x55, 0xa8, 0x68, 0xff},
		{0xc4, 0x4e, 0x52, 0xff},
		{0x81, 0x72, 0xb3, 0xff},
		{0x93, 0x78, 0x60, 0xff},
		{0xda, 0x8b, 0xc3, 0xff},
		{0x8c, 0x8c, 0x8c, 0xff},
		{0xcc, 0xb9, 0x74, 0xff},
		{0x64, 0xb5, 0xcd, 0xff},
	}
	skyBlue = color.NRGBA{0x87, 0xce, 0xeb, 0xff}
	salmon  = color.NRGBA{0xfa, 0x80, 0x72, 0xff}
	blue    = color.NRGBA{0x1f, 0x3f, 0xbf, 0xff}
)

func paletteColor(i int, alpha uint8) color.NRGBA {
	c := palette[i%len(palette)]
	c.A = alpha
	return c
}

type faces struct {
	title font.Face
	label font.Face
	tick  font.Face
}

func newFaces(f *truetype.Font) faces {
	return faces{
		title: truetype.NewFace(f, &truetype.Options{Size: 22}),
		label: truetype.NewFace(f, &truetype.Options{Size: 16}),
		tick:  truetype.NewFace(f, &truetype.Options{Size: 12}),
	}
}

// plot maps data coordinates into the drawable area of one chart.
type plot struct {
	dc    *gg.Context
	spec  models.ChartSpec
	faces faces

	left, top, right, bottom float64
	xmin, xmax, ymin, ymax   float64
}

func newPlot(spec models.ChartSpec, fc faces) *plot {
	w, h := spec.Width, spec.Height
	if w <= 0 {
		w = 1000
	}
	if h <= 0 {
		h = 600
	}
	dc := gg.NewContext(w, h)
	dc.SetColor(background)
	dc.Clear()

	return &plot{
		dc:     dc,
		spec:   spec,
		faces:  fc,
		left:   90,
		top:    60,
		right:  float64(w) - 30,
		bottom: float64(h) - 110,
		xmax:   1,
		ymax:   1,
	}
}

func (p *plot) setX(lo, hi float64) { p.xmin, p.xmax = padRange(lo, hi) }
func (p *plot) setY(lo, hi float64) { p.ymin, p.ymax = padRange(lo, hi) }

// X and Y halve before subtracting so ranges wider than MaxFloat64 stay finite.
func (p *plot) X(v float64) float64 {
	return p.left + (v/2-p.xmin/2)/(p.xmax/2-p.xmin/2)*(p.right-p.left)
}

func (p *plot) Y(v float64) float64 {
	return p.bottom - (v/2-p.ymin/2)/(p.ymax/2-p.ymin/2)*(p.bottom-p.top)
}

// labels draws the title and both axis labels.
func (p *plot) labels() {
	dc := p.dc
	dc.SetColor(textColor)

	dc.SetFontFace(p.faces.title)
	dc.DrawStringAnchored(p.spec.Title, float64(dc.Width())/2, 30, 0.5, 0.5)

	dc.SetFontFace(p.faces.label)
	dc.DrawStringAnchored(p.spec.XLabel, (p.left+p.right)/2, float64(dc.Height())-20, 0.5, 0.5)

	dc.Push()
	dc.RotateAbout(gg.Radians(-90), 24, (p.top+p.bottom)/2)
	dc.DrawStringAnchored(p.spec.YLabel, 24, (p.top+p.bottom)/2, 0.5, 0.5)
	dc.Pop()
}

// yAxis draws horizontal grid lines and numeric tick labels on the y axis.
func (p *plot) yAxis() {
	dc := p.dc
	dc.SetFontFace(p.faces.tick)
	dc.SetLineWidth(1)
	ticks := niceTicks(p.ymin, p.ymax, 6)
	labels := formatTicks(ticks)
	for i, t := range ticks {
		y := p.Y(t)
		dc.SetColor(gridColor)
		dc.DrawLine(p.left, y, p.right, y)
		dc.Stroke()
		dc.SetColor(textColor)
		dc.DrawStringAnchored(labels[i], p.left-8, y, 1, 0.5)
	}
}

// xAxis draws vertical grid lines and numeric tick labels on the x axis.
func (p *plot) xAxis() {
	dc := p.dc
	dc.SetFontFace(p.faces.tick)
	dc.SetLineWidth(1)
	ticks := niceTicks(p.xmin, p.xmax, 8)
	labels := formatTicks(ticks)
	for i, t := range ticks {
		x := p.X(t)
		dc.SetColor(gridColor)
		dc.DrawLine(x, p.top, x, p.bottom)
		dc.Stroke()
		dc.SetColor(textColor)
		dc.DrawStringAnchored(labels[i], x, p.bottom+16, 0.5, 0.5)
	}
}

// categories lays out n evenly spaced slots along the x axis, labels them and
// returns the slot centres and width.
func (p *plot) categories(labels []string) ([]float64, float64) {
	dc := p.dc
	n := len(labels)
	if n == 0 {
		return nil, 0
	}
	slot := (p.right - p.left) / float64(n)
	centres := make([]float64, n)

	dc.SetFontFace(p.faces.tick)
	dc.SetColor(textColor)

	rotate := n > 6
	for _, l := range labels {
		if w, _ := dc.MeasureString(l); w > slot {
			rotate = true
		}
	}

	for i, l := range labels {
		x := p.left + slot*(float64(i)+0.5)
		centres[i] = x
		if rotate {
			dc.Push()
			dc.RotateAbout(gg.Radians(-30), x, p.bottom+10)
			dc.DrawStringAnchored(l, x, p.bottom+10, 1, 0.5)
			dc.Pop()
			continue
		}
		dc.DrawStringAnchored(l, x, p.bottom+16, 0.5, 0.5)
	}
	return centres, slot
}

// frame draws the axis lines over the plot area.
func (p *plot) frame() {
	dc := p.dc
	dc.SetColor(axisColor)
	dc.SetLineWidth(1.5)
	dc.DrawLine(p.left, p.bottom, p.right, p.bottom)
	dc.DrawLine(p.left, p.top, p.left, p.bottom)
	dc.Stroke()
}

func (p *plot) noData() {
	dc := p.dc
	dc.SetFontFace(p.faces.label)
	dc.SetColor(axisColor)
	dc.DrawStringAnchored("No data", (p.left+p.right)/2, (p.top+p.bottom)/2, 0.5, 0.5)
}

// legend draws up to len(labels) colored entries in the top-right corner.
func (p *plot) legend(labels []string, colors []color.NRGBA) {
	dc := p.dc
	dc.SetFontFace(p.faces.tick)
	x := p.right - 200
	y := p.top + 12
	for i, l := range labels {
		c := colors[i]
		c.A = 0xff
		dc.SetColor(c)
		dc.DrawRectangle(x, y-6, 14, 12)
		dc.Fill()
		dc.SetColor(textColor)
		dc.DrawStringAnchored(l, x+20, y, 0, 0.5)
		y += 18
	}
}

func padRange(lo, hi float64) (float64, float64) {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 0, 1
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi == lo {
		d := math.Abs(lo) * 0.1
		if d == 0 {
			d = 1
		}
		return math.Max(lo-d, -math.MaxFloat64), math.Min(hi+d, math.MaxFloat64)
	}
	return lo, hi
}

// niceTicks returns round tick values covering [lo, hi], about n of them.
func niceTicks(lo, hi float64, n int) []float64 {
	if n < 2 || hi <= lo {
		return []float64{lo}
	}
	span := hi - lo
	if math.IsInf(span, 0) || math.IsNaN(span) {
		return []float64{lo, hi}
	}
	step := niceNum(span / float64(n-1))
	if step <= 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		return []float64{lo, hi}
	}
	first := math.Ceil(lo / step)
	var ticks []float64
	for i := 0; i < 4*n; i++ {
		t := (first + float64(i)) * step
		if t > hi+step*1e-9 {
			break
		}
		if t == 0 {
			t = 0 // fold -0
		}
		ticks = append(ticks, t)
	}
	return ticks
}

// niceNum rounds x to 1, 2 or 5 times a power of ten.
func niceNum(x float64) float64 {
	exp := math.Floor(math.Log10(x))
	f := x / math.Pow(10, exp)
	var nf float64
	switch {
	case f < 1.5:
		nf = 1
	case f < 3:
		nf = 2
	case f < 7:
		nf = 5
	default:
		nf = 10
	}
	return nf * math.Pow(10, exp)
}

// formatTicks renders ticks with just enough decimals for their spacing.
func formatTicks(ticks []float64) []string {
	prec := 0
	if len(ticks) > 1 {
		step := ticks[1] - ticks[0]
		if step > 0 && step < 1 {
			prec = int(math.Ceil(-math.Log10(step) - 1e-9))
		}
	}
	out := make([]string, len(ticks))
	for i, t := range ticks {
		if math.Abs(t) >= 1e7 {
			out[i] = strconv.FormatFloat(t, 'g', 3, 64)
			continue
		}
		out[i] = strconv.FormatFloat(t, 'f', prec, 64)
	}
	return out
}
