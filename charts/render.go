package charts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"airbnb-analysis/models"
	"airbnb-analysis/utils"
)

// Renderer consumes aggregation results. Renderers are terminal: nothing they
// do feeds back into the pipeline.
type Renderer interface {
	Render(ctx context.Context, res *models.AggregationResult) error
}

// Artifact is a chart file written by PNGRenderer.
type Artifact struct {
	Query models.QueryName
	Title string
	Kind  models.ChartKind
	// Path is relative to the renderer's output directory.
	Path string
}

// PNGRenderer draws one PNG per result into a directory.
type PNGRenderer struct {
	dir    string
	logger *utils.Logger
	font   *truetype.Font

	mu        sync.Mutex
	artifacts []Artifact
}

// NewPNGRenderer creates dir if needed and prepares the chart font.
func NewPNGRenderer(dir string, logger *utils.Logger) (*PNGRenderer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("charts: create output dir: %w", err)
	}
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("charts: parse font: %w", err)
	}
	return &PNGRenderer{dir: dir, logger: logger, font: f}, nil
}

// Render draws res according to res.Chart.Kind and saves it as
// NN_<query>.png, NN being the 1-based render sequence.
func (r *PNGRenderer) Render(ctx context.Context, res *models.AggregationResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p := newPlot(res.Chart, newFaces(r.font))
	switch res.Chart.Kind {
	case models.ChartHistogram:
		drawHistogram(p, res.Values)
	case models.ChartScatter:
		drawScatter(p, res.Points)
	case models.ChartBox:
		drawBox(p, res.Labeled)
	case models.ChartBar:
		drawBar(p, res.Groups)
	case models.ChartDensity:
		drawDensity(p, res.Labeled)
	case models.ChartLine:
		drawLine(p, res.Groups)
	default:
		return fmt.Errorf("charts: %s: unsupported chart kind %q", res.Query, res.Chart.Kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := fmt.Sprintf("%02d_%s.png", len(r.artifacts)+1, res.Query)
	if err := p.dc.SavePNG(filepath.Join(r.dir, name)); err != nil {
		return fmt.Errorf("charts: save %s: %w", name, err)
	}
	r.artifacts = append(r.artifacts, Artifact{
		Query: res.Query,
		Title: res.Chart.Title,
		Kind:  res.Chart.Kind,
		Path:  name,
	})
	r.logger.Info("[charts] %s → %s", res.Chart.Title, name)
	return nil
}

// Artifacts returns the charts written so far, in render order.
func (r *PNGRenderer) Artifacts() []Artifact {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Artifact(nil), r.artifacts...)
}

// Dir returns the output directory.
func (r *PNGRenderer) Dir() string { return r.dir }
