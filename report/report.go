package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"airbnb-analysis/charts"
	"airbnb-analysis/utils"
)

// Summary is the run-level information shown at the top of the report.
type Summary struct {
	RunID       string
	Source      string
	Total       int
	Complete    int
	Clean       int
	Failed      []string
	GeneratedAt time.Time
}

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>NYC Airbnb Analysis — {{.Summary.RunID}}</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
table.meta td { padding: 2px 12px 2px 0; }
figure { margin: 2em 0; page-break-inside: avoid; }
figure img { max-width: 100%; border: 1px solid #ddd; }
figcaption { font-weight: bold; margin-bottom: .5em; }
.failed { color: #b00; }
</style>
</head>
<body>
<h1>NYC Airbnb Analysis</h1>
<table class="meta">
<tr><td>Run</td><td>{{.Summary.RunID}}</td></tr>
<tr><td>Source</td><td>{{.Summary.Source}}</td></tr>
<tr><td>Rows loaded</td><td>{{.Summary.Total}}</td></tr>
<tr><td>Rows without missing values</td><td>{{.Summary.Complete}}</td></tr>
<tr><td>Rows after cleaning</td><td>{{.Summary.Clean}}</td></tr>
<tr><td>Generated</td><td>{{.Summary.GeneratedAt.Format "2006-01-02 15:04:05"}}</td></tr>
</table>
{{range .Summary.Failed}}<p class="failed">Skipped: {{.}}</p>
{{end}}
{{range .Charts}}<figure>
<figcaption>{{.Title}}</figcaption>
<img src="{{.Path}}" alt="{{.Title}} ({{.Kind}})">
</figure>
{{end}}
</body>
</html>
`))

// Builder writes the run report next to the chart files.
type Builder struct {
	dir    string
	logger *utils.Logger
}

// NewBuilder writes into dir, which should be the chart output directory so
// the image links resolve.
func NewBuilder(dir string, logger *utils.Logger) *Builder {
	return &Builder{dir: dir, logger: logger}
}

// WriteHTML renders index.html and returns its path.
func (b *Builder) WriteHTML(summary Summary, artifacts []charts.Artifact) (string, error) {
	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return "", fmt.Errorf("report: create dir: %w", err)
	}
	path := filepath.Join(b.dir, "index.html")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("report: create %q: %w", path, err)
	}
	defer f.Close()

	data := struct {
		Summary Summary
		Charts  []charts.Artifact
	}{summary, artifacts}
	if err := indexTmpl.Execute(f, data); err != nil {
		return "", fmt.Errorf("report: render html: %w", err)
	}

	b.logger.Info("[report] Wrote %s (%d charts)", path, len(artifacts))
	return path, nil
}
