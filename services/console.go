package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"airbnb-analysis/models"
	"airbnb-analysis/utils"
)

// ConsoleRenderer prints a text summary of each aggregation result.
type ConsoleRenderer struct {
	out     io.Writer
	maxRows int
}

// NewConsoleRenderer writes to out, listing at most maxRows rows per result.
func NewConsoleRenderer(out io.Writer, maxRows int) *ConsoleRenderer {
	if maxRows < 1 {
		maxRows = 10
	}
	return &ConsoleRenderer{out: out, maxRows: maxRows}
}

func (c *ConsoleRenderer) Render(_ context.Context, res *models.AggregationResult) error {
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(c.out, "\033[1;33m  %s\033[0m  \033[2m(%s, %s)\033[0m\n", res.Chart.Title, res.Query, res.Chart.Kind)
	fmt.Fprintf(c.out, "  %s\n", thin)

	if res.Len() == 0 {
		fmt.Fprintf(c.out, "  No data\n\n")
		return nil
	}

	switch {
	case res.Groups != nil:
		c.printGroups(res)
	case res.Labeled != nil:
		c.printLabeled(res)
	case res.Points != nil:
		xs := make([]float64, len(res.Points))
		ys := make([]float64, len(res.Points))
		for i, p := range res.Points {
			xs[i], ys[i] = p.X, p.Y
		}
		fmt.Fprintf(c.out, "  Points : \033[1m%d\033[0m\n", len(res.Points))
		c.printRange(res.Chart.XLabel, xs)
		c.printRange(res.Chart.YLabel, ys)
	default:
		fmt.Fprintf(c.out, "  Values : \033[1m%d\033[0m\n", len(res.Values))
		c.printRange(res.Chart.XLabel, res.Values)
	}
	fmt.Fprintln(c.out)
	return nil
}

func (c *ConsoleRenderer) printRange(label string, vals []float64) {
	lo, hi, _ := utils.MinMax(vals)
	fmt.Fprintf(c.out, "  %-14s min \033[1;32m%.2f\033[0m  mean \033[1;32m%.2f\033[0m  max \033[1;32m%.2f\033[0m\n",
		truncate(label, 14), lo, utils.Mean(vals), hi)
}

func (c *ConsoleRenderer) printGroups(res *models.AggregationResult) {
	var top float64
	for _, g := range res.Groups {
		if g.Mean > top {
			top = g.Mean
		}
	}
	for i, g := range res.Groups {
		if i == c.maxRows {
			fmt.Fprintf(c.out, "  … %d more\n", len(res.Groups)-i)
			break
		}
		width := 0
		if top > 0 && g.Mean > 0 {
			width = int(g.Mean / top * 24)
		}
		fmt.Fprintf(c.out, "  %-28s %-24s \033[1;32m%10.2f\033[0m (n=%d)\n",
			truncate(g.Label, 28), strings.Repeat("█", width), g.Mean, g.Count)
	}
}

func (c *ConsoleRenderer) printLabeled(res *models.AggregationResult) {
	byLabel := make(map[string][]float64)
	for _, l := range res.Labeled {
		byLabel[l.Label] = append(byLabel[l.Label], l.Value)
	}
	labels := make([]string, 0, len(byLabel))
	for l := range byLabel {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		if len(byLabel[labels[i]]) == len(byLabel[labels[j]]) {
			return labels[i] < labels[j]
		}
		return len(byLabel[labels[i]]) > len(byLabel[labels[j]])
	})

	fmt.Fprintf(c.out, "  Values : \033[1m%d\033[0m across %d categories\n", len(res.Labeled), len(labels))
	for i, l := range labels {
		if i == c.maxRows {
			fmt.Fprintf(c.out, "  … %d more\n", len(labels)-i)
			break
		}
		c.printRange(l, byLabel[l])
	}
}

// PrintSchema writes the column names and types of t.
func PrintSchema(w io.Writer, t *models.Table) {
	fmt.Fprintln(w, "root")
	for _, col := range t.Schema.Columns {
		fmt.Fprintf(w, " |-- %s: %s (nullable = true)\n", col.Name, col.Type)
	}
	fmt.Fprintln(w)
}

// PrintHead writes the first n records of t as an aligned text table.
func PrintHead(w io.Writer, t *models.Table, n int) {
	const maxWidth = 20

	head := t.Head(n)
	widths := make([]int, len(t.Schema.Columns))
	for i, col := range t.Schema.Columns {
		widths[i] = len([]rune(truncate(col.Name, maxWidth)))
	}
	cells := make([][]string, len(head))
	for r, rec := range head {
		cells[r] = make([]string, len(rec))
		for i, v := range rec {
			s := "null"
			if !v.Null {
				s = strings.ReplaceAll(v.Text, "\n", " ")
			}
			s = truncate(s, maxWidth)
			cells[r][i] = s
			if l := len([]rune(s)); l > widths[i] {
				widths[i] = l
			}
		}
	}

	sep := "+"
	for _, wd := range widths {
		sep += strings.Repeat("-", wd) + "+"
	}
	row := func(vals []string) string {
		var b strings.Builder
		b.WriteString("|")
		for i, v := range vals {
			b.WriteString(strings.Repeat(" ", widths[i]-len([]rune(v))))
			b.WriteString(v)
			b.WriteString("|")
		}
		return b.String()
	}

	names := make([]string, len(t.Schema.Columns))
	for i, col := range t.Schema.Columns {
		names[i] = truncate(col.Name, maxWidth)
	}
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, row(names))
	fmt.Fprintln(w, sep)
	for _, c := range cells {
		fmt.Fprintln(w, row(c))
	}
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "only showing top %d rows\n\n", len(head))
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
