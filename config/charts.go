package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ChartLayout is the optional YAML file controlling chart order and labels.
//
//	order: [avg_price_by_neighbourhood, price_distribution]
//	charts:
//	  price_distribution:
//	    title: Nightly prices
//	    bins: 50
//	  stay_vs_price:
//	    disabled: true
type ChartLayout struct {
	Order  []string                 `yaml:"order"`
	Charts map[string]ChartOverride `yaml:"charts"`
}

// ChartOverride replaces the non-zero fields of a chart's default labeling.
type ChartOverride struct {
	Title    string  `yaml:"title"`
	XLabel   string  `yaml:"x_label"`
	YLabel   string  `yaml:"y_label"`
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	Bins     int     `yaml:"bins"`
	XMin     float64 `yaml:"x_min"`
	XMax     float64 `yaml:"x_max"`
	Disabled bool    `yaml:"disabled"`
}

// LoadCharts reads a ChartLayout from path. An empty path yields an empty
// layout, meaning the built-in order and labels.
func LoadCharts(path string) (*ChartLayout, error) {
	if path == "" {
		return &ChartLayout{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read charts file: %w", err)
	}
	return ParseCharts(data)
}

// ParseCharts decodes a ChartLayout from YAML bytes.
func ParseCharts(data []byte) (*ChartLayout, error) {
	var layout ChartLayout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("config: parse charts file: %w", err)
	}
	seen := make(map[string]struct{}, len(layout.Order))
	for _, name := range layout.Order {
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("config: chart %q listed twice in order", name)
		}
		seen[name] = struct{}{}
	}
	return &layout, nil
}
