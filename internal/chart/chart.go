// Package chart models the configuration objects consumed by Chart.js.
package chart

import (
	"fmt"
	"math/rand/v2"
)

// Type is the kind of chart to draw.
type Type string

const (
	Pie  Type = "pie"
	Line Type = "line"
	Bar  Type = "bar"
)

// Config is a Chart.js chart configuration.
type Config struct {
	Type Type `json:"type"`
	Data Data `json:"data"`
}

// Data holds the category labels and the datasets plotted against them.
type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is a single series. BackgroundColor is either a single color string
// or one color per label.
type Dataset struct {
	Label           string  `json:"label"`
	Data            []int   `json:"data"`
	BackgroundColor any     `json:"backgroundColor,omitempty"`
	BorderColor     string  `json:"borderColor,omitempty"`
	Fill            bool    `json:"fill,omitempty"`
	Tension         float64 `json:"tension,omitempty"`
}

// Chart is one chart instance created on a canvas.
type Chart struct {
	ID     int    `json:"id"`
	Canvas string `json:"canvas"`
	Config Config `json:"config"`
}

// Palette returns a color for a category label.
type Palette func(label string) string

// RandomPalette draws an independent uniform RGB color on every call, so colors
// are not stable across renders and may collide.
func RandomPalette() Palette {
	return func(string) string {
		return fmt.Sprintf("#%06x", rand.IntN(0x1000000))
	}
}

// FixedPalette always returns color.
func FixedPalette(color string) Palette {
	return func(string) string { return color }
}

// Colors maps each label to a color drawn from p.
func Colors(p Palette, labels []string) []string {
	colors := make([]string, len(labels))
	for i, label := range labels {
		colors[i] = p(label)
	}
	return colors
}
