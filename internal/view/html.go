package view

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/naka-gawa/github-profile/internal/chart"
)

// DefaultChartJSURL is where the page loads Chart.js from.
const DefaultChartJSURL = "https://cdn.jsdelivr.net/npm/chart.js"

//go:embed templates/page.html.tmpl
var pageTemplate string

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

// canvasOrder is the order the chart regions appear on the page.
var canvasOrder = []string{IDRepositoryChart, IDContributionChart, IDLanguageChart, IDOpenSourceChart}

// HTMLOptions controls the parts of the page that do not come from the pipeline.
type HTMLOptions struct {
	ChartJSURL string
	// Interactive renders the username form submitting to Action.
	Interactive bool
	Action      string
	Username    string
}

type canvasSection struct {
	ID     string
	Charts []chart.Chart
}

type pageViewModel struct {
	Snapshot
	Canvases    []canvasSection
	ChartJSURL  string
	Interactive bool
	Action      string
	Username    string
}

// RenderHTML writes the page as a standalone HTML document. Every chart instance
// gets its own canvas inside its region.
func RenderHTML(w io.Writer, s Snapshot, opts HTMLOptions) error {
	if opts.ChartJSURL == "" {
		opts.ChartJSURL = DefaultChartJSURL
	}
	if opts.Action == "" {
		opts.Action = "/"
	}
	vm := pageViewModel{
		Snapshot:    s,
		ChartJSURL:  opts.ChartJSURL,
		Interactive: opts.Interactive,
		Action:      opts.Action,
		Username:    opts.Username,
	}
	for _, id := range canvasOrder {
		vm.Canvases = append(vm.Canvases, canvasSection{ID: id, Charts: s.Charts[id]})
	}
	if err := pageTmpl.Execute(w, vm); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}
