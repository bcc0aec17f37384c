// Package report produces the run artifacts around the 3D scenes: the
// distance-profile chart and the styled terminal summary.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/litescript/ls-flyby/internal/traj"
)

// DistanceChart renders the observer distance over the sampled grid as an
// interactive line chart, with the closest approach marked.
func DistanceChart(series *traj.Series, w io.Writer) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Voyager 2 — Neptune distance",
			Width:     "1200px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Voyager 2 distance to Neptune",
			Subtitle: fmt.Sprintf("%d samples, %s to %s",
				series.Grid.Samples,
				series.Grid.Start.UTC().Format("2006-01-02 15:04"),
				series.Grid.End.UTC().Format("2006-01-02 15:04")),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time (UTC)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Distance (km)"}),
	)

	labels := make([]string, len(series.Samples))
	data := make([]opts.LineData, len(series.Samples))
	for i, smp := range series.Samples {
		labels[i] = smp.Time.UTC().Format("01-02 15:04")
		data[i] = opts.LineData{Value: smp.Distance}
	}

	line.SetXAxis(labels).
		AddSeries("Distance", data).
		SetSeriesOptions(charts.WithMarkPointNameTypeItemOpts(
			opts.MarkPointNameTypeItem{Name: "Closest approach", Type: "min"},
		))

	return line.Render(w)
}

// WriteDistanceChart renders the distance chart to a file.
func WriteDistanceChart(series *traj.Series, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := DistanceChart(series, f); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}
