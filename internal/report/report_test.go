package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-flyby/internal/astro"
	"github.com/litescript/ls-flyby/internal/ephem"
	"github.com/litescript/ls-flyby/internal/traj"
	"github.com/litescript/ls-flyby/internal/version"
)

func testSeries(n int) *traj.Series {
	start := time.Date(1989, 8, 24, 0, 0, 0, 0, time.UTC)
	grid := ephem.Range{Start: start, End: start.Add(60 * time.Hour), Samples: n}

	series := &traj.Series{
		Grid:       grid,
		Satellites: []ephem.Body{ephem.Satellites[0]},
	}
	for i, t := range grid.Times() {
		dt := float64(i - n/2)
		obs := astro.Vec3{X: 17000 * dt, Y: 29240}
		series.Samples = append(series.Samples, traj.Sample{
			Index:    i,
			Time:     t,
			Observer: obs,
			Distance: obs.Norm(),
			Bodies:   map[ephem.BodyID]astro.Vec3{},
		})
	}
	return series
}

func TestDistanceChart(t *testing.T) {
	var buf bytes.Buffer
	if err := DistanceChart(testSeries(50), &buf); err != nil {
		t.Fatalf("DistanceChart: %v", err)
	}

	html := buf.String()
	for _, want := range []string{"Voyager 2 distance to Neptune", "echarts", "Closest approach"} {
		if !strings.Contains(html, want) {
			t.Errorf("chart output missing %q", want)
		}
	}
}

func TestWriteSummary(t *testing.T) {
	series := testSeries(51)

	var buf bytes.Buffer
	WriteSummary(&buf, series, []string{"Triton", "Nereid"}, nil)

	out := buf.String()
	for _, want := range []string{
		"Voyager 2 Neptune encounter",
		"ls-flyby v" + version.Version,
		"1989-08-24",
		"Closest approach",
		"29240 km",
		"Triton",
		"Nereid (no data)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q in:\n%s", want, out)
		}
	}
}

func TestWriteSummaryHelio(t *testing.T) {
	series := testSeries(11)
	helio := NewHelioContext(astro.Vec3{X: 30.1 * astro.AU})

	var buf bytes.Buffer
	WriteSummary(&buf, series, []string{"Triton"}, helio)

	out := buf.String()
	if !strings.Contains(out, "30.10 AU") {
		t.Errorf("summary missing heliocentric distance:\n%s", out)
	}
	if helio.LightTimeHrs < 4 || helio.LightTimeHrs > 4.4 {
		t.Errorf("light time = %v h, want ~4.17", helio.LightTimeHrs)
	}
}
