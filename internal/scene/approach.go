package scene

import (
	"fmt"
	"strconv"
	"time"

	"github.com/litescript/ls-flyby/internal/astro"
	"github.com/litescript/ls-flyby/internal/ephem"
	"github.com/litescript/ls-flyby/internal/traj"
)

// neptuneColorscale is the three-stop blue gradient used for the planet
// surface in both views.
var neptuneColorscale = []ColorStop{
	{0, "#1a237e"},
	{0.5, "#3949ab"},
	{1, "#7986cb"},
}

const timeLayout = "2006-01-02 15:04:05 UTC"

func frameTitle(name string, t time.Time, distanceKm float64) string {
	return fmt.Sprintf("%s — %s<br>Distance to Neptune: %s",
		name, t.UTC().Format(timeLayout), DistanceLabel(distanceKm))
}

// BuildApproach assembles the Neptune-centered approach view: the planet
// sphere, the full trajectory, satellite orbits, and an animated spacecraft
// marker. Every stride-th sample becomes an animation frame. sunDir, when
// non-nil, adds a Sun direction ray (unit vector, world frame).
func BuildApproach(series *traj.Series, primary ephem.Body, stride int, sunDir *astro.Vec3) *Document {
	if stride < 1 {
		stride = 1
	}

	doc := &Document{
		Title: fmt.Sprintf("Voyager 2 approach to Neptune<br>%s",
			series.Samples[0].Time.UTC().Format(timeLayout)),
		AxisTitles:      [3]string{"X (km)", "Y (km)", "Z (km)"},
		ShowGrid:        true,
		FrameDurationMs: 50,
	}

	doc.Traces = approachTraces(series, primary, sunDir, 0)

	for k := 0; k < len(series.Samples); k += stride {
		smp := series.Samples[k]
		doc.Frames = append(doc.Frames, Frame{
			Name:   strconv.Itoa(k),
			Title:  frameTitle("Voyager 2", smp.Time, smp.Distance),
			Traces: approachTraces(series, primary, sunDir, k),
		})
	}

	return doc
}

// approachTraces builds the full trace set with the animated markers placed
// at sample k. The trace count and order are identical for every k so frames
// can replace data in place.
func approachTraces(series *traj.Series, primary ephem.Body, sunDir *astro.Vec3, k int) []Trace {
	smp := series.Samples[k]

	sphere := astro.SphereMesh(astro.Vec3{}, primary.RadiusKm, 50, 30)
	traces := []Trace{
		{
			Name:       primary.Name,
			Kind:       KindSurface,
			Mesh:       &sphere,
			Colorscale: neptuneColorscale,
			Opacity:    0.9,
			ShowLegend: k == 0,
		},
	}

	trajectory := Trace{
		Name:       "Voyager 2 trajectory",
		Kind:       KindLine,
		Color:      "white",
		Width:      3,
		ShowLegend: k == 0,
	}
	for _, s := range series.Samples {
		trajectory.Point(s.Observer)
	}
	traces = append(traces, trajectory)

	start := Trace{Name: "Start", Kind: KindMarkers, Size: 6, Color: "green", ShowLegend: k == 0}
	start.Point(series.Samples[0].Observer)
	end := Trace{Name: "End", Kind: KindMarkers, Size: 6, Color: "red", ShowLegend: k == 0}
	end.Point(series.Samples[len(series.Samples)-1].Observer)
	traces = append(traces, start, end)

	spacecraft := Trace{
		Name:       "Voyager 2",
		Kind:       KindMarkers,
		Size:       8,
		Color:      "yellow",
		Symbol:     "diamond",
		ShowLegend: k == 0,
	}
	spacecraft.Point(smp.Observer)
	traces = append(traces, spacecraft)

	for _, body := range series.Satellites {
		orbit := Trace{
			Name:       fmt.Sprintf("%s (orbit)", body.Name),
			Kind:       KindLine,
			Color:      body.Color,
			Width:      1,
			Opacity:    0.5,
			ShowLegend: k == 0,
		}
		for _, s := range series.Samples {
			if pos, ok := s.Bodies[body.NAIFID]; ok {
				orbit.Point(pos)
			}
		}

		marker := Trace{
			Name:       body.Name,
			Kind:       KindMarkers,
			Size:       5,
			Color:      body.Color,
			ShowLegend: k == 0,
		}
		if pos, ok := smp.Bodies[body.NAIFID]; ok {
			marker.Point(pos)
		}

		traces = append(traces, orbit, marker)
	}

	if sunDir != nil {
		// Ray from Neptune toward the Sun, scaled to the trajectory extent.
		reach := 0.0
		for _, s := range series.Samples {
			if s.Distance > reach {
				reach = s.Distance
			}
		}
		ray := Trace{
			Name:       "Sun direction",
			Kind:       KindLine,
			Color:      "#ffd54f",
			Width:      2,
			Opacity:    0.8,
			ShowLegend: k == 0,
		}
		ray.Point(astro.Vec3{})
		ray.Point(sunDir.Scale(reach))
		traces = append(traces, ray)
	}

	return traces
}
