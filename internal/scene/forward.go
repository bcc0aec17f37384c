package scene

import (
	"fmt"
	"strconv"

	"github.com/litescript/ls-flyby/internal/astro"
	"github.com/litescript/ls-flyby/internal/ephem"
	"github.com/litescript/ls-flyby/internal/traj"
)

// crosshairDepthKm places the boresight marker well in front of the camera.
const crosshairDepthKm = 100000

// BuildForward assembles the observer-centered forward view: everything is
// expressed in the per-sample camera frame, with Neptune on the forward axis
// and a crosshair marking the boresight. Every camera sample becomes an
// animation frame.
func BuildForward(series *traj.Series, cams []traj.CameraSample, primary ephem.Body) *Document {
	first := cams[0]

	doc := &Document{
		Title:           frameTitle("View from Voyager 2", first.Time, first.Distance),
		AxisTitles:      [3]string{"Right (km)", "Up (km)", "Forward (km)"},
		ShowGrid:        false,
		FrameDurationMs: 100,
		Camera: &Camera{
			// Wide-angle view from just behind the camera origin.
			EyeZ:        -0.15,
			UpY:         1,
			Perspective: true,
		},
	}

	doc.Traces = forwardTraces(series, first, primary)

	for _, cam := range cams {
		doc.Frames = append(doc.Frames, Frame{
			Name:   strconv.Itoa(cam.Index),
			Title:  frameTitle("View from Voyager 2", cam.Time, cam.Distance),
			Traces: forwardTraces(series, cam, primary),
		})
	}

	return doc
}

// forwardTraces builds the camera-frame trace set for one sample. The
// satellite list comes from the series so every frame carries the same trace
// slots; a satellite missing from this sample yields an empty trace.
func forwardTraces(series *traj.Series, cam traj.CameraSample, primary ephem.Body) []Trace {
	sphere := astro.SphereMesh(cam.Primary, primary.RadiusKm, 30, 15)
	traces := []Trace{
		{
			Name:       primary.Name,
			Kind:       KindSurface,
			Mesh:       &sphere,
			Colorscale: neptuneColorscale,
			Opacity:    0.95,
			ShowLegend: true,
		},
	}

	for _, body := range series.Satellites {
		marker := Trace{
			Name:       body.Name,
			Kind:       KindMarkersText,
			Size:       6,
			Color:      body.Color,
			ShowLegend: true,
		}
		if pos, ok := cam.Bodies[body.NAIFID]; ok {
			marker.Point(pos)
			marker.Text = []string{body.Name}
		}
		traces = append(traces, marker)
	}

	crosshair := Trace{
		Name:   "Boresight",
		Kind:   KindMarkers,
		Size:   3,
		Color:  "yellow",
		Symbol: "cross",
	}
	crosshair.Point(astro.Vec3{Z: crosshairDepthKm})
	traces = append(traces, crosshair)

	return traces
}

// DistanceLabel formats an observer distance for frame titles.
func DistanceLabel(km float64) string {
	return fmt.Sprintf("%.0f km", km)
}
