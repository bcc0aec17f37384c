// Package scene assembles the 3D geometry and animation frames of the flyby
// visualizations and renders them to self-contained interactive documents.
// The drawing itself is delegated to plotly.js; this package only produces
// point arrays and display configuration.
package scene

import (
	"io"

	"github.com/litescript/ls-flyby/internal/astro"
)

// TraceKind selects how a trace is drawn.
type TraceKind int

const (
	KindLine TraceKind = iota
	KindMarkers
	KindMarkersText
	KindSurface
)

// ColorStop is one entry of a surface colorscale.
type ColorStop struct {
	Pos   float64
	Color string
}

// Trace is one named geometry in a scene: a polyline, a marker set, or a
// meshed surface.
type Trace struct {
	Name string
	Kind TraceKind

	// Scatter geometry (line and marker kinds).
	X, Y, Z []float64

	// Surface geometry.
	Mesh       *astro.Mesh
	Colorscale []ColorStop

	Color      string
	Width      float64 // line width
	Size       float64 // marker size
	Symbol     string  // marker symbol, e.g. "diamond", "cross"
	Opacity    float64
	Text       []string // labels for KindMarkersText
	ShowLegend bool
}

// Point appends a single point to a scatter trace.
func (t *Trace) Point(v astro.Vec3) {
	t.X = append(t.X, v.X)
	t.Y = append(t.Y, v.Y)
	t.Z = append(t.Z, v.Z)
}

// Frame is one animation step: a full replacement set of trace data plus the
// title shown while the frame is active.
type Frame struct {
	Name   string
	Title  string
	Traces []Trace
}

// Camera is an optional fixed viewpoint for the scene.
type Camera struct {
	EyeX, EyeY, EyeZ          float64
	UpX, UpY, UpZ             float64
	CenterX, CenterY, CenterZ float64
	Perspective               bool
}

// Document is a complete renderable scene: static traces, an animation
// sequence with play/pause controls and a scrubber, and axis labels.
type Document struct {
	Title      string
	AxisTitles [3]string
	ShowGrid   bool
	Traces     []Trace
	Frames     []Frame
	Camera     *Camera

	// FrameDurationMs is the per-frame animation delay.
	FrameDurationMs int
}

// Renderer turns a Document into a viewable artifact.
type Renderer interface {
	// Name returns the renderer name for display/logging.
	Name() string

	// Render writes the document to w.
	Render(doc *Document, w io.Writer) error
}
