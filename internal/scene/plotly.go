package scene

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
)

// PlotlyCDN is the plotly.js bundle loaded by emitted documents.
const PlotlyCDN = "https://cdn.plot.ly/plotly-2.35.2.min.js"

// PlotlyRenderer emits a single self-contained HTML document driving
// plotly.js: traces and frames are embedded as a JSON payload, animation is
// wired through plotly's animate API (play/pause buttons plus a scrubber).
type PlotlyRenderer struct{}

// NewPlotlyRenderer creates a plotly HTML renderer.
func NewPlotlyRenderer() *PlotlyRenderer {
	return &PlotlyRenderer{}
}

// Name implements Renderer.
func (r *PlotlyRenderer) Name() string {
	return "plotly"
}

// Render implements Renderer.
func (r *PlotlyRenderer) Render(doc *Document, w io.Writer) error {
	payload, err := json.Marshal(buildPayload(doc))
	if err != nil {
		return fmt.Errorf("marshal scene payload: %w", err)
	}

	return pageTemplate.Execute(w, pageData{
		Title:   doc.Title,
		Payload: template.JS(payload),
	})
}

type pageData struct {
	Title   string
	Payload template.JS
}

var pageTemplate = template.Must(template.New("scene").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="` + PlotlyCDN + `"></script>
<style>html, body { margin: 0; background: #000; } #scene { width: 100vw; height: 100vh; }</style>
</head>
<body>
<div id="scene"></div>
<script>
var payload = {{.Payload}};
Plotly.newPlot("scene", payload.data, payload.layout, {responsive: true}).then(function(gd) {
	if (payload.frames && payload.frames.length > 0) {
		Plotly.addFrames(gd, payload.frames);
	}
});
</script>
</body>
</html>
`))

// payload is the structure handed to plotly.js.
type payload struct {
	Data   []plotlyTrace `json:"data"`
	Layout plotlyLayout  `json:"layout"`
	Frames []plotlyFrame `json:"frames"`
}

type plotlyTrace struct {
	Type         string         `json:"type"`
	Name         string         `json:"name,omitempty"`
	X            any            `json:"x"`
	Y            any            `json:"y"`
	Z            any            `json:"z"`
	Mode         string         `json:"mode,omitempty"`
	Line         *plotlyLine    `json:"line,omitempty"`
	Marker       *plotlyMarker  `json:"marker,omitempty"`
	Text         []string       `json:"text,omitempty"`
	TextPosition string         `json:"textposition,omitempty"`
	TextFont     *plotlyFont    `json:"textfont,omitempty"`
	Colorscale   [][2]any       `json:"colorscale,omitempty"`
	ShowScale    *bool          `json:"showscale,omitempty"`
	Opacity      float64        `json:"opacity,omitempty"`
	ShowLegend   *bool          `json:"showlegend,omitempty"`
}

type plotlyLine struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

type plotlyMarker struct {
	Size   float64 `json:"size,omitempty"`
	Color  string  `json:"color,omitempty"`
	Symbol string  `json:"symbol,omitempty"`
}

type plotlyFont struct {
	Size  float64 `json:"size,omitempty"`
	Color string  `json:"color,omitempty"`
}

type plotlyAxis struct {
	Title           string `json:"title,omitempty"`
	BackgroundColor string `json:"backgroundcolor,omitempty"`
	GridColor       string `json:"gridcolor,omitempty"`
	ShowGrid        bool   `json:"showgrid"`
}

type plotlyEye struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type plotlyCamera struct {
	Eye        plotlyEye         `json:"eye"`
	Up         plotlyEye         `json:"up"`
	Center     plotlyEye         `json:"center"`
	Projection *plotlyProjection `json:"projection,omitempty"`
}

type plotlyProjection struct {
	Type string `json:"type"`
}

type plotlyScene struct {
	XAxis      plotlyAxis    `json:"xaxis"`
	YAxis      plotlyAxis    `json:"yaxis"`
	ZAxis      plotlyAxis    `json:"zaxis"`
	AspectMode string        `json:"aspectmode"`
	BgColor    string        `json:"bgcolor"`
	Camera     *plotlyCamera `json:"camera,omitempty"`
}

type plotlyButton struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

type plotlyUpdateMenu struct {
	Type       string         `json:"type"`
	ShowActive bool           `json:"showactive"`
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	XAnchor    string         `json:"xanchor"`
	Buttons    []plotlyButton `json:"buttons"`
}

type plotlySliderStep struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

type plotlySlider struct {
	Active       int                `json:"active"`
	YAnchor      string             `json:"yanchor"`
	XAnchor      string             `json:"xanchor"`
	X            float64            `json:"x"`
	Y            float64            `json:"y"`
	Len          float64            `json:"len"`
	Pad          map[string]int     `json:"pad"`
	CurrentValue map[string]any     `json:"currentvalue"`
	Steps        []plotlySliderStep `json:"steps"`
}

type plotlyLayout struct {
	Title       map[string]string  `json:"title,omitempty"`
	Scene       plotlyScene        `json:"scene"`
	PaperBg     string             `json:"paper_bgcolor"`
	Font        plotlyFont         `json:"font"`
	ShowLegend  bool               `json:"showlegend"`
	Legend      map[string]float64 `json:"legend,omitempty"`
	UpdateMenus []plotlyUpdateMenu `json:"updatemenus,omitempty"`
	Sliders     []plotlySlider     `json:"sliders,omitempty"`
}

type plotlyFrame struct {
	Name   string        `json:"name"`
	Data   []plotlyTrace `json:"data"`
	Layout *frameLayout  `json:"layout,omitempty"`
}

type frameLayout struct {
	Title map[string]string `json:"title"`
}

func buildPayload(doc *Document) payload {
	p := payload{
		Layout: buildLayout(doc),
	}

	for _, tr := range doc.Traces {
		p.Data = append(p.Data, convertTrace(tr))
	}

	for _, fr := range doc.Frames {
		pf := plotlyFrame{Name: fr.Name}
		for _, tr := range fr.Traces {
			pf.Data = append(pf.Data, convertTrace(tr))
		}
		if fr.Title != "" {
			pf.Layout = &frameLayout{Title: map[string]string{"text": fr.Title}}
		}
		p.Frames = append(p.Frames, pf)
	}

	return p
}

func convertTrace(tr Trace) plotlyTrace {
	if tr.Kind == KindSurface {
		no := false
		pt := plotlyTrace{
			Type:      "surface",
			Name:      tr.Name,
			ShowScale: &no,
			Opacity:   tr.Opacity,
		}
		if tr.Mesh != nil {
			pt.X, pt.Y, pt.Z = tr.Mesh.X, tr.Mesh.Y, tr.Mesh.Z
		} else {
			pt.X, pt.Y, pt.Z = [][]float64{}, [][]float64{}, [][]float64{}
		}
		for _, stop := range tr.Colorscale {
			pt.Colorscale = append(pt.Colorscale, [2]any{stop.Pos, stop.Color})
		}
		if !tr.ShowLegend {
			pt.ShowLegend = &no
		}
		return pt
	}

	pt := plotlyTrace{
		Type:    "scatter3d",
		Name:    tr.Name,
		Opacity: tr.Opacity,
	}

	// Empty scatter traces still need arrays so plotly keeps the trace
	// slot stable across animation frames.
	x, y, z := tr.X, tr.Y, tr.Z
	if x == nil {
		x, y, z = []float64{}, []float64{}, []float64{}
	}
	pt.X, pt.Y, pt.Z = x, y, z

	switch tr.Kind {
	case KindLine:
		pt.Mode = "lines"
		pt.Line = &plotlyLine{Color: tr.Color, Width: tr.Width}
	case KindMarkers:
		pt.Mode = "markers"
		pt.Marker = &plotlyMarker{Size: tr.Size, Color: tr.Color, Symbol: tr.Symbol}
	case KindMarkersText:
		pt.Mode = "markers+text"
		pt.Marker = &plotlyMarker{Size: tr.Size, Color: tr.Color, Symbol: tr.Symbol}
		pt.Text = tr.Text
		pt.TextPosition = "top center"
		pt.TextFont = &plotlyFont{Size: 10, Color: tr.Color}
	}

	if !tr.ShowLegend {
		no := false
		pt.ShowLegend = &no
	}

	return pt
}

func buildLayout(doc *Document) plotlyLayout {
	axis := func(title string) plotlyAxis {
		return plotlyAxis{
			Title:           title,
			BackgroundColor: "black",
			GridColor:       "gray",
			ShowGrid:        doc.ShowGrid,
		}
	}

	layout := plotlyLayout{
		Title: map[string]string{"text": doc.Title},
		Scene: plotlyScene{
			XAxis:      axis(doc.AxisTitles[0]),
			YAxis:      axis(doc.AxisTitles[1]),
			ZAxis:      axis(doc.AxisTitles[2]),
			AspectMode: "data",
			BgColor:    "black",
		},
		PaperBg:    "black",
		Font:       plotlyFont{Color: "white"},
		ShowLegend: true,
		Legend:     map[string]float64{"x": 0.02, "y": 0.98},
	}

	if doc.Camera != nil {
		cam := &plotlyCamera{
			Eye:    plotlyEye{doc.Camera.EyeX, doc.Camera.EyeY, doc.Camera.EyeZ},
			Up:     plotlyEye{doc.Camera.UpX, doc.Camera.UpY, doc.Camera.UpZ},
			Center: plotlyEye{doc.Camera.CenterX, doc.Camera.CenterY, doc.Camera.CenterZ},
		}
		if doc.Camera.Perspective {
			cam.Projection = &plotlyProjection{Type: "perspective"}
		}
		layout.Scene.Camera = cam
	}

	if len(doc.Frames) == 0 {
		return layout
	}

	duration := doc.FrameDurationMs
	if duration <= 0 {
		duration = 50
	}

	layout.UpdateMenus = []plotlyUpdateMenu{{
		Type:       "buttons",
		ShowActive: false,
		X:          0.1,
		Y:          0.1,
		XAnchor:    "left",
		Buttons: []plotlyButton{
			{
				Label:  "▶ Play",
				Method: "animate",
				Args: []any{nil, map[string]any{
					"frame":       map[string]any{"duration": duration, "redraw": true},
					"fromcurrent": true,
					"mode":        "immediate",
				}},
			},
			{
				Label:  "⏸ Pause",
				Method: "animate",
				Args: []any{[]any{nil}, map[string]any{
					"frame": map[string]any{"duration": 0, "redraw": false},
					"mode":  "immediate",
				}},
			},
		},
	}}

	slider := plotlySlider{
		YAnchor: "top",
		XAnchor: "left",
		X:       0.1,
		Y:       0,
		Len:     0.9,
		Pad:     map[string]int{"b": 10, "t": 50},
		CurrentValue: map[string]any{
			"prefix":  "Frame: ",
			"visible": true,
			"xanchor": "right",
			"font":    map[string]any{"size": 12},
		},
	}
	for i, fr := range doc.Frames {
		slider.Steps = append(slider.Steps, plotlySliderStep{
			Label:  fmt.Sprintf("%d", i),
			Method: "animate",
			Args: []any{[]any{fr.Name}, map[string]any{
				"frame": map[string]any{"duration": duration, "redraw": true},
				"mode":  "immediate",
			}},
		})
	}
	layout.Sliders = []plotlySlider{slider}

	return layout
}
