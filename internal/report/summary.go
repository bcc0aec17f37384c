package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-flyby/internal/astro"
	"github.com/litescript/ls-flyby/internal/traj"
	"github.com/litescript/ls-flyby/internal/version"
)

// Styles for the terminal summary
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	highlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	missingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// HelioContext is the optional heliocentric block supplied by the DE
// ephemeris provider.
type HelioContext struct {
	DistanceAU   float64 // Neptune-Sun distance at closest approach
	LightTimeHrs float64 // one-way light time over that distance
}

// WriteSummary prints the encounter summary for a sampled series: grid
// parameters, satellite coverage, closest approach, and the optional
// heliocentric context.
func WriteSummary(w io.Writer, series *traj.Series, tracked []string, helio *HelioContext) {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Voyager 2 Neptune encounter"))
	b.WriteString(labelStyle.Render(fmt.Sprintf("  ls-flyby v%s", version.Version)))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", 48))
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-18s", label)))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	row("Grid", fmt.Sprintf("%s → %s",
		series.Grid.Start.UTC().Format("2006-01-02 15:04"),
		series.Grid.End.UTC().Format("2006-01-02 15:04")))
	row("Samples", fmt.Sprintf("%d", series.Grid.Samples))

	covered := make(map[string]bool, len(series.Satellites))
	for _, s := range series.Satellites {
		covered[s.Name] = true
	}
	var sats []string
	for _, name := range tracked {
		if covered[name] {
			sats = append(sats, name)
		} else {
			sats = append(sats, missingStyle.Render(name+" (no data)"))
		}
	}
	row("Satellites", strings.Join(sats, ", "))

	idx, closest := series.ClosestApproach()
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-18s", "Closest approach")))
	b.WriteString(highlightStyle.Render(fmt.Sprintf("%.0f km at %s (sample %d)",
		closest.Distance, closest.Time.UTC().Format("2006-01-02 15:04:05 UTC"), idx)))
	b.WriteString("\n")

	first := series.Samples[0]
	last := series.Samples[len(series.Samples)-1]
	row("Range", fmt.Sprintf("%.0f km → %.0f km", first.Distance, last.Distance))

	if helio != nil {
		row("Neptune from Sun", fmt.Sprintf("%.2f AU (light time %.1f h)",
			helio.DistanceAU, helio.LightTimeHrs))
	}

	fmt.Fprint(w, b.String())
}

// NewHelioContext derives the heliocentric block from Neptune's heliocentric
// position in km.
func NewHelioContext(neptuneHelio astro.Vec3) *HelioContext {
	km := neptuneHelio.Norm()
	return &HelioContext{
		DistanceAU:   astro.KmToAU(km),
		LightTimeHrs: astro.LightTimeSec(km) / 3600,
	}
}
