// Command ls-flyby renders interactive 3D visualizations of Voyager 2's
// 1989 Neptune encounter: an approach view centered on Neptune and a
// forward view looking out of the spacecraft's camera frame.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-flyby/internal/astro"
	"github.com/litescript/ls-flyby/internal/ephem"
	"github.com/litescript/ls-flyby/internal/logging"
	"github.com/litescript/ls-flyby/internal/report"
	"github.com/litescript/ls-flyby/internal/scene"
	"github.com/litescript/ls-flyby/internal/traj"
	"github.com/litescript/ls-flyby/internal/ui"
	"github.com/litescript/ls-flyby/internal/version"
)

// Default encounter windows, centered on the 1989-08-25 04:00 UTC closest
// approach.
var (
	approachStart = time.Date(1989, 8, 24, 0, 0, 0, 0, time.UTC)
	approachEnd   = time.Date(1989, 8, 26, 12, 0, 0, 0, time.UTC)
	forwardStart  = time.Date(1989, 8, 24, 12, 0, 0, 0, time.UTC)
	forwardEnd    = time.Date(1989, 8, 26, 0, 0, 0, 0, time.UTC)
)

const (
	defaultApproachSamples = 600
	defaultForwardSamples  = 200
	timeFlagLayout         = "2006-01-02T15:04"
)

// CLI flags
var (
	viewMode   string
	startFlag  string
	endFlag    string
	samples    int
	stride     int
	outDir     string
	cacheDir   string
	ephemPath  string
	logLevel   string
	noOpen     bool
	noProgress bool
	timeout    time.Duration
	showVer    bool
)

func main() {
	flag.StringVar(&viewMode, "view", "both", "View to render (approach, forward, both)")
	flag.StringVar(&startFlag, "start", "", "Grid start, UTC (e.g., 1989-08-24T00:00); default per view")
	flag.StringVar(&endFlag, "end", "", "Grid end, UTC; default per view")
	flag.IntVar(&samples, "samples", 0, "Samples across the grid; default per view")
	flag.IntVar(&stride, "stride", 3, "Approach view animates every Nth sample")
	flag.StringVar(&outDir, "out-dir", ".", "Directory for emitted HTML files")
	flag.StringVar(&cacheDir, "cache-dir", defaultCacheDir(), "Directory for cached Horizons responses")
	flag.StringVar(&ephemPath, "ephem", "", "Binary JPL DE ephemeris file for heliocentric context (optional)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&noOpen, "no-open", false, "Do not open results in the browser")
	flag.BoolVar(&noProgress, "no-progress", false, "Disable the terminal progress display")
	flag.DurationVar(&timeout, "timeout", ephem.RequestTimeout, "Horizons request timeout")
	flag.BoolVar(&showVer, "version", false, "Print version and exit")
	flag.Parse()

	if showVer {
		fmt.Printf("ls-flyby v%s\n", version.Version)
		return
	}

	if viewMode != "approach" && viewMode != "forward" && viewMode != "both" {
		fmt.Fprintf(os.Stderr, "Invalid -view %q (want approach, forward, or both)\n", viewMode)
		os.Exit(1)
	}

	logger := logging.New(logging.ParseLevel(logLevel))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: create output dir: %v\n", err)
		os.Exit(1)
	}

	provider := ephem.NewHorizonsProvider(
		ephem.WithTimeout(timeout),
		ephem.WithCacheDir(cacheDir),
	)

	var de *ephem.DEProvider
	if ephemPath != "" {
		var err error
		de, err = ephem.OpenDE(ephemPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: open DE ephemeris %s: %v\n", ephemPath, err)
			os.Exit(1)
		}
		defer de.Close()
		logger.Info("Using DE ephemeris %s for heliocentric context", de.Path())
	}

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	var result *runResult
	var runErr error

	if isTTY && !noProgress {
		model := ui.NewProgressModel("Voyager 2 — Neptune flyby")
		p := tea.NewProgram(model)

		go func() {
			result, runErr = run(ctx, provider, de, logger, func(phase string) {
				p.Send(ui.PhaseMsg{Name: phase})
			}, func(body string, done, total int) {
				p.Send(ui.ProgressMsg{Body: body, Done: done, Total: total})
			})
			p.Send(ui.DoneMsg{Err: runErr})
		}()

		final, err := p.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running progress display: %v\n", err)
			os.Exit(1)
		}
		// A quit before DoneMsg means the pipeline is still running and
		// result cannot be read safely.
		if m, ok := final.(ui.ProgressModel); !ok || !m.Finished() {
			fmt.Fprintln(os.Stderr, "Aborted.")
			os.Exit(1)
		}
	} else {
		result, runErr = run(ctx, provider, de, logger, nil, nil)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}

	report.WriteSummary(os.Stdout, result.summarySeries, satelliteNames(), result.helio)
	fmt.Println()
	for _, path := range result.outputs {
		fmt.Printf("  wrote %s\n", path)
	}

	if !noOpen {
		for _, path := range result.outputs {
			if err := scene.OpenInViewer(path); err != nil {
				logger.Warn("Could not open %s: %v", path, err)
			}
		}
	}
}

// runResult carries the pipeline outputs back to the summary stage.
type runResult struct {
	summarySeries *traj.Series
	helio         *report.HelioContext
	outputs       []string
}

func run(ctx context.Context, provider ephem.PositionProvider, de *ephem.DEProvider,
	logger *logging.Logger, phase func(string), progress traj.Progress) (*runResult, error) {

	if phase == nil {
		phase = func(string) {}
	}

	sampler := traj.NewSampler(provider, ephem.Voyager2, ephem.Satellites, logger.With("sampler"))
	sampler.OnProgress(progress)

	renderer := scene.NewPlotlyRenderer()
	result := &runResult{}

	if viewMode == "approach" || viewMode == "both" {
		phase("Fetching approach trajectories")
		series, err := sampler.Sample(ctx, gridFor(approachStart, approachEnd, defaultApproachSamples))
		if err != nil {
			return nil, fmt.Errorf("approach view: %w", err)
		}
		result.summarySeries = series
		result.helio = helioContext(de, series, logger)

		phase("Rendering approach view")
		doc := scene.BuildApproach(series, ephem.Neptune, stride, sunDirection(de, series, logger))
		path := filepath.Join(outDir, "voyager2_neptune.html")
		if err := scene.WriteDocument(renderer, doc, path); err != nil {
			return nil, err
		}
		result.outputs = append(result.outputs, path)

		chartPath := filepath.Join(outDir, "voyager2_distance.html")
		if err := report.WriteDistanceChart(series, chartPath); err != nil {
			return nil, err
		}
		result.outputs = append(result.outputs, chartPath)
	}

	if viewMode == "forward" || viewMode == "both" {
		phase("Fetching forward-view trajectories")
		series, err := sampler.Sample(ctx, gridFor(forwardStart, forwardEnd, defaultForwardSamples))
		if err != nil {
			return nil, fmt.Errorf("forward view: %w", err)
		}
		if result.summarySeries == nil {
			result.summarySeries = series
			result.helio = helioContext(de, series, logger)
		}

		phase("Rendering forward view")
		cams := traj.TransformSeries(series, astro.ZAxis)
		doc := scene.BuildForward(series, cams, ephem.Neptune)
		path := filepath.Join(outDir, "voyager2_forward_view.html")
		if err := scene.WriteDocument(renderer, doc, path); err != nil {
			return nil, err
		}
		result.outputs = append(result.outputs, path)
	}

	return result, nil
}

// gridFor applies the -start/-end/-samples overrides to a view's defaults.
func gridFor(start, end time.Time, defSamples int) ephem.Range {
	r := ephem.Range{Start: start, End: end, Samples: defSamples}
	if startFlag != "" {
		if t, err := time.Parse(timeFlagLayout, startFlag); err == nil {
			r.Start = t.UTC()
		} else {
			fmt.Fprintf(os.Stderr, "Invalid -start %q (want %s)\n", startFlag, timeFlagLayout)
			os.Exit(1)
		}
	}
	if endFlag != "" {
		if t, err := time.Parse(timeFlagLayout, endFlag); err == nil {
			r.End = t.UTC()
		} else {
			fmt.Fprintf(os.Stderr, "Invalid -end %q (want %s)\n", endFlag, timeFlagLayout)
			os.Exit(1)
		}
	}
	if samples > 1 {
		r.Samples = samples
	}
	return r
}

// sunDirection evaluates the Sun direction at closest approach, when a DE
// ephemeris is available.
func sunDirection(de *ephem.DEProvider, series *traj.Series, logger *logging.Logger) *astro.Vec3 {
	if de == nil {
		return nil
	}
	_, closest := series.ClosestApproach()
	dir, err := de.SunDirection(closest.Time)
	if err != nil {
		logger.Warn("Sun direction unavailable: %v", err)
		return nil
	}
	return &dir
}

// helioContext derives the Neptune-from-Sun summary block at closest approach.
func helioContext(de *ephem.DEProvider, series *traj.Series, logger *logging.Logger) *report.HelioContext {
	if de == nil {
		return nil
	}
	_, closest := series.ClosestApproach()
	pos, err := de.NeptuneHeliocentric(closest.Time)
	if err != nil {
		logger.Warn("Heliocentric context unavailable: %v", err)
		return nil
	}
	return report.NewHelioContext(pos)
}

func satelliteNames() []string {
	names := make([]string, len(ephem.Satellites))
	for i, s := range ephem.Satellites {
		names[i] = s.Name
	}
	return names
}

func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return "horizons_cache"
	}
	return filepath.Join(base, "ls-flyby")
}
