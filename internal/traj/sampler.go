// Package traj samples body positions over a time grid and derives the
// observer-centered camera frames used by the forward view.
package traj

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/litescript/ls-flyby/internal/astro"
	"github.com/litescript/ls-flyby/internal/ephem"
	"github.com/litescript/ls-flyby/internal/logging"
)

// Sample is the state of the encounter at one grid instant. Positions are in
// km relative to the primary body, world (ICRF/J2000) frame.
type Sample struct {
	Index    int
	Time     time.Time
	Observer astro.Vec3
	Bodies   map[ephem.BodyID]astro.Vec3
	Distance float64 // |Observer|, km
}

// Series is the ordered output of one sampling run.
type Series struct {
	Grid    ephem.Range
	Samples []Sample

	// Satellites lists the catalog entries that produced data, in catalog
	// order. Bodies that failed to resolve are absent here and from every
	// sample map.
	Satellites []ephem.Body
}

// ClosestApproach returns the index and sample of minimum observer distance.
func (s *Series) ClosestApproach() (int, Sample) {
	best := 0
	for i, smp := range s.Samples {
		if smp.Distance < s.Samples[best].Distance {
			best = i
		}
	}
	return best, s.Samples[best]
}

// Progress reports sampling progress, one event per completed body.
type Progress func(body string, done, total int)

// Sampler walks a time grid and collects positions for the observer and the
// tracked satellites from a PositionProvider. The catalog is injected; the
// sampler holds no global state.
type Sampler struct {
	provider   ephem.PositionProvider
	observer   ephem.Body
	satellites []ephem.Body
	logger     *logging.Logger
	progress   Progress
}

// NewSampler creates a sampler over the given provider and body catalog.
func NewSampler(provider ephem.PositionProvider, observer ephem.Body, satellites []ephem.Body, logger *logging.Logger) *Sampler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Sampler{
		provider:   provider,
		observer:   observer,
		satellites: satellites,
		logger:     logger,
	}
}

// OnProgress registers a progress callback. Pass nil to disable.
func (s *Sampler) OnProgress(p Progress) {
	s.progress = p
}

// Sample evaluates the grid. Observer data is required; a satellite whose
// ephemeris cannot be resolved is skipped with a warning, per-body, and the
// remaining satellites still appear in every sample.
func (s *Sampler) Sample(ctx context.Context, r ephem.Range) (*Series, error) {
	times := r.Times()
	if len(times) == 0 {
		return nil, fmt.Errorf("empty sampling grid")
	}

	total := 1 + len(s.satellites)

	s.logger.Debug("Sampling %s over %s..%s (%d samples) via %s",
		s.observer.Name, times[0].Format("2006-01-02 15:04"),
		times[len(times)-1].Format("2006-01-02 15:04"), r.Samples, s.provider.Name())

	observerPos, err := s.provider.Positions(ctx, s.observer.NAIFID, r)
	if err != nil {
		return nil, fmt.Errorf("observer %s: %w", s.observer.Name, err)
	}
	s.report(s.observer.Name, 1, total)

	series := &Series{Grid: r, Samples: make([]Sample, len(times))}
	for i, t := range times {
		series.Samples[i] = Sample{
			Index:    i,
			Time:     t,
			Observer: observerPos[i],
			Bodies:   make(map[ephem.BodyID]astro.Vec3, len(s.satellites)),
			Distance: observerPos[i].Norm(),
		}
	}

	for n, body := range s.satellites {
		positions, err := s.provider.Positions(ctx, body.NAIFID, r)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			s.logger.Warn("No ephemeris for %s, skipping: %v", body.Name, err)
			s.report(body.Name, n+2, total)
			continue
		}

		for i := range series.Samples {
			series.Samples[i].Bodies[body.NAIFID] = positions[i]
		}
		series.Satellites = append(series.Satellites, body)
		s.report(body.Name, n+2, total)
	}

	return series, nil
}

func (s *Sampler) report(body string, done, total int) {
	if s.progress != nil {
		s.progress(body, done, total)
	}
}
