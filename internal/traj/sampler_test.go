package traj

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/litescript/ls-flyby/internal/astro"
	"github.com/litescript/ls-flyby/internal/ephem"
	"github.com/litescript/ls-flyby/internal/logging"
)

// flybyProvider synthesizes a straight-line flyby: the observer passes the
// origin at closestKm with speed kmPerSec, closest approach at tca. Satellite
// bodies ride circular orbits; bodies listed in missing return ErrNoData.
type flybyProvider struct {
	tca       time.Time
	closestKm float64
	kmPerSec  float64
	missing   map[ephem.BodyID]bool
}

func (f *flybyProvider) Name() string { return "synthetic" }

func (f *flybyProvider) Positions(_ context.Context, body ephem.BodyID, r ephem.Range) ([]astro.Vec3, error) {
	if f.missing[body] {
		return nil, ephem.ErrNoData
	}

	times := r.Times()
	out := make([]astro.Vec3, len(times))
	for i, t := range times {
		dt := t.Sub(f.tca).Seconds()
		if body == ephem.NAIFVoyager2 {
			out[i] = astro.Vec3{X: f.kmPerSec * dt, Y: f.closestKm, Z: 0}
			continue
		}
		// Circular orbit, radius keyed off the NAIF ID so bodies differ.
		radius := 100000 * float64(body-800)
		angle := dt / 50000 * float64(body-800)
		out[i] = astro.Vec3{
			X: radius * math.Cos(angle),
			Y: radius * math.Sin(angle),
			Z: 0,
		}
	}
	return out, nil
}

func testGrid() ephem.Range {
	return ephem.Range{
		Start:   time.Date(1989, 8, 24, 0, 0, 0, 0, time.UTC),
		End:     time.Date(1989, 8, 26, 12, 0, 0, 0, time.UTC),
		Samples: 600,
	}
}

func testProvider() *flybyProvider {
	return &flybyProvider{
		tca:       time.Date(1989, 8, 25, 4, 0, 0, 0, time.UTC),
		closestKm: 29240,
		kmPerSec:  17,
	}
}

func TestSamplerDistanceIsNorm(t *testing.T) {
	s := NewSampler(testProvider(), ephem.Voyager2, ephem.Satellites[:2], logging.Discard())
	series, err := s.Sample(context.Background(), testGrid())
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}

	for _, smp := range series.Samples {
		if math.Abs(smp.Distance-smp.Observer.Norm()) > 1e-9 {
			t.Fatalf("sample %d: distance %v != |observer| %v", smp.Index, smp.Distance, smp.Observer.Norm())
		}
	}
}

func TestSamplerCount(t *testing.T) {
	s := NewSampler(testProvider(), ephem.Voyager2, nil, logging.Discard())
	series, err := s.Sample(context.Background(), testGrid())
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}

	if len(series.Samples) != 600 {
		t.Errorf("got %d samples, want 600", len(series.Samples))
	}
	for i := 1; i < len(series.Samples); i++ {
		if !series.Samples[i].Time.After(series.Samples[i-1].Time) {
			t.Fatalf("samples out of time order at %d", i)
		}
	}
}

func TestSamplerClosestApproachScenario(t *testing.T) {
	// End-to-end shape of the historical grid: distance dips near the 25th
	// and rises monotonically afterwards.
	s := NewSampler(testProvider(), ephem.Voyager2, ephem.Satellites, logging.Discard())
	series, err := s.Sample(context.Background(), testGrid())
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}

	idx, closest := series.ClosestApproach()

	if closest.Distance > 30000 {
		t.Errorf("closest approach %v km, want <= 30000", closest.Distance)
	}
	if day := closest.Time.UTC().Day(); day != 25 {
		t.Errorf("closest approach on day %d, want 25", day)
	}

	// First sample is near the interval-start distance.
	wantFirst := series.Samples[0].Observer.Norm()
	if series.Samples[0].Distance != wantFirst {
		t.Errorf("first distance %v, want %v", series.Samples[0].Distance, wantFirst)
	}

	// Monotonic increase after the minimum.
	for i := idx + 1; i < len(series.Samples); i++ {
		if series.Samples[i].Distance <= series.Samples[i-1].Distance {
			t.Fatalf("distance not increasing after minimum at %d", i)
		}
	}
	// And monotonic decrease before it.
	for i := 1; i <= idx; i++ {
		if series.Samples[i].Distance >= series.Samples[i-1].Distance {
			t.Fatalf("distance not decreasing before minimum at %d", i)
		}
	}
}

func TestSamplerSkipsMissingBody(t *testing.T) {
	p := testProvider()
	p.missing = map[ephem.BodyID]bool{ephem.NAIFNereid: true}

	s := NewSampler(p, ephem.Voyager2, ephem.Satellites, logging.Discard())
	series, err := s.Sample(context.Background(), testGrid())
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}

	if len(series.Satellites) != len(ephem.Satellites)-1 {
		t.Errorf("covered satellites = %d, want %d", len(series.Satellites), len(ephem.Satellites)-1)
	}
	for _, b := range series.Satellites {
		if b.NAIFID == ephem.NAIFNereid {
			t.Error("Nereid should have been skipped")
		}
	}
	for _, smp := range series.Samples {
		if _, ok := smp.Bodies[ephem.NAIFNereid]; ok {
			t.Fatal("Nereid present in sample despite missing ephemeris")
		}
	}
}

func TestSamplerMissingObserverFatal(t *testing.T) {
	p := testProvider()
	p.missing = map[ephem.BodyID]bool{ephem.NAIFVoyager2: true}

	s := NewSampler(p, ephem.Voyager2, nil, logging.Discard())
	if _, err := s.Sample(context.Background(), testGrid()); err == nil {
		t.Fatal("expected error when observer ephemeris is missing")
	}
}

func TestSamplerProgress(t *testing.T) {
	s := NewSampler(testProvider(), ephem.Voyager2, ephem.Satellites[:3], logging.Discard())

	var events int
	var lastDone, lastTotal int
	s.OnProgress(func(_ string, done, total int) {
		events++
		lastDone, lastTotal = done, total
	})

	if _, err := s.Sample(context.Background(), testGrid()); err != nil {
		t.Fatalf("Sample: %v", err)
	}

	if events != 4 {
		t.Errorf("progress events = %d, want 4", events)
	}
	if lastDone != 4 || lastTotal != 4 {
		t.Errorf("final progress = %d/%d, want 4/4", lastDone, lastTotal)
	}
}
