package traj

import (
	"context"
	"math"
	"testing"

	"github.com/litescript/ls-flyby/internal/astro"
	"github.com/litescript/ls-flyby/internal/ephem"
	"github.com/litescript/ls-flyby/internal/logging"
)

func sampledSeries(t *testing.T) *Series {
	t.Helper()
	s := NewSampler(testProvider(), ephem.Voyager2, ephem.Satellites[:3], logging.Discard())
	series, err := s.Sample(context.Background(), testGrid())
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	return series
}

func TestTransformSeriesCount(t *testing.T) {
	series := sampledSeries(t)
	cams := TransformSeries(series, astro.ZAxis)

	if len(cams) != len(series.Samples) {
		t.Fatalf("camera samples = %d, want %d", len(cams), len(series.Samples))
	}
}

func TestTransformSeriesPrimaryOnBoresight(t *testing.T) {
	series := sampledSeries(t)
	cams := TransformSeries(series, astro.ZAxis)

	for _, cam := range cams {
		// The primary must sit on the forward axis at the sample distance.
		if math.Abs(cam.Primary.X) > 1e-6 || math.Abs(cam.Primary.Y) > 1e-6 {
			t.Fatalf("sample %d: primary off boresight (%v, %v)", cam.Index, cam.Primary.X, cam.Primary.Y)
		}
		if math.Abs(cam.Primary.Z-cam.Distance) > 1e-6 {
			t.Fatalf("sample %d: primary depth %v, want %v", cam.Index, cam.Primary.Z, cam.Distance)
		}
	}
}

func TestTransformSeriesRoundTrip(t *testing.T) {
	series := sampledSeries(t)
	cams := TransformSeries(series, astro.ZAxis)

	for i, cam := range cams {
		smp := series.Samples[i]
		for id, camPos := range cam.Bodies {
			rel := smp.Bodies[id].Sub(smp.Observer)
			back := cam.Basis.Unapply(camPos)

			scale := rel.Norm()
			if scale < 1 {
				scale = 1
			}
			if back.Sub(rel).Norm() > 1e-9*scale {
				t.Fatalf("sample %d body %d: round trip %v, want %v", i, id, back, rel)
			}
		}
	}
}

func TestTransformSeriesBasisOrthonormal(t *testing.T) {
	series := sampledSeries(t)
	cams := TransformSeries(series, astro.ZAxis)

	const tol = 1e-9
	for _, cam := range cams {
		b := cam.Basis
		for _, v := range []astro.Vec3{b.Right, b.Up, b.Forward} {
			if math.Abs(v.Norm()-1) > tol {
				t.Fatalf("sample %d: axis %v not unit length", cam.Index, v)
			}
		}
		if math.Abs(b.Right.Dot(b.Up)) > tol ||
			math.Abs(b.Right.Dot(b.Forward)) > tol ||
			math.Abs(b.Up.Dot(b.Forward)) > tol {
			t.Fatalf("sample %d: basis not orthogonal", cam.Index)
		}
	}
}

func TestTransformSeriesPreservesGaps(t *testing.T) {
	p := testProvider()
	p.missing = map[ephem.BodyID]bool{ephem.NAIFTriton: true}

	s := NewSampler(p, ephem.Voyager2, ephem.Satellites[:3], logging.Discard())
	series, err := s.Sample(context.Background(), testGrid())
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}

	cams := TransformSeries(series, astro.ZAxis)
	for _, cam := range cams {
		if _, ok := cam.Bodies[ephem.NAIFTriton]; ok {
			t.Fatal("Triton present in camera sample despite missing ephemeris")
		}
	}
}
