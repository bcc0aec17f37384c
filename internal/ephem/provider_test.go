package ephem

import (
	"testing"
	"time"
)

func TestRangeTimes(t *testing.T) {
	start := time.Date(1989, 8, 24, 0, 0, 0, 0, time.UTC)
	end := time.Date(1989, 8, 26, 12, 0, 0, 0, time.UTC)

	r := Range{Start: start, End: end, Samples: 600}
	times := r.Times()

	if len(times) != 600 {
		t.Fatalf("len(times) = %d, want 600", len(times))
	}
	if !times[0].Equal(start) {
		t.Errorf("first = %v, want %v", times[0], start)
	}
	if !times[len(times)-1].Equal(end) {
		t.Errorf("last = %v, want %v", times[len(times)-1], end)
	}

	// Evenly spaced and strictly increasing.
	step := times[1].Sub(times[0])
	for i := 1; i < len(times); i++ {
		d := times[i].Sub(times[i-1])
		if d <= 0 {
			t.Fatalf("grid not increasing at %d", i)
		}
		if diff := d - step; diff < -time.Millisecond || diff > time.Millisecond {
			t.Fatalf("uneven step at %d: %v vs %v", i, d, step)
		}
	}
}

func TestRangeTimesDeterministic(t *testing.T) {
	r := Range{
		Start:   time.Date(1989, 8, 24, 12, 0, 0, 0, time.UTC),
		End:     time.Date(1989, 8, 26, 0, 0, 0, 0, time.UTC),
		Samples: 200,
	}

	a := r.Times()
	b := r.Times()
	for i := range a {
		if !a[i].Equal(b[i]) {
			t.Fatalf("grid differs between runs at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestRangeTimesEdgeCases(t *testing.T) {
	start := time.Date(1989, 8, 25, 0, 0, 0, 0, time.UTC)

	if got := (Range{Start: start, End: start, Samples: 0}).Times(); got != nil {
		t.Errorf("zero samples: got %v, want nil", got)
	}

	one := (Range{Start: start, End: start.Add(time.Hour), Samples: 1}).Times()
	if len(one) != 1 || !one[0].Equal(start) {
		t.Errorf("single sample: got %v, want [%v]", one, start)
	}
}

func TestSatelliteByID(t *testing.T) {
	b, ok := SatelliteByID(NAIFTriton)
	if !ok {
		t.Fatal("Triton not found")
	}
	if b.Name != "Triton" || b.RadiusKm != 1353 {
		t.Errorf("Triton entry = %+v", b)
	}

	if _, ok := SatelliteByID(NAIFNeptune); ok {
		t.Error("Neptune should not be in the satellite catalog")
	}

	if len(Satellites) != 8 {
		t.Errorf("satellite catalog has %d entries, want 8", len(Satellites))
	}
}
