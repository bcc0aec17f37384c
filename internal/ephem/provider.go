package ephem

import (
	"context"
	"errors"
	"time"

	"github.com/litescript/ls-flyby/internal/astro"
)

// ErrNoData is returned when a provider has no ephemeris coverage for a body
// over the requested range. Callers treat it as skip-and-continue for
// satellites and as fatal for the observer.
var ErrNoData = errors.New("no ephemeris data for body")

// Range is an evenly spaced sampling grid over a closed time interval.
type Range struct {
	Start   time.Time
	End     time.Time
	Samples int
}

// Times returns the grid timestamps: Samples instants linearly spaced from
// Start to End inclusive. A single-sample range yields just Start.
func (r Range) Times() []time.Time {
	if r.Samples <= 0 {
		return nil
	}
	times := make([]time.Time, r.Samples)
	if r.Samples == 1 {
		times[0] = r.Start
		return times
	}

	span := r.End.Sub(r.Start)
	for i := 0; i < r.Samples; i++ {
		offset := time.Duration(int64(span) * int64(i) / int64(r.Samples-1))
		times[i] = r.Start.Add(offset)
	}
	// Guard against integer truncation on the final step.
	times[r.Samples-1] = r.End
	return times
}

// PositionProvider supplies position vectors for a body at every timestamp of
// a sampling grid, in kilometers relative to the Neptune barycenter in the
// ICRF/J2000 frame.
type PositionProvider interface {
	// Name returns the provider name for display/logging.
	Name() string

	// Positions returns one vector per grid timestamp, in grid order.
	Positions(ctx context.Context, body BodyID, r Range) ([]astro.Vec3, error)
}
