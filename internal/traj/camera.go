package traj

import (
	"time"

	"github.com/litescript/ls-flyby/internal/astro"
	"github.com/litescript/ls-flyby/internal/ephem"
)

// CameraSample is one grid instant re-expressed in the observer's camera
// frame: the forward axis points from the spacecraft toward the primary body.
type CameraSample struct {
	Index    int
	Time     time.Time
	Distance float64 // observer to primary, km

	Basis   astro.Basis
	Primary astro.Vec3                  // primary body in camera coordinates
	Bodies  map[ephem.BodyID]astro.Vec3 // satellites in camera coordinates
}

// TransformSeries converts a sampled series into camera-frame samples. For
// each sample the basis is built from the observer position with refUp as the
// reference axis; every body position is shifted to be observer-relative and
// rotated into the frame. Bodies absent from a sample stay absent.
func TransformSeries(series *Series, refUp astro.Vec3) []CameraSample {
	out := make([]CameraSample, len(series.Samples))

	for i, smp := range series.Samples {
		basis := astro.LookAt(smp.Observer, refUp)

		cam := CameraSample{
			Index:    smp.Index,
			Time:     smp.Time,
			Distance: smp.Distance,
			Basis:    basis,
			// The primary sits at the world origin, so its
			// observer-relative position is -Observer.
			Primary: basis.Apply(smp.Observer.Neg()),
			Bodies:  make(map[ephem.BodyID]astro.Vec3, len(smp.Bodies)),
		}

		for id, pos := range smp.Bodies {
			cam.Bodies[id] = basis.Apply(pos.Sub(smp.Observer))
		}

		out[i] = cam
	}

	return out
}
