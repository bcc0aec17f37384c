package ephem

import (
	"fmt"
	"time"

	"github.com/mshafiee/jpleph"

	"github.com/litescript/ls-flyby/internal/astro"
)

// DEProvider reads a local binary JPL DE ephemeris file. It covers the major
// planets only, so the flyby pipelines use it for heliocentric context
// (Neptune's distance from the Sun, light time, Sun direction), not for the
// spacecraft or satellites.
type DEProvider struct {
	eph  *jpleph.Ephemeris
	path string
}

// OpenDE opens a binary DE ephemeris file (e.g. de440.bin). A missing or
// unreadable file is an error; the caller decides whether that is fatal.
func OpenDE(path string) (*DEProvider, error) {
	eph, err := jpleph.NewEphemeris(path, false)
	if err != nil {
		return nil, fmt.Errorf("open DE ephemeris %s: %w", path, err)
	}
	return &DEProvider{eph: eph, path: path}, nil
}

// Close releases the underlying ephemeris file.
func (p *DEProvider) Close() error {
	return p.eph.Close()
}

// Path returns the ephemeris file path.
func (p *DEProvider) Path() string {
	return p.path
}

// NeptuneHeliocentric returns Neptune's position relative to the Sun in km
// at the given time.
func (p *DEProvider) NeptuneHeliocentric(t time.Time) (astro.Vec3, error) {
	jd := astro.JulianDate(t)
	pos, _, err := p.eph.CalculatePV(jd, jpleph.Neptune, jpleph.CenterSun, false)
	if err != nil {
		return astro.Vec3{}, fmt.Errorf("neptune position at JD %.5f: %w", jd, err)
	}
	// jpleph returns AU.
	return astro.Vec3{
		X: astro.AUToKm(pos.X),
		Y: astro.AUToKm(pos.Y),
		Z: astro.AUToKm(pos.Z),
	}, nil
}

// SunDirection returns the unit vector pointing from Neptune toward the Sun
// at the given time, in the same frame the DE file uses.
func (p *DEProvider) SunDirection(t time.Time) (astro.Vec3, error) {
	helio, err := p.NeptuneHeliocentric(t)
	if err != nil {
		return astro.Vec3{}, err
	}
	return helio.Neg().Normalized(), nil
}
