package astro

import (
	"time"
)

// j2000JD is the Julian date of the J2000.0 epoch (2000-01-01 12:00 TT).
const j2000JD = 2451545.0

// JulianDate converts a time to a Julian date. The sub-minute difference
// between UTC and the TDB scale used by ephemeris files is far below the
// sampling resolution of the flyby grids and is ignored.
func JulianDate(t time.Time) float64 {
	j2000 := time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)
	days := t.UTC().Sub(j2000).Seconds() / 86400
	return j2000JD + days
}
