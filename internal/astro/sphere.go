package astro

import (
	"math"
)

// Mesh holds parallel coordinate grids for a surface trace. The outer index
// runs over longitude, the inner over latitude.
type Mesh struct {
	X [][]float64
	Y [][]float64
	Z [][]float64
}

// SphereMesh generates a sphere of the given radius centered at center,
// sampled on an nLon × nLat longitude/latitude grid. nLon and nLat must be
// at least 2; smaller values are clamped.
func SphereMesh(center Vec3, radius float64, nLon, nLat int) Mesh {
	if nLon < 2 {
		nLon = 2
	}
	if nLat < 2 {
		nLat = 2
	}

	m := Mesh{
		X: make([][]float64, nLon),
		Y: make([][]float64, nLon),
		Z: make([][]float64, nLon),
	}

	for i := 0; i < nLon; i++ {
		theta := 2 * math.Pi * float64(i) / float64(nLon-1)
		m.X[i] = make([]float64, nLat)
		m.Y[i] = make([]float64, nLat)
		m.Z[i] = make([]float64, nLat)

		for j := 0; j < nLat; j++ {
			phi := math.Pi * float64(j) / float64(nLat-1)
			sinPhi := math.Sin(phi)
			m.X[i][j] = center.X + radius*math.Cos(theta)*sinPhi
			m.Y[i][j] = center.Y + radius*math.Sin(theta)*sinPhi
			m.Z[i][j] = center.Z + radius*math.Cos(phi)
		}
	}

	return m
}
