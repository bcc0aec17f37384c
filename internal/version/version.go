// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Forward camera view, distance chart, local DE ephemeris support
// 0.2.0 - Animated approach scene, satellite orbits, sun direction ray
// 0.1.0 - Initial release: Horizons vector fetch, disk cache, trajectory sampler
