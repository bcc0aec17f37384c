package astro

// Reference axes used when constructing camera frames.
var (
	// ZAxis is the default reference "up" axis (J2000 +Z).
	ZAxis = Vec3{Z: 1}

	// XAxis is the fallback reference axis when the view direction is
	// parallel to ZAxis.
	XAxis = Vec3{X: 1}
)

// degenerateEps is the squared-norm threshold below which a cross product
// is treated as zero.
const degenerateEps = 1e-12

// Basis is a right-handed orthonormal camera frame. Forward points from the
// observer toward the target, Right and Up span the image plane.
type Basis struct {
	Right   Vec3
	Up      Vec3
	Forward Vec3
}

// LookAt builds the camera frame for an observer at pos looking back at the
// frame origin: forward = -pos normalized, right = forward × refUp, and
// up = right × forward.
//
// When forward is parallel to refUp the cross product degenerates; in that
// case the construction falls back to XAxis as the reference so the result
// stays orthonormal for every nonzero observer position.
func LookAt(pos, refUp Vec3) Basis {
	forward := pos.Neg().Normalized()

	right := forward.Cross(refUp)
	if right.Dot(right) < degenerateEps {
		right = forward.Cross(XAxis)
	}
	right = right.Normalized()

	return Basis{
		Right:   right,
		Up:      right.Cross(forward),
		Forward: forward,
	}
}

// Apply rotates a world-frame vector into camera coordinates
// (right, up, forward components).
func (b Basis) Apply(v Vec3) Vec3 {
	return Vec3{
		X: b.Right.Dot(v),
		Y: b.Up.Dot(v),
		Z: b.Forward.Dot(v),
	}
}

// Unapply rotates a camera-frame vector back into the world frame. For an
// orthonormal basis this is the transpose of Apply, so Unapply(Apply(v)) == v.
func (b Basis) Unapply(v Vec3) Vec3 {
	return Vec3{
		X: b.Right.X*v.X + b.Up.X*v.Y + b.Forward.X*v.Z,
		Y: b.Right.Y*v.X + b.Up.Y*v.Y + b.Forward.Y*v.Z,
		Z: b.Right.Z*v.X + b.Up.Z*v.Y + b.Forward.Z*v.Z,
	}
}
