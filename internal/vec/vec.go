// Package vec provides the small set of 2D vector helpers the simulation
// is built on. Positions and velocities are geom.XY values in world units.
package vec

import (
	"math"

	geom "github.com/peterstace/simplefeatures/geom"
)

// Epsilon is the length below which a vector is treated as having no
// meaningful direction.
const Epsilon = 1e-8

// SafeNormalize returns the unit vector and length of v. When v is shorter
// than Epsilon it returns a zero vector and zero length instead of dividing
// by zero. Callers must treat the zero result as "coincident points" and
// skip any dot-product based decision.
func SafeNormalize(v geom.XY) (geom.XY, float64) {
	length := v.Length()
	if length < Epsilon {
		return geom.XY{}, 0
	}
	return v.Scale(1 / length), length
}

// AngleToVec converts a facing angle in radians to a unit vector.
// Zero radians faces along +X; positive angles rotate toward -Y. Ball carry
// offsets and kick impulses use the same convention.
func AngleToVec(theta float64) geom.XY {
	return geom.XY{X: math.Cos(theta), Y: -math.Sin(theta)}
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b geom.XY) float64 {
	return a.Sub(b).Length()
}
