package spatialmath

import (
	"github.com/golang/geo/r3"
)

// floatEpsilon is the default tolerance used when comparing floating point geometric quantities
// for practical equality.
const floatEpsilon = 1e-8

// PlaneNormal returns the unit normal of the plane defined by three points, following the
// right-hand rule with respect to the p0->p1->p2 winding.
func PlaneNormal(p0, p1, p2 r3.Vector) r3.Vector {
	return p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
}

// ClosestPointSegmentPoint returns the closest point on line segment AB to the given point.
func ClosestPointSegmentPoint(a, b, point r3.Vector) r3.Vector {
	ab := b.Sub(a)
	denom := ab.Dot(ab)
	if denom < floatEpsilon {
		return a
	}
	t := point.Sub(a).Dot(ab) / denom
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Mul(t))
}
