// Package forceclosure implements the 6-D wrench-space force-closure
// analyzer: given a set of candidate contacts and a Coulomb friction
// coefficient, it discretizes each contact's friction cone into primitive
// wrenches, computes their convex hull in 6 dimensions, and tests whether
// the wrench-space origin lies strictly interior to that hull.
package forceclosure

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"go.viam.com/grasp/convexhull"
	"go.viam.com/grasp/geometry"
	"go.viam.com/grasp/spatialmath"
)

// minWrenches is the minimum number of primitive contact wrenches 3-D force
// closure requires; with friction (mu != 0) fewer than this is a
// validation error, while frictionless input with fewer is reported as
// non-closure.
const minWrenches = 7

// originEpsilon is the tolerance below which a facet offset is treated as
// passing through the origin rather than strictly excluding it.
const originEpsilon = 1e-15

// Analysis is the result of AnalyzeContacts3D. MinDist is the signed
// distance from the wrench-space origin to the nearest facet of the wrench
// hull, measured along that facet's outward normal; it is strictly positive
// iff the contacts achieve force closure. Volume is the total wrench-hull
// volume. MinDist == 0 (together with Volume == 0 for a genuine non-closure
// result, or alone for the early-exit on a non-interior origin) signals
// non-closure.
type Analysis struct {
	MinDist float64
	Volume  float64
}

// AnalyzeContacts3D implements the force-closure test of the grasp analysis
// core: discretize each contact's Coulomb cone into nCone primitive
// wrenches (skipped entirely when mu == 0, in which case each contact
// contributes exactly its own normal as a single wrench), build the 6-D
// wrench for every resulting primitive, compute its convex hull, and report
// whether the origin is strictly interior.
func AnalyzeContacts3D(contacts []geometry.Contact, mu float64, nCone int) (Analysis, error) {
	wrenchContacts := contacts
	if mu != 0 {
		wrenchContacts = discretizeCones(contacts, mu, nCone)
	}

	if len(wrenchContacts) < minWrenches {
		// Cone discretization (mu != 0) is expected to produce plenty of
		// primitive wrenches; still falling short of minWrenches there
		// means the caller misconfigured nCone or passed no contacts at
		// all, which is a validation error. A direct mu == 0 call with too
		// few raw contacts to even form a 6-D simplex cannot possibly be
		// force-closing, so it is reported as ordinary non-closure instead.
		if mu != 0 {
			return Analysis{}, errTooFewWrenches(len(wrenchContacts))
		}
		return Analysis{MinDist: 0, Volume: 0}, nil
	}

	points := make([]float64, 0, len(wrenchContacts)*6)
	for _, c := range wrenchContacts {
		w := wrench(c)
		points = append(points, w[0], w[1], w[2], w[3], w[4], w[5])
	}

	res, err := convexhull.Compute(points, 6, convexhull.Options{}, nil)
	if err != nil {
		return Analysis{}, err
	}

	const dim = 6
	nFacets := len(res.Planes) / (dim + 1)
	for i := 0; i < nFacets; i++ {
		b := res.Planes[i*(dim+1)+dim]
		if b > 0 || math.Abs(b) < originEpsilon {
			return Analysis{MinDist: 0, Volume: res.Volume}, nil
		}
	}

	offsets := make([]float64, nFacets)
	for i := 0; i < nFacets; i++ {
		offsets[i] = -res.Planes[i*(dim+1)+dim]
	}

	return Analysis{MinDist: floats.Min(offsets), Volume: res.Volume}, nil
}

// discretizeCones replaces each contact with nCone primitive contacts
// sharing its position but with a normal swept around the boundary of its
// Coulomb cone. right and up are the first two columns of the rotation
// matrix of the quaternion that rotates (0,0,1) onto the contact normal;
// for a normal within 1e-8 of +Z or -Z they are +X and +Y.
func discretizeCones(contacts []geometry.Contact, mu float64, nCone int) []geometry.Contact {
	out := make([]geometry.Contact, 0, len(contacts)*nCone)
	for _, c := range contacts {
		n := c.Norm.Normalize()
		frame := (&spatialmath.OrientationVector{OX: n.X, OY: n.Y, OZ: n.Z}).RotationMatrix()
		right, up := frame.Col(0), frame.Col(1)
		for k := 0; k < nCone; k++ {
			phi := 2 * math.Pi * float64(k) / float64(nCone)
			dir := n.Add(right.Mul(mu * math.Sin(phi))).Add(up.Mul(mu * math.Cos(phi)))
			out = append(out, geometry.Contact{Pos: c.Pos, Norm: dir.Normalize()})
		}
	}
	return out
}

// wrench returns the 6-D wrench (f; pos x f) for a contact, using its
// normal as the unit contact force.
func wrench(c geometry.Contact) [6]float64 {
	f := c.Norm
	torque := c.Pos.Cross(f)
	return [6]float64{f.X, f.Y, f.Z, torque.X, torque.Y, torque.Z}
}
