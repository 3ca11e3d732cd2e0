// Package sampling populates candidate contact points on a target surface,
// either by casting a grid of rays from the faces of a bounding box, by
// casting one ray per icosphere-triangle centroid, or by casting rays along
// uniformly-random directions.
package sampling

import (
	"context"
	"math"
	"math/rand"

	"github.com/golang/geo/r3"

	"go.viam.com/grasp/geometry"
	"go.viam.com/grasp/utils"
)

// Environment is the narrow ray-casting contract this package needs from the
// host environment. It is a subset of the full external Environment
// interface (§6): sampling never touches collision options beyond setting
// and restoring the mask around its own queries.
type Environment interface {
	// SetCollisionOptions installs opts as the active collision-query mask
	// and returns the mask that was previously active, so callers can
	// restore it afterward.
	SetCollisionOptions(opts geometry.CollisionOptions) geometry.CollisionOptions
	// CastRay fires ray and reports the nearest hit, if any.
	CastRay(ray geometry.Ray) (geometry.Contact, bool)
}

const (
	boxSampleFar        = 1.0
	rayCastMagnitude    = 1000.0
	deterministicOffset = 10.0
	extrusionDistance   = 0.001 // 1 mm outward extrusion, matches DeterministicSample
)

func withContactsAndDistance(env Environment) func() {
	prev := env.SetCollisionOptions(geometry.CollisionOptionContacts | geometry.CollisionOptionDistance)
	return func() { env.SetCollisionOptions(prev) }
}

// flip turns a raw collision-report normal (pointing from the gripper link
// into the object) into the contact convention this package returns
// (pointing outward from the object).
func flip(n r3.Vector) r3.Vector {
	return n.Mul(-1)
}

// BoxSample casts rays inward from the 6 faces of an axis-aligned cube of
// side boxSampleFar centered on center, stepping across each face on a grid
// of spacing boxSampleFar/sqrt(n/12): about n/12 rays per face, so roughly
// n/2 rays in total.
func BoxSample(ctx context.Context, env Environment, center r3.Vector, n int) ([]geometry.Contact, error) {
	if n <= 0 {
		n = 1
	}
	restore := withContactsAndDistance(env)
	defer restore()

	delta := boxSampleFar / math.Sqrt(float64(n)/12.0)
	half := boxSampleFar / 2

	faces := boxFaces(half)
	results := make([][]geometry.Contact, len(faces))

	err := utils.GroupWorkParallel(ctx, len(faces),
		func(groupSize int) {},
		func(groupNum, groupSize, from, to int) (utils.MemberWorkFunc, utils.GroupWorkDoneFunc) {
			return func(memberNum, faceIdx int) {
				results[faceIdx] = sampleFace(env, center, faces[faceIdx], delta)
			}, nil
		})
	if err != nil {
		return nil, err
	}

	var out []geometry.Contact
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

// boxFace describes one face of the sampling cube in terms of its outward
// normal (which also serves as the inward ray direction once negated) and
// the two in-plane axes to grid-walk across.
type boxFace struct {
	normal   r3.Vector
	u, v     r3.Vector
	center   r3.Vector
	halfSize float64
}

func boxFaces(half float64) []boxFace {
	axes := []r3.Vector{
		{X: 1}, {X: -1},
		{Y: 1}, {Y: -1},
		{Z: 1}, {Z: -1},
	}
	faces := make([]boxFace, len(axes))
	for i, n := range axes {
		u, v := geometry.OrthonormalBasis(n)
		faces[i] = boxFace{normal: n, u: u, v: v, center: n.Mul(half), halfSize: half}
	}
	return faces
}

func sampleFace(env Environment, center r3.Vector, face boxFace, delta float64) []geometry.Contact {
	var contacts []geometry.Contact
	steps := int(math.Round((2 * face.halfSize) / delta))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		s := -face.halfSize + float64(i)*delta
		for j := 0; j <= steps; j++ {
			t := -face.halfSize + float64(j)*delta
			localPt := face.center.Add(face.u.Mul(s)).Add(face.v.Mul(t))
			origin := center.Add(localPt)
			dir := face.normal.Mul(-1 * rayCastMagnitude)
			ray := geometry.Ray{Origin: origin, Dir: dir}
			hit, ok := env.CastRay(ray)
			if !ok {
				continue
			}
			contacts = append(contacts, geometry.Contact{
				Pos:  hit.Pos,
				Norm: flip(hit.Norm),
			})
		}
	}
	return contacts
}

// DeterministicSample casts one ray per triangle centroid of the icosphere
// at the given subdivision level, offsetting the hit position outward by a
// small extrusion distance.
func DeterministicSample(env Environment, ico *geometry.Icosphere, center r3.Vector, level int) ([]geometry.Contact, error) {
	restore := withContactsAndDistance(env)
	defer restore()

	mesh, err := ico.Level(level)
	if err != nil {
		return nil, err
	}

	var contacts []geometry.Contact
	for i := 0; i < mesh.NumTriangles(); i++ {
		dir := mesh.Centroid(i).Normalize()
		origin := center.Sub(dir.Mul(deterministicOffset))
		ray := geometry.Ray{Origin: origin, Dir: dir.Mul(rayCastMagnitude)}
		hit, ok := env.CastRay(ray)
		if !ok {
			continue
		}
		contacts = append(contacts, geometry.Contact{
			Pos:  hit.Pos.Add(flip(hit.Norm).Mul(extrusionDistance)),
			Norm: flip(hit.Norm),
		})
	}
	return contacts, nil
}

// RandomSample (a.k.a. SampleObject) draws n uniform directions on the unit
// sphere and casts a ray along each, starting deterministicOffset behind
// center, as an alternative to BoxSample.
func RandomSample(rng *rand.Rand, env Environment, center r3.Vector, n int) ([]geometry.Contact, error) {
	restore := withContactsAndDistance(env)
	defer restore()

	var contacts []geometry.Contact
	for i := 0; i < n; i++ {
		dir := geometry.RandomUnitVector(rng)
		origin := center.Sub(dir.Mul(deterministicOffset))
		ray := geometry.Ray{Origin: origin, Dir: dir.Mul(rayCastMagnitude)}
		hit, ok := env.CastRay(ray)
		if !ok {
			continue
		}
		contacts = append(contacts, geometry.Contact{
			Pos:  hit.Pos,
			Norm: flip(hit.Norm),
		})
	}
	return contacts, nil
}

// SampleObject is an alias kept for symmetry with the command surface's
// naming; it behaves identically to RandomSample.
func SampleObject(rng *rand.Rand, env Environment, center r3.Vector, n int) ([]geometry.Contact, error) {
	return RandomSample(rng, env, center, n)
}
