package sampling

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/grasp/geometry"
)

// sphereEnv is a fake Environment whose target is the unit sphere centered
// at the origin.
type sphereEnv struct {
	opts geometry.CollisionOptions
}

func (e *sphereEnv) SetCollisionOptions(opts geometry.CollisionOptions) geometry.CollisionOptions {
	prev := e.opts
	e.opts = opts
	return prev
}

// CastRay intersects ray with the unit sphere, returning the nearer
// intersection point (if any) with an inward-pointing normal (as the raw
// collision report would give, before the package's own outward flip).
func (e *sphereEnv) CastRay(ray geometry.Ray) (geometry.Contact, bool) {
	d := ray.Dir.Normalize()
	oc := ray.Origin
	b := oc.Dot(d)
	c := oc.Dot(oc) - 1
	disc := b*b - c
	if disc < 0 {
		return geometry.Contact{}, false
	}
	t := -b - math.Sqrt(disc)
	if t < 0 {
		t = -b + math.Sqrt(disc)
	}
	if t < 0 || t > ray.Dir.Norm() {
		return geometry.Contact{}, false
	}
	pos := ray.Origin.Add(d.Mul(t))
	return geometry.Contact{Pos: pos, Norm: pos.Mul(-1)}, true
}

func TestBoxSampleHitsSphere(t *testing.T) {
	env := &sphereEnv{}
	contacts, err := BoxSample(context.Background(), env, r3.Vector{}, 600)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(contacts) > 0, test.ShouldBeTrue)
	for _, c := range contacts {
		test.That(t, math.Abs(c.Pos.Norm()-1) < 1e-6, test.ShouldBeTrue)
		// norm should point outward from the sphere (same direction as pos).
		test.That(t, c.Norm.Dot(c.Pos) > 0, test.ShouldBeTrue)
	}
}

func TestDeterministicSampleHitsEveryTriangle(t *testing.T) {
	env := &sphereEnv{}
	ico := geometry.NewIcosphere()
	contacts, err := DeterministicSample(env, ico, r3.Vector{}, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(contacts), test.ShouldEqual, 80)
}

func TestRandomSampleProducesUnitDistanceHits(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	env := &sphereEnv{}
	contacts, err := RandomSample(rng, env, r3.Vector{}, 200)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(contacts) > 100, test.ShouldBeTrue)
	for _, c := range contacts {
		test.That(t, math.Abs(c.Pos.Norm()-1) < 1e-6, test.ShouldBeTrue)
	}
}
