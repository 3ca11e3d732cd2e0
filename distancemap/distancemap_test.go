package distancemap

import (
	"math"
	"math/rand"
	"testing"

	"go.viam.com/test"

	"go.viam.com/grasp/geometry"
)

// sphereDistanceEnv reports the distance from a ray's origin to the unit
// sphere surface, ignoring direction (as if the origin were always the
// closest point on the surface to itself).
type sphereDistanceEnv struct {
	opts geometry.CollisionOptions
}

func (e *sphereDistanceEnv) SetCollisionOptions(opts geometry.CollisionOptions) geometry.CollisionOptions {
	prev := e.opts
	e.opts = opts
	return prev
}

func (e *sphereDistanceEnv) MinDistance(ray geometry.Ray) (float64, bool) {
	return math.Abs(ray.Origin.Norm() - 1), true
}

func TestComputeDistanceMapOnUnitSphereSurface(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	env := &sphereDistanceEnv{}

	contacts := make([]geometry.Contact, 0, 500)
	for i := 0; i < 500; i++ {
		dir := geometry.RandomUnitVector(rng)
		contacts = append(contacts, geometry.Contact{Pos: dir, Norm: dir})
	}

	Compute(rng, env, contacts, math.Pi/12, DefaultOptions())

	for _, c := range contacts {
		test.That(t, c.Depth, test.ShouldBeLessThan, 1e-9)
		test.That(t, math.Abs(c.Pos.Norm()-1) < 1e-3, test.ShouldBeTrue)
	}
	test.That(t, env.opts, test.ShouldEqual, geometry.CollisionOptions(0))
}

func TestSampleCountHeuristic(t *testing.T) {
	test.That(t, sampleCount(0.001), test.ShouldEqual, 1)
	test.That(t, sampleCount(math.Pi/12), test.ShouldEqual, 64)
	test.That(t, sampleCount(math.Pi/6), test.ShouldEqual, 128)
}

func TestDefaultOptionsMatchesOriginalConstant(t *testing.T) {
	test.That(t, DefaultOptions().MinDistInit, test.ShouldEqual, float64(2))
}
