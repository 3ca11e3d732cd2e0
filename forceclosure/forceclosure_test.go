package forceclosure

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"

	"go.viam.com/grasp/geometry"
	"go.viam.com/test"
)

// antipodalGrip builds S7: two contacts with opposing normals on a unit
// sphere, normals pointing into the sphere from either pole.
func antipodalGrip() []geometry.Contact {
	return []geometry.Contact{
		{Pos: r3.Vector{X: 0, Y: 0, Z: 1}, Norm: r3.Vector{X: 0, Y: 0, Z: -1}},
		{Pos: r3.Vector{X: 0, Y: 0, Z: -1}, Norm: r3.Vector{X: 0, Y: 0, Z: 1}},
	}
}

// TestAntipodalTwoFingerGripForceCloses covers property 7 and S7.
func TestAntipodalTwoFingerGripForceCloses(t *testing.T) {
	const mu, nCone = 0.5, 8
	analysis, err := AnalyzeContacts3D(antipodalGrip(), mu, nCone)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, analysis.MinDist, test.ShouldBeGreaterThan, 0)
	test.That(t, analysis.Volume, test.ShouldBeGreaterThan, 0)
}

// TestCoplanarParallelContactsDoNotClose covers property 8 and S8.
func TestCoplanarParallelContactsDoNotClose(t *testing.T) {
	contacts := []geometry.Contact{
		{Pos: r3.Vector{X: 0, Y: 0, Z: 0}, Norm: r3.Vector{X: 0, Y: 0, Z: 1}},
		{Pos: r3.Vector{X: 1, Y: 0, Z: 0}, Norm: r3.Vector{X: 0, Y: 0, Z: 1}},
		{Pos: r3.Vector{X: 0, Y: 1, Z: 0}, Norm: r3.Vector{X: 0, Y: 0, Z: 1}},
	}
	analysis, err := AnalyzeContacts3D(contacts, 0, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, analysis.MinDist, test.ShouldEqual, 0)
	test.That(t, analysis.Volume, test.ShouldEqual, 0)
}

// TestForceClosureInvariantUnderRotation covers property 6: mindist is
// unchanged when the same rigid rotation is applied to every contact's
// position and normal, since the wrench vector rotates as a rigid 6-D
// block-diagonal transform and convex-hull distances are orthogonally
// invariant.
func TestForceClosureInvariantUnderRotation(t *testing.T) {
	const mu, nCone = 0.5, 8
	base := antipodalGrip()
	baseline, err := AnalyzeContacts3D(base, mu, nCone)
	test.That(t, err, test.ShouldBeNil)

	theta := 0.6435
	rotated := make([]geometry.Contact, len(base))
	for i, c := range base {
		rotated[i] = geometry.Contact{Pos: rotateX(c.Pos, theta), Norm: rotateX(c.Norm, theta)}
	}

	analysis, err := AnalyzeContacts3D(rotated, mu, nCone)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, math.Abs(analysis.MinDist-baseline.MinDist), test.ShouldBeLessThan, 1e-9)
}

func rotateX(v r3.Vector, theta float64) r3.Vector {
	c, s := math.Cos(theta), math.Sin(theta)
	return r3.Vector{X: v.X, Y: c*v.Y - s*v.Z, Z: s*v.Y + c*v.Z}
}

// TestTooFewWrenchesWithFrictionErrors covers the §7 validation path: mu !=
// 0 but too few contacts to discretize into minWrenches primitives at all.
func TestTooFewWrenchesWithFrictionErrors(t *testing.T) {
	contacts := []geometry.Contact{
		{Pos: r3.Vector{X: 0, Y: 0, Z: 1}, Norm: r3.Vector{X: 0, Y: 0, Z: -1}},
	}
	_, err := AnalyzeContacts3D(contacts, 0.5, 2)
	test.That(t, err, test.ShouldNotBeNil)
}
