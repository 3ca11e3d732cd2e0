package geometry

import (
	"math"
	"math/rand"
	"testing"

	"go.viam.com/test"
)

func TestIcosphereOrientationAndVertexCount(t *testing.T) {
	ico := NewIcosphere()
	for l := 0; l <= 4; l++ {
		mesh, err := ico.Level(l)
		test.That(t, err, test.ShouldBeNil)

		for i := 0; i < mesh.NumTriangles(); i++ {
			base := i * 3
			a := mesh.Vertices[mesh.Indices[base]]
			b := mesh.Vertices[mesh.Indices[base+1]]
			c := mesh.Vertices[mesh.Indices[base+2]]
			test.That(t, isOutwardCCW(a, b, c), test.ShouldBeTrue)
		}

		for _, v := range mesh.Vertices {
			test.That(t, math.Abs(v.Norm()-1) < 1e-9, test.ShouldBeTrue)
		}

		want := 12 + 30*(pow4(l)-1)/3
		test.That(t, len(mesh.Vertices), test.ShouldEqual, want)
	}
}

func pow4(l int) int {
	n := 1
	for i := 0; i < l; i++ {
		n *= 4
	}
	return n
}

func TestIcosphereMidpointSharing(t *testing.T) {
	ico := NewIcosphere()
	mesh, err := ico.Level(2)
	test.That(t, err, test.ShouldBeNil)

	for i, v := range mesh.Vertices {
		for j := i + 1; j < len(mesh.Vertices); j++ {
			test.That(t, mesh.Vertices[j].Sub(v).Norm() > 1e-9, test.ShouldBeTrue)
		}
	}
}

func TestRandomUnitVectorIsUnit(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		v := RandomUnitVector(rng)
		test.That(t, math.Abs(v.Norm()-1) < 1e-9, test.ShouldBeTrue)
	}
}

func TestRandomConeVectorStaysInCone(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	axis := RandomUnitVector(rng)
	halfAngle := math.Pi / 12
	for i := 0; i < 1000; i++ {
		v := RandomConeVector(rng, axis, halfAngle).Normalize()
		cosAngle := v.Dot(axis)
		test.That(t, cosAngle >= math.Cos(halfAngle)-1e-9, test.ShouldBeTrue)
	}
}

func TestIcosphereInvalidLevel(t *testing.T) {
	ico := NewIcosphere()
	_, err := ico.Level(-1)
	test.That(t, err, test.ShouldNotBeNil)
}
