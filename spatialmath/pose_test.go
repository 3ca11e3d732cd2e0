package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestComposeIdentity(t *testing.T) {
	p := NewPose(r3.Vector{X: 1, Y: 2, Z: 3}, &OrientationVector{OZ: 1, Theta: math.Pi / 3})
	composed := Compose(NewZeroPose(), p)
	test.That(t, PoseAlmostEqual(composed, p), test.ShouldBeTrue)
}

func TestComposeAndPoseBetween(t *testing.T) {
	a := NewPose(r3.Vector{X: 1, Y: 0, Z: 0}, &OrientationVector{OZ: 1, Theta: math.Pi / 2})
	b := NewPose(r3.Vector{X: 0, Y: 1, Z: 0}, NewZeroOrientation())
	composed := Compose(a, b)
	rel := PoseBetween(a, composed)
	test.That(t, PoseAlmostEqual(rel, b), test.ShouldBeTrue)
}
