package spatialmath

import (
	"math"
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/grasp/utils"
)

var (
	th     = math.Pi / 4.
	q45x   = quat.Number{Real: math.Cos(th / 2.), Imag: math.Sin(th / 2.), Jmag: 0, Kmag: 0}
	aa45x  = &R4AA{th, 1., 0., 0.}
	ov45x  = &OrientationVector{2. * th, 0., -math.Sqrt(2) / 2., math.Sqrt(2) / 2.}
	ovd45x = &OrientationVectorDegrees{2 * utils.RadToDeg(th), 0., -math.Sqrt(2) / 2, math.Sqrt(2) / 2}
)

func TestZeroOrientation(t *testing.T) {
	zero := NewZeroOrientation()
	test.That(t, zero.Quaternion(), test.ShouldResemble, quat.Number{Real: 1, Imag: 0, Jmag: 0, Kmag: 0})
	test.That(t, zero.OrientationVectorRadians(), test.ShouldResemble, NewOrientationVector())
}

func TestQuaternionConversions(t *testing.T) {
	qq45x := quaternion(q45x)
	test.That(t, qq45x.OrientationVectorRadians().Theta, test.ShouldAlmostEqual, ov45x.Theta)
	test.That(t, qq45x.OrientationVectorRadians().OX, test.ShouldAlmostEqual, ov45x.OX)
	test.That(t, qq45x.OrientationVectorRadians().OY, test.ShouldAlmostEqual, ov45x.OY)
	test.That(t, qq45x.OrientationVectorRadians().OZ, test.ShouldAlmostEqual, ov45x.OZ)
	test.That(t, qq45x.OrientationVectorDegrees().Theta, test.ShouldAlmostEqual, ovd45x.Theta)
	test.That(t, qq45x.AxisAngles().Theta, test.ShouldAlmostEqual, aa45x.Theta)
	test.That(t, qq45x.AxisAngles().RX, test.ShouldAlmostEqual, aa45x.RX)
}

func TestOrientationVectorRoundTrip(t *testing.T) {
	q := ov45x.ToQuat()
	ov2 := QuatToOV(q)
	test.That(t, ov2.Theta, test.ShouldAlmostEqual, ov45x.Theta)
	test.That(t, ov2.OX, test.ShouldAlmostEqual, ov45x.OX)
	test.That(t, ov2.OY, test.ShouldAlmostEqual, ov45x.OY)
	test.That(t, ov2.OZ, test.ShouldAlmostEqual, ov45x.OZ)
}

func TestOrientationBetween(t *testing.T) {
	zero := NewZeroOrientation()
	o := &OrientationVector{OZ: 1, Theta: math.Pi / 2}
	diff := OrientationBetween(zero, o)
	test.That(t, OrientationAlmostEqual(diff, o), test.ShouldBeTrue)
}
