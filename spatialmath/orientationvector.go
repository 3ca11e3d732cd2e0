package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/grasp/utils"
)

// OrientationVector containing ox, oy, oz, theta represents an orientation vector
// Structured similarly to an R4 axis angle, an orientation vector works differently. Rather than representing an
// orientation with an arbitrary axis and a rotation around it from an origin, an orientation vector represents
// orientation such that the ox/oy/oz vector represents the third column of a rotation matrix, the unit vector
// which the +Z axis of a given reference frame has been mapped to. Theta represents the amount of rotation
// that has occurred around that vector, with respect to the original reference frame.
type OrientationVector struct {
	Theta float64 `json:"th"`
	OX    float64 `json:"x"`
	OY    float64 `json:"y"`
	OZ    float64 `json:"z"`
}

// OrientationVectorDegrees is the orientation vector between two objects, but expressed in degrees rather than radians.
type OrientationVectorDegrees struct {
	Theta float64 `json:"th"`
	OX    float64 `json:"x"`
	OY    float64 `json:"y"`
	OZ    float64 `json:"z"`
}

// NewOrientationVector returns an orientation vector representing zero rotation.
func NewOrientationVector() *OrientationVector {
	return &OrientationVector{0, 0, 0, 1}
}

// NewOrientationVectorDegrees returns an orientation vector, in degrees, representing zero rotation.
func NewOrientationVectorDegrees() *OrientationVectorDegrees {
	return &OrientationVectorDegrees{0, 0, 0, 1}
}

// Normalize scales the x, y, and z components of an orientation vector to be on the unit sphere.
func (ov *OrientationVector) Normalize() {
	norm := math.Sqrt(ov.OX*ov.OX + ov.OY*ov.OY + ov.OZ*ov.OZ)
	if norm == 0 {
		ov.OZ = 1
		return
	}
	ov.OX /= norm
	ov.OY /= norm
	ov.OZ /= norm
}

// ToQuat converts an orientation vector to a quaternion.
func (ov *OrientationVector) ToQuat() quat.Number {
	ov2 := &OrientationVector{ov.Theta, ov.OX, ov.OY, ov.OZ}
	ov2.Normalize()
	// Capture the degenerate case where ox = oy = 0 (rotation is around the Z axis)
	if 1-math.Abs(ov2.OZ) < 1e-8 {
		sign := 1.0
		if ov2.OZ < 0 {
			sign = -1.0
		}
		return quat.Number{Real: math.Cos(ov2.Theta / 2), Imag: 0, Jmag: 0, Kmag: sign * math.Sin(ov2.Theta/2)}
	}
	// Axis of rotation is the cross product of [0,0,1] and the normalized orientation vector.
	axis := r3.Vector{X: 0, Y: 0, Z: 1}.Cross(r3.Vector{X: ov2.OX, Y: ov2.OY, Z: ov2.OZ})
	axisNorm := axis.Norm()
	lat := math.Acos(ov2.OZ)
	sinHalf := math.Sin(lat / 2)
	q1 := quat.Number{Real: math.Cos(lat / 2), Imag: sinHalf * axis.X / axisNorm, Jmag: sinHalf * axis.Y / axisNorm, Kmag: sinHalf * axis.Z / axisNorm}
	q2 := quat.Number{Real: math.Cos(ov2.Theta / 2), Imag: 0, Jmag: 0, Kmag: math.Sin(ov2.Theta / 2)}
	return quat.Mul(q1, q2)
}

// OrientationVectorRadians returns orientation as an orientation vector (in radians).
func (ov *OrientationVector) OrientationVectorRadians() *OrientationVector {
	return ov
}

// OrientationVectorDegrees returns orientation as an orientation vector (in degrees).
func (ov *OrientationVector) OrientationVectorDegrees() *OrientationVectorDegrees {
	return &OrientationVectorDegrees{utils.RadToDeg(ov.Theta), ov.OX, ov.OY, ov.OZ}
}

// AxisAngles returns the orientation in axis angle representation.
func (ov *OrientationVector) AxisAngles() *R4AA {
	aa := QuatToR4AA(ov.ToQuat())
	return &aa
}

// Quaternion returns orientation in quaternion representation.
func (ov *OrientationVector) Quaternion() quat.Number {
	return ov.ToQuat()
}

// EulerAngles returns orientation in Euler angle representation.
func (ov *OrientationVector) EulerAngles() *EulerAngles {
	return QuatToEulerAngles(ov.ToQuat())
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (ov *OrientationVector) RotationMatrix() *RotationMatrix {
	return QuatToRotationMatrix(ov.ToQuat())
}

// OrientationVectorRadians returns the underlying orientation vector in radians.
func (ovd *OrientationVectorDegrees) OrientationVectorRadians() *OrientationVector {
	return &OrientationVector{utils.DegToRad(ovd.Theta), ovd.OX, ovd.OY, ovd.OZ}
}

// OrientationVectorDegrees returns the orientation vector unchanged.
func (ovd *OrientationVectorDegrees) OrientationVectorDegrees() *OrientationVectorDegrees {
	return ovd
}

// AxisAngles returns the orientation in axis angle representation.
func (ovd *OrientationVectorDegrees) AxisAngles() *R4AA {
	return ovd.OrientationVectorRadians().AxisAngles()
}

// Quaternion returns orientation in quaternion representation.
func (ovd *OrientationVectorDegrees) Quaternion() quat.Number {
	return ovd.OrientationVectorRadians().Quaternion()
}

// EulerAngles returns orientation in Euler angle representation.
func (ovd *OrientationVectorDegrees) EulerAngles() *EulerAngles {
	return ovd.OrientationVectorRadians().EulerAngles()
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (ovd *OrientationVectorDegrees) RotationMatrix() *RotationMatrix {
	return ovd.OrientationVectorRadians().RotationMatrix()
}

// QuatToOV converts a quaternion to an orientation vector.
func QuatToOV(q quat.Number) *OrientationVector {
	xAxis := quat.Number{Real: 0, Imag: -1, Jmag: 0, Kmag: 0}
	zAxis := quat.Number{Real: 0, Imag: 0, Jmag: 0, Kmag: 1}
	ov := &OrientationVector{}
	newX := quat.Mul(quat.Mul(q, xAxis), quat.Conj(q))
	newZ := quat.Mul(quat.Mul(q, zAxis), quat.Conj(q))
	ov.OX = newZ.Imag
	ov.OY = newZ.Jmag
	ov.OZ = newZ.Kmag

	if 1-math.Abs(newZ.Kmag) < 1e-2 {
		if newZ.Kmag < 0 {
			ov.Theta = -math.Atan2(newX.Jmag, newX.Imag)
		} else {
			ov.Theta = -math.Atan2(newX.Jmag, -newX.Imag)
		}
		return ov
	}

	v1 := r3.Vector{X: newZ.Imag, Y: newZ.Jmag, Z: newZ.Kmag}
	v2 := r3.Vector{X: newX.Imag, Y: newX.Jmag, Z: newX.Kmag}
	norm1 := v1.Cross(v2)
	norm2 := v1.Cross(r3.Vector{X: zAxis.Imag, Y: zAxis.Jmag, Z: zAxis.Kmag})

	cosTheta := norm1.Dot(norm2) / (norm1.Norm() * norm2.Norm())
	cosTheta = clamp(cosTheta, -1, 1)
	theta := math.Acos(cosTheta)
	if theta < 1e-2 {
		ov.Theta = 0
		return ov
	}
	aa := R4AA{-theta, ov.OX, ov.OY, ov.OZ}
	q2 := aa.ToQuat()
	testZ := quat.Mul(quat.Mul(q2, zAxis), quat.Conj(q2))
	norm3 := v1.Cross(r3.Vector{X: testZ.Imag, Y: testZ.Jmag, Z: testZ.Kmag})
	cosTest := norm1.Dot(norm3) / (norm1.Norm() * norm3.Norm())
	if 1-cosTest < 1e-4 {
		ov.Theta = -theta
	} else {
		ov.Theta = theta
	}
	return ov
}

// QuatToOVD converts a quaternion to an orientation vector expressed in degrees.
func QuatToOVD(q quat.Number) *OrientationVectorDegrees {
	ov := QuatToOV(q)
	return &OrientationVectorDegrees{utils.RadToDeg(ov.Theta), ov.OX, ov.OY, ov.OZ}
}
