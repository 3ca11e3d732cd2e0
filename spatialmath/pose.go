package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Pose represents a 6dof pose, position and orientation, relative to some parent frame of reference.
type Pose interface {
	Point() r3.Vector
	Orientation() Orientation
}

type pose struct {
	point       r3.Vector
	orientation Orientation
}

// NewPose returns a pose with the given point and orientation. If the orientation is nil, the
// zero orientation (no rotation) is used.
func NewPose(point r3.Vector, orientation Orientation) Pose {
	if orientation == nil {
		orientation = NewZeroOrientation()
	}
	return &pose{point, orientation}
}

// NewPoseFromPoint returns a pose with no rotation, located at the given point.
func NewPoseFromPoint(point r3.Vector) Pose {
	return &pose{point, NewZeroOrientation()}
}

// NewZeroPose returns a pose with no translation or rotation.
func NewZeroPose() Pose {
	return &pose{r3.Vector{}, NewZeroOrientation()}
}

// Point returns the translation component of the pose.
func (p *pose) Point() r3.Vector {
	return p.point
}

// Orientation returns the rotation component of the pose.
func (p *pose) Orientation() Orientation {
	return p.orientation
}

// Compose composes two poses, returning a pose such that the child pose's frame of reference is
// expressed in terms of the parent's.
func Compose(parent, child Pose) Pose {
	rm := parent.Orientation().RotationMatrix()
	rotatedChildPoint := rm.MulVector(child.Point())
	newPoint := parent.Point().Add(rotatedChildPoint)

	q1 := parent.Orientation().Quaternion()
	q2 := child.Orientation().Quaternion()
	newOrient := quaternion(quat.Mul(q1, q2))
	return &pose{newPoint, &newOrient}
}

// PoseBetween returns the relative pose that, when composed with a, yields b.
func PoseBetween(a, b Pose) Pose {
	rm := a.Orientation().RotationMatrix()
	diff := b.Point().Sub(a.Point())
	relPoint := r3.Vector{
		X: rm.Col(0).Dot(diff),
		Y: rm.Col(1).Dot(diff),
		Z: rm.Col(2).Dot(diff),
	}
	relOrient := quaternion(quat.Mul(quat.Conj(a.Orientation().Quaternion()), b.Orientation().Quaternion()))
	return &pose{relPoint, &relOrient}
}

// PoseAlmostEqual returns whether the two poses are equal to within reasonable floating point tolerance.
func PoseAlmostEqual(a, b Pose) bool {
	return a.Point().Sub(b.Point()).Norm() < floatEpsilon && OrientationAlmostEqual(a.Orientation(), b.Orientation())
}
