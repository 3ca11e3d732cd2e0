package spatialmath

import (
	"github.com/golang/geo/r3"
)

// Point is a single point in 3D space, labeled for identification in a collection of geometries.
type Point struct {
	pose  Pose
	label string
}

// NewPoint creates a Point from an r3.Vector, with the given label.
func NewPoint(pt r3.Vector, label string) *Point {
	return &Point{NewPoseFromPoint(pt), label}
}

// Pose returns the pose of the point, which has no associated rotation.
func (pt *Point) Pose() Pose {
	return pt.pose
}

// Label returns the name of the point.
func (pt *Point) Label() string {
	return pt.label
}

// Transform returns a new Point transformed by the given pose.
func (pt *Point) Transform(by Pose) *Point {
	return &Point{Compose(by, pt.pose), pt.label}
}
