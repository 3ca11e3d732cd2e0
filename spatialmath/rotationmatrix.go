package spatialmath

import (
	"github.com/golang/geo/r3"
)

// RotationMatrix is a 3x3 matrix describing a rotation in 3D space, stored in row-major order.
type RotationMatrix struct {
	data [9]float64
}

// NewRotationMatrix constructs a RotationMatrix from nine row-major elements.
func NewRotationMatrix(data [9]float64) *RotationMatrix {
	return &RotationMatrix{data}
}

// At returns the element at the given zero-indexed row and column.
func (rm *RotationMatrix) At(row, col int) float64 {
	return rm.data[row*3+col]
}

// Row returns the given row of the matrix as a vector; Row(0) is the parent frame's X axis
// expressed in the local frame, Row(2) is the parent Z axis, etc.
func (rm *RotationMatrix) Row(row int) r3.Vector {
	return r3.Vector{X: rm.data[row*3], Y: rm.data[row*3+1], Z: rm.data[row*3+2]}
}

// Col returns the given column of the matrix as a vector.
func (rm *RotationMatrix) Col(col int) r3.Vector {
	return r3.Vector{X: rm.data[col], Y: rm.data[3+col], Z: rm.data[6+col]}
}

// MulVector rotates the given vector by this matrix.
func (rm *RotationMatrix) MulVector(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: rm.data[0]*v.X + rm.data[1]*v.Y + rm.data[2]*v.Z,
		Y: rm.data[3]*v.X + rm.data[4]*v.Y + rm.data[5]*v.Z,
		Z: rm.data[6]*v.X + rm.data[7]*v.Y + rm.data[8]*v.Z,
	}
}
