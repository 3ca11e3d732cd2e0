package geometry

import (
	"github.com/golang/geo/r3"

	"go.viam.com/grasp/spatialmath"
)

// TriMesh is a triangulated surface: an ordered vertex list and an ordered
// index list grouped in triples. Each triple is wound CCW as viewed from
// outside the mesh.
type TriMesh struct {
	Vertices []r3.Vector
	Indices  []int
}

// NumTriangles returns the number of triangles encoded by Indices.
func (m *TriMesh) NumTriangles() int {
	return len(m.Indices) / 3
}

// TriangleAt returns the i'th triangle of the mesh.
func (m *TriMesh) TriangleAt(i int) *spatialmath.Triangle {
	base := i * 3
	a := m.Vertices[m.Indices[base]]
	b := m.Vertices[m.Indices[base+1]]
	c := m.Vertices[m.Indices[base+2]]
	return spatialmath.NewTriangle(a, b, c)
}

// Centroid returns the arithmetic mean of the i'th triangle's vertices.
func (m *TriMesh) Centroid(i int) r3.Vector {
	return m.TriangleAt(i).Centroid()
}
