package convexhull

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func octahedronPoints() []float64 {
	return []float64{
		1, 0, 0,
		-1, 0, 0,
		0, 1, 0,
		0, -1, 0,
		0, 0, 1,
		0, 0, -1,
	}
}

// TestTriangulateOctahedron covers S5: 8 CCW triangles, each drawn from one
// face's vertex set.
func TestTriangulateOctahedron(t *testing.T) {
	pts := octahedronPoints()
	res, err := Compute(pts, 3, Options{ReturnFaces: true}, nil)
	test.That(t, err, test.ShouldBeNil)

	tris, err := Triangulate(pts, 3, res.Faces)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(tris)/3, test.ShouldEqual, 8)

	verts := make([]r3.Vector, len(pts)/3)
	for i := range verts {
		verts[i] = r3.Vector{X: pts[i*3], Y: pts[i*3+1], Z: pts[i*3+2]}
	}
	centroid := r3.Vector{}

	for i := 0; i < len(tris); i += 3 {
		a, b, c := verts[tris[i]], verts[tris[i+1]], verts[tris[i+2]]
		n := b.Sub(a).Cross(c.Sub(a))
		mean := a.Add(b).Add(c).Mul(1.0 / 3.0)
		// outward: centroid (origin) must be on the interior side.
		test.That(t, n.Dot(centroid.Sub(mean)), test.ShouldBeLessThan, 0)
	}
}

func TestTriangulateRequiresDim3(t *testing.T) {
	_, err := Triangulate([]float64{0, 0, 1, 1, 1, 1}, 2, []int{1, 3, 0, 1})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestTriangulateCoversFaceArea(t *testing.T) {
	// A unit square face, vertices given out of angular order, must
	// triangulate into 2 triangles whose areas sum to 1.
	pts := []float64{
		0, 0, 0,
		1, 1, 0,
		1, 0, 0,
		0, 1, 0,
	}
	faces := []int{1, 4, 0, 1, 2, 3}
	tris, err := Triangulate(pts, 3, faces)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(tris)/3, test.ShouldEqual, 2)

	verts := make([]r3.Vector, 4)
	for i := range verts {
		verts[i] = r3.Vector{X: pts[i*3], Y: pts[i*3+1], Z: pts[i*3+2]}
	}
	area := 0.0
	for i := 0; i < len(tris); i += 3 {
		a, b, c := verts[tris[i]], verts[tris[i+1]], verts[tris[i+2]]
		area += 0.5 * b.Sub(a).Cross(c.Sub(a)).Norm()
	}
	test.That(t, math.Abs(area-1), test.ShouldBeLessThan, 1e-9)
}
