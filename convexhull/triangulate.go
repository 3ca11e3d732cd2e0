package convexhull

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
)

// Triangulate fan-triangulates every 3-D face in faces (the [F, k1,
// ids..., k2, ids...] layout Compute produces with Options.ReturnFaces) by
// re-ordering each face's vertices by signed angle about its plane's
// normal and emitting a triangle fan from the first vertex. It only
// applies when dim == 3.
//
// Triangulate takes no plane list: since faces are merges of one-or-more
// coplanar simplicial facets, it derives each merged face's normal from
// the face's own vertices and orients it outward against the centroid of
// all points, rather than re-associating the face with a specific facet
// index (merging already discarded that one-to-one correspondence).
//
// Output is flattened triangle index triples: [a0,b0,c0, a1,b1,c1, ...].
func Triangulate(points []float64, dim int, faces []int) ([]int, error) {
	if dim != 3 {
		return nil, errTriangulateWrongDim(dim)
	}
	if len(faces) == 0 {
		return nil, nil
	}

	verts := make([]r3.Vector, len(points)/3)
	centroid := r3.Vector{}
	for i := range verts {
		verts[i] = r3.Vector{X: points[i*3], Y: points[i*3+1], Z: points[i*3+2]}
		centroid = centroid.Add(verts[i])
	}
	centroid = centroid.Mul(1 / float64(len(verts)))

	f := faces[0]
	pos := 1
	var out []int
	for face := 0; face < f; face++ {
		k := faces[pos]
		pos++
		ids := faces[pos : pos+k]
		pos += k

		tris := triangulateFace(verts, ids, centroid)
		out = append(out, tris...)
	}
	return out, nil
}

// triangulateFace implements §4.5 exactly: mean-center the face's points,
// assign vertex 0 angle zero, measure every other vertex's signed angle
// about the face normal relative to vertex 0, sort ascending, and fan the
// result from vertex 0.
func triangulateFace(verts []r3.Vector, ids []int, globalCentroid r3.Vector) []int {
	k := len(ids)
	if k < 3 {
		return nil
	}
	pts := make([]r3.Vector, k)
	for i, id := range ids {
		pts[i] = verts[id]
	}
	mean := r3.Vector{}
	for _, p := range pts {
		mean = mean.Add(p)
	}
	mean = mean.Mul(1 / float64(k))

	n := faceNormal(pts, mean)
	// Orient n outward: the global centroid must sit on the plane's
	// interior side, n.(centroid-mean) < 0, matching Compute's own
	// centroid-based orientation normalization.
	if n.Dot(globalCentroid.Sub(mean)) > 0 {
		n = n.Mul(-1)
	}

	p0 := pts[0].Sub(mean)
	type angled struct {
		idx   int
		angle float64
	}
	angles := make([]angled, k)
	angles[0] = angled{0, 0}
	for i := 1; i < k; i++ {
		pi := pts[i].Sub(mean)
		sin := n.Dot(p0.Cross(pi))
		cos := p0.Dot(pi)
		a := math.Atan2(sin, cos)
		if a < 0 {
			a += 2 * math.Pi
		}
		angles[i] = angled{i, a}
	}
	sort.SliceStable(angles, func(i, j int) bool { return angles[i].angle < angles[j].angle })

	order := make([]int, k)
	for i, a := range angles {
		order[i] = a.idx
	}

	var out []int
	for i := 2; i < k; i++ {
		out = append(out, ids[order[0]], ids[order[i-1]], ids[order[i]])
	}
	return out
}

// faceNormal derives an outward-ish normal for a face directly from its own
// points (mean-centered), using the first non-degenerate cross product of
// the first point with each later point. Any consistent normal works
// here: the angular sort it drives is invariant to which two points
// defined it, as long as the same normal is used for the whole face.
func faceNormal(pts []r3.Vector, mean r3.Vector) r3.Vector {
	p0 := pts[0].Sub(mean)
	for i := 1; i < len(pts); i++ {
		pi := pts[i].Sub(mean)
		n := p0.Cross(pi)
		if n.Norm() > 1e-12 {
			return n.Normalize()
		}
	}
	return r3.Vector{Z: 1}
}
