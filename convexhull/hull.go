// Package convexhull implements the general d-dimensional convex-hull
// contract (d in [2,6]) that the grasp analysis core needs: halfspace
// planes, face-vertex lists, and total polytope volume, with outward-facing
// facet normals. It also implements the planar face triangulator (see
// triangulate.go).
//
// No external qhull-equivalent binary is linked into this module, so the
// hull is built in-process with an incremental (Quickhull-style) insertion:
// start from a d+1 point simplex, repeatedly find the farthest point outside
// the current hull, remove every facet it is in front of, and stitch new
// facets from the resulting horizon ridges to the new point. This is the
// same incremental-insertion shape surveyed from the EPA polytope-expansion
// reference material in the example pack (visible-face detection, boundary
// (ridge) extraction via an occurrence count, face removal, new-face
// construction from the boundary), generalized from 3-D triangular faces
// and edges to dim-D simplicial facets and (dim-1)-vertex ridges.
package convexhull

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

const outsideEpsilon = 1e-9

// Result is the output of Compute.
type Result struct {
	// Planes holds one outward unit normal (dim reals) followed by a signed
	// offset b per facet, flattened: halfspace is n.x + b <= 0.
	Planes []float64
	// Faces holds, when requested, [F, k1, id11..id1k1, k2, id21...]: a
	// leading face count then, per face, a vertex count and vertex-id list.
	// Coplanar simplicial facets are merged into a single polygonal face.
	Faces []int
	// Volume is the total polytope volume.
	Volume float64
}

// Options controls which optional outputs Compute produces.
type Options struct {
	ReturnFaces bool
}

type facet struct {
	vertices []int // len == dim, indices into the input point set
	normal   []float64
	offset   float64 // b such that n.x + b <= 0 for interior points
}

// Compute builds the convex hull of the N points packed into vpoints
// (N*dim reals), returning halfspace planes, optional merged face-vertex
// lists, and the polytope volume. dim must be in [2,6]. diag, if non-nil,
// receives a warning whenever the input forces a degenerate-simplex
// fallback.
func Compute(vpoints []float64, dim int, opts Options, diag *Diagnostics) (Result, error) {
	if dim < 2 || dim > 6 {
		return Result{}, errBadDimension(dim)
	}
	if len(vpoints)%dim != 0 {
		return Result{}, errPointCount(len(vpoints), dim)
	}
	n := len(vpoints) / dim
	if n < dim+1 {
		return Result{}, errTooFewPoints(n, dim)
	}

	points := make([][]float64, n)
	for i := 0; i < n; i++ {
		points[i] = vpoints[i*dim : (i+1)*dim]
	}

	centroid := centroidN(points, dim)

	// A point set whose affine span is lower-dimensional than dim (every
	// contact lying on the closing axis, say, so one wrench coordinate is
	// identically constant) has no d+1 affinely independent points to seed a
	// full-dimensional simplex. Rather than fail, build the hull in the
	// point set's own affine subspace and embed the resulting facets back.
	if rank, basis := affineRank(points, centroid, dim); rank < dim {
		if rank < 2 {
			if diag != nil {
				diag.warn(fmt.Sprintf("convexhull: affine span has rank %d, too degenerate for a hull", rank))
			}
			return Result{}, nil
		}
		return computeProjected(points, centroid, basis, rank, dim, opts, diag)
	}

	facets, err := buildHull(points, dim, diag)
	if err != nil {
		return Result{}, err
	}

	normalizeOrientation(facets, centroid)

	vol := polytopeVolume(facets, points, centroid, dim)

	merged := mergeFacets(facets)
	planes := make([]float64, 0, len(merged)*(dim+1))
	for _, m := range merged {
		planes = append(planes, m.normal...)
		planes = append(planes, m.offset)
	}

	res := Result{Planes: planes, Volume: vol}
	if opts.ReturnFaces {
		res.Faces = packFaces(merged)
	}
	return res, nil
}

// affineRank reports the dimension of the affine subspace spanned by
// points (via the rank of the centered point matrix) and, when that rank is
// less than dim, an orthonormal dim x rank basis for the subspace's
// directions. When rank == dim, basis is nil and the caller should proceed
// with the ordinary full-dimensional construction.
func affineRank(points [][]float64, centroid []float64, dim int) (int, *mat.Dense) {
	x := mat.NewDense(len(points), dim, nil)
	for i, p := range points {
		x.SetRow(i, subN(p, centroid))
	}
	var svd mat.SVD
	if !svd.Factorize(x, mat.SVDFull) {
		return dim, nil
	}
	rank := 0
	for _, v := range svd.Values(nil) {
		if v > 1e-9 {
			rank++
		}
	}
	if rank >= dim {
		return dim, nil
	}
	var v mat.Dense
	svd.VTo(&v)
	basis := mat.NewDense(dim, rank, nil)
	for j := 0; j < rank; j++ {
		for i := 0; i < dim; i++ {
			basis.Set(i, j, v.At(i, j))
		}
	}
	return rank, basis
}

// computeProjected builds the hull of points within the rank-dimensional
// affine subspace described by basis and centroid, then embeds the
// resulting halfspace planes back into the ambient dim-dimensional space.
// Face vertex indices need no translation: the projected point set is the
// same points in the same order, just re-expressed in rank coordinates.
func computeProjected(points [][]float64, centroid []float64, basis *mat.Dense, rank, dim int, opts Options, diag *Diagnostics) (Result, error) {
	projected := make([]float64, 0, len(points)*rank)
	for _, p := range points {
		projected = append(projected, projectToSubspace(p, centroid, basis, dim, rank)...)
	}
	sub, err := Compute(projected, rank, opts, diag)
	if err != nil {
		return Result{}, err
	}

	nFacets := len(sub.Planes) / (rank + 1)
	planes := make([]float64, 0, nFacets*(dim+1))
	for i := 0; i < nFacets; i++ {
		nSub := sub.Planes[i*(rank+1) : i*(rank+1)+rank]
		bSub := sub.Planes[i*(rank+1)+rank]
		nAmb := embedFromSubspace(basis, nSub, dim, rank)
		planes = append(planes, nAmb...)
		planes = append(planes, bSub-dotN(nAmb, centroid))
	}
	return Result{Planes: planes, Faces: sub.Faces, Volume: sub.Volume}, nil
}

func projectToSubspace(p, centroid []float64, basis *mat.Dense, dim, rank int) []float64 {
	centered := subN(p, centroid)
	out := make([]float64, rank)
	for j := 0; j < rank; j++ {
		s := 0.0
		for i := 0; i < dim; i++ {
			s += basis.At(i, j) * centered[i]
		}
		out[j] = s
	}
	return out
}

func embedFromSubspace(basis *mat.Dense, v []float64, dim, rank int) []float64 {
	out := make([]float64, dim)
	for i := 0; i < dim; i++ {
		s := 0.0
		for j := 0; j < rank; j++ {
			s += basis.At(i, j) * v[j]
		}
		out[i] = s
	}
	return out
}

// buildHull runs the Quickhull-style incremental construction and returns
// the resulting simplicial facets, oriented outward relative to the initial
// simplex's own centroid (not yet the global-centroid normalization the
// caller applies afterward).
func buildHull(points [][]float64, dim int, diag *Diagnostics) ([]facet, error) {
	simplexIdx, err := seedSimplex(points, dim)
	if err != nil {
		if diag != nil {
			diag.warn(fmt.Sprintf("convexhull: %v", err))
		}
		return nil, err
	}
	ref := centroidN(selectPoints(points, simplexIdx), dim)

	facets := initialSimplexFacets(points, simplexIdx, ref, dim)

	used := make(map[int]bool, dim+1)
	for _, idx := range simplexIdx {
		used[idx] = true
	}
	remaining := make([]int, 0, len(points)-len(simplexIdx))
	for i := range points {
		if !used[i] {
			remaining = append(remaining, i)
		}
	}

	for {
		// Find a facet with a nonempty outside set and its farthest point.
		bestFacet, bestPoint, bestDist := -1, -1, outsideEpsilon
		for fi, f := range facets {
			for _, pi := range remaining {
				d := dotN(f.normal, points[pi]) + f.offset
				if d > bestDist {
					bestDist, bestFacet, bestPoint = d, fi, pi
				}
			}
		}
		if bestFacet < 0 {
			break
		}
		apex := bestPoint
		apexPoint := points[apex]

		visible := make(map[int]bool)
		for fi, f := range facets {
			if dotN(f.normal, apexPoint)+f.offset > outsideEpsilon {
				visible[fi] = true
			}
		}
		if len(visible) == 0 {
			visible[bestFacet] = true
		}

		ridgeCount := make(map[string]int)
		ridgeVerts := make(map[string][]int)
		for fi := range visible {
			for _, ridge := range ridgesOf(facets[fi].vertices) {
				key := ridgeKey(ridge)
				ridgeCount[key]++
				ridgeVerts[key] = ridge
			}
		}

		var newFacets []facet
		for key, cnt := range ridgeCount {
			if cnt != 1 {
				continue
			}
			verts := append(append([]int{}, ridgeVerts[key]...), apex)
			nf, ok := buildFacet(points, verts, ref, dim)
			if !ok {
				continue
			}
			newFacets = append(newFacets, nf)
		}

		kept := make([]facet, 0, len(facets)-len(visible)+len(newFacets))
		for fi, f := range facets {
			if !visible[fi] {
				kept = append(kept, f)
			}
		}
		kept = append(kept, newFacets...)
		facets = kept

		// Remove the apex from the remaining set; everything else is
		// re-tested against the new facet list on the next iteration.
		out := remaining[:0]
		for _, pi := range remaining {
			if pi != apex {
				out = append(out, pi)
			}
		}
		remaining = out
	}

	return facets, nil
}

// seedSimplex greedily selects dim+1 affinely independent points to build
// the starting simplex.
func seedSimplex(points [][]float64, dim int) ([]int, error) {
	idx := []int{0}
	basis := make([][]float64, 0, dim)
	for i := 1; i < len(points) && len(idx) < dim+1; i++ {
		candidate := subN(points[i], points[idx[0]])
		if isIndependent(basis, candidate, dim) {
			basis = append(basis, candidate)
			idx = append(idx, i)
		}
	}
	if len(idx) != dim+1 {
		return nil, errDegenerateSimplex(dim)
	}
	return idx, nil
}

func isIndependent(basis [][]float64, v []float64, dim int) bool {
	if normN(v) < 1e-12 {
		return false
	}
	if len(basis) == 0 {
		return true
	}
	m := mat.NewDense(len(basis)+1, dim, nil)
	for i, b := range basis {
		m.SetRow(i, b)
	}
	m.SetRow(len(basis), v)
	var svd mat.SVD
	ok := svd.Factorize(m, mat.SVDNone)
	if !ok {
		return false
	}
	vals := svd.Values(nil)
	smallest := vals[len(vals)-1]
	return smallest > 1e-9
}

func selectPoints(points [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, id := range idx {
		out[i] = points[id]
	}
	return out
}

// initialSimplexFacets builds the dim+1 facets of the seed simplex, each
// omitting one vertex, oriented outward from ref.
func initialSimplexFacets(points [][]float64, simplexIdx []int, ref []float64, dim int) []facet {
	facets := make([]facet, 0, dim+1)
	for omit := range simplexIdx {
		verts := make([]int, 0, dim)
		for j, id := range simplexIdx {
			if j != omit {
				verts = append(verts, id)
			}
		}
		if f, ok := buildFacet(points, verts, ref, dim); ok {
			facets = append(facets, f)
		}
	}
	return facets
}

// ridgesOf returns every (dim-1)-vertex subset of a dim-vertex facet,
// obtained by dropping exactly one vertex — the generalization of a
// triangle's three edges to a dim-D simplicial facet's ridges.
func ridgesOf(vertices []int) [][]int {
	out := make([][]int, 0, len(vertices))
	for i := range vertices {
		ridge := make([]int, 0, len(vertices)-1)
		ridge = append(ridge, vertices[:i]...)
		ridge = append(ridge, vertices[i+1:]...)
		out = append(out, ridge)
	}
	return out
}

func ridgeKey(ridge []int) string {
	sorted := append([]int{}, ridge...)
	sort.Ints(sorted)
	return fmt.Sprint(sorted)
}

// buildFacet computes the outward-oriented hyperplane (normal, offset) for
// the dim affinely independent points named by vertices, using ref as the
// interior point every facet must keep on its negative side.
func buildFacet(points [][]float64, vertices []int, ref []float64, dim int) (facet, bool) {
	if len(vertices) != dim {
		return facet{}, false
	}
	v0 := points[vertices[0]]
	edges := mat.NewDense(dim-1, dim, nil)
	for i := 1; i < dim; i++ {
		edges.SetRow(i-1, subN(points[vertices[i]], v0))
	}

	var svd mat.SVD
	if !svd.Factorize(edges, mat.SVDFull) {
		return facet{}, false
	}
	var v mat.Dense
	svd.VTo(&v)
	normal := make([]float64, dim)
	for i := 0; i < dim; i++ {
		normal[i] = v.At(i, dim-1)
	}
	normal = normalizeN(normal)
	if normN(normal) < 1e-12 {
		return facet{}, false
	}

	b := -dotN(normal, v0)
	if dotN(normal, ref)+b > 0 {
		normal = scaleN(normal, -1)
		b = -b
	}
	return facet{vertices: append([]int{}, vertices...), normal: normal, offset: b}, true
}

// normalizeOrientation applies the spec's final orientation-normalization
// pass: recompute each facet's side against the global centroid of every
// input point, flipping the normal (never the offset) whenever the
// centroid falls on the outside.
func normalizeOrientation(facets []facet, centroid []float64) {
	for i := range facets {
		f := &facets[i]
		if dotN(f.normal, centroid)+f.offset > 0 {
			f.normal = scaleN(f.normal, -1)
		}
	}
}

// polytopeVolume sums, over every facet, the volume of the dim-simplex
// formed by centroid and the facet's dim vertices (|det(edges)| / dim!).
// Since centroid is interior and the facets tile the boundary, this sum is
// the total polytope volume.
func polytopeVolume(facets []facet, points [][]float64, centroid []float64, dim int) float64 {
	fact := 1.0
	for i := 2; i <= dim; i++ {
		fact *= float64(i)
	}
	total := 0.0
	for _, f := range facets {
		m := mat.NewDense(dim, dim, nil)
		for i, vid := range f.vertices {
			m.SetRow(i, subN(points[vid], centroid))
		}
		total += math.Abs(mat.Det(m))
	}
	return total / fact
}

// mergedFacet is one polygonal face of the hull boundary: the shared
// oriented hyperplane of every simplicial facet unioned into it, plus the
// deduplicated, sorted set of vertex ids those facets span. Planes and Faces
// are both derived from the same merged groups, so their facet counts
// always agree (6 for a cube in both sections, never 12 for one and 6 for
// the other).
type mergedFacet struct {
	normal []float64
	offset float64
	verts  []int
}

// mergeFacets unions simplicial facets that share the same oriented
// hyperplane (within tolerance) into one polygonal face.
func mergeFacets(facets []facet) []mergedFacet {
	type group struct {
		normal []float64
		offset float64
		verts  map[int]bool
		order  []int
	}
	byKey := make(map[string]*group)
	var order []string
	for _, f := range facets {
		key := planeKey(f.normal, f.offset)
		g, ok := byKey[key]
		if !ok {
			g = &group{normal: f.normal, offset: f.offset, verts: make(map[int]bool)}
			byKey[key] = g
			order = append(order, key)
		}
		for _, vid := range f.vertices {
			if !g.verts[vid] {
				g.verts[vid] = true
				g.order = append(g.order, vid)
			}
		}
	}

	out := make([]mergedFacet, 0, len(order))
	for _, key := range order {
		g := byKey[key]
		sort.Ints(g.order)
		out = append(out, mergedFacet{normal: g.normal, offset: g.offset, verts: g.order})
	}
	return out
}

// packFaces emits merged's [F, k1, id11..id1k1, k2, id21...] layout: a
// leading face count then, per face, a vertex count and vertex-id list.
func packFaces(merged []mergedFacet) []int {
	out := []int{len(merged)}
	for _, m := range merged {
		out = append(out, len(m.verts))
		out = append(out, m.verts...)
	}
	return out
}

func planeKey(normal []float64, offset float64) string {
	const scale = 1e6
	key := make([]int64, 0, len(normal)+1)
	for _, v := range normal {
		key = append(key, int64(math.Round(v*scale)))
	}
	key = append(key, int64(math.Round(offset*scale)))
	return fmt.Sprint(key)
}
