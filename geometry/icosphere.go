package geometry

import (
	"sync"

	"github.com/golang/geo/r3"
)

// Icosahedron constants: X is the larger coordinate, Y the smaller, both
// scaled so that every permutation (0, ±Y, ±X) lies on the unit sphere.
const (
	icoX = 0.850650808352039932181540497063011072240401406
	icoY = 0.525731112119133606025669084847876607285497935
)

var icoVertices = []r3.Vector{
	{X: -icoY, Y: 0, Z: icoX},
	{X: icoY, Y: 0, Z: icoX},
	{X: -icoY, Y: 0, Z: -icoX},
	{X: icoY, Y: 0, Z: -icoX},
	{X: 0, Y: icoX, Z: icoY},
	{X: 0, Y: icoX, Z: -icoY},
	{X: 0, Y: -icoX, Z: icoY},
	{X: 0, Y: -icoX, Z: -icoY},
	{X: icoX, Y: icoY, Z: 0},
	{X: -icoX, Y: icoY, Z: 0},
	{X: icoX, Y: -icoY, Z: 0},
	{X: -icoX, Y: -icoY, Z: 0},
}

var icoFaces = [][3]int{
	{0, 4, 1}, {0, 9, 4}, {9, 5, 4}, {4, 5, 8}, {4, 8, 1},
	{8, 10, 1}, {8, 3, 10}, {5, 3, 8}, {5, 2, 3}, {2, 7, 3},
	{7, 10, 3}, {7, 6, 10}, {7, 11, 6}, {11, 0, 6}, {0, 1, 6},
	{6, 1, 10}, {9, 0, 11}, {9, 11, 2}, {9, 2, 5}, {7, 2, 11},
}

// Icosphere lazily generates and caches geodesic sphere meshes by
// subdivision level. A single instance is meant to be reused across many
// sampling and distance-map calls within one request so a level-4 mesh
// (5,120 triangles) is only ever built once.
type Icosphere struct {
	mu    sync.Mutex
	cache map[int]*TriMesh
}

// NewIcosphere returns an empty, unpopulated cache.
func NewIcosphere() *Icosphere {
	return &Icosphere{cache: make(map[int]*TriMesh)}
}

// Level returns the mesh at subdivision level l, building and caching it (and
// every level below it) on first request.
func (s *Icosphere) Level(l int) (*TriMesh, error) {
	if l < 0 {
		return nil, errInvalidLevel(l)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.cache[l]; ok {
		return m, nil
	}

	base, ok := s.cache[0]
	if !ok {
		base = baseIcosahedron()
		s.cache[0] = base
	}
	prev := base
	for level := 1; level <= l; level++ {
		if cached, ok := s.cache[level]; ok {
			prev = cached
			continue
		}
		prev = subdivide(prev)
		s.cache[level] = prev
	}
	return prev, nil
}

func baseIcosahedron() *TriMesh {
	verts := make([]r3.Vector, len(icoVertices))
	copy(verts, icoVertices)
	indices := make([]int, 0, len(icoFaces)*3)
	for _, f := range icoFaces {
		a, b, c := verts[f[0]], verts[f[1]], verts[f[2]]
		if !isOutwardCCW(a, b, c) {
			f[1], f[2] = f[2], f[1]
		}
		indices = append(indices, f[0], f[1], f[2])
	}
	return &TriMesh{Vertices: verts, Indices: indices}
}

// isOutwardCCW reports whether triangle (a,b,c) is wound CCW as viewed from
// outside the origin-centered sphere it lies on: a·((b−a)×(c−a)) > 0.
func isOutwardCCW(a, b, c r3.Vector) bool {
	return a.Dot(b.Sub(a).Cross(c.Sub(a))) > 0
}

// midpointKey packs an (unordered) vertex-index pair into a symmetric 64-bit
// key so that both edge orderings hash to the same midpoint.
func midpointKey(a, b int) uint64 {
	lo, hi := uint64(a), uint64(b)
	if lo > hi {
		lo, hi = hi, lo
	}
	return (lo << 32) | hi
}

// subdivide performs one 1-4 midpoint split of every triangle in m, sharing
// midpoint vertices across adjacent triangles via midpointKey.
func subdivide(m *TriMesh) *TriMesh {
	verts := make([]r3.Vector, len(m.Vertices))
	copy(verts, m.Vertices)
	midpoints := make(map[uint64]int, len(m.Indices))

	midpoint := func(a, b int) int {
		key := midpointKey(a, b)
		if id, ok := midpoints[key]; ok {
			return id
		}
		mid := verts[a].Add(verts[b]).Mul(0.5).Normalize()
		id := len(verts)
		verts = append(verts, mid)
		midpoints[key] = id
		return id
	}

	indices := make([]int, 0, len(m.Indices)*4)
	for i := 0; i+2 < len(m.Indices); i += 3 {
		v0, v1, v2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		a := midpoint(v0, v1)
		b := midpoint(v1, v2)
		c := midpoint(v2, v0)
		indices = append(indices,
			v0, a, c,
			v1, b, a,
			v2, c, b,
			a, b, c,
		)
	}
	return &TriMesh{Vertices: verts, Indices: indices}
}
