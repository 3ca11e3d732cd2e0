package grasp

import (
	"fmt"
	"strings"

	"github.com/golang/geo/r3"

	"go.viam.com/grasp/forceclosure"
	"go.viam.com/grasp/geometry"
)

// outputBuilder assembles the whitespace-separated, line-oriented output
// §6 describes: one section per requested output, in the fixed order each
// command documents.
type outputBuilder struct {
	b strings.Builder
}

func (o *outputBuilder) String() string {
	return o.b.String()
}

// contacts writes one `px py pz nx ny nz link_index` line per contact,
// matching both Grasp's and GetStableContacts' contact-line format.
func (o *outputBuilder) contacts(contacts []geometry.TaggedContact) {
	for _, c := range contacts {
		fmt.Fprintf(&o.b, "%.9g %.9g %.9g %.9g %.9g %.9g %d\n",
			c.Contact.Pos.X, c.Contact.Pos.Y, c.Contact.Pos.Z,
			c.Contact.Norm.X, c.Contact.Norm.Y, c.Contact.Norm.Z,
			c.LinkIndex)
	}
}

// finalPose writes the robot's final base transform (position, then
// quaternion w x y z) followed by its joint vector, one line.
func (o *outputBuilder) finalPose(robot KinematicBody) {
	p := robot.Transform()
	q := p.Orientation().Quaternion()
	fmt.Fprintf(&o.b, "%.9g %.9g %.9g %.9g %.9g %.9g %.9g",
		p.Point().X, p.Point().Y, p.Point().Z, q.Real, q.Imag, q.Jmag, q.Kmag)
	for _, v := range robot.DOFValues() {
		fmt.Fprintf(&o.b, " %.9g", v)
	}
	o.b.WriteByte('\n')
}

// forceClosure writes `mindist volume` on one line.
func (o *outputBuilder) forceClosure(a forceclosure.Analysis) {
	fmt.Fprintf(&o.b, "%.9g %.9g\n", a.MinDist, a.Volume)
}

// linkCollisions writes the getlinkcollisions secondary section: a count
// followed by every contact's link index, supplementing the distilled
// spec from the original source's vCollidingLinks output.
func (o *outputBuilder) linkCollisions(contacts []geometry.TaggedContact) {
	fmt.Fprintf(&o.b, "%d", len(contacts))
	for _, c := range contacts {
		fmt.Fprintf(&o.b, " %d", c.LinkIndex)
	}
	o.b.WriteByte('\n')
}

// distanceMap writes one `depth nx ny nz dx dy dz` line per sampled point,
// dx/dy/dz measured from center.
func (o *outputBuilder) distanceMap(contacts []geometry.Contact, center r3.Vector) {
	for _, c := range contacts {
		d := c.Pos.Sub(center)
		fmt.Fprintf(&o.b, "%.9g %.9g %.9g %.9g %.9g %.9g %.9g\n",
			c.Depth, c.Norm.X, c.Norm.Y, c.Norm.Z, d.X, d.Y, d.Z)
	}
}

// planes writes the hull's flattened plane list: a facet count, then
// dim+1 floats (outward normal, offset) per facet.
func (o *outputBuilder) planes(planes []float64, dim int) {
	nFacets := 0
	if dim > 0 {
		nFacets = len(planes) / (dim + 1)
	}
	fmt.Fprintf(&o.b, "%d", nFacets)
	for _, v := range planes {
		fmt.Fprintf(&o.b, " %.9g", v)
	}
	o.b.WriteByte('\n')
}

// faces writes the hull's merged face-vertex list exactly as
// convexhull.Result.Faces packs it: [F, k1, ids..., k2, ids...].
func (o *outputBuilder) faces(faces []int) {
	for i, v := range faces {
		if i > 0 {
			o.b.WriteByte(' ')
		}
		fmt.Fprintf(&o.b, "%d", v)
	}
	o.b.WriteByte('\n')
}

// triangles writes the flattened triangle index triples, prefixed with the
// triangle count.
func (o *outputBuilder) triangles(tris []int) {
	fmt.Fprintf(&o.b, "%d", len(tris)/3)
	for _, v := range tris {
		fmt.Fprintf(&o.b, " %d", v)
	}
	o.b.WriteByte('\n')
}
