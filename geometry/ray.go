package geometry

import "github.com/golang/geo/r3"

// Ray is an origin and direction. The direction is not normalized by callers;
// its magnitude encodes the maximum query distance for a cast.
type Ray struct {
	Origin r3.Vector
	Dir    r3.Vector
}

// Contact is a surface point with an outward-pointing normal and a clearance
// depth. After normalization, Norm points from the object into whatever
// gripper link touches it. Depth is repurposed by the distance-map evaluator
// to hold clearance in [0, 2].
type Contact struct {
	Pos   r3.Vector
	Norm  r3.Vector
	Depth float64
}

// TaggedContact associates a Contact with the index of the link that
// produced it.
type TaggedContact struct {
	Contact   Contact
	LinkIndex int
}
