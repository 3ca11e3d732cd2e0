// Package stability implements the Jacobian-driven friction-cone
// admissibility filter: given a robot currently colliding with a target,
// it decides which of the per-link contact reports are consistent with the
// requested finger-closing motion under Coulomb friction.
package stability

import (
	"github.com/golang/geo/r3"

	"go.viam.com/grasp/geometry"
	"go.viam.com/grasp/logging"
)

// Manipulator is the narrow view of a robot manipulator this package needs:
// its gripper joint indices (into the full active-DOF vector) and the
// per-joint closing-direction sign/magnitude to write at those indices.
type Manipulator struct {
	GripperIndices   []int
	ClosingDirection []float64
	// BaseLinkIndex is the index of the manipulator's own base link; a
	// contact on this link uses the raw world-frame direction instead of a
	// Jacobian contraction, matching the source's base-link special case.
	BaseLinkIndex int
}

// Robot is the narrow contract this package needs from the host robot:
// DOF count, the active manipulator, robot base link index, per-link
// collision reports against the target, and Jacobian evaluation.
type Robot interface {
	DOF() int
	ActiveManipulator() Manipulator
	BaseLinkIndex() int
	NumLinks() int
	// LinkCollisions returns every contact between link i and the target,
	// each tagged (LinkContact.Link1IsThisLink) with whether the link is the
	// first body of the collision report.
	LinkCollisions(linkIndex int) []LinkContact
	// CalculateJacobian returns the row-major 3xDOF translational Jacobian
	// of linkIndex evaluated at point.
	CalculateJacobian(linkIndex int, point r3.Vector) [][]float64
	// IsCollidingWithTarget reports whether the robot currently collides
	// with the target at all; the filter is a no-op (and logs) when false.
	IsCollidingWithTarget() bool
}

// LinkContact is a raw per-link collision report before the filter's own
// normal-flip and admissibility test are applied.
type LinkContact struct {
	Pos r3.Vector
	// Norm is the reported contact normal, in the raw collision-report
	// convention: it may point away from either body. Link1IsThisLink
	// records which body it was reported relative to, matching §4.6's
	// "report.link1 != link" flip condition.
	Norm       r3.Vector
	Link1IsThisLink bool
}

const degenerateVelocityThresholdSq = 1e-7

// Filter runs the §4.6 stable-contact filter: direction is the user-supplied
// world-frame closing direction (used for the robot base and a
// manipulator's own base link); mu is the Coulomb friction coefficient.
func Filter(log logging.Logger, robot Robot, direction r3.Vector, mu float64) []geometry.TaggedContact {
	if !robot.IsCollidingWithTarget() {
		log.Error("stable-contact filter invoked while the robot is not in contact with the target")
		return nil
	}
	if mu <= 0 {
		return nil
	}

	closing := closingDirectionVector(robot)

	manip := robot.ActiveManipulator()
	base := robot.BaseLinkIndex()

	var out []geometry.TaggedContact
	for link := 0; link < robot.NumLinks(); link++ {
		for _, c := range robot.LinkCollisions(link) {
			norm := c.Norm
			if c.Link1IsThisLink {
				norm = norm.Mul(-1)
			}

			delta := closingVelocity(robot, manip, base, link, c.Pos, direction, closing)
			if delta.Norm2() < degenerateVelocityThresholdSq {
				log.Debugw("degenerate closing velocity at contact, falling back to world direction",
					"link", link)
				delta = direction
			}
			delta = delta.Normalize()

			if admissible(norm, delta, mu) {
				out = append(out, geometry.TaggedContact{
					Contact:   geometry.Contact{Pos: c.Pos, Norm: norm},
					LinkIndex: link,
				})
			}
		}
	}
	return out
}

// closingDirectionVector builds the length-DOF vector described in §4.6:
// zero everywhere except the active manipulator's gripper-joint indices,
// which hold its stored per-joint closing direction.
func closingDirectionVector(robot Robot) []float64 {
	v := make([]float64, robot.DOF())
	manip := robot.ActiveManipulator()
	for i, idx := range manip.GripperIndices {
		if i < len(manip.ClosingDirection) && idx >= 0 && idx < len(v) {
			v[idx] = manip.ClosingDirection[i]
		}
	}
	return v
}

// closingVelocity computes the linear closing velocity at a contact point
// on the given link: the raw world direction for the robot base or the
// manipulator's own base link, otherwise a Jacobian contraction of the
// closing-direction vector.
func closingVelocity(robot Robot, manip Manipulator, baseLink, link int, pos r3.Vector, direction r3.Vector, closing []float64) r3.Vector {
	if link == baseLink || link == manip.BaseLinkIndex {
		return direction
	}
	jac := robot.CalculateJacobian(link, pos)
	var delta r3.Vector
	comps := [3]*float64{&delta.X, &delta.Y, &delta.Z}
	for j := 0; j < 3; j++ {
		sum := 0.0
		row := jac[j]
		for k := 0; k < len(row) && k < len(closing); k++ {
			sum += row[k] * closing[k]
		}
		*comps[j] = sum
	}
	return delta
}

// admissible implements the Coulomb-cone test: accept iff the closing
// direction lies within arctan(mu) of the inward normal, on the correct
// hemisphere.
func admissible(norm, delta r3.Vector, mu float64) bool {
	cos := norm.Dot(delta)
	if cos <= 0 {
		return false
	}
	cross := norm.Cross(delta)
	sin2 := cross.Dot(cross)
	return sin2 <= cos*cos*mu*mu
}
