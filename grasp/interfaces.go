// Package grasp implements the command-driven grasp orchestrator: it
// parses a keyword-tokenized command, assembles GraspParameters, drives an
// external planner and robot through narrow capability interfaces, collects
// contacts (directly or through the stable-contact filter), optionally runs
// the force-closure analyzer, and streams a whitespace-separated result.
package grasp

import (
	"github.com/golang/geo/r3"

	"go.viam.com/grasp/geometry"
	"go.viam.com/grasp/idealcontroller"
	"go.viam.com/grasp/spatialmath"
	"go.viam.com/grasp/stability"
)

// Environment is the narrow contract the orchestrator needs from the host
// environment: the exclusive per-command lock, the collision-option flag,
// and the ray/collision queries the sampling and distance-map evaluators
// consume (this type's method set is a structural superset of
// sampling.Environment and distancemap.Environment, so a value of this
// interface can be passed directly to either package).
type Environment interface {
	// Lock acquires the exclusive environment lock for a command's entire
	// execution; Unlock releases it. Every orchestrator entry point holds
	// this for its whole duration, per the single-environment-lock
	// concurrency model.
	Lock()
	Unlock()
	// SetCollisionOptions installs opts as the active mask and returns the
	// mask that was previously active, so callers can restore it.
	SetCollisionOptions(opts geometry.CollisionOptions) geometry.CollisionOptions
	// CastRay fires ray and reports the nearest hit, if any.
	CastRay(ray geometry.Ray) (geometry.Contact, bool)
	// MinDistance returns the minimum distance from ray's origin to any
	// surface along ray's direction, if the query could be answered.
	MinDistance(ray geometry.Ray) (float64, bool)
	// LinkTargetCollision reports the direct link-vs-target collision (if
	// any) used by the non-stability contact-collection path, with the
	// normal already reported relative to the link.
	LinkTargetCollision(linkIndex int) (geometry.Contact, bool)
}

// KinematicBody is the narrow contract the orchestrator needs from a
// kinematic body (robot or target): DOF values/velocities/limits, base
// transform, and enable state. Its DOF/transform method set is a
// structural superset of idealcontroller.Body.
type KinematicBody interface {
	DOFValues() []float64
	SetDOFValues(values []float64)
	DOFVelocities() []float64
	SetDOFVelocities(velocities []float64)
	DOFLimits() (min, max []float64)
	Transform() spatialmath.Pose
	SetTransform(p spatialmath.Pose)
	SetEnabled(enabled bool)
	Enabled() bool
}

var _ idealcontroller.Body = KinematicBody(nil)

// Robot is the narrow contract the orchestrator and the stable-contact
// filter need from the acting robot. It embeds stability.Robot so a value
// satisfying this interface can be passed directly to stability.Filter.
type Robot interface {
	stability.Robot
	KinematicBody
	// LinkNamed returns the index of the robot link with the given name,
	// and false if the robot has no such link.
	LinkNamed(name string) (int, bool)
}

// Planner is the external grasp planner consumed as a black box: it is
// initialized with the robot and the assembled parameters, then asked to
// produce a trajectory.
type Planner interface {
	InitPlan(robot Robot, params Parameters) error
	PlanPath() (*idealcontroller.Trajectory, error)
}

// TrajectoryWriter is the no-op hook point for the `writetraj <path>`
// keyword: trajectory serialization is out of scope for this module, but
// the orchestrator still calls a writer if the caller injects one.
type TrajectoryWriter interface {
	WriteTrajectory(path string, traj *idealcontroller.Trajectory) error
}

// noopTrajectoryWriter is installed by default; Grasp always calls
// TrajectoryWriter.WriteTrajectory when `writetraj` is present, so a caller
// that never injects one still gets well-defined (do-nothing) behavior.
type noopTrajectoryWriter struct{}

func (noopTrajectoryWriter) WriteTrajectory(string, *idealcontroller.Trajectory) error { return nil }

// worldDirection resolves a direction vector from the target's own frame
// (when a target is present) into the world frame, matching
// vtargetdirection's "in target frame if target present, else world" rule.
func worldDirection(target KinematicBody, dir r3.Vector) r3.Vector {
	if target == nil {
		return dir
	}
	return target.Transform().Orientation().RotationMatrix().MulVector(dir)
}
