// Package idealcontroller implements the pure-kinematic trajectory/pose
// follower the grasp planner targets: a state machine over
// idle/following_trajectory/holding_setpoint/paused, sampling a Trajectory
// or re-applying a held setpoint once per simulation tick.
package idealcontroller

import (
	"math"

	"go.viam.com/grasp/grasperrors"
	"go.viam.com/grasp/logging"
	"go.viam.com/grasp/spatialmath"
)

// Body is the narrow view of a kinematic body the controller needs: get/set
// DOF values and velocities, DOF limits for the advisory out-of-limits
// warning, and get/set base transform.
type Body interface {
	DOFValues() []float64
	SetDOFValues(values []float64)
	DOFVelocities() []float64
	SetDOFVelocities(velocities []float64)
	// DOFLimits returns per-DOF (min, max) bounds, or nil slices if the body
	// does not report limits.
	DOFLimits() (min, max []float64)
	Transform() spatialmath.Pose
	SetTransform(p spatialmath.Pose)
}

// Limits bounds how fast a controlled DOF may move and accelerate toward
// its sampled target. The zero value is not usable; DefaultLimits returns
// the unconstrained (instantaneous) limits matching an "ideal" follower.
type Limits struct {
	MaxVel float64
	MaxAcc float64
}

// DefaultLimits returns unconstrained limits, so SimulationStep teleports
// straight to the sampled trajectory point exactly as an ideal controller
// should by default.
func DefaultLimits() Limits {
	return Limits{MaxVel: math.Inf(1), MaxAcc: math.Inf(1)}
}

type phase int

const (
	idlePhase phase = iota
	followingTrajectoryPhase
	holdingSetpointPhase
	pausedPhase
)

const limitTolerance = 5e-5

// Controller is one ideal trajectory/pose follower, owning a fixed set of
// controlled DOF indices (and, if controlsBase, the body's base transform).
type Controller struct {
	log          logging.Logger
	body         Body
	dofIndices   []int
	controlsBase bool
	limits       Limits
	speed        float64

	phase    phase
	traj     *Trajectory
	setpoint []float64
	fTime    float64
	done     bool
	vel      []float64
}

// NewController returns a controller over the given controlled DOF indices
// (into body's full DOF vector), starting idle with unconstrained limits
// and unit playback speed.
func NewController(log logging.Logger, body Body, dofIndices []int, controlsBase bool) *Controller {
	return &Controller{
		log:          log,
		body:         body,
		dofIndices:   dofIndices,
		controlsBase: controlsBase,
		limits:       DefaultLimits(),
		speed:        1,
		phase:        idlePhase,
	}
}

// SetLimits installs velocity/acceleration limits used by every subsequent
// SimulationStep.
func (c *Controller) SetLimits(limits Limits) {
	c.limits = limits
}

// SetSpeed sets the trajectory playback-speed multiplier (default 1).
func (c *Controller) SetSpeed(speed float64) {
	c.speed = speed
}

// Pause suspends SimulationStep; SetPath is rejected while paused.
func (c *Controller) Pause() {
	c.phase = pausedPhase
}

// Unpause returns to idle from paused. A no-op if not paused.
func (c *Controller) Unpause() {
	if c.phase == pausedPhase {
		c.phase = idlePhase
	}
}

// Done reports whether the current trajectory or setpoint has been fully
// applied.
func (c *Controller) Done() bool {
	return c.done
}

// SetDesired validates len(values) against the controlled DOF count, then
// holds values as a setpoint: it is reapplied on every SimulationStep until
// SetPath or Reset supersedes it.
func (c *Controller) SetDesired(values []float64) error {
	if len(values) != len(c.dofIndices) {
		return errWrongDOFCount(len(values), len(c.dofIndices))
	}
	c.setpoint = append([]float64{}, values...)
	c.fTime = 0
	c.traj = nil
	c.done = false
	c.phase = holdingSetpointPhase
	return nil
}

// SetPath validates traj's DOF count (a nil traj is always valid and clears
// following) and installs it; rejected while paused.
func (c *Controller) SetPath(traj *Trajectory) error {
	if c.phase == pausedPhase {
		return errPausedRejectsPath()
	}
	if traj != nil && traj.DOF() != len(c.dofIndices) {
		return errWrongDOFCount(traj.DOF(), len(c.dofIndices))
	}
	c.traj = traj
	c.setpoint = nil
	c.fTime = 0
	if traj == nil {
		c.done = true
		c.phase = idlePhase
	} else {
		c.done = false
		c.phase = followingTrajectoryPhase
	}
	return nil
}

// Reset clears any trajectory or setpoint and returns to idle.
func (c *Controller) Reset() {
	c.traj = nil
	c.setpoint = nil
	c.fTime = 0
	c.done = false
	c.vel = nil
	c.phase = idlePhase
}

// SimulationStep advances the controller by dt: a no-op while paused,
// otherwise samples the active trajectory (or reapplies the held setpoint)
// and applies the velocity/acceleration-limited result to body.
func (c *Controller) SimulationStep(dt float64) {
	switch {
	case c.phase == pausedPhase:
		return
	case c.traj != nil:
		state := c.traj.Sample(c.fTime)
		c.applyState(state, dt)
		c.fTime += c.speed * dt
		if c.fTime >= c.traj.Duration() {
			c.fTime = c.traj.Duration()
			c.done = true
		}
	case c.setpoint != nil:
		c.applyState(State{Q: c.setpoint}, dt)
		c.done = true
	}
}

// applyState is the §4.9 _SetDOFValues step: read the body's current DOF
// vector, overwrite the controlled indices with a velocity/acceleration
// limited step toward state.Q, zero their velocities, warn when the result
// falls outside the body's reported limits by more than limitTolerance, and
// apply the base transform too when this controller owns the base.
func (c *Controller) applyState(state State, dt float64) {
	if len(c.vel) != len(c.dofIndices) {
		c.vel = make([]float64, len(c.dofIndices))
	}

	current := c.body.DOFValues()
	vels := c.body.DOFVelocities()
	minLimits, maxLimits := c.body.DOFLimits()

	for i, idx := range c.dofIndices {
		target := state.Q[i]
		newVal, newVel := trackAxis(current[idx], c.vel[i], target, c.limits.MaxVel, c.limits.MaxAcc, dt)
		c.vel[i] = newVel
		current[idx] = newVal
		if idx < len(vels) {
			vels[idx] = 0
		}

		if minLimits != nil && maxLimits != nil && idx < len(minLimits) && idx < len(maxLimits) {
			if newVal < minLimits[idx]-limitTolerance || newVal > maxLimits[idx]+limitTolerance {
				grasperrors.Advisory(c.log, "idealcontroller: DOF %d value %.6f outside limits [%.6f, %.6f]",
					idx, newVal, minLimits[idx], maxLimits[idx])
			}
		}
	}

	c.body.SetDOFValues(current)
	c.body.SetDOFVelocities(vels)

	if c.controlsBase && state.HasTrans {
		c.body.SetTransform(state.Trans)
	}
}

// trackAxis computes one velocity/acceleration-limited step toward target,
// ported from the host stack's per-axis trapezoidal velocity-profile
// generator: the commanded velocity decelerates to stop exactly at target
// (vDec = sqrt(2*dist*maxAcc), bounded by maxVel) and is itself
// acceleration-clamped against the previous tick's velocity.
func trackAxis(current, vel, target, maxVel, maxAcc, dt float64) (newVal, newVel float64) {
	posErr := target - current
	dist := math.Abs(posErr)
	if dist < 1e-12 {
		return target, 0
	}

	dir := 1.0
	if posErr < 0 {
		dir = -1.0
	}
	vDec := math.Min(math.Sqrt(2*dist*maxAcc), maxVel)
	desiredVel := dir * vDec

	velUp := math.Min(vel+maxAcc*dt, maxVel)
	velDown := math.Max(vel-maxAcc*dt, -maxVel)
	newVel = math.Max(velDown, math.Min(velUp, desiredVel))

	newVal = current + newVel*dt
	if (dir > 0 && newVal > target) || (dir < 0 && newVal < target) {
		return target, 0
	}
	return newVal, newVel
}
