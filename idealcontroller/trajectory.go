package idealcontroller

import (
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/grasp/spatialmath"
)

// State is a single sampled point of a Trajectory: the joint-value vector
// the controller should apply, and optionally the base transform it should
// apply alongside it.
type State struct {
	Q        []float64
	Trans    spatialmath.Pose
	HasTrans bool
}

// Trajectory is a time-parameterized sequence of DOF vectors plus optional
// base transforms, queried by sampling at an arbitrary time. Times must be
// strictly increasing and start at 0; Q and Trans (when non-nil) must have
// one entry per time.
type Trajectory struct {
	Times []float64
	Q     [][]float64
	Trans []spatialmath.Pose
}

// DOF returns the number of controlled joints this trajectory carries
// values for.
func (tr *Trajectory) DOF() int {
	if len(tr.Q) == 0 {
		return 0
	}
	return len(tr.Q[0])
}

// Duration returns the trajectory's total time span.
func (tr *Trajectory) Duration() float64 {
	if len(tr.Times) == 0 {
		return 0
	}
	return tr.Times[len(tr.Times)-1]
}

// Sample linearly interpolates Q (and nlerp-interpolates Trans, if present)
// at t, clamping t to [0, Duration()].
func (tr *Trajectory) Sample(t float64) State {
	if len(tr.Times) == 0 {
		return State{}
	}
	if t <= tr.Times[0] {
		return tr.stateAt(0)
	}
	last := len(tr.Times) - 1
	if t >= tr.Times[last] {
		return tr.stateAt(last)
	}

	hi := 1
	for hi < len(tr.Times) && tr.Times[hi] < t {
		hi++
	}
	lo := hi - 1

	span := tr.Times[hi] - tr.Times[lo]
	frac := 0.0
	if span > 0 {
		frac = (t - tr.Times[lo]) / span
	}

	q := make([]float64, tr.DOF())
	for i := range q {
		q[i] = lerp(tr.Q[lo][i], tr.Q[hi][i], frac)
	}

	state := State{Q: q}
	if len(tr.Trans) == len(tr.Times) {
		state.Trans = lerpPose(tr.Trans[lo], tr.Trans[hi], frac)
		state.HasTrans = true
	}
	return state
}

func (tr *Trajectory) stateAt(i int) State {
	state := State{Q: append([]float64{}, tr.Q[i]...)}
	if len(tr.Trans) == len(tr.Times) {
		state.Trans = tr.Trans[i]
		state.HasTrans = true
	}
	return state
}

func lerp(a, b, frac float64) float64 {
	return a + (b-a)*frac
}

// lerpPose interpolates translation linearly and orientation via
// normalized quaternion lerp, which is adequate for the short steps a
// simulation tick samples at.
func lerpPose(a, b spatialmath.Pose, frac float64) spatialmath.Pose {
	point := a.Point().Add(b.Point().Sub(a.Point()).Mul(frac))

	qa := a.Orientation().Quaternion()
	qb := b.Orientation().Quaternion()
	dot := qa.Real*qb.Real + qa.Imag*qb.Imag + qa.Jmag*qb.Jmag + qa.Kmag*qb.Kmag
	if dot < 0 {
		qb = quat.Scale(-1, qb)
	}
	qaScaled := quat.Scale(1-frac, qa)
	qbScaled := quat.Scale(frac, qb)
	q := quat.Number{
		Real: qaScaled.Real + qbScaled.Real,
		Imag: qaScaled.Imag + qbScaled.Imag,
		Jmag: qaScaled.Jmag + qbScaled.Jmag,
		Kmag: qaScaled.Kmag + qbScaled.Kmag,
	}
	if n := quat.Abs(q); n > 0 {
		q = quat.Scale(1/n, q)
	}
	ov := spatialmath.QuatToOV(q)
	return spatialmath.NewPose(point, ov)
}
