package grasp

import (
	"go.viam.com/utils"

	"go.viam.com/grasp/spatialmath"
)

// scopedStateSaver captures a kinematic body's DOF values, base transform,
// and enable state at construction, and restores them when restore is
// called. Every
// orchestrator entry point wraps its body mutations in one of these
// (deferred immediately after saving) so a failing planner or hull call
// leaves no partial state behind, per the concurrency model's scoped
// state-saver guarantee.
type scopedStateSaver struct {
	body   KinematicBody
	dof    []float64
	trans  spatialmath.Pose
	enable bool
}

// saveState snapshots body's current state.
func saveState(body KinematicBody) *scopedStateSaver {
	return &scopedStateSaver{
		body:   body,
		dof:    append([]float64{}, body.DOFValues()...),
		trans:  body.Transform(),
		enable: body.Enabled(),
	}
}

// restore reapplies the snapshot taken at saveState, in the style of the
// host stack's defer utils.UncheckedErrorFunc(...) idiom for best-effort
// cleanup whose failure the caller cannot act on and must not propagate.
func (s *scopedStateSaver) restore() {
	utils.UncheckedErrorFunc(func() error {
		s.body.SetDOFValues(s.dof)
		s.body.SetTransform(s.trans)
		s.body.SetEnabled(s.enable)
		return nil
	})
}
