package idealcontroller

import "go.viam.com/grasp/grasperrors"

func errWrongDOFCount(got, want int) error {
	return grasperrors.NewValidation("idealcontroller: expected %d DOF values, got %d", want, got)
}

func errPausedRejectsPath() error {
	return grasperrors.NewValidation("idealcontroller: SetPath rejected while paused")
}
