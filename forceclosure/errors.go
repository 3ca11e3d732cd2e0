package forceclosure

import "go.viam.com/grasp/grasperrors"

func errTooFewWrenches(n int) error {
	return grasperrors.NewValidation("forceclosure: 3-D force closure requires at least %d primitive wrenches, got %d", minWrenches, n)
}
