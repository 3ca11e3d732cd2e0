package grasp

import "go.viam.com/grasp/grasperrors"

func errUnknownKeyword(cmd, keyword string) error {
	return grasperrors.NewConfiguration("grasp: %s: unknown command keyword %q", cmd, keyword)
}

func errMissingArg(cmd, keyword string) error {
	return grasperrors.NewConfiguration("grasp: %s: keyword %q expects an argument", cmd, keyword)
}

func errBadVector(cmd, keyword string) error {
	return grasperrors.NewValidation("grasp: %s: keyword %q expects 3 numeric arguments", cmd, keyword)
}

func errBadNumber(cmd, keyword, raw string) error {
	return grasperrors.NewValidation("grasp: %s: keyword %q: %q is not a number", cmd, keyword, raw)
}

func errNoPlanner() error {
	return grasperrors.NewConfiguration("grasp: Grasp invoked with no planner configured")
}

func errTriangulateWrongDim(dim int) error {
	return grasperrors.NewValidation("grasp: ConvexHull: returntriangles requires dim == 3, got %d", dim)
}
