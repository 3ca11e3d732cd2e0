package convexhull

import "github.com/pkg/errors"

func errBadDimension(dim int) error {
	return errors.Errorf("convex hull dimension must be in [2,6], got %d", dim)
}

func errPointCount(n, dim int) error {
	return errors.Errorf("vpoints length %d is not a multiple of dim %d", n, dim)
}

func errTooFewPoints(n, dim int) error {
	return errors.Errorf("need at least dim+1=%d points to build a %d-D hull, got %d", dim+1, dim, n)
}

func errDegenerateSimplex(dim int) error {
	return errors.Errorf("could not find %d affinely independent points to seed a %d-D hull", dim+1, dim)
}

func errTriangulateWrongDim(dim int) error {
	return errors.Errorf("triangulation requires dim == 3, got %d", dim)
}
