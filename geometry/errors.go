package geometry

import "github.com/pkg/errors"

func errInvalidLevel(l int) error {
	return errors.Errorf("icosphere subdivision level must be >= 0, got %d", l)
}
