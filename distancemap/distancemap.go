// Package distancemap evaluates, for each of a set of contacts, the minimum
// clearance found by casting rays inside a cone around the contact normal.
package distancemap

import (
	"math"
	"math/rand"

	"go.viam.com/grasp/geometry"
)

// Environment is the narrow distance-query contract this package needs.
type Environment interface {
	// SetCollisionOptions installs opts as the active mask and returns the
	// previous one, so callers can restore it.
	SetCollisionOptions(opts geometry.CollisionOptions) geometry.CollisionOptions
	// MinDistance returns the minimum distance from ray's origin to any
	// surface along ray's direction, if the query could be answered.
	MinDistance(ray geometry.Ray) (float64, bool)
}

// Options configures ComputeDistanceMap. MinDistInit resolves the
// distilled spec's open question about fMinDist's initial value by exposing
// it as a parameter instead of a hardcoded constant.
type Options struct {
	MinDistInit float64
}

// DefaultOptions matches the original fMinDist=2 constant.
func DefaultOptions() Options {
	return Options{MinDistInit: 2}
}

const rayCastMagnitude = 1000.0

// sampleCount resolves N from the cone half-angle theta per the original
// heuristic: 1 sample for near-zero cones, otherwise scaled against a
// pi/12 reference cone at 64 samples.
func sampleCount(theta float64) int {
	if theta < 0.01 {
		return 1
	}
	return int(math.Ceil(theta * 64 / (math.Pi / 12)))
}

// Compute evaluates, in place, the Depth field of every contact in contacts:
// the minimum over N cone-sampled rays of the environment's reported
// minimum distance from the contact position along each sampled direction.
// theta is the cone half-angle. Collision options must be distance-only
// during evaluation; Compute sets and restores that mask itself.
func Compute(rng *rand.Rand, env Environment, contacts []geometry.Contact, theta float64, opts Options) {
	prev := env.SetCollisionOptions(geometry.CollisionOptionDistance)
	defer env.SetCollisionOptions(prev)

	n := sampleCount(theta)
	for i := range contacts {
		c := &contacts[i]
		minDist := opts.MinDistInit
		for s := 0; s < n; s++ {
			dir := geometry.RandomConeVector(rng, c.Norm, theta)
			ray := geometry.Ray{Origin: c.Pos, Dir: dir.Mul(rayCastMagnitude)}
			d, ok := env.MinDistance(ray)
			if !ok {
				continue
			}
			if d < minDist {
				minDist = d
			}
		}
		c.Depth = minDist
	}
}
