package geometry

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r3"
)

// RandomUnitVector draws a uniform direction on the unit sphere using the
// standard z/phi parameterization: z = 2u1-1, phi = 2*pi*u2,
// x = sqrt(1-z^2)*cos(phi), y = sqrt(1-z^2)*sin(phi). R is computed from z
// after z is assigned, which is what makes the distribution uniform on S^2.
func RandomUnitVector(rng *rand.Rand) r3.Vector {
	u1, u2 := rng.Float64(), rng.Float64()
	return unitVectorFromParams(u1, u2)
}

func unitVectorFromParams(u1, u2 float64) r3.Vector {
	z := 2*u1 - 1
	phi := 2 * math.Pi * u2
	r := math.Sqrt(math.Max(0, 1-z*z))
	return r3.Vector{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
}

// OrthonormalBasis picks an arbitrary right-handed (right, up, n) frame for
// a given unit axis n, matching the "(1,0,0) unless nearly parallel" rule
// used throughout the cone samplers.
func OrthonormalBasis(n r3.Vector) (right, up r3.Vector) {
	seed := r3.Vector{X: 1, Y: 0, Z: 0}
	if math.Abs(n.X) > 0.9 {
		seed = r3.Vector{X: 0, Y: 1, Z: 0}
	}
	right = seed.Sub(n.Mul(seed.Dot(n))).Normalize()
	up = n.Cross(right)
	return right, up
}

// RandomConeVector draws a uniform direction inside a cone of half-angle
// halfAngle around axis n.
func RandomConeVector(rng *rand.Rand, n r3.Vector, halfAngle float64) r3.Vector {
	u1, u2 := rng.Float64(), rng.Float64()
	return coneVectorFromParams(n, halfAngle, u1, u2)
}

func coneVectorFromParams(n r3.Vector, halfAngle, u1, u2 float64) r3.Vector {
	right, up := OrthonormalBasis(n)
	cosTheta := math.Cos(halfAngle)
	cosAlpha := cosTheta + (1-cosTheta)*u1
	sinAlpha := math.Sqrt(math.Max(0, 1-cosAlpha*cosAlpha))
	phi := 2 * math.Pi * u2
	dir := n.Mul(cosAlpha).Add(right.Mul(math.Cos(phi) * sinAlpha)).Add(up.Mul(math.Sin(phi) * sinAlpha))
	return dir
}
