package geo

import (
	"math"
	"math/rand"
)

// Gaussian2D is a 2-D covariance used to perturb a feature's nominal
// geometry. Cross is the off-diagonal covariance term; zero for isotropic
// noise.
type Gaussian2D struct {
	VarianceEast, VarianceNorth, Cross float64
}

// Draw samples one (de, dn) offset from N(0, Σ) using rng.
func (g Gaussian2D) Draw(rng *rand.Rand) (de, dn float64) {
	// Cholesky factorisation of the 2x2 covariance matrix.
	l11 := sqrtNonNeg(g.VarianceEast)
	var l21, l22 float64
	if l11 > 0 {
		l21 = g.Cross / l11
	}
	l22 = sqrtNonNeg(g.VarianceNorth - l21*l21)

	z1, z2 := rng.NormFloat64(), rng.NormFloat64()
	de = l11 * z1
	dn = l21*z1 + l22*z2
	return
}

func sqrtNonNeg(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Sqrt(v)
}

// CartesianFeature is one element of an uncertainty-annotated map: a
// geometry tagged with an opaque location type and, optionally, a
// positional distribution describing its uncertainty.
type CartesianFeature struct {
	Geometry     Geometry
	LocationType string
	Distribution *Gaussian2D
}

// Sample returns a realization of the feature: the nominal geometry
// perturbed by one draw from its distribution, or the nominal geometry
// unchanged if it has none.
func (f CartesianFeature) Sample(rng *rand.Rand) CartesianFeature {
	if f.Distribution == nil {
		return f
	}
	de, dn := f.Distribution.Draw(rng)
	return CartesianFeature{
		Geometry:     f.Geometry.Translate(de, dn),
		LocationType: f.LocationType,
		Distribution: f.Distribution,
	}
}
