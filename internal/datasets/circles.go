package datasets

import (
	"math"
	"math/rand/v2"

	"github.com/Manuelfjr/claire-clustering/internal/config"
	"gonum.org/v1/gonum/mat"
)

// Circles makes a large circle containing a smaller one.
//
// The first n/2 points lie on the unit circle and are labelled 0, the
// rest lie on a circle of radius p.Factor and are labelled 1. Angles are
// evenly spaced with the endpoint excluded. Rows are shuffled when
// p.Shuffle is set, then Gaussian noise of deviation p.Noise is added.
func Circles(n int, p config.CirclesParams, rng *rand.Rand) (Dataset, error) {
	if err := checkSamples(n); err != nil {
		return Dataset{}, err
	}
	nOut := n / 2
	nIn := n - nOut

	ds := Dataset{X: mat.NewDense(n, config.Dims, nil), Labels: make([]int, n)}
	for i, t := range linspace(nOut, 0, 2*math.Pi, false) {
		ds.X.SetRow(i, []float64{math.Cos(t), math.Sin(t)})
	}
	for i, t := range linspace(nIn, 0, 2*math.Pi, false) {
		ds.X.SetRow(nOut+i, []float64{p.Factor * math.Cos(t), p.Factor * math.Sin(t)})
		ds.Labels[nOut+i] = 1
	}

	if p.Shuffle {
		ds.shuffle(rng)
	}
	ds.addNoise(p.Noise, rng)
	return ds, nil
}

// Moons makes two interleaving half circles.
//
// The first n/2 points follow (cos t, sin t) and are labelled 0, the rest
// follow (1-cos t, 1-sin t-0.5) and are labelled 1, with t evenly spaced
// over [0, π].
func Moons(n int, p config.MoonsParams, rng *rand.Rand) (Dataset, error) {
	if err := checkSamples(n); err != nil {
		return Dataset{}, err
	}
	nOut := n / 2
	nIn := n - nOut

	ds := Dataset{X: mat.NewDense(n, config.Dims, nil), Labels: make([]int, n)}
	for i, t := range linspace(nOut, 0, math.Pi, true) {
		ds.X.SetRow(i, []float64{math.Cos(t), math.Sin(t)})
	}
	for i, t := range linspace(nIn, 0, math.Pi, true) {
		ds.X.SetRow(nOut+i, []float64{1 - math.Cos(t), 1 - math.Sin(t) - 0.5})
		ds.Labels[nOut+i] = 1
	}

	if p.Shuffle {
		ds.shuffle(rng)
	}
	ds.addNoise(p.Noise, rng)
	return ds, nil
}
