package datasets

import (
	"fmt"
	"math/rand/v2"

	"github.com/Manuelfjr/claire-clustering/internal/config"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Dataset is a feature matrix with one optional label per row.
// A nil Labels slice means the points are unlabelled.
type Dataset struct {
	X      *mat.Dense
	Labels []int
}

// Len returns the number of rows.
func (d Dataset) Len() int {
	if d.X == nil {
		return 0
	}
	r, _ := d.X.Dims()
	return r
}

// Dims returns the number of feature columns.
func (d Dataset) Dims() int {
	if d.X == nil {
		return 0
	}
	_, c := d.X.Dims()
	return c
}

// HasLabels reports whether the rows carry cluster labels.
func (d Dataset) HasLabels() bool { return d.Labels != nil }

// NewRand returns a deterministic random source for seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

func (d Dataset) shuffle(rng *rand.Rand) {
	rng.Shuffle(d.Len(), func(i, j int) {
		ri, rj := d.X.RawRowView(i), d.X.RawRowView(j)
		for k := range ri {
			ri[k], rj[k] = rj[k], ri[k]
		}
		if d.Labels != nil {
			d.Labels[i], d.Labels[j] = d.Labels[j], d.Labels[i]
		}
	})
}

// addNoise adds Gaussian noise with standard deviation sigma to every value.
func (d Dataset) addNoise(sigma float64, rng *rand.Rand) {
	if sigma == 0 {
		return
	}
	noise := distuv.Normal{Mu: 0, Sigma: sigma, Src: rng}
	d.X.Apply(func(_, _ int, v float64) float64 {
		return v + noise.Rand()
	}, d.X)
}

func checkSamples(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: sample count must be positive, got %d", config.ErrParameter, n)
	}
	return nil
}

// linspace returns n evenly spaced values over [lo, hi], or over
// [lo, hi) when endpoint is false.
func linspace(n int, lo, hi float64, endpoint bool) []float64 {
	switch {
	case n <= 0:
		return nil
	case !endpoint:
		return floats.Span(make([]float64, n+1), lo, hi)[:n]
	case n == 1:
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}
