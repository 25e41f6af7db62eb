package datasets

import (
	"fmt"
	"math/rand/v2"

	"github.com/Manuelfjr/claire-clustering/internal/config"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Uniform makes unlabelled points drawn uniformly per feature from
// [p.Low[j], p.High[j]). p.NSamples, when set, replaces n.
func Uniform(n int, p config.UniformParams, rng *rand.Rand) (Dataset, error) {
	if p.NSamples != nil {
		n = *p.NSamples
	}
	if err := checkSamples(n); err != nil {
		return Dataset{}, err
	}
	if p.NFeatures <= 0 {
		return Dataset{}, fmt.Errorf("%w: n_features must be positive, got %d", config.ErrParameter, p.NFeatures)
	}
	if len(p.Low) != p.NFeatures || len(p.High) != p.NFeatures {
		return Dataset{}, fmt.Errorf("%w: low and high need %d values each", config.ErrParameter, p.NFeatures)
	}

	dist := make([]distuv.Uniform, p.NFeatures)
	for j := range dist {
		dist[j] = distuv.Uniform{Min: p.Low[j], Max: p.High[j], Src: rng}
	}
	x := mat.NewDense(n, p.NFeatures, nil)
	x.Apply(func(_, j int, _ float64) float64 { return dist[j].Rand() }, x)
	return Dataset{X: x}, nil
}
