package datasets

import (
	"fmt"
	"math/rand/v2"

	"github.com/Manuelfjr/claire-clustering/internal/config"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Blobs makes isotropic Gaussian clusters.
//
// Centers are taken from shape.Centers.Points, or drawn uniformly from
// shape.CenterBox when only a count is given. Each center receives n/k
// points and the first n%k centers one more. Labels are center indices.
func Blobs(n int, shape config.BlobShape, rng *rand.Rand) (Dataset, error) {
	if err := checkSamples(n); err != nil {
		return Dataset{}, err
	}
	k := shape.Centers.Len()
	if k <= 0 {
		return Dataset{}, fmt.Errorf("%w: centers must be positive, got %d", config.ErrParameter, k)
	}
	if len(shape.ClusterStd) != 1 && len(shape.ClusterStd) != k {
		return Dataset{}, fmt.Errorf("%w: cluster_std has %d values for %d centers",
			config.ErrParameter, len(shape.ClusterStd), k)
	}

	centers := Centers(shape, rng)

	ds := Dataset{X: mat.NewDense(n, config.Dims, nil), Labels: make([]int, n)}
	row := 0
	for c := range k {
		count := n / k
		if c < n%k {
			count++
		}
		center := centers.RawRowView(c)
		dist := make([]distuv.Normal, len(center))
		for j, mu := range center {
			dist[j] = distuv.Normal{Mu: mu, Sigma: shape.ClusterStd.At(c), Src: rng}
		}
		for range count {
			for j := range dist {
				ds.X.Set(row, j, dist[j].Rand())
			}
			ds.Labels[row] = c
			row++
		}
	}

	if shape.Shuffle {
		ds.shuffle(rng)
	}
	return ds, nil
}

// Centers returns the k×2 cluster centers for shape. Explicit points are
// copied; otherwise the centers are drawn from rng.
func Centers(shape config.BlobShape, rng *rand.Rand) *mat.Dense {
	k := shape.Centers.Len()
	centers := mat.NewDense(k, config.Dims, nil)
	if shape.Centers.Points != nil {
		for i, p := range shape.Centers.Points {
			centers.SetRow(i, p)
		}
		return centers
	}
	box := distuv.Uniform{Min: shape.CenterBox[0], Max: shape.CenterBox[1], Src: rng}
	centers.Apply(func(_, _ int, _ float64) float64 { return box.Rand() }, centers)
	return centers
}

// Aniso makes blobs and stretches them with the linear map p.Rotation,
// so each row x becomes x·R.
func Aniso(n int, p config.AnisoParams, rng *rand.Rand) (Dataset, error) {
	r, err := rotation(p.Rotation)
	if err != nil {
		return Dataset{}, err
	}
	ds, err := Blobs(n, p.BlobShape, rng)
	if err != nil {
		return Dataset{}, err
	}
	var x mat.Dense
	x.Mul(ds.X, r)
	ds.X = &x
	return ds, nil
}

// Varied makes blobs whose clusters have different spreads.
func Varied(n int, p config.VariedParams, rng *rand.Rand) (Dataset, error) {
	return Blobs(n, p.BlobShape, rng)
}

func rotation(rows [][]float64) (*mat.Dense, error) {
	if len(rows) != config.Dims {
		return nil, fmt.Errorf("%w: rotation must be %dx%d", config.ErrParameter, config.Dims, config.Dims)
	}
	r := mat.NewDense(config.Dims, config.Dims, nil)
	for i, row := range rows {
		if len(row) != config.Dims {
			return nil, fmt.Errorf("%w: rotation must be %dx%d", config.ErrParameter, config.Dims, config.Dims)
		}
		r.SetRow(i, row)
	}
	return r, nil
}
