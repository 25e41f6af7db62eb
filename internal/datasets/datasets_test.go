package datasets

import (
	"math"
	"testing"

	"github.com/Manuelfjr/claire-clustering/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func blobShape(k int, std ...float64) config.BlobShape {
	if len(std) == 0 {
		std = []float64{1}
	}
	return config.BlobShape{
		NFeatures:  config.Dims,
		Centers:    config.Centers{Count: k},
		ClusterStd: config.Spread(std),
		CenterBox:  []float64{-10, 10},
		Shuffle:    true,
	}
}

func countLabels(labels []int) map[int]int {
	counts := make(map[int]int)
	for _, l := range labels {
		counts[l]++
	}
	return counts
}

func TestCircles(t *testing.T) {
	for _, n := range []int{1, 2, 7, 500} {
		ds, err := Circles(n, config.CirclesParams{Factor: 0.5, Shuffle: true}, NewRand(1))
		require.NoError(t, err)
		require.Equal(t, n, ds.Len())
		require.Equal(t, config.Dims, ds.Dims())
		require.Len(t, ds.Labels, n)

		counts := countLabels(ds.Labels)
		assert.Equal(t, n/2, counts[0])
		assert.Equal(t, n-n/2, counts[1])

		for i := range n {
			r := math.Hypot(ds.X.At(i, 0), ds.X.At(i, 1))
			want := 1.0
			if ds.Labels[i] == 1 {
				want = 0.5
			}
			assert.InDelta(t, want, r, 1e-12, "row %d", i)
		}
	}
}

func TestMoons(t *testing.T) {
	n := 101
	ds, err := Moons(n, config.MoonsParams{Shuffle: false}, NewRand(1))
	require.NoError(t, err)
	require.Equal(t, n, ds.Len())

	for i := range n {
		x, y := ds.X.At(i, 0), ds.X.At(i, 1)
		if ds.Labels[i] == 0 {
			assert.InDelta(t, 1, math.Hypot(x, y), 1e-12)
			assert.GreaterOrEqual(t, y, -1e-12)
		} else {
			assert.InDelta(t, 1, math.Hypot(x-1, y-0.5), 1e-12)
			assert.LessOrEqual(t, y, 0.5+1e-12)
		}
	}
	// unshuffled: the outer moon comes first and starts at t=0
	assert.Equal(t, []float64{1, 0}, mat.Row(nil, 0, ds.X))
	assert.InDelta(t, -1, ds.X.At(n/2-1, 0), 1e-12)
}

func TestNoise(t *testing.T) {
	clean, err := Circles(200, config.CirclesParams{Factor: 0.5}, NewRand(3))
	require.NoError(t, err)
	noisy, err := Circles(200, config.CirclesParams{Factor: 0.5, Noise: 0.05}, NewRand(3))
	require.NoError(t, err)
	assert.False(t, mat.Equal(clean.X, noisy.X))
	assert.True(t, mat.EqualApprox(clean.X, noisy.X, 0.5))
	assert.Equal(t, clean.Labels, noisy.Labels)
}

func TestBlobs(t *testing.T) {
	t.Run("counts", func(t *testing.T) {
		for _, tt := range []struct{ n, k int }{{500, 3}, {10, 3}, {2, 3}, {7, 1}} {
			ds, err := Blobs(tt.n, blobShape(tt.k), NewRand(8))
			require.NoError(t, err)
			require.Equal(t, tt.n, ds.Len())

			counts := countLabels(ds.Labels)
			for c := range tt.k {
				want := tt.n / tt.k
				if c < tt.n%tt.k {
					want++
				}
				assert.Equal(t, want, counts[c], "n=%d k=%d center %d", tt.n, tt.k, c)
			}
			for l := range counts {
				assert.True(t, l >= 0 && l < tt.k)
			}
		}
	})
	t.Run("explicit centers", func(t *testing.T) {
		shape := blobShape(0, 0)
		shape.Centers = config.Centers{Points: [][]float64{{1, 2}, {-3, 4}}}
		ds, err := Blobs(9, shape, NewRand(1))
		require.NoError(t, err)
		for i := range ds.Len() {
			want := shape.Centers.Points[ds.Labels[i]]
			assert.Equal(t, want, mat.Row(nil, i, ds.X))
		}
	})
	t.Run("centers inside box", func(t *testing.T) {
		c := Centers(blobShape(50), NewRand(2))
		for _, v := range c.RawMatrix().Data {
			assert.True(t, v >= -10 && v < 10, "center value %g", v)
		}
	})
	t.Run("per-cluster spread", func(t *testing.T) {
		shape := blobShape(0, 0, 5)
		shape.Centers = config.Centers{Points: [][]float64{{0, 0}, {0, 0}}}
		ds, err := Blobs(100, shape, NewRand(1))
		require.NoError(t, err)
		var moved int
		for i := range ds.Len() {
			r := math.Hypot(ds.X.At(i, 0), ds.X.At(i, 1))
			if ds.Labels[i] == 0 {
				assert.Zero(t, r)
			} else if r > 0 {
				moved++
			}
		}
		assert.Equal(t, 50, moved)
	})
	t.Run("bad spread", func(t *testing.T) {
		_, err := Blobs(10, blobShape(3, 1, 2), NewRand(1))
		assert.ErrorIs(t, err, config.ErrParameter)
	})
}

func TestDeterminism(t *testing.T) {
	a, err := Varied(300, config.VariedParams{BlobShape: blobShape(3, 1, 2.5, 0.5)}, NewRand(170))
	require.NoError(t, err)
	b, err := Varied(300, config.VariedParams{BlobShape: blobShape(3, 1, 2.5, 0.5)}, NewRand(170))
	require.NoError(t, err)
	assert.True(t, mat.Equal(a.X, b.X))
	assert.Equal(t, a.Labels, b.Labels)

	c, err := Varied(300, config.VariedParams{BlobShape: blobShape(3, 1, 2.5, 0.5)}, NewRand(171))
	require.NoError(t, err)
	assert.False(t, mat.Equal(a.X, c.X))
}

func TestAniso(t *testing.T) {
	rot := [][]float64{{0.6, -0.6}, {-0.4, 0.8}}
	ds, err := Aniso(200, config.AnisoParams{BlobShape: blobShape(3), Rotation: rot}, NewRand(170))
	require.NoError(t, err)
	base, err := Blobs(200, blobShape(3), NewRand(170))
	require.NoError(t, err)

	assert.Equal(t, base.Labels, ds.Labels)
	var want mat.Dense
	want.Mul(base.X, mat.NewDense(2, 2, []float64{0.6, -0.6, -0.4, 0.8}))
	assert.True(t, mat.EqualApprox(&want, ds.X, 1e-12))

	_, err = Aniso(200, config.AnisoParams{BlobShape: blobShape(3), Rotation: rot[:1]}, NewRand(170))
	assert.ErrorIs(t, err, config.ErrParameter)
}

func TestUniform(t *testing.T) {
	p := config.UniformParams{NFeatures: 2, Low: []float64{0, -1}, High: []float64{1, 1}}
	ds, err := Uniform(400, p, NewRand(0))
	require.NoError(t, err)
	assert.Equal(t, 400, ds.Len())
	assert.False(t, ds.HasLabels())
	for i := range ds.Len() {
		assert.True(t, ds.X.At(i, 0) >= 0 && ds.X.At(i, 0) < 1)
		assert.True(t, ds.X.At(i, 1) >= -1 && ds.X.At(i, 1) < 1)
	}

	t.Run("sample override", func(t *testing.T) {
		n := 25
		p := p
		p.NSamples = &n
		ds, err := Uniform(400, p, NewRand(0))
		require.NoError(t, err)
		assert.Equal(t, 25, ds.Len())
	})
	t.Run("constant column", func(t *testing.T) {
		p := config.UniformParams{NFeatures: 2, Low: []float64{0, 0.5}, High: []float64{1, 0.5}}
		ds, err := Uniform(50, p, NewRand(0))
		require.NoError(t, err)
		for i := range ds.Len() {
			assert.Equal(t, 0.5, ds.X.At(i, 1))
		}
	})
}

func TestSampleCount(t *testing.T) {
	_, err := Circles(0, config.CirclesParams{}, NewRand(0))
	assert.ErrorIs(t, err, config.ErrParameter)
	_, err = Moons(-1, config.MoonsParams{}, NewRand(0))
	assert.ErrorIs(t, err, config.ErrParameter)
	_, err = Blobs(0, blobShape(3), NewRand(0))
	assert.ErrorIs(t, err, config.ErrParameter)
	_, err = Uniform(0, config.UniformParams{NFeatures: 2, Low: []float64{0, 0}, High: []float64{1, 1}}, NewRand(0))
	assert.ErrorIs(t, err, config.ErrParameter)
}

func TestLinspace(t *testing.T) {
	assert.Nil(t, linspace(0, 0, 1, true))
	assert.Equal(t, []float64{0}, linspace(1, 0, 1, true))
	assert.Equal(t, []float64{0}, linspace(1, 0, 1, false))
	assert.Equal(t, []float64{0, 0.5, 1}, linspace(3, 0, 1, true))
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75}, linspace(4, 0, 1, false))
}
