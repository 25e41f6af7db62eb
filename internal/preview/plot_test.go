package preview

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/Manuelfjr/claire-clustering/internal/datasets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestScatter(t *testing.T) {
	test := []struct {
		name   string
		labels []int
	}{
		{"labelled", []int{0, 1, 1, 2}},
		{"unlabelled", nil},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			ds := datasets.Dataset{
				X:      mat.NewDense(4, 2, []float64{0, 0, 1, 1, -1, 2, 0.5, -0.5}),
				Labels: tt.labels,
			}
			w, err := Scatter(tt.name, ds)
			require.NoError(t, err)

			var buf bytes.Buffer
			_, err = w.WriteTo(&buf)
			require.NoError(t, err)

			img, err := png.Decode(&buf)
			require.NoError(t, err)
			assert.False(t, img.Bounds().Empty())
		})
	}
}
