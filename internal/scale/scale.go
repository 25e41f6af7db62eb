package scale

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrZeroVariance is returned when a column cannot be rescaled
	// because all of its values are equal.
	ErrZeroVariance = errors.New("zero variance column")
	ErrNotFitted    = errors.New("scaler is not fitted")
	ErrEmpty        = errors.New("empty matrix")
)

// relTol is the standard deviation, relative to the column's magnitude,
// below which a column counts as constant.
const relTol = 1e-12

// StandardScaler rescales every column to zero mean and unit variance
// using the population standard deviation.
type StandardScaler struct {
	Mean []float64
	Std  []float64
}

func NewStandardScaler() *StandardScaler { return &StandardScaler{} }

// Fit computes the per-column mean and standard deviation of x.
func (s *StandardScaler) Fit(x mat.Matrix) error {
	r, c := x.Dims()
	if r == 0 || c == 0 {
		return ErrEmpty
	}
	mean := make([]float64, c)
	std := make([]float64, c)
	col := make([]float64, r)
	for j := range c {
		mat.Col(col, j, x)
		m, v := stat.PopMeanVariance(col, nil)
		sd := math.Sqrt(v)
		if !(sd > relTol*math.Max(1, math.Abs(m))) {
			return fmt.Errorf("%w: column %d", ErrZeroVariance, j)
		}
		mean[j], std[j] = m, sd
	}
	s.Mean, s.Std = mean, std
	return nil
}

// Transform returns (x - mean) / std column by column.
func (s *StandardScaler) Transform(x mat.Matrix) (*mat.Dense, error) {
	if s.Mean == nil {
		return nil, ErrNotFitted
	}
	r, c := x.Dims()
	if c != len(s.Mean) {
		return nil, fmt.Errorf("scaler fitted on %d columns, got %d", len(s.Mean), c)
	}
	if r == 0 {
		return nil, ErrEmpty
	}
	out := mat.NewDense(r, c, nil)
	out.Apply(func(_, j int, v float64) float64 {
		return (v - s.Mean[j]) / s.Std[j]
	}, x)
	return out, nil
}

func (s *StandardScaler) FitTransform(x mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(x); err != nil {
		return nil, err
	}
	return s.Transform(x)
}

// Standardize is a shorthand for a fresh scaler's FitTransform.
func Standardize(x mat.Matrix) (*mat.Dense, error) {
	return NewStandardScaler().FitTransform(x)
}
