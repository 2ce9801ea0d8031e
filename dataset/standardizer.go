package dataset

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Standardizer normalizes every feature column to zero mean and unit
// variance using statistics of the dataset it was constructed from.
type Standardizer struct {
	mean []float64
	std  []float64
}

// NewStandardizer records the per-column mean and standard deviation of
// data without modifying it.
func NewStandardizer(data *mat.Dense) *Standardizer {
	r, c := data.Dims()
	s := &Standardizer{
		mean: make([]float64, c),
		std:  make([]float64, c),
	}
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, data)
		s.mean[j] = stat.Mean(col, nil)
		s.std[j] = math.Sqrt(stat.PopVariance(col, nil))
		if s.std[j] == 0 {
			s.std[j] = 1
		}
	}
	return s
}

// Apply returns data with each column shifted and scaled to zero mean
// and unit variance.
func (s *Standardizer) Apply(data *mat.Dense) *mat.Dense {
	r, c := data.Dims()
	out := mat.NewDense(r, c, nil)
	out.Apply(func(i, j int, v float64) float64 {
		return (v - s.mean[j]) / s.std[j]
	}, data)
	return out
}

// Revert maps standardized data back to the original scale.
func (s *Standardizer) Revert(data *mat.Dense) *mat.Dense {
	r, c := data.Dims()
	out := mat.NewDense(r, c, nil)
	out.Apply(func(i, j int, v float64) float64 {
		return s.mean[j] + v*s.std[j]
	}, data)
	return out
}
