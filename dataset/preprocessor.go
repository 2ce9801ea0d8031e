package dataset

import (
	"gonum.org/v1/gonum/mat"
)

// Preprocessor rescales every feature column to [0, 1] using the
// per-column minimum and maximum of the dataset it was constructed
// from. Revert inverts Apply exactly.
type Preprocessor struct {
	min []float64
	max []float64
}

// NewPreprocessor records the per-column range of data without
// modifying it.
func NewPreprocessor(data *mat.Dense) *Preprocessor {
	r, c := data.Dims()
	p := &Preprocessor{
		min: make([]float64, c),
		max: make([]float64, c),
	}
	for j := 0; j < c; j++ {
		p.min[j], p.max[j] = data.At(0, j), data.At(0, j)
		for i := 1; i < r; i++ {
			v := data.At(i, j)
			if v < p.min[j] {
				p.min[j] = v
			}
			if v > p.max[j] {
				p.max[j] = v
			}
		}
	}
	return p
}

// span returns max-min for a column, or 1 when the column is constant
// so that Apply and Revert stay exact inverses.
func (p *Preprocessor) span(j int) float64 {
	s := p.max[j] - p.min[j]
	if s == 0 {
		return 1
	}
	return s
}

// Apply returns data rescaled so recorded minima map to 0 and maxima
// to 1.
func (p *Preprocessor) Apply(data *mat.Dense) *mat.Dense {
	r, c := data.Dims()
	out := mat.NewDense(r, c, nil)
	out.Apply(func(i, j int, v float64) float64 {
		return (v - p.min[j]) / p.span(j)
	}, data)
	return out
}

// Revert maps normalized data back to the original scale.
func (p *Preprocessor) Revert(data *mat.Dense) *mat.Dense {
	r, c := data.Dims()
	out := mat.NewDense(r, c, nil)
	out.Apply(func(i, j int, v float64) float64 {
		return p.min[j] + v*p.span(j)
	}, data)
	return out
}
