package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestPreprocessorApply(t *testing.T) {
	data := mat.NewDense(3, 2, []float64{
		0, 10,
		5, 20,
		10, 30,
	})
	p := NewPreprocessor(data)
	out := p.Apply(data)

	want := mat.NewDense(3, 2, []float64{
		0, 0,
		0.5, 0.5,
		1, 1,
	})
	assert.True(t, mat.EqualApprox(want, out, 1e-12))
}

func TestPreprocessorRevertInvertsApply(t *testing.T) {
	data := mat.NewDense(4, 3, []float64{
		-2, 100, 0.5,
		3, 250, 0.1,
		7, 175, 0.9,
		0, 300, 0.3,
	})
	p := NewPreprocessor(data)

	back := p.Revert(p.Apply(data))
	assert.True(t, mat.EqualApprox(data, back, 1e-12))
}

func TestPreprocessorConstantColumn(t *testing.T) {
	data := mat.NewDense(3, 2, []float64{
		5, 1,
		5, 2,
		5, 3,
	})
	p := NewPreprocessor(data)
	out := p.Apply(data)

	// A constant column maps to all zeros rather than dividing by zero.
	for i := 0; i < 3; i++ {
		assert.Equal(t, 0.0, out.At(i, 0))
	}

	back := p.Revert(out)
	assert.True(t, mat.EqualApprox(data, back, 1e-12))
}

func TestPreprocessorAppliesRecordedRange(t *testing.T) {
	train := mat.NewDense(2, 1, []float64{0, 10})
	p := NewPreprocessor(train)

	// New data outside the recorded range extrapolates past [0, 1].
	other := mat.NewDense(2, 1, []float64{5, 20})
	out := p.Apply(other)
	require.Equal(t, 0.5, out.At(0, 0))
	require.Equal(t, 2.0, out.At(1, 0))
}

func TestStandardizer(t *testing.T) {
	data := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
		4, 40,
	})
	s := NewStandardizer(data)
	out := s.Apply(data)

	r, c := out.Dims()
	for j := 0; j < c; j++ {
		var sum, sumSq float64
		for i := 0; i < r; i++ {
			v := out.At(i, j)
			sum += v
			sumSq += v * v
		}
		mean := sum / float64(r)
		variance := sumSq/float64(r) - mean*mean
		assert.InDelta(t, 0, mean, 1e-12, "column %d mean", j)
		assert.InDelta(t, 1, variance, 1e-12, "column %d variance", j)
	}

	back := s.Revert(out)
	assert.True(t, mat.EqualApprox(data, back, 1e-12))
}

func TestStandardizerConstantColumn(t *testing.T) {
	data := mat.NewDense(3, 1, []float64{7, 7, 7})
	s := NewStandardizer(data)
	out := s.Apply(data)

	for i := 0; i < 3; i++ {
		assert.Equal(t, 0.0, out.At(i, 0))
	}
	back := s.Revert(out)
	assert.True(t, mat.EqualApprox(data, back, 1e-12))
}
