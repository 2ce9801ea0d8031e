// Package matrix holds the small gonum helpers shared by the layer,
// loss and trainer code.
package matrix

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func Dot(m, n mat.Matrix) *mat.Dense {
	r, _ := m.Dims()
	_, c := n.Dims()
	o := mat.NewDense(r, c, nil)
	o.Product(m, n)
	return o
}

func Apply(fn func(i, j int, v float64) float64, m mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	o := mat.NewDense(r, c, nil)
	o.Apply(fn, m)
	return o
}

func Scale(s float64, m mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	o := mat.NewDense(r, c, nil)
	o.Scale(s, m)
	return o
}

func MulElem(m, n mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	o := mat.NewDense(r, c, nil)
	o.MulElem(m, n)
	return o
}

func Add(m, n mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	o := mat.NewDense(r, c, nil)
	o.Add(m, n)
	return o
}

func Sub(m, n mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	o := mat.NewDense(r, c, nil)
	o.Sub(m, n)
	return o
}

// ColSums returns a 1×c row vector with the sum of each column of m.
func ColSums(m mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	o := mat.NewDense(1, c, nil)
	for j := 0; j < c; j++ {
		sum := 0.0
		for i := 0; i < r; i++ {
			sum += m.At(i, j)
		}
		o.Set(0, j, sum)
	}
	return o
}

// AddRowVector adds the 1×c row vector v to every row of m.
func AddRowVector(m mat.Matrix, v mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	o := mat.NewDense(r, c, nil)
	o.Apply(func(i, j int, x float64) float64 {
		return x + v.At(0, j)
	}, m)
	return o
}

// Softmax applies a row-wise softmax. The row maximum is subtracted
// before exponentiation so large logits do not overflow.
func Softmax(m mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	o := mat.NewDense(r, c, nil)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			row[j] = m.At(i, j)
		}
		max := floats.Max(row)
		sum := 0.0
		for j := range row {
			row[j] = math.Exp(row[j] - max)
			sum += row[j]
		}
		for j := range row {
			o.Set(i, j, row[j]/sum)
		}
	}
	return o
}

// ArgMaxRows returns the index of the largest value in each row.
func ArgMaxRows(m mat.Matrix) []int {
	r, c := m.Dims()
	idx := make([]int, r)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			row[j] = m.At(i, j)
		}
		idx[i] = floats.MaxIdx(row)
	}
	return idx
}
