package nn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"nnkit/matrix"
)

// Loss computes a scalar loss from predictions and targets. Backward
// returns the gradient of that loss with respect to the predictions,
// using the operands cached by the last Forward call.
type Loss interface {
	Forward(pred, target *mat.Dense) float64
	Backward() *mat.Dense
}

// NewLoss resolves a loss by name: "mse" or "softmax_cross_entropy"
// ("cross_entropy" is accepted as an alias).
func NewLoss(name string) (Loss, error) {
	switch name {
	case "mse":
		return &MSELoss{}, nil
	case "softmax_cross_entropy", "cross_entropy":
		return &CrossEntropyLoss{}, nil
	default:
		return nil, fmt.Errorf("unknown loss %q, choose between: mse, softmax_cross_entropy", name)
	}
}

// MSELoss computes the mean-squared error between predictions and
// targets.
type MSELoss struct {
	pred, target *mat.Dense
}

// Forward returns the mean over all elements of (pred-target)².
func (l *MSELoss) Forward(pred, target *mat.Dense) float64 {
	l.pred, l.target = pred, target
	diff := matrix.Sub(pred, target)
	r, c := diff.Dims()
	sum := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := diff.At(i, j)
			sum += v * v
		}
	}
	return sum / float64(r*c)
}

// Backward returns 2·(pred-target)/n where n is the total number of
// elements, the exact gradient of Forward.
func (l *MSELoss) Backward() *mat.Dense {
	r, c := l.pred.Dims()
	return matrix.Scale(2.0/float64(r*c), matrix.Sub(l.pred, l.target))
}

// CrossEntropyLoss computes a row-wise softmax followed by the negative
// log-likelihood against one-hot targets.
type CrossEntropyLoss struct {
	probs, target *mat.Dense
}

// Forward returns -(1/b)·Σ target·log(softmax(pred)).
func (l *CrossEntropyLoss) Forward(pred, target *mat.Dense) float64 {
	l.probs = matrix.Softmax(pred)
	l.target = target
	r, c := l.probs.Dims()
	sum := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			// Skip zero targets so an underflowed probability in an
			// unlabeled class cannot turn the sum into NaN.
			if t := target.At(i, j); t != 0 {
				sum += t * math.Log(l.probs.At(i, j))
			}
		}
	}
	return -sum / float64(r)
}

// Backward returns -(target-probs)/b.
func (l *CrossEntropyLoss) Backward() *mat.Dense {
	r, _ := l.probs.Dims()
	return matrix.Scale(-1.0/float64(r), matrix.Sub(l.target, l.probs))
}
