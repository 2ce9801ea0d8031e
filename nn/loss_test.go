package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewLoss(t *testing.T) {
	for _, name := range []string{"mse", "softmax_cross_entropy", "cross_entropy"} {
		l, err := NewLoss(name)
		require.NoError(t, err, name)
		require.NotNil(t, l, name)
	}

	_, err := NewLoss("hinge")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hinge")
}

func TestMSEForward(t *testing.T) {
	l := &MSELoss{}
	pred := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	target := mat.NewDense(2, 2, []float64{1, 1, 1, 1})

	// (0 + 1 + 4 + 9) / 4
	assert.InDelta(t, 3.5, l.Forward(pred, target), 1e-12)
}

func TestMSEGradientCheck(t *testing.T) {
	const eps = 1e-6
	pred := mat.NewDense(2, 3, []float64{0.2, -0.5, 1.1, 0.7, 0.0, -1.3})
	target := mat.NewDense(2, 3, []float64{0, 1, 0, 1, 0, 0.5})

	l := &MSELoss{}
	l.Forward(pred, target)
	grad := l.Backward()

	r, c := pred.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			orig := pred.At(i, j)

			pred.Set(i, j, orig+eps)
			plus := (&MSELoss{}).Forward(pred, target)
			pred.Set(i, j, orig-eps)
			minus := (&MSELoss{}).Forward(pred, target)
			pred.Set(i, j, orig)

			numerical := (plus - minus) / (2 * eps)
			assert.InDelta(t, numerical, grad.At(i, j), 1e-5, "element (%d,%d)", i, j)
		}
	}
}

func TestCrossEntropyForward(t *testing.T) {
	l := &CrossEntropyLoss{}
	logits := mat.NewDense(1, 3, []float64{2, 1, 0})
	target := mat.NewDense(1, 3, []float64{1, 0, 0})

	// Manual softmax over [2 1 0], then -log of the first probability.
	denom := math.Exp(2) + math.Exp(1) + math.Exp(0)
	want := -math.Log(math.Exp(2) / denom)

	assert.InDelta(t, want, l.Forward(logits, target), 1e-12)
}

func TestCrossEntropyGradientCheck(t *testing.T) {
	const eps = 1e-6
	logits := mat.NewDense(2, 3, []float64{0.5, -0.2, 1.3, -1.0, 0.4, 0.1})
	target := mat.NewDense(2, 3, []float64{0, 0, 1, 1, 0, 0})

	l := &CrossEntropyLoss{}
	l.Forward(logits, target)
	grad := l.Backward()

	r, c := logits.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			orig := logits.At(i, j)

			logits.Set(i, j, orig+eps)
			plus := (&CrossEntropyLoss{}).Forward(logits, target)
			logits.Set(i, j, orig-eps)
			minus := (&CrossEntropyLoss{}).Forward(logits, target)
			logits.Set(i, j, orig)

			numerical := (plus - minus) / (2 * eps)
			assert.InDelta(t, numerical, grad.At(i, j), 1e-5, "element (%d,%d)", i, j)
		}
	}
}

func TestCrossEntropyLargeLogits(t *testing.T) {
	l := &CrossEntropyLoss{}
	logits := mat.NewDense(1, 2, []float64{1000, 0})
	target := mat.NewDense(1, 2, []float64{1, 0})

	v := l.Forward(logits, target)
	assert.False(t, math.IsNaN(v))
	assert.False(t, math.IsInf(v, 0))
	assert.InDelta(t, 0, v, 1e-9)
}
