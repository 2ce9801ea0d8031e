package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

func TestNewNetworkValidation(t *testing.T) {
	cases := []struct {
		name        string
		inputDim    int
		neurons     []int
		activations []string
	}{
		{"non-positive input dim", 0, []int{4}, []string{"sigmoid"}},
		{"no layers", 3, nil, nil},
		{"length mismatch", 3, []int{4, 2}, []string{"sigmoid"}},
		{"non-positive width", 3, []int{4, 0}, []string{"sigmoid", "identity"}},
		{"unknown activation", 3, []int{4}, []string{"swish"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.inputDim, tc.neurons, tc.activations)
			require.Error(t, err)
		})
	}
}

func TestNetworkForwardShapes(t *testing.T) {
	net, err := New(4, []int{8, 5, 2}, []string{"relu", "tanh", "identity"})
	require.NoError(t, err)

	out := net.Forward(mat.NewDense(6, 4, nil))
	r, c := out.Dims()
	assert.Equal(t, 6, r)
	assert.Equal(t, 2, c)

	grad := net.Backward(ones(6, 2))
	r, c = grad.Dims()
	assert.Equal(t, 6, r)
	assert.Equal(t, 4, c)
}

func TestNetworkLinears(t *testing.T) {
	net, err := New(3, []int{5, 2}, []string{"sigmoid", "identity"})
	require.NoError(t, err)

	lins := net.Linears()
	require.Len(t, lins, 2)
	assert.Equal(t, 3, lins[0].NIn)
	assert.Equal(t, 5, lins[0].NOut)
	assert.Equal(t, 5, lins[1].NIn)
	assert.Equal(t, 2, lins[1].NOut)
}

// TestNetworkInputGradientCheck compares the gradient Backward reports
// for the network input against a finite-difference estimate of the MSE
// loss as a function of that input.
func TestNetworkInputGradientCheck(t *testing.T) {
	net, err := New(3, []int{4, 2}, []string{"sigmoid", "identity"})
	require.NoError(t, err)

	input := []float64{0.3, -0.7, 1.1}
	target := mat.NewDense(1, 2, []float64{0.5, -0.5})

	objective := func(x []float64) float64 {
		loss := &MSELoss{}
		pred := net.Forward(mat.NewDense(1, len(x), append([]float64(nil), x...)))
		return loss.Forward(pred, target)
	}

	numerical := make([]float64, len(input))
	fd.Gradient(numerical, objective, input, &fd.Settings{Formula: fd.Central})

	loss := &MSELoss{}
	pred := net.Forward(mat.NewDense(1, 3, append([]float64(nil), input...)))
	loss.Forward(pred, target)
	analytic := net.Backward(loss.Backward())

	for j := range input {
		assert.InDelta(t, numerical[j], analytic.At(0, j), 1e-5, "input %d", j)
	}
}

func TestPredictMatchesForward(t *testing.T) {
	net, err := New(2, []int{3, 1}, []string{"tanh", "identity"})
	require.NoError(t, err)

	x := mat.NewDense(4, 2, []float64{1, 2, 3, 4, 5, 6, 7, 8})
	assert.True(t, mat.Equal(net.Forward(x), net.Predict(x)))
}
