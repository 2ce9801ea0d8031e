package nn

import (
	"gonum.org/v1/gonum/mat"

	"nnkit/matrix"
)

// LinearLayer performs an affine transformation of its input,
// y = xW + b, with W of shape nIn×nOut and b a 1×nOut row vector
// broadcast over the batch.
type LinearLayer struct {
	NIn  int
	NOut int

	W *mat.Dense // nIn×nOut
	B *mat.Dense // 1×nOut

	lastInput *mat.Dense
	gradW     *mat.Dense
	gradB     *mat.Dense
}

// NewLinear creates a LinearLayer with Xavier-uniform weights and
// standard-normal biases.
func NewLinear(nIn, nOut int) *LinearLayer {
	return &LinearLayer{
		NIn:  nIn,
		NOut: nOut,
		W:    mat.NewDense(nIn, nOut, matrix.XavierArray(nIn*nOut, 1.0, nIn, nOut)),
		B:    mat.NewDense(1, nOut, matrix.NormalArray(nOut)),
	}
}

// Forward returns xW + b for a b×nIn input, caching x for Backward.
func (l *LinearLayer) Forward(x *mat.Dense) *mat.Dense {
	l.lastInput = x
	return matrix.AddRowVector(matrix.Dot(x, l.W), l.B)
}

// Backward takes the b×nOut gradient of the loss with respect to the
// layer output and returns the b×nIn gradient with respect to the
// input. Parameter gradients are kept for the next UpdateParams call:
//
//	gradW = xᵀ·grad    gradB = 1ᵀ·grad    gradIn = grad·Wᵀ
func (l *LinearLayer) Backward(grad *mat.Dense) *mat.Dense {
	l.gradW = matrix.Dot(l.lastInput.T(), grad)
	l.gradB = matrix.ColSums(grad)
	return matrix.Dot(grad, l.W.T())
}

// UpdateParams performs one gradient-descent step on W and b using the
// gradients stored by the last Backward call.
func (l *LinearLayer) UpdateParams(lr float64) {
	l.W.Sub(l.W, matrix.Scale(lr, l.gradW))
	l.B.Sub(l.B, matrix.Scale(lr, l.gradB))
}
