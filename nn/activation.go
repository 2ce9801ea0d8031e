package nn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"nnkit/matrix"
)

// NewActivation resolves an activation layer by name. Recognized names
// are "sigmoid", "relu", "tanh" and "identity" ("linear" is accepted as
// an alias of identity); anything else is an error.
func NewActivation(name string) (Layer, error) {
	switch name {
	case "sigmoid":
		return &SigmoidLayer{}, nil
	case "relu":
		return &ReluLayer{}, nil
	case "tanh":
		return &TanhLayer{}, nil
	case "identity", "linear":
		return &IdentityLayer{}, nil
	default:
		return nil, fmt.Errorf("unknown activation %q", name)
	}
}

// SigmoidLayer applies the logistic function elementwise.
type SigmoidLayer struct {
	lastOutput *mat.Dense
}

func (s *SigmoidLayer) Forward(x *mat.Dense) *mat.Dense {
	s.lastOutput = matrix.Apply(func(_, _ int, v float64) float64 {
		return 1.0 / (1.0 + math.Exp(-v))
	}, x)
	return s.lastOutput
}

// Backward multiplies the upstream gradient by s(x)·(1-s(x)), using the
// cached forward output.
func (s *SigmoidLayer) Backward(grad *mat.Dense) *mat.Dense {
	prime := matrix.Apply(func(_, _ int, v float64) float64 {
		return v * (1 - v)
	}, s.lastOutput)
	return matrix.MulElem(grad, prime)
}

func (s *SigmoidLayer) UpdateParams(lr float64) {}

// ReluLayer applies max(0, x) elementwise.
type ReluLayer struct {
	lastInput *mat.Dense
}

func (r *ReluLayer) Forward(x *mat.Dense) *mat.Dense {
	r.lastInput = x
	return matrix.Apply(func(_, _ int, v float64) float64 {
		return math.Max(0, v)
	}, x)
}

func (r *ReluLayer) Backward(grad *mat.Dense) *mat.Dense {
	prime := matrix.Apply(func(_, _ int, v float64) float64 {
		if v > 0 {
			return 1
		}
		return 0
	}, r.lastInput)
	return matrix.MulElem(grad, prime)
}

func (r *ReluLayer) UpdateParams(lr float64) {}

// TanhLayer applies the hyperbolic tangent elementwise.
type TanhLayer struct {
	lastOutput *mat.Dense
}

func (t *TanhLayer) Forward(x *mat.Dense) *mat.Dense {
	t.lastOutput = matrix.Apply(func(_, _ int, v float64) float64 {
		return math.Tanh(v)
	}, x)
	return t.lastOutput
}

func (t *TanhLayer) Backward(grad *mat.Dense) *mat.Dense {
	prime := matrix.Apply(func(_, _ int, v float64) float64 {
		return 1 - v*v
	}, t.lastOutput)
	return matrix.MulElem(grad, prime)
}

func (t *TanhLayer) UpdateParams(lr float64) {}

// IdentityLayer passes its input through unchanged.
type IdentityLayer struct{}

func (i *IdentityLayer) Forward(x *mat.Dense) *mat.Dense     { return x }
func (i *IdentityLayer) Backward(grad *mat.Dense) *mat.Dense { return grad }
func (i *IdentityLayer) UpdateParams(lr float64)             {}
