package nn

import "gonum.org/v1/gonum/mat"

// Layer defines a single layer/unit in the network.
//
// Inputs and gradients are row-major: a batch of b samples with d
// features is a b×d matrix. Shape mismatches surface as gonum's native
// panics.
type Layer interface {
	// Forward computes the layer output from its input, caching
	// whatever the backward pass will need.
	Forward(x *mat.Dense) *mat.Dense
	// Backward takes the gradient of the loss with respect to the
	// layer's output and returns the gradient with respect to its
	// input, storing parameter gradients along the way.
	Backward(grad *mat.Dense) *mat.Dense
	// UpdateParams applies one gradient-descent step with the given
	// learning rate. Parameter-free layers do nothing.
	UpdateParams(lr float64)
}
