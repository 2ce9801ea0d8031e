package nn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Network is a stack of linear layers interleaved with activation
// functions. neurons[i] is the width of layer i and activations[i]
// names the nonlinearity applied after it.
type Network struct {
	InputDim    int
	Neurons     []int
	Activations []string

	layers []Layer
}

// New builds a network of len(neurons) linear+activation pairs. The
// activation list must match the neuron list, and every activation name
// must be recognized by NewActivation.
func New(inputDim int, neurons []int, activations []string) (*Network, error) {
	if inputDim <= 0 {
		return nil, fmt.Errorf("input dimension must be positive, got %d", inputDim)
	}
	if len(neurons) == 0 {
		return nil, fmt.Errorf("network needs at least one layer")
	}
	if len(neurons) != len(activations) {
		return nil, fmt.Errorf("got %d layer widths but %d activations", len(neurons), len(activations))
	}

	net := &Network{
		InputDim:    inputDim,
		Neurons:     append([]int(nil), neurons...),
		Activations: append([]string(nil), activations...),
	}

	prev := inputDim
	for i, width := range neurons {
		if width <= 0 {
			return nil, fmt.Errorf("layer %d width must be positive, got %d", i, width)
		}
		act, err := NewActivation(activations[i])
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		net.layers = append(net.layers, NewLinear(prev, width), act)
		prev = width
	}
	return net, nil
}

// Forward propagates a b×InputDim batch through every layer and returns
// the b×Neurons[last] output.
func (n *Network) Forward(x *mat.Dense) *mat.Dense {
	for _, layer := range n.layers {
		x = layer.Forward(x)
	}
	return x
}

// Backward propagates the loss gradient through the layers in reverse
// order and returns the gradient with respect to the network input.
func (n *Network) Backward(grad *mat.Dense) *mat.Dense {
	for i := len(n.layers) - 1; i >= 0; i-- {
		grad = n.layers[i].Backward(grad)
	}
	return grad
}

// UpdateParams performs one gradient-descent step on every layer using
// the gradients stored by the last Backward call.
func (n *Network) UpdateParams(lr float64) {
	for _, layer := range n.layers {
		layer.UpdateParams(lr)
	}
}

// Predict is Forward under the name inference code expects.
func (n *Network) Predict(x *mat.Dense) *mat.Dense {
	return n.Forward(x)
}

// Linears returns the parameterized layers in order.
func (n *Network) Linears() []*LinearLayer {
	var out []*LinearLayer
	for _, layer := range n.layers {
		if lin, ok := layer.(*LinearLayer); ok {
			out = append(out, lin)
		}
	}
	return out
}
