package trainer

import (
	"gonum.org/v1/gonum/mat"

	"nnkit/matrix"
	"nnkit/nn"
)

// Accuracy runs the network over x and returns the fraction of rows
// whose predicted argmax matches the target argmax.
func Accuracy(net *nn.Network, x, y *mat.Dense) float64 {
	preds := matrix.ArgMaxRows(net.Predict(x))
	targets := matrix.ArgMaxRows(y)

	correct := 0
	for i := range preds {
		if preds[i] == targets[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(preds))
}
