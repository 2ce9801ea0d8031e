// Package trainer runs mini-batch stochastic gradient descent over a
// network.
package trainer

import (
	"fmt"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"

	"nnkit/nn"
	"nnkit/utils"
)

// Trainer manages the training of a network: batching, shuffling, the
// loss layer and the per-step parameter updates.
type Trainer struct {
	Net          *nn.Network
	BatchSize    int
	Epochs       int
	LearningRate float64
	ShuffleFlag  bool

	// Stats, when set, accumulates per-phase durations.
	Stats *utils.TimingStats
	// OnEpoch, when set, is called after each epoch with the mean
	// batch loss of that epoch.
	OnEpoch func(epoch int, avgLoss float64)

	loss nn.Loss
	rng  *rand.Rand
}

// New validates the training configuration and resolves the loss by
// name ("mse" or "softmax_cross_entropy").
func New(net *nn.Network, batchSize, epochs int, lr float64, lossName string, shuffle bool) (*Trainer, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}
	if epochs <= 0 {
		return nil, fmt.Errorf("epochs must be positive, got %d", epochs)
	}
	loss, err := nn.NewLoss(lossName)
	if err != nil {
		return nil, err
	}
	return &Trainer{
		Net:          net,
		BatchSize:    batchSize,
		Epochs:       epochs,
		LearningRate: lr,
		ShuffleFlag:  shuffle,
		loss:         loss,
		rng:          rand.New(rand.NewSource(rand.Int63())),
	}, nil
}

// Seed makes shuffling deterministic.
func (t *Trainer) Seed(seed int64) {
	t.rng = rand.New(rand.NewSource(seed))
}

// Train runs Epochs passes over the dataset. Each epoch optionally
// shuffles the samples, splits them into BatchSize batches (a smaller
// leftover batch is kept), and for each batch runs forward, loss,
// backward and one gradient-descent step. It returns the loss of every
// batch in order.
func (t *Trainer) Train(x, y *mat.Dense) []float64 {
	var history []float64
	for epoch := 0; epoch < t.Epochs; epoch++ {
		if t.ShuffleFlag {
			x, y = Shuffle(x, y, t.rng)
		}
		epochLoss, epochBatches := 0.0, 0
		for _, b := range batches(x, y, t.BatchSize) {
			loss := t.trainStep(b)
			history = append(history, loss)
			epochLoss += loss
			epochBatches++
		}
		if t.OnEpoch != nil {
			t.OnEpoch(epoch+1, epochLoss/float64(epochBatches))
		}
	}
	return history
}

// trainStep runs one forward/loss/backward/update cycle on a batch and
// returns the batch loss.
func (t *Trainer) trainStep(b batch) float64 {
	start := time.Now()
	out := t.Net.Forward(b.x)
	forwardDone := time.Now()
	loss := t.loss.Forward(out, b.y)
	lossDone := time.Now()
	t.Net.Backward(t.loss.Backward())
	backwardDone := time.Now()
	t.Net.UpdateParams(t.LearningRate)

	if t.Stats != nil {
		t.Stats.ForwardPassTime += forwardDone.Sub(start)
		t.Stats.LossComputationTime += lossDone.Sub(forwardDone)
		t.Stats.BackwardPassTime += backwardDone.Sub(lossDone)
		t.Stats.UpdateTime += time.Since(backwardDone)
	}
	return loss
}

// EvalLoss computes the loss over a whole dataset without updating the
// network.
func (t *Trainer) EvalLoss(x, y *mat.Dense) float64 {
	return t.loss.Forward(t.Net.Forward(x), y)
}

// Shuffle returns x and y with their rows permuted by the same random
// permutation, keeping inputs paired with targets.
func Shuffle(x, y *mat.Dense, rng *rand.Rand) (*mat.Dense, *mat.Dense) {
	n, xc := x.Dims()
	_, yc := y.Dims()
	perm := rng.Perm(n)

	xs := mat.NewDense(n, xc, nil)
	ys := mat.NewDense(n, yc, nil)
	for i, p := range perm {
		xs.SetRow(i, x.RawRowView(p))
		ys.SetRow(i, y.RawRowView(p))
	}
	return xs, ys
}

type batch struct {
	x, y *mat.Dense
}

// batches splits the rows of x and y into consecutive batches of
// batchSize. A final smaller batch holds the leftover rows.
func batches(x, y *mat.Dense, batchSize int) []batch {
	n, xc := x.Dims()
	_, yc := y.Dims()

	var out []batch
	for start := 0; start < n; start += batchSize {
		end := start + batchSize
		if end > n {
			end = n
		}
		out = append(out, batch{
			x: x.Slice(start, end, 0, xc).(*mat.Dense),
			y: y.Slice(start, end, 0, yc).(*mat.Dense),
		})
	}
	return out
}
