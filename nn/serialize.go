package nn

import (
	"encoding/gob"
	"fmt"
	"os"
)

// snapshot is the gob image of a trained network: the constructor
// arguments plus the binary form of each weight and bias matrix.
type snapshot struct {
	InputDim    int
	Neurons     []int
	Activations []string
	Weights     [][]byte
	Biases      [][]byte
}

// Save serializes the network to the given file path. The format is
// opaque: a gob encoding of the architecture and gonum's binary matrix
// form, with no compatibility contract beyond what they produce.
func Save(net *Network, fpath string) error {
	snap := snapshot{
		InputDim:    net.InputDim,
		Neurons:     net.Neurons,
		Activations: net.Activations,
	}
	for _, lin := range net.Linears() {
		w, err := lin.W.MarshalBinary()
		if err != nil {
			return fmt.Errorf("marshalling weights: %w", err)
		}
		b, err := lin.B.MarshalBinary()
		if err != nil {
			return fmt.Errorf("marshalling biases: %w", err)
		}
		snap.Weights = append(snap.Weights, w)
		snap.Biases = append(snap.Biases, b)
	}

	f, err := os.Create(fpath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(snap); err != nil {
		return fmt.Errorf("encoding network: %w", err)
	}
	return nil
}

// Load reads a network previously written by Save. The loaded network
// produces the same predictions as the one that was saved.
func Load(fpath string) (*Network, error) {
	f, err := os.Open(fpath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var snap snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding network: %w", err)
	}

	net, err := New(snap.InputDim, snap.Neurons, snap.Activations)
	if err != nil {
		return nil, fmt.Errorf("rebuilding network: %w", err)
	}
	lins := net.Linears()
	if len(lins) != len(snap.Weights) || len(lins) != len(snap.Biases) {
		return nil, fmt.Errorf("expected %d weight matrices, got %d", len(lins), len(snap.Weights))
	}
	for i, lin := range lins {
		lin.W.Reset()
		lin.B.Reset()
		if err := lin.W.UnmarshalBinary(snap.Weights[i]); err != nil {
			return nil, fmt.Errorf("unmarshalling weights for layer %d: %w", i, err)
		}
		if err := lin.B.UnmarshalBinary(snap.Biases[i]); err != nil {
			return nil, fmt.Errorf("unmarshalling biases for layer %d: %w", i, err)
		}
	}
	return net, nil
}
