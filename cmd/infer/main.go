// nnkit-infer: loads a saved model and reports its accuracy on a
// dataset.
//
// Usage:
//
//	nnkit-infer --model=iris.model --data=iris.dat --input-dim=4 --output-dim=3
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"nnkit/dataset"
	"nnkit/nn"
	"nnkit/trainer"
)

func main() {
	if err := newInferCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newInferCmd() *cobra.Command {
	var (
		modelPath string
		dataPath  string
		inputDim  int
		outputDim int
		normalize bool
	)

	cmd := &cobra.Command{
		Use:          "nnkit-infer",
		Short:        "Evaluate a saved network on a dataset",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			log := slog.New(slog.NewTextHandler(os.Stderr, nil))

			net, err := nn.Load(modelPath)
			if err != nil {
				return fmt.Errorf("loading model: %w", err)
			}
			log.Info("model loaded", "path", modelPath,
				"neurons", net.Neurons, "activations", net.Activations)

			if inputDim == 0 {
				inputDim = net.InputDim
			}
			if outputDim == 0 {
				outputDim = net.Neurons[len(net.Neurons)-1]
			}
			ds, err := dataset.LoadFile(dataPath, inputDim, outputDim)
			if err != nil {
				return fmt.Errorf("loading dataset: %w", err)
			}

			x := ds.X
			if normalize {
				x = dataset.NewPreprocessor(ds.X).Apply(ds.X)
			}
			accuracy := trainer.Accuracy(net, x, ds.Y)
			log.Info("evaluation complete", "samples", ds.Len(), "accuracy", accuracy)
			fmt.Printf("Accuracy: %.2f%%\n", accuracy*100)
			return nil
		},
	}

	cmd.Flags().StringVar(&modelPath, "model", "", "saved model file")
	cmd.Flags().StringVar(&dataPath, "data", "", "plain-text numeric dataset path")
	cmd.Flags().IntVar(&inputDim, "input-dim", 0, "number of feature columns (default: from model)")
	cmd.Flags().IntVar(&outputDim, "output-dim", 0, "number of target columns (default: from model)")
	cmd.Flags().BoolVar(&normalize, "normalize", true, "min-max normalize inputs before evaluation")
	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}
