// nnkit-train: trains a feed-forward network on a plain-text numeric
// dataset.
//
// Usage:
//
//	nnkit-train --config=iris.yaml
//	nnkit-train --data=iris.dat --input-dim=4 --output-dim=3 \
//	    --hidden="16 3" --activations="relu identity" \
//	    --loss=softmax_cross_entropy --epochs=1000 --lr=0.01
package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"nnkit/dataset"
	"nnkit/nn"
	"nnkit/trainer"
	"nnkit/utils"
)

func main() {
	if err := newTrainCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newTrainCmd() *cobra.Command {
	var (
		configPath  string
		hiddenStr   string
		actsStr     string
		verbose     bool
		flagEpochs  int
		flagBatch   int
		flagLR      float64
		flagSeed    int64
		flagLoss    string
		flagData    string
		flagInputD  int
		flagOutputD int
		flagModel   string
	)

	cmd := &cobra.Command{
		Use:          "nnkit-train",
		Short:        "Train a feed-forward network with mini-batch SGD",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := utils.DefaultConfig()
			if configPath != "" {
				var err error
				cfg, err = utils.LoadConfig(configPath)
				if err != nil {
					return err
				}
			}
			// Flags given on the command line win over the file.
			if cmd.Flags().Changed("epochs") {
				cfg.Epochs = flagEpochs
			}
			if cmd.Flags().Changed("batch") {
				cfg.BatchSize = flagBatch
			}
			if cmd.Flags().Changed("lr") {
				cfg.LearningRate = flagLR
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = flagSeed
			}
			if cmd.Flags().Changed("loss") {
				cfg.Loss = flagLoss
			}
			if cmd.Flags().Changed("data") {
				cfg.DataPath = flagData
			}
			if cmd.Flags().Changed("input-dim") {
				cfg.InputDim = flagInputD
			}
			if cmd.Flags().Changed("output-dim") {
				cfg.OutputDim = flagOutputD
			}
			if cmd.Flags().Changed("output") {
				cfg.ModelOut = flagModel
			}
			if hiddenStr != "" {
				neurons, err := utils.ParseArchitecture(hiddenStr)
				if err != nil {
					return fmt.Errorf("parsing --hidden: %w", err)
				}
				cfg.Neurons = neurons
			}
			if actsStr != "" {
				cfg.Activations = strings.Fields(actsStr)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			utils.Verbose = verbose
			return run(cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "yaml run configuration file")
	cmd.Flags().StringVar(&flagData, "data", "", "plain-text numeric dataset path")
	cmd.Flags().IntVar(&flagInputD, "input-dim", 0, "number of feature columns")
	cmd.Flags().IntVar(&flagOutputD, "output-dim", 0, "number of target columns")
	cmd.Flags().StringVar(&hiddenStr, "hidden", "", "layer widths, e.g. \"16 3\"")
	cmd.Flags().StringVar(&actsStr, "activations", "", "activation per layer, e.g. \"relu identity\"")
	cmd.Flags().StringVar(&flagLoss, "loss", "mse", "loss function: mse, softmax_cross_entropy")
	cmd.Flags().IntVar(&flagEpochs, "epochs", 100, "number of training epochs")
	cmd.Flags().IntVar(&flagBatch, "batch", 8, "training batch size")
	cmd.Flags().Float64Var(&flagLR, "lr", 0.01, "SGD learning rate")
	cmd.Flags().Int64Var(&flagSeed, "seed", 42, "random seed for shuffling")
	cmd.Flags().StringVar(&flagModel, "output", "", "output model file")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "print timing statistics")
	return cmd
}

func run(cfg utils.Config) error {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	stats := &utils.TimingStats{}
	totalStart := time.Now()

	start := time.Now()
	ds, err := dataset.LoadFile(cfg.DataPath, cfg.InputDim, cfg.OutputDim)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}
	stats.DataLoadingTime = time.Since(start)
	log.Info("dataset loaded", "path", cfg.DataPath, "samples", ds.Len())

	rng := rand.New(rand.NewSource(cfg.Seed))
	ds.Shuffle(rng)
	train, val := ds.Split(cfg.SplitFrac)

	prep := dataset.NewPreprocessor(train.X)
	trainX := prep.Apply(train.X)
	valX := prep.Apply(val.X)

	start = time.Now()
	net, err := nn.New(cfg.InputDim, cfg.Neurons, cfg.Activations)
	if err != nil {
		return err
	}
	tr, err := trainer.New(net, cfg.BatchSize, cfg.Epochs, cfg.LearningRate, cfg.Loss, cfg.Shuffle)
	if err != nil {
		return err
	}
	tr.Seed(cfg.Seed)
	tr.Stats = stats
	stats.ModelInitTime = time.Since(start)

	logEvery := cfg.Epochs / 10
	if logEvery == 0 {
		logEvery = 1
	}
	tr.OnEpoch = func(epoch int, avgLoss float64) {
		if epoch%logEvery == 0 || epoch == cfg.Epochs {
			log.Info("epoch complete", "epoch", epoch, "epochs", cfg.Epochs, "loss", avgLoss)
		}
	}

	log.Info("training", "neurons", cfg.Neurons, "activations", cfg.Activations,
		"loss", cfg.Loss, "epochs", cfg.Epochs, "batch_size", cfg.BatchSize, "lr", cfg.LearningRate)
	history := tr.Train(trainX, train.Y)
	stats.TotalTime = time.Since(totalStart)

	trainLoss := tr.EvalLoss(trainX, train.Y)
	valLoss := tr.EvalLoss(valX, val.Y)
	accuracy := trainer.Accuracy(net, valX, val.Y)
	log.Info("training complete",
		"train_loss", trainLoss, "val_loss", valLoss, "val_accuracy", accuracy,
		"seconds", stats.TotalTime.Seconds())

	utils.PrintTimingStats(stats, len(history))

	if cfg.ModelOut != "" {
		if err := nn.Save(net, cfg.ModelOut); err != nil {
			return fmt.Errorf("saving model: %w", err)
		}
		log.Info("model saved", "path", cfg.ModelOut)
	}
	if cfg.WeightsOut != "" {
		if err := utils.SaveWeights(cfg.WeightsOut, exportWeights(net)); err != nil {
			return fmt.Errorf("exporting weights: %w", err)
		}
		log.Info("weights exported", "path", cfg.WeightsOut)
	}
	if cfg.ReportPath != "" {
		rec := trainer.RunRecord{
			Name:         cfg.Name,
			Neurons:      cfg.Neurons,
			Activations:  cfg.Activations,
			Loss:         cfg.Loss,
			Epochs:       cfg.Epochs,
			BatchSize:    cfg.BatchSize,
			LearningRate: cfg.LearningRate,
			TrainLoss:    trainLoss,
			ValLoss:      valLoss,
			Accuracy:     accuracy,
			Duration:     stats.TotalTime,
		}
		if err := trainer.AppendReport(cfg.ReportPath, rec); err != nil {
			return fmt.Errorf("appending report: %w", err)
		}
	}
	return nil
}

func exportWeights(net *nn.Network) *utils.ModelWeights {
	mw := &utils.ModelWeights{
		Version: "1",
		Layers:  make(map[string]utils.LayerWeight),
	}
	for i, lin := range net.Linears() {
		name := fmt.Sprintf("linear_%d", i)
		mw.Layers[name] = utils.LayerWeight{
			Weight: utils.MatrixToWeightData(name+".weight", lin.W),
			Bias:   utils.MatrixToWeightData(name+".bias", lin.B),
		}
	}
	return mw
}
