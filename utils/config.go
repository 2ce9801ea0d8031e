package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds a full training-run configuration.
type Config struct {
	Name         string   `yaml:"name"`
	DataPath     string   `yaml:"data_path"`
	InputDim     int      `yaml:"input_dim"`
	OutputDim    int      `yaml:"output_dim"`
	Neurons      []int    `yaml:"neurons"`
	Activations  []string `yaml:"activations"`
	Loss         string   `yaml:"loss"`
	BatchSize    int      `yaml:"batch_size"`
	Epochs       int      `yaml:"epochs"`
	LearningRate float64  `yaml:"learning_rate"`
	Shuffle      bool     `yaml:"shuffle"`
	SplitFrac    float64  `yaml:"split_frac"`
	Seed         int64    `yaml:"seed"`
	ModelOut     string   `yaml:"model_out"`
	WeightsOut   string   `yaml:"weights_out"`
	ReportPath   string   `yaml:"report_path"`
}

// DefaultConfig returns the settings a run starts from before the yaml
// file and flags are applied.
func DefaultConfig() Config {
	return Config{
		Name:         "run",
		Loss:         "mse",
		BatchSize:    8,
		Epochs:       100,
		LearningRate: 0.01,
		Shuffle:      true,
		SplitFrac:    0.8,
		Seed:         42,
	}
}

// LoadConfig reads a yaml configuration file over the defaults.
func LoadConfig(fpath string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(fpath)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", fpath, err)
	}
	return cfg, nil
}

// Validate checks the parts of the configuration the trainer cannot
// check itself.
func (c *Config) Validate() error {
	if c.DataPath == "" {
		return fmt.Errorf("data path is required")
	}
	if c.InputDim <= 0 {
		return fmt.Errorf("input dimension must be positive")
	}
	if c.OutputDim <= 0 {
		return fmt.Errorf("output dimension must be positive")
	}
	if len(c.Neurons) == 0 {
		return fmt.Errorf("at least one layer is required")
	}
	if len(c.Neurons) != len(c.Activations) {
		return fmt.Errorf("got %d layer widths but %d activations", len(c.Neurons), len(c.Activations))
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive")
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be positive")
	}
	if c.SplitFrac <= 0 || c.SplitFrac > 1 {
		return fmt.Errorf("split fraction must be in (0, 1], got %g", c.SplitFrac)
	}
	return nil
}

// ParseArchitecture parses a space-separated list of layer widths, the
// form used on the command line.
func ParseArchitecture(archStr string) ([]int, error) {
	archParts := strings.Fields(archStr)
	arch := make([]int, len(archParts))
	for i, s := range archParts {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		arch[i] = n
	}
	return arch, nil
}
