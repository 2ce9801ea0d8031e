package trainer

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RunRecord summarizes one training run for the report log.
type RunRecord struct {
	Name         string
	Neurons      []int
	Activations  []string
	Loss         string
	Epochs       int
	BatchSize    int
	LearningRate float64
	TrainLoss    float64
	ValLoss      float64
	Accuracy     float64
	Duration     time.Duration
}

// AppendReport appends the record to a CSV report file, writing the
// header row first when the file does not exist yet.
func AppendReport(fpath string, rec RunRecord) error {
	var needsHeaders bool
	if _, err := os.Stat(fpath); os.IsNotExist(err) {
		needsHeaders = true
	}
	file, err := os.OpenFile(fpath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if needsHeaders {
		if err := w.Write([]string{
			"Name", "Neurons", "Activations", "Loss", "Epochs", "BatchSize",
			"LR", "TrainLoss", "ValLoss", "Accuracy", "Seconds", "EndTime",
		}); err != nil {
			return fmt.Errorf("writing csv headers: %w", err)
		}
	}

	widths := make([]string, len(rec.Neurons))
	for i, n := range rec.Neurons {
		widths[i] = strconv.Itoa(n)
	}
	record := []string{
		rec.Name,
		strings.Join(widths, " "),
		strings.Join(rec.Activations, " "),
		rec.Loss,
		strconv.Itoa(rec.Epochs),
		strconv.Itoa(rec.BatchSize),
		strconv.FormatFloat(rec.LearningRate, 'f', 4, 64),
		strconv.FormatFloat(rec.TrainLoss, 'f', 6, 64),
		strconv.FormatFloat(rec.ValLoss, 'f', 6, 64),
		strconv.FormatFloat(rec.Accuracy, 'f', 5, 64),
		strconv.FormatFloat(rec.Duration.Seconds(), 'f', 2, 64),
		strconv.FormatInt(time.Now().Unix(), 10),
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("writing csv record: %w", err)
	}
	w.Flush()
	return w.Error()
}
