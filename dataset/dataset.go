// Package dataset reads plain-text numeric datasets and prepares them
// for training.
package dataset

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Dataset pairs a matrix of input features with a matrix of targets,
// one sample per row.
type Dataset struct {
	X *mat.Dense
	Y *mat.Dense
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	r, _ := d.X.Dims()
	return r
}

// Load reads rows of inputDim feature values followed by outputDim
// target values. Values are separated by whitespace or commas; blank
// lines are skipped.
func Load(r io.Reader, inputDim, outputDim int) (*Dataset, error) {
	var inputs, targets []float64
	scanner := bufio.NewScanner(r)
	var lineNum, rows int
	for scanner.Scan() {
		lineNum++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		splits := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(splits) != inputDim+outputDim {
			return nil, errInvalidLine{
				lineNum:  lineNum,
				splits:   len(splits),
				expected: inputDim + outputDim,
			}
		}
		for i, split := range splits {
			num, err := strconv.ParseFloat(split, 64)
			if err != nil {
				return nil, fmt.Errorf("at line %d: parsing value %d: %w", lineNum, i+1, err)
			}
			if i < inputDim {
				inputs = append(inputs, num)
			} else {
				targets = append(targets, num)
			}
		}
		rows++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}
	return &Dataset{
		X: mat.NewDense(rows, inputDim, inputs),
		Y: mat.NewDense(rows, outputDim, targets),
	}, nil
}

// LoadFile is Load on a file path.
func LoadFile(fpath string, inputDim, outputDim int) (*Dataset, error) {
	f, err := os.Open(fpath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, inputDim, outputDim)
}

type errInvalidLine struct {
	lineNum  int
	splits   int
	expected int
}

func (e errInvalidLine) Error() string {
	return fmt.Sprintf("at line %d, expected %d values, got %d",
		e.lineNum, e.expected, e.splits)
}

// Shuffle permutes the samples in place, keeping each input row paired
// with its target row.
func (d *Dataset) Shuffle(rng *rand.Rand) {
	n := d.Len()
	_, xc := d.X.Dims()
	_, yc := d.Y.Dims()
	perm := rng.Perm(n)

	xs := mat.NewDense(n, xc, nil)
	ys := mat.NewDense(n, yc, nil)
	for i, p := range perm {
		xs.SetRow(i, d.X.RawRowView(p))
		ys.SetRow(i, d.Y.RawRowView(p))
	}
	d.X, d.Y = xs, ys
}

// Split returns the first frac of the samples as a training set and the
// remainder as a validation set. The underlying data is shared.
func (d *Dataset) Split(frac float64) (train, val *Dataset) {
	n := d.Len()
	_, xc := d.X.Dims()
	_, yc := d.Y.Dims()
	idx := int(frac * float64(n))

	train = &Dataset{
		X: d.X.Slice(0, idx, 0, xc).(*mat.Dense),
		Y: d.Y.Slice(0, idx, 0, yc).(*mat.Dense),
	}
	val = &Dataset{
		X: d.X.Slice(idx, n, 0, xc).(*mat.Dense),
		Y: d.Y.Slice(idx, n, 0, yc).(*mat.Dense),
	}
	return train, val
}
