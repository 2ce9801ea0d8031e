package dataset

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	input := "0.1,0.2,1\n0.3 0.4 0\n\n0.5\t0.6\t1\n"
	ds, err := Load(strings.NewReader(input), 2, 1)
	require.NoError(t, err)

	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, 0.3, ds.X.At(1, 0))
	assert.Equal(t, 0.4, ds.X.At(1, 1))
	assert.Equal(t, 0.0, ds.Y.At(1, 0))
	assert.Equal(t, 1.0, ds.Y.At(2, 0))
}

func TestLoadWrongFieldCount(t *testing.T) {
	input := "1,2,3\n1,2\n"
	_, err := Load(strings.NewReader(input), 2, 1)
	require.Error(t, err)
	assert.Equal(t, "at line 2, expected 3 values, got 2", err.Error())
}

func TestLoadBadNumber(t *testing.T) {
	_, err := Load(strings.NewReader("1,x,3\n"), 2, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at line 1")
}

func TestLoadEmpty(t *testing.T) {
	_, err := Load(strings.NewReader("\n\n"), 2, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

// pairedSet builds a dataset where each target is ten times its input,
// so pairing survives any reordering check.
func pairedSet(t *testing.T, n int) *Dataset {
	t.Helper()
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "%d,%d\n", i, i*10)
	}
	ds, err := Load(strings.NewReader(sb.String()), 1, 1)
	require.NoError(t, err)
	return ds
}

func TestShuffleKeepsPairs(t *testing.T) {
	ds := pairedSet(t, 10)
	ds.Shuffle(rand.New(rand.NewSource(42)))

	seen := make(map[float64]bool)
	for i := 0; i < ds.Len(); i++ {
		x := ds.X.At(i, 0)
		assert.Equal(t, x*10, ds.Y.At(i, 0), "row %d unpaired", i)
		seen[x] = true
	}
	assert.Len(t, seen, 10)
}

func TestSplit(t *testing.T) {
	ds := pairedSet(t, 10)

	train, val := ds.Split(0.8)
	assert.Equal(t, 8, train.Len())
	assert.Equal(t, 2, val.Len())
	assert.Equal(t, 0.0, train.X.At(0, 0))
	assert.Equal(t, 8.0, val.X.At(0, 0))
}
