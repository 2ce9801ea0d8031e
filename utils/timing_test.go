package utils

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationUS(t *testing.T) {
	assert.Equal(t, 1000.0, DurationUS(time.Millisecond))
	assert.Equal(t, 1.5, DurationUS(1500*time.Nanosecond))
	assert.Equal(t, 0.0, DurationUS(0))
}

func TestPrintTimingStats(t *testing.T) {
	stats := &TimingStats{
		TotalTime:        100 * time.Millisecond,
		ForwardPassTime:  40 * time.Millisecond,
		BackwardPassTime: 30 * time.Millisecond,
		UpdateTime:       10 * time.Millisecond,
	}

	var buf bytes.Buffer
	oldOut, oldVerbose := Output, Verbose
	Output, Verbose = &buf, true
	defer func() { Output, Verbose = oldOut, oldVerbose }()

	PrintTimingStats(stats, 10)
	out := buf.String()
	assert.Contains(t, out, "TIMING STATISTICS")
	assert.Contains(t, out, "Forward pass")
	assert.Contains(t, out, "40.0%")

	// Suppressed entirely when Verbose is off.
	buf.Reset()
	Verbose = false
	PrintTimingStats(stats, 10)
	assert.Empty(t, buf.String())

	// And when no steps ran.
	Verbose = true
	buf.Reset()
	PrintTimingStats(stats, 0)
	assert.Empty(t, buf.String())
}
