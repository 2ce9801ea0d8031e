package matrix

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// XavierArray draws size values uniformly from
// [-gain*sqrt(6/sum(dims)), +gain*sqrt(6/sum(dims))].
func XavierArray(size int, gain float64, dims ...int) []float64 {
	sum := 0
	for _, d := range dims {
		sum += d
	}
	bound := gain * math.Sqrt(6.0/float64(sum))
	dist := distuv.Uniform{Min: -bound, Max: bound}

	data := make([]float64, size)
	for i := range data {
		data[i] = dist.Rand()
	}
	return data
}

// NormalArray draws size values from the standard normal distribution.
func NormalArray(size int) []float64 {
	dist := distuv.Normal{Mu: 0, Sigma: 1}
	data := make([]float64, size)
	for i := range data {
		data[i] = dist.Rand()
	}
	return data
}
