// Package stats holds small statistics helpers shared by the model fitting
// kernels and the residual inspection steps.
package stats

import (
	"math"
	"sort"
)

// consistency constant making MAD comparable to a standard deviation under
// normality
const madScale = 1.4826

// DetectOutliers returns the indices of values falling outside a Tukey
// style fence. The fence is built from the given lower and upper
// percentiles widened by tukeyFactor times the inner percentile range.
func DetectOutliers(y []float64, lowerPerc, upperPerc, tukeyFactor float64) []int {
	lowerPerc = math.Max(lowerPerc, 0.0)
	upperPerc = math.Min(upperPerc, 1.0)
	tukeyFactor = math.Max(tukeyFactor, 0.0)

	yCopy := make([]float64, len(y))
	copy(yCopy, y)
	sort.Float64s(yCopy)
	lowerIdx := int(math.Floor(float64(len(yCopy)) * lowerPerc))
	upperIdx := int(math.Ceil(float64(len(yCopy)) * upperPerc))
	if upperIdx >= len(yCopy) {
		upperIdx = len(yCopy) - 1
	}

	lower := yCopy[lowerIdx]
	upper := yCopy[upperIdx]
	innerRange := upper - lower
	lower -= innerRange * tukeyFactor
	upper += innerRange * tukeyFactor

	var outlierIdx []int
	for i := 0; i < len(y); i++ {
		if y[i] >= upper || y[i] <= lower {
			outlierIdx = append(outlierIdx, i)
		}
	}
	return outlierIdx
}

// Median returns the middle value of y, averaging the two central values
// for even lengths. NaNs are skipped. Returns NaN for an empty input.
func Median(y []float64) float64 {
	vals := make([]float64, 0, len(y))
	for _, v := range y {
		if math.IsNaN(v) {
			continue
		}
		vals = append(vals, v)
	}
	if len(vals) == 0 {
		return math.NaN()
	}
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 0 {
		return (vals[mid-1] + vals[mid]) / 2.0
	}
	return vals[mid]
}

// MedianAbsDev returns the normalized median absolute deviation of y, a
// robust scale estimate used to standardize residuals during iteratively
// reweighted least squares.
func MedianAbsDev(y []float64) float64 {
	med := Median(y)
	if math.IsNaN(med) {
		return math.NaN()
	}
	dev := make([]float64, 0, len(y))
	for _, v := range y {
		if math.IsNaN(v) {
			continue
		}
		dev = append(dev, math.Abs(v-med))
	}
	return madScale * Median(dev)
}
