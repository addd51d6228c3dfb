package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectOutliers(t *testing.T) {
	y := []float64{9, 10, 11, 10, 9, 10, 11, 120, 10, -95}

	idxs := DetectOutliers(y, 0.2, 0.8, 1.0)
	assert.Equal(t, []int{7, 9}, idxs)
}

func TestDetectOutliersNone(t *testing.T) {
	y := []float64{9, 10, 11, 10, 9, 10, 11, 10}

	idxs := DetectOutliers(y, 0.0, 1.0, 3.0)
	assert.Empty(t, idxs)
}

func TestMedian(t *testing.T) {
	testData := map[string]struct {
		y        []float64
		expected float64
	}{
		"odd":       {[]float64{3, 1, 2}, 2},
		"even":      {[]float64{4, 1, 3, 2}, 2.5},
		"single":    {[]float64{7}, 7},
		"with nans": {[]float64{math.NaN(), 1, 3}, 2},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, td.expected, Median(td.y), 1e-12)
		})
	}

	assert.True(t, math.IsNaN(Median(nil)))
}

func TestMedianAbsDev(t *testing.T) {
	// deviations from the median 5 are {4, 1, 0, 1, 4}, median deviation 1
	y := []float64{1, 4, 5, 6, 9}
	assert.InDelta(t, 1.4826, MedianAbsDev(y), 1e-12)

	assert.InDelta(t, 0.0, MedianAbsDev([]float64{3, 3, 3}), 1e-12)
	assert.True(t, math.IsNaN(MedianAbsDev(nil)))
}
